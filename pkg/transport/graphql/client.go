package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saturnines/reservation-exerciser/pkg/errors"
)

// HTTPDoer is the same minimal interface used by rest.Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client executes GraphQL operations.
type Client struct {
	doer HTTPDoer
}

// NewClient wraps an HTTPDoer (e.g. *http.Client or a retry transport).
func NewClient(doer HTTPDoer) *Client {
	if doer == nil {
		doer = &http.Client{}
	}
	return &Client{doer: doer}
}

type gqlError struct {
	Message string `json:"message"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// Execute sends the built request and returns the raw "data" member.
// A non-empty "errors" array is a failure even when data is present.
func (c *Client) Execute(ctx context.Context, b *Builder) (json.RawMessage, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, errors.NewCallError(errors.ErrHTTPRequest, err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, errors.NewRequestError(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewCallError(errors.ErrHTTPResponse,
			fmt.Errorf("failed to read response body: %w", err))
	}

	var out response
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		httpErr := &errors.HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}
		if decodeErr == nil && len(out.Errors) > 0 {
			httpErr.Message = out.Errors[0].Message
		}
		return nil, errors.NewCallError(errors.ErrHTTPResponse, httpErr)
	}

	if decodeErr != nil {
		return nil, errors.NewCallError(errors.ErrHTTPResponse,
			fmt.Errorf("failed to decode GraphQL response: %w", decodeErr))
	}

	if len(out.Errors) > 0 {
		gqlErr := &errors.GraphQLError{}
		for _, e := range out.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return nil, errors.NewCallError(errors.ErrGraphQL, gqlErr)
	}

	if len(out.Data) == 0 {
		return json.RawMessage("null"), nil
	}
	return out.Data, nil
}
