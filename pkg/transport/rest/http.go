package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/saturnines/reservation-exerciser/pkg/errors"
)

// HTTPDoer is a minimal interface for HTTP clients
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client sends one REST request per call and hands back the raw body.
type Client struct {
	doer HTTPDoer
}

// NewClient wraps an HTTPDoer (e.g. *http.Client or a retry transport).
func NewClient(doer HTTPDoer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{doer: doer}
}

// Send builds the request, performs it and returns the body of a 2xx
// response. Every failure comes back as an *errors.CallError.
func (c *Client) Send(ctx context.Context, b *Builder) ([]byte, error) {
	req, err := b.Build(ctx)
	if err != nil {
		return nil, errors.NewCallError(errors.ErrHTTPRequest, err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, errors.NewRequestError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewCallError(errors.ErrHTTPResponse,
			fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewCallError(errors.ErrHTTPResponse, &errors.HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Message:    errorMessage(body),
		})
	}

	return body, nil
}

// errorMessage pulls a human readable reason out of an error body such as
// {"status":400,"error":"Bad Request","message":"..."}.
func errorMessage(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
