package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/saturnines/reservation-exerciser/pkg/config"
)

// Builder constructs GraphQL requests.
type Builder struct {
	Endpoint  string
	Query     string
	Variables map[string]interface{}
	Headers   map[string]string
}

// NewBuilder sets up a GraphQL Builder.
// Endpoint is the full URL of your GraphQL endpoint.
func NewBuilder(endpoint, query string, opts ...BuilderOption) *Builder {
	b := &Builder{
		Endpoint: endpoint,
		Query:    query,
	}
	b.ApplyOptions(opts...)
	return b
}

// requestBody is the standard GraphQL-over-HTTP POST payload.
type requestBody struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// Payload returns the JSON body Build sends. Map keys are sorted by
// encoding/json, so equal inputs give equal bytes.
func (b *Builder) Payload() ([]byte, error) {
	vars := b.Variables
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return json.Marshal(requestBody{Query: b.Query, Variables: vars})
}

// Build creates the *http.Request with JSON body. Header values may use
// {{ENV_VAR}} templates, as on REST.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	buf, err := b.Payload()
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.Endpoint, bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	for k, v := range b.Headers {
		req.Header.Set(k, config.SubstituteTemplate(v))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}
