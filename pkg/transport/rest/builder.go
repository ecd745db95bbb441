// pkg/transport/rest/builder.go
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/saturnines/reservation-exerciser/pkg/config"
)

// Builder builds REST HTTP requests.
type Builder struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte
}

// NewBuilder constructs a Builder.
// Method defaults to GET if empty.
func NewBuilder(url, method string, headers map[string]string) *Builder {
	if method == "" {
		method = http.MethodGet
	}
	return &Builder{
		URL:     url,
		Method:  method,
		Headers: headers,
	}
}

// WithJSONBody marshals v as the request body.
func (b *Builder) WithJSONBody(v interface{}) (*Builder, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	b.Body = buf
	return b, nil
}

// Build creates an HTTP request. Header values may use {{ENV_VAR}} templates.
func (b *Builder) Build(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if b.Body != nil {
		body = bytes.NewReader(b.Body)
	}

	req, err := http.NewRequestWithContext(ctx, b.Method, b.URL, body)
	if err != nil {
		return nil, err
	}

	for k, v := range b.Headers {
		req.Header.Set(k, config.SubstituteTemplate(v))
	}

	if b.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return req, nil
}
