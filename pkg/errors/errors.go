package errors

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Standard error types
var (
	ErrConfiguration = errors.New("configuration error")
	ErrHTTPRequest   = errors.New("HTTP request error")
	ErrHTTPResponse  = errors.New("HTTP response error")
	ErrGraphQL       = errors.New("GraphQL error")
	ErrValidation    = errors.New("validation error")
	ErrUnsupported   = errors.New("unsupported operation")
)

// WrapError wraps an error with a standard error type
func WrapError(err error, errType error, message string) error {
	wrapped := fmt.Errorf("%s: %w", message, err)
	return fmt.Errorf("%w: %v", errType, wrapped)
}

// CallError marks a failed outbound call. Its message is the cause's
// message unchanged, so "timeout" stays "timeout" on screen.
type CallError struct {
	Kind error
	Err  error
}

// NewCallError tags err with one of the sentinel kinds.
func NewCallError(kind, err error) *CallError {
	return &CallError{Kind: kind, Err: err}
}

func (e *CallError) Error() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *CallError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// NewRequestError tags a failed round trip. The *url.Error wrapper added by
// http.Client is dropped, so a cancelled call reads "context canceled".
func NewRequestError(err error) *CallError {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	return NewCallError(ErrHTTPRequest, err)
}

// HTTPError wraps HTTP error responses
type HTTPError struct {
	StatusCode int
	Status     string
	// Message is the "message" member of the server's error body, if any.
	Message string
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("Request failed with status code %d", e.StatusCode)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is lets errors.Is(err, ErrHTTPResponse) match a bare *HTTPError.
func (e *HTTPError) Is(target error) bool {
	return target == ErrHTTPResponse
}

// GraphQLError carries the messages of a GraphQL "errors" array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	if len(e.Messages) == 0 {
		return "unknown GraphQL error"
	}
	return strings.Join(e.Messages, "; ")
}

func (e *GraphQLError) Is(target error) bool {
	return target == ErrGraphQL
}

// Is provides a convenience wrapper around errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As provides a convenience wrapper around errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}
