// Package dispatcher turns a (transport, operation, draft) triple into
// exactly one outbound call and a text the user can read.
//
// Every call ends in a Result whose Text is ready for display: the
// re-indented response body on success, a fixed confirmation for REST
// deletes, or "Error: " followed by the failure message. Dispatch never
// returns a bare error and never retries on its own.
package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/saturnines/reservation-exerciser/pkg/config"
	"github.com/saturnines/reservation-exerciser/pkg/errors"
	"github.com/saturnines/reservation-exerciser/pkg/logging"
	"github.com/saturnines/reservation-exerciser/pkg/reservation"
	"github.com/saturnines/reservation-exerciser/pkg/transport/graphql"
	"github.com/saturnines/reservation-exerciser/pkg/transport/rest"
	"github.com/saturnines/reservation-exerciser/pkg/transport/retry"
)

// Texts shown instead of a response body.
const (
	DeleteConfirmation = "Réservation supprimée avec succès"
	SOAPHint           = "Utilisez SoapUI ou un client SOAP pour tester les endpoints SOAP"
	GRPCHint           = "Utilisez BloomRPC ou un client gRPC pour tester les services gRPC"
	ErrorPrefix        = "Error: "
)

// RequestIDHeader carries a fresh id on every dispatched call.
const RequestIDHeader = "X-Request-ID"

// HTTPDoer is shared by both transports.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Result is what the user sees after one call.
type Result struct {
	Text string
	Err  error
}

// Failed reports whether the call did not succeed.
func (r Result) Failed() bool {
	return r.Err != nil
}

func failure(err error) Result {
	return Result{Text: ErrorPrefix + err.Error(), Err: err}
}

// Dispatcher sends reservation operations over REST or GraphQL.
type Dispatcher struct {
	rest            *rest.Client
	graphql         *graphql.Client
	collectionURL   string
	graphqlEndpoint string
	headers         map[string]string
	logger          *slog.Logger
	newRequestID    func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for per-call records.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = l
	}
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(gen func() string) Option {
	return func(d *Dispatcher) {
		d.newRequestID = gen
	}
}

// New wires both transports over doer. A nil doer gets NewHTTPClient(cfg).
func New(cfg *config.Config, doer HTTPDoer, opts ...Option) *Dispatcher {
	if doer == nil {
		doer = NewHTTPClient(cfg)
	}
	d := &Dispatcher{
		rest:            rest.NewClient(doer),
		graphql:         graphql.NewClient(doer),
		collectionURL:   strings.TrimRight(cfg.REST.CollectionURL(), "/"),
		graphqlEndpoint: cfg.GraphQL.Endpoint,
		headers:         cfg.HTTP.Headers,
		logger:          logging.Discard(),
		newRequestID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewHTTPClient builds the client both transports share: the configured
// timeout (zero means none) over the retry transport.
func NewHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout:   cfg.HTTP.Timeout,
		Transport: retry.NewTransport(http.DefaultTransport, cfg.Retry),
	}
}

// Dispatch performs exactly one call for op over t. SOAP and gRPC only
// return their hint text.
func (d *Dispatcher) Dispatch(ctx context.Context, t Transport, op reservation.Operation, draft reservation.Draft) Result {
	switch t {
	case SOAP:
		return Result{Text: SOAPHint}
	case GRPC:
		return Result{Text: GRPCHint}
	}

	requestID := d.newRequestID()
	headers := make(map[string]string, len(d.headers)+1)
	for k, v := range d.headers {
		headers[k] = v
	}
	headers[RequestIDHeader] = requestID

	start := time.Now()
	var res Result
	switch t {
	case REST:
		res = d.dispatchREST(ctx, op, draft, headers)
	case GraphQL:
		res = d.dispatchGraphQL(ctx, op, draft, headers)
	default:
		res = failure(errors.NewCallError(errors.ErrUnsupported, fmt.Errorf("unknown transport: %q", t)))
	}

	attrs := []any{
		slog.String("transport", string(t)),
		slog.String("operation", string(op)),
		slog.String("request_id", requestID),
		slog.Duration("duration", time.Since(start)),
	}
	if res.Failed() {
		d.logger.WarnContext(ctx, "call failed", append(attrs, slog.String("error", res.Err.Error()))...)
	} else {
		d.logger.DebugContext(ctx, "call completed", attrs...)
	}
	return res
}

func (d *Dispatcher) itemURL(id string) string {
	return d.collectionURL + "/" + url.PathEscape(id)
}

func (d *Dispatcher) dispatchREST(ctx context.Context, op reservation.Operation, draft reservation.Draft, headers map[string]string) Result {
	var b *rest.Builder
	var err error

	switch op {
	case reservation.OpCreate:
		b, err = rest.NewBuilder(d.collectionURL, http.MethodPost, headers).WithJSONBody(draft.Body())
	case reservation.OpRead:
		b = rest.NewBuilder(d.itemURL(draft.ID), http.MethodGet, headers)
	case reservation.OpUpdate:
		b, err = rest.NewBuilder(d.itemURL(draft.ID), http.MethodPut, headers).WithJSONBody(draft.Body())
	case reservation.OpDelete:
		b = rest.NewBuilder(d.itemURL(draft.ID), http.MethodDelete, headers)
	case reservation.OpList:
		b = rest.NewBuilder(d.collectionURL, http.MethodGet, headers)
	default:
		err = fmt.Errorf("unknown operation: %q", op)
	}
	if err != nil {
		return failure(errors.NewCallError(errors.ErrUnsupported, err))
	}

	body, err := d.rest.Send(ctx, b)
	if err != nil {
		return failure(err)
	}
	if op == reservation.OpDelete {
		return Result{Text: DeleteConfirmation}
	}
	return Result{Text: Pretty(body)}
}

func (d *Dispatcher) dispatchGraphQL(ctx context.Context, op reservation.Operation, draft reservation.Draft, headers map[string]string) Result {
	query, vars, err := reservation.Document(op, draft)
	if err != nil {
		return failure(errors.NewCallError(errors.ErrUnsupported, err))
	}

	b := graphql.NewBuilder(d.graphqlEndpoint, query,
		graphql.WithVariables(vars),
		graphql.WithHeaders(headers),
	)
	data, err := d.graphql.Execute(ctx, b)
	if err != nil {
		return failure(err)
	}
	return Result{Text: Pretty(data)}
}

// Pretty re-indents a JSON body with two spaces, keeping key order.
// The bytes are not re-encoded, so \u escapes and number spellings such
// as 1.0 stay as sent. An empty body renders as "" and non-JSON text as
// a JSON string.
func Pretty(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return `""`
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, trimmed, "", "  "); err == nil {
		return buf.String()
	}

	buf.Reset()
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(string(raw)); err != nil {
		return string(raw)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
