package retry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/saturnines/reservation-exerciser/pkg/config"
)

// maxDelay caps a single backoff wait
const maxDelay = 30 * time.Second

// Transport retries idempotent requests on timeouts and configured
// statuses. With MaxAttempts <= 1 it is a plain pass-through.
type Transport struct {
	Base http.RoundTripper
	Cfg  config.RetryConfig

	mu     sync.Mutex
	jitter *rand.Rand
}

// NewTransport creates a new retry transport
func NewTransport(base http.RoundTripper, cfg config.RetryConfig) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{
		Base:   base,
		Cfg:    cfg,
		jitter: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.Cfg.MaxAttempts <= 1 || !idempotent(req.Method) {
		return t.Base.RoundTrip(req)
	}

	body, err := snapshotBody(req)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < t.Cfg.MaxAttempts; attempt++ {
		resp, err := t.Base.RoundTrip(cloneRequest(req, body))

		if err != nil {
			var netErr net.Error
			if !errors.As(err, &netErr) || !netErr.Timeout() {
				return nil, err
			}
			lastErr = err
		} else {
			last := attempt == t.Cfg.MaxAttempts-1
			if last || !slices.Contains(t.Cfg.RetryableStatuses, resp.StatusCode) {
				return resp, nil
			}
			// drain so the connection can be reused
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d", resp.StatusCode)
		}

		if attempt == t.Cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.backoff(attempt)):
		}
	}

	return nil, fmt.Errorf("retry transport failed after %d attempts: %w", t.Cfg.MaxAttempts, lastErr)
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead,
		http.MethodPut, http.MethodDelete,
		http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

func snapshotBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	buf, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	req.Body.Close()
	return buf, nil
}

// cloneRequest makes a copy with a fresh reader over the saved body
func cloneRequest(r *http.Request, body []byte) *http.Request {
	r2 := r.Clone(r.Context())
	if body != nil {
		r2.Body = io.NopCloser(bytes.NewReader(body))
		r2.ContentLength = int64(len(body))
	}
	return r2
}

// backoff computes full jitter exponential backoff
func (t *Transport) backoff(attempt int) time.Duration {
	base := time.Duration(t.Cfg.InitialBackoff * float64(time.Second))

	ceiling := time.Duration(float64(base) * math.Pow(t.Cfg.BackoffMultiplier, float64(attempt)))
	if ceiling > maxDelay {
		ceiling = maxDelay
	}

	t.mu.Lock()
	f := t.jitter.Float64()
	t.mu.Unlock()

	return time.Duration(f * float64(ceiling))
}
