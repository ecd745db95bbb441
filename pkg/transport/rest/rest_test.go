package rest

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/saturnines/reservation-exerciser/pkg/errors"
)

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func assertHeader(t *testing.T, req *http.Request, header, expected string) {
	t.Helper()
	if value := req.Header.Get(header); value != expected {
		t.Errorf("Expected %s header '%s', got '%s'", header, expected, value)
	}
}

func TestBuilder_DefaultsToGET(t *testing.T) {
	b := NewBuilder("http://localhost:8080/api/reservations", "", nil)

	req, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.Method != http.MethodGet {
		t.Errorf("Expected GET, got %s", req.Method)
	}
	if req.Body != nil {
		t.Error("Expected no body for a GET without payload")
	}
	assertHeader(t, req, "Content-Type", "")
}

func TestBuilder_JSONBody(t *testing.T) {
	b, err := NewBuilder("http://localhost:8080/api/reservations", http.MethodPost, nil).
		WithJSONBody(map[string]string{"dateDebut": "2024-01-01"})
	if err != nil {
		t.Fatalf("WithJSONBody failed: %v", err)
	}

	req, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	assertHeader(t, req, "Content-Type", "application/json")

	body, _ := io.ReadAll(req.Body)
	if string(body) != `{"dateDebut":"2024-01-01"}` {
		t.Errorf("Unexpected body: %s", body)
	}
}

func TestBuilder_HeaderTemplates(t *testing.T) {
	t.Setenv("EXERCISER_TEST_TOKEN", "abc123")

	b := NewBuilder("http://localhost:8080/api/reservations", "", map[string]string{
		"Authorization": "Bearer {{EXERCISER_TEST_TOKEN}}",
		"X-Missing":     "{{EXERCISER_NOT_SET}}",
	})

	req, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	assertHeader(t, req, "Authorization", "Bearer abc123")
	assertHeader(t, req, "X-Missing", "{{EXERCISER_NOT_SET}}")
}

func TestClient_Send(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":42}`))
		}))
		defer server.Close()

		body, err := NewClient(server.Client()).Send(context.Background(), NewBuilder(server.URL, "", nil))
		if err != nil {
			t.Fatalf("Send failed: %v", err)
		}
		if string(body) != `{"id":42}` {
			t.Errorf("Unexpected body: %s", body)
		}
	})

	t.Run("ServerErrorMessage", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"status":400,"error":"Bad Request","message":"Réservation non trouvée"}`))
		}))
		defer server.Close()

		_, err := NewClient(server.Client()).Send(context.Background(), NewBuilder(server.URL, "", nil))
		if !errors.Is(err, errors.ErrHTTPResponse) {
			t.Fatalf("Expected ErrHTTPResponse, got %v", err)
		}
		var httpErr *errors.HTTPError
		if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusBadRequest {
			t.Fatalf("Expected HTTPError 400, got %v", err)
		}
		if err.Error() != "Request failed with status code 400: Réservation non trouvée" {
			t.Errorf("Unexpected message: %s", err.Error())
		}
	})

	t.Run("NonJSONErrorBody", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := NewClient(server.Client()).Send(context.Background(), NewBuilder(server.URL, "", nil))
		if err == nil || err.Error() != "Request failed with status code 502" {
			t.Errorf("Unexpected error: %v", err)
		}
	})

	t.Run("TransportFailure", func(t *testing.T) {
		doer := doerFunc(func(*http.Request) (*http.Response, error) {
			return nil, stderrors.New("timeout")
		})

		_, err := NewClient(doer).Send(context.Background(), NewBuilder("http://localhost:8080", "", nil))
		if err == nil || err.Error() != "timeout" {
			t.Fatalf("Expected 'timeout', got %v", err)
		}
		if !errors.Is(err, errors.ErrHTTPRequest) {
			t.Error("Expected ErrHTTPRequest kind")
		}
	})

	t.Run("BadURL", func(t *testing.T) {
		_, err := NewClient(nil).Send(context.Background(), NewBuilder("://bad", "", nil))
		if !errors.Is(err, errors.ErrHTTPRequest) {
			t.Errorf("Expected ErrHTTPRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "missing protocol scheme") {
			t.Errorf("Unexpected message: %s", err.Error())
		}
	})
}
