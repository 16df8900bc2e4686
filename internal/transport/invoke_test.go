package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nordpay/nordpay-go/pkg/api"
)

func fastRetry() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     3 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestInvoker(cfg Config, client *http.Client) *Invoker {
	return NewInvoker(cfg, client, fastRetry(), quietLogger())
}

func builtRequest(method, url string) *BuiltRequest {
	return &BuiltRequest{
		Method: method,
		URL:    url,
		Headers: map[string]string{
			HeaderContentType:     "application/json",
			HeaderIdempotencyKey:  "key-1",
			HeaderSubscriptionKey: "sub-key",
		},
	}
}

func TestExecuteSuccess(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.Header.Get(HeaderIdempotencyKey); got != "key-1" {
			t.Errorf("Idempotency-Key = %q", got)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"reference":"ref-1"}`))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	resp, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL+"/epayment/v1/payments/ref-1"))
	if apiErr != nil {
		t.Fatalf("Execute() error = %v", apiErr)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != `{"reference":"ref-1"}` {
		t.Errorf("Body = %s", resp.Body)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestExecuteRetriesTransientThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	resp, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if apiErr != nil {
		t.Fatalf("Execute() error = %v", apiErr)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
}

func TestExecuteRetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unavailable"))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	resp, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if resp != nil {
		t.Fatal("Execute() resp != nil")
	}
	if apiErr.Kind != api.KindRetryExhausted {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindRetryExhausted)
	}
	if apiErr.Message != "Retry limit reached. Could not get a response from the server" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if apiErr.StatusCode != 503 {
		t.Errorf("StatusCode = %d, want 503", apiErr.StatusCode)
	}
	if calls.Load() != 3 {
		t.Errorf("calls = %d, want exactly 3", calls.Load())
	}
}

func TestExecuteNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"detail":"bad reference"}`))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	_, apiErr := iv.Execute(context.Background(), builtRequest("POST", srv.URL))
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind != api.KindProblem {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindProblem)
	}
	if apiErr.Message != "bad reference" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1", calls.Load())
	}
}

func TestExecuteRetryDisabled(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"upstream exploded"}`))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: false}, srv.Client())
	_, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind != api.KindProblem {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindProblem)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want exactly 1", calls.Load())
	}
}

func TestExecuteConnectionFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	iv := newTestInvoker(Config{RetryRequests: false}, &http.Client{Timeout: time.Second})
	_, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind != api.KindConnection {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindConnection)
	}
	if apiErr.Message != "Could not connect to the API" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestExecuteConnectionFailureExhaustsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, &http.Client{Timeout: time.Second})
	_, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind != api.KindRetryExhausted {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindRetryExhausted)
	}
}

func TestExecuteForbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"detail":"nope"}`))
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	_, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL))
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind != api.KindForbidden {
		t.Errorf("Kind = %s, want %s", apiErr.Kind, api.KindForbidden)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	resp, apiErr := iv.Execute(ctx, builtRequest("GET", srv.URL))
	if resp != nil {
		t.Fatal("Execute() resp != nil")
	}
	if apiErr == nil {
		t.Fatal("Execute() error = nil")
	}
	if apiErr.Kind == api.KindRetryExhausted {
		t.Error("cancellation must not surface as retry exhaustion")
	}
}

func TestExecuteRateLimiterGatesAttempts(t *testing.T) {
	var waits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	iv := newTestInvoker(Config{RetryRequests: true}, srv.Client())
	iv.SetRateLimiter(limiterFunc(func(ctx context.Context) error {
		waits.Add(1)
		return nil
	}))

	if _, apiErr := iv.Execute(context.Background(), builtRequest("GET", srv.URL)); apiErr != nil {
		t.Fatalf("Execute() error = %v", apiErr)
	}
	if waits.Load() != 1 {
		t.Errorf("limiter waits = %d, want 1", waits.Load())
	}
}

type limiterFunc func(ctx context.Context) error

func (f limiterFunc) Wait(ctx context.Context) error { return f(ctx) }
