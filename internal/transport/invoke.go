package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nordpay/nordpay-go/internal/log"
	"github.com/nordpay/nordpay-go/pkg/api"
)

const tracerName = "github.com/nordpay/nordpay-go/internal/transport"

// Invoker executes built requests against the network, retrying transient
// failures with bounded exponential backoff. Each call through Execute is
// fully self-contained; the Invoker holds no per-call state and is safe
// for concurrent use.
type Invoker struct {
	cfg     Config
	client  *http.Client
	retry   *RetryConfig
	limiter RateLimiter
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewInvoker creates an Invoker. A nil client, retry config, or logger
// falls back to defaults.
func NewInvoker(cfg Config, client *http.Client, retry *RetryConfig, logger *slog.Logger) *Invoker {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if retry == nil {
		retry = DefaultRetryConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Invoker{
		cfg:    cfg,
		client: client,
		retry:  retry,
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
}

// SetRateLimiter gates request attempts with the given limiter.
func (iv *Invoker) SetRateLimiter(limiter RateLimiter) {
	iv.limiter = limiter
}

// SetTracerProvider replaces the global tracer provider for this invoker.
func (iv *Invoker) SetTracerProvider(provider trace.TracerProvider) {
	iv.tracer = provider.Tracer(tracerName)
}

// Execute runs one logical call: up to RetryConfig.MaxAttempts attempts
// when retry is enabled, exactly one otherwise. Only failures the
// interpreter classified as transient trigger another attempt; everything
// else is terminal. The returned api.Error is nil exactly when the
// Response is non-nil.
func (iv *Invoker) Execute(ctx context.Context, req *BuiltRequest) (*Response, *api.Error) {
	ctx, span := iv.tracer.Start(ctx, "nordpay.call",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.full", req.URL),
		))
	defer span.End()

	maxAttempts := 1
	if iv.cfg.RetryRequests {
		maxAttempts = iv.retry.MaxAttempts
	}

	start := time.Now()
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			requestRetries.WithLabelValues(req.Method).Inc()
			select {
			case <-time.After(iv.retry.backoff(attempt)):
			case <-ctx.Done():
				cancelled := &transportError{
					typ:     errorCancelled,
					message: "request cancelled during retry backoff",
					cause:   ctx.Err(),
				}
				return nil, iv.fail(ctx, span, req, cancelled, start)
			}
		}

		span.AddEvent("attempt", trace.WithAttributes(attribute.Int("attempt", attempt)))
		resp, err := iv.attempt(ctx, req, attempt)
		if err == nil {
			span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))
			iv.finish(req.Method, strconv.Itoa(resp.StatusCode), start)
			iv.logger.DebugContext(ctx, "request completed",
				slog.String(log.MethodKey, req.Method),
				slog.Int(log.StatusKey, resp.StatusCode),
				slog.Int(log.AttemptKey, attempt),
				slog.Int64(log.DurationKey, time.Since(start).Milliseconds()),
			)
			return resp, nil
		}

		var terr *transportError
		if errors.As(err, &terr) && terr.retryable && maxAttempts > 1 {
			lastErr = err
			iv.logger.DebugContext(ctx, "transient failure",
				slog.String(log.MethodKey, req.Method),
				slog.Int(log.AttemptKey, attempt),
				log.Error(err),
			)
			continue
		}

		return nil, iv.fail(ctx, span, req, err, start)
	}

	return nil, iv.fail(ctx, span, req, &exhaustedError{last: lastErr}, start)
}

// attempt performs a single request execution and interpretation.
func (iv *Invoker) attempt(ctx context.Context, req *BuiltRequest, attempt int) (*Response, error) {
	if iv.limiter != nil {
		if err := iv.limiter.Wait(ctx); err != nil {
			return nil, &transportError{
				typ:     errorCancelled,
				message: "rate limit wait cancelled",
				cause:   err,
			}
		}
	}

	var bodyReader io.Reader
	if len(req.Body) > 0 {
		bodyReader = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, bodyReader)
	if err != nil {
		return nil, &transportError{
			typ:     errorInvalid,
			message: "build request: " + err.Error(),
			cause:   err,
		}
	}
	for name, value := range req.Headers {
		httpReq.Header.Set(name, value)
	}

	httpResp, err := iv.client.Do(httpReq)
	if err != nil {
		return nil, classifyTransportFailure(err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &transportError{
			typ:       errorConnection,
			message:   "read response body: " + err.Error(),
			retryable: true,
			cause:     err,
		}
	}

	log.Trace(iv.logger, "response received",
		log.Int(log.StatusKey, httpResp.StatusCode),
		log.Int(log.AttemptKey, attempt),
		log.String("body", string(body)),
	)

	return interpret(httpResp.StatusCode, body)
}

// fail normalizes a terminal error, records it, and returns it.
func (iv *Invoker) fail(ctx context.Context, span trace.Span, req *BuiltRequest, err error, start time.Time) *api.Error {
	apiErr := asAPIError(err)

	span.SetStatus(codes.Error, apiErr.Message)
	status := "error"
	if apiErr.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", apiErr.StatusCode))
		status = strconv.Itoa(apiErr.StatusCode)
	}
	iv.finish(req.Method, status, start)

	iv.logger.WarnContext(ctx, "request failed",
		slog.String(log.MethodKey, req.Method),
		slog.String(log.StatusKey, status),
		slog.String("kind", string(apiErr.Kind)),
		slog.Int64(log.DurationKey, time.Since(start).Milliseconds()),
	)
	return apiErr
}

func (iv *Invoker) finish(method, status string, start time.Time) {
	requestsCompleted.WithLabelValues(method, status).Inc()
	requestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
}

// asAPIError converts any pipeline error into its normalized form.
// Errors the interpreter already normalized pass through unchanged.
func asAPIError(err error) *api.Error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var terr *transportError
	status := 0
	var raw []byte
	if errors.As(err, &terr) {
		status = terr.statusCode
		raw = terr.body
	}

	// A terminal 5xx, reached when retry is disabled, is classified from
	// its body like any other error response. Exhaustion keeps the fixed
	// retry-limit message even though it wraps the same error.
	var exhausted *exhaustedError
	if terr != nil && terr.typ == errorServer && !errors.As(err, &exhausted) {
		return normalize(parseBody(raw), raw, status)
	}
	return normalize(err, raw, status)
}

// classifyTransportFailure maps errors from the HTTP client itself into
// the internal retry-classification channel.
func classifyTransportFailure(err error) *transportError {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &transportError{
			typ:     errorCancelled,
			message: "request cancelled",
			cause:   err,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &transportError{
			typ:       errorConnection,
			message:   "request timeout",
			retryable: true,
			cause:     err,
		}
	}

	return &transportError{
		typ:       errorConnection,
		message:   "connection failure: " + err.Error(),
		retryable: true,
		cause:     err,
	}
}
