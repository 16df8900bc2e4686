package nordpay

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/nordpay/nordpay-go/internal/transport"
)

// RetryConfig configures the retry policy for transient failures.
// See transport.RetryConfig for field documentation.
type RetryConfig = transport.RetryConfig

// Option is a functional option for client construction.
type Option func(*Client) error

// WithHTTPClient replaces the underlying HTTP client. This is also the
// test seam: the API hosts are fixed, so tests inject a client whose
// RoundTripper serves canned responses.
//
// Example:
//
//	c, err := nordpay.New(cfg, nordpay.WithHTTPClient(&http.Client{
//		Transport: mockTransport,
//	}))
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) error {
		if client == nil {
			return fmt.Errorf("http client cannot be nil")
		}
		c.httpClient = client
		return nil
	}
}

// WithLogger sets a custom structured logger.
// If not set, logging configuration is read from the environment.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	c, err := nordpay.New(cfg, nordpay.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithTimeout sets the per-attempt timeout of the default HTTP client.
// Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) error {
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", timeout)
		}
		c.timeout = timeout
		return nil
	}
}

// WithRetryConfig replaces the default retry policy constants.
// Whether retry happens at all is controlled by ClientConfig.RetryRequests.
func WithRetryConfig(retry *RetryConfig) Option {
	return func(c *Client) error {
		if retry == nil {
			return fmt.Errorf("retry config cannot be nil")
		}
		if err := retry.Validate(); err != nil {
			return fmt.Errorf("invalid retry config: %w", err)
		}
		c.retry = retry
		return nil
	}
}

// WithoutRetry disables retry of transient failures: every call makes
// exactly one attempt. Equivalent to setting ClientConfig.RetryRequests
// to false.
func WithoutRetry() Option {
	return func(c *Client) error {
		off := false
		c.cfg.RetryRequests = &off
		return nil
	}
}

// WithRequestsPerSecond gates outgoing attempts with a token-bucket rate
// limiter. Off by default.
func WithRequestsPerSecond(rps float64, burst int) Option {
	return func(c *Client) error {
		if rps <= 0 {
			return fmt.Errorf("requests per second must be positive, got %f", rps)
		}
		if burst < 1 {
			return fmt.Errorf("burst must be at least 1, got %d", burst)
		}
		c.limiter = transport.NewTokenBucketLimiter(rps, burst)
		return nil
	}
}

// WithRateLimiter gates outgoing attempts with a caller-supplied limiter.
func WithRateLimiter(limiter transport.RateLimiter) Option {
	return func(c *Client) error {
		if limiter == nil {
			return fmt.Errorf("rate limiter cannot be nil")
		}
		c.limiter = limiter
		return nil
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider for request
// spans. Defaults to the global provider.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) error {
		if provider == nil {
			return fmt.Errorf("tracer provider cannot be nil")
		}
		c.tracerProvider = provider
		return nil
	}
}
