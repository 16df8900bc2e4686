package nordpay

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/nordpay/nordpay-go/internal/log"
	"github.com/nordpay/nordpay-go/internal/transport"
	"github.com/nordpay/nordpay-go/pkg/api"
)

// Client is the entry point to the Nordpay APIs. Each API family is
// exposed as a namespace; every operation resolves to an api.Result and
// never returns a Go error or panics.
//
// A Client holds no mutable state after construction and is safe for
// concurrent use. Calls issued concurrently are fully independent: the
// pipeline places no lock or ordering constraint between them.
type Client struct {
	cfg  ClientConfig
	tcfg transport.Config

	httpClient     *http.Client
	logger         *slog.Logger
	retry          *RetryConfig
	limiter        transport.RateLimiter
	tracerProvider trace.TracerProvider
	timeout        time.Duration

	invoker *transport.Invoker

	// API family namespaces.
	Auth       *AuthService
	Payments   *PaymentsService
	Agreements *AgreementsService
	Charges    *ChargesService
	Checkout   *CheckoutService
	QR         *QRService
	Orders     *OrderService
	Webhooks   *WebhookService
	User       *UserService
	Login      *LoginService
}

// New creates a client from a validated configuration and options.
func New(cfg ClientConfig, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.logger == nil {
		c.logger = log.New(log.FromEnv())
	}
	if c.httpClient == nil {
		c.httpClient = defaultHTTPClient(c.timeout)
	}

	c.tcfg = transport.Config{
		SubscriptionKey:      c.cfg.SubscriptionKey,
		MerchantSerialNumber: c.cfg.MerchantSerialNumber,
		SystemName:           c.cfg.SystemName,
		SystemVersion:        c.cfg.SystemVersion,
		PluginName:           c.cfg.PluginName,
		PluginVersion:        c.cfg.PluginVersion,
		UseTestMode:          c.cfg.UseTestMode,
		RetryRequests:        c.cfg.retryEnabled(),
	}

	c.invoker = transport.NewInvoker(c.tcfg, c.httpClient, c.retry, c.logger)
	if c.limiter != nil {
		c.invoker.SetRateLimiter(c.limiter)
	}
	if c.tracerProvider != nil {
		c.invoker.SetTracerProvider(c.tracerProvider)
	}

	c.Auth = &AuthService{client: c}
	c.Payments = &PaymentsService{client: c}
	c.Agreements = &AgreementsService{client: c}
	c.Charges = &ChargesService{client: c}
	c.Checkout = &CheckoutService{client: c}
	c.QR = &QRService{client: c}
	c.Orders = &OrderService{client: c}
	c.Webhooks = &WebhookService{client: c}
	c.User = &UserService{client: c}
	c.Login = &LoginService{client: c}

	c.logger.Debug("client configured",
		slog.String(log.MerchantKey, c.cfg.MerchantSerialNumber),
		slog.String("subscription_key", log.SanitizeAPIKey(c.cfg.SubscriptionKey)),
		slog.Bool("test_mode", c.cfg.UseTestMode),
		slog.Bool("retry", c.cfg.retryEnabled()),
	)
	return c, nil
}

// defaultHTTPClient builds the underlying HTTP client with TLS 1.2
// minimum and connection pooling.
func defaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},

			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,

			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   10 * time.Second,
			ResponseHeaderTimeout: timeout,
			ExpectContinueTimeout: 1 * time.Second,
		},
	}
}

// call pipes one descriptor through the pipeline: pre-flight validation,
// request building, transport with retry, and typed decoding. Every exit
// path is a Result value.
func call[T any](ctx context.Context, c *Client, d api.Descriptor) api.Result[T] {
	if reason := transport.Preflight(c.tcfg, d); reason != "" {
		c.logger.Warn("request rejected before dispatch",
			slog.String(log.MethodKey, d.Method),
			slog.String(log.PathKey, d.Path),
			slog.String("reason", reason),
		)
		return api.Reject[T](reason)
	}

	built, err := transport.Build(c.tcfg, d)
	if err != nil {
		return api.Result[T]{Ok: false, Message: err.Error()}
	}

	resp, apiErr := c.invoker.Execute(ctx, built)
	if apiErr != nil {
		return api.Failure[T](apiErr)
	}

	// A body that does not decode into T is tolerated: the caller gets
	// the zero value, mirroring the empty-body rule.
	var data T
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &data); err != nil {
			var zero T
			data = zero
		}
	}
	return api.Success(data)
}
