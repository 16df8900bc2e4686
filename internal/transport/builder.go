package transport

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nordpay/nordpay-go/pkg/api"
)

// The only two legal hosts. Selection is driven solely by
// Config.UseTestMode; there is no override mechanism.
const (
	SandboxHost    = "https://apitest.nordpay.com"
	ProductionHost = "https://api.nordpay.com"
)

// Header names attached to every built request.
const (
	HeaderContentType          = "Content-Type"
	HeaderAuthorization        = "Authorization"
	HeaderUserAgent            = "User-Agent"
	HeaderSubscriptionKey      = "Ocp-Apim-Subscription-Key"
	HeaderMerchantSerialNumber = "Merchant-Serial-Number"
	HeaderSystemName           = "Nordpay-System-Name"
	HeaderSystemVersion        = "Nordpay-System-Version"
	HeaderPluginName           = "Nordpay-System-Plugin-Name"
	HeaderPluginVersion        = "Nordpay-System-Plugin-Version"
	HeaderIdempotencyKey       = "Idempotency-Key"
)

// protectedHeaders can never be overridden by descriptor-level additions.
var protectedHeaders = []string{
	HeaderAuthorization,
	HeaderSubscriptionKey,
	HeaderMerchantSerialNumber,
}

// Config carries the client-level settings the pipeline needs. It is
// constructed once per client and read-only thereafter.
type Config struct {
	SubscriptionKey      string
	MerchantSerialNumber string
	SystemName           string
	SystemVersion        string
	PluginName           string
	PluginVersion        string
	UseTestMode          bool
	RetryRequests        bool
}

// BuiltRequest is a descriptor resolved against client configuration into
// a fully-addressed, fully-headered request. It is built once per logical
// call and reused across retry attempts, so the idempotency key is stable
// for the lifetime of the call.
type BuiltRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Build turns a descriptor plus client configuration into a BuiltRequest.
// The descriptor path is trusted to be well-formed; the only failure mode
// is an unserializable body.
func Build(cfg Config, d api.Descriptor) (*BuiltRequest, error) {
	host := ProductionHost
	if cfg.UseTestMode {
		host = SandboxHost
	}

	headers := map[string]string{
		HeaderContentType:          "application/json",
		HeaderAuthorization:        "Bearer " + d.Token,
		HeaderUserAgent:            userAgent(),
		HeaderSubscriptionKey:      cfg.SubscriptionKey,
		HeaderMerchantSerialNumber: cfg.MerchantSerialNumber,
		HeaderSystemName:           cfg.SystemName,
		HeaderSystemVersion:        cfg.SystemVersion,
		HeaderPluginName:           cfg.PluginName,
		HeaderPluginVersion:        cfg.PluginVersion,
		HeaderIdempotencyKey:       uuid.New().String(),
	}

	// Additions win over defaults, except for the protected trio.
	for name, value := range d.AdditionalHeaders {
		if isProtectedHeader(name) {
			continue
		}
		headers[name] = value
	}

	// Omissions are applied after additions and may remove any header.
	for _, name := range d.OmitHeaders {
		for key := range headers {
			if strings.EqualFold(key, name) {
				delete(headers, key)
			}
		}
	}

	var body []byte
	if d.Body != nil {
		data, err := json.Marshal(d.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = data
	}

	return &BuiltRequest{
		Method:  d.Method,
		URL:     host + d.Path,
		Headers: headers,
		Body:    body,
	}, nil
}

func isProtectedHeader(name string) bool {
	for _, protected := range protectedHeaders {
		if strings.EqualFold(name, protected) {
			return true
		}
	}
	return false
}
