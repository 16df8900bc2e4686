package transport

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/nordpay/nordpay-go/pkg/api"
)

func testConfig() Config {
	return Config{
		SubscriptionKey:      "sub-key",
		MerchantSerialNumber: "123456",
		SystemName:           "acme-shop",
		SystemVersion:        "2.1.0",
		PluginName:           "acme-plugin",
		PluginVersion:        "0.9.0",
		UseTestMode:          true,
		RetryRequests:        true,
	}
}

func TestBuildHostSelection(t *testing.T) {
	tests := []struct {
		name        string
		useTestMode bool
		wantHost    string
	}{
		{name: "test mode selects sandbox", useTestMode: true, wantHost: SandboxHost},
		{name: "production mode selects production", useTestMode: false, wantHost: ProductionHost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.UseTestMode = tt.useTestMode

			built, err := Build(cfg, api.Descriptor{Method: "GET", Path: "/epayment/v1/payments/ref-1"})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			want := tt.wantHost + "/epayment/v1/payments/ref-1"
			if built.URL != want {
				t.Errorf("URL = %q, want %q", built.URL, want)
			}
		})
	}
}

func TestBuildDefaultHeaders(t *testing.T) {
	built, err := Build(testConfig(), api.Descriptor{
		Method: "GET",
		Path:   "/epayment/v1/payments",
		Token:  "tok-abc",
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	want := map[string]string{
		HeaderContentType:          "application/json",
		HeaderAuthorization:        "Bearer tok-abc",
		HeaderSubscriptionKey:      "sub-key",
		HeaderMerchantSerialNumber: "123456",
		HeaderSystemName:           "acme-shop",
		HeaderSystemVersion:        "2.1.0",
		HeaderPluginName:           "acme-plugin",
		HeaderPluginVersion:        "0.9.0",
	}
	for name, value := range want {
		if got := built.Headers[name]; got != value {
			t.Errorf("header %s = %q, want %q", name, got, value)
		}
	}

	if ua := built.Headers[HeaderUserAgent]; !strings.HasPrefix(ua, "Nordpay-Go-SDK/") {
		t.Errorf("User-Agent = %q, want Nordpay-Go-SDK prefix", ua)
	}
	if _, err := uuid.Parse(built.Headers[HeaderIdempotencyKey]); err != nil {
		t.Errorf("Idempotency-Key %q is not a UUID: %v", built.Headers[HeaderIdempotencyKey], err)
	}
}

func TestBuildIdempotencyKeyUniquePerBuild(t *testing.T) {
	d := api.Descriptor{Method: "POST", Path: "/epayment/v1/payments"}

	first, err := Build(testConfig(), d)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := Build(testConfig(), d)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if first.Headers[HeaderIdempotencyKey] == second.Headers[HeaderIdempotencyKey] {
		t.Error("two builds produced the same idempotency key")
	}
}

func TestBuildAdditionalHeaders(t *testing.T) {
	tests := []struct {
		name      string
		additions map[string]string
		header    string
		want      string
	}{
		{
			name:      "addition wins over default",
			additions: map[string]string{"Content-Type": "text/plain"},
			header:    HeaderContentType,
			want:      "text/plain",
		},
		{
			name:      "new header is added",
			additions: map[string]string{"client_id": "id-1"},
			header:    "client_id",
			want:      "id-1",
		},
		{
			name:      "authorization cannot be overridden",
			additions: map[string]string{"Authorization": "Bearer stolen"},
			header:    HeaderAuthorization,
			want:      "Bearer tok",
		},
		{
			name:      "protected check is case insensitive",
			additions: map[string]string{"ocp-apim-subscription-key": "stolen"},
			header:    HeaderSubscriptionKey,
			want:      "sub-key",
		},
		{
			name:      "merchant serial cannot be overridden",
			additions: map[string]string{"MERCHANT-SERIAL-NUMBER": "999999"},
			header:    HeaderMerchantSerialNumber,
			want:      "123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			built, err := Build(testConfig(), api.Descriptor{
				Method:            "POST",
				Path:              "/accesstoken/get",
				Token:             "tok",
				AdditionalHeaders: tt.additions,
			})
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if got := built.Headers[tt.header]; got != tt.want {
				t.Errorf("header %s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestBuildOmitHeaders(t *testing.T) {
	built, err := Build(testConfig(), api.Descriptor{
		Method: "GET",
		Path:   "/access-management-1.0/access/.well-known/openid-configuration",
		OmitHeaders: []string{
			"authorization",
			HeaderSubscriptionKey,
			HeaderMerchantSerialNumber,
			HeaderIdempotencyKey,
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	for _, name := range []string{HeaderAuthorization, HeaderSubscriptionKey, HeaderMerchantSerialNumber, HeaderIdempotencyKey} {
		if _, ok := built.Headers[name]; ok {
			t.Errorf("header %s present, want omitted", name)
		}
	}
	if _, ok := built.Headers[HeaderContentType]; !ok {
		t.Error("Content-Type was removed without being listed")
	}
}

func TestBuildOmitAppliesAfterAdditions(t *testing.T) {
	built, err := Build(testConfig(), api.Descriptor{
		Method:            "GET",
		Path:              "/userinfo/sub-1",
		AdditionalHeaders: map[string]string{"X-Extra": "v"},
		OmitHeaders:       []string{"x-extra"},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := built.Headers["X-Extra"]; ok {
		t.Error("added header survived a matching omission")
	}
}

func TestBuildBody(t *testing.T) {
	t.Run("nil body stays nil", func(t *testing.T) {
		built, err := Build(testConfig(), api.Descriptor{Method: "GET", Path: "/x"})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if built.Body != nil {
			t.Errorf("Body = %q, want nil", built.Body)
		}
	})

	t.Run("body is marshalled", func(t *testing.T) {
		built, err := Build(testConfig(), api.Descriptor{
			Method: "POST",
			Path:   "/x",
			Body:   map[string]string{"reference": "ref-1"},
		})
		if err != nil {
			t.Fatalf("Build() error = %v", err)
		}
		if got := string(built.Body); got != `{"reference":"ref-1"}` {
			t.Errorf("Body = %s", got)
		}
	})

	t.Run("unserializable body fails", func(t *testing.T) {
		_, err := Build(testConfig(), api.Descriptor{
			Method: "POST",
			Path:   "/x",
			Body:   make(chan int),
		})
		if err == nil {
			t.Fatal("Build() error = nil, want marshal failure")
		}
		if !strings.Contains(err.Error(), "marshal request body") {
			t.Errorf("error = %v", err)
		}
	})
}
