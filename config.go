package nordpay

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ClientConfig holds the process-wide settings for one client instance.
// It is read once at construction time and never mutated afterwards, so a
// single client is safe for concurrent use.
type ClientConfig struct {
	// SubscriptionKey is the API subscription credential. Required.
	SubscriptionKey string `yaml:"subscription_key"`

	// MerchantSerialNumber identifies the merchant. Required.
	MerchantSerialNumber string `yaml:"merchant_serial_number"`

	// SystemName and SystemVersion identify the integrating system in
	// diagnostic headers. Optional, sent as empty strings when unset.
	SystemName    string `yaml:"system_name,omitempty"`
	SystemVersion string `yaml:"system_version,omitempty"`

	// PluginName and PluginVersion identify a plugin on top of the
	// integrating system. Optional.
	PluginName    string `yaml:"plugin_name,omitempty"`
	PluginVersion string `yaml:"plugin_version,omitempty"`

	// UseTestMode routes every request to the sandbox host instead of
	// production. Default: false.
	UseTestMode bool `yaml:"use_test_mode,omitempty"`

	// RetryRequests enables bounded retry of transient failures.
	// Default: true.
	RetryRequests *bool `yaml:"retry_requests,omitempty"`
}

// Validate checks that the required credentials are present.
func (c *ClientConfig) Validate() error {
	if c.SubscriptionKey == "" {
		return fmt.Errorf("subscription_key is required")
	}
	if c.MerchantSerialNumber == "" {
		return fmt.Errorf("merchant_serial_number is required")
	}
	return nil
}

// retryEnabled resolves the RetryRequests default.
func (c *ClientConfig) retryEnabled() bool {
	if c.RetryRequests == nil {
		return true
	}
	return *c.RetryRequests
}

// LoadClientConfig reads and validates a ClientConfig from a YAML file.
func LoadClientConfig(path string) (*ClientConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg ClientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %s: %w", path, err)
	}
	return &cfg, nil
}
