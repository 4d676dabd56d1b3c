package config

import "time"

// AppConfig holds the global application configuration
type AppConfig struct {
	BaseURL             string           `yaml:"base_url,omitempty"`
	MaxFetchAttempts    int              `yaml:"max_fetch_attempts,omitempty"`
	AbortOnFirstFailure *bool            `yaml:"abort_on_first_failure,omitempty"` // Pointer for tri-state: nil=default (true)
	GlobalCrawlTimeout  time.Duration    `yaml:"global_crawl_timeout,omitempty"`
	HTTPClientSettings  HTTPClientConfig `yaml:"http_client_settings,omitempty"`
}

// HTTPClientConfig holds settings applied to every per-attempt HTTP client
type HTTPClientConfig struct {
	Timeout             time.Duration `yaml:"timeout,omitempty"`               // Overall request timeout
	DialerTimeout       time.Duration `yaml:"dialer_timeout,omitempty"`        // Connection dial timeout
	TLSHandshakeTimeout time.Duration `yaml:"tls_handshake_timeout,omitempty"` // Timeout for TLS handshake
	ForceAttemptHTTP2   *bool         `yaml:"force_attempt_http2,omitempty"`   // Explicitly enable/disable HTTP/2 attempt (nil=default true)
}

// EffectiveAbortOnFirstFailure resolves the batch failure policy,
// defaulting to fail-fast when unset.
func (c *AppConfig) EffectiveAbortOnFirstFailure() bool {
	if c.AbortOnFirstFailure != nil {
		return *c.AbortOnFirstFailure
	}
	return true
}
