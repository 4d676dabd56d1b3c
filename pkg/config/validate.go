package config

import (
	"fmt"
	"net/url"
	"time"
)

// DefaultBaseURL is the search host crawled when no base_url is configured
const DefaultBaseURL = "https://github.com/"

// DefaultMaxFetchAttempts bounds one logical fetch: the direct attempt
// plus proxied retries.
const DefaultMaxFetchAttempts = 5

// Validate checks AppConfig fields and applies sensible defaults.
// Returns collected warnings and any fatal error.
// Modifies receiver in place to apply defaults.
func (c *AppConfig) Validate() (warnings []string, err error) {
	// BaseURL
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	} else if u, parseErr := url.Parse(c.BaseURL); parseErr != nil || !u.IsAbs() {
		return warnings, fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL)
	}

	// MaxFetchAttempts
	if c.MaxFetchAttempts < 0 {
		return warnings, fmt.Errorf("max_fetch_attempts cannot be negative (got %d)", c.MaxFetchAttempts)
	}
	if c.MaxFetchAttempts == 0 {
		c.MaxFetchAttempts = DefaultMaxFetchAttempts
	}

	// GlobalCrawlTimeout
	if c.GlobalCrawlTimeout < 0 {
		warnings = append(warnings, "global_crawl_timeout cannot be negative, disabling timeout")
		c.GlobalCrawlTimeout = 0
	}

	// HTTP client settings
	if c.HTTPClientSettings.Timeout <= 0 {
		c.HTTPClientSettings.Timeout = 30 * time.Second
	}
	if c.HTTPClientSettings.DialerTimeout <= 0 {
		c.HTTPClientSettings.DialerTimeout = 10 * time.Second
	}
	if c.HTTPClientSettings.TLSHandshakeTimeout <= 0 {
		c.HTTPClientSettings.TLSHandshakeTimeout = 10 * time.Second
	}

	return warnings, nil
}
