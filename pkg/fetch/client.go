package fetch

import (
	"net"
	"net/http"
	"net/url"

	"repo-crawler/pkg/config"
)

// newAttemptClient builds an HTTP client for a single fetch attempt.
// Each attempt gets its own transport with keep-alives disabled so no
// connection state survives into the next attempt; callers must close
// idle connections when the attempt finishes. proxyURL nil means a
// direct connection.
func newAttemptClient(cfg config.HTTPClientConfig, proxyURL *url.URL) (*http.Client, *http.Transport) {
	dialer := &net.Dialer{
		Timeout: cfg.DialerTimeout,
	}

	transport := &http.Transport{
		DialContext:         dialer.DialContext,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
		DisableKeepAlives:   true,
		MaxIdleConns:        1,
	}
	if proxyURL != nil {
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	if cfg.ForceAttemptHTTP2 != nil {
		transport.ForceAttemptHTTP2 = *cfg.ForceAttemptHTTP2
	}

	client := &http.Client{
		Timeout:   cfg.Timeout,
		Transport: transport,
	}
	return client, transport
}
