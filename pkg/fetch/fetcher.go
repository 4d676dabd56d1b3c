// Package fetch retrieves pages through a resilient HTTP layer that
// rotates egress proxies on connection failure.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"repo-crawler/pkg/config"
	"repo-crawler/pkg/utils"
)

// Fetcher performs one logical HTTP GET per call, retrying through
// different egress proxies on connection-level failure, bounded by a
// maximum attempt count. HTTP error statuses are not failures: any
// response the server sends back is parsed and returned as a document.
type Fetcher struct {
	clientCfg   config.HTTPClientConfig
	pool        *Pool
	headers     http.Header
	maxAttempts int
	log         *logrus.Logger
}

// NewFetcher creates a Fetcher. headers are sent verbatim with every
// request; maxAttempts bounds the direct attempt plus proxied retries.
func NewFetcher(clientCfg config.HTTPClientConfig, pool *Pool, headers http.Header, maxAttempts int, log *logrus.Logger) *Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = config.DefaultMaxFetchAttempts
	}
	return &Fetcher{
		clientCfg:   clientCfg,
		pool:        pool,
		headers:     headers,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// Fetch retrieves rawURL and parses the response body into a goquery
// document. Attempt 0 is always direct; on connection refused/timeout
// each subsequent attempt goes through a proxy drawn at random from
// the pool (or direct again when the pool is empty). After the final
// permitted attempt still fails the call returns ErrFetchExhausted
// wrapping the last connection error. Context cancellation aborts
// immediately and is returned as-is, never wrapped as exhaustion.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*goquery.Document, error) {
	reqLog := f.log.WithField("url", rawURL)

	var lastErr error
	for attempt := 0; attempt < f.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			reqLog.Warnf("Context cancelled before attempt %d: %v", attempt, ctx.Err())
			return nil, ctx.Err()
		default:
		}

		// Attempt 0 is direct; retries borrow a proxy from the pool
		var proxyURL *url.URL
		if attempt > 0 {
			proxyURL = f.pool.Pick()
		}

		attemptLog := reqLog.WithFields(logrus.Fields{
			"attempt": attempt,
			"proxy":   proxyDiag(proxyURL),
		})
		attemptLog.Debug("Fetching...")

		doc, err := f.fetchOnce(ctx, rawURL, proxyURL)
		if err == nil {
			attemptLog.Debug("Successfully fetched")
			return doc, nil
		}

		// The caller's context ending is an abort, not a transient
		// failure; a per-attempt timeout with a live caller context
		// falls through to the retry path below.
		if ctx.Err() != nil {
			attemptLog.Warnf("Context cancelled/timed out during fetch: %v", err)
			return nil, ctx.Err()
		}
		if !utils.IsConnectionFailure(err) {
			// Parse errors, body-read errors etc. are not transient
			return nil, err
		}

		lastErr = err
		attemptLog.Warnf("Connection failure, will retry: %v", err)
	}

	reqLog.Errorf("All %d fetch attempts failed. Last error: %v", f.maxAttempts, lastErr)
	if lastErr != nil {
		return nil, fmt.Errorf("%w: %s: %w", utils.ErrFetchExhausted, rawURL, lastErr)
	}
	return nil, fmt.Errorf("%w: %s", utils.ErrFetchExhausted, rawURL)
}

// fetchOnce performs a single attempt with a connection context scoped
// to that attempt alone.
func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string, proxyURL *url.URL) (*goquery.Document, error) {
	client, transport := newAttemptClient(f.clientCfg, proxyURL)
	defer transport.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", utils.ErrRequestCreation, rawURL, err)
	}
	for key, values := range f.headers {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	// Non-2xx bodies are still parsed; what to make of them is the
	// extractor's concern, not the fetcher's.
	doc, parseErr := goquery.NewDocumentFromReader(resp.Body)
	if parseErr != nil {
		return nil, fmt.Errorf("%w: parsing HTML from %q: %v", utils.ErrParsing, rawURL, parseErr)
	}
	return doc, nil
}

// proxyDiag renders the proxy choice for attempt diagnostics
func proxyDiag(proxyURL *url.URL) string {
	if proxyURL == nil {
		return "direct"
	}
	return proxyURL.Host
}
