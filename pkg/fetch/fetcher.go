// Package fetch retrieves pages and binary assets over http for list collection and item extraction.
package fetch

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	log "github.com/go-pkgz/lgr"
)

// maxBodySize limits a single response body
const maxBodySize = 32 * 1024 * 1024

// DefaultUserAgent is sent unless the feed or engine configuration sets another one
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Options for a single fetch, filled from the feed configuration
type Options struct {
	UserAgent string
	Headers   map[string]string
	VerifySSL bool
	Timeout   time.Duration // per-request, overrides the fetcher default if set
	RenderJS  bool          // not supported by the http fetcher, page is fetched as is
}

// Result of a successful fetch
type Result struct {
	Body       []byte
	URL        string // final url after redirects
	StatusCode int
}

// HTTPFetcher fetches pages with a plain http client and browser-like headers
type HTTPFetcher struct {
	timeout   time.Duration
	userAgent string
	client    *http.Client
	insecure  *http.Client
}

// NewHTTPFetcher creates a new fetcher with default per-request timeout and user agent
func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	insecureTransport := http.DefaultTransport.(*http.Transport).Clone()
	insecureTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // per-feed verify_ssl=false
	return &HTTPFetcher{
		timeout:   timeout,
		userAgent: userAgent,
		client:    &http.Client{},
		insecure:  &http.Client{Transport: insecureTransport},
	}
}

// Fetch retrieves the body of the given URL, non-200 responses are errors
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string, opts Options) (Result, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return Result{}, fmt.Errorf("parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return Result{}, fmt.Errorf("invalid URL: %s", urlStr)
	}
	if opts.RenderJS {
		log.Printf("[DEBUG] render_js is not supported, fetching %s as is", urlStr)
	}

	timeout := f.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req)
	req.Header.Set("User-Agent", f.userAgent)
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	client := f.client
	if !opts.VerifySSL && parsedURL.Scheme == "https" {
		client = f.insecure
	}
	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{StatusCode: resp.StatusCode}, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Result{StatusCode: resp.StatusCode}, fmt.Errorf("read body of %s: %w", urlStr, err)
	}
	return Result{Body: body, URL: resp.Request.URL.String(), StatusCode: resp.StatusCode}, nil
}
