// Package fetch retrieves feed documents and webpages over HTTP.
//
// The same FetchText call serves feed XML and article HTML. There is no
// retry and, unless a timeout is configured, no client-side deadline: a
// request ends when the transport or the caller's context ends it.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/logging"
)

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "tuirss/1.0 (+https://github.com/abelbrown/tuirss)"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 10 << 20

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	URL        string
	Status     int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.StatusText)
}

// Fetcher retrieves documents over HTTP.
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *hostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRateLimit allows at most rps requests per second to any single host.
// Zero or negative disables limiting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = newHostLimiter(rps)
		}
	}
}

// WithHTTPClient replaces the underlying client. The timeout argument of
// NewFetcher is ignored when this option is used.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// NewFetcher creates a Fetcher. A zero timeout means the client never gives
// up on its own.
func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchText GETs url and returns the response body.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/html;q=0.9, */*;q=0.8")

	if f.limiter != nil {
		if err := f.limiter.wait(ctx, req.URL.Host); err != nil {
			return "", err
		}
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		logging.Warn("fetch failed", "url", url, "error", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logging.Warn("fetch status", "url", url, "status", resp.StatusCode)
		return "", &HTTPError{URL: url, Status: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	logging.Debug("fetched", "url", url, "bytes", len(body), "elapsed", time.Since(start))
	return string(body), nil
}

// FetchFeed fetches url and normalizes it into a Feed.
func (f *Fetcher) FetchFeed(ctx context.Context, url string) (*feed.Feed, error) {
	body, err := f.FetchText(ctx, url)
	if err != nil {
		return nil, err
	}
	parsed, err := feed.Parse([]byte(body))
	if err != nil {
		return nil, err
	}
	logging.Info("feed loaded", "url", url, "items", len(parsed.Items))
	return parsed, nil
}
