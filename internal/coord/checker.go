// Package coord runs feed fetches concurrently for batch health checks.
package coord

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/tuirss/internal/feed"
	"github.com/abelbrown/tuirss/internal/logging"
)

// checkTimeout bounds each individual fetch.
const checkTimeout = 30 * time.Second

// maxConcurrentFetches limits parallel fetch operations.
const maxConcurrentFetches = 5

// feedFetcher interface for dependency injection (testing).
type feedFetcher interface {
	FetchFeed(ctx context.Context, url string) (*feed.Feed, error)
}

// Result is the outcome of checking one source.
type Result struct {
	Source  feed.FeedSource
	Title   string
	Items   int
	Elapsed time.Duration
	Err     error
}

// Checker fetches every source once and reports per-source results.
type Checker struct {
	fetcher feedFetcher
	sources []feed.FeedSource // IMMUTABLE: set at construction
	timeout time.Duration

	// OnResult, if set, is called as each source finishes, from the
	// fetching goroutine.
	OnResult func(Result)
}

// NewChecker creates a Checker over a copy of sources.
func NewChecker(f feedFetcher, sources []feed.FeedSource) *Checker {
	sourcesCopy := make([]feed.FeedSource, len(sources))
	copy(sourcesCopy, sources)

	return &Checker{
		fetcher: f,
		sources: sourcesCopy,
		timeout: checkTimeout,
	}
}

// Run fetches all sources with bounded parallelism. Results are in source
// order. A failed source never fails the run; its error is in its Result.
func (c *Checker) Run(ctx context.Context) []Result {
	results := make([]Result, len(c.sources))

	var g errgroup.Group
	g.SetLimit(maxConcurrentFetches)

	for i, src := range c.sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i] = Result{Source: src, Err: ctx.Err()}
				return nil
			}
			results[i] = c.check(ctx, src)
			if c.OnResult != nil {
				c.OnResult(results[i])
			}
			return nil // never fail the group - errors reported per-source
		})
	}

	_ = g.Wait()
	return results
}

func (c *Checker) check(ctx context.Context, src feed.FeedSource) Result {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	f, err := c.fetcher.FetchFeed(fetchCtx, src.URL)
	r := Result{Source: src, Elapsed: time.Since(start), Err: err}
	if err != nil {
		logging.Warn("feed check failed", "id", src.ID, "url", src.URL, "error", err)
		return r
	}
	r.Title = f.Title
	r.Items = len(f.Items)
	logging.Info("feed checked", "id", src.ID, "items", r.Items, "elapsed", r.Elapsed)
	return r
}
