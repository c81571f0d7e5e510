package coord

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/abelbrown/tuirss/internal/feed"
)

// mockFetcher implements the feedFetcher interface for testing.
type mockFetcher struct {
	mu         sync.Mutex
	fetched    []string
	failURL    string
	fetchDelay time.Duration
	inFlight   atomic.Int32
	peak       atomic.Int32
}

func (m *mockFetcher) FetchFeed(ctx context.Context, url string) (*feed.Feed, error) {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}

	if m.fetchDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(m.fetchDelay):
		}
	}

	m.mu.Lock()
	m.fetched = append(m.fetched, url)
	m.mu.Unlock()

	if url == m.failURL {
		return nil, errors.New("HTTP 500: Internal Server Error")
	}
	return &feed.Feed{Title: "Feed at " + url, Items: make([]feed.Item, 3)}, nil
}

func sources(n int) []feed.FeedSource {
	out := make([]feed.FeedSource, n)
	for i := range out {
		out[i] = feed.FeedSource{
			ID:   string(rune('a' + i)),
			Name: "Source " + string(rune('A'+i)),
			URL:  "http://example.com/" + string(rune('a'+i)),
		}
	}
	return out
}

func TestCheckerFetchesAllSourcesInOrder(t *testing.T) {
	srcs := sources(3)
	mock := &mockFetcher{failURL: srcs[1].URL}

	var mu sync.Mutex
	var streamed int
	c := NewChecker(mock, srcs)
	c.OnResult = func(Result) {
		mu.Lock()
		streamed++
		mu.Unlock()
	}

	results := c.Run(context.Background())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Source.ID != srcs[i].ID {
			t.Errorf("result %d is for %q", i, r.Source.ID)
		}
	}
	if results[0].Err != nil || results[0].Items != 3 || results[0].Title != "Feed at http://example.com/a" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("expected error for failing source")
	}
	if streamed != 3 {
		t.Errorf("OnResult called %d times", streamed)
	}
}

func TestCheckerLimitsConcurrency(t *testing.T) {
	mock := &mockFetcher{fetchDelay: 20 * time.Millisecond}
	NewChecker(mock, sources(12)).Run(context.Background())

	if peak := mock.peak.Load(); peak > maxConcurrentFetches {
		t.Errorf("peak concurrency %d exceeds %d", peak, maxConcurrentFetches)
	}
	if len(mock.fetched) != 12 {
		t.Errorf("fetched %d sources", len(mock.fetched))
	}
}

func TestCheckerCopiesSources(t *testing.T) {
	srcs := sources(2)
	c := NewChecker(&mockFetcher{}, srcs)
	srcs[0].URL = "http://mutated.example/"

	results := c.Run(context.Background())
	if results[0].Source.URL != "http://example.com/a" {
		t.Errorf("checker saw caller mutation: %q", results[0].Source.URL)
	}
}

func TestCheckerCancelledContext(t *testing.T) {
	mock := &mockFetcher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := NewChecker(mock, sources(3)).Run(ctx)
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", r.Err)
		}
	}
	if len(mock.fetched) != 0 {
		t.Errorf("fetched %d sources after cancel", len(mock.fetched))
	}
}

func TestCheckerTimeout(t *testing.T) {
	mock := &mockFetcher{fetchDelay: time.Second}
	c := NewChecker(mock, sources(1))
	c.timeout = 10 * time.Millisecond

	results := c.Run(context.Background())
	if !errors.Is(results[0].Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", results[0].Err)
	}
}
