package fetch

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// hostLimiter keeps one token bucket per host.
type hostLimiter struct {
	mu       sync.Mutex
	rps      rate.Limit
	limiters map[string]*rate.Limiter
}

func newHostLimiter(rps float64) *hostLimiter {
	return &hostLimiter{
		rps:      rate.Limit(rps),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (h *hostLimiter) get(host string) *rate.Limiter {
	h.mu.Lock()
	defer h.mu.Unlock()

	l, ok := h.limiters[host]
	if !ok {
		l = rate.NewLimiter(h.rps, 1)
		h.limiters[host] = l
	}
	return l
}

func (h *hostLimiter) wait(ctx context.Context, host string) error {
	return h.get(host).Wait(ctx)
}
