package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// hostLimiters holds separate rate limiter for every fetched host.
type hostLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// newHostLimiters returns limiters allowing one request per interval after burst.
// Non-positive interval disables limiting.
func newHostLimiters(interval time.Duration, burst int) *hostLimiters {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}

	return &hostLimiters{
		limit:    limit,
		burst:    max(burst, 1),
		limiters: make(map[string]*rate.Limiter),
	}
}

func (h *hostLimiters) wait(ctx context.Context, rawURL string) error {
	if h.limit == rate.Inf {
		return nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("can't parse url %q: %w", rawURL, err)
	}

	h.mu.Lock()
	limiter, ok := h.limiters[parsed.Host]
	if !ok {
		limiter = rate.NewLimiter(h.limit, h.burst)
		h.limiters[parsed.Host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}
