package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/MichalMitros/price-monitor/internal/platform/metrics"
	"github.com/cenkalti/backoff/v4"
)

const maxBodySize = 10 << 20

//go:generate mockery --name Renderer --filename renderer.go

// Renderer loads pages in headless browser and returns resolved HTML.
type Renderer interface {
	Render(ctx context.Context, url string, waitForSelector string) (string, error)
}

// Strategy is page fetching strategy.
type Strategy int

// Fetch strategies.
const (
	// Lightweight fetches page with plain HTTP request.
	Lightweight Strategy = iota
	// Rendered loads page in headless browser and waits for client-side rendering.
	Rendered
)

// String returns strategy name.
func (s Strategy) String() string {
	if s == Rendered {
		return "rendered"
	}
	return "lightweight"
}

// Request describes page to fetch.
type Request struct {
	URL             string
	Strategy        Strategy
	WaitForSelector string
}

// Option is custom configuration of Fetcher.
type Option func(f *Fetcher)

// Fetcher fetches pages with retries.
type Fetcher struct {
	client         *http.Client
	userAgent      string
	renderer       Renderer
	timeout        time.Duration
	attempts       uint64
	initialBackOff time.Duration
	maxBackOff     time.Duration
	limiters       *hostLimiters
}

// NewFetcher returns new Fetcher making at most 3 attempts with backoff growing from 4s to 10s.
func NewFetcher(client *http.Client, userAgent string, ops ...Option) *Fetcher {
	f := &Fetcher{
		client:         client,
		userAgent:      userAgent,
		timeout:        30 * time.Second,
		attempts:       3,
		initialBackOff: 4 * time.Second,
		maxBackOff:     10 * time.Second,
		limiters:       newHostLimiters(0, 0),
	}

	for _, op := range ops {
		op(f)
	}

	return f
}

// Fetch returns content of requested page.
// Every failed attempt is retried until attempts are exhausted, then *FetchError is returned.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (string, error) {
	var (
		content  string
		attempts int
	)

	operation := func() error {
		attempts++
		if err := f.limiters.wait(ctx, req.URL); err != nil {
			return backoff.Permanent(err)
		}

		start := time.Now()
		var err error
		content, err = f.fetchOnce(ctx, req)
		metrics.RecordFetch(req.Strategy.String(), err, time.Since(start))

		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(f.newBackOff(), f.attempts-1), ctx))
	if err != nil {
		return "", newFetchError(req.URL, attempts, err)
	}

	return content, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, req Request) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	if req.Strategy == Rendered {
		if f.renderer == nil {
			return "", backoff.Permanent(errors.New("rendered fetching is not configured"))
		}
		return f.renderer.Render(attemptCtx, req.URL, req.WaitForSelector)
	}

	return f.get(attemptCtx, req.URL)
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("can't build http request: %w", err))
	}

	httpReq.Header.Add("Accept", "text/html,application/xhtml+xml")
	httpReq.Header.Add("Accept-Language", "pl-PL,pl;q=0.9,en;q=0.8")
	httpReq.Header.Add("User-Agent", f.userAgent)

	resp, err := f.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return "", &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("can't read http response: %w", err)
	}

	return string(body), nil
}

func (f *Fetcher) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = f.initialBackOff
	b.MaxInterval = f.maxBackOff
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	return b
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("response status %d", e.code)
}

func newFetchError(url string, attempts int, err error) *FetchError {
	fetchErr := &FetchError{
		URL:      url,
		Attempts: attempts,
		Err:      err,
	}

	var (
		statusErr *statusError
		netErr    net.Error
	)

	switch {
	case errors.As(err, &statusErr):
		fetchErr.Kind = KindHTTPStatus
		fetchErr.StatusCode = statusErr.code
	case errors.Is(err, context.DeadlineExceeded):
		fetchErr.Kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		fetchErr.Kind = KindTimeout
	default:
		fetchErr.Kind = KindNetwork
	}

	return fetchErr
}

// WithRenderer sets Renderer used for rendered fetching.
func WithRenderer(r Renderer) Option {
	return func(f *Fetcher) {
		f.renderer = r
	}
}

// WithTimeout sets timeout of single fetch attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithRetries sets number of attempts and exponential backoff bounds between them.
func WithRetries(attempts uint64, initialBackOff, maxBackOff time.Duration) Option {
	return func(f *Fetcher) {
		f.attempts = max(attempts, 1)
		f.initialBackOff = initialBackOff
		f.maxBackOff = maxBackOff
	}
}

// WithHostRateLimit limits number of requests sent to single host.
// Interval is minimal time between requests after burst is used.
func WithHostRateLimit(interval time.Duration, burst int) Option {
	return func(f *Fetcher) {
		f.limiters = newHostLimiters(interval, burst)
	}
}
