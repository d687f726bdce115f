package fetcher

import (
	"errors"
	"fmt"
)

// Kind is kind of fetch failure.
type Kind string

// Fetch failure kinds.
const (
	KindTimeout    Kind = "timeout"
	KindHTTPStatus Kind = "http_status"
	KindNetwork    Kind = "network_error"
)

var (
	// ErrTimeout matches fetch errors caused by exceeded timeout.
	ErrTimeout = errors.New("fetch timed out")
	// ErrHTTPStatus matches fetch errors caused by non-2xx response status.
	ErrHTTPStatus = errors.New("response status is not 2xx")
	// ErrNetwork matches fetch errors caused by network or browser failures.
	ErrNetwork = errors.New("network error")
)

// FetchError is returned when page can't be fetched after all attempts.
type FetchError struct {
	Kind       Kind
	URL        string
	StatusCode int
	Attempts   int
	Err        error
}

// Error returns error message.
func (e *FetchError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("can't fetch %s (attempts: %d): status %d", e.URL, e.Attempts, e.StatusCode)
	default:
		return fmt.Sprintf("can't fetch %s (attempts: %d): %s: %v", e.URL, e.Attempts, e.Kind, e.Err)
	}
}

// Unwrap returns underlying error.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is reports whether target is sentinel of error's kind.
func (e *FetchError) Is(target error) bool {
	switch target {
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrHTTPStatus:
		return e.Kind == KindHTTPStatus
	case ErrNetwork:
		return e.Kind == KindNetwork
	}
	return false
}
