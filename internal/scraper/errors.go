package scraper

import (
	"errors"
	"fmt"

	"github.com/MichalMitros/price-monitor/internal/adapter"
	"github.com/MichalMitros/price-monitor/internal/fetcher"
)

// ErrValidation matches validation errors of mapping configuration.
var ErrValidation = errors.New("invalid mapping configuration")

// ValidationError is returned for mapping that can't be scraped with its configuration.
// No fetch is attempted for such mapping.
type ValidationError struct {
	MappingID int64
	Err       error
}

// Error returns error message.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration of mapping %d: %v", e.MappingID, e.Err)
}

// Unwrap returns underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// errorKind returns short name of unit failure cause.
func errorKind(err error) string {
	var (
		fetchErr      *fetcher.FetchError
		parseErr      *adapter.ParseError
		validationErr *ValidationError
	)

	switch {
	case errors.As(err, &validationErr):
		return "validation"
	case errors.As(err, &fetchErr):
		return string(fetchErr.Kind)
	case errors.As(err, &parseErr):
		return string(parseErr.Kind)
	default:
		return "internal"
	}
}
