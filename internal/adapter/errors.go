package adapter

import (
	"errors"
	"fmt"
)

// ParseErrorKind is kind of extraction failure.
type ParseErrorKind string

// Extraction failure kinds.
const (
	KindSelectorNotFound ParseErrorKind = "selector_not_found"
	KindPriceUnparseable ParseErrorKind = "price_unparseable"
)

var (
	// ErrSelectorNotFound matches parse errors of selectors that matched nothing.
	ErrSelectorNotFound = errors.New("selector not found")
	// ErrPriceUnparseable matches parse errors of found elements without valid price.
	ErrPriceUnparseable = errors.New("price unparseable")
	// ErrNoPriceSelector is returned by validation of generic adapter without price selector.
	ErrNoPriceSelector = errors.New("price selector is not configured")
)

// ParseError is returned when price can't be extracted from page.
type ParseError struct {
	Kind     ParseErrorKind
	Selector string
	Text     string
}

// Error returns error message.
func (e *ParseError) Error() string {
	if e.Kind == KindPriceUnparseable {
		return fmt.Sprintf("can't parse price from %q found by %q", e.Text, e.Selector)
	}
	return fmt.Sprintf("no element found by %q", e.Selector)
}

// Is reports whether target is sentinel of error's kind.
func (e *ParseError) Is(target error) bool {
	switch target {
	case ErrSelectorNotFound:
		return e.Kind == KindSelectorNotFound
	case ErrPriceUnparseable:
		return e.Kind == KindPriceUnparseable
	}
	return false
}
