package aggregator

import "time"

type systemClock struct{}

// Now return current UTC time.
func (c systemClock) Now() *time.Time {
	t := time.Now().UTC()
	return &t
}
