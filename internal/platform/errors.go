package platform

import (
	"errors"
)

var (
	// ErrNotFound is returned when requested record doesn't exist.
	ErrNotFound = errors.New("record not found")
	// ErrJobNotQueued is returned when job can't be started because it is not waiting in queue.
	ErrJobNotQueued = errors.New("scrape job is not queued")
)
