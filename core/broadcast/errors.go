package broadcast

import "errors"

var (
	// ErrClosed is returned when publishing to or closing an already closed
	// broadcaster.
	ErrClosed = errors.New("broadcaster is closed")
)
