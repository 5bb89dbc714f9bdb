package stream

import "errors"

var (
	// ErrInvalidDemand is returned by Request when the requested amount is
	// zero or negative. The subscription stays active.
	ErrInvalidDemand = errors.New("requested demand must be positive")

	// ErrAlreadySubscribed is reported by single-subscriber publishers when
	// a second subscription is attempted while one is active.
	ErrAlreadySubscribed = errors.New("publisher already has an active subscriber")
)
