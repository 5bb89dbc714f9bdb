package pump

import "errors"

var (
	// ErrNilSource is returned when constructing a pump without a source
	// publisher.
	ErrNilSource = errors.New("source publisher cannot be nil")

	// ErrNilHandler is returned when constructing a pump without a handler.
	ErrNilHandler = errors.New("handler cannot be nil")

	// ErrPumpAlreadyStarted is returned when attempting to start a pump that
	// is already running.
	ErrPumpAlreadyStarted = errors.New("pump already started")

	// ErrPumpNotStarted is returned when attempting to stop a pump that is
	// not running.
	ErrPumpNotStarted = errors.New("pump not started")

	// ErrHealthcheckFailed is returned when the pump health check fails.
	ErrHealthcheckFailed = errors.New("healthcheck failed")

	// ErrPumpNotRunning is returned when the pump is not running during
	// health checks.
	ErrPumpNotRunning = errors.New("pump not running")

	// ErrPumpOverloaded is returned when all handler slots are busy.
	ErrPumpOverloaded = errors.New("pump overloaded - all handler slots busy")

	// ErrPumpStale is returned when the pump has not processed elements
	// recently.
	ErrPumpStale = errors.New("pump is stale - no recent activity")
)
