package lua

import "errors"

// Errors returned by filter loading and execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrInvalidAction is returned when a handler returns something
	// other than nil, "remove", "unwrap" or a wrap table.
	ErrInvalidAction = errors.New("invalid filter action")
)
