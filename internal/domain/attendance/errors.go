package attendance

import "errors"

// Attendance domain errors
var (
	// State machine errors
	ErrInvalidTransition = errors.New("action is not allowed in the current attendance status")
	ErrUnknownAction     = errors.New("unknown attendance action")
)
