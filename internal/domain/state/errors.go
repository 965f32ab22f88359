package state

import "errors"

// Sentinel kinds for state extraction errors.
var (
	// ErrOutOfRange means the caller asked for a state outside [0, log length].
	// It indicates a caller defect, never bad input data.
	ErrOutOfRange = errors.New("state index out of range")
)
