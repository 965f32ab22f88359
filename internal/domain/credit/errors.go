package credit

import "errors"

// Sentinel kinds for credit configuration errors.
var (
	ErrInvalidFraction = errors.New("credit fraction must be in [0,1]")
)
