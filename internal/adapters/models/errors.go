package models

import "errors"

// Sentinel kinds for probability model errors.
var (
	// ErrInvalidProbability means a model violated its output contract by
	// returning a value outside [0,1] or NaN. Fatal for the match being
	// processed; other matches continue.
	ErrInvalidProbability = errors.New("model returned invalid probability")

	// ErrSchemaMismatch means a model's expected feature schema does not
	// match the encoder's declared schema. Fatal at initialization.
	ErrSchemaMismatch = errors.New("model schema does not match encoder schema")

	// ErrUnknownModel means the bundle has no model for the requested
	// target/encoding pair.
	ErrUnknownModel = errors.New("no model for target/encoding pair")
)
