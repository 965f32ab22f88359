// Package models defines the contract for externally supplied probability
// estimators and the four-model bundle the valuation engine scores with.
//
// Models are opaque scoring functions: the engine never trains them, only
// calls Predict and validates the output range. Implementations must be safe
// for concurrent read-only use.
package models

import (
	"context"
	"fmt"
	"math"

	"github.com/okian/vaep/internal/domain/feature"
)

// Target identifies the question a model answers.
type Target string

// Model targets.
const (
	TargetScores   Target = "scores"
	TargetConcedes Target = "concedes"
)

// Encoding identifies which feature rendering a model was trained against.
type Encoding string

// Feature encodings.
const (
	EncodingFull       Encoding = "full"
	EncodingResultFree Encoding = "resultfree"
)

// Key identifies one of the four models in a bundle.
type Key struct {
	Target   Target
	Encoding Encoding
}

func (k Key) String() string {
	return string(k.Target) + "/" + string(k.Encoding)
}

// Model maps a feature vector to a probability in [0,1].
type Model interface {
	// Predict scores a single feature vector, honoring ctx for cancellation.
	Predict(ctx context.Context, v feature.Vector) (float64, error)

	// Schema returns the feature names the model expects, in input order.
	Schema() []string
}

// checkProbability enforces the model output contract.
func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %g", ErrInvalidProbability, p)
	}
	return nil
}
