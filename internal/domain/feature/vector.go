// Package feature turns game states into fixed-shape feature vectors.
//
// Two encoders share one generated schema. The full encoder renders every
// feature; the result-free encoder renders the identical schema but replaces
// every feature derived from the most recent action's outcome with a neutral
// placeholder. That masking is the single mechanism keeping an action's own
// result out of its pre-state.
package feature

// Vector is a fixed-shape feature vector. Positions correspond one-to-one to
// the encoder's declared schema.
type Vector []float64

// Clone returns an independent copy of the vector.
func (v Vector) Clone() Vector {
	cp := make(Vector, len(v))
	copy(cp, v)
	return cp
}
