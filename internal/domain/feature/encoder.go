package feature

import (
	"math"

	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/okian/vaep/internal/domain/state"
)

// Opponent goal center in SPADL coordinates. Ingestion standardizes actions
// so the acting team always attacks toward the right.
const (
	goalX = spadl.FieldLength
	goalY = spadl.FieldWidth / 2
)

// neutralPlaceholder replaces masked outcome features. All zeros is the same
// rendering an unrecorded (in-progress) outcome gets, so masking an action
// type with no natural outcome is a no-op.
const neutralPlaceholder = 0.0

// Encoder turns a game state into a feature vector with a fixed declared
// schema.
type Encoder interface {
	// Encode renders the state. The output always has len(Schema()) entries.
	Encode(s state.GameState) Vector

	// Schema returns the feature names in output order. The schema is
	// identical for both encoder variants with the same window size.
	Schema() []string
}

// FullEncoder renders every feature, including those derived from the most
// recent action's outcome.
type FullEncoder struct {
	k      int
	schema []string
}

// NewFullEncoder creates a full encoder for windows of k actions.
func NewFullEncoder(k int) *FullEncoder {
	if k < 1 {
		k = state.DefaultWindowK
	}
	return &FullEncoder{k: k, schema: buildSchema(k)}
}

// Schema returns the feature names in output order.
func (e *FullEncoder) Schema() []string { return e.schema }

// Encode renders the state with the most recent action's outcome visible.
func (e *FullEncoder) Encode(s state.GameState) Vector {
	return encode(s, e.k, false)
}

// ResultFreeEncoder renders the identical schema but masks every feature that
// is a function of the most recent action's outcome.
type ResultFreeEncoder struct {
	k      int
	schema []string
	masked []int
}

// NewResultFreeEncoder creates a result-free encoder for windows of k actions.
func NewResultFreeEncoder(k int) *ResultFreeEncoder {
	if k < 1 {
		k = state.DefaultWindowK
	}
	return &ResultFreeEncoder{k: k, schema: buildSchema(k), masked: maskedIndices()}
}

// Schema returns the feature names in output order.
func (e *ResultFreeEncoder) Schema() []string { return e.schema }

// Encode renders the state with the most recent action's outcome masked.
func (e *ResultFreeEncoder) Encode(s state.GameState) Vector {
	v := encode(s, e.k, true)
	for _, i := range e.masked {
		v[i] = neutralPlaceholder
	}
	return v
}

// MaskedIndices exposes the masked schema positions for schema diagnostics.
func (e *ResultFreeEncoder) MaskedIndices() []int {
	cp := make([]int, len(e.masked))
	copy(cp, e.masked)
	return cp
}

// featuresPerSlot is the number of per-action features emitted per window slot.
const featuresPerSlot = spadl.NumActionTypes + spadl.NumResults + spadl.NumBodyParts + 12

// encode renders a state into a vector of len(buildSchema(k)). Window slots
// missing from short windows (early match, start state) stay zero.
func encode(s state.GameState, k int, maskLatest bool) Vector {
	size := k*featuresPerSlot + 2 + (k-1)*4 + 1
	v := make(Vector, size)

	n := len(s.Window)
	if n > k {
		n = k
	}

	var latest model.Action
	if n > 0 {
		latest = s.Window[len(s.Window)-1]
	}

	// Per-slot features; slot j walks backwards from the most recent action.
	for j := 0; j < n; j++ {
		a := s.Window[len(s.Window)-1-j]
		off := j * featuresPerSlot

		v[off+int(a.Type)] = 1
		off += spadl.NumActionTypes

		// Slot a0's result block is either masked here (left zero for the
		// result-free rendering) or emitted as recorded. InProgress has no
		// column and encodes as all zeros in both renderings.
		if !(j == 0 && maskLatest) && int(a.Result) < spadl.NumResults {
			v[off+int(a.Result)] = 1
		}
		off += spadl.NumResults

		v[off+int(a.BodyPart)] = 1
		off += spadl.NumBodyParts

		v[off+0] = a.StartX
		v[off+1] = a.StartY
		v[off+2] = a.EndX
		v[off+3] = a.EndY
		v[off+4] = dist(a.StartX, a.StartY, goalX, goalY)
		v[off+5] = angle(a.StartX, a.StartY)
		v[off+6] = dist(a.EndX, a.EndY, goalX, goalY)
		v[off+7] = angle(a.EndX, a.EndY)
		v[off+8] = a.EndX - a.StartX
		v[off+9] = a.EndY - a.StartY
		v[off+10] = dist(a.StartX, a.StartY, a.EndX, a.EndY)
		if a.TeamID == latest.TeamID {
			v[off+11] = 1
		}
	}

	base := k * featuresPerSlot
	v[base] = float64(s.PeriodID)
	v[base+1] = s.TimeSeconds
	base += 2

	for j := 1; j < k; j++ {
		if j < n {
			a := s.Window[len(s.Window)-1-j]
			v[base+j-1] = latest.TimeSeconds - a.TimeSeconds
		}
	}
	base += k - 1

	for j := 1; j < k; j++ {
		if j < n {
			a := s.Window[len(s.Window)-1-j]
			off := base + (j-1)*3
			v[off+0] = latest.StartX - a.EndX
			v[off+1] = latest.StartY - a.EndY
			v[off+2] = dist(a.EndX, a.EndY, latest.StartX, latest.StartY)
		}
	}
	base += (k - 1) * 3

	// Goal difference before the most recent action, from the acting team's
	// perspective: subtract any goal a0 itself produced.
	diff := s.ScoreDiff
	if n > 0 {
		switch {
		case latest.IsGoal():
			diff--
		case latest.IsOwnGoal():
			diff++
		}
	}
	v[base] = float64(diff)

	return v
}

func dist(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// angle returns the absolute angle to the goal center from (x, y).
func angle(x, y float64) float64 {
	dx := goalX - x
	dy := math.Abs(goalY - y)
	if dx <= 0 {
		return math.Pi / 2
	}
	return math.Atan2(dy, dx)
}
