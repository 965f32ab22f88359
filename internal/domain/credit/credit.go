// Package credit reassigns part of a pass's value to its receiver.
//
// The transform operates purely on the value-record stream: it never touches
// states, encodings, or models, and the sum of total values over a match is
// conserved exactly.
package credit

import (
	"fmt"

	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
)

// Assigner moves a configured fraction of a completed pass's value to the
// teammate who received it.
type Assigner struct {
	fraction float64
}

// NewAssigner validates the fraction at construction. Fraction 0 disables
// the transform.
func NewAssigner(fraction float64) (*Assigner, error) {
	if fraction < 0 || fraction > 1 {
		return nil, fmt.Errorf("%w: got %g", ErrInvalidFraction, fraction)
	}
	return &Assigner{fraction: fraction}, nil
}

// Enabled reports whether the transform does anything.
func (a *Assigner) Enabled() bool { return a.fraction > 0 }

// Apply rewrites the record stream for one match. For every pass immediately
// followed by a reception by a teammate, the configured fraction of the
// pass's components moves into a new record attributed to the receiver, and
// the pass's record shrinks by the same amounts. Records stay ordered by
// action index; receiver-credit records carry the pass's index.
func (a *Assigner) Apply(actions model.ActionLog, records []model.ValueRecord) []model.ValueRecord {
	if !a.Enabled() || len(records) != actions.Len() {
		return records
	}

	out := make([]model.ValueRecord, 0, len(records))
	for i, rec := range records {
		if i+1 < actions.Len() {
			cur, next := actions.At(i), actions.At(i+1)
			if cur.Type == spadl.Pass && next.Type == spadl.Reception && next.TeamID == cur.TeamID {
				offShare := rec.OffensiveValue * a.fraction
				defShare := rec.DefensiveValue * a.fraction

				rec.OffensiveValue -= offShare
				rec.DefensiveValue -= defShare
				rec.TotalValue = rec.OffensiveValue + rec.DefensiveValue

				out = append(out, rec, model.ValueRecord{
					Index:          rec.Index,
					GameID:         rec.GameID,
					TeamID:         next.TeamID,
					PlayerID:       next.PlayerID,
					OffensiveValue: offShare,
					DefensiveValue: defShare,
					TotalValue:     offShare + defShare,
				})
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}
