// Package model contains domain models passed between layers.
package model

import (
	"fmt"

	"github.com/okian/vaep/internal/domain/spadl"
)

// Action represents one recorded on-ball event. Immutable once recorded.
// Fields mirror the match-log JSON schema.
type Action struct {
	Index       int              `json:"index"`        // unique, strictly increasing within a match
	GameID      string           `json:"game_id"`      // match identifier
	PeriodID    int              `json:"period_id"`    // 1 = first half, 2 = second half
	TimeSeconds float64          `json:"time_seconds"` // elapsed seconds within the period
	TeamID      string           `json:"team_id"`      // acting team
	PlayerID    string           `json:"player_id"`    // actor
	StartX      float64          `json:"start_x"`
	StartY      float64          `json:"start_y"`
	EndX        float64          `json:"end_x"`
	EndY        float64          `json:"end_y"`
	Type        spadl.ActionType `json:"type_id"`
	Result      spadl.Result     `json:"result_id"`
	BodyPart    spadl.BodyPart   `json:"bodypart_id"`
}

// IsGoal reports whether the action put the ball in the opponent's net.
func (a Action) IsGoal() bool {
	return spadl.IsShot(a.Type) && a.Result == spadl.Success
}

// IsOwnGoal reports whether the action put the ball in the acting team's net.
func (a Action) IsOwnGoal() bool {
	return a.Result == spadl.OwnGoal
}

// checkVocabulary rejects enum ids decoded from external match files that
// have no entry in the closed vocabularies. The name tables are the source
// of truth: an out-of-range id stringifies to "unknown", which no table
// resolves. One-hot encoders index vectors by these ids and rely on every
// logged action passing this check.
func (a Action) checkVocabulary() error {
	if _, ok := spadl.ActionTypeFromName(a.Type.String()); !ok {
		return fmt.Errorf("type_id %d: %w", int(a.Type), ErrUnknownAction)
	}
	if _, ok := spadl.ResultFromName(a.Result.String()); !ok {
		return fmt.Errorf("result_id %d: %w", int(a.Result), ErrUnknownAction)
	}
	if _, ok := spadl.BodyPartFromName(a.BodyPart.String()); !ok {
		return fmt.Errorf("bodypart_id %d: %w", int(a.BodyPart), ErrUnknownAction)
	}
	return nil
}

// ValueRecord is the per-action output of the valuation engine.
// TotalValue is always the exact sum of the two components, computed from the
// acting team's perspective.
type ValueRecord struct {
	Index          int     `json:"index"`
	GameID         string  `json:"game_id"`
	TeamID         string  `json:"team_id"`
	PlayerID       string  `json:"player_id"`
	OffensiveValue float64 `json:"offensive_value"`
	DefensiveValue float64 `json:"defensive_value"`
	TotalValue     float64 `json:"total_value"`
}
