// Package state derives game states from an action log.
//
// A GameState is a read-only view over the log: an index range of the most
// recent actions plus the score differential and elapsed time at that point.
// It never copies actions and never exists independent of the log that
// produced it.
package state

import (
	"fmt"

	"github.com/okian/vaep/internal/domain/model"
)

// DefaultWindowK is the number of recent actions in a game state.
const DefaultWindowK = 3

// GameState is a snapshot anchored after the first `Anchor` actions of the
// log: the window holds the at most k most recent of those actions in
// chronological order. Anchor 0 is the synthetic start-of-match state with an
// empty window.
type GameState struct {
	// Window is a view into the underlying log; callers must not mutate it.
	Window []model.Action
	// Anchor is the number of actions played so far (the state index).
	Anchor int
	// ScoreDiff is goals-for minus goals-against from TeamID's perspective.
	ScoreDiff int
	// TeamID is the team in possession: the acting team of the most recent
	// action, or empty for the start state.
	TeamID string
	// TimeSeconds is the elapsed time of the most recent action, 0 at start.
	TimeSeconds float64
	// PeriodID is the period of the most recent action, 0 at start.
	PeriodID int
}

// Start reports whether this is the synthetic start-of-match state.
func (s GameState) Start() bool { return s.Anchor == 0 }

// Latest returns the most recent action in the window and true, or a zero
// action and false for the start state.
func (s GameState) Latest() (model.Action, bool) {
	if len(s.Window) == 0 {
		return model.Action{}, false
	}
	return s.Window[len(s.Window)-1], true
}

// Option applies a configuration option to the Extractor.
type Option func(*Extractor)

// WithWindowK sets the window size.
func WithWindowK(k int) Option {
	return func(e *Extractor) {
		if k >= 1 {
			e.windowK = k
		}
	}
}

// Extractor derives game states from an immutable action log. It is
// side-effect-free and safe for concurrent use.
type Extractor struct {
	windowK int
}

// NewExtractor creates an extractor with configuration options.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{windowK: DefaultWindowK}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WindowK returns the configured window size.
func (e *Extractor) WindowK() int { return e.windowK }

// StateAt returns the game state after the first i actions of the log.
// i ranges over [0, log.Len()]: 0 is the synthetic start state, log.Len() is
// the state after the final action. The pre-state of action at position p
// (0-based) is StateAt(log, p); its post-state is StateAt(log, p+1).
func (e *Extractor) StateAt(log model.ActionLog, i int) (GameState, error) {
	if i < 0 || i > log.Len() {
		return GameState{}, fmt.Errorf("game %s: state %d of %d actions: %w",
			log.GameID(), i, log.Len(), ErrOutOfRange)
	}
	if i == 0 {
		return GameState{Anchor: 0}, nil
	}

	from := i - e.windowK
	if from < 0 {
		from = 0
	}
	latest := log.At(i - 1)
	return GameState{
		Window:      log.Slice(from, i),
		Anchor:      i,
		ScoreDiff:   scoreDiff(log, i, latest.TeamID),
		TeamID:      latest.TeamID,
		TimeSeconds: latest.TimeSeconds,
		PeriodID:    latest.PeriodID,
	}, nil
}

// scoreDiff counts goals over the first n actions from teamID's perspective.
func scoreDiff(log model.ActionLog, n int, teamID string) int {
	diff := 0
	for _, a := range log.Slice(0, n) {
		switch {
		case a.IsGoal():
			if a.TeamID == teamID {
				diff++
			} else {
				diff--
			}
		case a.IsOwnGoal():
			if a.TeamID == teamID {
				diff--
			} else {
				diff++
			}
		}
	}
	return diff
}
