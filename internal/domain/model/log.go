package model

import (
	"errors"
	"fmt"
)

// Sentinel kinds for action-log validation errors.
var (
	ErrEmptyLog      = errors.New("action log is empty")
	ErrUnorderedLog  = errors.New("action log is not chronologically ordered")
	ErrUnknownAction = errors.New("action is outside the SPADL vocabulary")
)

// ActionLog is the ordered, immutable sequence of actions for one match.
// Construct it with NewActionLog; the zero value is empty.
type ActionLog struct {
	gameID  string
	actions []Action
}

// NewActionLog validates and wraps a chronological action slice.
// Indices must be strictly increasing, time must not decrease within a
// period, and every enum field must name a known vocabulary entry. The slice
// is copied so later mutation of the input cannot alter the log.
func NewActionLog(gameID string, actions []Action) (ActionLog, error) {
	if len(actions) == 0 {
		return ActionLog{}, fmt.Errorf("game %s: %w", gameID, ErrEmptyLog)
	}
	for i, a := range actions {
		if err := a.checkVocabulary(); err != nil {
			return ActionLog{}, fmt.Errorf("game %s: action %d: %w", gameID, i, err)
		}
	}
	for i := 1; i < len(actions); i++ {
		prev, cur := actions[i-1], actions[i]
		if cur.Index <= prev.Index {
			return ActionLog{}, fmt.Errorf("game %s: action %d index %d not after %d: %w",
				gameID, i, cur.Index, prev.Index, ErrUnorderedLog)
		}
		if cur.PeriodID == prev.PeriodID && cur.TimeSeconds < prev.TimeSeconds {
			return ActionLog{}, fmt.Errorf("game %s: action %d time %.1f before %.1f: %w",
				gameID, i, cur.TimeSeconds, prev.TimeSeconds, ErrUnorderedLog)
		}
	}
	cp := make([]Action, len(actions))
	copy(cp, actions)
	return ActionLog{gameID: gameID, actions: cp}, nil
}

// GameID returns the match identifier.
func (l ActionLog) GameID() string { return l.gameID }

// Len returns the number of actions in the log.
func (l ActionLog) Len() int { return len(l.actions) }

// At returns the action at position i (0-based). Callers must keep i in range.
func (l ActionLog) At(i int) Action { return l.actions[i] }

// Slice returns the actions in [from, to) without copying. The returned
// slice is a read-only view; callers must not mutate it.
func (l ActionLog) Slice(from, to int) []Action { return l.actions[from:to] }
