// Package valuation implements the hybrid action-valuation formula.
//
// For every action the engine scores two renderings of the surrounding game
// states: the pre-state through the result-free models and the post-state
// through the full models. Using the result-free rendering on the pre-state
// is the entire leak fix; swapping the encodings would let an action's own
// outcome leak into its "before" probability and mis-credit defenders and
// receivers.
package valuation

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/vaep/internal/domain/feature"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/okian/vaep/internal/domain/state"
	"github.com/okian/vaep/pkg/logger"
	"github.com/okian/vaep/pkg/metrics"
)

// Default formula constants. The phase gap and set-piece priors follow the
// published VAEP constants.
const (
	defaultPhaseGapSeconds = 10.0
	defaultPenaltyPrior    = 0.792453
	defaultCornerPrior     = 0.0465
)

// Estimator scores one encoding variant for both targets. Implementations
// must be safe for concurrent read-only use.
type Estimator interface {
	// Scores estimates the probability the acting team scores soon.
	Scores(ctx context.Context, v feature.Vector) (float64, error)
	// Concedes estimates the probability the acting team concedes soon.
	Concedes(ctx context.Context, v feature.Vector) (float64, error)
}

// SignConvention controls how the conceding term combines into total value.
type SignConvention int

// Sign conventions.
const (
	// SignNegate subtracts the change in conceding probability (the
	// VAEP convention): raising the odds of conceding lowers the value.
	SignNegate SignConvention = iota
	// SignSigned keeps the raw change in conceding probability.
	SignSigned
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithEndOfMatchProbability sets the probability substituted for the terminal
// action's post-state.
func WithEndOfMatchProbability(p float64) Option {
	return func(e *Engine) {
		if p >= 0 && p <= 1 {
			e.endOfMatch = p
		}
	}
}

// WithSignConvention sets how the conceding term combines into total value.
func WithSignConvention(c SignConvention) Option {
	return func(e *Engine) { e.sign = c }
}

// WithPhaseGap sets the largest gap between consecutive actions that still
// counts as the same phase of play.
func WithPhaseGap(seconds float64) Option {
	return func(e *Engine) {
		if seconds > 0 {
			e.phaseGap = seconds
		}
	}
}

// WithSetPiecePriors sets the fixed pre-state scoring probabilities for
// penalties and corners.
func WithSetPiecePriors(penalty, corner float64) Option {
	return func(e *Engine) {
		if penalty >= 0 && penalty <= 1 {
			e.penaltyPrior = penalty
		}
		if corner >= 0 && corner <= 1 {
			e.cornerPrior = corner
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine orchestrates state extraction, both feature encodings, and the four
// probability estimates into one value record per action.
type Engine struct {
	extractor *state.Extractor
	fullEnc   feature.Encoder
	rfEnc     feature.Encoder
	full      Estimator
	rf        Estimator

	endOfMatch   float64
	sign         SignConvention
	phaseGap     float64
	penaltyPrior float64
	cornerPrior  float64

	logger logger.Logger
}

// New creates an engine. The full estimator must be trained against the full
// encoder's schema and the result-free estimator against the result-free
// encoder's schema; that pairing is validated where the models are loaded.
func New(extractor *state.Extractor, fullEnc, rfEnc feature.Encoder, full, rf Estimator, opts ...Option) *Engine {
	e := &Engine{
		extractor:    extractor,
		fullEnc:      fullEnc,
		rfEnc:        rfEnc,
		full:         full,
		rf:           rf,
		endOfMatch:   0,
		sign:         SignNegate,
		phaseGap:     defaultPhaseGapSeconds,
		penaltyPrior: defaultPenaltyPrior,
		cornerPrior:  defaultCornerPrior,
		logger:       logger.Get().Named("valuation"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValueMatch values every action of one match, in order. The output stream
// has exactly log.Len() records. A model contract violation aborts the whole
// match with no partial results.
func (e *Engine) ValueMatch(ctx context.Context, log model.ActionLog) ([]model.ValueRecord, error) {
	n := log.Len()
	records := make([]model.ValueRecord, 0, n)

	for i := 1; i <= n; i++ {
		rec, err := e.valueAction(ctx, log, i)
		if err != nil {
			return nil, fmt.Errorf("game %s action %d: %w", log.GameID(), log.At(i-1).Index, err)
		}
		records = append(records, rec)
	}

	metrics.RecordMatchValued()
	return records, nil
}

// valueAction applies the hybrid formula to the i-th action (1-based).
func (e *Engine) valueAction(ctx context.Context, log model.ActionLog, i int) (model.ValueRecord, error) {
	action := log.At(i - 1)

	// Step 1: pre-state, result-free rendering. The result-free models never
	// see the outcome of the action that led into this state.
	pre, err := e.extractor.StateAt(log, i-1)
	if err != nil {
		return model.ValueRecord{}, err
	}
	preScores, preConcedes, err := e.preProbabilities(ctx, pre, action)
	if err != nil {
		return model.ValueRecord{}, err
	}

	// Step 2: post-state, full rendering. The terminal action has no future
	// state to estimate; substitute the configured end-of-match probability
	// instead of calling the models.
	var postScores, postConcedes float64
	if i == log.Len() {
		postScores, postConcedes = e.endOfMatch, e.endOfMatch
	} else {
		post, err := e.extractor.StateAt(log, i)
		if err != nil {
			return model.ValueRecord{}, err
		}
		postScores, postConcedes, err = e.predict(ctx, e.full, e.fullEnc.Encode(post))
		if err != nil {
			return model.ValueRecord{}, err
		}
	}

	off := postScores - preScores
	def := postConcedes - preConcedes
	if e.sign == SignNegate {
		def = -def
	}

	metrics.RecordActionValued()
	return model.ValueRecord{
		Index:          action.Index,
		GameID:         action.GameID,
		TeamID:         action.TeamID,
		PlayerID:       action.PlayerID,
		OffensiveValue: off,
		DefensiveValue: def,
		TotalValue:     off + def,
	}, nil
}

// preProbabilities scores the pre-state with the result-free models and maps
// the estimates into the acting team's perspective.
func (e *Engine) preProbabilities(ctx context.Context, pre state.GameState, action model.Action) (scores, concedes float64, err error) {
	rfScores, rfConcedes, err := e.predict(ctx, e.rf, e.rfEnc.Encode(pre))
	if err != nil {
		return 0, 0, err
	}

	// Perspective flip: the pre-state probabilities belong to the team that
	// was in possession. If possession changed hands, the previous team's
	// odds of scoring are this team's odds of conceding and vice versa. The
	// start state has no possessing team and needs no flip.
	scores, concedes = rfScores, rfConcedes
	if prev, ok := pre.Latest(); ok {
		if prev.TeamID != action.TeamID {
			scores, concedes = rfConcedes, rfScores
		}

		// A long gap or a period change breaks the phase of play: the old
		// momentum no longer carries any odds.
		gap := action.TimeSeconds - prev.TimeSeconds
		if gap < 0 {
			gap = -gap
		}
		if gap > e.phaseGap || action.PeriodID != prev.PeriodID {
			scores, concedes = 0, 0
		}

		// After a goal the game restarts from kickoff; the previous state's
		// odds are gone.
		if prev.IsGoal() {
			scores, concedes = 0, 0
		}
	}

	// Set pieces carry fixed, well-known scoring odds regardless of the play
	// that won them.
	switch {
	case action.Type == spadl.ShotPenalty:
		scores = e.penaltyPrior
	case spadl.IsCorner(action.Type):
		scores = e.cornerPrior
	}

	return scores, concedes, nil
}

// predict scores one vector for both targets, recording latency and logging
// the offending vector on a contract violation.
func (e *Engine) predict(ctx context.Context, est Estimator, v feature.Vector) (scores, concedes float64, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordPredictionLatency(float64(time.Since(start).Milliseconds()))
	}()

	scores, err = est.Scores(ctx, v)
	if err == nil {
		concedes, err = est.Concedes(ctx, v)
	}
	if err != nil {
		metrics.RecordModelError()
		e.logger.Error(ctx, "model prediction failed",
			logger.Error(err),
			logger.Any("features", v.Clone()),
		)
		return 0, 0, err
	}
	return scores, concedes, nil
}
