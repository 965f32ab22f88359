// Package testmatch generates synthetic SPADL matches for exercising the
// valuation pipeline without real provider data.
package testmatch

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/okian/vaep/internal/adapters/matchio"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/spadl"
	"github.com/okian/vaep/pkg/logger"
)

// Constants for match structure.
const (
	playersPerTeam       = 11
	periodSeconds        = 45 * 60.0
	minActionGapSeconds  = 1.0
	maxActionGapSeconds  = 8.0
	defaultActionsTarget = 1500
)

// Constants for play outcome probabilities.
const (
	passSuccessRate    = 0.8
	dribbleSuccessRate = 0.7
	shotSuccessRate    = 0.11
	shotChance         = 0.04
	dribbleChance      = 0.2
	turnoverRate       = 0.5
)

// Constants for pitch movement ranges.
const (
	maxPassLength    = 30.0
	maxDribbleLength = 12.0
	shotZoneFromX    = 75.0
)

// Generator produces reproducible synthetic matches.
type Generator struct {
	cfg *Config
	rng *rand.Rand
}

// NewGenerator creates a generator from the given config.
func NewGenerator(cfg *Config) *Generator {
	if cfg.NumActions <= 0 {
		cfg.NumActions = defaultActionsTarget
	}
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Run generates all configured matches and writes them to the output directory.
func (g *Generator) Run(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	logger.Get().Info(ctx, "generating matches",
		logger.Int("matches", g.cfg.NumMatches),
		logger.Int("actionsPerMatch", g.cfg.NumActions))

	if g.cfg.OutputDir != "" {
		if err := os.MkdirAll(g.cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	for i := 0; i < g.cfg.NumMatches; i++ {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		log, err := g.Match()
		if err != nil {
			return stats, fmt.Errorf("generate match %d: %w", i, err)
		}
		stats.MatchesGenerated++
		stats.ActionsGenerated += log.Len()
		for j := 0; j < log.Len(); j++ {
			a := log.At(j)
			if spadl.IsShot(a.Type) {
				stats.ShotsGenerated++
			}
			if a.IsGoal() {
				stats.GoalsGenerated++
			}
		}

		if g.cfg.OutputDir != "" {
			path := filepath.Join(g.cfg.OutputDir, fmt.Sprintf("match_%04d.json", i))
			if err := matchio.WriteMatch(path, log); err != nil {
				return stats, err
			}
			if g.cfg.Verbose {
				logger.Get().Debug(ctx, "wrote match file",
					logger.String("path", path),
					logger.Int("actions", log.Len()))
			}
		}
	}

	logger.Get().Info(ctx, "generation complete",
		logger.Int("matches", stats.MatchesGenerated),
		logger.Int("actions", stats.ActionsGenerated),
		logger.Int("goals", stats.GoalsGenerated))
	return stats, nil
}

// Match generates one match as a validated action log.
func (g *Generator) Match() (model.ActionLog, error) {
	gameID := uuid.New().String()
	home := g.squad()
	away := g.squad()
	homeID := uuid.New().String()
	awayID := uuid.New().String()

	actions := make([]model.Action, 0, g.cfg.NumActions)
	actionsPerPeriod := g.cfg.NumActions / 2

	for period := 1; period <= 2; period++ {
		t := 0.0
		attacking := period == 1 // kickoff alternates by period
		x, y := spadl.FieldLength/2, spadl.FieldWidth/2

		for len(actions) < actionsPerPeriod*period {
			teamID, players := homeID, home
			if !attacking {
				teamID, players = awayID, away
			}

			a := g.nextAction(teamID, players, x, y)
			a.Index = len(actions) + 1
			a.GameID = gameID
			a.PeriodID = period
			a.TimeSeconds = t
			actions = append(actions, a)

			x, y = a.EndX, a.EndY
			t += minActionGapSeconds + g.rng.Float64()*(maxActionGapSeconds-minActionGapSeconds)
			if t > periodSeconds {
				break
			}

			// Possession changes on failure, goals restart at the centre spot.
			switch {
			case a.IsGoal():
				attacking = !attacking
				x, y = spadl.FieldLength/2, spadl.FieldWidth/2
			case a.Result == spadl.Fail && g.rng.Float64() < turnoverRate:
				attacking = !attacking
				// Coordinates flip with the attacking direction.
				x, y = spadl.FieldLength-x, spadl.FieldWidth-y
			}
		}
	}

	return model.NewActionLog(gameID, actions)
}

// squad returns a set of player IDs for one team.
func (g *Generator) squad() []string {
	ids := make([]string, playersPerTeam)
	for i := range ids {
		ids[i] = uuid.New().String()
	}
	return ids
}

// nextAction picks the next action given the ball position.
func (g *Generator) nextAction(teamID string, players []string, x, y float64) model.Action {
	player := players[g.rng.Intn(len(players))]
	a := model.Action{
		TeamID:   teamID,
		PlayerID: player,
		StartX:   x,
		StartY:   y,
		BodyPart: spadl.Foot,
	}

	roll := g.rng.Float64()
	switch {
	case x >= shotZoneFromX && roll < shotChance/(1.0-shotZoneFromX/spadl.FieldLength):
		a.Type = spadl.Shot
		a.EndX = spadl.FieldLength
		a.EndY = spadl.FieldWidth / 2
		a.Result = spadl.Fail
		if g.rng.Float64() < shotSuccessRate {
			a.Result = spadl.Success
		}
	case roll < shotChance+dribbleChance:
		a.Type = spadl.Dribble
		a.EndX = clampX(x + g.rng.Float64()*maxDribbleLength)
		a.EndY = clampY(y + (g.rng.Float64()-0.5)*maxDribbleLength)
		a.Result = spadl.Fail
		if g.rng.Float64() < dribbleSuccessRate {
			a.Result = spadl.Success
		}
	default:
		a.Type = spadl.Pass
		a.EndX = clampX(x + (g.rng.Float64()-0.3)*maxPassLength)
		a.EndY = clampY(y + (g.rng.Float64()-0.5)*maxPassLength)
		a.Result = spadl.Fail
		if g.rng.Float64() < passSuccessRate {
			a.Result = spadl.Success
		}
	}
	return a
}

func clampX(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > spadl.FieldLength {
		return spadl.FieldLength
	}
	return v
}

func clampY(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > spadl.FieldWidth {
		return spadl.FieldWidth
	}
	return v
}
