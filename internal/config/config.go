// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error sentinels.
package config

import (
	"runtime"
)

// Sign conventions for combining the conceding term into the total value.
const (
	// SignNegate subtracts the change in conceding probability, so an action
	// that makes conceding more likely carries a negative defensive value.
	SignNegate = "negate"
	// SignSigned keeps the raw change in conceding probability.
	SignSigned = "signed"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WindowK is the number of recent actions in a game state.
	WindowK int `koanf:"window_k"`

	// EndOfMatchProbability is substituted for the post-state of the terminal
	// action instead of a model call.
	EndOfMatchProbability float64 `koanf:"end_of_match_probability"`

	// ConcedesSignConvention is how the conceding term combines into the
	// total value: "negate" or "signed".
	ConcedesSignConvention string `koanf:"concedes_sign_convention"`

	// CreditFraction is the share of a pass's value reassigned to the
	// receiver, in [0,1]. Zero disables receiver credit.
	CreditFraction float64 `koanf:"credit_fraction"`

	// PhaseGapSeconds is the largest gap between consecutive actions that
	// still counts as the same phase of play.
	PhaseGapSeconds float64 `koanf:"phase_gap_seconds"`

	// PenaltyPrior and CornerPrior are fixed pre-state scoring probabilities
	// for penalty kicks and corners.
	PenaltyPrior float64 `koanf:"penalty_prior"`
	CornerPrior  float64 `koanf:"corner_prior"`

	// ModelDir points at the directory holding the four model coefficient
	// files: scores_full.json, scores_resultfree.json, concedes_full.json,
	// concedes_resultfree.json.
	ModelDir string `koanf:"model_dir"`

	// WorkerCount sets the number of match-valuation workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the in-memory match-job queue.
	QueueSize int `koanf:"queue_size"`

	// DedupeSize sets the size of the match deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the result store.
	ShardCount int `koanf:"shard_count"`

	// OutputPath is where value records are written; empty means stdout.
	OutputPath string `koanf:"output_path"`
}

// Default configuration values. The phase gap and set-piece priors follow the
// published VAEP constants.
const (
	defaultWindowK         = 3
	defaultPhaseGapSeconds = 10.0
	defaultPenaltyPrior    = 0.792453
	defaultCornerPrior     = 0.0465
	defaultQueueSize       = 1024
	defaultDedupeSize      = 100_000
	defaultShardCount      = 8
)

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		WindowK:                defaultWindowK,
		EndOfMatchProbability:  0,
		ConcedesSignConvention: SignNegate,
		CreditFraction:         0,
		PhaseGapSeconds:        defaultPhaseGapSeconds,
		PenaltyPrior:           defaultPenaltyPrior,
		CornerPrior:            defaultCornerPrior,
		WorkerCount:            runtime.NumCPU(),
		QueueSize:              defaultQueueSize,
		DedupeSize:             defaultDedupeSize,
		ShardCount:             defaultShardCount,
	}
}
