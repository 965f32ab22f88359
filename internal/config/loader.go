package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if VAEP_CONFIG is set
//  3. env (prefix VAEP_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VAEP_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: VAEP_WINDOW_K, VAEP_CREDIT_FRACTION, ...
	// Map env keys like VAEP_WINDOW_K -> window_k (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("VAEP_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "vaep_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the pipeline cannot run with. Errors here
// abort the whole run: a bad window size or credit fraction would corrupt
// every match's values.
func (c *Config) Validate() error {
	if c.WindowK < 1 {
		return fmt.Errorf("%w: window_k must be >= 1, got %d", ErrInvalidConfig, c.WindowK)
	}
	if c.CreditFraction < 0 || c.CreditFraction > 1 {
		return fmt.Errorf("%w: credit_fraction must be in [0,1], got %g", ErrInvalidConfig, c.CreditFraction)
	}
	if c.EndOfMatchProbability < 0 || c.EndOfMatchProbability > 1 {
		return fmt.Errorf("%w: end_of_match_probability must be in [0,1], got %g", ErrInvalidConfig, c.EndOfMatchProbability)
	}
	switch c.ConcedesSignConvention {
	case SignNegate, SignSigned:
	default:
		return fmt.Errorf("%w: unknown concedes_sign_convention %q", ErrInvalidConfig, c.ConcedesSignConvention)
	}
	if c.PhaseGapSeconds <= 0 {
		return fmt.Errorf("%w: phase_gap_seconds must be positive, got %g", ErrInvalidConfig, c.PhaseGapSeconds)
	}
	return nil
}
