package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/vaep/internal/testmatch"
	"github.com/okian/vaep/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumMatches = 10
	defaultNumActions = 1500
	defaultSeed       = 1
	defaultOutputDir  = "testdata/matches"
	defaultGenTimeout = 5 * time.Minute
)

func main() {
	var (
		numMatches = flag.Int("matches", defaultNumMatches, "Number of matches to generate")
		numActions = flag.Int("actions", defaultNumActions, "Approximate number of actions per match")
		seed       = flag.Int64("seed", defaultSeed, "RNG seed for reproducible output")
		outputDir  = flag.String("output", defaultOutputDir, "Directory for generated match files")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultGenTimeout)
	defer cancel()

	gen := testmatch.NewGenerator(&testmatch.Config{
		NumMatches: *numMatches,
		NumActions: *numActions,
		Seed:       *seed,
		OutputDir:  *outputDir,
		Verbose:    *verbose,
	})

	if _, err := gen.Run(ctx); err != nil {
		logger.Get().Error(ctx, "generation failed", logger.Error(err))
		os.Exit(1)
	}
}
