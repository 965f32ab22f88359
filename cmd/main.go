package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okian/vaep/internal/adapters/matchio"
	app "github.com/okian/vaep/internal/app"
	"github.com/okian/vaep/internal/config"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/pkg/logger"
)

const drainTimeout = 5 * time.Minute

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	flag.Parse()
	if flag.NArg() == 0 {
		os.Stderr.WriteString("usage: vaep <match.json | match-dir> ...\n")
		return 2
	}

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	logs, err := loadMatches(flag.Args())
	if err != nil {
		loggerInstance.Error(ctx, "failed to load matches", logger.Error(err))
		return 1
	}
	loggerInstance.Info(ctx, "loaded matches", logger.Int("count", len(logs)))

	// Create and start the valuation service.
	svc := app.New(cfg, app.WithLogger(loggerInstance))
	if err := svc.Start(ctx); err != nil {
		loggerInstance.Error(ctx, "failed to start service", logger.Error(err))
		return 1
	}
	defer svc.Stop()

	submitted := make([]string, 0, len(logs))
	for _, log := range logs {
		if svc.Submit(ctx, log) {
			submitted = append(submitted, log.GameID())
		} else {
			loggerInstance.Warn(ctx, "match rejected",
				logger.String("gameID", log.GameID()))
		}
	}

	// Wait for the pipeline to finish all submitted matches.
	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()
	if err := svc.Drain(drainCtx); err != nil {
		loggerInstance.Error(ctx, "drain failed", logger.Error(err))
		return 1
	}

	if err := writeResults(ctx, svc, cfg.OutputPath, submitted); err != nil {
		loggerInstance.Error(ctx, "failed to write results", logger.Error(err))
		return 1
	}

	loggerInstance.Info(ctx, "valuation complete",
		logger.Int("matches", len(submitted)))
	return 0
}

// loadMatches resolves each argument as a match file or a directory of them.
func loadMatches(args []string) ([]model.ActionLog, error) {
	var logs []model.ActionLog
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dirLogs, err := matchio.ReadDir(arg)
			if err != nil {
				return nil, err
			}
			logs = append(logs, dirLogs...)
			continue
		}
		log, err := matchio.ReadMatch(arg)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// writeResults streams value records for the submitted matches as NDJSON.
func writeResults(ctx context.Context, svc *app.Service, outputPath string, gameIDs []string) error {
	var out io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	w := matchio.NewRecordWriter(out)
	for _, gameID := range gameIDs {
		records, err := svc.Results(ctx, gameID)
		if err != nil {
			return err
		}
		if err := w.WriteAll(records); err != nil {
			return err
		}
	}
	return nil
}
