// Package service provides the core pipeline service that wires state
// extraction, feature encoding, the model bundle, and the worker pool.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/okian/vaep/internal/adapters/models"
	matchqueue "github.com/okian/vaep/internal/adapters/mq/queue"
	workerpool "github.com/okian/vaep/internal/adapters/mq/worker"
	repository "github.com/okian/vaep/internal/adapters/repository"
	"github.com/okian/vaep/internal/config"
	"github.com/okian/vaep/internal/domain/credit"
	"github.com/okian/vaep/internal/domain/dedupe"
	"github.com/okian/vaep/internal/domain/feature"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/internal/domain/state"
	"github.com/okian/vaep/internal/domain/valuation"
	"github.com/okian/vaep/pkg/logger"
	"github.com/okian/vaep/pkg/metrics"
)

// estimatorAdapter exposes one encoding variant of the bundle as a
// valuation.Estimator.
type estimatorAdapter struct {
	bundle   *models.Bundle
	encoding models.Encoding
}

func (a *estimatorAdapter) Scores(ctx context.Context, v feature.Vector) (float64, error) {
	return a.bundle.Predict(ctx, models.Key{Target: models.TargetScores, Encoding: a.encoding}, v)
}

func (a *estimatorAdapter) Concedes(ctx context.Context, v feature.Vector) (float64, error) {
	return a.bundle.Predict(ctx, models.Key{Target: models.TargetConcedes, Encoding: a.encoding}, v)
}

// Service implements the valuation pipeline lifecycle.
type Service struct {
	mu sync.RWMutex

	// Core components
	extractor *state.Extractor
	fullEnc   *feature.FullEncoder
	rfEnc     *feature.ResultFreeEncoder
	bundle    *models.Bundle
	engine    *valuation.Engine
	assigner  *credit.Assigner
	deduper   dedupe.Deduper
	jobQueue  *matchqueue.InMemoryQueue
	pool      *workerpool.Pool
	results   repository.Store

	// Configuration
	cfg *config.Config

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBundle injects an already-constructed model bundle, bypassing the
// coefficient files in cfg.ModelDir.
func WithBundle(b *models.Bundle) Option {
	return func(s *Service) {
		s.bundle = b
	}
}

// New constructs a new Service for the given configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	if cfg == nil {
		cfg = config.New()
	}
	s := &Service{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start validates the model/encoder pairing and starts the worker pool.
// Schema and configuration problems fail here, before any match is accepted.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	if err := s.cfg.Validate(); err != nil {
		return err
	}

	s.extractor = state.NewExtractor(state.WithWindowK(s.cfg.WindowK))
	s.fullEnc = feature.NewFullEncoder(s.cfg.WindowK)
	s.rfEnc = feature.NewResultFreeEncoder(s.cfg.WindowK)

	if s.bundle == nil {
		if s.cfg.ModelDir == "" {
			return fmt.Errorf("no model bundle: set model_dir or inject one")
		}
		b, err := models.LoadBundle(s.cfg.ModelDir, s.fullEnc.Schema(), s.rfEnc.Schema())
		if err != nil {
			return fmt.Errorf("load models: %w", err)
		}
		s.bundle = b
	}

	sign := valuation.SignNegate
	if s.cfg.ConcedesSignConvention == config.SignSigned {
		sign = valuation.SignSigned
	}
	s.engine = valuation.New(
		s.extractor,
		s.fullEnc,
		s.rfEnc,
		&estimatorAdapter{bundle: s.bundle, encoding: models.EncodingFull},
		&estimatorAdapter{bundle: s.bundle, encoding: models.EncodingResultFree},
		valuation.WithEndOfMatchProbability(s.cfg.EndOfMatchProbability),
		valuation.WithSignConvention(sign),
		valuation.WithPhaseGap(s.cfg.PhaseGapSeconds),
		valuation.WithSetPiecePriors(s.cfg.PenaltyPrior, s.cfg.CornerPrior),
		valuation.WithLogger(s.logger.Named("valuation")),
	)

	assigner, err := credit.NewAssigner(s.cfg.CreditFraction)
	if err != nil {
		return err
	}
	s.assigner = assigner

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.cfg.DedupeSize))
	s.jobQueue = matchqueue.NewInMemoryQueue(matchqueue.WithCapacity(s.cfg.QueueSize))
	s.results = repository.NewShardStore(repository.WithShardCount(s.cfg.ShardCount))

	workerCount := s.cfg.WorkerCount
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}
	var transformer workerpool.Transformer
	if s.assigner.Enabled() {
		transformer = s.assigner
	}
	s.pool = workerpool.NewPool(workerCount, s.jobQueue, s.engine, transformer, s.results)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "valuation service started",
		logger.Int("workers", workerCount),
		logger.Int("windowK", s.cfg.WindowK),
		logger.Float64("creditFraction", s.cfg.CreditFraction),
	)
	return nil
}

// Submit queues one match for valuation. Returns false when the match was
// already submitted or the queue is full.
func (s *Service) Submit(ctx context.Context, log model.ActionLog) bool {
	if s.deduper.SeenAndRecord(ctx, log.GameID()) {
		metrics.RecordMatchDuplicate()
		s.logger.Debug(ctx, "duplicate match skipped", logger.String("gameID", log.GameID()))
		return false
	}

	ok := s.jobQueue.Enqueue(ctx, matchqueue.Job{ID: uuid.New().String(), Log: log})
	if !ok {
		// Allow a retry once there is room again.
		s.deduper.Unrecord(ctx, log.GameID())
	}
	return ok
}

// Drain closes the queue and waits for in-flight matches to finish.
func (s *Service) Drain(ctx context.Context) error {
	if err := s.jobQueue.Close(); err != nil && !errors.Is(err, matchqueue.ErrClosed) {
		return err
	}
	return s.pool.Drain(ctx)
}

// Stop shuts down the service without waiting for queued matches.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	_ = s.jobQueue.Close()
	s.pool.Stop()
	s.started = false
	s.logger.Info(context.Background(), "valuation service stopped")
}

// Results returns the value-record stream for a match.
func (s *Service) Results(ctx context.Context, gameID string) ([]model.ValueRecord, error) {
	return s.results.Get(ctx, gameID)
}

// Games returns the ids of all valued matches.
func (s *Service) Games(ctx context.Context) []string {
	return s.results.Games(ctx)
}

// Stats returns service statistics for monitoring.
func (s *Service) Stats(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.cfg.WorkerCount,
		"windowK":     s.cfg.WindowK,
	}
	if s.started {
		matches, records := s.results.Count(ctx)
		stats["queueLength"] = s.jobQueue.Len(ctx)
		stats["valuedMatches"] = matches
		stats["valuedRecords"] = records
	}
	return stats
}
