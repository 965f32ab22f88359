// Package worker defines worker contracts for asynchronous match valuation.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/okian/vaep/internal/adapters/mq/queue"
	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/pkg/logger"
	"github.com/okian/vaep/pkg/metrics"
)

// Default worker configuration constants.
const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Valuer turns a match's action log into its value-record stream.
type Valuer interface {
	ValueMatch(ctx context.Context, log model.ActionLog) ([]model.ValueRecord, error)
}

// Transformer post-processes a completed record stream, e.g. receiver credit.
type Transformer interface {
	Apply(log model.ActionLog, records []model.ValueRecord) []model.ValueRecord
}

// Sink receives completed value streams.
type Sink interface {
	Put(ctx context.Context, gameID string, records []model.ValueRecord) error
}

// Queue defines how workers receive match jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker values matches off the queue until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown gracefully stops the worker.
	Shutdown(ctx context.Context) error
}

// MatchWorker implements Worker for valuing matches.
type MatchWorker struct {
	queue       Queue
	valuer      Valuer
	transformer Transformer
	sink        Sink
	name        string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// NewMatchWorker creates a new worker with configuration options.
func NewMatchWorker(q Queue, valuer Valuer, transformer Transformer, sink Sink, opts ...Option) *MatchWorker {
	w := &MatchWorker{
		queue:       q,
		valuer:      valuer,
		transformer: transformer,
		sink:        sink,
		name:        "worker", // default name
		shutdown:    make(chan struct{}),
		done:        make(chan struct{}),
		logger:      logger.Get().Named("worker"), // will be updated by options
	}
	for _, opt := range opts {
		opt(w)
	}

	// Set up logger with worker name if not already set
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}

	return w
}

// Run starts the worker loop.
func (w *MatchWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case job, ok := <-jobs:
			if !ok {
				// Channel closed, worker should stop
				return
			}

			// A failed match aborts only its own stream; the pool keeps
			// draining other matches.
			if err := w.processJob(ctx, job); err != nil {
				w.logger.Error(ctx, "match valuation failed",
					logger.String("jobID", job.ID),
					logger.String("gameID", job.Log.GameID()),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *MatchWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// processJob values a single match end to end.
func (w *MatchWorker) processJob(ctx context.Context, job queue.Job) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerMatchLatency(float64(time.Since(start).Milliseconds()))
	}()

	records, err := w.valuer.ValueMatch(ctx, job.Log)
	if err != nil {
		metrics.RecordMatchFailed()
		metrics.RecordErrorByComponent("worker", "valuation_error")
		return fmt.Errorf("value match: %w", err)
	}

	if w.transformer != nil {
		records = w.transformer.Apply(job.Log, records)
	}

	if err := w.sink.Put(ctx, job.Log.GameID(), records); err != nil {
		metrics.RecordErrorByComponent("worker", "sink_error")
		return fmt.Errorf("store records: %w", err)
	}

	w.logger.Debug(ctx, "match valued",
		logger.String("gameID", job.Log.GameID()),
		logger.Int("actions", job.Log.Len()),
		logger.Int("records", len(records)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*MatchWorker
	queue   Queue

	// Logging
	logger logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(workerCount int, q Queue, valuer Valuer, transformer Transformer, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*MatchWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewMatchWorker(
			q, valuer, transformer, sink,
			WithName("worker-"+strconv.Itoa(i)),
		)
	}

	metrics.UpdateWorkerActiveCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Drain blocks until every worker has finished, which happens once the queue
// is closed and empty. Already-submitted matches still get valued.
func (p *Pool) Drain(ctx context.Context) error {
	drainCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-drainCtx.Done():
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
			return fmt.Errorf("drain timed out: %w", drainCtx.Err())
		}
	}
	return nil
}

// Stop gracefully stops all workers without waiting for the queue to empty.
func (p *Pool) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer cancel()

	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
}
