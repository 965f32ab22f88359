// Package worker defines worker contracts for asynchronous match valuation.
package worker

import (
	"github.com/okian/vaep/pkg/logger"
)

// Option applies a configuration option to the MatchWorker.
type Option func(*MatchWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *MatchWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *MatchWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
