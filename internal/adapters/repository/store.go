// Package repository defines the result store interface and errors.
//
// The store is the hand-off buffer between valuation workers and whatever
// consumes the value streams; it is not a persistence layer.
package repository

import (
	"context"

	"github.com/okian/vaep/internal/domain/model"
)

// Store provides read/write access to completed value-record streams.
type Store interface {
	// Put stores the completed record stream for a match, replacing any
	// earlier stream for the same game id.
	Put(ctx context.Context, gameID string, records []model.ValueRecord) error

	// Get returns the record stream for a match.
	// Returns ErrNotFound if the game is unknown.
	Get(ctx context.Context, gameID string) ([]model.ValueRecord, error)

	// Games returns the ids of all stored matches.
	Games(ctx context.Context) []string

	// Count returns the number of stored matches and total records.
	Count(ctx context.Context) (matches, records int)
}
