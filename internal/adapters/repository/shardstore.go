package repository

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/okian/vaep/internal/domain/model"
	"github.com/okian/vaep/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 8
)

// Option applies a configuration option to the ShardStore.
type Option func(*ShardStore)

// WithShardCount sets the number of shards.
func WithShardCount(count int) Option {
	return func(s *ShardStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// shard holds the streams for a subset of games.
type shard struct {
	mu      sync.RWMutex
	streams map[string][]model.ValueRecord
}

// ShardStore implements Store with per-shard locking so workers finishing
// different matches rarely contend.
type ShardStore struct {
	shardCount int
	shards     []*shard
}

// NewShardStore creates a sharded in-memory result store.
func NewShardStore(opts ...Option) *ShardStore {
	s := &ShardStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{streams: make(map[string][]model.ValueRecord)}
	}
	return s
}

// shardFor picks the shard for a game id.
func (s *ShardStore) shardFor(gameID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(gameID))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// Put stores the completed record stream for a match.
func (s *ShardStore) Put(ctx context.Context, gameID string, records []model.ValueRecord) error {
	cp := make([]model.ValueRecord, len(records))
	copy(cp, records)

	sh := s.shardFor(gameID)
	sh.mu.Lock()
	sh.streams[gameID] = cp
	sh.mu.Unlock()

	matches, total := s.Count(ctx)
	metrics.UpdateStoredMatches(matches)
	metrics.UpdateStoredRecords(total)
	return nil
}

// Get returns the record stream for a match.
func (s *ShardStore) Get(_ context.Context, gameID string) ([]model.ValueRecord, error) {
	sh := s.shardFor(gameID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	records, ok := sh.streams[gameID]
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrNotFound)
	}
	cp := make([]model.ValueRecord, len(records))
	copy(cp, records)
	return cp, nil
}

// Games returns the ids of all stored matches, sorted for deterministic output.
func (s *ShardStore) Games(_ context.Context) []string {
	var ids []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for id := range sh.streams {
			ids = append(ids, id)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of stored matches and total records.
func (s *ShardStore) Count(_ context.Context) (matches, records int) {
	for _, sh := range s.shards {
		sh.mu.RLock()
		matches += len(sh.streams)
		for _, stream := range sh.streams {
			records += len(stream)
		}
		sh.mu.RUnlock()
	}
	return matches, records
}
