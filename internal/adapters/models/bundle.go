package models

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/okian/vaep/internal/domain/feature"
)

// Coefficient file names inside a model directory.
const (
	scoresFullFile       = "scores_full.json"
	scoresResultFreeFile = "scores_resultfree.json"
	concedesFullFile     = "concedes_full.json"
	concedesRFFile       = "concedes_resultfree.json"
)

// Bundle holds the four probability models the engine scores with, keyed by
// (target, encoding). Construction fails before any match is processed if a
// model's schema disagrees with its encoder's declared schema.
type Bundle struct {
	models map[Key]Model
}

// NewBundle validates each model against the encoder variant it was trained
// for. All four keys must be present.
func NewBundle(byKey map[Key]Model, fullSchema, resultFreeSchema []string) (*Bundle, error) {
	required := []Key{
		{TargetScores, EncodingFull},
		{TargetScores, EncodingResultFree},
		{TargetConcedes, EncodingFull},
		{TargetConcedes, EncodingResultFree},
	}
	for _, k := range required {
		m, ok := byKey[k]
		if !ok {
			return nil, fmt.Errorf("%w: %s missing", ErrUnknownModel, k)
		}
		want := fullSchema
		if k.Encoding == EncodingResultFree {
			want = resultFreeSchema
		}
		if err := matchSchema(m.Schema(), want); err != nil {
			return nil, fmt.Errorf("model %s: %w", k, err)
		}
	}

	b := &Bundle{models: make(map[Key]Model, len(required))}
	for _, k := range required {
		b.models[k] = byKey[k]
	}
	return b, nil
}

// LoadBundle reads the four coefficient files from dir and validates them
// against the encoder schemas.
func LoadBundle(dir string, fullSchema, resultFreeSchema []string) (*Bundle, error) {
	files := map[Key]string{
		{TargetScores, EncodingFull}:         scoresFullFile,
		{TargetScores, EncodingResultFree}:   scoresResultFreeFile,
		{TargetConcedes, EncodingFull}:       concedesFullFile,
		{TargetConcedes, EncodingResultFree}: concedesRFFile,
	}
	byKey := make(map[Key]Model, len(files))
	for k, name := range files {
		m, err := LoadLogistic(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", k, err)
		}
		byKey[k] = m
	}
	return NewBundle(byKey, fullSchema, resultFreeSchema)
}

// Predict scores a feature vector with the model identified by key.
func (b *Bundle) Predict(ctx context.Context, key Key, v feature.Vector) (float64, error) {
	m, ok := b.models[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownModel, key)
	}
	p, err := m.Predict(ctx, v)
	if err != nil {
		return 0, fmt.Errorf("model %s: %w", key, err)
	}
	return p, nil
}

// matchSchema checks feature names and order.
func matchSchema(got, want []string) error {
	if len(got) != len(want) {
		return fmt.Errorf("%w: %d features, encoder declares %d", ErrSchemaMismatch, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("%w: feature %d is %q, encoder declares %q", ErrSchemaMismatch, i, got[i], want[i])
		}
	}
	return nil
}
