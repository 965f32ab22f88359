package models

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/okian/vaep/internal/domain/feature"
)

// Logistic is a logistic-regression scorer with coefficients produced by an
// external training pipeline. It is deterministic and safe for concurrent use.
type Logistic struct {
	schema  []string
	weights []float64
	bias    float64
}

// logisticFile is the on-disk coefficient format.
type logisticFile struct {
	Intercept    float64            `json:"intercept"`
	Coefficients map[string]float64 `json:"coefficients"`
	Schema       []string           `json:"schema"`
}

// NewLogistic builds a model from a schema and per-feature weights. Features
// absent from weights get coefficient zero.
func NewLogistic(schema []string, weights map[string]float64, bias float64) *Logistic {
	m := &Logistic{
		schema:  append([]string(nil), schema...),
		weights: make([]float64, len(schema)),
		bias:    bias,
	}
	for i, name := range schema {
		m.weights[i] = weights[name]
	}
	return m
}

// LoadLogistic reads a coefficient file written by the training pipeline.
func LoadLogistic(path string) (*Logistic, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model file %s: %w", path, err)
	}
	var f logisticFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse model file %s: %w", path, err)
	}
	if len(f.Schema) == 0 {
		return nil, fmt.Errorf("model file %s declares no feature schema", path)
	}
	return NewLogistic(f.Schema, f.Coefficients, f.Intercept), nil
}

// Schema returns the feature names the model expects, in input order.
func (m *Logistic) Schema() []string { return m.schema }

// Predict computes sigmoid(bias + w . v) and validates the output contract.
func (m *Logistic) Predict(ctx context.Context, v feature.Vector) (float64, error) {
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("prediction cancelled: %w", ctx.Err())
	default:
	}
	if len(v) != len(m.weights) {
		return 0, fmt.Errorf("%w: got %d features, want %d", ErrSchemaMismatch, len(v), len(m.weights))
	}

	z := m.bias
	for i, w := range m.weights {
		z += w * v[i]
	}
	p := 1 / (1 + math.Exp(-z))

	if err := checkProbability(p); err != nil {
		return 0, err
	}
	return p, nil
}
