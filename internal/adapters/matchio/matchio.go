// Package matchio reads match files produced by the ingestion collaborator
// and writes value-record streams for the aggregation collaborator.
package matchio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/okian/vaep/internal/domain/model"
)

// MatchFile is the on-disk match format: one JSON object per file.
type MatchFile struct {
	GameID  string         `json:"game_id"`
	Actions []model.Action `json:"actions"`
}

// ReadMatch loads and validates one match file.
func ReadMatch(path string) (model.ActionLog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.ActionLog{}, fmt.Errorf("read match file %s: %w", path, err)
	}
	var f MatchFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return model.ActionLog{}, fmt.Errorf("parse match file %s: %w", path, err)
	}
	if f.GameID == "" {
		return model.ActionLog{}, fmt.Errorf("match file %s has no game_id", path)
	}
	return model.NewActionLog(f.GameID, f.Actions)
}

// ReadDir loads every .json match file in a directory, sorted by name.
func ReadDir(dir string) ([]model.ActionLog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read match dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	logs := make([]model.ActionLog, 0, len(paths))
	for _, p := range paths {
		log, err := ReadMatch(p)
		if err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, nil
}

// WriteMatch writes one match file.
func WriteMatch(path string, log model.ActionLog) error {
	f := MatchFile{GameID: log.GameID(), Actions: log.Slice(0, log.Len())}
	raw, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode match %s: %w", log.GameID(), err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write match file %s: %w", path, err)
	}
	return nil
}

// RecordWriter streams value records as NDJSON, one record per line.
type RecordWriter struct {
	enc *json.Encoder
}

// NewRecordWriter wraps an output stream.
func NewRecordWriter(w io.Writer) *RecordWriter {
	return &RecordWriter{enc: json.NewEncoder(w)}
}

// WriteAll writes one match's record stream in order.
func (w *RecordWriter) WriteAll(records []model.ValueRecord) error {
	for _, r := range records {
		if err := w.enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %d: %w", r.Index, err)
		}
	}
	return nil
}
