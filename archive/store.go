// Package archive records the champion of selected generations of a run.
package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var errNotInitialized = errors.New("store is not initialized")

// Champion is the best genome of one generation, stored in the flat
// evo.Genome.Weights layout. The shape is supplied by whoever reads it back.
type Champion struct {
	Generation int       `json:"generation"`
	Fitness    float64   `json:"fitness"`
	Weights    []float64 `json:"weights"`
}

// Store persists champions per run.
type Store interface {
	Init(ctx context.Context) error
	SaveChampion(ctx context.Context, runID string, c Champion) error
	// Champions returns the run's champions ordered by generation.
	Champions(ctx context.Context, runID string) ([]Champion, error)
	Close() error
}

// NewStore returns the backend named by kind.
func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if sqlitePath == "" {
			return nil, errors.New("sqlite path is required")
		}
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// WriteJSON writes champions as an indented JSON list.
func WriteJSON(w io.Writer, champions []Champion) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(champions)
}
