package storage

import (
	"context"

	"jrep/internal/config"
	"jrep/internal/domain"
)

// ReportWriter persists a finished report under the given path
type ReportWriter interface {
	Write(ctx context.Context, path string, data []byte) error
}

// SummaryStore persists and loads the digest of the last session (e.g. for the failures viewer).
type SummaryStore interface {
	Save(summary *domain.RunSummary) error
	Load() (*domain.RunSummary, error)
}

// JSONStorage stores run summaries in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a SummaryStore that reads/writes the config's summary JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
