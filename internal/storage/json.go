package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jrep/internal/domain"
)

// Save writes the run summary to the configured JSON file.
func (s *JSONStorage) Save(summary *domain.RunSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	path := s.cfg.GetSummaryPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create summary dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// Load reads the last run summary from the configured JSON file.
func (s *JSONStorage) Load() (*domain.RunSummary, error) {
	path := s.cfg.GetSummaryPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read summary file: %w", err)
	}
	var summary domain.RunSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, fmt.Errorf("parse summary: %w", err)
	}
	return &summary, nil
}
