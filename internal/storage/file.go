package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter writes reports to the local filesystem
type FileWriter struct{}

// NewFileWriter creates a new FileWriter
func NewFileWriter() *FileWriter {
	return &FileWriter{}
}

// Write creates the parent directory if needed and writes data to path.
func (w *FileWriter) Write(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// MultiWriter fans a report out to several writers
type MultiWriter struct {
	writers []ReportWriter
}

// NewMultiWriter creates a MultiWriter. Nil writers are skipped.
func NewMultiWriter(writers ...ReportWriter) *MultiWriter {
	mw := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			mw.writers = append(mw.writers, w)
		}
	}
	return mw
}

// Write writes to every writer and joins their errors
func (m *MultiWriter) Write(ctx context.Context, path string, data []byte) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(ctx, path, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
