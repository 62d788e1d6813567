package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"jrep/internal/config"
	"jrep/internal/domain"
	"jrep/internal/parser"
	"jrep/internal/reporter"
	"jrep/internal/storage"
	"jrep/internal/ui"
)

// ErrIssues is returned when the reported session had errors, failures or skipped cases
var ErrIssues = errors.New("test session reported issues")

// ErrNoEvents is returned when the event stream was empty
var ErrNoEvents = errors.New("no test events received")

// Session wires a test event stream to the reporter for one run
type Session struct {
	config    *config.Config
	store     storage.SummaryStore
	formatter *ui.Formatter
	writer    storage.ReportWriter
	log       io.Writer
}

// NewSession creates a Session. writer may be nil to build one from the config.
func NewSession(cfg *config.Config, st storage.SummaryStore, formatter *ui.Formatter, writer storage.ReportWriter, log io.Writer) *Session {
	return &Session{
		config:    cfg,
		store:     st,
		formatter: formatter,
		writer:    writer,
		log:       log,
	}
}

// reportWriter returns the file writer, plus an S3 writer when a bucket is configured
func (s *Session) reportWriter(ctx context.Context) (storage.ReportWriter, error) {
	if s.writer != nil {
		return s.writer, nil
	}
	if !s.config.UploadsToS3() {
		return storage.NewFileWriter(), nil
	}
	s3Writer, err := storage.NewS3Writer(ctx, s.config.S3Region, s.config.S3Bucket, s.config.S3Prefix)
	if err != nil {
		return nil, err
	}
	return storage.NewMultiWriter(storage.NewFileWriter(), s3Writer), nil
}

// Report feeds events from r through the reporter and prints the summary.
// It returns ErrIssues when the run was not clean.
func (s *Session) Report(ctx context.Context, r io.Reader) error {
	writer, err := s.reportWriter(ctx)
	if err != nil {
		return err
	}

	var ok bool
	completed := false
	timer := &parser.EventTimer{}
	rep := reporter.New(reporter.Options{
		SuiteName:   s.config.SuiteName,
		PackageName: s.config.PackageName,
		ReportPath:  s.config.GetReportPath(),
		OnComplete: func(success bool) {
			ok = success
			completed = true
		},
	}, reporter.Deps{
		CaseTimer: timer,
		Writer:    writer,
		Summaries: s.store,
		Log:       s.log,
	})

	p := parser.NewGoTestParser(timer)
	if !s.config.Flags.NoProgress {
		p.SetProgress(ui.NewProgressBar())
	}
	if err := p.Feed(ctx, r, rep); err != nil {
		return fmt.Errorf("process test events: %w", err)
	}

	if !completed {
		return ErrNoEvents
	}
	s.printSummary(rep.LastSummary())
	if !ok {
		return ErrIssues
	}
	return nil
}

func (s *Session) printSummary(summary *domain.RunSummary) {
	if s.formatter == nil || summary == nil {
		return
	}
	s.formatter.PrintSummary(summary)
}
