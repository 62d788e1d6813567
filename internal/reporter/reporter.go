// Package reporter turns test session lifecycle events into a JUnit XML report.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"jrep/internal/domain"
	"jrep/internal/junit"
	"jrep/internal/pretty"
	"jrep/internal/storage"
)

// State is the lifecycle position of a Reporter
type State int

const (
	StateIdle State = iota
	StateSessionActive
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSessionActive:
		return "session active"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var (
	// ErrSessionNotStarted is returned by hooks that need an active session
	ErrSessionNotStarted = errors.New("no active test session")
	// ErrSessionActive is returned when a session is started twice
	ErrSessionActive = errors.New("test session already active")
)

// ISOTimestamp is the layout used for the suite timestamp
const ISOTimestamp = "2006-01-02T15:04:05.000Z"

// Options configures the report
type Options struct {
	SuiteName   string
	PackageName string
	// ReportPath is the XML file to write; empty disables writing
	ReportPath string
	// OnComplete receives true when no case errored, failed or was skipped
	// and the report (if configured) was written.
	OnComplete func(ok bool)
}

// Deps are the collaborators of a Reporter. Zero values get defaults.
type Deps struct {
	SessionTimer Timer
	CaseTimer    Timer
	Hostname     func() (string, error)
	Now          func() time.Time
	Writer       storage.ReportWriter
	Summaries    storage.SummaryStore
	Format       func(string) string
	Log          io.Writer
	NewRunID     func() string
}

// Reporter receives lifecycle hooks from a host test engine.
// Hooks must be called from a single goroutine.
type Reporter struct {
	opts  Options
	deps  Deps
	state State
	suite *junit.Suite
	last  *domain.RunSummary
}

// New creates a Reporter in the idle state
func New(opts Options, deps Deps) *Reporter {
	if deps.SessionTimer == nil {
		deps.SessionTimer = NewStopwatch()
	}
	if deps.CaseTimer == nil {
		deps.CaseTimer = NewStopwatch()
	}
	if deps.Hostname == nil {
		deps.Hostname = os.Hostname
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Writer == nil {
		deps.Writer = storage.NewFileWriter()
	}
	if deps.Format == nil {
		deps.Format = pretty.XML
	}
	if deps.Log == nil {
		deps.Log = os.Stderr
	}
	if deps.NewRunID == nil {
		deps.NewRunID = uuid.NewString
	}
	return &Reporter{opts: opts, deps: deps}
}

// State returns the current lifecycle state
func (r *Reporter) State() State {
	return r.state
}

// Suite returns the suite of the current or last session
func (r *Reporter) Suite() *junit.Suite {
	return r.suite
}

// LastSummary returns the digest of the last finished session
func (r *Reporter) LastSummary() *domain.RunSummary {
	return r.last
}

// ReportPath returns the file the report is written to, or "" when disabled
func (r *Reporter) ReportPath() string {
	return r.opts.ReportPath
}

// SessionStarted creates a fresh suite and starts the session timer.
func (r *Reporter) SessionStarted() error {
	if r.state == StateSessionActive {
		return r.reject("session start", ErrSessionActive)
	}

	hostname, err := r.deps.Hostname()
	if err != nil {
		r.warnf("Could not determine hostname: %v", err)
	}
	timestamp := r.deps.Now().UTC().Format(ISOTimestamp)

	r.suite = junit.NewSuite(r.opts.SuiteName, timestamp, hostname, r.opts.PackageName, 0)
	r.last = nil
	r.state = StateSessionActive
	r.deps.SessionTimer.Start()
	return nil
}

// CaseStarted starts the case timer.
func (r *Reporter) CaseStarted() error {
	if r.state != StateSessionActive {
		return r.reject("case start", ErrSessionNotStarted)
	}
	r.deps.CaseTimer.Start()
	return nil
}

// CaseDone records a finished case using the time since CaseStarted.
func (r *Reporter) CaseDone(result domain.SpecResult) error {
	if r.state != StateSessionActive {
		return r.reject("case end", ErrSessionNotStarted)
	}
	seconds := r.deps.CaseTimer.Elapsed().Seconds()
	r.suite.AddCase(junit.NewCase(result, seconds, r.opts.PackageName))
	return nil
}

// SessionDone serializes the suite, writes the report when a report path is
// configured, then calls OnComplete and done (both optional).
// Write failures are logged and reported through OnComplete(false).
func (r *Reporter) SessionDone(ctx context.Context, done func()) error {
	if r.state != StateSessionActive {
		return r.reject("session end", ErrSessionNotStarted)
	}
	r.state = StateDone

	report := r.deps.Format(r.suite.Serialize())
	elapsed := r.deps.SessionTimer.Elapsed()
	ok := r.suite.Issues() == 0

	fmt.Fprintf(r.deps.Log, "finished in %s seconds\n", junit.FormatSeconds(elapsed.Seconds()))

	path := r.ReportPath()
	var writeErr error
	if path != "" {
		if writeErr = r.deps.Writer.Write(ctx, path, []byte(report)); writeErr != nil {
			r.errorf("Error writing JUnit report to %s: %v", path, writeErr)
			ok = false
		} else {
			fmt.Fprintf(r.deps.Log, "Wrote report file to %s\n", path)
		}
	}

	r.last = r.summarize(path, writeErr, elapsed, ok)
	if r.deps.Summaries != nil {
		if err := r.deps.Summaries.Save(r.last); err != nil {
			r.warnf("Could not save run summary: %v", err)
		}
	}

	if r.opts.OnComplete != nil {
		r.opts.OnComplete(ok)
	}
	if done != nil {
		done()
	}
	return nil
}

func (r *Reporter) summarize(path string, writeErr error, elapsed time.Duration, ok bool) *domain.RunSummary {
	s := r.suite
	summary := &domain.RunSummary{
		Meta: domain.RunMeta{
			RunID:       r.deps.NewRunID(),
			SuiteName:   s.Name(),
			PackageName: s.Package(),
			Hostname:    s.Hostname(),
			Timestamp:   s.Timestamp(),
			Tests:       s.TestCount(),
			Errors:      s.IssueCount(domain.StatusError),
			Failures:    s.IssueCount(domain.StatusFailed),
			Skipped:     s.IssueCount(domain.StatusPending),
			Time:        s.Time(),
			Duration:    elapsed.Round(time.Millisecond).String(),
			ReportPath:  path,
			Success:     ok,
		},
		Details: []domain.FailedCase{},
	}
	if writeErr != nil {
		summary.Meta.ReportError = writeErr.Error()
	}

	for _, c := range s.Cases() {
		if !c.Status().IsIssue() {
			continue
		}
		summary.Details = append(summary.Details, domain.FailedCase{
			Classname: c.Classname(),
			Name:      c.Name(),
			Status:    c.Status(),
			Time:      junit.FormatSeconds(c.Seconds()),
			Stacks:    c.Stacks(),
		})
	}
	return summary
}

func (r *Reporter) reject(hook string, err error) error {
	err = fmt.Errorf("%s while %s: %w", hook, r.state, err)
	r.warnf("Ignoring %v", err)
	return err
}

func (r *Reporter) warnf(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(r.deps.Log, format+"\n", args...)
}

func (r *Reporter) errorf(format string, args ...any) {
	color.New(color.FgRed).Fprintf(r.deps.Log, format+"\n", args...)
}
