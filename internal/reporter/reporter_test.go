package reporter

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"jrep/internal/domain"
)

type fakeTimer struct {
	started int
	elapsed time.Duration
}

func (f *fakeTimer) Start()                 { f.started++ }
func (f *fakeTimer) Elapsed() time.Duration { return f.elapsed }

type fakeWriter struct {
	calls int
	path  string
	data  string
	err   error
}

func (f *fakeWriter) Write(ctx context.Context, path string, data []byte) error {
	f.calls++
	f.path = path
	f.data = string(data)
	return f.err
}

type fakeStore struct {
	saved *domain.RunSummary
	err   error
}

func (f *fakeStore) Save(summary *domain.RunSummary) error {
	f.saved = summary
	return f.err
}

func (f *fakeStore) Load() (*domain.RunSummary, error) {
	return f.saved, f.err
}

type fixture struct {
	reporter     *Reporter
	sessionTimer *fakeTimer
	caseTimer    *fakeTimer
	writer       *fakeWriter
	store        *fakeStore
	log          *bytes.Buffer
	completed    []bool
}

func newFixture(opts Options) *fixture {
	f := &fixture{
		sessionTimer: &fakeTimer{elapsed: 2 * time.Second},
		caseTimer:    &fakeTimer{elapsed: 8 * time.Millisecond},
		writer:       &fakeWriter{},
		store:        &fakeStore{},
		log:          &bytes.Buffer{},
	}
	opts.OnComplete = func(ok bool) { f.completed = append(f.completed, ok) }
	f.reporter = New(opts, Deps{
		SessionTimer: f.sessionTimer,
		CaseTimer:    f.caseTimer,
		Hostname:     func() (string, error) { return "localhost", nil },
		Now:          func() time.Time { return time.Date(2014, 7, 31, 22, 40, 18, 211000000, time.UTC) },
		Writer:       f.writer,
		Summaries:    f.store,
		Format:       func(s string) string { return s },
		Log:          f.log,
		NewRunID:     func() string { return "run-1" },
	})
	return f
}

func defaultOptions() Options {
	return Options{
		SuiteName:   "Suite Name",
		PackageName: "Package Name",
		ReportPath:  "./results.xml",
	}
}

func (f *fixture) runCase(t *testing.T, result domain.SpecResult) {
	t.Helper()
	if err := f.reporter.CaseStarted(); err != nil {
		t.Fatalf("CaseStarted: %v", err)
	}
	if err := f.reporter.CaseDone(result); err != nil {
		t.Fatalf("CaseDone: %v", err)
	}
}

func TestReporter_SessionStarted(t *testing.T) {
	f := newFixture(defaultOptions())
	if err := f.reporter.SessionStarted(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	suite := f.reporter.Suite()
	if suite.Name() != "Suite Name" || suite.Package() != "Package Name" {
		t.Errorf("unexpected suite names: %q %q", suite.Name(), suite.Package())
	}
	if suite.Hostname() != "localhost" {
		t.Errorf("expected localhost, got %s", suite.Hostname())
	}
	if suite.Timestamp() != "2014-07-31T22:40:18.211Z" {
		t.Errorf("unexpected timestamp %s", suite.Timestamp())
	}
	if f.sessionTimer.started != 1 {
		t.Errorf("expected session timer to start once, got %d", f.sessionTimer.started)
	}
	if f.reporter.State() != StateSessionActive {
		t.Errorf("expected session active, got %s", f.reporter.State())
	}
}

func TestReporter_CaseDone(t *testing.T) {
	f := newFixture(defaultOptions())
	f.reporter.SessionStarted()
	f.caseTimer.elapsed = 2 * time.Second

	f.runCase(t, domain.SpecResult{FullName: "scope spec", Description: "spec", Status: domain.StatusPassed})

	if f.caseTimer.started != 1 {
		t.Errorf("expected case timer to start once, got %d", f.caseTimer.started)
	}
	cases := f.reporter.Suite().Cases()
	if len(cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(cases))
	}
	if cases[0].Seconds() != 2 {
		t.Errorf("expected 2 seconds, got %v", cases[0].Seconds())
	}
	if cases[0].Classname() != "Package Name.scope" {
		t.Errorf("unexpected classname %s", cases[0].Classname())
	}
}

func TestReporter_SessionDone(t *testing.T) {
	tests := []struct {
		name          string
		opts          func(*Options)
		statuses      []domain.Status
		writeErr      error
		expectWrite   bool
		expectOK      bool
		expectLogPart string
	}{
		{
			name:          "writes report without issues",
			statuses:      []domain.Status{domain.StatusPassed},
			expectWrite:   true,
			expectOK:      true,
			expectLogPart: "Wrote report file to ./results.xml",
		},
		{
			name:        "failures complete with false",
			statuses:    []domain.Status{domain.StatusPassed, domain.StatusFailed},
			expectWrite: true,
			expectOK:    false,
		},
		{
			name:        "pending counts as an issue",
			statuses:    []domain.Status{domain.StatusPending},
			expectWrite: true,
			expectOK:    false,
		},
		{
			name:          "write error completes with false",
			statuses:      []domain.Status{domain.StatusPassed},
			writeErr:      errors.New("permission denied"),
			expectWrite:   true,
			expectOK:      false,
			expectLogPart: "Error writing JUnit report to ./results.xml",
		},
		{
			name:        "no report path skips writing",
			opts:        func(o *Options) { o.ReportPath = "" },
			statuses:    []domain.Status{domain.StatusPassed},
			expectWrite: false,
			expectOK:    true,
		},
		{
			name:        "no report path still completes with issues",
			opts:        func(o *Options) { o.ReportPath = "" },
			statuses:    []domain.Status{domain.StatusError},
			expectWrite: false,
			expectOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			f := newFixture(opts)
			f.writer.err = tt.writeErr

			f.reporter.SessionStarted()
			for _, s := range tt.statuses {
				f.runCase(t, domain.SpecResult{FullName: "scope spec", Description: "spec", Status: s})
			}

			doneCalls := 0
			if err := f.reporter.SessionDone(context.Background(), func() { doneCalls++ }); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if tt.expectWrite {
				if f.writer.calls != 1 || f.writer.path != "./results.xml" {
					t.Errorf("expected one write to ./results.xml, got %d to %q", f.writer.calls, f.writer.path)
				}
				if f.writer.data != f.reporter.Suite().Serialize() {
					t.Errorf("written report does not match serialized suite")
				}
			} else if f.writer.calls != 0 {
				t.Errorf("expected no write, got %d", f.writer.calls)
			}

			if diff := cmp.Diff([]bool{tt.expectOK}, f.completed); diff != "" {
				t.Errorf("OnComplete mismatch (-want +got):\n%s", diff)
			}
			if doneCalls != 1 {
				t.Errorf("expected done to be called once, got %d", doneCalls)
			}
			if !strings.Contains(f.log.String(), "finished in 2.000 seconds") {
				t.Errorf("expected elapsed log line, got %q", f.log.String())
			}
			if tt.expectLogPart != "" && !strings.Contains(f.log.String(), tt.expectLogPart) {
				t.Errorf("expected %q in log, got %q", tt.expectLogPart, f.log.String())
			}
			if f.reporter.State() != StateDone {
				t.Errorf("expected done state, got %s", f.reporter.State())
			}
			if f.store.saved == nil || f.store.saved.Meta.Success != tt.expectOK {
				t.Fatalf("expected saved summary with success=%v, got %+v", tt.expectOK, f.store.saved)
			}
			expectReportErr := ""
			if tt.writeErr != nil {
				expectReportErr = tt.writeErr.Error()
			}
			if f.store.saved.Meta.ReportError != expectReportErr {
				t.Errorf("expected report error %q, got %q", expectReportErr, f.store.saved.Meta.ReportError)
			}
		})
	}
}

func TestReporter_SessionDoneWithoutCallbacks(t *testing.T) {
	r := New(Options{SuiteName: "s"}, Deps{
		Hostname: func() (string, error) { return "h", nil },
		Log:      &bytes.Buffer{},
	})
	r.SessionStarted()
	if err := r.SessionDone(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.LastSummary() == nil || !r.LastSummary().Meta.Success {
		t.Errorf("expected successful summary, got %+v", r.LastSummary())
	}
}

func TestReporter_Summary(t *testing.T) {
	f := newFixture(defaultOptions())
	f.reporter.SessionStarted()
	f.runCase(t, domain.SpecResult{FullName: "a ok", Description: "ok", Status: domain.StatusPassed})
	f.runCase(t, domain.SpecResult{
		FullName:           "a broken",
		Description:        "broken",
		Status:             domain.StatusFailed,
		FailedExpectations: []domain.Expectation{{Message: "m", Stack: "trace"}},
	})
	f.runCase(t, domain.SpecResult{FullName: "a later", Description: "later", Status: domain.StatusPending})
	f.reporter.SessionDone(context.Background(), nil)

	expected := &domain.RunSummary{
		Meta: domain.RunMeta{
			RunID:       "run-1",
			SuiteName:   "Suite Name",
			PackageName: "Package Name",
			Hostname:    "localhost",
			Timestamp:   "2014-07-31T22:40:18.211Z",
			Tests:       3,
			Failures:    1,
			Skipped:     1,
			Time:        "0.024",
			Duration:    "2s",
			ReportPath:  "./results.xml",
			Success:     false,
		},
		Details: []domain.FailedCase{
			{Classname: "Package Name.a", Name: "broken", Status: domain.StatusFailed, Time: "0.008", Stacks: []string{"trace"}},
			{Classname: "Package Name.a", Name: "later", Status: domain.StatusPending, Time: "0.008", Stacks: []string{}},
		},
	}
	if diff := cmp.Diff(expected, f.store.saved); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestReporter_GuardedTransitions(t *testing.T) {
	f := newFixture(defaultOptions())

	if err := f.reporter.CaseStarted(); !errors.Is(err, ErrSessionNotStarted) {
		t.Errorf("expected ErrSessionNotStarted, got %v", err)
	}
	if err := f.reporter.CaseDone(domain.SpecResult{}); !errors.Is(err, ErrSessionNotStarted) {
		t.Errorf("expected ErrSessionNotStarted, got %v", err)
	}
	if err := f.reporter.SessionDone(context.Background(), nil); !errors.Is(err, ErrSessionNotStarted) {
		t.Errorf("expected ErrSessionNotStarted, got %v", err)
	}
	if len(f.completed) != 0 {
		t.Errorf("OnComplete must not fire without a session")
	}

	f.reporter.SessionStarted()
	if err := f.reporter.SessionStarted(); !errors.Is(err, ErrSessionActive) {
		t.Errorf("expected ErrSessionActive, got %v", err)
	}

	f.reporter.SessionDone(context.Background(), nil)
	if err := f.reporter.SessionDone(context.Background(), nil); !errors.Is(err, ErrSessionNotStarted) {
		t.Errorf("expected ErrSessionNotStarted after done, got %v", err)
	}

	t.Run("new session after done starts fresh", func(t *testing.T) {
		if err := f.reporter.SessionStarted(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.reporter.Suite().TestCount() != 0 {
			t.Errorf("expected empty suite, got %d cases", f.reporter.Suite().TestCount())
		}
	})
}

func TestStopwatch(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := &Stopwatch{now: func() time.Time { return now }}

	if s.Elapsed() != 0 {
		t.Errorf("expected zero before start, got %v", s.Elapsed())
	}
	s.Start()
	now = now.Add(1500 * time.Millisecond)
	if s.Elapsed() != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", s.Elapsed())
	}
}
