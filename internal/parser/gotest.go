package parser

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"jrep/internal/domain"
)

// Event is one line of `go test -json` output
type Event struct {
	Time        time.Time `json:"Time"`
	Action      string    `json:"Action"`
	Package     string    `json:"Package"`
	Test        string    `json:"Test"`
	Elapsed     float64   `json:"Elapsed"`
	Output      string    `json:"Output"`
	ImportPath  string    `json:"ImportPath"`
	FailedBuild string    `json:"FailedBuild"`
}

// Progress is notified after every recorded case
type Progress interface {
	Update(passed, failed int)
	Finish()
}

// EventTimer is a Timer whose elapsed time comes from the event stream
type EventTimer struct {
	elapsed time.Duration
}

// Start is a no-op; durations are set from events
func (t *EventTimer) Start() {}

// Elapsed returns the duration of the last finished event
func (t *EventTimer) Elapsed() time.Duration { return t.elapsed }

// Set records the duration reported by the event stream
func (t *EventTimer) Set(seconds float64) {
	t.elapsed = time.Duration(math.Round(seconds * float64(time.Second)))
}

type packageState struct {
	output   strings.Builder
	failures int
	tests    map[string]*strings.Builder
}

// GoTestParser feeds test2json events to lifecycle hooks
type GoTestParser struct {
	timer    *EventTimer
	progress Progress
	done     func()
}

// NewGoTestParser creates a parser that reports case durations through timer
func NewGoTestParser(timer *EventTimer) *GoTestParser {
	return &GoTestParser{timer: timer}
}

// SetProgress sets the progress reporter
func (p *GoTestParser) SetProgress(progress Progress) {
	p.progress = progress
}

// SetDone sets the callback handed to SessionDone
func (p *GoTestParser) SetDone(done func()) {
	p.done = done
}

// Feed reads events until EOF. The session starts with the first line and
// ends when the stream does; an empty stream produces no session.
func (p *GoTestParser) Feed(ctx context.Context, r io.Reader, hooks Hooks) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	finished := false
	finish := func() {
		if p.progress != nil && !finished {
			finished = true
			p.progress.Finish()
		}
	}
	defer finish()

	packages := make(map[string]*packageState)
	builds := make(map[string]*strings.Builder)
	// plain text seen outside a running package belongs to the next one
	var current string
	var pending strings.Builder
	started := false
	passed, failed := 0, 0

	state := func(name string) *packageState {
		ps, ok := packages[name]
		if !ok {
			ps = &packageState{tests: make(map[string]*strings.Builder)}
			packages[name] = ps
		}
		if pending.Len() > 0 {
			ps.output.WriteString(pending.String())
			pending.Reset()
		}
		return ps
	}

	record := func(result domain.SpecResult, seconds float64) error {
		p.timer.Set(seconds)
		if err := hooks.CaseStarted(); err != nil {
			return err
		}
		if err := hooks.CaseDone(result); err != nil {
			return err
		}
		if result.Status.IsIssue() && result.Status != domain.StatusPending {
			failed++
		} else {
			passed++
		}
		if p.progress != nil {
			p.progress.Update(passed, failed)
		}
		return nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		if !started {
			if err := hooks.SessionStarted(); err != nil {
				return err
			}
			started = true
		}

		var ev Event
		if err := json.Unmarshal(line, &ev); err != nil || ev.Action == "" {
			if current == "" {
				pending.WriteString(string(line) + "\n")
			} else {
				state(current).output.WriteString(string(line) + "\n")
			}
			continue
		}
		if ev.Action == "build-output" || ev.Action == "build-fail" {
			if ev.Action == "build-output" {
				out, ok := builds[ev.ImportPath]
				if !ok {
					out = &strings.Builder{}
					builds[ev.ImportPath] = out
				}
				out.WriteString(ev.Output)
			}
			continue
		}
		if ev.Package == "" {
			continue
		}
		current = ev.Package
		ps := state(ev.Package)

		if ev.Test == "" {
			switch ev.Action {
			case "output":
				ps.output.WriteString(ev.Output)
			case "pass", "skip":
				current = ""
			case "fail":
				current = ""
				if ps.failures == 0 {
					output := buildOutput(builds, ev) + ps.output.String()
					if err := record(packageFailure(ev.Package, output), ev.Elapsed); err != nil {
						return err
					}
				}
			}
			continue
		}

		switch ev.Action {
		case "run":
			ps.tests[ev.Test] = &strings.Builder{}
		case "output":
			out, ok := ps.tests[ev.Test]
			if !ok {
				out = &strings.Builder{}
				ps.tests[ev.Test] = out
			}
			out.WriteString(ev.Output)
		case "pass", "fail", "skip":
			var output string
			if out, ok := ps.tests[ev.Test]; ok {
				output = out.String()
			}
			delete(ps.tests, ev.Test)

			status := statusFor(ev.Action)
			if status == domain.StatusFailed {
				ps.failures++
			}
			if err := record(testResult(ev.Package, ev.Test, status, output), ev.Elapsed); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read test events: %w", err)
	}

	finish()
	if !started {
		return nil
	}
	return hooks.SessionDone(ctx, p.done)
}

// buildOutput returns the compiler output of the build a failed package
// depends on. Go 1.24 names it in FailedBuild; the test variant's import
// path ("pkg [pkg.test]") and the plain package path are tried otherwise.
func buildOutput(builds map[string]*strings.Builder, ev Event) string {
	keys := []string{ev.FailedBuild, ev.Package + " [" + ev.Package + ".test]", ev.Package}
	for _, key := range keys {
		if key == "" {
			continue
		}
		if out, ok := builds[key]; ok {
			return out.String()
		}
	}
	return ""
}

func statusFor(action string) domain.Status {
	switch action {
	case "fail":
		return domain.StatusFailed
	case "skip":
		return domain.StatusPending
	default:
		return domain.StatusPassed
	}
}

// testResult names a test by its package and subtest path, e.g.
// "example.com/pkg TestParse empty_input" with description "empty_input".
func testResult(pkg, test string, status domain.Status, output string) domain.SpecResult {
	segments := strings.Split(test, "/")
	result := domain.SpecResult{
		FullName:    strings.Join(append([]string{pkg}, segments...), " "),
		Description: segments[len(segments)-1],
		Status:      status,
	}
	if status == domain.StatusFailed {
		result.FailedExpectations = []domain.Expectation{{Message: "test failure", Stack: output}}
	}
	return result
}

// packageFailure reports a package that failed without a failing test,
// such as a build error or a panic outside any test.
func packageFailure(pkg, output string) domain.SpecResult {
	return domain.SpecResult{
		FullName:           pkg,
		Description:        pkg,
		Status:             domain.StatusError,
		FailedExpectations: []domain.Expectation{{Message: "package failure", Stack: output}},
	}
}
