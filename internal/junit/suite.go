package junit

import (
	"fmt"
	"strings"

	"jrep/internal/domain"
)

// Suite aggregates the cases of one session, corresponding to a <testsuite> element
type Suite struct {
	name      string
	timestamp string
	hostname  string
	pkg       string
	id        int
	cases     []*Case
}

// NewSuite creates an empty suite. Values are stored as given.
func NewSuite(name, timestamp, hostname, pkg string, id int) *Suite {
	return &Suite{
		name:      name,
		timestamp: timestamp,
		hostname:  hostname,
		pkg:       pkg,
		id:        id,
	}
}

// Name returns the suite name
func (s *Suite) Name() string { return s.name }

// Package returns the package name
func (s *Suite) Package() string { return s.pkg }

// Hostname returns the host the suite was created on
func (s *Suite) Hostname() string { return s.hostname }

// Timestamp returns the ISO 8601 creation time
func (s *Suite) Timestamp() string { return s.timestamp }

// AddCase appends candidate if it is a *Case. Anything else is ignored.
func (s *Suite) AddCase(candidate any) {
	c, ok := asCase(candidate)
	if !ok {
		return
	}
	s.cases = append(s.cases, c)
}

func asCase(candidate any) (*Case, bool) {
	c, ok := candidate.(*Case)
	if !ok || c == nil {
		return nil, false
	}
	return c, true
}

// Cases returns the cases in completion order
func (s *Suite) Cases() []*Case {
	out := make([]*Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// TestCount returns the number of cases
func (s *Suite) TestCount() int {
	return len(s.cases)
}

// IssueCount counts cases with one of the given statuses.
// With no statuses it counts failed cases.
func (s *Suite) IssueCount(kinds ...domain.Status) int {
	if len(kinds) == 0 {
		kinds = []domain.Status{domain.StatusFailed}
	}

	count := 0
	for _, c := range s.cases {
		for _, kind := range kinds {
			if c.status == kind {
				count++
				break
			}
		}
	}
	return count
}

// Issues returns the number of errored, failed and pending cases
func (s *Suite) Issues() int {
	return s.IssueCount(domain.IssueStatuses...)
}

// Seconds returns the sum of all case times
func (s *Suite) Seconds() float64 {
	var total float64
	for _, c := range s.cases {
		total += c.time
	}
	return total
}

// Time returns the summed case time with three decimals
func (s *Suite) Time() string {
	return FormatSeconds(s.Seconds())
}

// Serialize renders the whole report on a single line. Suite attributes are
// inserted verbatim.
func (s *Suite) Serialize() string {
	var cases strings.Builder
	for _, c := range s.cases {
		cases.WriteString(c.Serialize())
	}

	return fmt.Sprintf(
		`<testsuites><testsuite name="%s" package="%s" timestamp="%s" id="%d" hostname="%s" tests="%d" errors="%d" `+
			`failures="%d" skipped="%d" time="%s">%s</testsuite></testsuites>`,
		s.name, s.pkg, s.timestamp, s.id, s.hostname, s.TestCount(), s.IssueCount(domain.StatusError),
		s.IssueCount(domain.StatusFailed), s.IssueCount(domain.StatusPending), s.Time(), cases.String())
}
