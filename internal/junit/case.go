package junit

import (
	"fmt"
	"strings"

	"jrep/internal/domain"
)

const failureMessage = "test failure"

// Case is one finished spec, corresponding to a <testcase> element
type Case struct {
	classname    string
	name         string
	time         float64
	status       domain.Status
	expectations []domain.Expectation
}

// NewCase builds a Case from the host's spec result and its measured duration.
// When pkg is set the classname is prefixed with it.
func NewCase(result domain.SpecResult, seconds float64, pkg string) *Case {
	classname := Classname(result.FullName, result.Description)
	if pkg != "" {
		classname = pkg + "." + classname
	}

	expectations := make([]domain.Expectation, len(result.FailedExpectations))
	copy(expectations, result.FailedExpectations)

	return &Case{
		classname:    classname,
		name:         result.Description,
		time:         seconds,
		status:       result.Status,
		expectations: expectations,
	}
}

// Classname returns the case's containing scope
func (c *Case) Classname() string { return c.classname }

// Name returns the case's short description
func (c *Case) Name() string { return c.name }

// Seconds returns the elapsed time of the case
func (c *Case) Seconds() float64 { return c.time }

// Status returns the case outcome
func (c *Case) Status() domain.Status { return c.status }

// Stacks returns the stack text of every failed expectation, in order
func (c *Case) Stacks() []string {
	stacks := make([]string, 0, len(c.expectations))
	for _, e := range c.expectations {
		stacks = append(stacks, e.Stack)
	}
	return stacks
}

// Serialize renders the case as a <testcase> element.
//
//	<testcase classname="integration tests basic" name="should receive a 200" time="0.047"></testcase>
func (c *Case) Serialize() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<testcase classname="%s" name="%s" time="%s">`,
		EscapeAttr(c.classname), EscapeAttr(c.name), FormatSeconds(c.time))

	switch c.status {
	case domain.StatusError:
		fmt.Fprintf(&b, `<error message="%s">%s</error>`, failureMessage, cdata(c.diagnostics()))
	case domain.StatusFailed:
		fmt.Fprintf(&b, `<failure message="%s">%s</failure>`, failureMessage, cdata(c.diagnostics()))
	case domain.StatusPending:
		b.WriteString("<skipped></skipped>")
	}

	b.WriteString("</testcase>")
	return b.String()
}

// diagnostics concatenates the stacks with no delimiter
func (c *Case) diagnostics() string {
	return strings.Join(c.Stacks(), "")
}
