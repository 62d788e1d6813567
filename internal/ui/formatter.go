package ui

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"

	"jrep/internal/domain"
)

// Formatter prints run summaries to the terminal
type Formatter struct {
	out io.Writer
}

// NewFormatter creates a Formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stdout)
}

// NewFormatterTo creates a Formatter writing to w
func NewFormatterTo(w io.Writer) *Formatter {
	return &Formatter{out: w}
}

const (
	rowSeparator = "├─────────────────────────────────┼─────────────────────────────┤"
	tableTop     = "┌─────────────────────────────────┬─────────────────────────────┐"
	tableBottom  = "└─────────────────────────────────┴─────────────────────────────┘"
)

type summaryRow struct {
	label string
	value any
	c     *color.Color
}

// PrintSummary displays the statistics of a run followed by its failed cases
func (f *Formatter) PrintSummary(summary *domain.RunSummary) {
	meta := summary.Meta
	cyan := color.New(color.FgCyan)
	white := color.New(color.FgWhite)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	fmt.Fprint(f.out, "\n")
	cyan.Fprintln(f.out, "╔═══════════════════════════════════════════════════════════════╗")
	cyan.Fprintln(f.out, "║                       JUnit Report Summary                    ║")
	cyan.Fprintln(f.out, "╚═══════════════════════════════════════════════════════════════╝")

	fmt.Fprintln(f.out, tableTop)
	rows := []summaryRow{
		{"Suite", meta.SuiteName, white},
		{"Tests", meta.Tests, white},
		{"Failures", meta.Failures, red},
		{"Errors", meta.Errors, red},
		{"Skipped", meta.Skipped, yellow},
		{"Time (s)", meta.Time, white},
		{"Duration", meta.Duration, white},
		{"Timestamp", meta.Timestamp, white},
	}
	if meta.ReportPath != "" && meta.ReportError == "" {
		rows = append(rows, summaryRow{"Report", meta.ReportPath, green})
	}
	for i, row := range rows {
		fmt.Fprintf(f.out, "│ %-31s │ ", row.label)
		row.c.Fprintf(f.out, "%-27v", row.value)
		fmt.Fprint(f.out, " │\n")
		if i < len(rows)-1 {
			fmt.Fprintln(f.out, rowSeparator)
		}
	}
	fmt.Fprintln(f.out, tableBottom)

	fmt.Fprintln(f.out)
	if meta.Success {
		green.Fprintln(f.out, "✓ All tests passed!")
		return
	}
	if meta.ReportError != "" {
		red.Fprintf(f.out, "✗ Report not written to %s: %s\n", meta.ReportPath, meta.ReportError)
	}
	if meta.Failures+meta.Errors+meta.Skipped > 0 {
		red.Fprintf(f.out, "✗ %d failure(s), %d error(s), %d skipped\n", meta.Failures, meta.Errors, meta.Skipped)
	}
	fmt.Fprintln(f.out)
	f.printFailedTree(summary.Details)
}

// printFailedTree groups failed cases under their classname
func (f *Formatter) printFailedTree(details []domain.FailedCase) {
	if len(details) == 0 {
		return
	}

	groups := make(map[string][]domain.FailedCase)
	for _, d := range details {
		groups[d.Classname] = append(groups[d.Classname], d)
	}
	classnames := make([]string, 0, len(groups))
	for name := range groups {
		classnames = append(classnames, name)
	}
	sort.Strings(classnames)

	cyan := color.New(color.FgCyan)
	for i, name := range classnames {
		isLastGroup := i == len(classnames)-1
		branch, indent := "├── ", "│   "
		if isLastGroup {
			branch, indent = "└── ", "    "
		}
		cyan.Fprintf(f.out, "%s%s\n", branch, name)

		cases := groups[name]
		for j, c := range cases {
			leaf := "├── "
			if j == len(cases)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(f.out, "%s%s%s\n", indent, leaf, statusColor(c.Status).Sprintf("[%s] %s", c.Status, c.Name))
		}
	}
}

func statusColor(s domain.Status) *color.Color {
	switch s {
	case domain.StatusPending:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
