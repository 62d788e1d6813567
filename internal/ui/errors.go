package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"jrep/internal/domain"
	"jrep/internal/storage"
)

// maxStackLines limits the stack shown per expectation in the details pane
const maxStackLines = 40

// FailureViewer displays the failed cases of a run in an interactive TUI
type FailureViewer struct {
	storage storage.SummaryStore
}

// NewFailureViewer creates a new FailureViewer
func NewFailureViewer(st storage.SummaryStore) *FailureViewer {
	return &FailureViewer{storage: st}
}

// View displays failed cases in an interactive TUI. Toggling a case
// resolved is persisted back to the summary store.
func (fv *FailureViewer) View(summary *domain.RunSummary) error {
	if len(summary.Details) == 0 {
		color.Green("✓ No test failures found!")
		return nil
	}

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for i := range summary.Details {
		list.AddItem(listItemText(summary.Details[i], i), "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	statsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(false)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	rightSide := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(statsView, 3, 0, false).
		AddItem(detailsView, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(rightSide, 0, 2, false)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true)

	updateHeader := func() {
		headerView.SetText(fmt.Sprintf(
			" %s: %d issue(s), %d unresolved | ↑↓ navigate, [yellow]R[white] resolve, → details, ← back, Ctrl+C exit ",
			tview.Escape(summary.Meta.SuiteName), len(summary.Details), countUnresolved(summary.Details)))
	}

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index < 0 || index >= len(summary.Details) {
			return
		}
		failure := summary.Details[index]
		statsView.SetText(formatFailureStats(failure))
		detailsView.SetText(formatFailureDetails(failure)).ScrollToBeginning()
	}

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'r' || event.Rune() == 'R' {
				index := list.GetCurrentItem()
				if index >= 0 && index < len(summary.Details) {
					summary.Details[index].Resolved = !summary.Details[index].Resolved
					list.SetItemText(index, listItemText(summary.Details[index], index), "")
					updateHeader()
					updateDetails()
					if fv.storage != nil {
						// Best effort; the viewer keeps working if the file is read-only
						_ = fv.storage.Save(summary)
					}
				}
				return nil
			}
		}
		return event
	})

	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})

	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	updateHeader()
	updateDetails()

	mainLayout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(tview.NewBox(), 1, 0, false).
		AddItem(flex, 0, 1, true)

	if err := app.SetRoot(mainLayout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func countUnresolved(details []domain.FailedCase) int {
	count := 0
	for _, d := range details {
		if !d.Resolved {
			count++
		}
	}
	return count
}

func listItemText(failure domain.FailedCase, index int) string {
	name := failure.Name
	if name == "" {
		name = fmt.Sprintf("Case %d", index+1)
	}
	name = tview.Escape(name)
	if failure.Resolved {
		return fmt.Sprintf("[gray]✓ [yellow]%d.[gray] %s[white]", index+1, name)
	}
	return fmt.Sprintf("[yellow]%d.[white] %s", index+1, name)
}

// formatFailureStats formats the header line for a failed case
func formatFailureStats(failure domain.FailedCase) string {
	return fmt.Sprintf("[cyan]class:[white] [yellow]%s[white]  [cyan]status:[white] %s  [cyan]time:[white] %ss\n",
		tview.Escape(failure.Classname), failure.Status, failure.Time)
}

// formatFailureDetails formats a failed case for display using tview color tags
func formatFailureDetails(failure domain.FailedCase) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[red]✗ %s[white]\n\n", tview.Escape(failure.Name))

	if failure.Status == domain.StatusPending {
		b.WriteString("[yellow]Skipped[white]\n")
		return b.String()
	}
	if len(failure.Stacks) == 0 {
		b.WriteString("[gray]No diagnostics recorded[white]\n")
		return b.String()
	}

	for i, stack := range failure.Stacks {
		fmt.Fprintf(&b, "[yellow]Expectation %d:[white]\n", i+1)
		lines := strings.Split(strings.TrimRight(stack, "\n"), "\n")
		for j, line := range lines {
			if j == maxStackLines {
				fmt.Fprintf(&b, "  [gray]... and %d more lines[white]\n", len(lines)-maxStackLines)
				break
			}
			fmt.Fprintf(&b, "  %s\n", tview.Escape(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
