package commands

import (
	"github.com/spf13/cobra"

	"jrep/internal/storage"
	"jrep/internal/ui"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	storage   storage.SummaryStore
	formatter *ui.Formatter
}

// NewSummaryCommand creates a new SummaryCommand
func NewSummaryCommand(st storage.SummaryStore, formatter *ui.Formatter) *SummaryCommand {
	return &SummaryCommand{
		storage:   st,
		formatter: formatter,
	}
}

// Execute prints the summary of the last run
func (sc *SummaryCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := sc.storage.Load()
	if err != nil {
		return err
	}
	sc.formatter.PrintSummary(summary)
	return nil
}
