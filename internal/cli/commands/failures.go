package commands

import (
	"github.com/spf13/cobra"

	"jrep/internal/storage"
	"jrep/internal/ui"
)

// FailuresCommand handles the failures command
type FailuresCommand struct {
	storage storage.SummaryStore
	viewer  ui.Viewer
}

// NewFailuresCommand creates a new FailuresCommand
func NewFailuresCommand(st storage.SummaryStore, viewer ui.Viewer) *FailuresCommand {
	return &FailuresCommand{
		storage: st,
		viewer:  viewer,
	}
}

// Execute opens the failures of the last run in the viewer
func (fc *FailuresCommand) Execute(cmd *cobra.Command, args []string) error {
	summary, err := fc.storage.Load()
	if err != nil {
		return err
	}
	return fc.viewer.View(summary)
}
