package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// ConvertCommand handles the convert command
type ConvertCommand struct {
	session *Session
	stdin   io.Reader
}

// NewConvertCommand creates a new ConvertCommand
func NewConvertCommand(session *Session) *ConvertCommand {
	return &ConvertCommand{
		session: session,
		stdin:   os.Stdin,
	}
}

// Execute reports a recorded event stream from a file or stdin
func (cc *ConvertCommand) Execute(cmd *cobra.Command, args []string) error {
	in := cc.stdin
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open events file: %w", err)
		}
		defer f.Close()
		in = f
	}
	return cc.session.Report(cmd.Context(), in)
}
