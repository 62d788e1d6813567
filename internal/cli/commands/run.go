package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jrep/internal/config"
	"jrep/internal/execution"
)

// RunCommand handles the run command
type RunCommand struct {
	config  *config.Config
	runner  *execution.Runner
	session *Session
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(cfg *config.Config, runner *execution.Runner, session *Session) *RunCommand {
	return &RunCommand{
		config:  cfg,
		runner:  runner,
		session: session,
	}
}

// Execute runs the wrapped test command and reports its event stream
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	argv := args
	if len(argv) == 0 {
		argv = rc.config.Command
	}

	proc, err := rc.runner.Start(cmd.Context(), argv)
	if err != nil {
		return err
	}

	reportErr := rc.session.Report(cmd.Context(), proc.Stdout)
	waitErr := proc.Wait()

	if reportErr != nil {
		return reportErr
	}
	// A failing test command without any reported issue (e.g. a crash after
	// the last event) still fails the run.
	if waitErr != nil {
		return fmt.Errorf("test command exited with code %d: %w", proc.ExitCode(), errors.Join(waitErr, ErrIssues))
	}
	return nil
}
