package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// ErrNoCommand is returned when there is nothing to run
var ErrNoCommand = errors.New("no test command given")

// Process is a started test command whose stdout is being streamed
type Process struct {
	cmd    *exec.Cmd
	Stdout io.Reader
}

// Wait waits for the command to exit and returns its exit error, if any
func (p *Process) Wait() error {
	return p.cmd.Wait()
}

// ExitCode returns the exit code once Wait has returned, or -1
func (p *Process) ExitCode() int {
	if p.cmd.ProcessState == nil {
		return -1
	}
	return p.cmd.ProcessState.ExitCode()
}

// Runner starts the wrapped test command
type Runner struct {
	dir    string
	stderr io.Writer
}

// NewRunner creates a Runner executing in dir (empty for the current directory)
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir, stderr: os.Stderr}
}

// Start launches argv, passing stderr through. The caller must drain
// Stdout before calling Wait.
func (r *Runner) Start(ctx context.Context, argv []string) (*Process, error) {
	if len(argv) == 0 {
		return nil, ErrNoCommand
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = os.Environ()
	cmd.Dir = r.dir
	cmd.Stderr = r.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open stdout of %s: %w", argv[0], err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}
	return &Process{cmd: cmd, Stdout: stdout}, nil
}
