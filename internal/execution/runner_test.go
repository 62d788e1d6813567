package execution

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"
)

func TestRunner_Start(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	runner := NewRunner("")
	runner.stderr = &bytes.Buffer{}

	t.Run("streams stdout", func(t *testing.T) {
		proc, err := runner.Start(context.Background(), []string{"sh", "-c", "echo hello"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out, err := io.ReadAll(proc.Stdout)
		if err != nil {
			t.Fatalf("read stdout: %v", err)
		}
		if err := proc.Wait(); err != nil {
			t.Fatalf("unexpected exit error: %v", err)
		}
		if string(out) != "hello\n" {
			t.Errorf("expected hello, got %q", out)
		}
		if proc.ExitCode() != 0 {
			t.Errorf("expected exit code 0, got %d", proc.ExitCode())
		}
	})

	t.Run("reports exit code", func(t *testing.T) {
		proc, err := runner.Start(context.Background(), []string{"sh", "-c", "exit 3"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		io.Copy(io.Discard, proc.Stdout)
		if err := proc.Wait(); err == nil {
			t.Error("expected exit error")
		}
		if proc.ExitCode() != 3 {
			t.Errorf("expected exit code 3, got %d", proc.ExitCode())
		}
	})

	t.Run("returns error for empty command", func(t *testing.T) {
		if _, err := runner.Start(context.Background(), nil); !errors.Is(err, ErrNoCommand) {
			t.Errorf("expected ErrNoCommand, got %v", err)
		}
	})

	t.Run("returns error for missing binary", func(t *testing.T) {
		if _, err := runner.Start(context.Background(), []string{"/non/existent/binary"}); err == nil {
			t.Error("expected error for missing binary")
		}
	})
}
