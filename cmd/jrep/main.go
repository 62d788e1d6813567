package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jrep/internal/cli"
	"jrep/internal/cli/commands"
	"jrep/internal/config"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "jrep",
		Short:         "JUnit XML reporter for test sessions",
		Long:          `Collect results from a running test session and write a JUnit-compatible XML report for CI tools.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Create initial config with defaults
	cfg := config.New()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		// Issues were already printed in the summary
		if !errors.Is(err, commands.ErrIssues) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
