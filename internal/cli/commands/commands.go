package commands

import (
	"os"

	"github.com/spf13/cobra"

	"jrep/internal/cli"
	"jrep/internal/config"
	"jrep/internal/execution"
	"jrep/internal/storage"
	"jrep/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run      *RunCommand
	Convert  *ConvertCommand
	Summary  *SummaryCommand
	Failures *FailuresCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	runner := execution.NewRunner("")
	session := NewSession(cfg, jsonStorage, formatter, nil, os.Stderr)
	viewer := ui.NewFailureViewer(jsonStorage)

	return &Commands{
		Run:      NewRunCommand(cfg, runner, session),
		Convert:  NewConvertCommand(session),
		Summary:  NewSummaryCommand(jsonStorage, formatter),
		Failures: NewFailuresCommand(jsonStorage, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Load config after parsing so flags override file and environment
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to a YAML config file (default .jrep.yaml if present)")

	reportFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&flags.SuiteName, "suite-name", "n", "", "Name of the <testsuite>")
		cmd.Flags().StringVarP(&flags.PackageName, "package-name", "p", "", "Package attribute, also prefixed to classnames")
		cmd.Flags().StringVarP(&flags.SavePath, "save-path", "s", "", "Directory prefix of the report, including the trailing separator (e.g. 'reports/')")
		cmd.Flags().StringVarP(&flags.FilePrefix, "file-prefix", "f", "", "Report file name without .xml; no report is written unless both save path and prefix are set")
		cmd.Flags().StringVar(&flags.S3Bucket, "s3-bucket", "", "Also upload the report to this S3 bucket")
		cmd.Flags().StringVar(&flags.S3Prefix, "s3-prefix", "", "Key prefix for the S3 upload")
		cmd.Flags().StringVar(&flags.S3Region, "s3-region", "", "AWS region of the S3 bucket")
		cmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Do not show the progress bar")
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run [-- command args...]",
		Short:   "Run a test command and write a JUnit report",
		Long:    "Execute a command producing `go test -json` output (default: go test -json ./...) and write its results as JUnit XML",
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	reportFlags(runCmd)
	rootCmd.AddCommand(runCmd)

	// Convert command
	convertCmd := &cobra.Command{
		Use:     "convert [events-file]",
		Short:   "Convert recorded test events to a JUnit report",
		Long:    "Read `go test -json` output from a file or stdin and write it as JUnit XML",
		Args:    cobra.MaximumNArgs(1),
		RunE:    c.Convert.Execute,
		PreRunE: loadConfig,
	}
	reportFlags(convertCmd)
	rootCmd.AddCommand(convertCmd)

	// Summary command
	summaryCmd := &cobra.Command{
		Use:     "summary",
		Short:   "Print the summary of the last run",
		RunE:    c.Summary.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(summaryCmd)

	// Failures command
	failuresCmd := &cobra.Command{
		Use:     "failures",
		Short:   "View failures of the last run interactively",
		Long:    "Display failed, errored and skipped cases from the last run in an interactive viewer",
		RunE:    c.Failures.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(failuresCmd)
}
