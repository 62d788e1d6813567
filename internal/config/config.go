package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	// Report settings
	SuiteName   string `yaml:"suite_name"`
	PackageName string `yaml:"package_name"`
	SavePath    string `yaml:"save_path"`
	FilePrefix  string `yaml:"file_prefix"`

	// Run summary settings
	OutputDir   string `yaml:"output_dir"`
	SummaryFile string `yaml:"summary_file"`

	// Optional S3 upload of the report
	S3Bucket string `yaml:"s3_bucket"`
	S3Prefix string `yaml:"s3_prefix"`
	S3Region string `yaml:"s3_region"`

	// Command wrapped by `jrep run`
	Command []string `yaml:"command"`

	// Command flags
	Flags Flags `yaml:"-"`
}

// Flags holds command-line flags
type Flags struct {
	ConfigFile  string
	SuiteName   string
	PackageName string
	SavePath    string
	FilePrefix  string
	S3Bucket    string
	S3Prefix    string
	S3Region    string
	NoProgress  bool
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		SuiteName:   DefaultSuiteName,
		OutputDir:   DefaultOutputDir,
		SummaryFile: DefaultSummaryFile,
	}
	cfg.Command = make([]string, len(DefaultCommand))
	copy(cfg.Command, DefaultCommand)
	return cfg
}

// Load builds a config from defaults, the YAML file, the environment
// (including a .env file in the working directory) and finally the flags.
func Load(flags Flags) (*Config, error) {
	cfg := New()

	configFile := flags.ConfigFile
	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile
	}
	if err := cfg.LoadFile(configFile); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// .env might not exist, that's okay - use environment variables
	_ = godotenv.Load(DefaultEnvFile)
	cfg.ApplyEnv()

	cfg.ApplyFlags(flags)
	return cfg, nil
}

// LoadFile merges the YAML file at path into the config
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides settings from JUNIT_REPORT_* environment variables
func (c *Config) ApplyEnv() {
	override(&c.SuiteName, os.Getenv(EnvSuiteName))
	override(&c.PackageName, os.Getenv(EnvPackageName))
	override(&c.SavePath, os.Getenv(EnvSavePath))
	override(&c.FilePrefix, os.Getenv(EnvFilePrefix))
	override(&c.OutputDir, os.Getenv(EnvOutputDir))
	override(&c.S3Bucket, os.Getenv(EnvS3Bucket))
	override(&c.S3Prefix, os.Getenv(EnvS3Prefix))
	override(&c.S3Region, os.Getenv(EnvS3Region))
}

// ApplyFlags overrides settings with the flags that were set
func (c *Config) ApplyFlags(flags Flags) {
	c.Flags = flags
	override(&c.SuiteName, flags.SuiteName)
	override(&c.PackageName, flags.PackageName)
	override(&c.SavePath, flags.SavePath)
	override(&c.FilePrefix, flags.FilePrefix)
	override(&c.S3Bucket, flags.S3Bucket)
	override(&c.S3Prefix, flags.S3Prefix)
	override(&c.S3Region, flags.S3Region)
}

func override(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// WritesReport reports whether both the save path and the file prefix are set
func (c *Config) WritesReport() bool {
	return c.SavePath != "" && c.FilePrefix != ""
}

// GetReportPath returns where the XML report is written.
// The save path and prefix are concatenated as given, so the save path
// needs its trailing separator.
func (c *Config) GetReportPath() string {
	if !c.WritesReport() {
		return ""
	}
	return c.SavePath + c.FilePrefix + ".xml"
}

// GetSummaryPath returns the absolute path to the run summary JSON file
func (c *Config) GetSummaryPath() string {
	p := filepath.Join(c.OutputDir, c.SummaryFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// UploadsToS3 reports whether an S3 bucket is configured
func (c *Config) UploadsToS3() bool {
	return c.S3Bucket != ""
}
