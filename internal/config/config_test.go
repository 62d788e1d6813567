package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.SuiteName != DefaultSuiteName {
		t.Errorf("expected SuiteName %s, got %s", DefaultSuiteName, cfg.SuiteName)
	}

	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected OutputDir %s, got %s", DefaultOutputDir, cfg.OutputDir)
	}

	if diff := cmp.Diff(DefaultCommand, cfg.Command); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}

	cfg.Command[0] = "changed"
	if DefaultCommand[0] != "go" {
		t.Error("New should copy the default command")
	}
}

func TestConfig_GetReportPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "save path and prefix",
			config:   &Config{SavePath: "./", FilePrefix: "results"},
			expected: "./results.xml",
		},
		{
			name:     "plain concatenation",
			config:   &Config{SavePath: "reports/junit-", FilePrefix: "unit"},
			expected: "reports/junit-unit.xml",
		},
		{
			name:     "missing save path",
			config:   &Config{FilePrefix: "results"},
			expected: "",
		},
		{
			name:     "missing prefix",
			config:   &Config{SavePath: "./"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.GetReportPath()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_LoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "jrep.yaml")
	content := `suite_name: Nightly
package_name: acme
save_path: out/
file_prefix: nightly
command: ["make", "test-json"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg := New()
	if err := cfg.LoadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SuiteName != "Nightly" || cfg.PackageName != "acme" {
		t.Errorf("unexpected names: %q %q", cfg.SuiteName, cfg.PackageName)
	}
	if cfg.GetReportPath() != "out/nightly.xml" {
		t.Errorf("unexpected report path %s", cfg.GetReportPath())
	}
	if diff := cmp.Diff([]string{"make", "test-json"}, cfg.Command); diff != "" {
		t.Errorf("command mismatch (-want +got):\n%s", diff)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected unset keys to keep defaults, got OutputDir %q", cfg.OutputDir)
	}

	t.Run("returns error for invalid yaml", func(t *testing.T) {
		bad := filepath.Join(tmpDir, "bad.yaml")
		os.WriteFile(bad, []byte("suite_name: [unterminated"), 0644)
		if err := New().LoadFile(bad); err == nil {
			t.Error("expected error for invalid yaml")
		}
	})
}

func TestLoad_Precedence(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "jrep.yaml")
	content := "suite_name: from-file\npackage_name: file-pkg\nfile_prefix: file-prefix\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	t.Setenv(EnvPackageName, "env-pkg")
	t.Setenv(EnvSavePath, "env/")
	t.Setenv(EnvFilePrefix, "")

	cfg, err := Load(Flags{ConfigFile: path, SuiteName: "from-flag"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SuiteName != "from-flag" {
		t.Errorf("expected flag to win, got %s", cfg.SuiteName)
	}
	if cfg.PackageName != "env-pkg" {
		t.Errorf("expected env to override file, got %s", cfg.PackageName)
	}
	if cfg.GetReportPath() != "env/file-prefix.xml" {
		t.Errorf("unexpected report path %s", cfg.GetReportPath())
	}

	t.Run("missing explicit config file", func(t *testing.T) {
		if _, err := Load(Flags{ConfigFile: filepath.Join(tmpDir, "missing.yaml")}); err == nil {
			t.Error("expected error for missing explicit config file")
		}
	})
}

func TestConfig_GetSummaryPath(t *testing.T) {
	cfg := New()
	path := cfg.GetSummaryPath()

	if !filepath.IsAbs(path) {
		t.Errorf("expected absolute path, got %s", path)
	}
	if filepath.Base(path) != DefaultSummaryFile {
		t.Errorf("expected %s, got %s", DefaultSummaryFile, filepath.Base(path))
	}
}
