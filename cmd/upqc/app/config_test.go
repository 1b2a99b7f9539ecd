package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/agentstation/upscalingqc/pkg/constants"
	pkgerrors "github.com/agentstation/upscalingqc/pkg/errors"
)

// TestLoadConfig verifies basic config loading.
func TestLoadConfig(t *testing.T) {
	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if config == nil {
		t.Fatal("LoadConfig() returned nil config")
	}
	if config.LogFormat == "" {
		t.Error("LogFormat not set to default")
	}
	if config.OutputDir == "" {
		t.Error("OutputDir not set to default")
	}
}

// TestConfig_EnvironmentVariables verifies environment variable loading.
func TestConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("UPQC_PROJECT", "snapshot.yaml")
	t.Setenv("UPQC_OUTPUT", "/tmp/qc")
	t.Setenv("UPQC_VERBOSE", "true")
	t.Setenv("LOG_FORMAT", "json")

	config, err := loadConfig(viper.New())
	if err != nil {
		t.Fatalf("loadConfig() failed: %v", err)
	}

	if config.Project != "snapshot.yaml" {
		t.Errorf("Project = %s, want snapshot.yaml", config.Project)
	}
	if config.OutputDir != "/tmp/qc" {
		t.Errorf("OutputDir = %s, want /tmp/qc", config.OutputDir)
	}
	if !config.Verbose {
		t.Error("UPQC_VERBOSE not loaded")
	}
	if config.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", config.LogFormat)
	}
}

// TestConfig_DefaultOutputDir verifies the default export destination.
func TestConfig_DefaultOutputDir(t *testing.T) {
	t.Setenv("UPQC_OUTPUT", "")

	config, err := LoadConfigFile(writeConfig(t, "project: snapshot.db\n"))
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}
	if config.OutputDir != constants.DefaultOutputDir {
		t.Errorf("OutputDir = %s, want %s", config.OutputDir, constants.DefaultOutputDir)
	}
}

// TestLoadConfigFile verifies values from an explicit config file.
func TestLoadConfigFile(t *testing.T) {
	t.Setenv("UPQC_PROJECT", "")
	t.Setenv("UPQC_OUTPUT", "")

	path := writeConfig(t, `project: snapshot.db
output: results/qc
log_level: debug
format: yaml
`)

	config, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile() failed: %v", err)
	}

	if config.Project != "snapshot.db" {
		t.Errorf("Project = %s, want snapshot.db", config.Project)
	}
	if config.OutputDir != "results/qc" {
		t.Errorf("OutputDir = %s, want results/qc", config.OutputDir)
	}
	if config.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", config.LogLevel)
	}
	if config.Format != "yaml" {
		t.Errorf("Format = %s, want yaml", config.Format)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %s, want %s", config.ConfigFile, path)
	}
}

// TestLoadConfigFile_Missing verifies an explicit config file must exist.
func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var cfgErr *pkgerrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("LoadConfigFile() error = %v, want ConfigError", err)
	}
}

// TestConfig_UpdateFromFlags verifies flag precedence.
func TestConfig_UpdateFromFlags(t *testing.T) {
	config := &Config{
		Format:   "table",
		LogLevel: "info",
		Project:  "config.yaml",
	}

	config.UpdateFromFlags(true, false, "", "", "")
	if !config.Verbose {
		t.Error("Verbose not updated")
	}
	if config.Format != "table" || config.LogLevel != "info" || config.Project != "config.yaml" {
		t.Errorf("empty flags overwrote config: %+v", config)
	}

	config.UpdateFromFlags(false, true, "json", "error", "flag.db")
	if config.Verbose || !config.Quiet {
		t.Errorf("Verbose/Quiet = %v/%v, want false/true", config.Verbose, config.Quiet)
	}
	if config.Format != "json" || config.LogLevel != "error" || config.Project != "flag.db" {
		t.Errorf("flags not applied: %+v", config)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "upqc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}
