package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/upscalingqc/pkg/constants"
	"github.com/agentstation/upscalingqc/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	Format  string

	// Config file
	ConfigFile string

	// Project snapshot and export destination
	Project   string
	OutputDir string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (UPQC_PROJECT, UPQC_OUTPUT, ...)
// 3. .env files
// 4. Config file (~/.upqc.yaml or ./.upqc.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v.SetEnvPrefix("upqc")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("output", constants.DefaultOutputDir)

	configFile := v.GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	// An explicit config file must be readable, a searched one is optional
	if err := v.ReadInConfig(); err != nil && configFile != "" {
		return nil, errors.NewConfigError("config", "reading "+configFile, err)
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Project:   v.GetString("project"),
		OutputDir: v.GetString("output"),

		LogLevel:  firstNonEmpty(v.GetString("log_level"), getEnvOrDefault("LOG_LEVEL", "")),
		LogFormat: firstNonEmpty(v.GetString("log_format"), getEnvOrDefault("LOG_FORMAT", "auto")),
		LogOutput: firstNonEmpty(v.GetString("log_output"), getEnvOrDefault("LOG_OUTPUT", "stderr")),
	}

	return config, nil
}

// LoadConfigFile loads configuration like LoadConfig, reading path instead of
// searching for the config file.
func LoadConfigFile(path string) (*Config, error) {
	v := viper.New()
	v.Set("config", path)
	return loadConfig(v)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet bool, format, logLevel, project string) {
	c.Verbose = verbose
	c.Quiet = quiet
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if project != "" {
		c.Project = project
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local is loaded first so that it wins: godotenv never overrides a set variable.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
