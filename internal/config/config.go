// Package config handles configuration loading for drift-guard.
// It supports XDG config paths, project-level overrides, and environment
// variables. Policy values (timeouts, output bounds) ship as defaults and
// stay overridable for unusual environments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for drift-guard.
type Config struct {
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	Limits   LimitsConfig   `mapstructure:"limits"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// TimeoutsConfig holds timeout settings for external processes.
type TimeoutsConfig struct {
	// Git bounds a single git status query.
	Git time.Duration `mapstructure:"git"`
	// Command bounds a single verification command.
	Command time.Duration `mapstructure:"command"`
}

// LimitsConfig holds output and payload bounds.
type LimitsConfig struct {
	// OutputTail is how many trailing bytes of command output to keep.
	OutputTail int `mapstructure:"output_tail"`
	// EvidenceFiles caps the paths listed in drift failure evidence.
	EvidenceFiles int `mapstructure:"evidence_files"`
}

// PathsConfig holds project-relative locations of the control files.
type PathsConfig struct {
	// Contract is where a contract override manifest may live.
	Contract string `mapstructure:"contract"`
	// ControlDoc is the document scanned for verification commands.
	ControlDoc string `mapstructure:"control_doc"`
}

// Load loads configuration from XDG paths, project overrides, and
// environment variables. Precedence (highest to lowest):
// 1. Environment variables (DRIFTGUARD_*)
// 2. Project config (.driftguard.yaml in current directory or parent)
// 3. User config (~/.config/driftguard/config.yaml)
// 4. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	if projectConfig := findProjectConfig(); projectConfig != "" {
		projectViper := viper.New()
		projectViper.SetConfigFile(projectConfig)
		if err := projectViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(projectViper.AllSettings()); err != nil {
				return nil, fmt.Errorf("merging project config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("DRIFTGUARD")
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file (for testing).
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// Default returns a Config with built-in default values.
func Default() *Config {
	return &Config{
		Timeouts: TimeoutsConfig{
			Git:     10 * time.Second,
			Command: 600 * time.Second,
		},
		Limits: LimitsConfig{
			OutputTail:    8000,
			EvidenceFiles: 50,
		},
		Paths: PathsConfig{
			Contract:   "docs/v2_contract.json",
			ControlDoc: "AGENTS.md",
		},
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// GetProjectConfigPath returns the path to the project config file if it
// exists, or an empty string.
func GetProjectConfigPath() string {
	return findProjectConfig()
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("timeouts.git", "10s")
	v.SetDefault("timeouts.command", "600s")
	v.SetDefault("limits.output_tail", 8000)
	v.SetDefault("limits.evidence_files", 50)
	v.SetDefault("paths.contract", "docs/v2_contract.json")
	v.SetDefault("paths.control_doc", "AGENTS.md")
}

// getUserConfigDir returns the XDG config directory for drift-guard.
func getUserConfigDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "driftguard")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "driftguard")
	}
	return filepath.Join(home, ".config", "driftguard")
}

// findProjectConfig searches for .driftguard.yaml in the current directory
// and parents.
func findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(cwd, ".driftguard.yaml")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}

	return ""
}
