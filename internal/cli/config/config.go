package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the Cascade configuration
type Config struct {
	ProjectName string      `mapstructure:"project_name"`
	Check       CheckConfig `mapstructure:"check"`
	Watch       WatchConfig `mapstructure:"watch"`
}

// CheckConfig represents syntax check configuration
type CheckConfig struct {
	// Paths are the files or directories checked when none are given on
	// the command line
	Paths []string `mapstructure:"paths"`

	// Strict makes warnings fail the check
	Strict bool `mapstructure:"strict"`
}

// WatchConfig represents file watcher configuration
type WatchConfig struct {
	// DebounceMs is the quiet period after a change before rechecking
	DebounceMs int `mapstructure:"debounce_ms"`

	// Extensions are the file extensions the watcher reacts to
	Extensions []string `mapstructure:"extensions"`
}

// Load loads the configuration from cascade.yml or cascade.yaml
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("check.paths", []string{"."})
	v.SetDefault("check.strict", false)
	v.SetDefault("watch.debounce_ms", 300)
	v.SetDefault("watch.extensions", []string{".scss", ".css"})

	v.SetConfigName("cascade")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// InProject checks if the current directory is a Cascade project
func InProject() bool {
	if _, err := os.Stat("cascade.yml"); err == nil {
		return true
	}
	if _, err := os.Stat("cascade.yaml"); err == nil {
		return true
	}
	return false
}

// GetProjectRoot tries to find the project root by looking for cascade.yml
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "cascade.yml")); err == nil {
			return dir, nil
		}
		if _, err := os.Stat(filepath.Join(dir, "cascade.yaml")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return "", fmt.Errorf("not in a Cascade project (no cascade.yml found)")
		}
		dir = parent
	}
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	for _, ext := range cfg.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("watch.extensions entries must start with '.', got: %s", ext)
		}
	}
	if cfg.Watch.DebounceMs < 0 {
		return fmt.Errorf("watch.debounce_ms must not be negative, got: %d", cfg.Watch.DebounceMs)
	}
	return nil
}
