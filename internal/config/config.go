package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the config file when --config is not given
	EnvConfigPath = "GITWRAP_CONFIG"
	// EnvGitBinary overrides the git executable
	EnvGitBinary = "GITWRAP_GIT"
	// EnvLogFile overrides the log file path
	EnvLogFile = "GITWRAP_LOG_FILE"
	// EnvDebug enables debug logging when set to any value
	EnvDebug = "DEBUG"

	defaultGitBinary = "git"
)

// Config represents the CLI configuration
type Config struct {
	Git     string        `yaml:"git,omitempty"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
	LogFile string        `yaml:"log_file,omitempty"`
	Debug   *bool         `yaml:"debug,omitempty"`
	Color   *bool         `yaml:"color,omitempty"`
	Env     []string      `yaml:"env,omitempty"`

	LogRotation LogRotation `yaml:"log_rotation"`
}

// LogRotation limits the log file written when log_file is set
type LogRotation struct {
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Git:         defaultGitBinary,
		LogRotation: LogRotation{MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 30},
	}
}

// DefaultPath returns the config file location used when neither --config
// nor GITWRAP_CONFIG is set.
func DefaultPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gitwrap", "config.yaml")
}

// Load reads the config file at path and applies environment overrides.
// A missing file yields the defaults; an unreadable or malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Config doesn't exist - keep defaults
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvGitBinary); v != "" {
		c.Git = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if os.Getenv(EnvDebug) != "" {
		debug := true
		c.Debug = &debug
	}
	if strings.TrimSpace(c.Git) == "" {
		c.Git = defaultGitBinary
	}
}

// Validate checks values that cannot be corrected silently
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	r := c.LogRotation
	if r.MaxSizeMB < 0 || r.MaxBackups < 0 || r.MaxAgeDays < 0 {
		return fmt.Errorf("log_rotation limits must not be negative")
	}
	for _, kv := range c.Env {
		if !strings.Contains(kv, "=") {
			return fmt.Errorf("env entry %q is not KEY=VALUE", kv)
		}
	}
	return nil
}

// DebugEnabled reports whether debug logging was requested
func (c *Config) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

// ColorEnabled reports whether colour output is allowed; it defaults to true
func (c *Config) ColorEnabled() bool {
	return c.Color == nil || *c.Color
}

// Save writes the configuration as YAML, creating parent directories
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
