package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
)

// Config represents the markdown2html configuration
type Config struct {
	SourceDir       string        `json:"source_dir"`
	OutputDir       string        `json:"output_dir"`
	LogFile         string        `json:"log_file"`
	LogLevel        string        `json:"log_level"`
	Interval        time.Duration `json:"-"` // Custom JSON handling below
	Standalone      bool          `json:"standalone"`
	FrontMatter     bool          `json:"front_matter"`
	ExcludePatterns []string      `json:"exclude_patterns,omitempty"`
}

// rawConfig is the on-disk form, with the interval as a duration string
type rawConfig struct {
	SourceDir       string   `json:"source_dir"`
	OutputDir       string   `json:"output_dir"`
	LogFile         string   `json:"log_file"`
	LogLevel        string   `json:"log_level,omitempty"`
	Interval        string   `json:"interval"`
	Standalone      bool     `json:"standalone"`
	FrontMatter     bool     `json:"front_matter"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		SourceDir:       filepath.Join(home, "notes"),
		OutputDir:       filepath.Join(home, "notes", "html"),
		LogFile:         "/tmp/markdown2html.log",
		LogLevel:        "info",
		Interval:        30 * time.Second,
		ExcludePatterns: []string{},
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "markdown2html", "config.json")
	}
	return filepath.Join(home, ".config", "markdown2html", "config.json")
}

// StateFilePath returns the path to the build state file
// Can be overridden for testing
var StateFilePath = func() string {
	return filepath.Join(xdg.DataHome, "markdown2html", "state.json")
}

// Load reads configuration from the config file
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		// Return default config if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	interval, err := time.ParseDuration(raw.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid interval format '%s': %w", raw.Interval, err)
	}

	logLevel := raw.LogLevel
	if logLevel == "" {
		logLevel = "info"
	}

	excludePatterns := raw.ExcludePatterns
	if excludePatterns == nil {
		excludePatterns = []string{}
	}

	cfg := &Config{
		SourceDir:       raw.SourceDir,
		OutputDir:       raw.OutputDir,
		LogFile:         raw.LogFile,
		LogLevel:        logLevel,
		Interval:        interval,
		Standalone:      raw.Standalone,
		FrontMatter:     raw.FrontMatter,
		ExcludePatterns: excludePatterns,
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to the config file
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		SourceDir:       c.SourceDir,
		OutputDir:       c.OutputDir,
		LogFile:         c.LogFile,
		LogLevel:        c.LogLevel,
		Interval:        c.Interval.String(),
		Standalone:      c.Standalone,
		FrontMatter:     c.FrontMatter,
		ExcludePatterns: c.ExcludePatterns,
	}

	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.SourceDir == "" {
		return fmt.Errorf("source_dir cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if c.Interval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("invalid log_level '%s': %w", c.LogLevel, err)
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	return nil
}

// Level returns the parsed log level. An empty level means info.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(c.LogLevel)
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.SourceDir, err = expandPath(c.SourceDir)
	if err != nil {
		return fmt.Errorf("failed to expand source_dir: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return absPath, nil
}
