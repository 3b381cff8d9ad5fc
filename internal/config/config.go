// Package config provides tool-level configuration for lottokeeper.
//
// This is the operator's own settings file, kept separate from the
// encrypted purchase configuration it points at.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lottokeeper/lottokeeper/internal/store"
)

// Config represents the tool configuration.
type Config struct {
	Version int           `yaml:"version"`
	Home    string        `yaml:"home"`
	Store   StoreConfig   `yaml:"store"`
	Notify  NotifyConfig  `yaml:"notify"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig locates the encrypted purchase configuration.
type StoreConfig struct {
	// Path is the encrypted configuration file.
	Path string `yaml:"path"`

	// BackupDir holds backups. Empty means alongside the file.
	BackupDir string `yaml:"backup_dir,omitempty"`
}

// NotifyConfig defines notification delivery settings.
type NotifyConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file, overlaying it on
// the defaults.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the config file path inside the given home directory.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default lottokeeper home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".lottokeeper"
	}
	return filepath.Join(home, ".lottokeeper")
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetHome returns the lottokeeper home directory path.
func (c *Config) GetHome() string {
	return ExpandHome(c.Home)
}

// StorePath returns the encrypted configuration file path, expanded.
func (c *Config) StorePath() string {
	if c.Store.Path == "" {
		return store.DefaultPath()
	}
	return ExpandHome(c.Store.Path)
}

// BackupDir returns the backup directory, expanded. Empty means the
// store keeps backups next to the configuration file.
func (c *Config) BackupDir() string {
	if c.Store.BackupDir == "" {
		return ""
	}
	return ExpandHome(c.Store.BackupDir)
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path, expanded.
func (c *Config) GetLoggingFile() string {
	return ExpandHome(c.Logging.File)
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}
