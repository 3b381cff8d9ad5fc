package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lottokeeper/lottokeeper/internal/config"
	"github.com/lottokeeper/lottokeeper/internal/output"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// configCmd is the parent command for tool configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tool configuration",
	Long: `View and modify lottokeeper's own settings.

This is the tool configuration (paths, output, logging), not the
encrypted purchase configuration managed by 'lottokeeper init'.`,
}

// configInitCmd initializes the tool configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize tool configuration",
	Long: `Create a default configuration file at ~/.lottokeeper/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  lottokeeper config init
  lottokeeper config init --force`,
	RunE: runConfigInit,
}

// configShowCmd shows the current tool configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current tool configuration",
	Long: `Display the current tool configuration settings.

Example:
  lottokeeper config show
  lottokeeper config show -o json`,
	RunE: runConfigShow,
}

// configGetCmd gets a specific configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.

Examples:
  lottokeeper config get store.path
  lottokeeper config get output.default_format
  lottokeeper config get logging.level`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

// configSetCmd sets a configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configSetCmd = &cobra.Command{
	Use:   "set <path> <value>",
	Short: "Set a configuration value",
	Long: `Set a specific configuration value by its path.

The path uses dot notation to navigate the configuration tree.
The configuration file will be updated immediately.

Examples:
  lottokeeper config set store.path ~/.lottokeeper/lotto_config.json
  lottokeeper config set output.default_format json
  lottokeeper config set logging.level debug`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	configPath := config.Path(cfg.Home)

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil && !configForce {
		return keepererr.WithSuggestion(
			keepererr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	// Ensure directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Create default config
	defaultCfg := config.Defaults()
	defaultCfg.Home = cfg.Home

	// Write config file
	if err := config.Save(defaultCfg, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Configuration initialized at %s\n", configPath)
	outln(w)
	outln(w, "Edit this file to configure:")
	outln(w, "  - store.path: Where the encrypted purchase configuration lives")
	outln(w, "  - notify.timeout_seconds: Webhook delivery timeout")
	outln(w, "  - output.default_format: Output format (text/json)")
	outln(w, "  - logging.level: Log level (off/error/debug)")

	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	format := formatter.Format()

	if format == output.FormatJSON {
		return displayConfigJSON(w, cfg)
	}

	return displayConfigText(w, cfg)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	path := args[0]

	value, err := getConfigValue(cfg, path)
	if err != nil {
		return keepererr.WithSuggestion(
			keepererr.ErrNotFound,
			fmt.Sprintf("configuration path '%s' not found", path),
		)
	}

	w := cmd.OutOrStdout()
	outln(w, value)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := args[0]
	value := args[1]

	// Validate the path exists
	if _, err := getConfigValue(cfg, path); err != nil {
		return keepererr.WithSuggestion(
			keepererr.ErrNotFound,
			fmt.Sprintf("configuration path '%s' not found", path),
		)
	}

	// Load current config from file
	configPath := config.Path(cfg.Home)
	currentCfg, err := config.Load(configPath)
	if err != nil {
		// If file doesn't exist, start with defaults
		currentCfg = config.Defaults()
	}

	// Update the value
	if err := setConfigValue(currentCfg, path, value); err != nil {
		return fmt.Errorf("setting config value: %w", err)
	}

	// Save updated config
	if err := config.Save(currentCfg, configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	w := cmd.OutOrStdout()
	out(w, "Set %s = %s\n", path, value)

	return nil
}

// getConfigValue retrieves a value from the config using dot notation.
func getConfigValue(c *config.Config, path string) (string, error) {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		switch parts[0] {
		case "home":
			return c.Home, nil
		default:
			return "", keepererr.WithDetails(
				keepererr.ErrUnknownConfigKey,
				map[string]string{"key": parts[0]},
			)
		}
	case 2:
		switch parts[0] {
		case "store":
			return getStoreValue(c, parts[1])
		case "notify":
			return getNotifyValue(c, parts[1])
		case "output":
			return getOutputValue(c, parts[1])
		case "logging":
			return getLoggingValue(c, parts[1])
		default:
			return "", keepererr.WithDetails(
				keepererr.ErrUnknownConfigKey,
				map[string]string{"section": parts[0]},
			)
		}
	default:
		return "", keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"path": path},
		)
	}
}

func getStoreValue(c *config.Config, key string) (string, error) {
	switch key {
	case "path":
		return c.Store.Path, nil
	case "backup_dir":
		return c.Store.BackupDir, nil
	default:
		return "", keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "store", "key": key},
		)
	}
}

func getNotifyValue(c *config.Config, key string) (string, error) {
	switch key {
	case "timeout_seconds":
		return strconv.Itoa(c.Notify.TimeoutSeconds), nil
	default:
		return "", keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "notify", "key": key},
		)
	}
}

func getOutputValue(c *config.Config, key string) (string, error) {
	switch key {
	case "default_format":
		return c.Output.DefaultFormat, nil
	case "verbose":
		return fmt.Sprintf("%t", c.Output.Verbose), nil
	case "color":
		return c.Output.Color, nil
	default:
		return "", keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "output", "key": key},
		)
	}
}

func getLoggingValue(c *config.Config, key string) (string, error) {
	switch key {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return "", keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "logging", "key": key},
		)
	}
}

// setConfigValue sets a value in the config using dot notation.
func setConfigValue(c *config.Config, path, value string) error {
	parts := strings.Split(path, ".")

	switch len(parts) {
	case 1:
		switch parts[0] {
		case "home":
			c.Home = value
			return nil
		default:
			return keepererr.WithDetails(
				keepererr.ErrUnknownConfigKey,
				map[string]string{"key": parts[0]},
			)
		}
	case 2:
		switch parts[0] {
		case "store":
			return setStoreValue(c, parts[1], value)
		case "notify":
			return setNotifyValue(c, parts[1], value)
		case "output":
			return setOutputValue(c, parts[1], value)
		case "logging":
			return setLoggingValue(c, parts[1], value)
		default:
			return keepererr.WithDetails(
				keepererr.ErrUnknownConfigKey,
				map[string]string{"section": parts[0]},
			)
		}
	default:
		return keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"path": path},
		)
	}
}

func setStoreValue(c *config.Config, key, value string) error {
	switch key {
	case "path":
		c.Store.Path = value
		return nil
	case "backup_dir":
		c.Store.BackupDir = value
		return nil
	default:
		return keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "store", "key": key},
		)
	}
}

func setNotifyValue(c *config.Config, key, value string) error {
	switch key {
	case "timeout_seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 1 {
			return keepererr.WithDetails(
				keepererr.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "a positive number of seconds"},
			)
		}
		c.Notify.TimeoutSeconds = seconds
		return nil
	default:
		return keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "notify", "key": key},
		)
	}
}

func setOutputValue(c *config.Config, key, value string) error {
	switch key {
	case "default_format":
		if value != "text" && value != "json" && value != "auto" {
			return keepererr.WithDetails(
				keepererr.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "text, json, or auto"},
			)
		}
		c.Output.DefaultFormat = value
		return nil
	case "verbose":
		c.Output.Verbose = value == "true"
		return nil
	case "color":
		if value != "auto" && value != "always" && value != "never" {
			return keepererr.WithDetails(
				keepererr.ErrInvalidFormat,
				map[string]string{"value": value, "valid": "auto, always, or never"},
			)
		}
		c.Output.Color = value
		return nil
	default:
		return keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "output", "key": key},
		)
	}
}

func setLoggingValue(c *config.Config, key, value string) error {
	switch key {
	case "level":
		validLevels := []string{"off", "error", "debug"}
		for _, l := range validLevels {
			if value == l {
				c.Logging.Level = value
				return nil
			}
		}
		return keepererr.WithDetails(
			keepererr.ErrInvalidFormat,
			map[string]string{"value": value, "valid": "off, error, or debug"},
		)
	case "file":
		c.Logging.File = value
		return nil
	default:
		return keepererr.WithDetails(
			keepererr.ErrUnknownConfigKey,
			map[string]string{"section": "logging", "key": key},
		)
	}
}

// displayConfigText shows the config in text format.
func displayConfigText(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	outln(w, "Configuration:")
	outln(w)
	out(w, "  Home: %s\n", c.Home)
	outln(w)
	outln(w, "  Store:")
	out(w, "    path: %s\n", c.Store.Path)
	backupDir := c.Store.BackupDir
	if backupDir == "" {
		backupDir = "(alongside the configuration file)"
	}
	out(w, "    backup_dir: %s\n", backupDir)
	outln(w)
	outln(w, "  Notify:")
	out(w, "    timeout_seconds: %d\n", c.Notify.TimeoutSeconds)
	outln(w)
	outln(w, "  Output:")
	out(w, "    default_format: %s\n", c.Output.DefaultFormat)
	out(w, "    verbose: %t\n", c.Output.Verbose)
	out(w, "    color: %s\n", c.Output.Color)
	outln(w)
	outln(w, "  Logging:")
	out(w, "    level: %s\n", c.Logging.Level)
	out(w, "    file: %s\n", c.Logging.File)

	return nil
}

// displayConfigJSON shows the config in JSON format.
func displayConfigJSON(w interface {
	Write(p []byte) (n int, err error)
}, c *config.Config,
) error {
	type configJSON struct {
		Version int    `json:"version"`
		Home    string `json:"home"`
		Store   struct {
			Path      string `json:"path"`
			BackupDir string `json:"backup_dir,omitempty"`
		} `json:"store"`
		Notify struct {
			TimeoutSeconds int `json:"timeout_seconds"`
		} `json:"notify"`
		Output struct {
			DefaultFormat string `json:"default_format"`
			Color         string `json:"color"`
			Verbose       bool   `json:"verbose"`
		} `json:"output"`
		Logging struct {
			Level string `json:"level"`
			File  string `json:"file"`
		} `json:"logging"`
	}

	outCfg := configJSON{
		Version: c.Version,
		Home:    c.Home,
	}
	outCfg.Store.Path = c.Store.Path
	outCfg.Store.BackupDir = c.Store.BackupDir
	outCfg.Notify.TimeoutSeconds = c.Notify.TimeoutSeconds
	outCfg.Output.DefaultFormat = c.Output.DefaultFormat
	outCfg.Output.Color = c.Output.Color
	outCfg.Output.Verbose = c.Output.Verbose
	outCfg.Logging.Level = c.Logging.Level
	outCfg.Logging.File = c.Logging.File

	return writeJSON(w, outCfg)
}
