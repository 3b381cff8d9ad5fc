package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names. There is no variable for the master
// passphrase; it is always prompted.
const (
	EnvHome         = "LOTTOKEEPER_HOME"
	EnvConfigPath   = "LOTTOKEEPER_CONFIG"
	EnvOutputFormat = "LOTTOKEEPER_OUTPUT_FORMAT"
	EnvVerbose      = "LOTTOKEEPER_VERBOSE"
	EnvLogLevel     = "LOTTOKEEPER_LOG_LEVEL"
	EnvNoColor      = "NO_COLOR"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration. Command-line flags still take precedence over both.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvConfigPath); v != "" {
		cfg.Store.Path = v
	}

	if v := os.Getenv(EnvOutputFormat); v != "" {
		cfg.Output.DefaultFormat = strings.ToLower(v)
	}

	if v := os.Getenv(EnvVerbose); v != "" {
		cfg.Output.Verbose = parseBool(v)
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}
