package config

import "github.com/lottokeeper/lottokeeper/internal/store"

// DefaultNotifyTimeoutSeconds bounds a single webhook delivery.
const DefaultNotifyTimeoutSeconds = 10

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.lottokeeper",
		Store: StoreConfig{
			Path:      store.DefaultPath(),
			BackupDir: "",
		},
		Notify: NotifyConfig{
			TimeoutSeconds: DefaultNotifyTimeoutSeconds,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.lottokeeper/lottokeeper.log",
		},
	}
}
