// Package store persists the encrypted purchase configuration as a single
// JSON document. Credential fields are sealed into cipher tokens before
// anything touches disk; settings sections stay readable without the
// master password.
package store

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// Default location of the configuration document, relative to the
// working directory.
const (
	DefaultDir      = "config"
	DefaultFileName = "lotto_config.json"
)

// DefaultPath returns the default configuration file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir, DefaultFileName)
}

const (
	// configFilePermissions is the permission mode for the configuration file.
	configFilePermissions = 0o600

	// configDirPermissions is the permission mode for the configuration directory.
	configDirPermissions = 0o750

	// backupTimeLayout is the timestamp embedded in backup file names.
	backupTimeLayout = "20060102_150405"

	// DefaultBackupLabel is used when no label is given for a backup.
	DefaultBackupLabel = "manual"
)

var (
	// ErrConfigNotFound indicates no configuration file is present.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrConfigExists indicates a configuration file is already present.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrConfigCorrupted indicates the file cannot be parsed or fails
	// its structural checks.
	ErrConfigCorrupted = errors.New("configuration file is corrupted")

	// ErrBackupNotFound indicates the named backup does not exist.
	ErrBackupNotFound = errors.New("backup file not found")

	// ErrInvalidBackupLabel indicates a label outside [a-zA-Z0-9_-]{1,64}.
	ErrInvalidBackupLabel = errors.New("backup label must match [a-zA-Z0-9_-]{1,64}")

	// ErrInvalidBackupName indicates a backup file name that does not
	// belong to this store.
	ErrInvalidBackupName = errors.New("invalid backup file name")
)

// BackupRecord describes one timestamped backup file.
type BackupRecord struct {
	FileName  string    `json:"file_name"`
	Path      string    `json:"path"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}

// Store defines the persistence interface for the purchase configuration.
type Store interface {
	// Save encrypts the credentials with the master password and writes
	// a new configuration document. Fails if one already exists.
	Save(cfg *lotto.Config, password string) error

	// Load reads the configuration and decrypts the credentials.
	Load(password string) (*lotto.Config, error)

	// LoadSettings reads the configuration without touching credentials.
	// The returned config carries empty credentials.
	LoadSettings() (*lotto.Config, error)

	// SaveSettings writes updated settings sections while carrying the
	// stored credential tokens and salt through unchanged.
	SaveSettings(cfg *lotto.Config) error

	// Exists reports whether a configuration document is present.
	Exists() (bool, error)

	// Verify checks structural integrity without the master password.
	Verify() error

	// Backup copies the configuration aside under the given label and
	// returns the created record.
	Backup(label string) (BackupRecord, error)

	// ListBackups returns the available backups, newest first.
	ListBackups() ([]BackupRecord, error)

	// VerifyBackup checks structural integrity of a named backup.
	VerifyBackup(fileName string) error

	// LoadBackup reads a named backup and decrypts its credentials.
	LoadBackup(fileName, password string) (*lotto.Config, error)

	// RestoreBackup replaces the configuration with the named backup.
	RestoreBackup(fileName string) error

	// Reset deletes the configuration document.
	Reset() error

	// Document returns the serialized configuration document after
	// structural checks, for export.
	Document() ([]byte, error)

	// InstallDocument validates and installs a serialized document,
	// replacing any current configuration.
	InstallDocument(data []byte) error
}
