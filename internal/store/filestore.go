package store

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/lottokeeper/lottokeeper/internal/fileutil"
	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// backupLabelRegex restricts labels to safe path characters.
var backupLabelRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// FileStore implements Store on a single JSON document. Writes go
// through a temp file in the same directory that is synced and renamed
// over the target, so the document is never half-written.
type FileStore struct {
	path      string
	backupDir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a store for the given configuration path.
// Backups are written alongside the configuration file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, backupDir: filepath.Dir(path)}
}

// NewFileStoreWithBackupDir creates a store that keeps backups in a
// separate directory. An empty backupDir falls back to the
// configuration file's directory.
func NewFileStoreWithBackupDir(path, backupDir string) *FileStore {
	if backupDir == "" {
		backupDir = filepath.Dir(path)
	}
	return &FileStore{path: path, backupDir: backupDir}
}

// Path returns the configuration file path.
func (s *FileStore) Path() string {
	return s.path
}

// BackupDir returns the directory backups are written to.
func (s *FileStore) BackupDir() string {
	return s.backupDir
}

// Save implements Store.
func (s *FileStore) Save(cfg *lotto.Config, password string) error {
	exists, err := s.Exists()
	if err != nil {
		return fmt.Errorf("checking configuration existence: %w", err)
	}
	if exists {
		return ErrConfigExists
	}

	if err := fileutil.EnsureDir(filepath.Dir(s.path), configDirPermissions); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}

	wf, err := sealConfig(cfg, password)
	if err != nil {
		return err
	}

	data, err := marshalDocument(wf)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}

	if err := fileutil.WriteAtomic(s.path, data, configFilePermissions); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	return nil
}

// Load implements Store.
func (s *FileStore) Load(password string) (*lotto.Config, error) {
	wf, err := s.read()
	if err != nil {
		return nil, err
	}
	return openConfig(wf, password)
}

// LoadSettings implements Store.
func (s *FileStore) LoadSettings() (*lotto.Config, error) {
	wf, err := s.read()
	if err != nil {
		return nil, err
	}
	return settingsOnly(wf), nil
}

// SaveSettings implements Store.
func (s *FileStore) SaveSettings(cfg *lotto.Config) error {
	wf, err := s.read()
	if err != nil {
		return err
	}

	wf.Purchase = cfg.Purchase
	wf.Recharge = cfg.Recharge
	wf.Discord = cfg.Discord

	data, err := marshalDocument(wf)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}

	if err := fileutil.WriteAtomic(s.path, data, configFilePermissions); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	return nil
}

// Exists implements Store.
func (s *FileStore) Exists() (bool, error) {
	_, err := os.Stat(s.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Verify implements Store.
func (s *FileStore) Verify() error {
	_, err := s.read()
	return err
}

// Backup implements Store.
func (s *FileStore) Backup(label string) (BackupRecord, error) {
	if label == "" {
		label = DefaultBackupLabel
	}
	if !backupLabelRegex.MatchString(label) {
		return BackupRecord{}, ErrInvalidBackupLabel
	}

	exists, err := s.Exists()
	if err != nil {
		return BackupRecord{}, fmt.Errorf("checking configuration existence: %w", err)
	}
	if !exists {
		return BackupRecord{}, ErrConfigNotFound
	}

	if err := fileutil.EnsureDir(s.backupDir, configDirPermissions); err != nil {
		return BackupRecord{}, fmt.Errorf("creating backup directory: %w", err)
	}

	now := time.Now()
	fileName := s.backupFileName(label, now)
	dst := filepath.Join(s.backupDir, fileName)

	if err := fileutil.CopyFile(s.path, dst, configFilePermissions); err != nil {
		return BackupRecord{}, fmt.Errorf("copying configuration file: %w", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		return BackupRecord{}, fmt.Errorf("inspecting backup file: %w", err)
	}

	return BackupRecord{
		FileName:  fileName,
		Path:      dst,
		Label:     label,
		CreatedAt: now.Truncate(time.Second),
		Size:      info.Size(),
	}, nil
}

// ListBackups implements Store.
func (s *FileStore) ListBackups() ([]BackupRecord, error) {
	entries, err := os.ReadDir(s.backupDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	prefix := s.backupPrefix()
	records := make([]BackupRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		label, createdAt := parseBackupName(strings.TrimSuffix(strings.TrimPrefix(name, prefix), ".json"))
		if createdAt.IsZero() {
			createdAt = info.ModTime()
		}

		records = append(records, BackupRecord{
			FileName:  name,
			Path:      filepath.Join(s.backupDir, name),
			Label:     label,
			CreatedAt: createdAt,
			Size:      info.Size(),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// VerifyBackup implements Store.
func (s *FileStore) VerifyBackup(fileName string) error {
	path, err := s.backupPath(fileName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrBackupNotFound
	}
	return s.verifyFile(path)
}

// LoadBackup implements Store.
func (s *FileStore) LoadBackup(fileName, password string) (*lotto.Config, error) {
	path, err := s.backupPath(fileName)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrBackupNotFound
	}

	//nolint:gosec // G304: path is resolved by backupPath, not raw user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup file: %w", err)
	}

	wf, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	return openConfig(wf, password)
}

// RestoreBackup implements Store.
func (s *FileStore) RestoreBackup(fileName string) error {
	path, err := s.backupPath(fileName)
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrBackupNotFound
	}

	// Never install a backup that fails its own integrity checks.
	if err := s.verifyFile(path); err != nil {
		return err
	}

	if err := fileutil.EnsureDir(filepath.Dir(s.path), configDirPermissions); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}

	if err := fileutil.CopyFile(path, s.path, configFilePermissions); err != nil {
		return fmt.Errorf("restoring configuration file: %w", err)
	}

	return nil
}

// Reset implements Store.
func (s *FileStore) Reset() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrConfigNotFound
	}
	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing configuration file: %w", err)
	}
	return nil
}

// Document implements Store.
func (s *FileStore) Document() ([]byte, error) {
	if _, err := s.read(); err != nil {
		return nil, err
	}

	//nolint:gosec // G304: path comes from configuration, not raw user input
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}
	return data, nil
}

// InstallDocument implements Store.
func (s *FileStore) InstallDocument(data []byte) error {
	if _, err := parseDocument(data); err != nil {
		return err
	}

	if err := fileutil.EnsureDir(filepath.Dir(s.path), configDirPermissions); err != nil {
		return fmt.Errorf("creating configuration directory: %w", err)
	}

	if err := fileutil.WriteAtomic(s.path, data, configFilePermissions); err != nil {
		return fmt.Errorf("writing configuration file: %w", err)
	}

	return nil
}

// read loads and structurally checks the configuration document.
func (s *FileStore) read() (*configFile, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, ErrConfigNotFound
	}

	//nolint:gosec // G304: path comes from configuration, not raw user input
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file: %w", err)
	}

	return parseDocument(data)
}

// backupPrefix returns the file name prefix shared by this store's backups.
func (s *FileStore) backupPrefix() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_backup_"
}

// backupFileName builds "<config>_backup_<label>_<timestamp>.json".
func (s *FileStore) backupFileName(label string, at time.Time) string {
	return s.backupPrefix() + label + "_" + at.Format(backupTimeLayout) + ".json"
}

// backupPath validates a backup file name and resolves it inside the
// backup directory. Validation keeps path traversal out.
func (s *FileStore) backupPath(fileName string) (string, error) {
	if fileName == "" || fileName != filepath.Base(fileName) {
		return "", ErrInvalidBackupName
	}
	if !strings.HasPrefix(fileName, s.backupPrefix()) || !strings.HasSuffix(fileName, ".json") {
		return "", ErrInvalidBackupName
	}
	return filepath.Join(s.backupDir, fileName), nil
}

// verifyFile runs the password-free integrity checks against any document.
func (s *FileStore) verifyFile(path string) error {
	//nolint:gosec // G304: path is resolved by backupPath, not raw user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading backup file: %w", err)
	}
	_, err = parseDocument(data)
	return err
}

// parseBackupName splits "<label>_<timestamp>" where the timestamp is
// the trailing characters in backupTimeLayout form.
func parseBackupName(base string) (label string, createdAt time.Time) {
	if len(base) <= len(backupTimeLayout) {
		return base, time.Time{}
	}

	tsPart := base[len(base)-len(backupTimeLayout):]
	ts, err := time.ParseInLocation(backupTimeLayout, tsPart, time.Local)
	if err != nil {
		return base, time.Time{}
	}

	return strings.TrimSuffix(base[:len(base)-len(backupTimeLayout)], "_"), ts
}
