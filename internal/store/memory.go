package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lottokeeper/lottokeeper/internal/lotto"
)

// Memory is an in-memory Store for tests and for callers that need the
// persistence semantics without a filesystem. It runs the same codec as
// FileStore, so wrong-password and corruption behavior match.
type Memory struct {
	mu      sync.Mutex
	doc     *configFile
	backups map[string]memoryBackup
	now     func() time.Time
}

type memoryBackup struct {
	data      []byte
	label     string
	createdAt time.Time
}

var _ Store = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		backups: make(map[string]memoryBackup),
		now:     time.Now,
	}
}

// Save implements Store.
func (m *Memory) Save(cfg *lotto.Config, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc != nil {
		return ErrConfigExists
	}

	wf, err := sealConfig(cfg, password)
	if err != nil {
		return err
	}

	wf, err = cloneDocument(wf)
	if err != nil {
		return err
	}

	m.doc = wf
	return nil
}

// Load implements Store.
func (m *Memory) Load(password string) (*lotto.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return nil, ErrConfigNotFound
	}

	// Clone so callers cannot mutate stored state through shared slices.
	wf, err := cloneDocument(m.doc)
	if err != nil {
		return nil, err
	}
	return openConfig(wf, password)
}

// LoadSettings implements Store.
func (m *Memory) LoadSettings() (*lotto.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return nil, ErrConfigNotFound
	}

	wf, err := cloneDocument(m.doc)
	if err != nil {
		return nil, err
	}
	return settingsOnly(wf), nil
}

// SaveSettings implements Store.
func (m *Memory) SaveSettings(cfg *lotto.Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return ErrConfigNotFound
	}

	updated := *m.doc
	updated.Purchase = cfg.Purchase
	updated.Recharge = cfg.Recharge
	updated.Discord = cfg.Discord

	wf, err := cloneDocument(&updated)
	if err != nil {
		return err
	}
	m.doc = wf
	return nil
}

// Exists implements Store.
func (m *Memory) Exists() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc != nil, nil
}

// Verify implements Store.
func (m *Memory) Verify() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return ErrConfigNotFound
	}
	return checkDocument(m.doc)
}

// Backup implements Store.
func (m *Memory) Backup(label string) (BackupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if label == "" {
		label = DefaultBackupLabel
	}
	if !backupLabelRegex.MatchString(label) {
		return BackupRecord{}, ErrInvalidBackupLabel
	}
	if m.doc == nil {
		return BackupRecord{}, ErrConfigNotFound
	}

	data, err := marshalDocument(m.doc)
	if err != nil {
		return BackupRecord{}, err
	}

	at := m.now().Truncate(time.Second)
	fileName := memoryBackupPrefix() + label + "_" + at.Format(backupTimeLayout) + ".json"
	m.backups[fileName] = memoryBackup{data: data, label: label, createdAt: at}

	return BackupRecord{
		FileName:  fileName,
		Path:      fileName,
		Label:     label,
		CreatedAt: at,
		Size:      int64(len(data)),
	}, nil
}

// ListBackups implements Store.
func (m *Memory) ListBackups() ([]BackupRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := make([]BackupRecord, 0, len(m.backups))
	for name, b := range m.backups {
		records = append(records, BackupRecord{
			FileName:  name,
			Path:      name,
			Label:     b.label,
			CreatedAt: b.createdAt,
			Size:      int64(len(b.data)),
		})
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// VerifyBackup implements Store.
func (m *Memory) VerifyBackup(fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.backups[fileName]
	if !ok {
		return ErrBackupNotFound
	}
	_, err := parseDocument(b.data)
	return err
}

// LoadBackup implements Store.
func (m *Memory) LoadBackup(fileName, password string) (*lotto.Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.backups[fileName]
	if !ok {
		return nil, ErrBackupNotFound
	}

	wf, err := parseDocument(b.data)
	if err != nil {
		return nil, err
	}
	return openConfig(wf, password)
}

// RestoreBackup implements Store.
func (m *Memory) RestoreBackup(fileName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.backups[fileName]
	if !ok {
		return ErrBackupNotFound
	}

	wf, err := parseDocument(b.data)
	if err != nil {
		return err
	}

	m.doc = wf
	return nil
}

// Reset implements Store.
func (m *Memory) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return ErrConfigNotFound
	}
	m.doc = nil
	return nil
}

// Document implements Store.
func (m *Memory) Document() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.doc == nil {
		return nil, ErrConfigNotFound
	}
	return marshalDocument(m.doc)
}

// InstallDocument implements Store.
func (m *Memory) InstallDocument(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	wf, err := parseDocument(data)
	if err != nil {
		return err
	}
	m.doc = wf
	return nil
}

func memoryBackupPrefix() string {
	return strings.TrimSuffix(DefaultFileName, ".json") + "_backup_"
}
