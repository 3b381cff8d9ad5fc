package usecase

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lottokeeper/lottokeeper/internal/store"
)

// Health states reported by Status.
const (
	StatusHealthy        = "healthy"
	StatusNeedsAttention = "needs_attention"
	StatusMissing        = "missing"
	StatusError          = "error"
)

// StatusReport describes the configuration's health without touching
// credentials or requiring the master passphrase.
type StatusReport struct {
	Exists         bool      `json:"exists"`
	IntegrityValid bool      `json:"integrity_valid"`
	Status         string    `json:"status"`
	Path           string    `json:"path,omitempty"`
	Size           int64     `json:"size,omitempty"`
	Mode           string    `json:"mode,omitempty"`
	ModeWarning    bool      `json:"mode_warning,omitempty"`
	Encrypted      bool      `json:"encrypted"`
	SaltPresent    bool      `json:"salt_present"`
	Version        string    `json:"version,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	BackupCount    int       `json:"backup_count"`
	Problem        string    `json:"problem,omitempty"`
}

// Exists reports whether a configuration document is present.
func (u *UseCases) Exists() (bool, error) {
	return u.store.Exists()
}

// Status inspects the configuration and reports its health. It never
// mutates the file and never needs the passphrase.
func (u *UseCases) Status() (*StatusReport, error) {
	report := &StatusReport{Status: StatusMissing}

	if records, err := u.store.ListBackups(); err == nil {
		report.BackupCount = len(records)
	}

	if ps, ok := u.store.(interface{ Path() string }); ok {
		report.Path = ps.Path()
	}

	exists, err := u.store.Exists()
	if err != nil {
		report.Status = StatusError
		report.Problem = err.Error()
		return report, nil
	}
	report.Exists = exists
	if !exists {
		return report, nil
	}

	if report.Path != "" {
		if info, statErr := os.Stat(report.Path); statErr == nil {
			report.Size = info.Size()
			report.Mode = fmt.Sprintf("%04o", info.Mode().Perm())
			report.ModeWarning = info.Mode().Perm() != 0o600
		}
	}

	verifyErr := u.store.Verify()
	switch {
	case verifyErr == nil:
		report.IntegrityValid = true
		report.Status = StatusHealthy
	case errors.Is(verifyErr, store.ErrConfigCorrupted):
		report.Status = StatusNeedsAttention
		report.Problem = verifyErr.Error()
	default:
		report.Status = StatusError
		report.Problem = verifyErr.Error()
	}

	if report.IntegrityValid {
		if cfg, loadErr := u.store.LoadSettings(); loadErr == nil {
			report.Encrypted = cfg.Metadata.Encrypted
			report.SaltPresent = cfg.Metadata.Salt != ""
			report.Version = cfg.Metadata.Version
			report.CreatedAt = cfg.Metadata.CreatedAt
		}
	}

	return report, nil
}
