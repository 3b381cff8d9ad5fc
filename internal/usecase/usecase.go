// Package usecase wires the configuration store and validation service
// into the operations the CLI exposes. Each method maps domain failures
// into the structured error taxonomy.
package usecase

import (
	"errors"

	"github.com/lottokeeper/lottokeeper/internal/archive"
	"github.com/lottokeeper/lottokeeper/internal/lottocrypto"
	"github.com/lottokeeper/lottokeeper/internal/service"
	"github.com/lottokeeper/lottokeeper/internal/store"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// LogWriter provides logging capabilities.
type LogWriter interface {
	Debug(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// UseCases bundles the configuration operations behind one explicit
// construction point.
type UseCases struct {
	store      store.Store
	svc        *service.Service
	logger     LogWriter
	appVersion string
}

// Config contains dependencies for creating the use cases.
type Config struct {
	Store      store.Store
	Service    *service.Service
	Logger     LogWriter
	AppVersion string
}

// New creates the use cases from their dependencies.
func New(cfg *Config) *UseCases {
	u := &UseCases{
		store:      cfg.Store,
		svc:        cfg.Service,
		logger:     cfg.Logger,
		appVersion: cfg.AppVersion,
	}
	if u.svc == nil {
		u.svc = service.NewService(&service.Config{Logger: cfg.Logger})
	}
	if u.logger == nil {
		u.logger = noopLogger{}
	}
	return u
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Error(string, ...interface{}) {}

// mapStoreErr converts plain store and crypto sentinels into the
// structured taxonomy with actionable suggestions.
func mapStoreErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrConfigNotFound):
		return keepererr.WithSuggestion(keepererr.ErrConfigNotFound,
			"create one with 'lottokeeper init'")
	case errors.Is(err, store.ErrConfigExists):
		return keepererr.WithSuggestion(keepererr.ErrConfigExists,
			"edit it with the update commands, or remove it with 'lottokeeper reset'")
	case errors.Is(err, store.ErrConfigCorrupted):
		return keepererr.WithSuggestion(keepererr.ErrConfigCorrupted,
			"restore a backup with 'lottokeeper backup restore --input <name>'")
	case errors.Is(err, store.ErrBackupNotFound):
		return keepererr.WithSuggestion(keepererr.ErrBackupNotFound,
			"list backups with 'lottokeeper backup list'")
	case errors.Is(err, store.ErrInvalidBackupLabel),
		errors.Is(err, store.ErrInvalidBackupName):
		return keepererr.WithDetails(keepererr.ErrInvalidInput, map[string]string{
			"reason": err.Error(),
		})
	case errors.Is(err, lottocrypto.ErrDecryptionFailed):
		return keepererr.ErrDecryptionFailed
	default:
		return err
	}
}

// mapArchiveErr converts archive sentinels into the structured taxonomy.
func mapArchiveErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, archive.ErrArchiveNotFound):
		return keepererr.WithSuggestion(keepererr.ErrNotFound,
			"check the archive path")
	case errors.Is(err, archive.ErrArchiveCorrupted):
		return keepererr.ErrArchiveCorrupted
	case errors.Is(err, archive.ErrInvalidFormat):
		return keepererr.ErrInvalidFormat
	case errors.Is(err, archive.ErrDecryptionFailed):
		return keepererr.ErrDecryptionFailed
	default:
		return err
	}
}
