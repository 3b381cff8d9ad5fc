package usecase

import (
	"time"

	"github.com/lottokeeper/lottokeeper/internal/archive"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// ExportResult describes a written export archive.
type ExportResult struct {
	Path     string           `json:"path"`
	Manifest archive.Manifest `json:"manifest"`
}

// Export writes the configuration document into a portable archive. The
// passphrase must open the current configuration; the archive is sealed
// with the same passphrase. An empty path picks a timestamped name in
// the working directory.
func (u *UseCases) Export(path, passphrase string) (*ExportResult, error) {
	// Prove the passphrase opens the configuration before exporting.
	if _, err := u.store.Load(passphrase); err != nil {
		return nil, mapStoreErr(err)
	}

	document, err := u.store.Document()
	if err != nil {
		return nil, mapStoreErr(err)
	}

	a, err := archive.Seal(document, passphrase, u.appVersion)
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = archive.DefaultFileName(time.Now())
	}
	if err := archive.Write(path, a); err != nil {
		return nil, err
	}

	u.logger.Debug("configuration exported to %s", path)
	return &ExportResult{Path: path, Manifest: a.Manifest}, nil
}

// Import installs a configuration from an export archive. An existing
// configuration is only replaced with force, and a safety backup is
// taken first.
func (u *UseCases) Import(path, passphrase string, force bool) error {
	exists, err := u.store.Exists()
	if err != nil {
		return err
	}
	if exists && !force {
		return keepererr.WithSuggestion(keepererr.ErrConfirmationRequired,
			"re-run with --force to replace the current configuration")
	}

	a, err := archive.Read(path)
	if err != nil {
		return mapArchiveErr(err)
	}

	document, err := archive.Open(a, passphrase)
	if err != nil {
		return mapArchiveErr(err)
	}

	if exists {
		if _, err := u.store.Backup(ImportBackupLabel); err != nil {
			return mapStoreErr(err)
		}
	}

	if err := u.store.InstallDocument(document); err != nil {
		return mapStoreErr(err)
	}

	// The archive passphrase must also open the embedded credentials.
	if _, err := u.store.Load(passphrase); err != nil {
		u.logger.Error("imported document does not open with the archive passphrase")
		return keepererr.WithSuggestion(mapStoreErr(err),
			"restore the previous configuration with 'lottokeeper backup restore --input <name>'")
	}

	u.logger.Debug("configuration imported from %s", path)
	return nil
}
