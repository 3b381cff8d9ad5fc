package usecase

import (
	"github.com/lottokeeper/lottokeeper/internal/store"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

// ResetBackupLabel marks the automatic backup taken before a reset.
const ResetBackupLabel = "before_reset"

// ImportBackupLabel marks the automatic backup taken before an import
// replaces an existing configuration.
const ImportBackupLabel = "before_import"

// Backup copies the configuration aside under the given label.
func (u *UseCases) Backup(label string) (store.BackupRecord, error) {
	record, err := u.store.Backup(label)
	if err != nil {
		return store.BackupRecord{}, mapStoreErr(err)
	}
	u.logger.Debug("backup created: %s", record.FileName)
	return record, nil
}

// ListBackups returns the available backups, newest first.
func (u *UseCases) ListBackups() ([]store.BackupRecord, error) {
	records, err := u.store.ListBackups()
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return records, nil
}

// VerifyBackup checks a backup's structure without the passphrase.
func (u *UseCases) VerifyBackup(fileName string) error {
	return mapStoreErr(u.store.VerifyBackup(fileName))
}

// VerifyBackupDeep checks a backup's structure and proves the passphrase
// decrypts its credentials.
func (u *UseCases) VerifyBackupDeep(fileName, passphrase string) error {
	if _, err := u.store.LoadBackup(fileName, passphrase); err != nil {
		return mapStoreErr(err)
	}
	return nil
}

// RestoreBackup replaces the configuration with the named backup.
// Refuses to overwrite an existing configuration without force.
func (u *UseCases) RestoreBackup(fileName string, force bool) error {
	exists, err := u.store.Exists()
	if err != nil {
		return err
	}
	if exists && !force {
		return keepererr.WithSuggestion(keepererr.ErrConfirmationRequired,
			"re-run with --force to replace the current configuration")
	}

	if err := u.store.RestoreBackup(fileName); err != nil {
		return mapStoreErr(err)
	}

	u.logger.Debug("configuration restored from %s", fileName)
	return nil
}

// Reset deletes the configuration after taking an automatic backup.
// Without force it only reports what confirmation is needed.
func (u *UseCases) Reset(force bool) (store.BackupRecord, error) {
	exists, err := u.store.Exists()
	if err != nil {
		return store.BackupRecord{}, err
	}
	if !exists {
		return store.BackupRecord{}, mapStoreErr(store.ErrConfigNotFound)
	}
	if !force {
		return store.BackupRecord{}, keepererr.WithSuggestion(keepererr.ErrConfirmationRequired,
			"re-run with --force to delete the configuration")
	}

	record, err := u.store.Backup(ResetBackupLabel)
	if err != nil {
		return store.BackupRecord{}, mapStoreErr(err)
	}

	if err := u.store.Reset(); err != nil {
		return store.BackupRecord{}, mapStoreErr(err)
	}

	u.logger.Debug("configuration reset; backup kept at %s", record.FileName)
	return record, nil
}
