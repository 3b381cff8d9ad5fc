package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

func TestRunBackupCreate(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	backupLabel = "before_vacation"
	defer func() { backupLabel = "" }()

	cmd, buf := newTestCmd()
	err := runBackupCreate(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Backup created.")
	assert.Contains(t, buf.String(), "before_vacation")
	assert.Contains(t, buf.String(), "sealed with the master password")

	records, err := newUseCases().ListBackups()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "before_vacation", records[0].Label)
}

func TestRunBackupCreate_DefaultLabel(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	cmd, _ := newTestCmd()
	err := runBackupCreate(cmd, nil)
	require.NoError(t, err)

	records, err := newUseCases().ListBackups()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "manual", records[0].Label)
}

func TestRunBackupCreate_NoConfiguration(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()

	cmd, _ := newTestCmd()
	err := runBackupCreate(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrConfigNotFound)
}

func TestRunBackupList_Empty(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()

	cmd, buf := newTestCmd()
	err := runBackupList(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "No backups found.")
	assert.Contains(t, buf.String(), "Create one with: lottokeeper backup")
}

func TestRunBackupList_Table(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	uc := newUseCases()
	_, err := uc.Backup("nightly")
	require.NoError(t, err)
	_, err = uc.Backup("")
	require.NoError(t, err)

	cmd, buf := newTestCmd()
	err = runBackupList(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "FILE")
	assert.Contains(t, buf.String(), "LABEL")
	assert.Contains(t, buf.String(), "CREATED")
	assert.Contains(t, buf.String(), "SIZE")
	assert.Contains(t, buf.String(), "nightly")
	assert.Contains(t, buf.String(), "manual")
	assert.Contains(t, buf.String(), "Backup directory: "+tmpDir)
}

func TestRunBackupVerify(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	record, err := newUseCases().Backup("check")
	require.NoError(t, err)

	backupInput = record.FileName
	defer func() { backupInput = "" }()

	cmd, buf := newTestCmd()
	err = runBackupVerify(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Backup structure verified.")
	assert.NotContains(t, buf.String(), "Credentials decrypt")
}

func TestRunBackupVerify_Deep(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	record, err := newUseCases().Backup("check")
	require.NoError(t, err)

	backupInput = record.FileName
	backupDeep = true
	defer func() {
		backupInput = ""
		backupDeep = false
	}()

	cmd, buf := newTestCmd()
	err = runBackupVerify(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Backup structure verified.")
	assert.Contains(t, buf.String(), "Credentials decrypt with the given master password.")
}

func TestRunBackupVerify_DeepWrongPassphrase(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	record, err := newUseCases().Backup("check")
	require.NoError(t, err)

	withMockPrompts(t, "wrong-passphrase", true)

	backupInput = record.FileName
	backupDeep = true
	defer func() {
		backupInput = ""
		backupDeep = false
	}()

	cmd, _ := newTestCmd()
	err = runBackupVerify(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrDecryptionFailed)
}

func TestRunBackupVerify_Missing(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	backupInput = "lotto_config_backup_nightly_20250101_000000.json"
	defer func() { backupInput = "" }()

	cmd, _ := newTestCmd()
	err := runBackupVerify(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrBackupNotFound)
}

func TestRunBackupRestore_Declined(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	record, err := newUseCases().Backup("keep")
	require.NoError(t, err)

	withMockPrompts(t, testPassphrase, false)

	backupInput = record.FileName
	defer func() { backupInput = "" }()

	cmd, _ := newTestCmd()
	err = runBackupRestore(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrConfirmationRequired)
}

func TestRunBackupRestore_Confirmed(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	record, err := newUseCases().Backup("keep")
	require.NoError(t, err)

	backupInput = record.FileName
	defer func() { backupInput = "" }()

	cmd, buf := newTestCmd()
	err = runBackupRestore(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Configuration restored from "+record.FileName)
	assert.Contains(t, buf.String(), "Check it with: lottokeeper status")
}

func TestRunBackupRestore_AfterReset(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	uc := newUseCases()
	record, err := uc.Backup("keep")
	require.NoError(t, err)

	_, err = uc.Reset(true)
	require.NoError(t, err)

	// Nothing exists anymore, so the restore must not ask for confirmation.
	withMockPrompts(t, testPassphrase, false)

	backupInput = record.FileName
	defer func() { backupInput = "" }()

	cmd, _ := newTestCmd()
	err = runBackupRestore(cmd, nil)
	require.NoError(t, err)

	dash, err := newUseCases().DashboardData(testPassphrase, true)
	require.NoError(t, err)
	assert.Equal(t, "lottouser", dash.UserID)
}
