package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/usecase"
	keepererr "github.com/lottokeeper/lottokeeper/pkg/errors"
)

func TestRunExport_WritesArchive(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	exportOutput = filepath.Join(tmpDir, "config.lotto")
	defer func() { exportOutput = "" }()

	cmd, buf := newTestCmd()
	err := runExport(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Export written.")
	assert.Contains(t, buf.String(), "Importing the archive needs the same master password.")

	_, err = os.Stat(filepath.Join(tmpDir, "config.lotto"))
	require.NoError(t, err)
}

func TestRunExport_WrongPassphrase(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	withMockPrompts(t, "wrong-passphrase", true)

	exportOutput = filepath.Join(tmpDir, "config.lotto")
	defer func() { exportOutput = "" }()

	cmd, _ := newTestCmd()
	err := runExport(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrDecryptionFailed)
}

func TestRunExport_NoConfiguration(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)

	exportOutput = filepath.Join(tmpDir, "config.lotto")
	defer func() { exportOutput = "" }()

	cmd, _ := newTestCmd()
	err := runExport(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrConfigNotFound)
}

func TestRunImport_RoundTrip(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	archivePath := filepath.Join(tmpDir, "config.lotto")
	uc := newUseCases()
	_, err := uc.Export(archivePath, testPassphrase)
	require.NoError(t, err)

	_, err = uc.Reset(true)
	require.NoError(t, err)

	// Nothing exists anymore, so the import must not ask for confirmation.
	withMockPrompts(t, testPassphrase, false)

	importInput = archivePath
	defer func() { importInput = "" }()

	cmd, buf := newTestCmd()
	err = runImport(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Configuration imported from "+archivePath)

	dash, err := newUseCases().DashboardData(testPassphrase, true)
	require.NoError(t, err)
	assert.Equal(t, "lottouser", dash.UserID)
}

func TestRunImport_ExistingDeclined(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	archivePath := filepath.Join(tmpDir, "config.lotto")
	_, err := newUseCases().Export(archivePath, testPassphrase)
	require.NoError(t, err)

	withMockPrompts(t, testPassphrase, false)

	importInput = archivePath
	defer func() { importInput = "" }()

	cmd, _ := newTestCmd()
	err = runImport(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrConfirmationRequired)
}

func TestRunImport_ExistingForced(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)
	seedConfig(t)

	archivePath := filepath.Join(tmpDir, "config.lotto")
	_, err := newUseCases().Export(archivePath, testPassphrase)
	require.NoError(t, err)

	importInput = archivePath
	importForce = true
	defer func() {
		importInput = ""
		importForce = false
	}()

	cmd, _ := newTestCmd()
	err = runImport(cmd, nil)
	require.NoError(t, err)

	records, err := newUseCases().ListBackups()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, usecase.ImportBackupLabel, records[0].Label)
}

func TestRunImport_MissingArchive(t *testing.T) {
	tmpDir, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()
	withMockPrompts(t, testPassphrase, true)

	importInput = filepath.Join(tmpDir, "missing.lotto")
	defer func() { importInput = "" }()

	cmd, _ := newTestCmd()
	err := runImport(cmd, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, keepererr.ErrNotFound)
}
