package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/output"
	"github.com/lottokeeper/lottokeeper/internal/usecase"
)

func TestRunStatus_NoConfiguration(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	cmd, buf := newTestCmd()
	require.NoError(t, runStatus(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "No configuration found.")
	assert.Contains(t, result, "lottokeeper init")
}

func TestRunStatus_Healthy(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)

	cmd, buf := newTestCmd()
	require.NoError(t, runStatus(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "Status:    "+usecase.StatusHealthy)
	assert.Contains(t, result, "Encrypted: true")
	assert.Contains(t, result, "Salt:      present")
	assert.Contains(t, result, "Backups:   0")
	assert.NotContains(t, result, "Problem:")
}

func TestRunStatus_CountsBackups(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)

	_, err := newUseCases().Backup("nightly")
	require.NoError(t, err)

	cmd, buf := newTestCmd()
	require.NoError(t, runStatus(cmd, nil))
	assert.Contains(t, buf.String(), "Backups:   1")
}

func TestRunStatus_CorruptedFile(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)

	require.NoError(t, os.WriteFile(cfg.StorePath(), []byte("{not json"), 0o600))

	cmd, buf := newTestCmd()
	require.NoError(t, runStatus(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, "Status:    "+usecase.StatusNeedsAttention)
	assert.Contains(t, result, "Problem:")
	assert.Contains(t, result, "backup restore")
}

func TestRunStatus_JSONFormat(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()
	seedConfig(t)

	formatter = output.NewFormatter(output.FormatJSON, os.Stdout)

	cmd, buf := newTestCmd()
	require.NoError(t, runStatus(cmd, nil))

	result := buf.String()
	assert.Contains(t, result, `"status": "healthy"`)
	assert.Contains(t, result, `"encrypted": true`)
}

func TestRenderStatus_ModeWarning(t *testing.T) {
	_, cleanup := setupTestEnv(t)
	defer cleanup()

	report := &usecase.StatusReport{
		Exists:      true,
		Status:      usecase.StatusNeedsAttention,
		Mode:        "0644",
		ModeWarning: true,
	}

	cmd, buf := newTestCmd()
	require.NoError(t, renderStatus(cmd, report))
	assert.Contains(t, buf.String(), "Warning: file mode 0644 is wider than 0600")
}
