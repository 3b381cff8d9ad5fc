package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lottokeeper/lottokeeper/internal/output"
)

func TestRunVersion_Text(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()

	cmd, buf := newTestCmd()
	err := runVersion(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "lottokeeper")
	assert.Contains(t, buf.String(), "go:")
	assert.Contains(t, buf.String(), "platform:")
}

func TestRunVersion_JSONOutput(t *testing.T) {
	_, cleanupEnv := setupTestEnv(t)
	defer cleanupEnv()

	formatter = output.NewFormatter(output.FormatJSON, os.Stdout)

	cmd, buf := newTestCmd()
	err := runVersion(cmd, nil)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"version"`)
	assert.Contains(t, buf.String(), `"go_version"`)
	assert.Contains(t, buf.String(), `"os"`)
	assert.Contains(t, buf.String(), `"arch"`)
}
