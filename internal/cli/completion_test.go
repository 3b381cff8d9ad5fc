package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionBash(t *testing.T) {
	var buf bytes.Buffer
	err := rootCmd.GenBashCompletion(&buf)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "lottokeeper")
}

func TestCompletionZsh(t *testing.T) {
	var buf bytes.Buffer
	err := rootCmd.GenZshCompletion(&buf)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "#compdef")
}

func TestCompletionFish(t *testing.T) {
	var buf bytes.Buffer
	err := rootCmd.GenFishCompletion(&buf, true)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "complete")
}

func TestCompletionPowerShell(t *testing.T) {
	var buf bytes.Buffer
	err := rootCmd.GenPowerShellCompletionWithDesc(&buf)
	require.NoError(t, err)
	assert.NotEmpty(t, buf.String())
	assert.Contains(t, buf.String(), "Register-ArgumentCompleter")
}

func TestCompletionCommand_RejectsUnknownShell(t *testing.T) {
	err := completionCmd.Args(completionCmd, []string{"tcsh"})
	require.Error(t, err)
}

func TestCompletionCommand_AcceptsKnownShells(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		err := completionCmd.Args(completionCmd, []string{shell})
		require.NoError(t, err, "shell %q must be accepted", shell)
	}
}
