package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "cascade", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}

	for _, expected := range []string{"version", "check", "watch", "lsp"} {
		assert.True(t, names[expected], "expected subcommand %q", expected)
	}
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Cascade version: ")
	assert.Contains(t, output, Version)
	assert.Contains(t, output, "Git commit: ")
	assert.Contains(t, output, "Go version: ")
}

func TestRootCommandHelp(t *testing.T) {
	cmd := NewRootCommand()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "cascade")
}
