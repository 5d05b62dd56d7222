package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "w65harness", cmd.Name())
	assert.Contains(t, cmd.Long, "W65C02S")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "validate", "trace", "test", "replay", "history", "serve"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestBareJobPrintsReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brk.json", brkJob)

	stdout, _, err := execute(t, path)
	require.NoError(t, err)
	assert.Equal(t, brkReport, stdout)
}

func TestBareUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no_args", nil},
		{"two_args", []string{"a.json", "b.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Equal(t, usageLine, err.Error())
			assert.Empty(t, stdout)
		})
	}
}

func TestBareMissingJob(t *testing.T) {
	stdout, _, err := execute(t, filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Empty(t, stdout, "no report on configuration errors")
}

func TestInvalidFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brk.json", brkJob)

	_, _, err := execute(t, "--format", "xml", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVerboseLogsToStderr(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brk.json", brkJob)

	stdout, stderr, err := execute(t, "-v", "run", path)
	require.NoError(t, err)
	assert.Equal(t, brkReport, stdout)
	assert.Contains(t, stderr, "run finished")
}
