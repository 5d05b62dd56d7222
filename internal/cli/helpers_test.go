package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// brkJob runs a single BRK at $0200.
const brkJob = `{"init": [{"base": 512, "data": "base64:AA=="}]}`

const brkReport = `{
  "last_pc": 512,
  "num_cycles": 8,
  "termination_cause": "brk"
}
`

// helloJob prints "Hi" on the serial port, then hits BRK.
const helloJob = `init:
  - base: 0x0200
    data: "base64:qUiNAfCpaY0B8AA="
serial_out_addr: 0xF001
serial_out_fmt: utf8
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
