package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/w65harness/internal/ir"
	"github.com/roach88/w65harness/internal/store"
	"github.com/roach88/w65harness/internal/testutil"
)

func TestRunCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)

	for _, name := range []string{"db", "max-cycles", "show-cycles"} {
		assert.NotNil(t, runCmd.Flags().Lookup(name), "flag --%s", name)
	}
	assert.Equal(t, "", runCmd.Flags().Lookup("db").DefValue)
}

func TestRunPrintsReport(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brk.json", brkJob)

	stdout, _, err := execute(t, "run", path)
	require.NoError(t, err)
	assert.Equal(t, brkReport, stdout)
}

func TestRunYAMLJob(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hello.yaml", helloJob)

	stdout, _, err := execute(t, "run", path)
	require.NoError(t, err)

	report, err := ir.ParseReport([]byte(stdout))
	require.NoError(t, err)
	assert.Equal(t, "brk", report.TerminationCause)
	assert.Equal(t, uint32(20), report.NumCycles)
	require.NotNil(t, report.SerialOutData)
	assert.Equal(t, "utf8:Hi", *report.SerialOutData)
}

func TestRunOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "brk.json", brkJob)

	t.Run("max_cycles", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "--max-cycles", "6", path)
		require.NoError(t, err)
		report, err := ir.ParseReport([]byte(stdout))
		require.NoError(t, err)
		assert.Equal(t, "limit", report.TerminationCause)
		assert.Equal(t, uint32(6), report.NumCycles)
		assert.Nil(t, report.LastPC)
	})

	t.Run("show_cycles", func(t *testing.T) {
		stdout, _, err := execute(t, "run", "--show-cycles", path)
		require.NoError(t, err)
		report, err := ir.ParseReport([]byte(stdout))
		require.NoError(t, err)
		assert.Equal(t, []string{"5FFFC00", "5FFFD02", "F020000"}, report.Cycles)
	})
}

func TestRunConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		job  string
	}{
		{"no_init", `{}`},
		{"rdy", `{"init": [{"base": 512, "data": "base64:AA=="}], "rdy": []}`},
		{"bad_prefix", `{"init": [{"base": 512, "data": "hex:00"}]}`},
		{"base_range", `{"init": [{"base": 70000, "data": "base64:AA=="}]}`},
		{"not_json", `{"init": [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "job.json", tt.job)

			stdout, _, err := execute(t, "run", path)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Empty(t, stdout)
		})
	}
}

func TestRunRecordsRun(t *testing.T) {
	dir := t.TempDir()
	jobPath := writeFile(t, dir, "brk.json", brkJob)
	dbPath := filepath.Join(dir, "runs.db")

	stdout := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	opts := &RunOptions{
		RootOptions:   &RootOptions{Format: "text"},
		Database:      dbPath,
		ShowCycles:    true,
		showCyclesSet: true,
		IDs:           testutil.NewFixedIDGenerator("run"),
	}
	require.NoError(t, runJob(opts, jobPath, cmd))

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	run, err := st.GetRun(ctx, "run-0001")
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Seq)
	assert.Equal(t, jobPath, run.JobPath)
	assert.Equal(t, "brk", run.Report.TerminationCause)

	var stored map[string]any
	require.NoError(t, json.Unmarshal([]byte(run.JobJSON), &stored))
	assert.Equal(t, true, stored["show_cycles"], "override is part of the stored job")

	events, err := st.ReadCycles(ctx, "run-0001")
	require.NoError(t, err)
	assert.Len(t, events, 3)

	digest, err := ir.ReportDigest(run.Report)
	require.NoError(t, err)
	assert.Equal(t, digest, run.ReportDigest)
}

func TestEffectiveJobJSON(t *testing.T) {
	job := []byte(`{"init":[{"base":512,"data":"base64:AA=="}]}`)

	t.Run("no_overrides", func(t *testing.T) {
		got, err := effectiveJobJSON(job, &RunOptions{})
		require.NoError(t, err)
		assert.Equal(t, job, got)
	})

	t.Run("max_cycles", func(t *testing.T) {
		got, err := effectiveJobJSON(job, &RunOptions{MaxCycles: 100, maxCyclesSet: true})
		require.NoError(t, err)
		assert.JSONEq(t, `{"init":[{"base":512,"data":"base64:AA=="}],"max_cycles":100}`, string(got))
	})
}

func TestRunHelpText(t *testing.T) {
	stdout, _, err := execute(t, "run", "--help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Run a conformance job")
	assert.Contains(t, stdout, "--max-cycles")
}
