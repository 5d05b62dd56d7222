package cli

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/w65harness/internal/ir"
	"github.com/roach88/w65harness/internal/store"
)

// recordJobs runs each job once with --db and returns the database path.
func recordJobs(t *testing.T, dir string, args ...[]string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "runs.db")
	for _, a := range args {
		_, _, err := execute(t, append([]string{"run", "--db", dbPath}, a...)...)
		require.NoError(t, err)
	}
	return dbPath
}

func TestReplayCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	replayCmd, _, err := cmd.Find([]string{"replay"})
	require.NoError(t, err)

	dbFlag := replayCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.NotNil(t, replayCmd.Flags().Lookup("run"))
}

func TestReplayMissingDatabaseFlag(t *testing.T) {
	_, _, err := execute(t, "replay")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestReplayEmptyDatabase(t *testing.T) {
	stdout, _, err := execute(t, "replay", "--db", filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "No runs found in database.")
}

func TestReplayDeterministic(t *testing.T) {
	dir := t.TempDir()
	brk := writeFile(t, dir, "brk.json", brkJob)
	hello := writeFile(t, dir, "hello.yaml", helloJob)
	dbPath := recordJobs(t, dir,
		[]string{brk},
		[]string{"--show-cycles", "--max-cycles", "7", brk},
		[]string{hello},
	)

	stdout, _, err := execute(t, "--format", "json", "replay", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Data.AllDeterministic)
	// Overrides change the job, so the brk file was recorded as two jobs.
	assert.Equal(t, 3, resp.Data.TotalRuns)
	for _, rr := range resp.Data.Runs {
		assert.Empty(t, rr.Error)
		assert.Equal(t, rr.Stored, rr.Replayed)
	}
}

func TestReplaySingleRun(t *testing.T) {
	dir := t.TempDir()
	brk := writeFile(t, dir, "brk.json", brkJob)
	hello := writeFile(t, dir, "hello.yaml", helloJob)
	dbPath := recordJobs(t, dir, []string{brk}, []string{hello})

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, runs, 2)

	stdout, _, err := execute(t, "replay", "--db", dbPath, "--run", runs[1].ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, runs[1].ID)
	assert.NotContains(t, stdout, runs[0].ID)
	assert.Contains(t, stdout, "1 run(s) replayed deterministically")
}

func TestReplayDetectsMismatch(t *testing.T) {
	dir := t.TempDir()
	brk := writeFile(t, dir, "brk.json", brkJob)
	dbPath := recordJobs(t, dir, []string{brk})

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE runs SET report_digest = 'sha256:0000'`)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	stdout, _, err := execute(t, "replay", "--db", dbPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stdout, "stored:   sha256:0000")
	assert.Contains(t, stdout, "Replay differs from recorded report")
}

func TestReplayKeepsDecomposedDataBytes(t *testing.T) {
	dir := t.TempDir()
	// LDA $0301, STA $F001, BRK; $0300 holds "e" + U+0301 (65 CC 81).
	job := writeFile(t, dir, "combining.json", `{
  "init": [
    {"base": 512, "data": "base64:rQEDjQHwAA=="},
    {"base": 768, "data": "utf8:e\u0301"}
  ],
  "serial_out_addr": 61441,
  "serial_out_fmt": "base64"
}`)
	twin := writeFile(t, dir, "composed.json", `{
  "init": [
    {"base": 512, "data": "base64:rQEDjQHwAA=="},
    {"base": 768, "data": "utf8:\u00e9"}
  ],
  "serial_out_addr": 61441,
  "serial_out_fmt": "base64"
}`)

	stdout, _, err := execute(t, "run", job)
	require.NoError(t, err)
	report, err := ir.ParseReport([]byte(stdout))
	require.NoError(t, err)
	require.NotNil(t, report.SerialOutData)
	assert.Equal(t, "base64:zA==", *report.SerialOutData, "second byte of the combining sequence")

	dbPath := recordJobs(t, dir, []string{job}, []string{twin})

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	runs, err := st.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.NoError(t, st.Close())
	require.Len(t, runs, 2)
	assert.NotEqual(t, runs[0].JobHash, runs[1].JobHash)

	stdout, _, err = execute(t, "--format", "json", "replay", "--db", dbPath)
	require.NoError(t, err)

	var resp struct {
		Data ReplayResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.True(t, resp.Data.AllDeterministic)
	assert.Equal(t, 2, resp.Data.TotalRuns)
}
