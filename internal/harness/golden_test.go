package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckGolden_JobSuite(t *testing.T) {
	paths, err := FindJobs("testdata/jobs", "")
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, path := range paths {
		jf, err := LoadJob(path)
		require.NoError(t, err)
		t.Run(jf.Name, func(t *testing.T) {
			result, err := Run(jf.Job)
			require.NoError(t, err)
			assert.Empty(t, Evaluate(jf.Job.Expect, result.Report))
			assert.NoError(t, CheckGolden("testdata/jobs", jf.Name, result.Report, false))
		})
	}
}

func TestCheckGolden_UpdateThenMatch(t *testing.T) {
	dir := t.TempDir()
	report := sampleReport()

	err := CheckGolden(dir, "sample", report, false)
	assert.ErrorIs(t, err, ErrGoldenMissing)

	require.NoError(t, CheckGolden(dir, "sample", report, true))
	assert.FileExists(t, filepath.Join(dir, "golden", "sample.golden"))
	assert.NoError(t, CheckGolden(dir, "sample", report, false))

	report.NumCycles++
	assert.ErrorIs(t, CheckGolden(dir, "sample", report, false), ErrGoldenMismatch)
}

func TestFindJobs_Filter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a_one.json", "a_two.yaml", "b.yml", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "golden"), 0o755))

	all, err := FindJobs(dir, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	some, err := FindJobs(dir, "a_*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_one.json"), filepath.Join(dir, "a_two.yaml")}, some)

	_, err = FindJobs(dir, "[")
	assert.Error(t, err)
}
