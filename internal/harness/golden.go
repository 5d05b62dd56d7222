package harness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/w65harness/internal/ir"
)

// RunWithGolden runs job and compares its report with
// testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, name string, job *ir.Job) (*Result, error) {
	t.Helper()

	result, err := Run(job)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, name, result.Report); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing report with its golden file without
// re-running anything.
func AssertGolden(t *testing.T, name string, report *ir.Report) error {
	t.Helper()

	data, err := report.Marshal()
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}

// ErrGoldenMismatch is wrapped by CheckGolden when a report differs from
// its golden file.
var ErrGoldenMismatch = errors.New("report differs from golden file")

// ErrGoldenMissing is wrapped by CheckGolden when no golden file exists.
var ErrGoldenMissing = errors.New("golden file missing")

// GoldenPath is where CheckGolden keeps the golden report for a job.
func GoldenPath(dir, name string) string {
	return filepath.Join(dir, "golden", name+".golden")
}

// CheckGolden compares report with GoldenPath(dir, name), or rewrites the
// file when update is set. goldie needs a *testing.T, so this is a plain
// byte comparison that uses the same fixture layout for the test command.
func CheckGolden(dir, name string, report *ir.Report, update bool) error {
	data, err := report.Marshal()
	if err != nil {
		return err
	}
	path := GoldenPath(dir, name)
	if update {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("failed to create golden dir: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write golden file: %w", err)
		}
		return nil
	}
	want, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", path, ErrGoldenMissing)
	}
	if err != nil {
		return fmt.Errorf("failed to read golden file: %w", err)
	}
	if !bytes.Equal(want, data) {
		return fmt.Errorf("%s: %w", path, ErrGoldenMismatch)
	}
	return nil
}
