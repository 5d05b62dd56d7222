package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool   // regenerate golden files
	Filter string // job filter (glob pattern)
}

// JobResult holds the result of a single job execution.
type JobResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Jobs   []JobResult `json:"jobs"`
	Passed int         `json:"passed"`
	Failed int         `json:"failed"`
	Total  int         `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <jobs-dir>",
		Short: "Run a directory of jobs against their expectations and golden reports",
		Long: `Run every job file (.json, .yaml, .yml) directly inside a directory.

A job passes when its optional expect block holds and its report matches
<jobs-dir>/golden/<name>.golden byte for byte. With --update the golden
files are rewritten from the current reports instead of compared.

Exit codes:
  0 - All jobs passed
  1 - One or more jobs failed
  2 - Command error (invalid paths, etc.)

Examples:
  w65harness test ./jobs
  w65harness test ./jobs --filter "irq_*"
  w65harness test ./jobs --update
  w65harness test ./jobs --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter jobs by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, jobsDir string, cmd *cobra.Command) error {
	if _, err := os.Stat(jobsDir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("jobs directory not found: %s", jobsDir))
	}

	paths, err := harness.FindJobs(jobsDir, opts.Filter)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to find jobs", err)
	}

	result := TestResult{Jobs: make([]JobResult, 0, len(paths)), Total: len(paths)}
	if len(paths) == 0 {
		if opts.Format == "json" {
			return outputTestJSON(cmd, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No jobs found.")
		return nil
	}

	for _, path := range paths {
		jr := runTestJob(opts, jobsDir, path, cmd)
		result.Jobs = append(result.Jobs, jr)
		if jr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// runTestJob loads, runs and checks one job, printing its line in text mode.
func runTestJob(opts *TestOptions, jobsDir, path string, cmd *cobra.Command) JobResult {
	w := cmd.OutOrStdout()
	fail := func(name string, errs ...string) JobResult {
		if opts.Format != "json" {
			fmt.Fprintf(w, "✗ %s\n", name)
			for _, e := range errs {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
		return JobResult{Name: name, Pass: false, Errors: errs}
	}

	jf, err := harness.LoadJob(path)
	if err != nil {
		return fail(path, fmt.Sprintf("load error: %v", err))
	}

	result, err := harness.Run(jf.Job)
	if err != nil {
		return fail(jf.Name, fmt.Sprintf("execution failed: %v", err))
	}

	errs := harness.Evaluate(jf.Job.Expect, result.Report)

	err = harness.CheckGolden(jobsDir, jf.Name, result.Report, opts.Update)
	switch {
	case err == nil:
	case errors.Is(err, harness.ErrGoldenMissing):
		errs = append(errs, "golden file missing (run with --update to create)")
	case errors.Is(err, harness.ErrGoldenMismatch):
		errs = append(errs, "report does not match golden file (run with --update to regenerate)")
	default:
		errs = append(errs, fmt.Sprintf("golden comparison failed: %v", err))
	}

	if len(errs) > 0 {
		return fail(jf.Name, errs...)
	}
	if opts.Format != "json" {
		if opts.Update {
			fmt.Fprintf(w, "✓ %s (golden updated)\n", jf.Name)
		} else {
			fmt.Fprintf(w, "✓ %s\n", jf.Name)
		}
	}
	return JobResult{Name: jf.Name, Pass: true}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d job(s) failed", result.Failed),
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}
	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d job(s) failed", result.Failed))
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d job(s) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All jobs passed")
	return nil
}
