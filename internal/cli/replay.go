package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/harness"
	"github.com/roach88/w65harness/internal/ir"
	"github.com/roach88/w65harness/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	RunID    string // optional - specific run only
}

// ReplayRunResult holds the replay result for a single run.
type ReplayRunResult struct {
	RunID         string `json:"run_id"`
	Seq           int64  `json:"seq"`
	JobPath       string `json:"job_path"`
	Stored        string `json:"stored_digest"`
	Replayed      string `json:"replayed_digest"`
	Deterministic bool   `json:"deterministic"`
	Error         string `json:"error,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Runs             []ReplayRunResult `json:"runs"`
	TotalRuns        int               `json:"total_runs"`
	AllDeterministic bool              `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run recorded jobs and verify determinism",
		Long: `Re-run recorded jobs from the stored canonical job JSON and compare the
new report digest with the stored one.

Without --run the latest run of every distinct job is replayed.

Exit codes:
  0 - All runs reproduced exactly
  1 - At least one report differs
  2 - Command error (database not found, etc.)

Examples:
  w65harness replay --db runs.db
  w65harness replay --db runs.db --run 0190b6b2-...
  w65harness replay --db runs.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "replay specific run only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ReplaySet(ctx, opts.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to select runs", err)
	}

	result := ReplayResult{
		Runs:             make([]ReplayRunResult, 0, len(runs)),
		TotalRuns:        len(runs),
		AllDeterministic: true,
	}
	if len(runs) == 0 {
		if opts.Format == "json" {
			return newFormatter(opts.RootOptions, cmd).Success(result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}

	for _, run := range runs {
		rr := replayRun(ctx, run)
		result.Runs = append(result.Runs, rr)
		if !rr.Deterministic {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		formatter := newFormatter(opts.RootOptions, cmd)
		var err error
		if result.AllDeterministic {
			err = formatter.Success(result)
		} else {
			err = formatter.Error(ErrCodeNondeterminism, "non-deterministic replay detected", result)
		}
		if err != nil {
			return err
		}
	} else {
		outputReplayText(cmd, result, opts.Verbose)
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "non-deterministic replay detected")
	}
	return nil
}

// replayRun re-executes one stored job and compares digests.
func replayRun(ctx context.Context, run store.Run) ReplayRunResult {
	rr := ReplayRunResult{
		RunID:   run.ID,
		Seq:     run.Seq,
		JobPath: run.JobPath,
		Stored:  run.ReportDigest,
	}
	job, _, err := harness.ParseJob(run.JobPath, []byte(run.JobJSON), ".json")
	if err != nil {
		rr.Error = err.Error()
		return rr
	}
	result, err := harness.RunContext(ctx, job)
	if err != nil {
		rr.Error = err.Error()
		return rr
	}
	digest, err := ir.ReportDigest(result.Report)
	if err != nil {
		rr.Error = err.Error()
		return rr
	}
	rr.Replayed = digest
	rr.Deterministic = digest == run.ReportDigest
	return rr
}

func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) {
	w := cmd.OutOrStdout()
	for _, rr := range result.Runs {
		mark := "✓"
		if !rr.Deterministic {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s #%d %s (%s)\n", mark, rr.Seq, rr.RunID, rr.JobPath)
		if rr.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", rr.Error)
		} else if verbose || !rr.Deterministic {
			fmt.Fprintf(w, "  stored:   %s\n", rr.Stored)
			fmt.Fprintf(w, "  replayed: %s\n", rr.Replayed)
		}
	}
	fmt.Fprintln(w)
	if result.AllDeterministic {
		fmt.Fprintf(w, "✓ %d run(s) replayed deterministically\n", result.TotalRuns)
	} else {
		fmt.Fprintln(w, "✗ Replay differs from recorded report")
	}
}
