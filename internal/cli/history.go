package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Limit    int
	Stats    bool
	JobHash  string // optional - only runs of this job
}

// HistoryRow is one listed run.
type HistoryRow struct {
	Seq       int64   `json:"seq"`
	ID        string  `json:"id"`
	JobPath   string  `json:"job_path"`
	JobHash   string  `json:"job_hash"`
	Cause     string  `json:"termination_cause"`
	NumCycles uint32  `json:"num_cycles"`
	LastPC    *uint16 `json:"last_pc,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded with "run --db", oldest first.

Examples:
  w65harness history --db runs.db
  w65harness history --db runs.db --limit 20 --format json
  w65harness history --db runs.db --job 3f2a...
  w65harness history --db runs.db --stats`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many runs (0 = all)")
	cmd.Flags().BoolVar(&opts.Stats, "stats", false, "show totals instead of the run list")
	cmd.Flags().StringVar(&opts.JobHash, "job", "", "only list runs of the job with this hash")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if opts.Stats {
		return outputStats(ctx, st, opts, cmd)
	}

	var runs []store.Run
	if opts.JobHash != "" {
		runs, err = st.RunsForJob(ctx, opts.JobHash)
		if opts.Limit > 0 && len(runs) > opts.Limit {
			runs = runs[:opts.Limit]
		}
	} else {
		runs, err = st.ListRuns(ctx, opts.Limit)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	rows := make([]HistoryRow, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, HistoryRow{
			Seq:       r.Seq,
			ID:        r.ID,
			JobPath:   r.JobPath,
			JobHash:   r.JobHash,
			Cause:     r.Report.TerminationCause,
			NumCycles: r.Report.NumCycles,
			LastPC:    r.Report.LastPC,
		})
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), rows)
	}

	w := cmd.OutOrStdout()
	if len(rows) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tCAUSE\tCYCLES\tLAST PC\tJOB")
	for _, r := range rows {
		pc := "-"
		if r.LastPC != nil {
			pc = fmt.Sprintf("$%04X", *r.LastPC)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n", r.Seq, r.ID, r.Cause, r.NumCycles, pc, r.JobPath)
	}
	return tw.Flush()
}

func outputStats(ctx context.Context, st *store.Store, opts *HistoryOptions, cmd *cobra.Command) error {
	stats, err := st.GetStats(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read stats", err)
	}
	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), map[string]any{
			"runs":     stats.Runs,
			"jobs":     stats.Jobs,
			"events":   stats.Events,
			"last_seq": stats.LastSeq,
			"by_cause": stats.ByCause,
		})
	}
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Runs: %d (%d distinct jobs), %d cycle events, last seq %d\n",
		stats.Runs, stats.Jobs, stats.Events, stats.LastSeq)
	causes := make([]string, 0, len(stats.ByCause))
	for cause := range stats.ByCause {
		causes = append(causes, cause)
	}
	sort.Strings(causes)
	for _, cause := range causes {
		fmt.Fprintf(w, "  %-14s %d\n", cause, stats.ByCause[cause])
	}
	return nil
}
