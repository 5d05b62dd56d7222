package cli

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/harness"
	"github.com/roach88/w65harness/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database   string
	MaxCycles  uint32
	ShowCycles bool

	// IDs overrides the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	IDs store.IDGenerator

	// set by flag parsing; zero values mean "use the job's setting"
	maxCyclesSet  bool
	showCyclesSet bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <job>",
		Short: "Run a job and print its report",
		Long: `Run a conformance job and print the JSON report on stdout.

Flags override the job's own max_cycles and show_cycles. With --db the run
is also recorded in the run history together with its cycle trace.

Exit codes:
  0 - Report printed
  2 - Configuration error, unreadable job, database error

Examples:
  w65harness run job.json > report.json
  w65harness run --max-cycles 1000 --show-cycles job.yaml
  w65harness run --db runs.db job.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.maxCyclesSet = cmd.Flags().Changed("max-cycles")
			opts.showCyclesSet = cmd.Flags().Changed("show-cycles")
			return runJob(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record the run in this SQLite database")
	cmd.Flags().Uint32Var(&opts.MaxCycles, "max-cycles", 0, "override the job's cycle cap")
	cmd.Flags().BoolVar(&opts.ShowCycles, "show-cycles", false, "override the job's show_cycles")

	return cmd
}

func runJob(opts *RunOptions, path string, cmd *cobra.Command) error {
	jf, err := harness.LoadJob(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load job", err)
	}

	var runOpts []harness.Option
	runOpts = append(runOpts, harness.WithLogger(slog.Default()))
	if opts.maxCyclesSet {
		runOpts = append(runOpts, harness.WithMaxCycles(opts.MaxCycles))
	}
	if opts.showCyclesSet {
		runOpts = append(runOpts, harness.WithShowCycles(opts.ShowCycles))
	}

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Debug("running job", "path", path)
	result, err := harness.RunContext(ctx, jf.Job, runOpts...)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return WrapExitError(ExitFailure, "run interrupted", err)
		}
		return WrapExitError(ExitCommandError, "run failed", err)
	}

	if err := writeReport(cmd.OutOrStdout(), result.Report); err != nil {
		return err
	}

	if opts.Database != "" {
		return recordRun(ctx, opts, jf, result)
	}
	return nil
}

// recordRun stores a finished run and its trace.
func recordRun(ctx context.Context, opts *RunOptions, jf *harness.JobFile, result *harness.Result) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ids := opts.IDs
	if ids == nil {
		ids = store.UUIDv7Generator{}
	}
	jobJSON, err := effectiveJobJSON(jf.JSON, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to prepare run record", err)
	}
	run, err := store.NewRun(ids.Generate(), jf.Path, jobJSON, result.Report)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to prepare run record", err)
	}
	seq, err := st.WriteRun(ctx, run, result.Trace)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to record run", err)
	}
	slog.Info("run recorded", "id", run.ID, "seq", seq, "job_hash", run.JobHash)
	return nil
}

// effectiveJobJSON folds command-line overrides into the job so a replay of
// the stored job reproduces the recorded report.
func effectiveJobJSON(jobJSON []byte, opts *RunOptions) ([]byte, error) {
	if !opts.maxCyclesSet && !opts.showCyclesSet {
		return jobJSON, nil
	}
	var doc map[string]any
	if err := json.Unmarshal(jobJSON, &doc); err != nil {
		return nil, err
	}
	if opts.maxCyclesSet {
		doc["max_cycles"] = opts.MaxCycles
	}
	if opts.showCyclesSet {
		doc["show_cycles"] = opts.ShowCycles
	}
	return json.Marshal(doc)
}
