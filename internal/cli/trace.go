package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/w65harness/internal/ir"
	"github.com/roach88/w65harness/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	RunID    string
	Types    []string // optional - filter to these cycle types
}

// TraceRow is one decoded cycle event. Index counts rows after filtering.
type TraceRow struct {
	Index   int    `json:"index"`
	Type    string `json:"type"`
	Address uint16 `json:"address"`
	Data    byte   `json:"data"`
	Packed  string `json:"packed"`
}

// TraceResult holds the decoded trace.
type TraceResult struct {
	Source string     `json:"source"`
	Events []TraceRow `json:"events"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [report.json]",
		Short: "Decode a cycle trace",
		Long: `Decode packed cycle events into type, address and data columns.

The trace comes either from a report file written with show_cycles, or from
a run recorded in the run history (--db with --run).

Cycle types: locked_write, locked_read, vector_read, normal_write,
normal_read, opcode_read.

Examples:
  w65harness trace report.json
  w65harness trace report.json --type opcode_read
  w65harness trace --db runs.db --run 0190b6b2-... --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "read the trace of a recorded run from this database")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run ID to trace (with --db)")
	cmd.Flags().StringSliceVar(&opts.Types, "type", nil, "only show these cycle types (comma separated)")

	return cmd
}

func runTrace(opts *TraceOptions, args []string, cmd *cobra.Command) error {
	types, err := parseCycleTypes(opts.Types)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --type", err)
	}

	var events []ir.CycleEvent
	var source string
	switch {
	case len(args) == 1 && opts.Database == "":
		source = args[0]
		events, err = traceFromReport(args[0])
	case len(args) == 0 && opts.Database != "" && opts.RunID != "":
		source = opts.RunID
		events, err = traceFromStore(cmd.Context(), opts.Database, opts.RunID, types)
	default:
		return NewExitError(ExitCommandError, "give either a report file or --db with --run")
	}
	if err != nil {
		return err
	}

	result := TraceResult{Source: source, Events: []TraceRow{}}
	for _, ev := range events {
		if !typeSelected(ev.Type, types) {
			continue
		}
		result.Events = append(result.Events, TraceRow{
			Index:   len(result.Events),
			Type:    ev.Type.String(),
			Address: ev.Address,
			Data:    ev.Data,
			Packed:  ev.String(),
		})
	}

	if opts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	w := cmd.OutOrStdout()
	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No cycle events.")
		return nil
	}
	for _, row := range result.Events {
		fmt.Fprintf(w, "%5d  %-12s $%04X  $%02X\n", row.Index, row.Type, row.Address, row.Data)
	}
	return nil
}

func traceFromReport(path string) ([]ir.CycleEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read report", err)
	}
	report, err := ir.ParseReport(data)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to parse report", err)
	}
	events, err := report.Events()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to decode cycles", err)
	}
	return events, nil
}

func traceFromStore(ctx context.Context, dbPath, runID string, types []ir.CycleType) ([]ir.CycleEvent, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	if _, err := st.GetRun(ctx, runID); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read run", err)
	}
	events, err := st.ReadCycles(ctx, runID, types...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read cycle events", err)
	}
	return events, nil
}

func parseCycleTypes(names []string) ([]ir.CycleType, error) {
	var types []ir.CycleType
	for _, name := range names {
		t, err := ir.ParseCycleType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

func typeSelected(t ir.CycleType, types []ir.CycleType) bool {
	if len(types) == 0 {
		return true
	}
	for _, want := range types {
		if t == want {
			return true
		}
	}
	return false
}
