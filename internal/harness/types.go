package harness

import (
	"github.com/roach88/w65harness/internal/bus"
	"github.com/roach88/w65harness/internal/cpu"
	"github.com/roach88/w65harness/internal/ir"
)

// Result is the outcome of one run.
type Result struct {
	// Report is what the job's caller sees.
	Report *ir.Report

	// Halt is the termination signal, or nil when the cycle cap ended the run.
	Halt *bus.Halt

	// Trace holds the recorded cycle events in decoded form.
	Trace []ir.CycleEvent

	// Registers is the CPU state when the run ended. An instruction cut
	// short by a halt leaves the addressing side effects of the cycles it
	// issued (PC, S) but not its register or flag result.
	Registers cpu.Registers

	// Steps counts calls to the CPU's Step.
	Steps uint64
}

// Pass reports whether the run satisfied its expectations. A nil exp passes.
func (r *Result) Pass(exp *ir.Expect) bool {
	return len(Evaluate(exp, r.Report)) == 0
}
