package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/w65harness/internal/ir"
)

// ExpectationError is returned when a run does not meet its job's expect
// block. It carries every failed check, not just the first.
type ExpectationError struct {
	Job      string
	Failures []string
	Report   *ir.Report
}

func (e *ExpectationError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "%s: %d expectation(s) failed\n", e.Job, len(e.Failures))
	for _, f := range e.Failures {
		fmt.Fprintf(&buf, "  %s\n", f)
	}
	if e.Report != nil {
		fmt.Fprintf(&buf, "\nReport: cause=%s cycles=%d", e.Report.TerminationCause, e.Report.NumCycles)
		if e.Report.LastPC != nil {
			fmt.Fprintf(&buf, " last_pc=$%04X", *e.Report.LastPC)
		}
		buf.WriteByte('\n')
	}
	return buf.String()
}

// Evaluate checks a report against an expect block and returns one message
// per failed check. A nil block always passes.
func Evaluate(exp *ir.Expect, r *ir.Report) []string {
	if exp == nil {
		return nil
	}
	var failures []string
	fail := func(field, expected, actual string) {
		failures = append(failures, fmt.Sprintf("%s: expected %s, got %s", field, expected, actual))
	}

	if exp.TerminationCause != nil && *exp.TerminationCause != r.TerminationCause {
		fail("termination_cause", *exp.TerminationCause, r.TerminationCause)
	}
	if exp.NumCycles != nil && *exp.NumCycles != r.NumCycles {
		fail("num_cycles", fmt.Sprint(*exp.NumCycles), fmt.Sprint(r.NumCycles))
	}
	if exp.LastPC != nil {
		switch {
		case r.LastPC == nil:
			fail("last_pc", fmt.Sprintf("$%04X", *exp.LastPC), "none")
		case *r.LastPC != *exp.LastPC:
			fail("last_pc", fmt.Sprintf("$%04X", *exp.LastPC), fmt.Sprintf("$%04X", *r.LastPC))
		}
	}
	if exp.SerialOutData != nil {
		switch {
		case r.SerialOutData == nil:
			fail("serial_out_data", fmt.Sprintf("%q", *exp.SerialOutData), "none")
		case *r.SerialOutData != *exp.SerialOutData:
			fail("serial_out_data", fmt.Sprintf("%q", *exp.SerialOutData), fmt.Sprintf("%q", *r.SerialOutData))
		}
	}
	if len(exp.CyclesContain) > 0 {
		if missing, ok := containsInOrder(r.Cycles, exp.CyclesContain); !ok {
			fail("cycles_contain", "events in order", fmt.Sprintf("no %s after the previous match", missing))
		}
	}
	return failures
}

// containsInOrder reports whether want is a subsequence of have. Events
// compare by packed value, so hex case does not matter. On failure it
// returns the first event that could not be matched.
func containsInOrder(have, want []string) (string, bool) {
	i := 0
	for _, h := range have {
		if i == len(want) {
			break
		}
		if sameEvent(h, want[i]) {
			i++
		}
	}
	if i < len(want) {
		return want[i], false
	}
	return "", true
}

func sameEvent(a, b string) bool {
	ea, err := ir.ParseCycleEvent(a)
	if err != nil {
		return strings.EqualFold(a, b)
	}
	eb, err := ir.ParseCycleEvent(b)
	if err != nil {
		return false
	}
	return ea == eb
}
