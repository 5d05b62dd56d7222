package bus

import "github.com/roach88/w65harness/internal/ir"

// TraceQuota is the number of events recorded when a job asks for a trace.
const TraceQuota = 1000

// Recorder keeps the first quota bookkept transactions.
//
// The quota only ever decreases. Once it reaches zero nothing more is
// recorded for the rest of the run.
type Recorder struct {
	remaining int
	events    []ir.CycleEvent
}

// NewRecorder creates a recorder that keeps up to quota events.
// A quota of zero disables tracing.
func NewRecorder(quota int) *Recorder {
	if quota < 0 {
		quota = 0
	}
	return &Recorder{remaining: quota, events: make([]ir.CycleEvent, 0, quota)}
}

// Record appends e if quota remains and reports whether it did.
func (r *Recorder) Record(e ir.CycleEvent) bool {
	if r.remaining <= 0 {
		return false
	}
	r.events = append(r.events, e)
	r.remaining--
	return true
}

// Remaining returns the unused quota.
func (r *Recorder) Remaining() int { return r.remaining }

// Events returns the recorded events in bus order.
func (r *Recorder) Events() []ir.CycleEvent {
	return append([]ir.CycleEvent(nil), r.events...)
}

// Strings renders the events in the seven-digit report form.
func (r *Recorder) Strings() []string {
	if len(r.events) == 0 {
		return nil
	}
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.String()
	}
	return out
}
