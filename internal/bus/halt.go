package bus

import (
	"errors"
	"fmt"

	"github.com/roach88/w65harness/internal/ir"
)

// Halt is returned by a bus method when a termination rule fires or the
// cycle cap is reached. Cause is ir.CauseNone for the cap.
type Halt struct {
	Cause   ir.Cause // why the run stopped
	Cycle   uint32   // cycle counter at the time of the halt
	Address uint16   // address of the transaction that tripped the rule
}

// Error implements the error interface.
func (h *Halt) Error() string {
	return fmt.Sprintf("halt: %s at cycle %d (address $%04X)", h.Cause, h.Cycle, h.Address)
}

// IsHalt returns true if err is or wraps a *Halt.
func IsHalt(err error) bool {
	var h *Halt
	return errors.As(err, &h)
}

// AsHalt extracts the *Halt from err, if any.
func AsHalt(err error) (*Halt, bool) {
	var h *Halt
	if errors.As(err, &h) {
		return h, true
	}
	return nil, false
}
