package bus

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/w65harness/internal/ir"
)

func TestRecorder_QuotaNeverReplenishes(t *testing.T) {
	r := NewRecorder(2)
	e := ir.CycleEvent{Type: ir.CycleNormalRead, Address: 0x1234, Data: 0x56}

	assert.True(t, r.Record(e))
	assert.True(t, r.Record(e))
	assert.False(t, r.Record(e))
	assert.Zero(t, r.Remaining())
	assert.Equal(t, []string{"7123456", "7123456"}, r.Strings())
}

func TestRecorder_Disabled(t *testing.T) {
	r := NewRecorder(0)
	assert.False(t, r.Record(ir.CycleEvent{}))
	assert.Nil(t, r.Strings())

	r = NewRecorder(-3)
	assert.Zero(t, r.Remaining())
}

func TestClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, uint32(ResetCycles), c.Current())
	assert.Equal(t, uint32(6), c.Tick())
	assert.Equal(t, uint32(6), c.Current())

	c = &Clock{}
	assert.Equal(t, uint32(1), c.Tick())
}

func TestHaltError(t *testing.T) {
	h := &Halt{Cause: ir.CauseBRK, Cycle: 8, Address: 0x0200}
	assert.Equal(t, "halt: brk at cycle 8 (address $0200)", h.Error())

	wrapped := fmtWrap(h)
	assert.True(t, IsHalt(wrapped))
	got, ok := AsHalt(wrapped)
	assert.True(t, ok)
	assert.Same(t, h, got)

	_, ok = AsHalt(assert.AnError)
	assert.False(t, ok)
}

func fmtWrap(err error) error {
	return fmt.Errorf("step: %w", err)
}
