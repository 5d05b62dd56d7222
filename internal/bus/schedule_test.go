package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSchedule_AlternatesFromAsserted(t *testing.T) {
	s, err := NewSchedule(nil, []uint32{30, 10, 20}, nil)
	require.NoError(t, err)

	assert.Equal(t, []Flip{
		{Cycle: 10, Pin: PinNMI, State: true},
		{Cycle: 20, Pin: PinNMI, State: false},
		{Cycle: 30, Pin: PinNMI, State: true},
	}, s.Pending())
}

func TestNewSchedule_TiesKeepPinOrder(t *testing.T) {
	s, err := NewSchedule([]uint32{50}, []uint32{50}, []uint32{50, 40})
	require.NoError(t, err)

	assert.Equal(t, []Flip{
		{Cycle: 40, Pin: PinIRQ, State: true},
		{Cycle: 50, Pin: PinOverflow, State: true},
		{Cycle: 50, Pin: PinNMI, State: true},
		{Cycle: 50, Pin: PinIRQ, State: false},
	}, s.Pending())
}

func TestNewSchedule_DuplicateCyclesBothApply(t *testing.T) {
	s, err := NewSchedule(nil, nil, []uint32{7, 7})
	require.NoError(t, err)

	due := s.Due(7)
	require.Len(t, due, 2)
	assert.True(t, due[0].State)
	assert.False(t, due[1].State)
}

func TestNewSchedule_Rejects25BitCycle(t *testing.T) {
	_, err := NewSchedule([]uint32{MaxFlipCycle}, nil, nil)
	require.NoError(t, err)

	_, err = NewSchedule(nil, nil, []uint32{MaxFlipCycle + 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "irq")
}

func TestNewSchedule_DoesNotMutateInput(t *testing.T) {
	in := []uint32{3, 1, 2}
	_, err := NewSchedule(in, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 1, 2}, in)
}

func TestSchedule_Due(t *testing.T) {
	s, err := NewSchedule([]uint32{5, 9}, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, s.Due(4))
	assert.Len(t, s.Due(6), 1)
	assert.Empty(t, s.Due(6), "a flip is consumed once")
	assert.Len(t, s.Due(100), 1)
	assert.Zero(t, s.Len())
}

func TestPinString(t *testing.T) {
	assert.Equal(t, "so", PinOverflow.String())
	assert.Equal(t, "nmi", PinNMI.String())
	assert.Equal(t, "irq", PinIRQ.String())
	assert.Equal(t, "pin(9)", Pin(9).String())
}
