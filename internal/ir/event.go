package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// CycleType tags a bus transaction in the cycle trace. The numeric values are
// part of the report format.
type CycleType uint8

const (
	CycleLockedWrite CycleType = 2
	CycleLockedRead  CycleType = 3
	CycleVectorRead  CycleType = 5
	CycleNormalWrite CycleType = 6
	CycleNormalRead  CycleType = 7
	CycleOpcodeRead  CycleType = 15
)

var cycleTypeNames = map[CycleType]string{
	CycleLockedWrite: "locked_write",
	CycleLockedRead:  "locked_read",
	CycleVectorRead:  "vector_read",
	CycleNormalWrite: "normal_write",
	CycleNormalRead:  "normal_read",
	CycleOpcodeRead:  "opcode_read",
}

func (t CycleType) String() string {
	if name, ok := cycleTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type_%d", uint8(t))
}

// ParseCycleType accepts the names returned by CycleType.String.
func ParseCycleType(s string) (CycleType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, name := range cycleTypeNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown cycle type %q", s)
}

// CycleEvent is one traced bus transaction.
type CycleEvent struct {
	Type    CycleType
	Address uint16
	Data    byte
}

// Pack returns the 28-bit (type<<24)|(address<<8)|data encoding.
func (e CycleEvent) Pack() uint32 {
	return uint32(e.Type)<<24 | uint32(e.Address)<<8 | uint32(e.Data)
}

// String renders the packed form as seven uppercase hex digits.
func (e CycleEvent) String() string {
	return fmt.Sprintf("%07X", e.Pack())
}

// UnpackCycleEvent splits a packed value back into its fields.
func UnpackCycleEvent(v uint32) CycleEvent {
	return CycleEvent{
		Type:    CycleType(v >> 24),
		Address: uint16(v >> 8),
		Data:    byte(v),
	}
}

// ParseCycleEvent parses the seven-digit hex form used in reports.
func ParseCycleEvent(s string) (CycleEvent, error) {
	if len(s) != 7 {
		return CycleEvent{}, fmt.Errorf("cycle event %q: want 7 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return CycleEvent{}, fmt.Errorf("cycle event %q: %w", s, err)
	}
	return UnpackCycleEvent(uint32(v)), nil
}
