package bus

import (
	"strings"

	"github.com/roach88/w65harness/internal/ir"
)

// Policy is the set of enabled termination rules.
type Policy uint8

const (
	TerminateOnBRK          Policy = 0x01
	TerminateOnInfiniteLoop Policy = 0x02
	TerminateOnZeroFetch    Policy = 0x04
	TerminateOnStackFetch   Policy = 0x08
	TerminateOnVectorFetch  Policy = 0x10
	TerminateOnBadWrite     Policy = 0x20

	// policyReserved bits are never set.
	policyReserved Policy = 0xC0

	// DefaultPolicy enables every rule.
	DefaultPolicy = ^policyReserved
)

var policyNames = []struct {
	bit  Policy
	name string
}{
	{TerminateOnBRK, "brk"},
	{TerminateOnInfiniteLoop, "infinite_loop"},
	{TerminateOnZeroFetch, "zero_fetch"},
	{TerminateOnStackFetch, "stack_fetch"},
	{TerminateOnVectorFetch, "vector_fetch"},
	{TerminateOnBadWrite, "bad_write"},
}

// Has reports whether every bit in rule is enabled.
func (p Policy) Has(rule Policy) bool { return p&rule == rule }

// Without returns p with rule disabled.
func (p Policy) Without(rule Policy) Policy { return p &^ rule }

func (p Policy) String() string {
	var names []string
	for _, n := range policyNames {
		if p.Has(n.bit) {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}

// fetchCause evaluates the address and opcode rules for a bookkept opcode
// fetch, in precedence order zero page, stack, vector region, BRK. The
// infinite-loop rule needs the previous fetch and is checked by the Bus.
//
// The vector-region rule is gated by the zero-fetch bit. The
// TerminateOnVectorFetch bit is carried but does not enable it.
func (p Policy) fetchCause(addr uint16, opcode byte) ir.Cause {
	switch {
	case p.Has(TerminateOnZeroFetch) && addr < 0x0100:
		return ir.CauseZeroFetch
	case p.Has(TerminateOnStackFetch) && addr >= 0x0100 && addr < 0x0200:
		return ir.CauseStackFetch
	case p.Has(TerminateOnZeroFetch) && addr >= 0xFFFA:
		return ir.CauseVectorFetch
	case p.Has(TerminateOnBRK) && opcode == 0x00:
		return ir.CauseBRK
	}
	return ir.CauseNone
}
