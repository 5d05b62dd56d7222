package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/w65harness/internal/ir"
)

func TestPolicyDefault(t *testing.T) {
	assert.Equal(t, Policy(0x3F), DefaultPolicy)
	assert.Equal(t, "brk|infinite_loop|zero_fetch|stack_fetch|vector_fetch|bad_write", DefaultPolicy.String())
	assert.Equal(t, "none", Policy(0).String())
}

func TestPolicyWithout(t *testing.T) {
	p := DefaultPolicy.Without(TerminateOnBRK).Without(TerminateOnBadWrite)
	assert.False(t, p.Has(TerminateOnBRK))
	assert.False(t, p.Has(TerminateOnBadWrite))
	assert.True(t, p.Has(TerminateOnStackFetch))
}

func TestWithPolicyClearsReservedBits(t *testing.T) {
	b := New(NewAddressSpace(nil), WithPolicy(0xFF))
	assert.Equal(t, DefaultPolicy, b.policy)
}

func TestPolicyFetchCauseBoundaries(t *testing.T) {
	p := DefaultPolicy
	assert.Equal(t, ir.CauseZeroFetch, p.fetchCause(0x0000, 0xEA))
	assert.Equal(t, ir.CauseStackFetch, p.fetchCause(0x0100, 0xEA))
	assert.Equal(t, ir.CauseNone, p.fetchCause(0x0200, 0xEA))
	assert.Equal(t, ir.CauseBRK, p.fetchCause(0x0200, 0x00))
	assert.Equal(t, ir.CauseVectorFetch, p.fetchCause(0xFFFA, 0xEA))
	assert.Equal(t, ir.CauseNone, p.fetchCause(0xFFF9, 0xEA))
}
