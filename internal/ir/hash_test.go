package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobHashIgnoresLayout(t *testing.T) {
	h1, err := JobHash([]byte(`{"init":[{"base":512,"data":"utf8:x"}],"max_cycles":6}`))
	require.NoError(t, err)
	h2, err := JobHash([]byte("{\n  \"max_cycles\": 6,\n  \"init\": [ {\"data\": \"utf8:x\", \"base\": 512} ]\n}"))
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64, "SHA-256 hex is 64 characters")
}

func TestJobHashChangesWithInput(t *testing.T) {
	h1, err := JobHash([]byte(`{"max_cycles":6}`))
	require.NoError(t, err)
	h2, err := JobHash([]byte(`{"max_cycles":7}`))
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}

func TestJobHashDistinguishesDecomposedData(t *testing.T) {
	decomposed, err := JobHash([]byte(`{"init":[{"base":512,"data":"utf8:e\u0301"}]}`))
	require.NoError(t, err)
	composed, err := JobHash([]byte(`{"init":[{"base":512,"data":"utf8:\u00e9"}]}`))
	require.NoError(t, err)
	assert.NotEqual(t, decomposed, composed)
}

func TestJobHashInvalidJSON(t *testing.T) {
	_, err := JobHash([]byte(`{`))
	require.Error(t, err)
}

func TestReportDigest(t *testing.T) {
	pc := uint16(0x0200)
	r1 := &Report{LastPC: &pc, NumCycles: 8, TerminationCause: "brk"}
	r2 := &Report{LastPC: &pc, NumCycles: 8, TerminationCause: "brk"}
	r3 := &Report{LastPC: &pc, NumCycles: 9, TerminationCause: "brk"}

	d1, err := ReportDigest(r1)
	require.NoError(t, err)
	d2, err := ReportDigest(r2)
	require.NoError(t, err)
	d3, err := ReportDigest(r3)
	require.NoError(t, err)

	assert.Equal(t, d1, d2)
	assert.NotEqual(t, d1, d3)
}

func TestHashDomainSeparation(t *testing.T) {
	data := []byte(`{}`)
	assert.NotEqual(t, hashWithDomain(DomainJob, data), hashWithDomain(DomainReport, data))
}
