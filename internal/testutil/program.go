package testutil

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/w65harness/internal/ir"
)

// Init returns an init record that loads code at org.
func Init(org uint16, code ...byte) ir.InitRecord {
	return ir.InitRecord{
		Base: org,
		Data: ir.PrefixBase64 + base64.StdEncoding.EncodeToString(code),
	}
}

// Fill returns an init record that repeats pattern over size bytes at org.
func Fill(org uint16, size uint32, pattern ...byte) ir.InitRecord {
	r := Init(org, pattern...)
	r.Size = &size
	return r
}

// ResetVector returns an init record pointing the reset vector at addr.
func ResetVector(addr uint16) ir.InitRecord {
	return Init(0xFFFC, byte(addr), byte(addr>>8))
}

// NewJob returns a job with the given init records and nothing else set.
func NewJob(records ...ir.InitRecord) *ir.Job {
	return &ir.Job{Init: records}
}

// Ptr returns a pointer to v. Handy for optional job fields.
func Ptr[T any](v T) *T {
	return &v
}

// JobJSON encodes job, failing the test on error.
func JobJSON(t testing.TB, job *ir.Job) []byte {
	t.Helper()
	data, err := json.Marshal(job)
	require.NoError(t, err)
	return data
}

// ReportDigest digests r, failing the test on error.
func ReportDigest(t testing.TB, r *ir.Report) string {
	t.Helper()
	d, err := ir.ReportDigest(r)
	require.NoError(t, err)
	return d
}
