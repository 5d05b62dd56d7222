package store

import (
	"fmt"

	"github.com/roach88/w65harness/internal/ir"
)

// marshalJob canonicalises job JSON for storage so equal jobs store equal
// text regardless of key order or whitespace in the source file.
func marshalJob(jobJSON []byte) (string, error) {
	data, err := ir.CanonicalizeJSON(jobJSON)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}
	return string(data), nil
}

// marshalReport stores the report exactly as the CLI prints it.
func marshalReport(r *ir.Report) (string, error) {
	data, err := r.Marshal()
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(data), nil
}

func unmarshalReport(data string) (*ir.Report, error) {
	r, err := ir.ParseReport([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return r, nil
}

// nullablePC maps an absent last PC to SQL NULL.
func nullablePC(pc *uint16) any {
	if pc == nil {
		return nil
	}
	return int64(*pc)
}
