package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content hashes. The version suffix leaves room for a
// future algorithm change.
const (
	DomainJob    = "w65harness/job/v1"
	DomainReport = "w65harness/report/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator keeps the domain/data boundary unambiguous.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// JobHash identifies a job by the canonical form of its JSON text, so key
// order and whitespace in the source file do not matter.
func JobHash(jobJSON []byte) (string, error) {
	canonical, err := CanonicalizeJSON(jobJSON)
	if err != nil {
		return "", fmt.Errorf("JobHash: %w", err)
	}
	return hashWithDomain(DomainJob, canonical), nil
}

// ReportDigest hashes the report's JSON encoding. Two runs of the same job
// must produce the same digest.
func ReportDigest(r *Report) (string, error) {
	data, err := r.Marshal()
	if err != nil {
		return "", fmt.Errorf("ReportDigest: %w", err)
	}
	return hashWithDomain(DomainReport, data), nil
}
