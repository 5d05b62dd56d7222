package ir

// Version constants for the job/report formats and the harness.
const (
	// FormatVersion is the job and report format version.
	FormatVersion = "1"

	// HarnessVersion is the w65harness version.
	HarnessVersion = "0.1.0"
)
