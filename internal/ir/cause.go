package ir

// Cause is the reason a run stopped early. The zero value means no rule
// fired, which the report calls "limit".
type Cause uint8

const (
	CauseNone Cause = iota
	CauseBRK
	CauseInfiniteLoop
	CauseZeroFetch
	CauseStackFetch
	CauseVectorFetch
	CauseBadWrite
)

var causeNames = [...]string{
	CauseNone:         "limit",
	CauseBRK:          "brk",
	CauseInfiniteLoop: "infinite_loop",
	CauseZeroFetch:    "zero_fetch",
	CauseStackFetch:   "stack_fetch",
	CauseVectorFetch:  "vector_fetch",
	CauseBadWrite:     "bad_write",
}

// String returns the report spelling of the cause.
func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// ParseCause is the inverse of Cause.String. "unknown" does not parse.
func ParseCause(s string) (Cause, bool) {
	for i, name := range causeNames {
		if name == s {
			return Cause(i), true
		}
	}
	return 0, false
}
