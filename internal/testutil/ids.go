package testutil

import "fmt"

// FixedIDGenerator hands out predictable run IDs.
//
// Run IDs are normally UUIDv7 values, which differ on every call. Tests that
// compare stored rows against golden output use this instead so the same
// sequence of runs always gets the same IDs.
//
// Not safe for concurrent use.
type FixedIDGenerator struct {
	prefix string
	n      int
}

// NewFixedIDGenerator creates a generator producing "<prefix>-0001",
// "<prefix>-0002" and so on. An empty prefix becomes "run".
func NewFixedIDGenerator(prefix string) *FixedIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &FixedIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *FixedIDGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
