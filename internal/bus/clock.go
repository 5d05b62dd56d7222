package bus

// ResetCycles is the number of reset cycles that happen before bookkeeping
// starts. The cycle counter begins here.
const ResetCycles = 5

// Clock counts bookkept bus cycles.
//
// Unlike a wall clock it only advances when the Bus bookkeeps a transaction,
// so the same job always yields the same count. Not safe for concurrent use;
// each Bus owns one.
type Clock struct {
	n uint32
}

// NewClock creates a clock at ResetCycles.
func NewClock() *Clock {
	return &Clock{n: ResetCycles}
}

// Tick advances the clock and returns the new count.
func (c *Clock) Tick() uint32 {
	c.n++
	return c.n
}

// Current returns the count without advancing.
func (c *Clock) Current() uint32 {
	return c.n
}
