package bus

import (
	"fmt"
	"sort"
)

// MaxFlipCycle is the largest cycle a flip can name (24 bits).
const MaxFlipCycle = 1<<24 - 1

// Pin identifies an externally driven CPU input.
type Pin uint8

const (
	PinOverflow Pin = 1 // SO: sets V on any flip
	PinNMI      Pin = 2
	PinIRQ      Pin = 3
)

func (p Pin) String() string {
	switch p {
	case PinOverflow:
		return "so"
	case PinNMI:
		return "nmi"
	case PinIRQ:
		return "irq"
	}
	return fmt.Sprintf("pin(%d)", uint8(p))
}

// Flip is a scheduled pin change. It fires once the cycle counter reaches
// Cycle.
type Flip struct {
	Cycle uint32
	Pin   Pin
	State bool
}

// Schedule is the ordered queue of pending flips.
//
// Flips are ordered by cycle. Equal cycles keep insertion order: overflow
// before NMI before IRQ, and within one pin by sorted position.
type Schedule struct {
	flips []Flip
}

// NewSchedule builds a schedule from per-pin cycle lists. Each list is sorted
// ascending and assigned alternating states starting with true (asserted).
// Cycles wider than 24 bits are rejected.
func NewSchedule(so, nmi, irq []uint32) (*Schedule, error) {
	s := &Schedule{}
	for _, l := range []struct {
		pin    Pin
		cycles []uint32
	}{
		{PinOverflow, so},
		{PinNMI, nmi},
		{PinIRQ, irq},
	} {
		if err := s.add(l.pin, l.cycles); err != nil {
			return nil, err
		}
	}
	sort.SliceStable(s.flips, func(i, j int) bool {
		return s.flips[i].Cycle < s.flips[j].Cycle
	})
	return s, nil
}

func (s *Schedule) add(pin Pin, cycles []uint32) error {
	sorted := append([]uint32(nil), cycles...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	state := false
	for _, c := range sorted {
		if c > MaxFlipCycle {
			return fmt.Errorf("%s flip at cycle %d exceeds 24-bit limit", pin, c)
		}
		state = !state
		s.flips = append(s.flips, Flip{Cycle: c, Pin: pin, State: state})
	}
	return nil
}

// Due removes and returns every flip with Cycle <= now, in order.
func (s *Schedule) Due(now uint32) []Flip {
	n := 0
	for n < len(s.flips) && s.flips[n].Cycle <= now {
		n++
	}
	if n == 0 {
		return nil
	}
	due := s.flips[:n:n]
	s.flips = s.flips[n:]
	return due
}

// Pending returns the flips not yet applied.
func (s *Schedule) Pending() []Flip {
	return append([]Flip(nil), s.flips...)
}

// Len returns the number of pending flips.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.flips)
}
