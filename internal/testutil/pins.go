package testutil

import "fmt"

// PinEvent is one call recorded by RecordingPins.
type PinEvent struct {
	Pin   string // "so", "nmi" or "irq"
	Level bool   // always true for "so"
}

func (e PinEvent) String() string {
	return fmt.Sprintf("%s=%t", e.Pin, e.Level)
}

// RecordingPins implements bus.Pins and remembers every call in order.
//
// It stands in for the CPU core in bus unit tests, where the only thing that
// matters is which pin changes the bus drove and when.
type RecordingPins struct {
	Events []PinEvent
}

// SetOverflow records an overflow strobe.
func (p *RecordingPins) SetOverflow() {
	p.Events = append(p.Events, PinEvent{Pin: "so", Level: true})
}

// SetNMI records an NMI level change.
func (p *RecordingPins) SetNMI(level bool) {
	p.Events = append(p.Events, PinEvent{Pin: "nmi", Level: level})
}

// SetIRQ records an IRQ level change.
func (p *RecordingPins) SetIRQ(level bool) {
	p.Events = append(p.Events, PinEvent{Pin: "irq", Level: level})
}

// Overflows counts overflow strobes.
func (p *RecordingPins) Overflows() int {
	n := 0
	for _, e := range p.Events {
		if e.Pin == "so" {
			n++
		}
	}
	return n
}

// Strings renders the events for compact assertions.
func (p *RecordingPins) Strings() []string {
	out := make([]string, len(p.Events))
	for i, e := range p.Events {
		out[i] = e.String()
	}
	return out
}
