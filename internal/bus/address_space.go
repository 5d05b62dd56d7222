package bus

import "fmt"

// MemorySize is the number of addressable bytes.
const MemorySize = 1 << 16

// Range is an inclusive address range.
type Range struct {
	Low, High uint16
}

// Contains reports whether addr lies in [Low, High].
func (r Range) Contains(addr uint16) bool {
	return addr >= r.Low && addr <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("$%04X-$%04X", r.Low, r.High)
}

// DefaultRanges is the writable map used when a job gives none: zero page
// and stack.
func DefaultRanges() []Range {
	return []Range{{0x0000, 0x01FF}}
}

// AddressSpace is the 64 KiB memory image plus its writable map.
// Ranges may overlap; a write is permitted iff any range contains it.
type AddressSpace struct {
	mem    [MemorySize]byte
	ranges []Range
}

// NewAddressSpace returns a zeroed memory whose writable map is ranges.
// An empty slice leaves nothing writable.
func NewAddressSpace(ranges []Range) *AddressSpace {
	return &AddressSpace{ranges: append([]Range(nil), ranges...)}
}

// Writable reports whether a bus write to addr may store.
func (a *AddressSpace) Writable(addr uint16) bool {
	for _, r := range a.ranges {
		if r.Contains(addr) {
			return true
		}
	}
	return false
}

// Ranges returns a copy of the writable map.
func (a *AddressSpace) Ranges() []Range {
	return append([]Range(nil), a.ranges...)
}

// Peek reads a byte with no side effects.
func (a *AddressSpace) Peek(addr uint16) byte {
	return a.mem[addr]
}

// Poke stores a byte regardless of the writable map. Used for setup.
func (a *AddressSpace) Poke(addr uint16, v byte) {
	a.mem[addr] = v
}

// Store writes v if addr is writable and reports whether it did.
func (a *AddressSpace) Store(addr uint16, v byte) bool {
	if !a.Writable(addr) {
		return false
	}
	a.mem[addr] = v
	return true
}

// Load copies data to memory starting at base. If size is non-negative the
// data is repeated (or cut short) to fill exactly size bytes; otherwise it is
// written once. Addresses wrap at $FFFF. data must not be empty when size is
// positive.
func (a *AddressSpace) Load(base uint16, data []byte, size int) error {
	if len(data) == 0 {
		if size == 0 {
			return nil
		}
		return fmt.Errorf("load at $%04X: empty data", base)
	}
	if size < 0 {
		size = len(data)
	}
	addr := base
	for i := 0; i < size; i++ {
		a.mem[addr] = data[i%len(data)]
		addr++
	}
	return nil
}
