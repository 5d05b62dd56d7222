package cpu

type flag byte

const (
	flagN flag = 1 << 7 // N | Negative
	flagV flag = 1 << 6 // V | Overflow
	flagU flag = 1 << 5 // - | Unused, reads as 1
	flagB flag = 1 << 4 // B | Break (stack copy only)
	flagD flag = 1 << 3 // D | Decimal mode
	flagI flag = 1 << 2 // I | Interrupt disable
	flagZ flag = 1 << 1 // Z | Zero
	flagC flag = 1 << 0 // C | Carry
)

func (f *flag) set(cond bool, bit flag) {
	if cond {
		*f |= bit
	} else {
		*f &^= bit
	}
}

func (f flag) has(bit flag) bool {
	return f&bit != 0
}

func (f flag) String() string {
	isset := func(bit flag, char byte) byte {
		if f&bit != 0 {
			return char
		}
		return '-'
	}
	return string([]byte{
		isset(flagN, 'N'),
		isset(flagV, 'V'),
		isset(flagD, 'D'),
		isset(flagI, 'I'),
		isset(flagZ, 'Z'),
		isset(flagC, 'C'),
	})
}
