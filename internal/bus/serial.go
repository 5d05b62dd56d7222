package bus

// MaxSerialOut bounds the output FIFO. Writes beyond it are dropped.
const MaxSerialOut = 131072

// SerialIn is a memory-mapped input port backed by a fixed byte queue.
type SerialIn struct {
	addr uint16
	data []byte
}

// NewSerialIn maps an input port at addr preloaded with data.
func NewSerialIn(addr uint16, data []byte) *SerialIn {
	return &SerialIn{addr: addr, data: append([]byte(nil), data...)}
}

// Addr returns the mapped address.
func (s *SerialIn) Addr() uint16 { return s.addr }

// Pop dequeues the next byte. ok is false when the queue is empty.
func (s *SerialIn) Pop() (v byte, ok bool) {
	if len(s.data) == 0 {
		return 0, false
	}
	v, s.data = s.data[0], s.data[1:]
	return v, true
}

// Remaining returns the number of unread bytes.
func (s *SerialIn) Remaining() int { return len(s.data) }

// SerialOut is a memory-mapped output port that captures written bytes.
type SerialOut struct {
	addr  uint16
	limit int
	data  []byte
}

// NewSerialOut maps an output port at addr with the standard bound.
func NewSerialOut(addr uint16) *SerialOut {
	return &SerialOut{addr: addr, limit: MaxSerialOut}
}

// Addr returns the mapped address.
func (s *SerialOut) Addr() uint16 { return s.addr }

// Push appends v and reports false (dropping v) if the FIFO is full.
func (s *SerialOut) Push(v byte) bool {
	if len(s.data) >= s.limit {
		return false
	}
	s.data = append(s.data, v)
	return true
}

// Bytes returns the captured output in write order.
func (s *SerialOut) Bytes() []byte {
	return append([]byte(nil), s.data...)
}

// Len returns the number of captured bytes.
func (s *SerialOut) Len() int { return len(s.data) }
