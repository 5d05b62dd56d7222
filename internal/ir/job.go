package ir

import "encoding/json"

// Job is a decoded test job. Optional fields are pointers so that presence
// can be told apart from a zero value: only an explicit false disables a
// termination rule, and only a present serial_in_addr enables the input port.
type Job struct {
	Description string `json:"description,omitempty"`

	Init  []InitRecord `json:"init"`
	RWMap [][2]uint16  `json:"rwmap,omitempty"`

	SerialInAddr  *uint16 `json:"serial_in_addr,omitempty"`
	SerialInData  *string `json:"serial_in_data,omitempty"`
	SerialOutAddr *uint16 `json:"serial_out_addr,omitempty"`
	SerialOutFmt  *string `json:"serial_out_fmt,omitempty"`

	ShowCycles *bool   `json:"show_cycles,omitempty"`
	MaxCycles  *uint32 `json:"max_cycles,omitempty"`

	TerminateOnBRK          *bool `json:"terminate_on_brk,omitempty"`
	TerminateOnInfiniteLoop *bool `json:"terminate_on_infinite_loop,omitempty"`
	TerminateOnZeroFetch    *bool `json:"terminate_on_zero_fetch,omitempty"`
	TerminateOnStackFetch   *bool `json:"terminate_on_stack_fetch,omitempty"`
	TerminateOnVectorFetch  *bool `json:"terminate_on_vector_fetch,omitempty"`
	TerminateOnBadWrite     *bool `json:"terminate_on_bad_write,omitempty"`

	SO  []uint32 `json:"so,omitempty"`
	NMI []uint32 `json:"nmi,omitempty"`
	IRQ []uint32 `json:"irq,omitempty"`

	// Unsupported lines. Presence alone is a configuration error.
	RDY json.RawMessage `json:"rdy,omitempty"`
	RES json.RawMessage `json:"res,omitempty"`

	Expect *Expect `json:"expect,omitempty"`
}

// InitRecord loads Data at Base. When Size is set the data repeats (or is
// cut short) to fill exactly Size bytes.
type InitRecord struct {
	Base uint16  `json:"base"`
	Data string  `json:"data"`
	Size *uint32 `json:"size,omitempty"`
}

// Expect lists optional checks on the report of a job. The simulator itself
// ignores it; the test command and harness.Evaluate use it.
type Expect struct {
	TerminationCause *string  `json:"termination_cause,omitempty"`
	NumCycles        *uint32  `json:"num_cycles,omitempty"`
	LastPC           *uint16  `json:"last_pc,omitempty"`
	SerialOutData    *string  `json:"serial_out_data,omitempty"`
	CyclesContain    []string `json:"cycles_contain,omitempty"`
}
