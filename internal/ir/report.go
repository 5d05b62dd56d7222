package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Report is the outcome of one run. Field order is the output key order.
type Report struct {
	LastPC           *uint16  `json:"last_pc,omitempty"`
	NumCycles        uint32   `json:"num_cycles"`
	TerminationCause string   `json:"termination_cause"`
	Cycles           []string `json:"cycles,omitempty"`
	SerialOutData    *string  `json:"serial_out_data,omitempty"`
}

// Marshal encodes the report as two-space indented JSON without HTML
// escaping, terminated by a newline.
func (r *Report) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseReport decodes a report written by Marshal.
func ParseReport(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}

// Events decodes the packed cycle trace.
func (r *Report) Events() ([]CycleEvent, error) {
	events := make([]CycleEvent, 0, len(r.Cycles))
	for i, s := range r.Cycles {
		e, err := ParseCycleEvent(s)
		if err != nil {
			return nil, fmt.Errorf("cycles[%d]: %w", i, err)
		}
		events = append(events, e)
	}
	return events, nil
}
