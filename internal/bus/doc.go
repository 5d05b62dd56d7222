// Package bus implements the simulated system bus a CPU core runs against
// during a conformance job.
//
// Every transaction the core issues (opcode fetch, data read, locked
// read/write, vector pull, normal write) goes through a Bus. The Bus routes
// the access to memory or a serial port, checks write permissions, records
// the cycle trace, evaluates the termination rules and applies scheduled pin
// changes at exact cycle boundaries.
//
// ARCHITECTURE:
//
// One Bus per run. All run state (memory, serial FIFOs, flip schedule,
// trace, counters, termination status) lives in the Bus value, so separate
// runs can proceed in parallel on separate goroutines. A single Bus is not
// safe for concurrent use.
//
// Termination:
// A rule that fires returns a *Halt error from the bus method that tripped
// it. The core must stop issuing transactions and hand the error back to the
// driver loop. Once halted, every further bus call returns the same *Halt,
// so a run has exactly one cause.
//
// Bookkeeping starts with the first vector pull. Before that (the reset
// sequence) transactions are served but not counted, traced or checked.
// The cycle counter starts at 5 to account for the five uncounted reset
// cycles.
package bus
