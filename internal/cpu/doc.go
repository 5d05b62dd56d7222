// Package cpu is a W65C02S instruction-set core that runs against a bus.
//
// Every machine cycle is one bus transaction, including the dummy reads the
// real part performs, so a bus that counts transactions counts cycles. The
// core knows nothing about memory maps or termination: when a bus method
// returns an error the core stops issuing transactions and Step returns
// that error. Further calls to Step return it again until Reset.
//
// External pins are driven through SetOverflow, SetNMI and SetIRQ, which
// the bus may call in the middle of an instruction.
package cpu
