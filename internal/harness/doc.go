// Package harness loads conformance jobs, runs them on a fresh bus and CPU,
// and produces the report.
//
// A run is self-contained: Run builds the address space, serial ports, flip
// schedule and termination policy from the job, resets the core, then steps
// it until the cycle counter reaches the cap or the bus halts it. Nothing is
// shared between runs, so callers may run jobs concurrently.
//
// Jobs are validated in two layers before anything runs. The embedded CUE
// schema (job.cue) checks shape and integer ranges; Validate then checks
// what the schema cannot express (data prefixes, empty init data, unsupported
// lines, flip widths). Either failure is a *ConfigError and no report is
// produced.
//
// Golden reports live in testdata/golden and are compared with goldie. To
// regenerate them run:
//
//	go test ./internal/harness -update
package harness
