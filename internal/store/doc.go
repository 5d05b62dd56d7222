// Package store records runs in SQLite so they can be listed, traced and
// replayed later.
//
// Each run row holds the canonical job JSON and its hash, the report JSON
// and its digest, and the summary fields (cause, cycle count, last PC). The
// recorded cycle trace goes to cycle_events, one row per event.
//
// # Ordering
//
// Runs carry a logical seq assigned at write time. Every query that returns
// several rows orders by seq ASC, id ASC COLLATE BINARY, never by wall
// time, so listings are identical across machines.
//
// # Connection
//
// The pool holds one connection in WAL mode with foreign keys on and a five
// second busy timeout. Schema changes after the first release are numbered
// migrations tracked in PRAGMA user_version.
package store
