// Package ir holds the data shapes shared by every other package: the job
// description read at start, the report written at the end, and the small
// enumerations that appear in both (termination causes, cycle event types,
// serial output formats).
//
// This package contains type definitions and their encodings only. All other
// internal packages import ir; ir imports nothing internal.
//
// Key format constraints:
//   - Cycle event type tags (2, 3, 5, 6, 7, 15) are part of the report format
//     and must not be renumbered.
//   - Packed cycle events render as exactly seven uppercase hex digits.
//   - Data strings carry a "utf8:" or "base64:" prefix.
//   - All JSON tags use snake_case.
package ir
