// Package diag defines the diagnostic record model shared by the manager
// and its delegates.
//
// # Purpose
//
//   - Provide the data shapes that every diagnostic routed through the
//     manager carries: kind, code, call site, commentary, opaque payload,
//     serial number, quiet flag.
//   - Offer a deterministic one-line rendering used for terminal echo and
//     for the crash-log text, so both views of a record always agree.
//
// # Scope
//
// Package diag performs no storage, dispatch, IO, or thread accounting.
// Those concerns live in internal/diagmgr. Rendering here is deliberately
// plain text; colored output is the caller's concern.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Kind – four-level enum (Status, Warning, Error, Fatal) defined in
//     kind.go. Only errors are ever stored; the rest are transient.
//   - Code – application-defined identifier with a stable numeric value
//     and its string spelling (see code.go).
//   - Site – opaque call-site token (callsite.Site); never validated.
//   - Commentary – human oriented text, already formatted by the caller.
//   - Info – opaque payload the core carries but never interprets.
//   - Serial – assigned exactly once when the record enters a store;
//     establishes a total order over all stored errors in the process.
//   - Quiet – suppresses terminal echo for this record only; delegate
//     dispatch and storage are unaffected.
//
// Records are immutable after posting, except for removal from a store.
// The WithInfo/WithQuiet builders return copies so producers can chain
// them before handing the record to the manager.
package diag
