// Package diagmgr is the central authority every diagnostic in the
// process passes through.
//
// # Purpose
//
//   - Let deeply nested code raise structured errors, warnings, status
//     messages and fatal conditions without threading error returns
//     through every call frame.
//   - Let a caller higher up the stack scope a region of code with a Mark
//     and later ask "did anything go wrong in here?" without seeing
//     errors raised concurrently on other threads.
//   - Route diagnostics to an application-supplied Delegate and announce
//     new errors on a notice bus, both only from the primary thread.
//
// # Thread model
//
// The manager keeps an explicit keyed table: ThreadID → per-thread state.
// A goroutine joins by calling Manager.Attach, which returns a Thread
// handle; the first attached thread becomes the primary thread. The
// handle, its error store and its mark counter are thread-exclusive:
// same-thread access needs no locking, and no other goroutine may touch
// them directly. Detach is the explicit per-thread cleanup step.
//
// The only unpartitioned shared state on the hot path is the serial
// allocator, a single lock-free counter that gives every stored error a
// totally ordered serial number.
//
// # Posting
//
// Errors posted on the primary thread are stored, appended to the crash
// log, dispatched to the delegate (or echoed when none is registered) and
// announced on the notice bus. Errors posted on any other thread degrade
// to a line on the diagnostic output stream: no record is retained there.
// Worker goroutines that need their errors to survive use AppendError to
// accumulate records locally and a Transport to splice them into another
// thread's store, where fresh serials keep the mark contract intact.
//
// Warnings and status messages are never stored. Fatal errors are
// reported best-effort and then terminate the process.
package diagmgr
