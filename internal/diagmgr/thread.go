package diagmgr

import (
	"klaxon/internal/diag"
)

// ThreadID identifies one attached thread in the manager's keyed table.
type ThreadID uint64

// Thread is the handle a goroutine holds on its slot of the thread table.
// All per-thread operations go through the handle, which keeps
// same-thread access lock-free. A handle must not be shared between
// goroutines.
type Thread struct {
	mgr   *Manager
	state *threadState
}

// Attach registers a new thread with the manager and returns its handle.
// The first thread ever attached becomes the primary thread: the one on
// which delegate dispatch and notice broadcast are safe to perform.
func (m *Manager) Attach() *Thread {
	id := ThreadID(m.nextThread.Add(1))
	st := &threadState{id: id}
	m.threads.Store(id, st)
	m.primary.CompareAndSwap(0, uint64(id))
	return &Thread{mgr: m, state: st}
}

// Detach removes the thread from the table and clears its published
// crash-log text. Pending errors still held in the store are dropped;
// callers that want them elsewhere capture a Transport first.
func (t *Thread) Detach() {
	t.mgr.threads.Delete(t.state.id)
	t.mgr.sink.Publish(uint64(t.state.id), "")
}

// ID returns the thread's identifier in the manager's table.
func (t *Thread) ID() ThreadID {
	return t.state.id
}

// Manager returns the manager this thread is attached to.
func (t *Thread) Manager() *Manager {
	return t.mgr
}

// Primary reports whether this is the designated primary thread.
func (t *Thread) Primary() bool {
	return t.mgr.primary.Load() == uint64(t.state.id)
}

// HasActiveErrorMark reports whether at least one mark is alive on this
// thread. O(1); advisory for callers deciding whether to build expensive
// diagnostics. Posting behavior does not depend on it.
func (t *Thread) HasActiveErrorMark() bool {
	return t.state.markCount > 0
}

// Errors returns a snapshot of the thread's pending errors in store
// order, which is also serial order.
func (t *Thread) Errors() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(t.state.errs))
	copy(out, t.state.errs)
	return out
}

// PendingErrorCount returns the number of errors currently stored on this
// thread.
func (t *Thread) PendingErrorCount() int {
	return len(t.state.errs)
}

// EraseRange removes the stored errors at positions [begin, end) on the
// calling thread. Marks erase their claimed range through Clean; this is
// the general entry for callers managing subranges themselves.
// Out-of-bounds positions are clamped.
func (t *Thread) EraseRange(begin, end int) {
	t.mgr.eraseRange(t.state, begin, end)
}

// AppendError stores d on the calling thread unconditionally, assigning a
// fresh serial and updating the crash log. No delegate, notice or echo is
// involved: this is the bridging entry point worker threads use to
// accumulate errors destined for a Transport, and the splice path itself.
// Returns the stored record with its serial assigned.
func (t *Thread) AppendError(d diag.Diagnostic) diag.Diagnostic {
	return t.mgr.appendError(t.state, d)
}
