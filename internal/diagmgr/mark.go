package diagmgr

import (
	"klaxon/internal/diag"
)

// Mark claims the errors posted on its owning thread during its lifetime.
// Creation records the serial the allocator would hand out next, without
// allocating one, so the claimed range is exactly the errors stored on
// this thread from that point on. The range is read-fresh: it grows as
// new errors arrive and shrinks when something erases entries; Query
// always reflects the store's current contents.
//
// Marks observe, they do not consume. Release never erases anything;
// erasure is the explicit Clean call. Marks may nest and overlap freely
// on one thread: overlapping marks each see the overlapping errors.
type Mark struct {
	t           *Thread
	startSerial diag.Serial
	released    bool
}

// Mark creates a new mark on this thread and increments its active-mark
// counter. Pair with Release on every exit path:
//
//	mk := th.Mark()
//	defer mk.Release()
func (t *Thread) Mark() *Mark {
	t.state.markCount++
	return &Mark{t: t, startSerial: t.mgr.serial.peek()}
}

// Query returns the currently claimed errors in post order. A mark with
// nothing posted since its creation returns an empty slice.
func (mk *Mark) Query() []diag.Diagnostic {
	st := mk.t.state
	begin := st.rangeBegin(mk.startSerial)
	out := make([]diag.Diagnostic, len(st.errs)-begin)
	copy(out, st.errs[begin:])
	return out
}

// IsClean reports whether the claimed range is empty.
func (mk *Mark) IsClean() bool {
	st := mk.t.state
	return st.rangeBegin(mk.startSerial) == len(st.errs)
}

// Clean erases the claimed range from the thread's store, leaving it as
// if those errors had never been posted. Crash-log text follows.
func (mk *Mark) Clean() {
	st := mk.t.state
	mk.t.mgr.eraseRange(st, st.rangeBegin(mk.startSerial), len(st.errs))
}

// Release decrements the thread's active-mark counter. Idempotent: only
// the first call counts. When the counter reaches zero the thread is
// unmarked again. Claimed errors stay in the store.
func (mk *Mark) Release() {
	if mk.released {
		return
	}
	mk.released = true
	mk.t.state.markCount--
}
