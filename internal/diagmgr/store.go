package diagmgr

import (
	"strings"
	"sync/atomic"

	"klaxon/internal/diag"
)

// threadState is one slot of the manager's keyed thread table: the error
// store, the cached crash-log text, and the active-mark counter for a
// single thread. It is owned exclusively by the goroutine holding the
// Thread handle; cross-thread movement of its contents goes through
// Transport only. The one exception is pending, an atomic mirror of
// len(errs) that PendingByThread may read from any goroutine.
//
// Invariant: errs is ordered by strictly increasing serial, and log
// always holds the concatenation of lines, which itself mirrors errs
// position for position.
type threadState struct {
	id        ThreadID
	errs      []diag.Diagnostic
	lines     []string
	log       strings.Builder
	pending   atomic.Int64
	markCount int
}

// rangeBegin returns the first store position whose serial is >= mark,
// or len(errs) when no stored error is that recent. Append order equals
// serial order within one store, so a backward walk from the tail
// suffices; marks typically claim a range near the tail.
func (st *threadState) rangeBegin(mark diag.Serial) int {
	i := len(st.errs)
	for i > 0 && st.errs[i-1].Serial >= mark {
		i--
	}
	return i
}

// appendError stamps d with a fresh serial, appends it to st's store,
// extends the cached crash-log text and republishes it. Amortized O(1):
// the text lives in a strings.Builder, and Builder.String reuses the
// accumulated buffer rather than copying it. Returns the stored record.
func (m *Manager) appendError(st *threadState, d diag.Diagnostic) diag.Diagnostic {
	d.Kind = diag.KindError
	d.Serial = m.serial.next()
	line := diag.Render(d)
	st.errs = append(st.errs, d)
	st.lines = append(st.lines, line)
	st.log.WriteString(line)
	st.pending.Store(int64(len(st.errs)))
	m.sink.Publish(uint64(st.id), st.log.String())
	return d
}

// eraseRange removes the contiguous positions [begin, end) from st's
// store, rebuilds the cached crash-log text from the survivors' cached
// lines and republishes it. O(survivors); erasure is not a hot path.
func (m *Manager) eraseRange(st *threadState, begin, end int) {
	if begin < 0 {
		begin = 0
	}
	if end > len(st.errs) {
		end = len(st.errs)
	}
	if begin >= end {
		return
	}
	st.errs = append(st.errs[:begin], st.errs[end:]...)
	st.lines = append(st.lines[:begin], st.lines[end:]...)
	st.log.Reset()
	for _, line := range st.lines {
		st.log.WriteString(line)
	}
	st.pending.Store(int64(len(st.errs)))
	m.sink.Publish(uint64(st.id), st.log.String())
}
