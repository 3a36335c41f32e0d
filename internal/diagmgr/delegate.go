package diagmgr

import (
	"sync"

	"klaxon/internal/callsite"
	"klaxon/internal/diag"
)

// Delegate is the application-supplied sink for diagnostics. Dispatch
// happens only on the primary thread, so implementations never see
// concurrent calls from this package. A delegate that posts
// diagnostics from inside an intake method will be reentered and must
// tolerate that. Intake methods must not fail destructively.
type Delegate interface {
	IssueError(diag.Diagnostic)
	IssueWarning(diag.Diagnostic)
	IssueStatus(diag.Diagnostic)
	IssueFatalError(site callsite.Site, msg string)
}

// delegateSlot holds the single, non-owning delegate reference. The
// delegate's teardown path calls clear, which stands in for weak-pointer
// expiry: dispatch after clear is a silent no-op.
type delegateSlot struct {
	mu sync.RWMutex
	d  Delegate
}

func (s *delegateSlot) set(d Delegate) (replaced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	replaced = s.d != nil
	s.d = d
	return replaced
}

// clear removes d only if it is still the active delegate, so a stale
// teardown cannot knock out a successor.
func (s *delegateSlot) clear(d Delegate) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.d != d {
		return false
	}
	s.d = nil
	return true
}

func (s *delegateSlot) get() Delegate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.d
}

// SetDelegate installs d as the active delegate, replacing any previous
// registration unconditionally. An overwrite emits a warning diagnostic.
// Registration is not bound to a thread handle, so the warning goes to
// the incoming delegate's warning intake and to the output stream rather
// than through per-thread routing.
func (m *Manager) SetDelegate(d Delegate) {
	replaced := m.delegate.set(d)
	if !replaced {
		return
	}
	w := diag.NewWarning(codeDelegateReplaced, callsite.Here(1),
		"diagnostic delegate replaced; the previous delegate no longer receives diagnostics")
	if d != nil {
		d.IssueWarning(w)
	}
	m.echo(w)
}

// UnsetDelegate withdraws d if it is still the active delegate. Call it
// from the delegate's own teardown path; afterwards dispatch silently
// does nothing.
func (m *Manager) UnsetDelegate(d Delegate) {
	m.delegate.clear(d)
}
