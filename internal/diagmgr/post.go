package diagmgr

import (
	"klaxon/internal/callsite"
	"klaxon/internal/diag"
)

// PostError routes a recoverable error through the pipeline.
//
// On the primary thread the record is stored on the calling thread with a
// fresh serial, the crash log is updated, the delegate receives it when
// one is registered (otherwise it is echoed, honoring quiet), and an
// error notice is broadcast.
//
// On any other thread the record is rendered straight to the diagnostic
// output stream and then forgotten; delegate dispatch and notice
// broadcast never happen off the primary thread. Workers that need their
// errors kept use AppendError plus a Transport instead.
func (t *Thread) PostError(code diag.Code, site callsite.Site, commentary string, info any, quiet bool) {
	d := diag.NewError(code, site, commentary).WithInfo(info).WithQuiet(quiet)
	m := t.mgr
	if !t.Primary() {
		m.echo(d)
		return
	}
	d = m.appendError(t.state, d)
	if del := m.delegate.get(); del != nil {
		del.IssueError(d)
	} else {
		m.echo(d)
	}
	m.errNotices.Publish(d)
}

// PostWarning routes a warning: never stored, dispatched to the delegate
// on the primary thread, echoed otherwise. Quiet suppresses echo only.
func (t *Thread) PostWarning(code diag.Code, site callsite.Site, commentary string, info any, quiet bool) {
	t.postTransient(diag.NewWarning(code, site, commentary).WithInfo(info).WithQuiet(quiet))
}

// PostStatus routes a status message with the same transient semantics as
// PostWarning.
func (t *Thread) PostStatus(code diag.Code, site callsite.Site, commentary string, info any, quiet bool) {
	t.postTransient(diag.NewStatus(code, site, commentary).WithInfo(info).WithQuiet(quiet))
}

func (t *Thread) postTransient(d diag.Diagnostic) {
	m := t.mgr
	if !t.Primary() {
		m.echo(d)
		return
	}
	del := m.delegate.get()
	if del == nil {
		m.echo(d)
		return
	}
	switch d.Kind {
	case diag.KindWarning:
		del.IssueWarning(d)
	default:
		del.IssueStatus(d)
	}
}

// PostFatal reports an unrecoverable condition and terminates the
// process. The delegate's fatal intake, when registered, gets the exact
// site and message as a final chance to log; otherwise the record is
// written to the output stream (fatals ignore quiet). No record is
// appended to any store. Handled locally on every thread; there is no
// primary/non-primary split for fatals.
func (t *Thread) PostFatal(site callsite.Site, msg string) {
	t.mgr.postFatal(site, msg)
}

func (m *Manager) postFatal(site callsite.Site, msg string) {
	if del := m.delegate.get(); del != nil {
		del.IssueFatalError(site, msg)
	} else {
		m.echo(diag.New(diag.KindFatal, codeFatal, site, msg))
	}
	m.exit(1)
}
