package diagmgr

import (
	"fmt"
	"strings"
	"testing"

	"klaxon/internal/callsite"
	"klaxon/internal/diag"
)

func TestRangeBegin(t *testing.T) {
	env := newTestEnv()
	th := env.mgr.Attach()
	st := th.state

	if got := st.rangeBegin(1); got != 0 {
		t.Errorf("rangeBegin on empty store = %d, want 0", got)
	}

	postN(th, 4, "e")
	serials := make([]diag.Serial, 0, 4)
	for _, d := range st.errs {
		serials = append(serials, d.Serial)
	}

	// Watermark at each stored serial lands exactly on its position.
	for i, s := range serials {
		if got := st.rangeBegin(s); got != i {
			t.Errorf("rangeBegin(%d) = %d, want %d", s, got, i)
		}
	}
	// Older than everything claims the whole store; newer claims nothing.
	if got := st.rangeBegin(serials[0] - 1); got != 0 {
		t.Errorf("rangeBegin(pre-first) = %d, want 0", got)
	}
	if got := st.rangeBegin(serials[3] + 1); got != 4 {
		t.Errorf("rangeBegin(post-last) = %d, want 4", got)
	}
}

func TestEraseRangeClamps(t *testing.T) {
	env := newTestEnv()
	th := env.mgr.Attach()
	postN(th, 3, "e")

	// Degenerate and out-of-bounds ranges are harmless.
	th.EraseRange(2, 2)
	th.EraseRange(5, 9)
	th.EraseRange(2, 1)
	if th.PendingErrorCount() != 3 {
		t.Errorf("degenerate erases changed the store: %d left", th.PendingErrorCount())
	}

	th.EraseRange(-4, 99)
	if th.PendingErrorCount() != 0 {
		t.Errorf("clamped full erase left %d errors", th.PendingErrorCount())
	}
}

func TestEraseMiddleKeepsOrder(t *testing.T) {
	env := newTestEnv()
	th := env.mgr.Attach()
	postN(th, 5, "e")
	before := th.Errors()

	th.EraseRange(1, 3)

	after := th.Errors()
	if len(after) != 3 {
		t.Fatalf("store holds %d errors, want 3", len(after))
	}
	want := []diag.Serial{before[0].Serial, before[3].Serial, before[4].Serial}
	for i, d := range after {
		if d.Serial != want[i] {
			t.Errorf("survivor %d has serial %d, want %d", i, d.Serial, want[i])
		}
	}
	if got := env.sink.Text(uint64(th.ID())); got != diag.RenderAll(after) {
		t.Errorf("crash log out of step after mid erase: %q", got)
	}
}

func TestCrashLogKeepsUpWithBulkAppends(t *testing.T) {
	env := newTestEnv()
	th := env.mgr.Attach()

	// The cached text grows in place; the published view must match the
	// store exactly however many appends pile up.
	const n = 2000
	for i := 0; i < n; i++ {
		th.AppendError(diag.NewError(codeBoom, callsite.Site{}, fmt.Sprintf("bulk %d", i)))
	}
	got := env.sink.Text(uint64(th.ID()))
	if got != diag.RenderAll(th.Errors()) {
		t.Fatal("crash log diverged from store after bulk appends")
	}
	if count := strings.Count(got, "\n"); count != n {
		t.Errorf("crash log holds %d lines, want %d", count, n)
	}

	// Appends after an erase keep extending the rebuilt text.
	th.EraseRange(100, n)
	th.AppendError(diag.NewError(codeBoom, callsite.Site{}, "after erase"))
	got = env.sink.Text(uint64(th.ID()))
	if got != diag.RenderAll(th.Errors()) {
		t.Error("crash log diverged from store after erase and append")
	}
	if !strings.HasSuffix(got, diag.Render(th.Errors()[100])) {
		t.Error("latest append missing from the crash log tail")
	}
}

func TestAppendAssignsFreshSerial(t *testing.T) {
	env := newTestEnv()
	th := env.mgr.Attach()

	// Whatever serial a caller smuggles in is replaced on append.
	d := diag.NewError(codeBoom, callsite.Site{}, "x")
	d.Serial = 9999
	stored := th.AppendError(d)
	if stored.Serial == 9999 {
		t.Error("append kept a caller-supplied serial")
	}
	if stored.Serial == 0 {
		t.Error("append left the serial unassigned")
	}
}
