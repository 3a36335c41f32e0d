package diagmgr

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"

	"klaxon/internal/crashlog"
	"klaxon/internal/diag"
	"klaxon/internal/notice"
)

// Codes the manager posts on its own behalf.
var (
	codeDelegateReplaced = diag.Code{ID: 1, Name: "KLX_DELEGATE_REPLACED"}
	codeFatal            = diag.Code{ID: 2, Name: "KLX_FATAL"}
)

// Terminal tint per diagnostic kind. color honors NO_COLOR and non-tty
// output on its own.
var (
	statusEcho  = color.New(color.FgCyan)
	warningEcho = color.New(color.FgYellow)
	errorEcho   = color.New(color.FgRed)
	fatalEcho   = color.New(color.FgRed, color.Bold)
)

// Manager owns the thread table, the serial allocator, the delegate slot
// and the posting pipeline. Construct isolated instances with New, or use
// the process-wide Default.
type Manager struct {
	serial     serialAllocator
	threads    sync.Map // ThreadID → *threadState
	nextThread atomic.Uint64
	primary    atomic.Uint64 // ThreadID of the primary thread; 0 = none yet
	quiet      atomic.Bool
	delegate   delegateSlot
	errNotices *notice.Bus[diag.Diagnostic]

	sink  crashlog.Sink
	outMu sync.Mutex
	out   io.Writer
	exit  func(int)
}

// Option configures a Manager at construction time.
type Option func(*Manager)

// WithOutput redirects the diagnostic output stream (default os.Stderr).
func WithOutput(w io.Writer) Option {
	return func(m *Manager) { m.out = w }
}

// WithCrashLogSink sets the sink receiving per-thread crash-log text
// (default crashlog.Nop).
func WithCrashLogSink(s crashlog.Sink) Option {
	return func(m *Manager) { m.sink = s }
}

// WithExit overrides the process-termination function fatal posts invoke
// (default os.Exit). Tests inject a recorder here.
func WithExit(fn func(int)) Option {
	return func(m *Manager) { m.exit = fn }
}

// New constructs an isolated manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		errNotices: notice.NewBus[diag.Diagnostic](),
		sink:       crashlog.Nop,
		out:        os.Stderr,
		exit:       os.Exit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var (
	defaultOnce sync.Once
	defaultMgr  *Manager
)

// Default returns the process-wide manager, lazily constructed on first
// use. There is no teardown: the instance lives for the process lifetime.
func Default() *Manager {
	defaultOnce.Do(func() {
		defaultMgr = New()
	})
	return defaultMgr
}

// SetQuiet toggles terminal echo process-wide. Delegate dispatch, notice
// broadcast and storage are unaffected.
func (m *Manager) SetQuiet(quiet bool) {
	m.quiet.Store(quiet)
}

// Quiet reports the current process-wide echo suppression.
func (m *Manager) Quiet() bool {
	return m.quiet.Load()
}

// ErrorNotices returns the bus on which the manager announces every error
// stored from the primary thread. Fire-and-forget; observers subscribe
// and unsubscribe freely.
func (m *Manager) ErrorNotices() *notice.Bus[diag.Diagnostic] {
	return m.errNotices
}

// PendingByThread reports the number of stored errors per attached
// thread, read from each store's atomic counter so stores mutating
// concurrently on their own threads stay untouched. Counts for threads
// other than the caller's are snapshots that may be stale by the time
// they are read; intended for coarse introspection, not coordination.
func (m *Manager) PendingByThread() map[ThreadID]int {
	out := make(map[ThreadID]int)
	m.threads.Range(func(key, value any) bool {
		out[key.(ThreadID)] = int(value.(*threadState).pending.Load())
		return true
	})
	return out
}

// echo writes the rendered record to the diagnostic output stream, tinted
// by kind. Quiet records and process-wide quiet mode suppress everything
// except fatals.
func (m *Manager) echo(d diag.Diagnostic) {
	if d.Kind != diag.KindFatal && (d.Quiet || m.quiet.Load()) {
		return
	}
	var c *color.Color
	switch d.Kind {
	case diag.KindWarning:
		c = warningEcho
	case diag.KindError:
		c = errorEcho
	case diag.KindFatal:
		c = fatalEcho
	default:
		c = statusEcho
	}
	m.outMu.Lock()
	defer m.outMu.Unlock()
	_, _ = c.Fprint(m.out, diag.Render(d))
}
