// Package crashlog receives the per-thread pending-error text the manager
// publishes after every store mutation. A sink is the hand-off point to
// whatever crash-reporting machinery the application runs; the manager
// only guarantees that the text it publishes is always the in-order
// concatenation of the rendered text of the thread's current errors.
package crashlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Sink accepts the full current crash-log text for one thread.
// Publish is called synchronously from the mutating goroutine and must
// tolerate concurrent calls for different threads.
type Sink interface {
	Publish(thread uint64, text string)
}

type nopSink struct{}

func (nopSink) Publish(uint64, string) {}

// Nop is the package-level singleton sink that discards everything.
var Nop Sink = nopSink{}

// Memory keeps the latest published text per thread. Useful for tests and
// for in-process crash handlers that snapshot on demand.
type Memory struct {
	mu    sync.Mutex
	texts map[uint64]string
}

func NewMemory() *Memory {
	return &Memory{texts: make(map[uint64]string)}
}

func (m *Memory) Publish(thread uint64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if text == "" {
		delete(m.texts, thread)
		return
	}
	m.texts[thread] = text
}

// Text returns the latest text published for thread, or "".
func (m *Memory) Text(thread uint64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.texts[thread]
}

// Threads returns the IDs of threads with non-empty text.
func (m *Memory) Threads() []uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]uint64, 0, len(m.texts))
	for id := range m.texts {
		ids = append(ids, id)
	}
	return ids
}

// File persists one log file per thread under a directory, so the text
// survives the process when a crash handler cannot run. Each publish
// writes the whole text through a temp file and an atomic rename; a
// reader never observes a half-written log.
type File struct {
	mu  sync.Mutex
	dir string
}

// NewFile initializes the sink directory, creating it if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create crash-log dir: %w", err)
	}
	return &File{dir: dir}, nil
}

func (f *File) pathFor(thread uint64) string {
	return filepath.Join(f.dir, fmt.Sprintf("thread-%d.log", thread))
}

func (f *File) Publish(thread uint64, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := f.pathFor(thread)
	if text == "" {
		// Nothing pending: remove the file rather than leaving a stale log.
		_ = os.Remove(p)
		return
	}
	tmp, err := os.CreateTemp(f.dir, "tmp-*")
	if err != nil {
		return
	}
	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
	}
}
