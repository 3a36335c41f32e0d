package crashlog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemorySink(t *testing.T) {
	m := NewMemory()

	m.Publish(1, "ERROR: X: boom\n")
	if got := m.Text(1); got != "ERROR: X: boom\n" {
		t.Errorf("Text(1) = %q", got)
	}

	m.Publish(2, "ERROR: Y: crash\n")
	if len(m.Threads()) != 2 {
		t.Errorf("Threads = %v, want 2 entries", m.Threads())
	}

	// Empty text means the thread has nothing pending anymore.
	m.Publish(1, "")
	if got := m.Text(1); got != "" {
		t.Errorf("Text(1) after clear = %q", got)
	}
	if len(m.Threads()) != 1 {
		t.Errorf("Threads after clear = %v, want 1 entry", m.Threads())
	}
}

func TestFileSinkWritesAndRemoves(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}

	f.Publish(7, "ERROR: X: boom\n")
	path := filepath.Join(dir, "logs", "thread-7.log")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading published log: %v", err)
	}
	if string(data) != "ERROR: X: boom\n" {
		t.Errorf("log content = %q", data)
	}

	// Re-publish replaces the whole text.
	f.Publish(7, "ERROR: X: boom\nERROR: Y: again\n")
	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading republished log: %v", err)
	}
	if string(data) != "ERROR: X: boom\nERROR: Y: again\n" {
		t.Errorf("republished content = %q", data)
	}

	// Empty text removes the stale log file.
	f.Publish(7, "")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected log file removed, stat err = %v", err)
	}
}

func TestNopSink(t *testing.T) {
	// Must simply not blow up.
	Nop.Publish(1, "anything")
}
