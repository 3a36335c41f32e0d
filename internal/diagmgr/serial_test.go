package diagmgr

import (
	"sync"
	"testing"

	"klaxon/internal/diag"
)

func TestSerialMonotonic(t *testing.T) {
	var a serialAllocator

	if got := a.peek(); got != 1 {
		t.Errorf("first peek = %d, want 1", got)
	}

	var prev diag.Serial
	for i := 0; i < 100; i++ {
		s := a.next()
		if s <= prev {
			t.Fatalf("serial %d not greater than previous %d", s, prev)
		}
		prev = s
	}
}

func TestSerialPeekDoesNotAllocate(t *testing.T) {
	var a serialAllocator

	p1 := a.peek()
	p2 := a.peek()
	if p1 != p2 {
		t.Errorf("consecutive peeks disagree: %d vs %d", p1, p2)
	}
	if got := a.next(); got != p1 {
		t.Errorf("next = %d, want peeked %d", got, p1)
	}
}

func TestSerialConcurrentUnique(t *testing.T) {
	var a serialAllocator

	const goroutines = 16
	const perGoroutine = 1000

	results := make([][]diag.Serial, goroutines)
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			out := make([]diag.Serial, 0, perGoroutine)
			for i := 0; i < perGoroutine; i++ {
				out = append(out, a.next())
			}
			results[g] = out
		}(g)
	}
	wg.Wait()

	seen := make(map[diag.Serial]struct{}, goroutines*perGoroutine)
	for g, out := range results {
		var prev diag.Serial
		for _, s := range out {
			if s <= prev {
				t.Fatalf("goroutine %d saw non-increasing serial %d after %d", g, s, prev)
			}
			prev = s
			if _, dup := seen[s]; dup {
				t.Fatalf("serial %d handed out twice", s)
			}
			seen[s] = struct{}{}
		}
	}
	if len(seen) != goroutines*perGoroutine {
		t.Errorf("expected %d distinct serials, got %d", goroutines*perGoroutine, len(seen))
	}
}
