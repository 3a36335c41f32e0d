package diagmgr

import (
	"sync/atomic"

	"klaxon/internal/diag"
)

// serialAllocator hands out the process-wide serial numbers that give
// stored errors their total order. Lock-free; safe from any goroutine.
// Serials start at 1 and are never reused. Exhaustion is out of contract.
type serialAllocator struct {
	last atomic.Uint64
}

// next allocates a serial strictly greater than every serial returned
// before, visible to all threads.
func (a *serialAllocator) next() diag.Serial {
	return diag.Serial(a.last.Add(1))
}

// peek returns the serial the next call to next would return, without
// allocating it. Marks record this as their watermark, so creating a mark
// never consumes a serial.
func (a *serialAllocator) peek() diag.Serial {
	return diag.Serial(a.last.Load() + 1)
}
