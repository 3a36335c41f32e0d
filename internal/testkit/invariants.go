package testkit

import (
	"fmt"

	"klaxon/internal/diag"
)

// CheckSerialOrder runs the store-order invariants on a snapshot of
// stored errors:
// 1) every record carries an assigned serial
// 2) serials are strictly increasing by position
// 3) every record is an error (stores never hold other kinds)
func CheckSerialOrder(errs []diag.Diagnostic) error {
	var prev diag.Serial
	for i, d := range errs {
		if d.Serial == 0 {
			return fmt.Errorf("record %d has no serial", i)
		}
		if d.Serial <= prev {
			return fmt.Errorf("serial not strictly increasing at %d: %d after %d", i, d.Serial, prev)
		}
		if d.Kind != diag.KindError {
			return fmt.Errorf("record %d has kind %s, stores hold errors only", i, d.Kind)
		}
		prev = d.Serial
	}
	return nil
}

// CheckDisjoint verifies that two claimed ranges share no serial.
func CheckDisjoint(a, b []diag.Diagnostic) error {
	seen := make(map[diag.Serial]struct{}, len(a))
	for _, d := range a {
		seen[d.Serial] = struct{}{}
	}
	for _, d := range b {
		if _, ok := seen[d.Serial]; ok {
			return fmt.Errorf("ranges overlap at serial %d", d.Serial)
		}
	}
	return nil
}
