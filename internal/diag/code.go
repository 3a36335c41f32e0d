package diag

import "fmt"

// Code identifies a diagnostic condition. Applications define their own
// codes; ID gives stable identity across renames while Name carries the
// symbolic spelling shown to humans. The manager compares codes by ID
// and never interprets them beyond display.
type Code struct {
	ID   uint32
	Name string
}

func (c Code) String() string {
	if c.Name != "" {
		return c.Name
	}
	return fmt.Sprintf("CODE_%d", c.ID)
}

// Serial is the globally unique, monotonically increasing number assigned
// to every stored error. Zero means "not yet assigned".
type Serial uint64
