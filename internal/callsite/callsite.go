package callsite

import (
	"fmt"
	"runtime"
)

// Site identifies the code location a diagnostic was raised from.
// The manager treats it as an opaque token: it is attached at post time,
// rendered for output, and never validated. The zero value is legal and
// renders as an unknown location.
type Site struct {
	File     string
	Line     int
	Function string
}

// Here captures the call site skip frames above the caller.
// Here(0) describes the caller itself.
func Here(skip int) Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Site{}
	}
	s := Site{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		s.Function = fn.Name()
	}
	return s
}

// Zero reports whether the site carries no location at all.
func (s Site) Zero() bool {
	return s.File == "" && s.Line == 0 && s.Function == ""
}

func (s Site) String() string {
	if s.Zero() {
		return "<unknown location>"
	}
	if s.Function == "" {
		return fmt.Sprintf("%s:%d", s.File, s.Line)
	}
	return fmt.Sprintf("%s:%d (%s)", s.File, s.Line, s.Function)
}
