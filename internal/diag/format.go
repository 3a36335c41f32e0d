package diag

import (
	"fmt"
	"strings"
)

// Render produces the stable single-line representation of a record,
// terminated by a newline. The same text is used for terminal echo and
// for crash-log accumulation, so the two views never disagree.
func Render(d Diagnostic) string {
	var b strings.Builder
	b.WriteString(d.Kind.String())
	b.WriteString(": ")
	b.WriteString(d.Code.String())
	b.WriteString(": ")
	b.WriteString(d.Commentary)
	if !d.Site.Zero() {
		fmt.Fprintf(&b, " [%s]", d.Site)
	}
	b.WriteByte('\n')
	return b.String()
}

// RenderAll concatenates the rendered text of records in slice order,
// the same shape the crash log accumulates.
func RenderAll(ds []Diagnostic) string {
	var b strings.Builder
	for _, d := range ds {
		b.WriteString(Render(d))
	}
	return b.String()
}
