package diag

import (
	"klaxon/internal/callsite"
)

type Diagnostic struct {
	Kind       Kind
	Code       Code
	Site       callsite.Site
	Commentary string
	Info       any
	Serial     Serial
	Quiet      bool
}

func New(kind Kind, code Code, site callsite.Site, commentary string) Diagnostic {
	return Diagnostic{
		Kind:       kind,
		Code:       code,
		Site:       site,
		Commentary: commentary,
	}
}

// NewError is a shortcut for KindError records.
func NewError(code Code, site callsite.Site, commentary string) Diagnostic {
	return New(KindError, code, site, commentary)
}

// NewWarning is a shortcut for KindWarning records.
func NewWarning(code Code, site callsite.Site, commentary string) Diagnostic {
	return New(KindWarning, code, site, commentary)
}

// NewStatus is a shortcut for KindStatus records.
func NewStatus(code Code, site callsite.Site, commentary string) Diagnostic {
	return New(KindStatus, code, site, commentary)
}

// WithInfo attaches an opaque payload. The core carries it untouched.
func (d Diagnostic) WithInfo(info any) Diagnostic {
	d.Info = info
	return d
}

// WithQuiet marks the record as quiet: terminal echo is suppressed for
// this record, delegate dispatch and storage are not.
func (d Diagnostic) WithQuiet(quiet bool) Diagnostic {
	d.Quiet = quiet
	return d
}
