package diagmgr

import (
	"klaxon/internal/callsite"
	"klaxon/internal/diag"
)

// Helpers bind a thread handle, diagnostic code and call site once, so
// code that posts repeatedly from the same place stays terse. They are
// pure wrappers over the posting pipeline and add no semantics.

// ErrorHelper posts errors for one (code, site) pair.
type ErrorHelper struct {
	t    *Thread
	code diag.Code
	site callsite.Site
}

// ErrorHelper binds code and site to this thread for repeated posting.
func (t *Thread) ErrorHelper(code diag.Code, site callsite.Site) ErrorHelper {
	return ErrorHelper{t: t, code: code, site: site}
}

// Post posts already-formatted text through the error pipeline.
func (h ErrorHelper) Post(text string) {
	h.t.PostError(h.code, h.site, text, nil, false)
}

// PostQuietly posts with the record's quiet flag set: no terminal echo,
// storage and delegate dispatch unchanged.
func (h ErrorHelper) PostQuietly(text string) {
	h.t.PostError(h.code, h.site, text, nil, true)
}

// PostWithInfo posts with an opaque payload attached.
func (h ErrorHelper) PostWithInfo(text string, info any) {
	h.t.PostError(h.code, h.site, text, info, false)
}

// WarningHelper posts warnings for one (code, site) pair.
type WarningHelper struct {
	t    *Thread
	code diag.Code
	site callsite.Site
}

func (t *Thread) WarningHelper(code diag.Code, site callsite.Site) WarningHelper {
	return WarningHelper{t: t, code: code, site: site}
}

func (h WarningHelper) Post(text string) {
	h.t.PostWarning(h.code, h.site, text, nil, false)
}

func (h WarningHelper) PostQuietly(text string) {
	h.t.PostWarning(h.code, h.site, text, nil, true)
}

func (h WarningHelper) PostWithInfo(text string, info any) {
	h.t.PostWarning(h.code, h.site, text, info, false)
}

// StatusHelper posts status messages for one (code, site) pair.
type StatusHelper struct {
	t    *Thread
	code diag.Code
	site callsite.Site
}

func (t *Thread) StatusHelper(code diag.Code, site callsite.Site) StatusHelper {
	return StatusHelper{t: t, code: code, site: site}
}

func (h StatusHelper) Post(text string) {
	h.t.PostStatus(h.code, h.site, text, nil, false)
}

func (h StatusHelper) PostQuietly(text string) {
	h.t.PostStatus(h.code, h.site, text, nil, true)
}

func (h StatusHelper) PostWithInfo(text string, info any) {
	h.t.PostStatus(h.code, h.site, text, info, false)
}

// FatalHelper posts fatal errors for one call site.
type FatalHelper struct {
	t    *Thread
	site callsite.Site
}

func (t *Thread) FatalHelper(site callsite.Site) FatalHelper {
	return FatalHelper{t: t, site: site}
}

// Post reports the fatal condition and terminates the process.
func (h FatalHelper) Post(text string) {
	h.t.PostFatal(h.site, text)
}
