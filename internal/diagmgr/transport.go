package diagmgr

import (
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"klaxon/internal/callsite"
	"klaxon/internal/diag"
)

// Transport carries errors captured from one thread's store toward
// another thread. The source goroutine captures, the destination
// goroutine posts; in between the bundle is plain data and may be handed
// across goroutines, queued, or serialized to a byte stream.
type Transport struct {
	errs []diag.Diagnostic
}

// CaptureTransport empties the calling thread's entire store into a
// bundle, preserving record order. Original serials ride along; they
// are reassigned at splice time. The thread's crash-log text is cleared
// along with the store.
func (t *Thread) CaptureTransport() *Transport {
	st := t.state
	tr := &Transport{errs: st.errs}
	st.errs = nil
	st.lines = nil
	st.log.Reset()
	st.pending.Store(0)
	t.mgr.sink.Publish(uint64(st.id), "")
	return tr
}

// Post splices the bundle into dst's store. Each record is re-stamped
// with a freshly allocated serial, in original order, so the transported
// errors keep their relative order and land strictly after dst's
// existing tail. A mark created on dst before the splice claims them;
// one created after does not. The bundle is emptied.
func (tr *Transport) Post(dst *Thread) {
	for _, d := range tr.errs {
		dst.mgr.appendError(dst.state, d)
	}
	tr.errs = nil
}

// Len returns the number of captured errors still in the bundle.
func (tr *Transport) Len() int {
	return len(tr.errs)
}

// IsEmpty reports whether the bundle holds no errors.
func (tr *Transport) IsEmpty() bool {
	return len(tr.errs) == 0
}

// Errors returns a snapshot of the captured records.
func (tr *Transport) Errors() []diag.Diagnostic {
	out := make([]diag.Diagnostic, len(tr.errs))
	copy(out, tr.errs)
	return out
}

// Bump when the wire layout changes.
const transportSchemaVersion uint16 = 1

type wireTransport struct {
	Schema uint16
	Errors []wireError
}

type wireError struct {
	CodeID     uint32
	CodeName   string
	File       string
	Line       int32
	Function   string
	Commentary string
	Info       any
	Serial     uint64
	Quiet      bool
}

// Encode serializes the bundle to w. Opaque info payloads ride along
// as-is and must therefore be msgpack-serializable; after a round trip
// they come back as generic values (maps, slices, primitives).
func (tr *Transport) Encode(w io.Writer) error {
	wt := wireTransport{
		Schema: transportSchemaVersion,
		Errors: make([]wireError, 0, len(tr.errs)),
	}
	for _, d := range tr.errs {
		line, err := safecast.Conv[int32](d.Site.Line)
		if err != nil {
			return fmt.Errorf("call-site line overflow: %w", err)
		}
		wt.Errors = append(wt.Errors, wireError{
			CodeID:     d.Code.ID,
			CodeName:   d.Code.Name,
			File:       d.Site.File,
			Line:       line,
			Function:   d.Site.Function,
			Commentary: d.Commentary,
			Info:       d.Info,
			Serial:     uint64(d.Serial),
			Quiet:      d.Quiet,
		})
	}
	if err := msgpack.NewEncoder(w).Encode(&wt); err != nil {
		return fmt.Errorf("failed to encode transport: %w", err)
	}
	return nil
}

// DecodeTransport reads a bundle previously written by Encode. The
// decoded bundle is posted like any other; serials carried on the wire
// are informational and get reassigned at splice time.
func DecodeTransport(r io.Reader) (*Transport, error) {
	var wt wireTransport
	if err := msgpack.NewDecoder(r).Decode(&wt); err != nil {
		return nil, fmt.Errorf("failed to decode transport: %w", err)
	}
	if wt.Schema != transportSchemaVersion {
		return nil, fmt.Errorf("unsupported transport schema %d (want %d)", wt.Schema, transportSchemaVersion)
	}
	errs := make([]diag.Diagnostic, 0, len(wt.Errors))
	for _, we := range wt.Errors {
		errs = append(errs, diag.Diagnostic{
			Kind: diag.KindError,
			Code: diag.Code{ID: we.CodeID, Name: we.CodeName},
			Site: callsite.Site{
				File:     we.File,
				Line:     int(we.Line),
				Function: we.Function,
			},
			Commentary: we.Commentary,
			Info:       we.Info,
			Serial:     diag.Serial(we.Serial),
			Quiet:      we.Quiet,
		})
	}
	return &Transport{errs: errs}, nil
}
