package diagmgr

import (
	"bytes"
	"fmt"
	"testing"

	"klaxon/internal/callsite"
	"klaxon/internal/diag"
	"klaxon/internal/testkit"
)

func TestTransportSplice(t *testing.T) {
	env := newTestEnv()
	dst := env.mgr.Attach()
	src := env.mgr.Attach()

	postN(dst, 2, "resident")
	preMark := dst.Mark()
	defer preMark.Release()

	const k = 4
	for i := 0; i < k; i++ {
		src.AppendError(diag.NewError(codeBoom, callsite.Site{}, fmt.Sprintf("moved %d", i)))
	}

	tr := src.CaptureTransport()
	if src.PendingErrorCount() != 0 {
		t.Error("capture must empty the source store")
	}
	if env.sink.Text(uint64(src.ID())) != "" {
		t.Error("capture must clear the source crash log")
	}
	if tr.Len() != k {
		t.Fatalf("bundle holds %d errors, want %d", tr.Len(), k)
	}

	tailBefore := dst.Errors()[dst.PendingErrorCount()-1].Serial
	tr.Post(dst)
	postMark := dst.Mark()
	defer postMark.Release()

	if !tr.IsEmpty() {
		t.Error("posting must empty the bundle")
	}
	if got := dst.PendingErrorCount(); got != 2+k {
		t.Fatalf("destination holds %d errors, want %d", got, 2+k)
	}
	if err := testkit.CheckSerialOrder(dst.Errors()); err != nil {
		t.Error(err)
	}

	spliced := dst.Errors()[2:]
	for i, d := range spliced {
		if want := fmt.Sprintf("moved %d", i); d.Commentary != want {
			t.Errorf("spliced[%d] = %q, want %q (order lost)", i, d.Commentary, want)
		}
		if d.Serial <= tailBefore {
			t.Errorf("spliced serial %d not after destination tail %d", d.Serial, tailBefore)
		}
	}

	// A mark held across the splice claims the spliced records; one
	// created afterwards does not.
	if got := len(preMark.Query()); got != k {
		t.Errorf("pre-splice mark claims %d, want %d", got, k)
	}
	if got := len(postMark.Query()); got != 0 {
		t.Errorf("post-splice mark claims %d, want 0", got)
	}
}

func TestTransportSpliceReusesNoSerial(t *testing.T) {
	env := newTestEnv()
	dst := env.mgr.Attach()
	src := env.mgr.Attach()

	src.AppendError(diag.NewError(codeBoom, callsite.Site{}, "a"))
	src.AppendError(diag.NewError(codeBoom, callsite.Site{}, "b"))

	tr := src.CaptureTransport()
	captured := tr.Errors()

	tr.Post(dst)
	for i, d := range dst.Errors() {
		if d.Serial == captured[i].Serial {
			t.Errorf("record %d kept its old serial %d across the splice", i, d.Serial)
		}
	}
}

func TestTransportEncodeDecode(t *testing.T) {
	env := newTestEnv()
	src := env.mgr.Attach()

	site := callsite.Site{File: "worker.go", Line: 7, Function: "run"}
	src.AppendError(diag.NewError(codeBoom, site, "boom").WithInfo(map[string]string{"key": "value"}))
	src.AppendError(diag.NewError(diag.Code{ID: 11, Name: "SPARK"}, callsite.Site{}, "spark").WithQuiet(true))

	var buf bytes.Buffer
	tr := src.CaptureTransport()
	if err := tr.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := DecodeTransport(&buf)
	if err != nil {
		t.Fatalf("DecodeTransport: %v", err)
	}
	errs := decoded.Errors()
	if len(errs) != 2 {
		t.Fatalf("decoded %d errors, want 2", len(errs))
	}
	if errs[0].Code != codeBoom || errs[0].Site != site || errs[0].Commentary != "boom" {
		t.Errorf("first record mangled: %+v", errs[0])
	}
	if !errs[1].Quiet {
		t.Error("quiet flag lost on the wire")
	}
	info, ok := errs[0].Info.(map[string]any)
	if !ok || info["key"] != "value" {
		t.Errorf("payload mangled: %#v", errs[0].Info)
	}

	// A decoded bundle splices like a local one.
	other := New()
	dst := other.Attach()
	mk := dst.Mark()
	defer mk.Release()
	decoded.Post(dst)
	if got := len(mk.Query()); got != 2 {
		t.Errorf("decoded bundle spliced %d errors, want 2", got)
	}
}

func TestDecodeTransportRejectsGarbage(t *testing.T) {
	if _, err := DecodeTransport(bytes.NewReader([]byte("not msgpack at all"))); err == nil {
		t.Error("expected an error for a corrupt bundle")
	}
}
