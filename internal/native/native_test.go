package native

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRecorder(t *testing.T) {
	var r Recorder
	_ = r.Send(ShowHandles{})
	_ = r.Send(SuppressIME{Suppress: true})
	_ = r.Send(SuppressIME{Suppress: false})

	want := []string{TypeShowHandles, TypeSuppressIME, TypeSuppressIME}
	if diff := cmp.Diff(want, r.Types()); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	last, ok := r.Last(TypeSuppressIME)
	if !ok || last.(SuppressIME).Suppress {
		t.Errorf("Last = %#v, %v", last, ok)
	}
	if _, ok := r.Last(TypeToast); ok {
		t.Error("no toast was sent")
	}
	r.Reset()
	if len(r.Messages()) != 0 {
		t.Error("Reset kept messages")
	}
}

func TestMapPreferences(t *testing.T) {
	p := MapPreferences{"a": 3}
	if got := p.Int("a", 1); got != 3 {
		t.Errorf("Int(a) = %d", got)
	}
	if got := p.Int("b", 7); got != 7 {
		t.Errorf("Int(b) = %d", got)
	}
}
