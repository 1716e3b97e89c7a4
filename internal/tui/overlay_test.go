package tui

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
)

func TestOverlay(t *testing.T) {
	o := NewOverlay()
	menu := []action.Item{{ID: "copy_action", Label: "Copy"}}
	start := geometry.Position{Handle: geometry.HandleStart, X: 8, Y: 16}
	end := geometry.Position{Handle: geometry.HandleEnd, X: 40, Y: 16}

	msgs := []native.Message{
		native.PositionHandles{Positions: []geometry.Position{start, end}},
		native.ShowHandles{Handles: []geometry.Handle{geometry.HandleStart, geometry.HandleEnd}, Actions: menu},
		native.SuppressIME{Suppress: true},
		native.Toast{Message: "Copied"},
	}
	for _, m := range msgs {
		if err := o.Send(m); err != nil {
			t.Fatalf("Send(%s): %v", m.Type(), err)
		}
	}
	want := OverlayState{
		Handles:   []geometry.Position{start, end},
		Menu:      menu,
		Status:    "Copied",
		IMEPaused: true,
	}
	if diff := cmp.Diff(want, o.State()); diff != "" {
		t.Errorf("state (-want +got):\n%s", diff)
	}

	end.Hidden = true
	_ = o.Send(native.PositionHandles{Positions: []geometry.Position{end}})
	if got := o.State().Handles; len(got) != 1 || got[0].Handle != geometry.HandleStart {
		t.Errorf("hidden end still drawn: %v", got)
	}

	_ = o.Send(native.HideHandles{})
	if st := o.State(); len(st.Handles) != 0 || len(st.Menu) != 0 {
		t.Errorf("after hide = %+v", st)
	}
}

func TestOverlayStatus(t *testing.T) {
	tests := []struct {
		msg  native.Message
		want string
	}{
		{native.SelectedText{Text: "hi"}, `selected: "hi"`},
		{native.ShareText{Text: "hi"}, `share: "hi"`},
		{native.LoadURI{URI: "tel:5551234"}, "open tel:5551234"},
		{native.OpenTab{URL: "https://example.com"}, "new tab https://example.com"},
	}
	for _, tt := range tests {
		o := NewOverlay()
		if err := o.Send(tt.msg); err != nil {
			t.Fatal(err)
		}
		if got := o.State().Status; got != tt.want {
			t.Errorf("%s status = %q, want %q", tt.msg.Type(), got, tt.want)
		}
	}
}
