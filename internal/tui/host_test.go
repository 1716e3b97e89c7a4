package tui

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textsel/internal/app"
	"github.com/dshills/textsel/internal/selection"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/services"
	"github.com/dshills/textsel/internal/textdoc"
)

const (
	screenWidth  = 40
	screenHeight = 10
	menuRow      = screenHeight - 2
	statusRow    = screenHeight - 1
)

type fixture struct {
	sim     tcell.SimulationScreen
	host    *Host
	app     *app.Application
	overlay *Overlay
	clip    *services.MemoryClipboard
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(screenWidth, screenHeight)
	t.Cleanup(sim.Fini)

	doc := textdoc.New()
	doc.AddText("hello world")
	doc.AddInput("text", "field")

	f := &fixture{sim: sim, overlay: NewOverlay(), clip: &services.MemoryClipboard{}}
	a, err := app.New(app.Options{
		Messenger: f.overlay,
		Document:  doc,
		Clipboard: f.clip,
		LogOutput: io.Discard,
		Environ:   []string{},
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	f.app = a
	f.host = New(WrapScreen(sim), a, f.overlay, nil)
	return f
}

func (f *fixture) row(y int) string {
	f.sim.Show()
	cells, w, _ := f.sim.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if rs := cells[y*w+x].Runes; len(rs) > 0 {
			b.WriteRune(rs[0])
		} else {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func (f *fixture) click(x, y int, btn tcell.ButtonMask) {
	f.host.HandleEvent(tcell.NewEventMouse(x, y, btn, tcell.ModNone))
	f.host.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
	f.host.Draw()
}

func (f *fixture) selectWorld(t *testing.T) {
	t.Helper()
	f.click(7, 0, tcell.Button3)
	if got := f.app.Controller().SelectedText(); got != "world" {
		t.Fatalf("selected %q, want world", got)
	}
}

func TestDraw(t *testing.T) {
	f := newFixture(t)
	f.host.Draw()

	if got := f.row(0); !strings.HasPrefix(got, "hello world") {
		t.Errorf("row 0 = %q", got)
	}
	if got := f.row(1); !strings.HasPrefix(got, "field") {
		t.Errorf("row 1 = %q", got)
	}
	if got := strings.TrimSpace(f.row(statusRow)); !strings.HasPrefix(helpText, got) {
		t.Errorf("status = %q, want help", got)
	}
}

func TestLongPressShowsHandlesAndMenu(t *testing.T) {
	f := newFixture(t)
	f.selectWorld(t)

	st := f.overlay.State()
	if len(st.Handles) != 2 || len(f.host.handles) != 2 {
		t.Fatalf("handles = %v, drawn %v", st.Handles, f.host.handles)
	}
	if !strings.Contains(f.row(menuRow), "Copy") {
		t.Errorf("menu row = %q", f.row(menuRow))
	}
}

func TestMenuClickPerformsAction(t *testing.T) {
	f := newFixture(t)
	f.selectWorld(t)

	var copyHit *menuHit
	for i := range f.host.menu {
		if f.host.menu[i].id == action.CopyID {
			copyHit = &f.host.menu[i]
		}
	}
	if copyHit == nil {
		t.Fatalf("no copy item in %v", f.host.menu)
	}
	f.click(copyHit.from, menuRow, tcell.Button1)

	if got, _ := f.clip.ReadText(); got != "world" {
		t.Errorf("clipboard = %q, want world", got)
	}
	st := f.overlay.State()
	if len(st.Handles) != 0 || len(st.Menu) != 0 || st.Status == "" {
		t.Errorf("after copy = %+v", st)
	}
}

func TestDragEndHandle(t *testing.T) {
	f := newFixture(t)
	f.selectWorld(t)

	var end *handleHit
	for i := range f.host.handles {
		if f.host.handles[i].handle == geometry.HandleEnd {
			end = &f.host.handles[i]
		}
	}
	if end == nil {
		t.Fatal("end handle not drawn")
	}

	f.host.HandleEvent(tcell.NewEventMouse(end.x, end.y, tcell.Button1, tcell.ModNone))
	f.host.HandleEvent(tcell.NewEventMouse(9, end.y, tcell.Button1, tcell.ModNone))
	f.host.HandleEvent(tcell.NewEventMouse(9, end.y, tcell.ButtonNone, tcell.ModNone))

	if got := f.app.Controller().SelectedText(); got != "worl" {
		t.Errorf("selected %q after drag, want worl", got)
	}
	if f.host.drag != "" {
		t.Error("drag not finished on release")
	}
}

func TestClickInFieldAttachesCaret(t *testing.T) {
	f := newFixture(t)
	f.click(2, 1, tcell.Button1)

	if m := f.app.Controller().Mode(); m != selection.ModeCursor {
		t.Fatalf("mode = %v, want cursor", m)
	}
	st := f.overlay.State()
	if len(st.Handles) != 1 || st.Handles[0].Handle != geometry.HandleMiddle {
		t.Errorf("handles = %v, want the caret handle", st.Handles)
	}
}

func TestTapOutsideCloses(t *testing.T) {
	f := newFixture(t)
	f.selectWorld(t)
	f.click(20, 5, tcell.Button1)

	if f.app.Controller().IsSelectionActive() {
		t.Error("selection survived a tap outside it")
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t)
	f.selectWorld(t)

	if !f.host.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Fatal("Esc stopped the host")
	}
	if f.app.Controller().Mode() != selection.ModeNone {
		t.Error("Esc did not close the session")
	}
	if f.host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Error("q did not stop the host")
	}
}

func TestScrollClamps(t *testing.T) {
	f := newFixture(t)
	doc := f.app.Document()
	for i := 0; i < 20; i++ {
		doc.AddText("filler line")
	}

	f.host.HandleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	if y := doc.Scroll().Y; y != 8*16 {
		t.Errorf("scroll after PgDn = %v, want %v", y, 8*16)
	}
	for i := 0; i < 5; i++ {
		f.host.HandleEvent(tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone))
	}
	if y, limit := doc.Scroll().Y, doc.ContentHeight()-8*16; y != limit {
		t.Errorf("scroll = %v, want clamped to %v", y, limit)
	}
	f.host.HandleEvent(tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone))
	if y, limit := doc.Scroll().Y, doc.ContentHeight()-8*16; y != limit-3*16 {
		t.Errorf("scroll after wheel = %v, want %v", y, limit-3*16)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	f := newFixture(t)
	// Run initializes and finalizes its own screen.
	h := New(WrapScreen(tcell.NewSimulationScreen("UTF-8")), f.app, f.overlay, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
