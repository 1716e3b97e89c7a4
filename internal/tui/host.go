package tui

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textsel/internal/bridge"
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/selection"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/textdoc"
)

const helpText = "right click: select  left click: caret/tap  drag handles  PgUp/PgDn: scroll  Esc: hide  q: quit"

// wheelRows is how far one wheel notch scrolls.
const wheelRows = 3

// App is the application the host drives.
type App interface {
	bridge.Target
	Document() *textdoc.Document
	Engine() *textdoc.Engine
}

// Host plays the part of the browser chrome and the native layer: it
// draws the document with its handles and menu, and turns mouse and keys
// into controller calls. A right click stands in for a long press.
type Host struct {
	screen  *Screen
	app     App
	overlay *Overlay
	log     *logging.Logger

	buttons tcell.ButtonMask
	drag    geometry.Handle

	// hit boxes from the last Draw
	handles []handleHit
	menu    []menuHit
}

type handleHit struct {
	handle geometry.Handle
	x, y   int
}

type menuHit struct {
	id       string
	from, to int
}

// New creates a host. overlay must be the messenger app sends on.
func New(screen *Screen, app App, overlay *Overlay, log *logging.Logger) *Host {
	if log == nil {
		log = logging.Null()
	}
	return &Host{
		screen:  screen,
		app:     app,
		overlay: overlay,
		log:     log.WithComponent("tui"),
	}
}

// Run initializes the screen and handles events until q is pressed or ctx
// is done.
func (h *Host) Run(ctx context.Context) error {
	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer h.screen.Fini()

	stop := context.AfterFunc(ctx, h.screen.Interrupt)
	defer stop()

	h.Draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil || !h.HandleEvent(ev) {
			return ctx.Err()
		}
		h.Draw()
	}
}

// HandleEvent applies one terminal event. It returns false when the host
// should stop.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
		h.publish(event.ViewportChanged{})
	case *tcell.EventInterrupt:
		return false
	}
	return true
}

func (h *Host) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		h.publish(event.PageHidden{})
	case tcell.KeyPgUp:
		h.scroll(-h.docRows())
	case tcell.KeyPgDn:
		h.scroll(h.docRows())
	case tcell.KeyRune:
		if ev.Rune() == 'q' {
			return false
		}
	}
	return true
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	prev := h.buttons
	h.buttons = btn & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	pressed := func(b tcell.ButtonMask) bool { return btn&b != 0 && prev&b == 0 }

	switch {
	case btn&tcell.WheelUp != 0:
		h.scroll(-wheelRows)
	case btn&tcell.WheelDown != 0:
		h.scroll(wheelRows)
	case h.drag != "":
		// Markers hang below the text they anchor.
		p := h.point(x, y-1)
		if btn&tcell.Button1 != 0 {
			h.publish(event.DragMove{Handle: h.drag, Point: p})
			return
		}
		h.publish(event.DragPosition{Handle: h.drag, Point: p})
		h.drag = ""
	case pressed(tcell.Button3):
		h.longPress(h.point(x, y))
	case pressed(tcell.Button1):
		h.press(x, y)
	}
}

func (h *Host) longPress(p geom.Point) {
	el, _ := h.app.Document().ElementFromPoint(p)
	if el == nil {
		return
	}
	h.report(h.app.StartSelection(el, selection.StartOptions{Mode: selection.SelectAtPoint, X: p.X, Y: p.Y}))
}

func (h *Host) press(x, y int) {
	_, height := h.screen.Size()
	if y == height-2 {
		for _, m := range h.menu {
			if x >= m.from && x < m.to {
				h.publish(event.ActionInvoked{ID: m.id})
				return
			}
		}
	}
	for _, hh := range h.handles {
		if y == hh.y && x >= hh.x-1 && x <= hh.x+1 {
			h.drag = hh.handle
			return
		}
	}

	p := h.point(x, y)
	el, local := h.app.Document().ElementFromPoint(p)
	if el != nil && dom.IsEditableText(el) && !el.Disabled() {
		h.app.Engine().SendClick(el.Document(), local)
		h.report(h.app.AttachCaret(el))
		return
	}
	h.publish(event.Tap{Point: p})
}

// scroll moves the top-level document by rows and reports the scroll.
func (h *Host) scroll(rows int) {
	doc := h.app.Document()
	_, ch := doc.CellSize()
	limit := max(doc.ContentHeight()-float64(h.docRows())*ch, 0)
	cur := doc.Scroll()
	y := min(max(cur.Y+float64(rows)*ch, 0), limit)
	if y == cur.Y {
		return
	}
	doc.ScrollTo(geom.Pt(cur.X, y))
	h.publish(event.Scroll{})
}

func (h *Host) publish(n event.Notification) {
	h.report(h.app.Publish(n))
}

func (h *Host) report(err error) {
	if err == nil {
		return
	}
	h.log.Debug("%v", err)
	h.overlay.SetStatus(err.Error())
}

// point returns the client coordinates of the centre of a cell.
func (h *Host) point(x, y int) geom.Point {
	cw, ch := h.app.Document().CellSize()
	return geom.Pt((float64(x)+0.5)*cw, (float64(y)+0.5)*ch)
}

// docRows is the number of rows left for the document above the menu and
// status lines.
func (h *Host) docRows() int {
	_, height := h.screen.Size()
	return max(height-2, 0)
}
