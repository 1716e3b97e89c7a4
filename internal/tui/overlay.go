package tui

import (
	"fmt"
	"sync"

	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// OverlayState is what the native layer currently shows.
type OverlayState struct {
	Handles   []geometry.Position
	Menu      []action.Item
	RTL       bool
	Status    string
	IMEPaused bool
}

// Overlay is the native layer of the terminal host. It keeps the handles
// and menu the controller asked for so the host can draw them.
type Overlay struct {
	mu        sync.Mutex
	shown     map[geometry.Handle]bool
	positions map[geometry.Handle]geometry.Position
	menu      []action.Item
	rtl       bool
	status    string
	imePaused bool
}

var _ native.Messenger = (*Overlay)(nil)

// NewOverlay creates an empty overlay.
func NewOverlay() *Overlay {
	return &Overlay{
		shown:     make(map[geometry.Handle]bool),
		positions: make(map[geometry.Handle]geometry.Position),
	}
}

// Send implements native.Messenger.
func (o *Overlay) Send(msg native.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch m := msg.(type) {
	case native.ShowHandles:
		clear(o.shown)
		for _, h := range m.Handles {
			o.shown[h] = true
		}
		o.menu = m.Actions
	case native.HideHandles:
		clear(o.shown)
		clear(o.positions)
		o.menu = nil
	case native.PositionHandles:
		o.setPositions(m.Positions)
		o.rtl = m.RTL
	case native.UpdateMenu:
		o.menu = m.Actions
		o.setPositions(m.Positions)
	case native.SuppressIME:
		o.imePaused = m.Suppress
	case native.SelectedText:
		o.status = fmt.Sprintf("selected: %q", m.Text)
	case native.ShareText:
		o.status = fmt.Sprintf("share: %q", m.Text)
	case native.Toast:
		o.status = m.Message
	case native.LoadURI:
		o.status = "open " + m.URI
	case native.OpenTab:
		o.status = "new tab " + m.URL
	default:
		return fmt.Errorf("unsupported message %s", msg.Type())
	}
	return nil
}

func (o *Overlay) setPositions(ps []geometry.Position) {
	for _, p := range ps {
		o.positions[p.Handle] = p
	}
}

// SetStatus replaces the status line.
func (o *Overlay) SetStatus(s string) {
	o.mu.Lock()
	o.status = s
	o.mu.Unlock()
}

// State returns the visible handles in start, middle, end order along
// with the menu and status.
func (o *Overlay) State() OverlayState {
	o.mu.Lock()
	defer o.mu.Unlock()

	st := OverlayState{
		Menu:      append([]action.Item(nil), o.menu...),
		RTL:       o.rtl,
		Status:    o.status,
		IMEPaused: o.imePaused,
	}
	for _, h := range []geometry.Handle{geometry.HandleStart, geometry.HandleMiddle, geometry.HandleEnd} {
		p, ok := o.positions[h]
		if o.shown[h] && ok && !p.Hidden {
			st.Handles = append(st.Handles, p)
		}
	}
	return st
}
