package selection

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Mode is the kind of the active session.
type Mode int

const (
	// ModeNone means no session is active.
	ModeNone Mode = iota
	// ModeCursor is a caret with a single middle handle.
	ModeCursor
	// ModeRange is a range selection with start and end handles.
	ModeRange
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeCursor:
		return "cursor"
	case ModeRange:
		return "range"
	default:
		return "unknown"
	}
}

// StartMode selects the strategy of StartSelection.
type StartMode int

const (
	// SelectAll selects the whole content of the target.
	SelectAll StartMode = iota
	// SelectAtPoint selects the word under a point.
	SelectAtPoint
)

// StartOptions configure StartSelection. X and Y are top-level client
// coordinates, used by SelectAtPoint.
type StartOptions struct {
	Mode StartMode
	X, Y float64
}

// session is the single active cursor or range selection. The target and
// view are non-owning; liveness is checked through dom.Element.Alive.
type session struct {
	mode   Mode
	target dom.Element
	view   dom.View
	rtl    bool

	// extent is set in range mode only, in the view's client coordinates.
	extent *geometry.Extent

	dragging            bool
	suppressComposition bool

	subs []*event.Subscription
}

// State is a snapshot of the session.
type State struct {
	Mode                Mode
	Target              dom.Element
	View                dom.View
	RTL                 bool
	Extent              *geometry.Extent
	Dragging            bool
	SuppressComposition bool
}

func (s *session) state() State {
	st := State{
		Mode:                s.mode,
		Target:              s.target,
		View:                s.view,
		RTL:                 s.rtl,
		Dragging:            s.dragging,
		SuppressComposition: s.suppressComposition,
	}
	if s.extent != nil {
		ext := *s.extent
		st.Extent = &ext
	}
	return st
}
