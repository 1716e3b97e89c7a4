// Package native declares the messages sent to the native UI layer and the
// system services the selection controller relies on.
package native

import (
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Message types.
const (
	TypeShowHandles     = "handles.show"
	TypeHideHandles     = "handles.hide"
	TypePositionHandles = "handles.position"
	TypeUpdateMenu      = "menu.update"
	TypeSuppressIME     = "ime.suppress"
	TypeSelectedText    = "selection.text"
	TypeShareText       = "share.text"
	TypeToast           = "toast.show"
	TypeLoadURI         = "uri.load"
	TypeOpenTab         = "tab.open"
)

// Message is an outbound message to the native UI layer.
type Message interface {
	Type() string
}

// ShowHandles asks for the given handles to be shown along with the menu.
type ShowHandles struct {
	Handles []geometry.Handle `json:"handles"`
	Actions []action.Item     `json:"actions"`
}

// Type implements Message.
func (ShowHandles) Type() string { return TypeShowHandles }

// HideHandles hides every handle and the menu.
type HideHandles struct{}

// Type implements Message.
func (HideHandles) Type() string { return TypeHideHandles }

// PositionHandles moves handles to page coordinates.
type PositionHandles struct {
	Positions []geometry.Position `json:"positions"`
	RTL       bool                `json:"rtl"`
}

// Type implements Message.
func (PositionHandles) Type() string { return TypePositionHandles }

// UpdateMenu replaces the action menu.
type UpdateMenu struct {
	Actions   []action.Item       `json:"actions"`
	Positions []geometry.Position `json:"positions"`
}

// Type implements Message.
func (UpdateMenu) Type() string { return TypeUpdateMenu }

// SuppressIME toggles dynamic input method compositions while a handle is
// dragged.
type SuppressIME struct {
	Suppress bool `json:"suppress"`
}

// Type implements Message.
func (SuppressIME) Type() string { return TypeSuppressIME }

// SelectedText answers a text request.
type SelectedText struct {
	RequestID string `json:"requestId"`
	Text      string `json:"text"`
}

// Type implements Message.
func (SelectedText) Type() string { return TypeSelectedText }

// ShareText opens the share sheet.
type ShareText struct {
	Text string `json:"text"`
}

// Type implements Message.
func (ShareText) Type() string { return TypeShareText }

// Toast shows a transient notice.
type Toast struct {
	Message  string `json:"message"`
	Duration string `json:"duration"`
}

// Type implements Message.
func (Toast) Type() string { return TypeToast }

// LoadURI loads a URI in the current tab, for example a tel: link.
type LoadURI struct {
	URI string `json:"uri"`
}

// Type implements Message.
func (LoadURI) Type() string { return TypeLoadURI }

// OpenTab opens a URL in a new selected tab.
type OpenTab struct {
	URL string `json:"url"`
}

// Type implements Message.
func (OpenTab) Type() string { return TypeOpenTab }
