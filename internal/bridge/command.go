package bridge

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/selection"
)

// Command types accepted in addition to notification topics.
const (
	TypeStartSelection = "selection.start"
	TypeAttachCaret    = "selection.attach"
	TypeCloseSelection = "selection.close"
)

// Target receives decoded commands. *selection.Controller is a Target.
type Target interface {
	Publish(n event.Notification) error
	StartSelection(el dom.Element, opts selection.StartOptions) error
	AttachCaret(el dom.Element) error
	CloseSelection()
}

var _ Target = (*selection.Controller)(nil)

// Command is one decoded inbound line.
type Command interface {
	// Run applies the command to the target.
	Run(t Target) error
	// Name is the wire type of the command.
	Name() string
}

// Publish delivers a notification to the target.
type Publish struct {
	Notification event.Notification
}

// Run implements Command.
func (p Publish) Run(t Target) error {
	return t.Publish(p.Notification)
}

// Name implements Command.
func (p Publish) Name() string { return p.Notification.Topic().String() }

// StartSelection starts a range selection.
type StartSelection struct {
	Element dom.Element
	Options selection.StartOptions
}

// Run implements Command.
func (s StartSelection) Run(t Target) error {
	return t.StartSelection(s.Element, s.Options)
}

// Name implements Command.
func (StartSelection) Name() string { return TypeStartSelection }

// AttachCaret attaches a caret to an editable element.
type AttachCaret struct {
	Element dom.Element
}

// Run implements Command.
func (a AttachCaret) Run(t Target) error {
	return t.AttachCaret(a.Element)
}

// Name implements Command.
func (AttachCaret) Name() string { return TypeAttachCaret }

// CloseSelection ends the active session.
type CloseSelection struct{}

// Run implements Command.
func (CloseSelection) Run(t Target) error {
	t.CloseSelection()
	return nil
}

// Name implements Command.
func (CloseSelection) Name() string { return TypeCloseSelection }
