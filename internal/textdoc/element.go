package textdoc

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// Element is a block-level element of a Document.
type Element struct {
	doc       *Document
	kind      dom.ElementKind
	inputType string
	text      []rune

	dir     dom.Direction
	dirAuto bool

	disabled       bool
	userSelectNone bool
	removed        bool
	focused        bool

	fixedHeight float64
	child       *Document
	editor      *editor

	// layout, valid when the document is not dirty
	top    float64
	glyphs []glyph
	lines  int
}

func newElement(kind dom.ElementKind, text string) *Element {
	return &Element{kind: kind, text: []rune(text)}
}

// NodeText implements dom.Node.
func (e *Element) NodeText() string {
	return string(e.text)
}

// Kind implements dom.Element.
func (e *Element) Kind() dom.ElementKind { return e.kind }

// InputType implements dom.Element.
func (e *Element) InputType() string { return e.inputType }

// Disabled implements dom.Element.
func (e *Element) Disabled() bool { return e.disabled }

// SetDisabled sets the disabled attribute.
func (e *Element) SetDisabled(v bool) *Element {
	e.disabled = v
	return e
}

// HasNativeWidget implements dom.Element. Date and time inputs are edited
// by native pickers.
func (e *Element) HasNativeWidget() bool {
	if e.kind != dom.KindInput {
		return false
	}
	switch e.inputType {
	case "date", "time", "datetime-local", "month", "week", "color":
		return true
	}
	return false
}

// UserSelectNone implements dom.Element.
func (e *Element) UserSelectNone() bool { return e.userSelectNone }

// SetUserSelectNone sets user-select: none.
func (e *Element) SetUserSelectNone(v bool) *Element {
	e.userSelectNone = v
	return e
}

// Direction implements dom.Element.
func (e *Element) Direction() dom.Direction {
	if e.dirAuto {
		return detectDirection(e.text)
	}
	return e.dir
}

// SetDirection sets an explicit direction.
func (e *Element) SetDirection(d dom.Direction) *Element {
	e.dir = d
	e.dirAuto = false
	e.markDirty()
	return e
}

// SetAutoDirection derives the direction from the first strong character.
func (e *Element) SetAutoDirection() *Element {
	e.dirAuto = true
	e.markDirty()
	return e
}

// OwnerView implements dom.Element.
func (e *Element) OwnerView() dom.View {
	if e.doc == nil {
		return nil
	}
	return e.doc
}

// Document returns the owning document.
func (e *Element) Document() *Document { return e.doc }

// Child returns the hosted document of a frame element.
func (e *Element) Child() *Document { return e.child }

// BoundingClientRect implements dom.Element.
func (e *Element) BoundingClientRect() geom.Rect {
	if e.doc == nil {
		return geom.Rect{}
	}
	e.doc.ensureLayout()
	r := geom.Rect{Left: 0, Top: e.top, Right: e.doc.width, Bottom: e.top + e.height()}
	return r.Translate(geom.Point{X: -e.doc.scroll.X, Y: -e.doc.scroll.Y})
}

// TextLength implements dom.Element.
func (e *Element) TextLength() int { return len(e.text) }

// Focus implements dom.Element.
func (e *Element) Focus() {
	if e.doc == nil {
		return
	}
	if e.doc.active != nil && e.doc.active != e {
		e.doc.active.focused = false
	}
	e.focused = true
	e.doc.active = e
}

// Blur implements dom.Element.
func (e *Element) Blur() {
	e.focused = false
	if e.doc != nil && e.doc.active == e {
		e.doc.active = nil
	}
}

// Focused reports whether the element has focus.
func (e *Element) Focused() bool { return e.focused }

// Alive implements dom.Element.
func (e *Element) Alive() bool {
	return !e.removed && e.doc != nil
}

// Remove detaches the element from its document.
func (e *Element) Remove() {
	if e.removed || e.doc == nil {
		return
	}
	e.doc.remove(e)
	e.removed = true
}

// Editor implements dom.Element.
func (e *Element) Editor() (dom.Editor, bool) {
	if e.editor == nil {
		return nil, false
	}
	return e.editor, true
}

// SetText replaces the element's text.
func (e *Element) SetText(s string) {
	e.text = []rune(s)
	e.markDirty()
}

func (e *Element) markDirty() {
	if e.doc != nil {
		e.doc.dirty = true
	}
}

// hasText reports whether the element carries hit-testable text.
func (e *Element) hasText() bool {
	switch e.kind {
	case dom.KindFrame, dom.KindImage, dom.KindEmbed, dom.KindMedia:
		return false
	}
	return true
}

// isDocumentText reports whether the element's text belongs to the document
// selection rather than to a field editor.
func (e *Element) isDocumentText() bool {
	return e.kind == dom.KindText || e.kind == dom.KindPre
}
