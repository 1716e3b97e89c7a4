// Package dom declares the document-engine boundary the selection controller
// depends on: live selections, hit testing, editable fields, caret queries
// and synthesized clicks.
//
// Nodes and elements are non-owning references. Implementations must keep
// them comparable with == and report liveness through Element.Alive, so the
// controller can drop a session whose target was removed from the document.
package dom

import "github.com/dshills/textsel/internal/geom"

// Direction is the computed text direction of an element.
type Direction int

const (
	// LTR is left-to-right text.
	LTR Direction = iota
	// RTL is right-to-left text.
	RTL
)

// String returns "ltr" or "rtl".
func (d Direction) String() string {
	if d == RTL {
		return "rtl"
	}
	return "ltr"
}

// ElementKind classifies the elements the controller cares about.
type ElementKind int

const (
	// KindText is any generic text container.
	KindText ElementKind = iota
	// KindPre is preformatted text; select-all selects its paragraph.
	KindPre
	// KindInput is a single-line form field.
	KindInput
	// KindTextArea is a multi-line form field.
	KindTextArea
	// KindButton is a button element.
	KindButton
	// KindEmbed is an embedded plugin object.
	KindEmbed
	// KindImage is an image.
	KindImage
	// KindMedia is an audio or video element.
	KindMedia
	// KindFrame hosts a nested view.
	KindFrame
)

var kindNames = [...]string{"text", "pre", "input", "textarea", "button", "embed", "image", "media", "frame"}

// String returns the lower-case kind name.
func (k ElementKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Node is a document node holding text.
type Node interface {
	// NodeText returns the node's text content.
	NodeText() string
}

// Position is a boundary point inside a node.
type Position struct {
	Node   Node
	Offset int
}

// IsZero reports whether the position refers to no node.
func (p Position) IsZero() bool {
	return p.Node == nil
}

// MoveDirection is the direction of a selection modification.
type MoveDirection int

const (
	// Forward moves toward the end of the document.
	Forward MoveDirection = iota
	// Backward moves toward the start of the document.
	Backward
)

// Granularity is the unit a selection strategy or modification operates on.
type Granularity int

const (
	// GranularityWord extends by whitespace-delimited words.
	GranularityWord Granularity = iota
	// GranularityWordNoSpace selects a word without trailing space.
	GranularityWordNoSpace
	// GranularityParagraph selects a whole paragraph.
	GranularityParagraph
)

// ChangeReason is a bit set describing why a selection changed.
type ChangeReason uint

// Change reasons reported to SelectionListener.
const (
	ReasonNone            ChangeReason = 0
	ReasonDrag            ChangeReason = 1 << 0
	ReasonMouseDown       ChangeReason = 1 << 1
	ReasonMouseUp         ChangeReason = 1 << 2
	ReasonKeypress        ChangeReason = 1 << 3
	ReasonSelectAll       ChangeReason = 1 << 4
	ReasonCollapseToStart ChangeReason = 1 << 5
	ReasonCollapseToEnd   ChangeReason = 1 << 6
)

// Has reports whether r contains flag.
func (r ChangeReason) Has(flag ChangeReason) bool {
	return r&flag != 0
}

// SelectionListener observes changes to a live selection.
type SelectionListener interface {
	SelectionChanged(sel Selection, reason ChangeReason)
}

// Selection is the live document (or editor) selection. It holds at most one
// range, described by an anchor and a focus.
type Selection interface {
	RangeCount() int
	IsCollapsed() bool
	Anchor() Position
	Focus() Position

	// Collapse replaces the range with a caret at p.
	Collapse(p Position) error
	// Extend moves the focus to p, keeping the anchor.
	Extend(p Position) error
	// CollapseToStart collapses to the range start, keeping anchor identity.
	CollapseToStart() error
	RemoveAllRanges()
	// ExtendBy moves the focus one unit of g in dir.
	ExtendBy(dir MoveDirection, g Granularity)

	// String returns the selected text.
	String() string
	// PreformattedString returns the selected text with raw whitespace.
	PreformattedString() string

	// ClientRects returns one rectangle per selected line run, in document
	// order, in the owning view's client coordinates.
	ClientRects() []geom.Rect
	BoundingClientRect() geom.Rect

	AddListener(l SelectionListener)
	RemoveListener(l SelectionListener)
}

// View is a window or sub-frame displaying a document.
type View interface {
	Selection() Selection
	// FrameElement returns the element hosting this view in its parent, or
	// nil for the top-level view.
	FrameElement() Element
	// Parent returns the parent view, or nil for the top-level view.
	Parent() View
	// CaretPositionFromPoint hit-tests a point in this view's client
	// coordinates. It reports false when the point is off the document.
	CaretPositionFromPoint(p geom.Point) (Position, bool)
	// SelectAll selects the view's whole document.
	SelectAll()
	// LastTextPosition returns the end of the deepest last text node.
	LastTextPosition() (Position, bool)
}

// Element is a document element a session can anchor to.
type Element interface {
	Node

	Kind() ElementKind
	// InputType is the lower-case type attribute of an input element.
	InputType() string
	Disabled() bool
	// HasNativeWidget reports whether a native input widget (date or time
	// pickers) handles the element instead of the document.
	HasNativeWidget() bool
	UserSelectNone() bool
	Direction() Direction
	OwnerView() View
	// BoundingClientRect is in the owner view's client coordinates.
	BoundingClientRect() geom.Rect
	TextLength() int
	Focus()
	Blur()
	// Alive reports whether the element is still attached to a document.
	Alive() bool
	// Editor returns the editing interface of form fields.
	Editor() (Editor, bool)
}

// Editor is the editing interface of input and textarea elements. Offsets
// are in characters.
type Editor interface {
	Selection() Selection
	SelectionStart() int
	SelectionEnd() int
	SetSelectionRange(start, end int)
	Value() string
	SetValue(v string)
	SelectAll()
	// Paste replaces the current selection with text.
	Paste(text string)
	// TextBounds is the bounding rect of the field's text content.
	TextBounds() geom.Rect
	ScrollLine(forward bool)
	ScrollCharacter(forward bool)
}

// Engine is the top-level document engine.
type Engine interface {
	// ScrollXY is the top-level view's scroll offset.
	ScrollXY() geom.Point
	// SelectAtPoint selects at a point in top-level client coordinates.
	SelectAtPoint(p geom.Point, g Granularity) bool
	// CaretRect returns the caret rectangle at offset inside an editable
	// element, in device pixels relative to the element's view.
	CaretRect(el Element, offset int) (geom.Rect, bool)
	// EditorRect returns the editable element's rectangle in device pixels
	// relative to the element's view.
	EditorRect(el Element) (geom.Rect, bool)
	DevicePixelRatio() float64
	// SendClick synthesizes a mouse down/up pair at p in view coordinates.
	SendClick(view View, p geom.Point)
}
