// Package textdoc is an in-memory document engine implementing the dom
// interfaces. Elements are stacked vertically and their text is laid out on a
// fixed cell grid, which keeps hit testing and selection rectangles exact.
// Frame elements host nested documents with their own scroll offsets.
package textdoc

import (
	"errors"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// Layout defaults, in CSS pixels.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
	DefaultWidth      = 320.0
	DefaultHeight     = 480.0
)

// Errors returned by selection mutations.
var (
	// ErrNoRange is returned when a selection operation needs a range.
	ErrNoRange = errors.New("selection has no range")

	// ErrInvalidPosition is returned for positions outside the document.
	ErrInvalidPosition = errors.New("position is not in this document")
)

// Document is a view onto a list of elements.
type Document struct {
	width, height float64
	cellW, cellH  float64

	elements []*Element
	scroll   geom.Point
	sel      *Selection
	active   *Element

	// frame hosts this document inside parent; both nil at top level.
	frame  *Element
	parent *Document

	dirty bool
}

// Option configures a Document.
type Option func(*Document)

// WithSize sets the viewport size.
func WithSize(w, h float64) Option {
	return func(d *Document) {
		if w > 0 {
			d.width = w
		}
		if h > 0 {
			d.height = h
		}
	}
}

// WithCellSize sets the glyph cell size.
func WithCellSize(w, h float64) Option {
	return func(d *Document) {
		if w > 0 {
			d.cellW = w
		}
		if h > 0 {
			d.cellH = h
		}
	}
}

// New creates an empty top-level document.
func New(opts ...Option) *Document {
	d := &Document{
		width:  DefaultWidth,
		height: DefaultHeight,
		cellW:  DefaultCellWidth,
		cellH:  DefaultCellHeight,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.sel = newSelection(d, nil)
	return d
}

// Width returns the viewport width.
func (d *Document) Width() float64 { return d.width }

// Height returns the viewport height.
func (d *Document) Height() float64 { return d.height }

// CellSize returns the glyph cell size.
func (d *Document) CellSize() (float64, float64) { return d.cellW, d.cellH }

// Elements returns the document's elements in order.
func (d *Document) Elements() []*Element {
	out := make([]*Element, len(d.elements))
	copy(out, d.elements)
	return out
}

// ContentHeight returns the laid-out height of all elements.
func (d *Document) ContentHeight() float64 {
	d.ensureLayout()
	if len(d.elements) == 0 {
		return 0
	}
	last := d.elements[len(d.elements)-1]
	return last.top + last.height()
}

// ScrollTo sets the scroll offset.
func (d *Document) ScrollTo(p geom.Point) {
	d.scroll = p
}

// Scroll returns the scroll offset.
func (d *Document) Scroll() geom.Point {
	return d.scroll
}

// ActiveElement returns the focused element, or nil.
func (d *Document) ActiveElement() *Element {
	return d.active
}

func (d *Document) add(e *Element) *Element {
	e.doc = d
	d.elements = append(d.elements, e)
	d.dirty = true
	return e
}

// AddText appends a generic text container.
func (d *Document) AddText(text string) *Element {
	return d.add(newElement(dom.KindText, text))
}

// AddPre appends a preformatted text block.
func (d *Document) AddPre(text string) *Element {
	return d.add(newElement(dom.KindPre, text))
}

// AddInput appends an input field of the given type.
func (d *Document) AddInput(inputType, value string) *Element {
	e := newElement(dom.KindInput, value)
	e.inputType = inputType
	d.add(e)
	e.editor = newEditor(e)
	return e
}

// AddTextArea appends a multi-line field.
func (d *Document) AddTextArea(value string) *Element {
	e := d.add(newElement(dom.KindTextArea, value))
	e.editor = newEditor(e)
	return e
}

// AddButton appends a button.
func (d *Document) AddButton(label string) *Element {
	return d.add(newElement(dom.KindButton, label))
}

// AddImage appends an image of the given height.
func (d *Document) AddImage(height float64) *Element {
	e := newElement(dom.KindImage, "")
	e.fixedHeight = height
	return d.add(e)
}

// AddFrame appends a frame element of the given height hosting a new
// document of the same width.
func (d *Document) AddFrame(height float64) (*Element, *Document) {
	e := newElement(dom.KindFrame, "")
	e.fixedHeight = height
	d.add(e)
	child := &Document{
		width:  d.width,
		height: height,
		cellW:  d.cellW,
		cellH:  d.cellH,
		frame:  e,
		parent: d,
	}
	child.sel = newSelection(child, nil)
	e.child = child
	return e, child
}

// remove detaches e from the document.
func (d *Document) remove(e *Element) {
	for i, el := range d.elements {
		if el == e {
			d.elements = append(d.elements[:i], d.elements[i+1:]...)
			d.dirty = true
			break
		}
	}
	if d.active == e {
		d.active = nil
	}
}

func (d *Document) indexOf(e *Element) int {
	for i, el := range d.elements {
		if el == e {
			return i
		}
	}
	return -1
}

// Selection implements dom.View.
func (d *Document) Selection() dom.Selection {
	return d.sel
}

// DocumentSelection returns the concrete document selection.
func (d *Document) DocumentSelection() *Selection {
	return d.sel
}

// FrameElement implements dom.View.
func (d *Document) FrameElement() dom.Element {
	if d.frame == nil {
		return nil
	}
	return d.frame
}

// Parent implements dom.View.
func (d *Document) Parent() dom.View {
	if d.parent == nil {
		return nil
	}
	return d.parent
}

// CaretPositionFromPoint implements dom.View.
func (d *Document) CaretPositionFromPoint(p geom.Point) (dom.Position, bool) {
	e, local := d.elementAt(p)
	if e == nil || !e.hasText() {
		return dom.Position{}, false
	}
	return dom.Position{Node: e, Offset: e.offsetAt(local)}, true
}

// SelectAll implements dom.View.
func (d *Document) SelectAll() {
	first, last := d.firstText(), d.lastText()
	if first == nil {
		d.sel.RemoveAllRanges()
		return
	}
	d.sel.set(dom.Position{Node: first, Offset: 0}, dom.Position{Node: last, Offset: last.TextLength()})
	d.sel.notify(dom.ReasonSelectAll)
}

// LastTextPosition implements dom.View.
func (d *Document) LastTextPosition() (dom.Position, bool) {
	last := d.lastText()
	if last == nil {
		return dom.Position{}, false
	}
	return dom.Position{Node: last, Offset: last.TextLength()}, true
}

func (d *Document) firstText() *Element {
	for _, e := range d.elements {
		if e.isDocumentText() {
			return e
		}
	}
	return nil
}

func (d *Document) lastText() *Element {
	for i := len(d.elements) - 1; i >= 0; i-- {
		if d.elements[i].isDocumentText() {
			return d.elements[i]
		}
	}
	return nil
}

// elementAt returns the element under a client point and the point in
// document coordinates.
func (d *Document) elementAt(p geom.Point) (*Element, geom.Point) {
	d.ensureLayout()
	docPt := p.Add(d.scroll)
	if docPt.X < 0 || docPt.X >= d.width {
		return nil, docPt
	}
	for _, e := range d.elements {
		if docPt.Y >= e.top && docPt.Y < e.top+e.height() {
			return e, docPt
		}
	}
	return nil, docPt
}

// hit descends through frames to the innermost document under a client
// point, returning that document, the element and the point in the
// document's client coordinates.
func (d *Document) hit(p geom.Point) (*Document, *Element, geom.Point) {
	doc, pt := d, p
	for depth := 0; depth < maxFrameDepth; depth++ {
		e, _ := doc.elementAt(pt)
		if e == nil {
			return doc, nil, pt
		}
		if e.kind != dom.KindFrame || e.child == nil {
			return doc, e, pt
		}
		pt = pt.Sub(e.BoundingClientRect().Origin())
		doc = e.child
	}
	return doc, nil, pt
}

const maxFrameDepth = 32

// ElementFromPoint returns the innermost element under a client point,
// descending into frames, and the point in the client coordinates of the
// element's document.
func (d *Document) ElementFromPoint(p geom.Point) (*Element, geom.Point) {
	_, e, local := d.hit(p)
	return e, local
}
