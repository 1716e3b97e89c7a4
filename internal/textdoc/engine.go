package textdoc

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// Engine implements dom.Engine over a top-level Document.
type Engine struct {
	top   *Document
	ratio float64

	clicks []geom.Point
}

// NewEngine creates an engine for top. A non-positive ratio means 1.
func NewEngine(top *Document, ratio float64) *Engine {
	if ratio <= 0 {
		ratio = 1
	}
	return &Engine{top: top, ratio: ratio}
}

// Top returns the top-level document.
func (en *Engine) Top() *Document { return en.top }

// ScrollXY implements dom.Engine.
func (en *Engine) ScrollXY() geom.Point {
	return en.top.scroll
}

// SelectAtPoint implements dom.Engine.
func (en *Engine) SelectAtPoint(p geom.Point, g dom.Granularity) bool {
	doc, e, local := en.top.hit(p)
	if e == nil || !e.hasText() || len(e.text) == 0 {
		return false
	}
	docPt := local.Add(doc.scroll)

	from, to := 0, len(e.text)
	if g != dom.GranularityParagraph {
		idx, ok := e.glyphAt(docPt)
		if !ok {
			return false
		}
		if from, to, ok = wordBounds(e.text, idx); !ok {
			return false
		}
	}

	sel := doc.sel
	if e.editor != nil {
		sel = e.editor.sel
	}
	sel.set(dom.Position{Node: e, Offset: from}, dom.Position{Node: e, Offset: to})
	sel.notify(dom.ReasonMouseUp)
	return true
}

// CaretRect implements dom.Engine.
func (en *Engine) CaretRect(el dom.Element, offset int) (geom.Rect, bool) {
	e, ok := el.(*Element)
	if !ok || !e.Alive() {
		return geom.Rect{}, false
	}
	r := e.caretRect(offset)
	return r.Scale(en.ratio), true
}

// EditorRect implements dom.Engine.
func (en *Engine) EditorRect(el dom.Element) (geom.Rect, bool) {
	e, ok := el.(*Element)
	if !ok || !e.Alive() || e.editor == nil {
		return geom.Rect{}, false
	}
	return e.BoundingClientRect().Scale(en.ratio), true
}

// DevicePixelRatio implements dom.Engine.
func (en *Engine) DevicePixelRatio() float64 {
	return en.ratio
}

// SendClick implements dom.Engine. A click on a field places its caret.
func (en *Engine) SendClick(view dom.View, p geom.Point) {
	en.clicks = append(en.clicks, p)
	doc, ok := view.(*Document)
	if !ok {
		return
	}
	e, docPt := doc.elementAt(p)
	if e == nil || e.editor == nil {
		return
	}
	off := e.offsetAt(docPt)
	e.Focus()
	e.editor.SetSelectionRange(off, off)
}

// Clicks returns the synthesized click points.
func (en *Engine) Clicks() []geom.Point {
	out := make([]geom.Point, len(en.clicks))
	copy(out, en.clicks)
	return out
}
