package textdoc

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/bidi"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// glyph is the grid placement of one character.
type glyph struct {
	line  int
	col   int
	width int
}

func (d *Document) columns() int {
	cols := int(d.width / d.cellW)
	if cols < 1 {
		cols = 1
	}
	return cols
}

// ensureLayout recomputes element positions and glyph placement.
func (d *Document) ensureLayout() {
	if !d.dirty && d.laidOut() {
		return
	}
	cols := d.columns()
	y := 0.0
	for _, e := range d.elements {
		e.top = y
		e.layout(cols)
		y += e.height()
	}
	d.dirty = false
}

func (d *Document) laidOut() bool {
	for _, e := range d.elements {
		if e.lines == 0 {
			return false
		}
	}
	return true
}

func (e *Element) layout(cols int) {
	e.glyphs = e.glyphs[:0]
	line, col := 0, 0
	for _, r := range e.text {
		if r == '\n' {
			e.glyphs = append(e.glyphs, glyph{line: line, col: col})
			line++
			col = 0
			continue
		}
		w := runewidth.RuneWidth(r)
		if col > 0 && col+w > cols {
			line++
			col = 0
		}
		e.glyphs = append(e.glyphs, glyph{line: line, col: col, width: w})
		col += w
	}
	e.lines = line + 1
}

func (e *Element) height() float64 {
	if e.fixedHeight > 0 {
		return e.fixedHeight
	}
	return float64(e.lines) * e.doc.cellH
}

// glyphLeft returns the left edge of glyph i in document coordinates.
func (e *Element) glyphLeft(i int) float64 {
	g := e.glyphs[i]
	if e.Direction() == dom.RTL {
		return e.doc.width - float64(g.col+g.width)*e.doc.cellW
	}
	return float64(g.col) * e.doc.cellW
}

func (e *Element) glyphRight(i int) float64 {
	return e.glyphLeft(i) + float64(e.glyphs[i].width)*e.doc.cellW
}

// caretPoint returns the caret's x and line for a boundary offset, in
// document coordinates.
func (e *Element) caretPoint(offset int) (float64, int) {
	e.doc.ensureLayout()
	rtl := e.Direction() == dom.RTL
	n := len(e.glyphs)
	switch {
	case n == 0:
		if rtl {
			return e.doc.width, 0
		}
		return 0, 0
	case offset < n:
		if rtl {
			return e.glyphRight(offset), e.glyphs[offset].line
		}
		return e.glyphLeft(offset), e.glyphs[offset].line
	default:
		last := n - 1
		if e.text[last] == '\n' {
			if rtl {
				return e.doc.width, e.glyphs[last].line + 1
			}
			return 0, e.glyphs[last].line + 1
		}
		if rtl {
			return e.glyphLeft(last), e.glyphs[last].line
		}
		return e.glyphRight(last), e.glyphs[last].line
	}
}

// caretRect returns a one pixel wide caret rectangle in client coordinates.
func (e *Element) caretRect(offset int) geom.Rect {
	x, line := e.caretPoint(offset)
	top := e.top + float64(line)*e.doc.cellH
	r := geom.Rect{Left: x, Top: top, Right: x + 1, Bottom: top + e.doc.cellH}
	return r.Translate(geom.Point{X: -e.doc.scroll.X, Y: -e.doc.scroll.Y})
}

// offsetAt maps a document point inside the element to a boundary offset.
func (e *Element) offsetAt(p geom.Point) int {
	e.doc.ensureLayout()
	line := int((p.Y - e.top) / e.doc.cellH)
	rtl := e.Direction() == dom.RTL
	last := -1
	for i, g := range e.glyphs {
		if g.line != line {
			if g.line > line {
				break
			}
			continue
		}
		last = i
		if e.text[i] == '\n' {
			return i
		}
		mid := e.glyphLeft(i) + float64(g.width)*e.doc.cellW/2
		if (!rtl && p.X < mid) || (rtl && p.X > mid) {
			return i
		}
	}
	if last < 0 {
		if line <= 0 {
			return 0
		}
		return len(e.text)
	}
	return last + 1
}

// glyphAt returns the index of the glyph covering a document point.
func (e *Element) glyphAt(p geom.Point) (int, bool) {
	e.doc.ensureLayout()
	line := int((p.Y - e.top) / e.doc.cellH)
	for i, g := range e.glyphs {
		if g.line != line || g.width == 0 {
			continue
		}
		if p.X >= e.glyphLeft(i) && p.X < e.glyphRight(i) {
			return i, true
		}
	}
	return 0, false
}

// lineRects returns one rectangle per line covered by glyphs [from, to), in
// client coordinates.
func (e *Element) lineRects(from, to int) []geom.Rect {
	e.doc.ensureLayout()
	from = max(from, 0)
	to = min(to, len(e.glyphs))
	var rects []geom.Rect
	cur := -1
	for i := from; i < to; i++ {
		g := e.glyphs[i]
		left, right := e.glyphLeft(i), e.glyphRight(i)
		if e.text[i] == '\n' {
			left, right = e.caretXBefore(i), e.caretXBefore(i)
		}
		if g.line != cur {
			top := e.top + float64(g.line)*e.doc.cellH
			rects = append(rects, geom.Rect{Left: left, Top: top, Right: right, Bottom: top + e.doc.cellH})
			cur = g.line
			continue
		}
		r := &rects[len(rects)-1]
		r.Left = min(r.Left, left)
		r.Right = max(r.Right, right)
	}
	off := geom.Point{X: -e.doc.scroll.X, Y: -e.doc.scroll.Y}
	for i := range rects {
		rects[i] = rects[i].Translate(off)
	}
	return rects
}

// caretXBefore returns the x of the boundary before glyph i.
func (e *Element) caretXBefore(i int) float64 {
	if e.Direction() == dom.RTL {
		return e.glyphRight(i)
	}
	return e.glyphLeft(i)
}

// detectDirection returns the direction of the first strong character.
func detectDirection(text []rune) dom.Direction {
	for _, r := range text {
		props, _ := bidi.LookupRune(r)
		switch props.Class() {
		case bidi.R, bidi.AL:
			return dom.RTL
		case bidi.L:
			return dom.LTR
		}
	}
	return dom.LTR
}

// Glyph is a laid-out character of an element.
type Glyph struct {
	Element *Element
	Index   int
	Rune    rune
	// Rect is the glyph cell in client coordinates.
	Rect geom.Rect
}

// Glyphs returns the printable characters of d in layout order. Frame
// contents belong to the frame's own document.
func (d *Document) Glyphs() []Glyph {
	d.ensureLayout()
	var out []Glyph
	for _, e := range d.elements {
		for i, g := range e.glyphs {
			if g.width == 0 || e.text[i] == '\n' {
				continue
			}
			left := e.glyphLeft(i) - d.scroll.X
			top := e.top + float64(g.line)*d.cellH - d.scroll.Y
			out = append(out, Glyph{
				Element: e,
				Index:   i,
				Rune:    e.text[i],
				Rect:    geom.Rect{Left: left, Top: top, Right: left + float64(g.width)*d.cellW, Bottom: top + d.cellH},
			})
		}
	}
	return out
}
