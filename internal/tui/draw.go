package tui

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/textdoc"
)

var (
	styleHandle = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleMenu   = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleStatus = tcell.StyleDefault.Reverse(true)
	styleImage  = tcell.StyleDefault.Foreground(tcell.ColorGray)
)

// Draw repaints the document, the handles, the menu and the status line.
func (h *Host) Draw() {
	h.screen.Clear()
	width, height := h.screen.Size()
	rows := h.docRows()

	h.drawDocument(h.app.Document(), geom.Point{}, 0, rows, width)
	st := h.overlay.State()
	h.drawHandles(st, rows)
	if height >= 2 {
		h.drawMenu(st, height-2, width)
	}
	if height >= 1 {
		h.drawStatus(st, height-1, width)
	}
	h.screen.Show()
}

// drawDocument paints doc with its client origin at origin, keeping to
// rows [top, bottom).
func (h *Host) drawDocument(doc *textdoc.Document, origin geom.Point, top, bottom, width int) {
	cw, ch := doc.CellSize()
	cell := func(p geom.Point) (int, int) {
		return int(math.Floor(p.X / cw)), int(math.Floor(p.Y / ch))
	}
	selected := selectedRects(doc)

	for _, g := range doc.Glyphs() {
		col, row := cell(g.Rect.Translate(origin).Origin())
		if row < top || row >= bottom || col < 0 || col >= width {
			continue
		}
		style := elementStyle(g.Element)
		mid := geom.Pt((g.Rect.Left+g.Rect.Right)/2, (g.Rect.Top+g.Rect.Bottom)/2)
		for _, r := range selected {
			if r.Contains(mid) {
				style = style.Reverse(true)
				break
			}
		}
		r := g.Rune
		if g.Element.InputType() == "password" {
			r = '*'
		}
		h.screen.SetCell(col, row, r, style)
	}

	for _, e := range doc.Elements() {
		rect := e.BoundingClientRect().Translate(origin)
		_, from := cell(rect.Origin())
		_, to := cell(geom.Pt(rect.Right, rect.Bottom))
		from, to = max(from, top), min(to, bottom)
		switch e.Kind() {
		case dom.KindImage:
			for row := from; row < to; row++ {
				h.screen.Fill(0, row, min(int(rect.Width()/cw), width), '░', styleImage)
			}
		case dom.KindFrame:
			if child := e.Child(); child != nil && from < to {
				h.drawDocument(child, rect.Origin(), from, to, width)
			}
		}
	}
}

// selectedRects returns the highlighted areas of doc: its own selection
// and any uncollapsed field selection.
func selectedRects(doc *textdoc.Document) []geom.Rect {
	var out []geom.Rect
	if sel := doc.DocumentSelection(); !sel.IsCollapsed() {
		out = append(out, sel.ClientRects()...)
	}
	for _, e := range doc.Elements() {
		if sel := e.EditorSelection(); sel != nil && !sel.IsCollapsed() {
			out = append(out, sel.ClientRects()...)
		}
	}
	return out
}

func elementStyle(e *textdoc.Element) tcell.Style {
	style := tcell.StyleDefault
	switch e.Kind() {
	case dom.KindInput, dom.KindTextArea:
		style = style.Underline(true)
	case dom.KindPre:
		style = style.Foreground(tcell.ColorTeal)
	case dom.KindButton:
		style = style.Bold(true)
	}
	if e.Disabled() {
		style = style.Dim(true)
	}
	return style
}

func (h *Host) drawHandles(st OverlayState, rows int) {
	h.handles = h.handles[:0]
	en := h.app.Engine()
	cw, ch := h.app.Document().CellSize()
	ratio, scroll := en.DevicePixelRatio(), en.ScrollXY()

	for _, p := range st.Handles {
		col := int(math.Floor((p.X - scroll.X) * ratio / cw))
		row := int(math.Floor((p.Y - scroll.Y) * ratio / ch))
		if row < 0 || row >= rows || col < 0 {
			continue
		}
		h.screen.SetCell(col, row, handleRune(p.Handle, st.RTL), styleHandle)
		h.handles = append(h.handles, handleHit{handle: p.Handle, x: col, y: row})
	}
}

func handleRune(hd geometry.Handle, rtl bool) rune {
	switch {
	case hd == geometry.HandleMiddle:
		return '▲'
	case (hd == geometry.HandleStart) != rtl:
		return '◢'
	default:
		return '◣'
	}
}

func (h *Host) drawMenu(st OverlayState, row, width int) {
	h.menu = h.menu[:0]
	x := 0
	for _, it := range st.Menu {
		if x >= width {
			break
		}
		from := x
		x = h.screen.DrawText(x, row, " "+it.Label+" ", styleMenu)
		h.menu = append(h.menu, menuHit{id: it.ID, from: from, to: x})
		x++
	}
}

func (h *Host) drawStatus(st OverlayState, row, width int) {
	text := st.Status
	if text == "" {
		text = helpText
	}
	h.screen.Fill(0, row, width, ' ', styleStatus)
	h.screen.DrawText(0, row, text, styleStatus)
}
