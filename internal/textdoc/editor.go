package textdoc

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// editor implements dom.Editor for input and textarea elements.
type editor struct {
	el  *Element
	sel *Selection

	scrolledLines int
	scrolledChars int
}

func newEditor(el *Element) *editor {
	ed := &editor{el: el}
	ed.sel = newSelection(el.doc, el)
	return ed
}

func (ed *editor) pos(offset int) dom.Position {
	return dom.Position{Node: ed.el, Offset: min(max(offset, 0), len(ed.el.text))}
}

// Selection implements dom.Editor.
func (ed *editor) Selection() dom.Selection { return ed.sel }

// SelectionStart implements dom.Editor.
func (ed *editor) SelectionStart() int {
	if !ed.sel.has {
		return 0
	}
	return min(ed.sel.anchor.Offset, ed.sel.focus.Offset)
}

// SelectionEnd implements dom.Editor.
func (ed *editor) SelectionEnd() int {
	if !ed.sel.has {
		return 0
	}
	return max(ed.sel.anchor.Offset, ed.sel.focus.Offset)
}

// SetSelectionRange implements dom.Editor.
func (ed *editor) SetSelectionRange(start, end int) {
	if end < start {
		start, end = end, start
	}
	ed.sel.set(ed.pos(start), ed.pos(end))
	ed.sel.notify(dom.ReasonNone)
}

// Value implements dom.Editor.
func (ed *editor) Value() string { return string(ed.el.text) }

// SetValue implements dom.Editor. The caret moves to the end of the value.
func (ed *editor) SetValue(v string) {
	ed.el.SetText(v)
	end := ed.pos(len(ed.el.text))
	ed.sel.set(end, end)
	ed.sel.notify(dom.ReasonNone)
}

// SelectAll implements dom.Editor.
func (ed *editor) SelectAll() {
	ed.sel.set(ed.pos(0), ed.pos(len(ed.el.text)))
	ed.sel.notify(dom.ReasonSelectAll)
}

// Paste implements dom.Editor.
func (ed *editor) Paste(text string) {
	start, end := ed.SelectionStart(), ed.SelectionEnd()
	runes := ed.el.text
	out := make([]rune, 0, len(runes)+len(text))
	out = append(out, runes[:start]...)
	out = append(out, []rune(text)...)
	out = append(out, runes[end:]...)
	ed.el.text = out
	ed.el.markDirty()
	caret := ed.pos(start + len([]rune(text)))
	ed.sel.set(caret, caret)
	ed.sel.notify(dom.ReasonKeypress)
}

// TextBounds implements dom.Editor.
func (ed *editor) TextBounds() geom.Rect {
	if len(ed.el.text) == 0 {
		return ed.el.BoundingClientRect()
	}
	var out geom.Rect
	for _, r := range ed.el.lineRects(0, len(ed.el.text)) {
		out = out.Union(r)
	}
	return out
}

// ScrollLine implements dom.Editor.
func (ed *editor) ScrollLine(forward bool) {
	if forward {
		ed.scrolledLines++
	} else {
		ed.scrolledLines--
	}
}

// ScrollCharacter implements dom.Editor.
func (ed *editor) ScrollCharacter(forward bool) {
	if forward {
		ed.scrolledChars++
	} else {
		ed.scrolledChars--
	}
}

// EditorScroll returns the net line and character scroll requests received
// by an editable element.
func (e *Element) EditorScroll() (lines, chars int) {
	if e.editor == nil {
		return 0, 0
	}
	return e.editor.scrolledLines, e.editor.scrolledChars
}

// EditorSelection returns the concrete field selection, or nil.
func (e *Element) EditorSelection() *Selection {
	if e.editor == nil {
		return nil
	}
	return e.editor.sel
}
