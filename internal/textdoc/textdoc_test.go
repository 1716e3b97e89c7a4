package textdoc

import (
	"testing"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

func TestLayoutStacksElements(t *testing.T) {
	d := New()
	a := d.AddText("hello")
	b := d.AddText("world")

	if got := a.BoundingClientRect(); got != (geom.Rect{Left: 0, Top: 0, Right: 320, Bottom: 16}) {
		t.Errorf("a rect = %v", got)
	}
	if got := b.BoundingClientRect(); got.Top != 16 || got.Bottom != 32 {
		t.Errorf("b rect = %v, want top 16 bottom 32", got)
	}
	if got := d.ContentHeight(); got != 32 {
		t.Errorf("content height = %g, want 32", got)
	}
}

func TestLayoutWrapsLongText(t *testing.T) {
	d := New(WithSize(80, 100)) // 10 columns
	e := d.AddText("abcdefghijklmno")
	if got := e.BoundingClientRect().Height(); got != 32 {
		t.Errorf("height = %g, want 32 (two lines)", got)
	}
	x, line := e.caretPoint(12)
	if x != 16 || line != 1 {
		t.Errorf("caretPoint(12) = %g,%d, want 16,1", x, line)
	}
}

func TestCaretPositionFromPoint(t *testing.T) {
	d := New()
	e := d.AddText("abcdef")

	tests := []struct {
		name string
		p    geom.Point
		want int
		ok   bool
	}{
		{"left half of first glyph", geom.Pt(2, 8), 0, true},
		{"right half of first glyph", geom.Pt(6, 8), 1, true},
		{"past end of line", geom.Pt(200, 8), 6, true},
		{"below document", geom.Pt(10, 100), 0, false},
		{"left of document", geom.Pt(-5, 8), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, ok := d.CaretPositionFromPoint(tt.p)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && (pos.Node != dom.Node(e) || pos.Offset != tt.want) {
				t.Errorf("pos = %v/%d, want %d", pos.Node, pos.Offset, tt.want)
			}
		})
	}
}

func TestCaretPositionFromPointRespectsScroll(t *testing.T) {
	d := New()
	d.AddText("first")
	second := d.AddText("second")
	d.ScrollTo(geom.Pt(0, 16))

	pos, ok := d.CaretPositionFromPoint(geom.Pt(1, 2))
	if !ok || pos.Node != dom.Node(second) || pos.Offset != 0 {
		t.Errorf("pos = %+v ok=%v, want start of second", pos, ok)
	}
}

func TestRTLGlyphPlacement(t *testing.T) {
	d := New(WithSize(80, 100))
	e := d.AddText("abc").SetDirection(dom.RTL)
	d.ensureLayout()

	if got := e.glyphLeft(0); got != 72 {
		t.Errorf("glyphLeft(0) = %g, want 72", got)
	}
	if got := e.glyphLeft(2); got != 56 {
		t.Errorf("glyphLeft(2) = %g, want 56", got)
	}

	pos, ok := d.CaretPositionFromPoint(geom.Pt(78, 8))
	if !ok || pos.Offset != 0 {
		t.Errorf("right edge hit = %d, want 0", pos.Offset)
	}
	pos, _ = d.CaretPositionFromPoint(geom.Pt(10, 8))
	if pos.Offset != 3 {
		t.Errorf("left side hit = %d, want 3", pos.Offset)
	}
}

func TestAutoDirection(t *testing.T) {
	d := New()
	rtl := d.AddText("שלום world").SetAutoDirection()
	ltr := d.AddText("123 hello").SetAutoDirection()
	if rtl.Direction() != dom.RTL {
		t.Error("hebrew text should resolve to rtl")
	}
	if ltr.Direction() != dom.LTR {
		t.Error("latin text should resolve to ltr")
	}
}

func TestSelectionStringAndRects(t *testing.T) {
	d := New()
	a := d.AddText("hello world")
	b := d.AddText("second line")
	sel := d.DocumentSelection()

	if err := sel.Collapse(dom.Position{Node: a, Offset: 6}); err != nil {
		t.Fatal(err)
	}
	if err := sel.Extend(dom.Position{Node: b, Offset: 6}); err != nil {
		t.Fatal(err)
	}
	if got := sel.String(); got != "world\nsecond" {
		t.Errorf("String = %q", got)
	}
	rects := sel.ClientRects()
	if len(rects) != 2 {
		t.Fatalf("rects = %v, want 2", rects)
	}
	if rects[0] != (geom.Rect{Left: 48, Top: 0, Right: 88, Bottom: 16}) {
		t.Errorf("rects[0] = %v", rects[0])
	}
	if rects[1] != (geom.Rect{Left: 0, Top: 16, Right: 48, Bottom: 32}) {
		t.Errorf("rects[1] = %v", rects[1])
	}
	if got := sel.BoundingClientRect(); got != (geom.Rect{Left: 0, Top: 0, Right: 88, Bottom: 32}) {
		t.Errorf("bounding = %v", got)
	}
}

func TestSelectionBackwardFocus(t *testing.T) {
	d := New()
	a := d.AddText("abcdef")
	sel := d.DocumentSelection()
	_ = sel.Collapse(dom.Position{Node: a, Offset: 4})
	_ = sel.Extend(dom.Position{Node: a, Offset: 1})

	if got := sel.String(); got != "bcd" {
		t.Errorf("String = %q, want bcd", got)
	}
	if err := sel.CollapseToStart(); err != nil {
		t.Fatal(err)
	}
	if sel.Anchor().Offset != 1 || !sel.IsCollapsed() || sel.RangeCount() != 1 {
		t.Errorf("after CollapseToStart anchor=%d collapsed=%v", sel.Anchor().Offset, sel.IsCollapsed())
	}
}

func TestSelectionValidation(t *testing.T) {
	d := New()
	a := d.AddText("abc")
	other := New().AddText("zzz")
	sel := d.DocumentSelection()

	if err := sel.Extend(dom.Position{Node: a, Offset: 1}); err != ErrNoRange {
		t.Errorf("Extend without range = %v, want ErrNoRange", err)
	}
	if err := sel.Collapse(dom.Position{Node: other, Offset: 0}); err == nil {
		t.Error("expected error for foreign node")
	}
	if err := sel.Collapse(dom.Position{Node: a, Offset: 9}); err == nil {
		t.Error("expected error for out of range offset")
	}
}

type recordingListener struct {
	reasons []dom.ChangeReason
}

func (l *recordingListener) SelectionChanged(_ dom.Selection, reason dom.ChangeReason) {
	l.reasons = append(l.reasons, reason)
}

func TestSelectionListeners(t *testing.T) {
	d := New()
	a := d.AddText("abc def")
	sel := d.DocumentSelection()
	l := &recordingListener{}
	sel.AddListener(l)
	sel.AddListener(l)
	if sel.ListenerCount() != 1 {
		t.Fatalf("listener count = %d, want 1", sel.ListenerCount())
	}

	_ = sel.Collapse(dom.Position{Node: a, Offset: 0})
	sel.ExtendBy(dom.Forward, dom.GranularityWord)
	_ = sel.CollapseToStart()
	sel.RemoveListener(l)
	sel.RemoveAllRanges()

	want := []dom.ChangeReason{dom.ReasonNone, dom.ReasonKeypress, dom.ReasonCollapseToStart}
	if len(l.reasons) != len(want) {
		t.Fatalf("reasons = %v, want %v", l.reasons, want)
	}
	for i := range want {
		if l.reasons[i] != want[i] {
			t.Errorf("reasons[%d] = %v, want %v", i, l.reasons[i], want[i])
		}
	}
}

func TestExtendByWord(t *testing.T) {
	d := New()
	a := d.AddText("Call +1 (555) now")
	sel := d.DocumentSelection()
	_ = sel.Collapse(dom.Position{Node: a, Offset: 9})
	_ = sel.Extend(dom.Position{Node: a, Offset: 12})

	sel.ExtendBy(dom.Forward, dom.GranularityWord)
	if got := sel.String(); got != "555)" {
		t.Errorf("forward word = %q, want 555)", got)
	}
	sel.ExtendBy(dom.Forward, dom.GranularityWord)
	sel.ExtendBy(dom.Forward, dom.GranularityWord)
	if got := sel.Focus().Offset; got != 17 {
		t.Errorf("focus at end = %d, want 17", got)
	}

	_ = sel.Collapse(dom.Position{Node: a, Offset: 9})
	sel.ExtendBy(dom.Backward, dom.GranularityWord)
	if got := sel.Focus().Offset; got != 8 {
		t.Errorf("backward word = %d, want 8", got)
	}
	sel.ExtendBy(dom.Backward, dom.GranularityWord)
	if got := sel.Focus().Offset; got != 5 {
		t.Errorf("second backward word = %d, want 5", got)
	}
}

func TestWordBounds(t *testing.T) {
	text := []rune("Call +1 (555) now")
	tests := []struct {
		idx        int
		start, end int
		ok         bool
	}{
		{0, 0, 4, true},
		{10, 9, 12, true},
		{4, 0, 0, false},   // space
		{8, 0, 0, false},   // "("
		{15, 14, 17, true}, // "now"
	}
	for _, tt := range tests {
		s, e, ok := wordBounds(text, tt.idx)
		if ok != tt.ok || (ok && (s != tt.start || e != tt.end)) {
			t.Errorf("wordBounds(%d) = %d,%d,%v want %d,%d,%v", tt.idx, s, e, ok, tt.start, tt.end, tt.ok)
		}
	}
}

func TestSelectAllAndLastTextPosition(t *testing.T) {
	d := New()
	a := d.AddText("one")
	d.AddInput("text", "field")
	b := d.AddText("two")

	d.SelectAll()
	sel := d.DocumentSelection()
	if sel.Anchor().Node != dom.Node(a) || sel.Focus().Node != dom.Node(b) || sel.Focus().Offset != 3 {
		t.Errorf("select all = %+v .. %+v", sel.Anchor(), sel.Focus())
	}
	if got := sel.String(); got != "one\ntwo" {
		t.Errorf("String = %q, fields must be excluded", got)
	}
	pos, ok := d.LastTextPosition()
	if !ok || pos.Node != dom.Node(b) || pos.Offset != 3 {
		t.Errorf("LastTextPosition = %+v %v", pos, ok)
	}
}

func TestEditor(t *testing.T) {
	d := New()
	in := d.AddInput("text", "hello world")
	ed, ok := in.Editor()
	if !ok {
		t.Fatal("input should have an editor")
	}
	ed.SetSelectionRange(8, 2)
	if ed.SelectionStart() != 2 || ed.SelectionEnd() != 8 {
		t.Errorf("range = %d..%d, want 2..8", ed.SelectionStart(), ed.SelectionEnd())
	}
	ed.Paste("X")
	if got := ed.Value(); got != "heXrld" {
		t.Errorf("after paste = %q", got)
	}
	if ed.SelectionStart() != 3 || ed.SelectionEnd() != 3 {
		t.Errorf("caret = %d..%d, want 3..3", ed.SelectionStart(), ed.SelectionEnd())
	}
	ed.SelectAll()
	if got := ed.Selection().String(); got != "heXrld" {
		t.Errorf("select all = %q", got)
	}
	ed.SetValue("ab")
	if ed.SelectionStart() != 2 {
		t.Errorf("caret after SetValue = %d, want 2", ed.SelectionStart())
	}
	if _, ok := d.AddText("plain").Editor(); ok {
		t.Error("plain text must not have an editor")
	}
}

func TestEngineSelectAtPoint(t *testing.T) {
	d := New()
	e := d.AddText("Call +1 (555) 123-4567 now")
	en := NewEngine(d, 1)

	if !en.SelectAtPoint(geom.Pt(84, 8), dom.GranularityWordNoSpace) {
		t.Fatal("expected selection")
	}
	if got := d.DocumentSelection().String(); got != "555" {
		t.Errorf("selected %q, want 555", got)
	}
	if en.SelectAtPoint(geom.Pt(36, 8), dom.GranularityWordNoSpace) {
		t.Error("selecting a space should fail")
	}
	if !en.SelectAtPoint(geom.Pt(1, 1), dom.GranularityParagraph) {
		t.Fatal("paragraph selection failed")
	}
	if got := d.DocumentSelection().String(); got != e.NodeText() {
		t.Errorf("paragraph = %q", got)
	}
}

func TestEngineSelectAtPointInFrame(t *testing.T) {
	d := New()
	d.AddText("top")
	_, child := d.AddFrame(64)
	inner := child.AddText("inner words")
	en := NewEngine(d, 1)

	// frame starts at y=16; "words" starts at x=48
	if !en.SelectAtPoint(geom.Pt(50, 20), dom.GranularityWordNoSpace) {
		t.Fatal("expected selection in frame")
	}
	sel := child.DocumentSelection()
	if sel.Anchor().Node != dom.Node(inner) || sel.String() != "words" {
		t.Errorf("frame selection = %q", sel.String())
	}
	if d.DocumentSelection().RangeCount() != 0 {
		t.Error("top document selection should be untouched")
	}
}

func TestFrameViewChain(t *testing.T) {
	d := New()
	frame, child := d.AddFrame(50)
	if d.FrameElement() != nil || d.Parent() != nil {
		t.Error("top level must have no frame element or parent")
	}
	if child.FrameElement() != dom.Element(frame) {
		t.Error("child frame element mismatch")
	}
	if child.Parent() != dom.View(d) {
		t.Error("child parent mismatch")
	}
}

func TestEngineCaretRectDevicePixels(t *testing.T) {
	d := New()
	in := d.AddInput("text", "abc")
	en := NewEngine(d, 2)

	r, ok := en.CaretRect(in, 2)
	if !ok {
		t.Fatal("caret rect unavailable")
	}
	if r != (geom.Rect{Left: 32, Top: 0, Right: 34, Bottom: 32}) {
		t.Errorf("caret rect = %v", r)
	}
	er, _ := en.EditorRect(in)
	if er.Width() != 640 {
		t.Errorf("editor rect width = %g, want 640", er.Width())
	}
}

func TestEngineSendClickPlacesCaret(t *testing.T) {
	d := New()
	in := d.AddInput("text", "abcdef")
	en := NewEngine(d, 1)

	en.SendClick(d, geom.Pt(26, 8))
	ed, _ := in.Editor()
	if ed.SelectionStart() != 3 || ed.SelectionEnd() != 3 {
		t.Errorf("caret = %d..%d, want 3", ed.SelectionStart(), ed.SelectionEnd())
	}
	if !in.Focused() {
		t.Error("click should focus the field")
	}
	if len(en.Clicks()) != 1 {
		t.Errorf("clicks = %v", en.Clicks())
	}
}

func TestRemoveMakesElementDead(t *testing.T) {
	d := New()
	e := d.AddText("gone")
	e.Remove()
	if e.Alive() {
		t.Error("removed element should not be alive")
	}
	if len(d.Elements()) != 0 {
		t.Error("element still listed")
	}
}

func TestHasNativeWidget(t *testing.T) {
	d := New()
	if !d.AddInput("date", "").HasNativeWidget() {
		t.Error("date input should use native widget")
	}
	if d.AddInput("text", "").HasNativeWidget() {
		t.Error("text input should not use native widget")
	}
}

func TestDocumentGlyphs(t *testing.T) {
	d := New(WithSize(32, 64))
	d.AddText("ab\ncd")
	d.AddText("efghij")

	gs := d.Glyphs()
	var got []rune
	for _, g := range gs {
		got = append(got, g.Rune)
	}
	if string(got) != "abcdefghij" {
		t.Fatalf("glyph runes = %q", string(got))
	}
	// "cd" sits on the second line; "ij" wraps at four columns.
	if r := gs[2].Rect; r.Left != 0 || r.Top != 16 {
		t.Errorf("c at %v, want (0,16)", r)
	}
	if r := gs[8].Rect; r.Left != 0 || r.Top != 48 {
		t.Errorf("i at %v, want (0,48)", r)
	}

	d.ScrollTo(geom.Pt(0, 16))
	if r := d.Glyphs()[0].Rect; r.Top != -16 {
		t.Errorf("scrolled a top = %v, want -16", r.Top)
	}
}

func TestElementFromPoint(t *testing.T) {
	d := New()
	text := d.AddText("top")
	_, child := d.AddFrame(64)
	inner := child.AddText("inner")

	if e, _ := d.ElementFromPoint(geom.Pt(4, 8)); e != text {
		t.Errorf("ElementFromPoint(4,8) = %v, want top text", e)
	}
	e, local := d.ElementFromPoint(geom.Pt(4, 24))
	if e != inner {
		t.Fatalf("ElementFromPoint(4,24) = %v, want frame text", e)
	}
	if local != geom.Pt(4, 8) {
		t.Errorf("local = %v, want (4,8)", local)
	}
	if e, _ := d.ElementFromPoint(geom.Pt(4, 400)); e != nil {
		t.Errorf("below content = %v, want nil", e)
	}
}
