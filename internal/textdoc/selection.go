package textdoc

import (
	"fmt"
	"strings"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// Selection is a single-range selection over a document, or over one field
// when scope is set. The anchor is where the selection started and the focus
// is the moving end; the focus may precede the anchor.
type Selection struct {
	doc   *Document
	scope *Element

	anchor dom.Position
	focus  dom.Position
	has    bool

	listeners []dom.SelectionListener
}

func newSelection(doc *Document, scope *Element) *Selection {
	return &Selection{doc: doc, scope: scope}
}

// RangeCount implements dom.Selection.
func (s *Selection) RangeCount() int {
	if s.has {
		return 1
	}
	return 0
}

// IsCollapsed implements dom.Selection.
func (s *Selection) IsCollapsed() bool {
	return !s.has || s.anchor == s.focus
}

// Anchor implements dom.Selection.
func (s *Selection) Anchor() dom.Position { return s.anchor }

// Focus implements dom.Selection.
func (s *Selection) Focus() dom.Position { return s.focus }

// Collapse implements dom.Selection.
func (s *Selection) Collapse(p dom.Position) error {
	if err := s.validate(p); err != nil {
		return err
	}
	s.set(p, p)
	s.notify(dom.ReasonNone)
	return nil
}

// Extend implements dom.Selection.
func (s *Selection) Extend(p dom.Position) error {
	if !s.has {
		return ErrNoRange
	}
	if err := s.validate(p); err != nil {
		return err
	}
	s.focus = p
	s.notify(dom.ReasonNone)
	return nil
}

// CollapseToStart implements dom.Selection.
func (s *Selection) CollapseToStart() error {
	if !s.has {
		return ErrNoRange
	}
	start, _ := s.ordered()
	s.set(start, start)
	s.notify(dom.ReasonCollapseToStart)
	return nil
}

// RemoveAllRanges implements dom.Selection.
func (s *Selection) RemoveAllRanges() {
	s.has = false
	s.anchor, s.focus = dom.Position{}, dom.Position{}
	s.notify(dom.ReasonNone)
}

// ExtendBy implements dom.Selection. Movement stays inside the focus node.
func (s *Selection) ExtendBy(dir dom.MoveDirection, g dom.Granularity) {
	if !s.has {
		return
	}
	e, ok := s.focus.Node.(*Element)
	if !ok {
		return
	}
	next := moveOffset(e.text, s.focus.Offset, dir, g)
	if next == s.focus.Offset {
		return
	}
	s.focus.Offset = next
	s.notify(dom.ReasonKeypress)
}

// String implements dom.Selection.
func (s *Selection) String() string {
	if !s.has {
		return ""
	}
	start, end := s.ordered()
	var parts []string
	s.eachRun(start, end, func(e *Element, from, to int) {
		parts = append(parts, string(e.text[from:to]))
	})
	return strings.Join(parts, "\n")
}

// PreformattedString implements dom.Selection.
func (s *Selection) PreformattedString() string {
	return s.String()
}

// ClientRects implements dom.Selection.
func (s *Selection) ClientRects() []geom.Rect {
	if !s.has || s.IsCollapsed() {
		return nil
	}
	start, end := s.ordered()
	var rects []geom.Rect
	s.eachRun(start, end, func(e *Element, from, to int) {
		rects = append(rects, e.lineRects(from, to)...)
	})
	return rects
}

// BoundingClientRect implements dom.Selection.
func (s *Selection) BoundingClientRect() geom.Rect {
	var out geom.Rect
	for _, r := range s.ClientRects() {
		out = out.Union(r)
	}
	return out
}

// AddListener implements dom.Selection.
func (s *Selection) AddListener(l dom.SelectionListener) {
	for _, existing := range s.listeners {
		if existing == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// RemoveListener implements dom.Selection.
func (s *Selection) RemoveListener(l dom.SelectionListener) {
	for i, existing := range s.listeners {
		if existing == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount returns the number of registered listeners.
func (s *Selection) ListenerCount() int {
	return len(s.listeners)
}

func (s *Selection) set(anchor, focus dom.Position) {
	s.anchor, s.focus = anchor, focus
	s.has = true
}

func (s *Selection) notify(reason dom.ChangeReason) {
	ls := make([]dom.SelectionListener, len(s.listeners))
	copy(ls, s.listeners)
	for _, l := range ls {
		l.SelectionChanged(s, reason)
	}
}

func (s *Selection) validate(p dom.Position) error {
	e, ok := p.Node.(*Element)
	if !ok || e.doc != s.doc || !e.Alive() {
		return ErrInvalidPosition
	}
	if s.scope != nil && e != s.scope {
		return ErrInvalidPosition
	}
	if p.Offset < 0 || p.Offset > len(e.text) {
		return fmt.Errorf("offset %d of %d: %w", p.Offset, len(e.text), ErrInvalidPosition)
	}
	return nil
}

// compare orders two positions in document order.
func (s *Selection) compare(a, b dom.Position) int {
	ai := s.doc.indexOf(a.Node.(*Element))
	bi := s.doc.indexOf(b.Node.(*Element))
	switch {
	case ai < bi:
		return -1
	case ai > bi:
		return 1
	case a.Offset < b.Offset:
		return -1
	case a.Offset > b.Offset:
		return 1
	}
	return 0
}

func (s *Selection) ordered() (dom.Position, dom.Position) {
	if s.compare(s.anchor, s.focus) <= 0 {
		return s.anchor, s.focus
	}
	return s.focus, s.anchor
}

// eachRun calls fn for every text element slice between start and end.
func (s *Selection) eachRun(start, end dom.Position, fn func(e *Element, from, to int)) {
	se := start.Node.(*Element)
	ee := end.Node.(*Element)
	if se == ee {
		if start.Offset < end.Offset {
			fn(se, start.Offset, end.Offset)
		}
		return
	}
	si, ei := s.doc.indexOf(se), s.doc.indexOf(ee)
	for i := si; i <= ei && i >= 0; i++ {
		e := s.doc.elements[i]
		if !e.hasText() || (e != se && e != ee && !e.isDocumentText()) {
			continue
		}
		from, to := 0, len(e.text)
		if e == se {
			from = start.Offset
		}
		if e == ee {
			to = end.Offset
		}
		if from < to {
			fn(e, from, to)
		}
	}
}
