package app

import (
	"strconv"
	"strings"

	"github.com/dshills/textsel/internal/bridge"
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/textdoc"
)

// TopViewID names the top-level document on the wire.
const TopViewID = "top"

var _ bridge.Resolver = (*Resolver)(nil)

// Resolver names elements by their index path: "e3" is the fourth
// top-level element and "e3/e0" the first element of the document hosted
// by frame e3. A frame's id also names its document as a view.
type Resolver struct {
	top *textdoc.Document
}

// NewResolver creates a resolver over top.
func NewResolver(top *textdoc.Document) *Resolver {
	return &Resolver{top: top}
}

// Element implements bridge.Resolver.
func (r *Resolver) Element(id string) (dom.Element, bool) {
	el, ok := r.lookup(id)
	if !ok {
		return nil, false
	}
	return el, true
}

// View implements bridge.Resolver.
func (r *Resolver) View(id string) (dom.View, bool) {
	if id == TopViewID {
		return r.top, true
	}
	el, ok := r.lookup(id)
	if !ok || el.Child() == nil {
		return nil, false
	}
	return el.Child(), true
}

// ID returns the id of el, or "" if el is not in the document.
func (r *Resolver) ID(el dom.Element) string {
	var parts []string
	for e, ok := el.(*textdoc.Element); ok && e != nil; {
		doc := e.Document()
		idx := -1
		for i, candidate := range doc.Elements() {
			if candidate == e {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ""
		}
		parts = append([]string{"e" + strconv.Itoa(idx)}, parts...)
		frame := doc.FrameElement()
		if frame == nil {
			if doc != r.top {
				return ""
			}
			return strings.Join(parts, "/")
		}
		e, ok = frame.(*textdoc.Element)
	}
	return ""
}

func (r *Resolver) lookup(id string) (*textdoc.Element, bool) {
	doc := r.top
	var el *textdoc.Element
	for _, part := range strings.Split(id, "/") {
		if doc == nil || !strings.HasPrefix(part, "e") {
			return nil, false
		}
		i, err := strconv.Atoi(part[1:])
		els := doc.Elements()
		if err != nil || i < 0 || i >= len(els) {
			return nil, false
		}
		el = els[i]
		doc = el.Child()
	}
	return el, el != nil
}
