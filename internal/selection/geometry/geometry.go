// Package geometry places selection handles. It resolves the offset of
// nested views, measures the extent of a range selection and converts it, or
// the caret of an editable field, into handle positions in page
// coordinates.
package geometry

import (
	"errors"
	"math"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
)

// Handle tags a handle marker.
type Handle string

// Handle tags.
const (
	HandleStart  Handle = "START"
	HandleMiddle Handle = "MIDDLE"
	HandleEnd    Handle = "END"
)

// IsValid reports whether h is a known tag.
func (h Handle) IsValid() bool {
	return h == HandleStart || h == HandleMiddle || h == HandleEnd
}

var (
	// ErrNoClientRects is returned when a selection has nothing to measure.
	ErrNoClientRects = errors.New("selection has no client rects")

	// ErrNoCaretRect is returned when the engine cannot locate a caret.
	ErrNoCaretRect = errors.New("caret rect unavailable")
)

// maxViewDepth bounds the walk up the view chain.
const maxViewDepth = 64

// Position is a handle marker in page coordinates.
type Position struct {
	Handle Handle  `json:"handle"`
	X      float64 `json:"left"`
	Y      float64 `json:"top"`
	Hidden bool    `json:"hidden"`
}

// Extent is the measured start and end of a range selection in the client
// coordinates of its view.
type Extent struct {
	Start geom.Point
	End   geom.Point
}

// ViewOffset returns the translation from view's client coordinates to the
// top-level view's client coordinates: the sum of the origins of every
// frame element between them.
func ViewOffset(view dom.View) geom.Point {
	var off geom.Point
	for depth := 0; view != nil && depth < maxViewDepth; depth++ {
		fe := view.FrameElement()
		if fe == nil {
			break
		}
		off = off.Add(fe.BoundingClientRect().Origin())
		view = view.Parent()
	}
	return off
}

// IsViewOrAncestor reports whether ancestor is view or one of its parents.
func IsViewOrAncestor(view, ancestor dom.View) bool {
	for depth := 0; view != nil && depth < maxViewDepth; depth++ {
		if dom.SameView(view, ancestor) {
			return true
		}
		view = view.Parent()
	}
	return false
}

// MeasureExtent derives an extent from a selection's client rects. For
// left-to-right text the start is the bottom-left of the first rect and the
// end the bottom-right of the last; right-to-left text mirrors both.
func MeasureExtent(rects []geom.Rect, rtl bool) (Extent, error) {
	if len(rects) == 0 {
		return Extent{}, ErrNoClientRects
	}
	first, last := rects[0], rects[len(rects)-1]
	ext := Extent{
		Start: geom.Pt(first.Left, first.Bottom),
		End:   geom.Pt(last.Right, last.Bottom),
	}
	if rtl {
		ext.Start.X = first.Right
		ext.End.X = last.Left
	}
	return ext, nil
}

// hiddenCheck returns a test for local points falling outside the frame
// element hosting view. Points in the top-level view are never hidden.
func hiddenCheck(view dom.View) func(p geom.Point) bool {
	if view == nil || view.FrameElement() == nil {
		return func(geom.Point) bool { return false }
	}
	bounds := view.FrameElement().BoundingClientRect()
	w, h := bounds.Width(), bounds.Height()
	return func(p geom.Point) bool {
		return p.X < 0 || p.Y < 0 || p.X > w || p.Y > h
	}
}

// RangePositions returns the START and END handles for a range extent
// measured in view. scroll is the top-level scroll offset.
func RangePositions(view dom.View, ext Extent, scroll geom.Point) []Position {
	hidden := hiddenCheck(view)
	shift := ViewOffset(view).Add(scroll)
	start, end := ext.Start.Add(shift), ext.End.Add(shift)
	return []Position{
		{Handle: HandleStart, X: start.X, Y: start.Y, Hidden: hidden(ext.Start)},
		{Handle: HandleEnd, X: end.X, Y: end.Y, Hidden: hidden(ext.End)},
	}
}

// CaretPosition returns the MIDDLE handle for the caret at offset inside el.
// The engine reports caret rects in device pixels; the handle sits on the
// rect's bottom-left corner.
func CaretPosition(eng dom.Engine, el dom.Element, offset int, scroll geom.Point) (Position, error) {
	r, ok := eng.CaretRect(el, offset)
	if !ok {
		return Position{}, ErrNoCaretRect
	}
	ratio := eng.DevicePixelRatio()
	if ratio <= 0 {
		ratio = 1
	}
	local := geom.Pt(r.Left/ratio, r.Bottom/ratio)
	view := el.OwnerView()
	p := local.Add(ViewOffset(view)).Add(scroll)
	return Position{Handle: HandleMiddle, X: p.X, Y: p.Y, Hidden: hiddenCheck(view)(local)}, nil
}

// NearPoint reports whether p is close enough to the selection spanned by
// the start and end handles: strictly inside their box, or within
// maxDistance manhattan distance of the box centre.
func NearPoint(start, end Position, p geom.Point, maxDistance float64) bool {
	if start.X < p.X && p.X < end.X && start.Y < p.Y && p.Y < end.Y {
		return 0 < maxDistance
	}
	cx, cy := (start.X+end.X)/2, (start.Y+end.Y)/2
	d := math.Abs(cx-p.X) + math.Abs(cy-p.Y)
	return d < maxDistance
}
