package selection

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Handle applies one notification. It is the router handler for every topic
// the controller observes and may also be called directly.
func (c *Controller) Handle(n event.Notification) error {
	switch n := n.(type) {
	case event.TextRequested:
		c.send(native.SelectedText{RequestID: n.RequestID, Text: c.selectedText()})
		return nil
	case event.SubdocumentScrolled:
		return c.subdocumentScrolled(n.View)
	}

	if c.s.mode == ModeNone {
		if _, ok := n.(event.DragPosition); ok {
			c.log.Warn("ignored drag position without an active session")
		}
		return nil
	}
	if !c.s.target.Alive() {
		c.closeSelection()
		return c.opError(n.Topic().String(), nil, ErrTargetGone)
	}

	switch n := n.(type) {
	case event.Tap:
		c.onTap(n.Point)
	case event.TabSelected, event.DragEnd, event.Blur, event.PageHidden, event.SelectionRemoved:
		c.closeSelection()
	case event.ActionInvoked:
		return c.registry.Perform(n.ID, c.s.target)
	case event.ViewportChanged:
		if c.s.mode == ModeRange {
			if _, err := c.updateExtent(""); err != nil {
				c.closeSelection()
				return c.opError("viewport change", nil, err)
			}
		}
	case event.DragMove:
		return c.onDragMove(n.Handle, n.Point)
	case event.DragPosition:
		return c.onDragPosition(n.Handle)
	case event.Scroll:
		return c.positionHandles(nil)
	case event.CaretUpdate:
		if c.s.mode == ModeCursor {
			return c.positionHandles(nil)
		}
	case event.Composition:
		if c.s.mode == ModeCursor && !c.s.suppressComposition {
			return c.positionHandles(nil)
		}
	}
	return nil
}

func (c *Controller) onTap(p geom.Point) {
	switch c.s.mode {
	case ModeRange:
		if !c.pointInSelection(p) {
			c.closeSelection()
		}
	case ModeCursor:
		// Whoever handles the tap attaches a new caret if needed.
		c.deactivate()
	}
}

// pointInSelection tests a top-level client point against the selection
// bounds inflated by the touch radius.
func (c *Controller) pointInSelection(p geom.Point) bool {
	sel := c.selection()
	if sel == nil || sel.RangeCount() == 0 {
		return false
	}
	r := sel.BoundingClientRect().Inset(c.touchRadius)
	local := p.Sub(geometry.ViewOffset(c.s.view))
	return local.X > r.Left && local.X < r.Right && local.Y > r.Top && local.Y < r.Bottom
}

func (c *Controller) subdocumentScrolled(view dom.View) error {
	if c.s.mode == ModeNone || view == nil {
		return nil
	}
	if !geometry.IsViewOrAncestor(c.s.view, view) {
		return nil
	}
	if c.s.mode == ModeRange {
		if _, err := c.updateExtent(""); err != nil {
			c.closeSelection()
			return c.opError("subdocument scroll", nil, err)
		}
	}
	return c.positionHandles(nil)
}
