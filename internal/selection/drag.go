package selection

import (
	"fmt"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/selection/reversal"
)

func (c *Controller) onDragMove(h geometry.Handle, p geom.Point) error {
	switch c.s.mode {
	case ModeRange:
		c.startDragging()
		if err := c.moveSelection(h == geometry.HandleStart, p); err != nil {
			c.closeSelection()
			return c.opError("drag move", nil, err)
		}
		return c.positionHandles(nil)
	case ModeCursor:
		// Input method updates would fight the caret while it moves.
		c.s.suppressComposition = true
		c.moveCaret(p)
		return c.positionHandles(nil)
	}
	return nil
}

func (c *Controller) onDragPosition(h geometry.Handle) error {
	switch c.s.mode {
	case ModeRange:
		c.startDragging()
		reversed, err := c.updateExtent(h)
		if err != nil {
			c.closeSelection()
			return c.opError("drag position", nil, err)
		}
		if reversed {
			if err := reversal.Swap(c.selection()); err != nil {
				c.closeSelection()
				return c.opError("drag position", nil, fmt.Errorf("%w: %w", ErrOffscreenHandle, err))
			}
		}
		c.stopDragging()
		return c.positionHandles(nil)
	case ModeCursor:
		c.s.suppressComposition = false
		return c.positionHandles(nil)
	}
	return nil
}

// moveSelection follows a dragged range handle to a top-level client
// point. Points off the document, or outside an editable target, are
// ignored.
func (c *Controller) moveSelection(isStart bool, p geom.Point) error {
	local := p.Sub(geometry.ViewOffset(c.s.view))
	caret, ok := c.s.view.CaretPositionFromPoint(local)
	if !ok {
		return nil
	}

	ed, editable := c.s.target.Editor()
	if editable && caret.Node != dom.Node(c.s.target) {
		return nil
	}

	if c.s.extent == nil {
		c.s.extent = &geometry.Extent{}
	}
	if isStart {
		c.s.extent.Start = local
	} else {
		c.s.extent.End = local
	}

	// Anchor and focus are mirrored on right-to-left pages.
	if isStart != c.s.rtl {
		if editable {
			anchorX := c.s.extent.End.X
			if c.s.rtl {
				anchorX = c.s.extent.Start.X
			}
			moveInEditable(ed, anchorX, local.X, caret.Offset)
			return nil
		}
		sel := c.selection()
		focus := sel.Focus()
		if err := sel.Collapse(caret); err != nil {
			return fmt.Errorf("%w: %w", ErrOffscreenHandle, err)
		}
		if err := sel.Extend(focus); err != nil {
			return fmt.Errorf("%w: %w", ErrOffscreenHandle, err)
		}
		return nil
	}

	if editable {
		anchorX := c.s.extent.Start.X
		if c.s.rtl {
			anchorX = c.s.extent.End.X
		}
		moveInEditable(ed, anchorX, local.X, caret.Offset)
		return nil
	}
	if err := c.selection().Extend(caret); err != nil {
		return fmt.Errorf("%w: %w", ErrOffscreenHandle, err)
	}
	return nil
}

// moveInEditable selects between the stationary handle and offset. The
// stationary end is the selection end when the dragged handle is left of
// it, and the selection start otherwise.
func moveInEditable(ed dom.Editor, anchorX, x float64, offset int) {
	anchor := ed.SelectionStart()
	if x < anchorX {
		anchor = ed.SelectionEnd()
	}
	start, end := anchor, offset
	if start > end {
		start, end = end, start
	}
	ed.SetSelectionRange(start, end)
}

// moveCaret clicks the caret's field at p, clamped to the field's visible
// text and scrolling the field when the point hits its edges.
func (c *Controller) moveCaret(p geom.Point) {
	ed, ok := c.s.target.Editor()
	if !ok {
		return
	}
	local := p.Sub(geometry.ViewOffset(c.s.view))

	bounds := ed.TextBounds()
	if er, ok := c.engine.EditorRect(c.s.target); ok {
		editorRect := er.Div(c.engine.DevicePixelRatio())
		if clipped := bounds.Intersect(editorRect); !clipped.IsEmpty() {
			bounds = clipped
		}
	}

	// Clicks on the top or bottom edge jump to the start or end of the
	// text, so stay a pixel inside.
	x, y := local.X, local.Y
	if y < bounds.Top+1 {
		y = bounds.Top + 1
		ed.ScrollLine(false)
	} else if y > bounds.Bottom-1 {
		y = bounds.Bottom - 1
		ed.ScrollLine(true)
	}
	if x < bounds.Left {
		x = bounds.Left
		ed.ScrollCharacter(false)
	} else if x > bounds.Right {
		x = bounds.Right
		ed.ScrollCharacter(true)
	}
	c.engine.SendClick(c.s.view, geom.Pt(x, y))
}
