package selection

import (
	"fmt"

	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/selection/reversal"
)

// updateExtent measures the selection into the extent cache. When dragged
// names a handle it also reports whether the handles swapped roles.
func (c *Controller) updateExtent(dragged geometry.Handle) (bool, error) {
	sel := c.selection()
	if sel == nil || sel.RangeCount() == 0 {
		return false, ErrOffscreenHandle
	}
	next, err := geometry.MeasureExtent(sel.ClientRects(), c.s.rtl)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrOffscreenHandle, err)
	}
	reversed := reversal.Detect(c.s.extent, next, dragged)
	c.s.extent = &next
	return reversed, nil
}

// handlePositions computes the handles of the session in page coordinates.
func (c *Controller) handlePositions() ([]geometry.Position, error) {
	scroll := c.engine.ScrollXY()
	switch c.s.mode {
	case ModeCursor:
		ed, ok := c.s.target.Editor()
		if !ok {
			return nil, ErrUnsupportedTarget
		}
		p, err := geometry.CaretPosition(c.engine, c.s.target, ed.SelectionEnd(), scroll)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrOffscreenHandle, err)
		}
		return []geometry.Position{p}, nil
	case ModeRange:
		if c.s.extent == nil {
			return nil, ErrOffscreenHandle
		}
		return geometry.RangePositions(c.s.view, *c.s.extent, scroll), nil
	}
	return nil, nil
}

// positionHandles publishes handle positions, computing them when nil, and
// refreshes the menu. A session whose handles cannot be placed is closed.
func (c *Controller) positionHandles(positions []geometry.Position) error {
	if c.s.mode == ModeNone {
		return nil
	}
	if positions == nil {
		var err error
		if positions, err = c.handlePositions(); err != nil {
			c.closeSelection()
			return err
		}
	}
	c.send(native.PositionHandles{Positions: positions, RTL: c.s.rtl})
	c.updateMenu(positions)
	return nil
}

func (c *Controller) updateMenu(positions []geometry.Position) {
	c.send(native.UpdateMenu{Actions: c.menu(), Positions: positions})
}

func (c *Controller) menu() []action.Item {
	return c.registry.Menu(c.s.target, c.defaults)
}
