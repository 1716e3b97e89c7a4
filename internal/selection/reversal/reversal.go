// Package reversal decides when a dragged handle has crossed its
// counterpart, so the start and end roles of a selection must swap.
package reversal

import (
	"fmt"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Detect compares a new extent against the previous one. Dragging the start
// handle reverses the selection when the new end lies strictly after the
// old end; dragging the end handle reverses it when the new start lies
// strictly before the old start. Only the opposite handle's previous
// position is consulted. A nil prev never reports a reversal.
func Detect(prev *geometry.Extent, next geometry.Extent, dragged geometry.Handle) bool {
	if prev == nil {
		return false
	}
	switch dragged {
	case geometry.HandleStart:
		return next.End.Y > prev.End.Y ||
			(next.End.Y == prev.End.Y && next.End.X > prev.End.X)
	case geometry.HandleEnd:
		return next.Start.Y < prev.Start.Y ||
			(next.Start.Y == prev.Start.Y && next.Start.X < prev.Start.X)
	}
	return false
}

// Swap exchanges the anchor and focus of sel: it collapses to the old focus
// and extends to the old anchor.
func Swap(sel dom.Selection) error {
	anchor, focus := sel.Anchor(), sel.Focus()
	if err := sel.Collapse(focus); err != nil {
		return fmt.Errorf("collapse to focus: %w", err)
	}
	if err := sel.Extend(anchor); err != nil {
		return fmt.Errorf("extend to anchor: %w", err)
	}
	return nil
}
