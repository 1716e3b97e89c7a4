package selection

import (
	"errors"
	"fmt"
)

// Errors reported by the controller. Every failure tears the session down
// through the same path as a normal close.
var (
	// ErrInvalidSelectionMode is returned for an unknown start strategy.
	ErrInvalidSelectionMode = errors.New("invalid selection mode")

	// ErrEmptySelectionResult is returned when a start strategy selected
	// nothing.
	ErrEmptySelectionResult = errors.New("selection is empty")

	// ErrOffscreenHandle is returned when the selection can no longer be
	// measured, typically because a handle was dragged off the document.
	ErrOffscreenHandle = errors.New("selection handle is off the document")

	// ErrUnsupportedTarget is returned for targets that cannot host the
	// requested session.
	ErrUnsupportedTarget = errors.New("unsupported target")

	// ErrSelectionNotNearPoint is returned when a word selected at a point
	// ended up too far from that point.
	ErrSelectionNotNearPoint = errors.New("selection is not near the requested point")

	// ErrTargetGone is returned when the session target left the document.
	ErrTargetGone = errors.New("target is no longer in the document")

	// ErrNoClipboard is returned by clipboard actions without a clipboard.
	ErrNoClipboard = errors.New("no clipboard available")
)

// OperationError describes a failed controller operation.
type OperationError struct {
	Op     string // Operation name (e.g., "start selection", "attach caret")
	Target string // Kind of the target element
	Err    error  // Underlying error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
