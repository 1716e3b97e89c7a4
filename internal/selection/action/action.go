// Package action holds the registry of selection actions and builds the
// contextual menu shown next to the selection handles.
package action

import (
	"errors"

	"github.com/dshills/textsel/internal/dom"
)

// Errors returned by the registry.
var (
	// ErrDuplicateAction is returned when an action id is already registered.
	ErrDuplicateAction = errors.New("action already registered")

	// ErrActionNotFound is returned for unknown action ids.
	ErrActionNotFound = errors.New("action not found")

	// ErrInvalidAction is returned for actions missing a predicate or
	// perform function.
	ErrInvalidAction = errors.New("invalid action")
)

// DefaultIcon is the icon used by actions that do not set one.
const DefaultIcon = "drawable://ic_status_logo"

// Action is a registry entry. Label, Icon, Order and ShowAsAction may be
// static or computed from the target.
type Action struct {
	ID           string
	Label        Value[string]
	Icon         Value[string]
	Order        Value[int]
	ShowAsAction Value[bool]

	// IsApplicable decides whether the action is offered for a target.
	IsApplicable func(target dom.Element) bool
	// Perform runs the action against a target.
	Perform func(target dom.Element) error
}

// Defaults are the values used for unset menu fields.
type Defaults struct {
	Label        string
	Icon         string
	Order        int
	ShowAsAction bool
}

// DefaultDefaults returns the standard menu field defaults.
func DefaultDefaults() Defaults {
	return Defaults{Icon: DefaultIcon, ShowAsAction: true}
}

// Item is a resolved menu entry.
type Item struct {
	ID           string `json:"id"`
	Label        string `json:"label"`
	Icon         string `json:"icon"`
	ShowAsAction bool   `json:"showAsAction"`
	Order        int    `json:"order"`
}
