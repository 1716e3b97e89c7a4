package action

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/textsel/internal/dom"
)

// Registry stores actions in registration order.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	actions map[string]Action
	newID   func() string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		actions: make(map[string]Action),
		newID:   func() string { return uuid.NewString() },
	}
}

// Add registers a and returns its id. An empty id is replaced by a
// generated UUID.
func (r *Registry) Add(a Action) (string, error) {
	if a.IsApplicable == nil || a.Perform == nil {
		return "", fmt.Errorf("%w: %q needs IsApplicable and Perform", ErrInvalidAction, a.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = r.newID()
	}
	if _, exists := r.actions[a.ID]; exists {
		return "", fmt.Errorf("%w: %s", ErrDuplicateAction, a.ID)
	}
	r.actions[a.ID] = a
	r.order = append(r.order, a.ID)
	return a.ID, nil
}

// Remove unregisters the action with id.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[id]; !exists {
		return fmt.Errorf("%w: %s", ErrActionNotFound, id)
	}
	delete(r.actions, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the action with id.
func (r *Registry) Get(id string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[id]
	return a, ok
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Actions returns the registered actions in registration order.
func (r *Registry) Actions() []Action {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Action, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.actions[id])
	}
	return out
}

// Perform runs the action with id against target. The registry lock is not
// held while the action runs, so actions may add or remove actions.
func (r *Registry) Perform(id string, target dom.Element) error {
	a, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrActionNotFound, id)
	}
	if err := a.Perform(target); err != nil {
		return fmt.Errorf("perform %s: %w", id, err)
	}
	return nil
}

// Menu builds the menu for target from the registered actions.
func (r *Registry) Menu(target dom.Element, defaults Defaults) []Item {
	return Build(r.Actions(), target, defaults)
}
