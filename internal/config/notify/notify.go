// Package notify delivers configuration change notifications.
package notify

import (
	"sort"
	"strings"
	"sync"
)

// ChangeType represents the type of configuration change.
type ChangeType int

const (
	// ChangeSet indicates a value was set or updated.
	ChangeSet ChangeType = iota
	// ChangeDelete indicates a value was deleted.
	ChangeDelete
	// ChangeReload indicates a source was reloaded.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change represents a configuration change event.
type Change struct {
	// Path is the dot-separated setting path. Empty for reload events.
	Path     string
	Type     ChangeType
	OldValue any
	NewValue any
	// Source identifies where the change came from: a file path, "env"
	// or "runtime".
	Source string
}

// Observer is called when configuration changes occur.
type Observer func(change Change)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s != nil && s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

type entry struct {
	id       uint64
	path     string
	observer Observer
}

// Notifier fans changes out to observers synchronously, in subscription
// order.
type Notifier struct {
	mu      sync.RWMutex
	entries []entry
	nextID  uint64
	closed  bool
}

// New creates a Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for changes at path or below it.
// Reload events reach every observer.
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.entries = append(n.entries, entry{id: id, path: path, observer: observer})
	return &Subscription{id: id, notifier: n}
}

// Notify sends a change to all matching observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	var observers []Observer
	for _, e := range n.entries {
		if change.Path == "" || e.path == "" || e.path == change.Path || isParentPath(e.path, change.Path) {
			observers = append(observers, e.observer)
		}
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(change)
	}
}

// NotifyDiff sends a set or delete change for every leaf that differs
// between before and after, in path order.
func (n *Notifier) NotifyDiff(before, after map[string]any, source string) {
	var changes []Change
	diff("", before, after, source, &changes)
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	for _, c := range changes {
		n.Notify(c)
	}
}

// NotifyReload is a convenience method for reload events.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// Len returns the number of subscriptions.
func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.entries)
}

// Close drops all observers. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.entries = nil
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, e := range n.entries {
		if e.id == id {
			n.entries = append(n.entries[:i], n.entries[i+1:]...)
			return
		}
	}
}

func diff(prefix string, before, after map[string]any, source string, out *[]Change) {
	for k, nv := range after {
		p := join(prefix, k)
		ov, existed := before[k]
		nm, nIsMap := nv.(map[string]any)
		om, oIsMap := ov.(map[string]any)
		switch {
		case nIsMap && oIsMap:
			diff(p, om, nm, source, out)
		case nIsMap:
			diff(p, nil, nm, source, out)
		case !existed || !equal(ov, nv):
			*out = append(*out, Change{Path: p, Type: ChangeSet, OldValue: ov, NewValue: nv, Source: source})
		}
	}
	for k, ov := range before {
		if _, ok := after[k]; ok {
			continue
		}
		p := join(prefix, k)
		if om, ok := ov.(map[string]any); ok {
			diff(p, om, nil, source, out)
			continue
		}
		*out = append(*out, Change{Path: p, Type: ChangeDelete, OldValue: ov, Source: source})
	}
}

func equal(a, b any) bool {
	as, aok := a.([]any)
	bs, bok := b.([]any)
	if aok || bok {
		if !aok || !bok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if _, ok := a.([]string); ok {
		return false
	}
	return a == b
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// isParentPath reports whether parent is a proper prefix path of child,
// e.g. "selection" of "selection.distance".
func isParentPath(parent, child string) bool {
	return len(child) > len(parent) && strings.HasPrefix(child, parent) && child[len(parent)] == '.'
}
