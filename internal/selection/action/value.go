package action

import "github.com/dshills/textsel/internal/dom"

// Value is a menu field that is either a static value or computed from the
// target element when the menu is built. The zero Value is unset and
// resolves to the caller's default.
type Value[T any] struct {
	static   T
	computed func(target dom.Element) T
	set      bool
}

// Static returns a Value that always resolves to v.
func Static[T any](v T) Value[T] {
	return Value[T]{static: v, set: true}
}

// Computed returns a Value resolved by calling fn with the target. A nil fn
// yields an unset Value.
func Computed[T any](fn func(target dom.Element) T) Value[T] {
	if fn == nil {
		return Value[T]{}
	}
	return Value[T]{computed: fn, set: true}
}

// IsSet reports whether the value was supplied.
func (v Value[T]) IsSet() bool {
	return v.set
}

// IsComputed reports whether the value depends on the target.
func (v Value[T]) IsComputed() bool {
	return v.computed != nil
}

// Resolve returns the value for target, or def when unset.
func (v Value[T]) Resolve(target dom.Element, def T) T {
	switch {
	case !v.set:
		return def
	case v.computed != nil:
		return v.computed(target)
	default:
		return v.static
	}
}
