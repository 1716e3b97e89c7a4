// Package event routes inbound host notifications to subscribers. Delivery
// is synchronous and in subscription order: Publish returns only after every
// matching handler has run, so notifications are applied strictly in
// arrival order.
package event

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/textsel/internal/event/topic"
)

// Handler processes a notification.
type Handler func(n Notification) error

// Subscription is a registered handler for a topic pattern.
type Subscription struct {
	id      uint64
	pattern topic.Topic
	handler Handler
}

// ID returns the subscription identifier.
func (s *Subscription) ID() uint64 { return s.id }

// Pattern returns the subscribed topic pattern.
func (s *Subscription) Pattern() topic.Topic { return s.pattern }

// Router dispatches notifications to subscriptions whose pattern matches.
type Router struct {
	mu     sync.Mutex
	subs   []*Subscription
	nextID uint64
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{}
}

// Subscribe registers handler for notifications matching pattern.
func (r *Router) Subscribe(pattern topic.Topic, handler Handler) (*Subscription, error) {
	if !pattern.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if handler == nil {
		return nil, ErrNilHandler
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	sub := &Subscription{id: r.nextID, pattern: pattern, handler: handler}
	r.subs = append(r.subs, sub)
	return sub, nil
}

// Unsubscribe removes sub. A removed subscription receives nothing further,
// even during a Publish already in progress.
func (r *Router) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s == sub {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Count returns the number of subscriptions that would receive t.
func (r *Router) Count(t topic.Topic) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.subs {
		if t.Matches(s.pattern) {
			n++
		}
	}
	return n
}

// Len returns the total number of subscriptions.
func (r *Router) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}

// Publish delivers n to every matching subscription. Handler errors and
// panics are collected and returned; they do not stop delivery.
func (r *Router) Publish(n Notification) error {
	if n == nil {
		return fmt.Errorf("%w: nil notification", ErrInvalidTopic)
	}
	t := n.Topic()
	if !t.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, t)
	}

	r.mu.Lock()
	matched := make([]*Subscription, 0, len(r.subs))
	for _, s := range r.subs {
		if t.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	r.mu.Unlock()

	var errs []error
	for _, s := range matched {
		if !r.subscribed(s) {
			continue
		}
		if err := dispatch(s, n); err != nil {
			errs = append(errs, &HandlerError{SubscriptionID: s.id, Topic: t.String(), Err: err})
		}
	}
	return errors.Join(errs...)
}

func (r *Router) subscribed(sub *Subscription) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subs {
		if s == sub {
			return true
		}
	}
	return false
}

func dispatch(s *Subscription, n Notification) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, rec)
		}
	}()
	return s.handler(n)
}
