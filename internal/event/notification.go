package event

import (
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event/topic"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Topics of the inbound notifications.
const (
	TopicTap                 topic.Topic = "gesture.tap"
	TopicTabSelected         topic.Topic = "tab.selected"
	TopicViewportChanged     topic.Topic = "viewport.changed"
	TopicDragMove            topic.Topic = "selection.handle.move"
	TopicDragPosition        topic.Topic = "selection.handle.position"
	TopicDragEnd             topic.Topic = "selection.end"
	TopicActionInvoked       topic.Topic = "selection.action"
	TopicTextRequested       topic.Topic = "selection.get"
	TopicCaretUpdate         topic.Topic = "selection.caret.update"
	TopicSelectionRemoved    topic.Topic = "selection.removed"
	TopicScroll              topic.Topic = "document.scroll"
	TopicBlur                topic.Topic = "document.blur"
	TopicPageHidden          topic.Topic = "document.pagehide"
	TopicComposition         topic.Topic = "document.composition"
	TopicSubdocumentScrolled topic.Topic = "document.subdocument.scroll"
)

// Notification is an inbound message from the host.
type Notification interface {
	Topic() topic.Topic
}

// Tap is a single tap at a point in top-level client coordinates.
type Tap struct {
	Point geom.Point
}

// Topic implements Notification.
func (Tap) Topic() topic.Topic { return TopicTap }

// TabSelected reports that another tab became active.
type TabSelected struct{}

// Topic implements Notification.
func (TabSelected) Topic() topic.Topic { return TopicTabSelected }

// ViewportChanged reports a pan or zoom of the top-level view.
type ViewportChanged struct{}

// Topic implements Notification.
func (ViewportChanged) Topic() topic.Topic { return TopicViewportChanged }

// DragMove reports a handle being dragged to a point.
type DragMove struct {
	Handle geometry.Handle
	Point  geom.Point
}

// Topic implements Notification.
func (DragMove) Topic() topic.Topic { return TopicDragMove }

// DragPosition reports a handle dropped at a point.
type DragPosition struct {
	Handle geometry.Handle
	Point  geom.Point
}

// Topic implements Notification.
func (DragPosition) Topic() topic.Topic { return TopicDragPosition }

// DragEnd asks the controller to end the session.
type DragEnd struct{}

// Topic implements Notification.
func (DragEnd) Topic() topic.Topic { return TopicDragEnd }

// ActionInvoked asks the controller to perform a registered action.
type ActionInvoked struct {
	ID string
}

// Topic implements Notification.
func (ActionInvoked) Topic() topic.Topic { return TopicActionInvoked }

// TextRequested asks for the selected text.
type TextRequested struct {
	RequestID string
}

// Topic implements Notification.
func (TextRequested) Topic() topic.Topic { return TopicTextRequested }

// CaretUpdate asks for the caret handle to be repositioned.
type CaretUpdate struct{}

// Topic implements Notification.
func (CaretUpdate) Topic() topic.Topic { return TopicCaretUpdate }

// SelectionRemoved reports that the selection was removed by the host.
type SelectionRemoved struct{}

// Topic implements Notification.
func (SelectionRemoved) Topic() topic.Topic { return TopicSelectionRemoved }

// Scroll reports a scroll of the top-level view.
type Scroll struct{}

// Topic implements Notification.
func (Scroll) Topic() topic.Topic { return TopicScroll }

// Blur reports that the document lost focus.
type Blur struct{}

// Topic implements Notification.
func (Blur) Topic() topic.Topic { return TopicBlur }

// PageHidden reports that the page was navigated away from.
type PageHidden struct{}

// Topic implements Notification.
func (PageHidden) Topic() topic.Topic { return TopicPageHidden }

// Composition kinds.
const (
	CompositionKeyUp  = "keyup"
	CompositionUpdate = "compositionupdate"
	CompositionEnd    = "compositionend"
)

// Composition reports key or input method activity in a field.
type Composition struct {
	Kind string
}

// Topic implements Notification.
func (Composition) Topic() topic.Topic { return TopicComposition }

// SubdocumentScrolled reports that a nested view scrolled. It is only
// raised in process, since it carries a view reference.
type SubdocumentScrolled struct {
	View dom.View
}

// Topic implements Notification.
func (SubdocumentScrolled) Topic() topic.Topic { return TopicSubdocumentScrolled }
