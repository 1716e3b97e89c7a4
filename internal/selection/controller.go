// Package selection implements the controller behind touch text selection:
// it owns the single cursor or range session, reacts to host notifications,
// places the drag handles and publishes the action menu.
package selection

import (
	"errors"
	"fmt"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/event/topic"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
	"github.com/dshills/textsel/internal/selection/phone"
)

// PrefSelectionDistance is the preference holding the maximum manhattan
// distance between a long press and the word it selects.
const PrefSelectionDistance = "browser.ui.selection.distance"

// DefaultSelectionDistance is used when the preference is unset.
const DefaultSelectionDistance = 250

// sessionTopics are observed while any session is active.
var sessionTopics = []topic.Topic{
	event.TopicTap,
	event.TopicTabSelected,
	event.TopicViewportChanged,
	event.TopicDragMove,
	event.TopicDragPosition,
	event.TopicDragEnd,
	event.TopicActionInvoked,
	event.TopicSelectionRemoved,
	event.TopicPageHidden,
	event.TopicBlur,
	event.TopicScroll,
}

// caretTopics are observed only while a caret is attached.
var caretTopics = []topic.Topic{
	event.TopicCaretUpdate,
	event.TopicComposition,
}

// Options configure a Controller.
type Options struct {
	// Engine is the document engine. Required.
	Engine dom.Engine
	// Messenger receives outbound messages. Required.
	Messenger native.Messenger

	// Router delivers notifications; a private router is created if nil.
	Router *event.Router
	// Registry holds the actions; a new one is created if nil.
	Registry *action.Registry
	// SkipBuiltins leaves the builtin actions out of the registry.
	SkipBuiltins bool

	Clipboard   native.Clipboard
	Search      native.SearchEngine
	Preferences native.Preferences
	Text        action.Localizer
	Logger      *logging.Logger

	// TouchRadius inflates the selection when testing taps against it.
	TouchRadius geom.Insets
	// MenuDefaults fill unset menu fields.
	MenuDefaults *action.Defaults
}

// Controller owns the selection session. Its methods must be called from
// a single goroutine, in the order notifications arrive.
type Controller struct {
	engine    dom.Engine
	out       native.Messenger
	router    *event.Router
	registry  *action.Registry
	clipboard native.Clipboard
	search    native.SearchEngine
	prefs     native.Preferences
	text      action.Localizer
	log       *logging.Logger

	touchRadius geom.Insets
	defaults    action.Defaults

	s         session
	permanent []*event.Subscription
}

// New creates a controller and subscribes it to the notifications it
// handles regardless of session state.
func New(opts Options) (*Controller, error) {
	if opts.Engine == nil {
		return nil, errors.New("selection: engine is required")
	}
	if opts.Messenger == nil {
		return nil, errors.New("selection: messenger is required")
	}

	c := &Controller{
		engine:      opts.Engine,
		out:         opts.Messenger,
		router:      opts.Router,
		registry:    opts.Registry,
		clipboard:   opts.Clipboard,
		search:      opts.Search,
		prefs:       opts.Preferences,
		text:        opts.Text,
		log:         opts.Logger,
		touchRadius: opts.TouchRadius,
		defaults:    action.DefaultDefaults(),
	}
	if opts.MenuDefaults != nil {
		c.defaults = *opts.MenuDefaults
	}
	if c.router == nil {
		c.router = event.NewRouter()
	}
	if c.registry == nil {
		c.registry = action.NewRegistry()
	}
	if c.log == nil {
		c.log = logging.Null()
	}
	c.log = c.log.WithComponent("selection")

	if !opts.SkipBuiltins {
		deps := action.BuiltinDeps{Text: c.text}
		if c.clipboard != nil {
			deps.Clipboard = c.clipboard
		}
		if c.search != nil {
			deps.Search = c.search
		}
		if err := action.RegisterBuiltins(c.registry, c, deps); err != nil {
			return nil, fmt.Errorf("register builtin actions: %w", err)
		}
	}

	for _, t := range []topic.Topic{event.TopicTextRequested, event.TopicSubdocumentScrolled} {
		sub, err := c.router.Subscribe(t, c.Handle)
		if err != nil {
			return nil, fmt.Errorf("subscribe %s: %w", t, err)
		}
		c.permanent = append(c.permanent, sub)
	}
	return c, nil
}

// Router returns the router the controller listens on.
func (c *Controller) Router() *event.Router { return c.router }

// Publish delivers n on the router.
func (c *Controller) Publish(n event.Notification) error { return c.router.Publish(n) }

// Registry returns the action registry.
func (c *Controller) Registry() *action.Registry { return c.registry }

// State returns a snapshot of the session.
func (c *Controller) State() State { return c.s.state() }

// Mode returns the active session mode.
func (c *Controller) Mode() Mode { return c.s.mode }

// IsSelectionActive reports whether a range selection is active.
func (c *Controller) IsSelectionActive() bool {
	return c.s.mode == ModeRange
}

// Close ends any session and unsubscribes the controller.
func (c *Controller) Close() {
	c.closeSelection()
	for _, sub := range c.permanent {
		_ = c.router.Unsubscribe(sub)
	}
	c.permanent = nil
}

// StartSelection ends any session and starts a range selection in el.
func (c *Controller) StartSelection(el dom.Element, opts StartOptions) error {
	c.closeSelection()

	if el == nil || !el.Alive() || el.OwnerView() == nil {
		return c.opError("start selection", el, ErrTargetGone)
	}
	if !dom.CanSelect(el) {
		return c.opError("start selection", el, ErrUnsupportedTarget)
	}

	c.initTarget(el, ModeRange)
	c.s.view.Selection().RemoveAllRanges()

	if err := c.performSelection(opts); err != nil {
		c.deactivate()
		return c.opError("start selection", el, err)
	}

	sel := c.selection()
	if sel == nil || sel.RangeCount() == 0 || sel.IsCollapsed() {
		c.deactivate()
		return c.opError("start selection", el, ErrEmptySelectionResult)
	}

	if _, err := phone.Extend(sel); err != nil {
		c.log.Debug("phone number extension stopped: %v", err)
	}

	sel.AddListener(c)
	c.s.mode = ModeRange

	if _, err := c.updateExtent(""); err != nil {
		c.closeSelection()
		return c.opError("start selection", el, fmt.Errorf("%w: %w", ErrEmptySelectionResult, err))
	}

	positions, err := c.handlePositions()
	if err != nil {
		c.closeSelection()
		return c.opError("start selection", el, err)
	}

	if opts.Mode == SelectAtPoint {
		p := geom.Pt(opts.X, opts.Y).Add(c.engine.ScrollXY())
		if !geometry.NearPoint(positions[0], positions[1], p, float64(c.maxDistance())) {
			c.closeSelection()
			return c.opError("start selection", el, ErrSelectionNotNearPoint)
		}
	}

	if err := c.positionHandles(positions); err != nil {
		return c.opError("start selection", el, err)
	}
	c.send(native.ShowHandles{
		Handles: []geometry.Handle{geometry.HandleStart, geometry.HandleEnd},
		Actions: c.menu(),
	})
	c.log.Debug("range selection started in %s", el.Kind())
	return nil
}

// AttachCaret ends any session and shows a caret handle in an editable
// field. Disabled fields, fields edited by a native widget and
// non-editable elements are rejected with ErrUnsupportedTarget and leave
// the current session alone.
func (c *Controller) AttachCaret(el dom.Element) error {
	if el == nil || !el.Alive() || el.OwnerView() == nil {
		return c.opError("attach caret", el, ErrTargetGone)
	}
	if el.Disabled() || el.HasNativeWidget() || !dom.IsEditableText(el) {
		return c.opError("attach caret", el, ErrUnsupportedTarget)
	}

	c.closeSelection()
	c.initTarget(el, ModeCursor)
	c.observe(caretTopics...)
	c.s.mode = ModeCursor

	if err := c.positionHandles(nil); err != nil {
		return c.opError("attach caret", el, err)
	}
	c.send(native.ShowHandles{
		Handles: []geometry.Handle{geometry.HandleMiddle},
		Actions: c.menu(),
	})
	c.log.Debug("caret attached to %s", el.Kind())
	return nil
}

// CloseSelection ends the active session. It does nothing when no session
// is active.
func (c *Controller) CloseSelection() {
	c.closeSelection()
}

// SelectionChanged implements dom.SelectionListener. It closes the session
// when the selection is collapsed or emptied by someone other than a
// handle drag.
func (c *Controller) SelectionChanged(sel dom.Selection, reason dom.ChangeReason) {
	if c.s.dragging {
		return
	}
	if reason.Has(dom.ReasonCollapseToStart) || reason.Has(dom.ReasonCollapseToEnd) {
		c.closeSelection()
		return
	}
	if sel.String() == "" {
		c.closeSelection()
	}
}

func (c *Controller) initTarget(el dom.Element, mode Mode) {
	if _, ok := el.Editor(); ok {
		if mode == ModeRange {
			// Drop compositions left over from the input method.
			el.Blur()
		}
		el.Focus()
	}
	c.stopDragging()
	c.s.target = el
	c.s.view = el.OwnerView()
	c.s.rtl = el.Direction() == dom.RTL
	c.observe(sessionTopics...)
}

func (c *Controller) observe(topics ...topic.Topic) {
	for _, t := range topics {
		sub, err := c.router.Subscribe(t, c.Handle)
		if err != nil {
			c.log.Error("subscribe %s: %v", t, err)
			continue
		}
		c.s.subs = append(c.s.subs, sub)
	}
}

func (c *Controller) performSelection(opts StartOptions) error {
	switch opts.Mode {
	case SelectAtPoint:
		if !c.engine.SelectAtPoint(geom.Pt(opts.X, opts.Y), dom.GranularityWordNoSpace) {
			return ErrEmptySelectionResult
		}
		return nil
	case SelectAll:
	default:
		c.log.Warn("invalid selection mode %d", opts.Mode)
		return fmt.Errorf("%w: %d", ErrInvalidSelectionMode, opts.Mode)
	}

	el := c.s.target
	if el.Kind() == dom.KindPre {
		p := el.BoundingClientRect().Origin().Add(geometry.ViewOffset(c.s.view)).Add(geom.Pt(1, 1))
		if !c.engine.SelectAtPoint(p, dom.GranularityParagraph) {
			return ErrEmptySelectionResult
		}
		return nil
	}
	if ed, ok := el.Editor(); ok {
		ed.SelectAll()
		return nil
	}

	c.s.view.SelectAll()
	// Drop trailing document whitespace by ending at the last text node.
	sel := c.s.view.Selection()
	if last, ok := c.s.view.LastTextPosition(); ok && sel.RangeCount() > 0 {
		if err := sel.Extend(last); err != nil {
			c.log.Error("select all: whitespace trim failed at offset %d: %v", last.Offset, err)
		}
	}
	return nil
}

// selection returns the live selection of the session: the field's own
// selection for editable targets, the view's otherwise.
func (c *Controller) selection() dom.Selection {
	if c.s.target == nil {
		return nil
	}
	if ed, ok := c.s.target.Editor(); ok {
		return ed.Selection()
	}
	if c.s.view == nil {
		return nil
	}
	return c.s.view.Selection()
}

func (c *Controller) closeSelection() {
	if c.s.mode == ModeNone {
		return
	}
	if c.s.mode == ModeRange {
		c.clearSelection()
	}
	c.deactivate()
}

// clearSelection detaches the listener and collapses the selection to its
// start, keeping its anchor node.
func (c *Controller) clearSelection() {
	sel := c.selection()
	if sel == nil {
		return
	}
	sel.RemoveListener(c)
	if sel.RangeCount() != 0 {
		if err := sel.CollapseToStart(); err != nil {
			c.log.Debug("collapse to start: %v", err)
		}
	}
}

func (c *Controller) deactivate() {
	c.stopDragging()
	c.send(native.HideHandles{})
	for _, sub := range c.s.subs {
		_ = c.router.Unsubscribe(sub)
	}
	prev := c.s.mode
	c.s = session{}
	if prev != ModeNone {
		c.log.Debug("%s session closed", prev)
	}
}

func (c *Controller) startDragging() {
	if !c.s.dragging {
		c.s.dragging = true
		c.send(native.SuppressIME{Suppress: true})
	}
}

func (c *Controller) stopDragging() {
	if c.s.dragging {
		c.s.dragging = false
		c.send(native.SuppressIME{Suppress: false})
	}
}

func (c *Controller) send(msg native.Message) {
	if err := c.out.Send(msg); err != nil {
		c.log.Warn("send %s: %v", msg.Type(), err)
	}
}

func (c *Controller) maxDistance() int {
	if c.prefs == nil {
		return DefaultSelectionDistance
	}
	return c.prefs.Int(PrefSelectionDistance, DefaultSelectionDistance)
}

func (c *Controller) opError(op string, el dom.Element, err error) error {
	target := ""
	if el != nil {
		target = el.Kind().String()
	}
	return &OperationError{Op: op, Target: target, Err: err}
}
