package bridge

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/event/topic"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/selection"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// Decoding errors.
var (
	ErrMalformed      = errors.New("malformed message")
	ErrUnknownType    = errors.New("unknown message type")
	ErrUnknownElement = errors.New("unknown element")
	ErrUnknownView    = errors.New("unknown view")
)

// Resolver maps wire identifiers to document objects.
type Resolver interface {
	Element(id string) (dom.Element, bool)
	View(id string) (dom.View, bool)
}

// Decoder turns inbound lines into commands.
type Decoder struct {
	res Resolver
}

// NewDecoder returns a decoder resolving ids with res.
func NewDecoder(res Resolver) *Decoder {
	return &Decoder{res: res}
}

// Decode parses one line.
func (d *Decoder) Decode(line []byte) (Command, error) {
	if !gjson.ValidBytes(line) {
		return nil, fmt.Errorf("%w: invalid json", ErrMalformed)
	}
	msg := gjson.ParseBytes(line)
	typ := msg.Get("type")
	if typ.Type != gjson.String || typ.Str == "" {
		return nil, fmt.Errorf("%w: missing type", ErrMalformed)
	}
	data := msg.Get("data")

	switch typ.Str {
	case TypeStartSelection:
		return d.startSelection(data)
	case TypeAttachCaret:
		el, err := d.element(data)
		if err != nil {
			return nil, err
		}
		return AttachCaret{Element: el}, nil
	case TypeCloseSelection:
		return CloseSelection{}, nil
	}

	n, err := d.notification(topic.Topic(typ.Str), data)
	if err != nil {
		return nil, err
	}
	return Publish{Notification: n}, nil
}

func (d *Decoder) notification(t topic.Topic, data gjson.Result) (event.Notification, error) {
	switch t {
	case event.TopicTap:
		p, err := point(data)
		if err != nil {
			return nil, err
		}
		return event.Tap{Point: p}, nil
	case event.TopicTabSelected:
		return event.TabSelected{}, nil
	case event.TopicViewportChanged:
		return event.ViewportChanged{}, nil
	case event.TopicDragMove, event.TopicDragPosition:
		h := geometry.Handle(data.Get("handle").String())
		if !h.IsValid() {
			return nil, fmt.Errorf("%w: handle %q", ErrMalformed, h)
		}
		p, err := point(data)
		if err != nil {
			return nil, err
		}
		if t == event.TopicDragMove {
			return event.DragMove{Handle: h, Point: p}, nil
		}
		return event.DragPosition{Handle: h, Point: p}, nil
	case event.TopicDragEnd:
		return event.DragEnd{}, nil
	case event.TopicActionInvoked:
		id := data.Get("id")
		if id.Str == "" {
			return nil, fmt.Errorf("%w: action id", ErrMalformed)
		}
		return event.ActionInvoked{ID: id.Str}, nil
	case event.TopicTextRequested:
		return event.TextRequested{RequestID: data.Get("requestId").String()}, nil
	case event.TopicCaretUpdate:
		return event.CaretUpdate{}, nil
	case event.TopicSelectionRemoved:
		return event.SelectionRemoved{}, nil
	case event.TopicScroll:
		return event.Scroll{}, nil
	case event.TopicBlur:
		return event.Blur{}, nil
	case event.TopicPageHidden:
		return event.PageHidden{}, nil
	case event.TopicComposition:
		return event.Composition{Kind: data.Get("kind").String()}, nil
	case event.TopicSubdocumentScrolled:
		id := data.Get("view").String()
		v, ok := d.res.View(id)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
		}
		return event.SubdocumentScrolled{View: v}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
}

func (d *Decoder) startSelection(data gjson.Result) (Command, error) {
	el, err := d.element(data)
	if err != nil {
		return nil, err
	}
	cmd := StartSelection{Element: el}
	switch mode := data.Get("mode").String(); mode {
	case "", "all":
		cmd.Options.Mode = selection.SelectAll
	case "point":
		p, err := point(data)
		if err != nil {
			return nil, err
		}
		cmd.Options = selection.StartOptions{Mode: selection.SelectAtPoint, X: p.X, Y: p.Y}
	default:
		// The controller reports and rejects unknown modes.
		cmd.Options.Mode = selection.StartMode(-1)
	}
	return cmd, nil
}

func (d *Decoder) element(data gjson.Result) (dom.Element, error) {
	id := data.Get("element").String()
	if id == "" {
		return nil, fmt.Errorf("%w: element id", ErrMalformed)
	}
	el, ok := d.res.Element(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownElement, id)
	}
	return el, nil
}

func point(data gjson.Result) (geom.Point, error) {
	x, y := data.Get("x"), data.Get("y")
	if x.Type != gjson.Number || y.Type != gjson.Number {
		return geom.Point{}, fmt.Errorf("%w: x and y must be numbers", ErrMalformed)
	}
	return geom.Pt(x.Num, y.Num), nil
}
