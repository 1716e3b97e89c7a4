package bridge

import (
	"fmt"
	"io"
	"sync"

	"github.com/tidwall/sjson"

	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/geometry"
)

// TypeError is the type of error replies.
const TypeError = "error"

// ErrorReply reports an inbound line that could not be applied.
type ErrorReply struct {
	// Input is the type of the failed line, when known.
	Input   string
	Message string
}

// Type implements native.Message.
func (ErrorReply) Type() string { return TypeError }

// JSONMessenger writes messages as JSON lines. It is safe for concurrent
// use.
type JSONMessenger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONMessenger returns a messenger writing to w.
func NewJSONMessenger(w io.Writer) *JSONMessenger {
	return &JSONMessenger{w: w}
}

// Send implements native.Messenger.
func (m *JSONMessenger) Send(msg native.Message) error {
	data, err := Encode(msg)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.w.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", msg.Type(), err)
	}
	return nil
}

// Encode renders msg as a single JSON object.
func Encode(msg native.Message) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "type", msg.Type()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", msg.Type(), err)
	}

	var fields []field
	switch m := msg.(type) {
	case native.ShowHandles:
		fields = []field{{"handles", handles(m.Handles)}, {"actions", items(m.Actions)}}
	case native.HideHandles:
	case native.PositionHandles:
		fields = []field{{"positions", positions(m.Positions)}, {"rtl", m.RTL}}
	case native.UpdateMenu:
		fields = []field{{"actions", items(m.Actions)}, {"positions", positions(m.Positions)}}
	case native.SuppressIME:
		fields = []field{{"suppress", m.Suppress}}
	case native.SelectedText:
		fields = []field{{"requestId", m.RequestID}, {"text", m.Text}}
	case native.ShareText:
		fields = []field{{"text", m.Text}}
	case native.Toast:
		fields = []field{{"message", m.Message}, {"duration", m.Duration}}
	case native.LoadURI:
		fields = []field{{"uri", m.URI}}
	case native.OpenTab:
		fields = []field{{"url", m.URL}}
	case ErrorReply:
		fields = []field{{"input", m.Input}, {"message", m.Message}}
	default:
		fields = []field{{"", msg}}
	}

	for _, f := range fields {
		path := "data"
		if f.key != "" {
			path += "." + f.key
		}
		if out, err = sjson.SetBytes(out, path, f.value); err != nil {
			return nil, fmt.Errorf("encode %s.%s: %w", msg.Type(), f.key, err)
		}
	}
	return out, nil
}

type field struct {
	key   string
	value any
}

// Empty lists encode as [] rather than null.

func handles(h []geometry.Handle) []geometry.Handle {
	if h == nil {
		return []geometry.Handle{}
	}
	return h
}

func items(a []action.Item) []action.Item {
	if a == nil {
		return []action.Item{}
	}
	return a
}

func positions(p []geometry.Position) []geometry.Position {
	if p == nil {
		return []geometry.Position{}
	}
	return p
}
