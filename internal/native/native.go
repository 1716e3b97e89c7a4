package native

import "sync"

// Messenger delivers messages to the native UI layer.
type Messenger interface {
	Send(msg Message) error
}

// Clipboard is the system clipboard.
type Clipboard interface {
	WriteText(text string) error
	ReadText() (string, error)
	// HasText reports whether the clipboard holds text.
	HasText() bool
}

// SearchEngine is the default search engine.
type SearchEngine interface {
	Name() string
	// SubmissionURL returns the URL searching for terms.
	SubmissionURL(terms string) (string, error)
}

// Preferences reads integer preferences.
type Preferences interface {
	Int(name string, def int) int
}

// Recorder is a Messenger that keeps every message it is sent.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// Send implements Messenger.
func (r *Recorder) Send(msg Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
	return nil
}

// Messages returns the recorded messages.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.msgs))
	copy(out, r.msgs)
	return out
}

// Types returns the type of every recorded message.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.msgs))
	for i, m := range r.msgs {
		out[i] = m.Type()
	}
	return out
}

// Last returns the most recent message of type typ.
func (r *Recorder) Last(typ string) (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.msgs) - 1; i >= 0; i-- {
		if r.msgs[i].Type() == typ {
			return r.msgs[i], true
		}
	}
	return nil, false
}

// Reset drops the recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}

// MapPreferences is a fixed set of preferences.
type MapPreferences map[string]int

// Int implements Preferences.
func (m MapPreferences) Int(name string, def int) int {
	if v, ok := m[name]; ok {
		return v
	}
	return def
}
