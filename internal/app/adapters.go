package app

import (
	"sync/atomic"

	"github.com/dshills/textsel/internal/i18n"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/services"
)

// Compile-time interface checks.
var (
	_ native.SearchEngine = (*SearchAdapter)(nil)
	_ action.Localizer    = (*TextAdapter)(nil)
	_ native.Messenger    = (*MeteredMessenger)(nil)
)

// SearchAdapter is a search engine that can be replaced while the
// controller holds it.
type SearchAdapter struct {
	engine atomic.Pointer[services.TemplateSearchEngine]
}

// NewSearchAdapter creates an adapter serving e.
func NewSearchAdapter(e *services.TemplateSearchEngine) *SearchAdapter {
	a := &SearchAdapter{}
	a.engine.Store(e)
	return a
}

// Set replaces the engine.
func (a *SearchAdapter) Set(e *services.TemplateSearchEngine) {
	a.engine.Store(e)
}

// Name implements native.SearchEngine.
func (a *SearchAdapter) Name() string {
	return a.engine.Load().Name()
}

// SubmissionURL implements native.SearchEngine.
func (a *SearchAdapter) SubmissionURL(terms string) (string, error) {
	return a.engine.Load().SubmissionURL(terms)
}

// TextAdapter is a localizer whose catalog can be replaced.
type TextAdapter struct {
	catalog atomic.Pointer[i18n.Catalog]
}

// NewTextAdapter creates an adapter serving c.
func NewTextAdapter(c *i18n.Catalog) *TextAdapter {
	a := &TextAdapter{}
	a.catalog.Store(c)
	return a
}

// Set replaces the catalog.
func (a *TextAdapter) Set(c *i18n.Catalog) {
	a.catalog.Store(c)
}

// Text implements action.Localizer.
func (a *TextAdapter) Text(key string, args ...any) string {
	return a.catalog.Load().Text(key, args...)
}

// MeteredMessenger counts outbound messages before passing them on.
type MeteredMessenger struct {
	next    native.Messenger
	metrics *Metrics
}

// NewMeteredMessenger wraps next.
func NewMeteredMessenger(next native.Messenger, m *Metrics) *MeteredMessenger {
	return &MeteredMessenger{next: next, metrics: m}
}

// Send implements native.Messenger.
func (m *MeteredMessenger) Send(msg native.Message) error {
	m.metrics.RecordOutbound(msg.Type())
	return m.next.Send(msg)
}
