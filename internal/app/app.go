// Package app wires the selection controller to its configuration,
// services, scripted actions and transports, and manages their lifecycle.
package app

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/textsel/internal/bridge"
	"github.com/dshills/textsel/internal/config"
	"github.com/dshills/textsel/internal/config/notify"
	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/event"
	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/plugin/lua"
	"github.com/dshills/textsel/internal/selection"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/textdoc"
)

var _ bridge.Target = (*Application)(nil)

// Application owns the controller and everything it depends on. The
// controller methods it forwards must be called from one goroutine.
type Application struct {
	mu sync.Mutex

	opts     Options
	log      *logging.Logger
	config   *config.Config
	settings config.Settings

	doc      *textdoc.Document
	engine   *textdoc.Engine
	resolver *Resolver

	registry   *action.Registry
	controller *selection.Controller
	search     *SearchAdapter
	text       *TextAdapter
	clipboard  native.Clipboard
	plugins    *lua.Plugin
	metrics    *Metrics
	out        native.Messenger

	subs   []*notify.Subscription
	closed atomic.Bool
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file; empty uses defaults and environment.
	ConfigPath string
	// Watch reloads the settings file when it changes.
	Watch bool
	// LogLevel overrides the configured level when set.
	LogLevel string
	// LogOutput receives log lines; defaults to stderr.
	LogOutput io.Writer
	// Environ replaces the process environment for configuration.
	Environ []string

	// Messenger receives outbound messages. Required.
	Messenger native.Messenger
	// Document is the document the controller works on; defaults to the
	// demo document.
	Document *textdoc.Document
	// Clipboard defaults to the system clipboard.
	Clipboard native.Clipboard
}

// New creates and wires an Application.
func New(opts Options) (*Application, error) {
	if opts.Messenger == nil {
		return nil, ErrNoMessenger
	}
	app := &Application{opts: opts, metrics: NewMetrics()}
	if err := newBootstrapper(app, opts).bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// Dispatch delivers a notification to the controller.
func (app *Application) Dispatch(n event.Notification) error {
	if app.closed.Load() {
		return ErrClosed
	}
	start := time.Now()
	err := app.controller.Publish(n)
	app.metrics.RecordInbound(n.Topic().String(), time.Since(start), err)
	if err != nil {
		app.log.Debug("%s: %v", n.Topic(), err)
	}
	return err
}

// Publish implements bridge.Target.
func (app *Application) Publish(n event.Notification) error {
	return app.Dispatch(n)
}

// StartSelection starts a range selection in el.
func (app *Application) StartSelection(el dom.Element, opts selection.StartOptions) error {
	if app.closed.Load() {
		return ErrClosed
	}
	return app.record(bridge.TypeStartSelection, func() error {
		return app.controller.StartSelection(el, opts)
	})
}

// AttachCaret attaches the caret handle to el.
func (app *Application) AttachCaret(el dom.Element) error {
	if app.closed.Load() {
		return ErrClosed
	}
	return app.record(bridge.TypeAttachCaret, func() error {
		return app.controller.AttachCaret(el)
	})
}

// CloseSelection ends the active session.
func (app *Application) CloseSelection() {
	if app.closed.Load() {
		return
	}
	_ = app.record(bridge.TypeCloseSelection, func() error {
		app.controller.CloseSelection()
		return nil
	})
}

func (app *Application) record(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	app.metrics.RecordInbound(name, time.Since(start), err)
	return err
}

// Serve reads JSON commands from r until EOF or ctx is done, replying to
// failures on the messenger.
func (app *Application) Serve(ctx context.Context, r io.Reader) error {
	if app.closed.Load() {
		return ErrClosed
	}
	t := bridge.NewTransport(r, bridge.NewDecoder(app.resolver), app.out, app.log)
	return t.Serve(ctx, app)
}

// Close shuts components down in reverse order.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs ErrorList
	app.mu.Lock()
	for _, sub := range app.subs {
		sub.Unsubscribe()
	}
	app.subs = nil
	plugins := app.plugins
	app.plugins = nil
	app.mu.Unlock()

	if app.controller != nil {
		app.controller.Close()
	}
	if plugins != nil {
		if err := plugins.Close(); err != nil {
			errs.Add(NewComponentError("plugins", "close", err))
		}
	}
	if app.config != nil {
		if err := app.config.Close(); err != nil {
			errs.Add(NewComponentError("config", "close", err))
		}
	}
	return errs.AsError()
}

// IsClosed reports whether Close was called.
func (app *Application) IsClosed() bool {
	return app.closed.Load()
}

// Controller returns the selection controller.
func (app *Application) Controller() *selection.Controller { return app.controller }

// Config returns the configuration.
func (app *Application) Config() *config.Config { return app.config }

// Settings returns the settings read at startup.
func (app *Application) Settings() config.Settings { return app.settings }

// Document returns the top-level document.
func (app *Application) Document() *textdoc.Document { return app.doc }

// Engine returns the document engine.
func (app *Application) Engine() *textdoc.Engine { return app.engine }

// Resolver returns the wire id resolver.
func (app *Application) Resolver() *Resolver { return app.resolver }

// Registry returns the action registry.
func (app *Application) Registry() *action.Registry { return app.registry }

// Metrics returns the traffic counters.
func (app *Application) Metrics() *Metrics { return app.metrics }

// Logger returns the application logger.
func (app *Application) Logger() *logging.Logger { return app.log }

// Plugins returns the script host, or nil when no scripts are configured.
func (app *Application) Plugins() *lua.Plugin {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.plugins
}
