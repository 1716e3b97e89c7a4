package app

import (
	"context"

	"github.com/dshills/textsel/internal/config"
	"github.com/dshills/textsel/internal/config/notify"
	"github.com/dshills/textsel/internal/i18n"
	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/plugin/lua"
	"github.com/dshills/textsel/internal/selection"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/services"
	"github.com/dshills/textsel/internal/textdoc"
)

// bootstrapper handles component initialization with proper cleanup on failure.
type bootstrapper struct {
	app       *Application
	opts      Options
	initOrder []string
}

// newBootstrapper creates a new bootstrapper for the application.
func newBootstrapper(app *Application, opts Options) *bootstrapper {
	return &bootstrapper{
		app:       app,
		opts:      opts,
		initOrder: make([]string, 0, 8),
	}
}

// bootstrap initializes all components in dependency order.
// On failure, it cleans up already-initialized components.
func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initLogging,
		b.initConfig,
		b.initServices,
		b.initDocument,
		b.initController,
		b.initPlugins,
		b.initSubscriptions,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			b.cleanup()
			return err
		}
	}
	b.app.log.Debug("initialized %v", b.initOrder)
	return nil
}

// initLogging creates the logger. The level is revisited once settings
// are loaded.
func (b *bootstrapper) initLogging() error {
	cfg := logging.DefaultConfig()
	if b.opts.LogOutput != nil {
		cfg.Output = b.opts.LogOutput
	}
	if b.opts.LogLevel != "" {
		cfg.Level = logging.ParseLevel(b.opts.LogLevel)
	}
	b.app.log = logging.New(cfg)
	b.initOrder = append(b.initOrder, "logging")
	return nil
}

// initConfig loads the settings. Invalid values fall back to defaults
// with a warning; an unreadable settings file is fatal.
func (b *bootstrapper) initConfig() error {
	opts := []config.Option{
		config.WithLogger(b.app.log),
		config.WithWatcher(b.opts.Watch),
	}
	if b.opts.ConfigPath != "" {
		opts = append(opts, config.WithFile(b.opts.ConfigPath))
	}
	if b.opts.Environ != nil {
		opts = append(opts, config.WithEnviron(b.opts.Environ))
	}

	cfg := config.New(opts...)
	if err := cfg.Load(context.Background()); err != nil {
		_ = cfg.Close()
		return NewComponentError("config", "load", err)
	}
	b.app.config = cfg

	settings, err := cfg.Settings()
	if err != nil {
		b.app.log.Warn("settings: %v", err)
	}
	b.app.settings = settings
	if b.opts.LogLevel == "" {
		b.app.log.SetLevel(logging.ParseLevel(settings.Logging.Level))
	}

	b.initOrder = append(b.initOrder, "config")
	return nil
}

// initServices creates the clipboard, search engine and label catalog.
func (b *bootstrapper) initServices() error {
	b.app.clipboard = b.opts.Clipboard
	if b.app.clipboard == nil {
		b.app.clipboard = services.NewClipboard()
	}

	b.app.search = NewSearchAdapter(b.searchEngine(b.app.settings.Search))
	b.app.text = NewTextAdapter(b.catalog(b.app.settings.UI.Locale))

	b.initOrder = append(b.initOrder, "services")
	return nil
}

func (b *bootstrapper) searchEngine(s config.SearchSettings) *services.TemplateSearchEngine {
	e, err := services.NewTemplateSearchEngine(s.Name, s.Template)
	if err == nil {
		return e
	}
	b.app.log.Warn("search engine %q: %v", s.Name, err)
	// The default template always parses.
	e, _ = services.NewTemplateSearchEngine(config.DefaultSearchName, config.DefaultSearchTemplate)
	return e
}

func (b *bootstrapper) catalog(locale string) *i18n.Catalog {
	c, err := i18n.New(locale)
	if err != nil {
		b.app.log.Warn("locale %q: %v", locale, err)
		return i18n.Default()
	}
	return c
}

// initDocument sets up the document engine.
func (b *bootstrapper) initDocument() error {
	b.app.doc = b.opts.Document
	if b.app.doc == nil {
		b.app.doc = DemoDocument()
	}
	b.app.engine = textdoc.NewEngine(b.app.doc, b.app.settings.UI.PixelRatio)
	b.app.resolver = NewResolver(b.app.doc)
	b.initOrder = append(b.initOrder, "document")
	return nil
}

// initController creates the action registry and the controller.
func (b *bootstrapper) initController() error {
	s := b.app.settings.Selection
	b.app.registry = action.NewRegistry()
	b.app.out = NewMeteredMessenger(b.opts.Messenger, b.app.metrics)

	defaults := action.DefaultDefaults()
	defaults.Icon = s.DefaultIcon
	defaults.ShowAsAction = s.ShowAsAction

	c, err := selection.New(selection.Options{
		Engine:       b.app.engine,
		Messenger:    b.app.out,
		Registry:     b.app.registry,
		Clipboard:    b.app.clipboard,
		Search:       b.app.search,
		Preferences:  b.app.config,
		Text:         b.app.text,
		Logger:       b.app.log,
		TouchRadius:  s.TouchRadius,
		MenuDefaults: &defaults,
	})
	if err != nil {
		return NewComponentError("controller", "create", err)
	}
	b.app.controller = c
	b.initOrder = append(b.initOrder, "controller")
	return nil
}

// initPlugins loads the configured Lua scripts. A script that fails to
// load is logged and skipped.
func (b *bootstrapper) initPlugins() error {
	p, err := loadPlugins(b.app, b.app.settings.Plugins.Scripts)
	if err != nil {
		return NewComponentError("plugins", "create", err)
	}
	b.app.plugins = p
	b.initOrder = append(b.initOrder, "plugins")
	return nil
}

func loadPlugins(app *Application, scripts []string) (*lua.Plugin, error) {
	if len(scripts) == 0 {
		return nil, nil
	}
	p, err := lua.New(lua.Options{
		Registry:  app.registry,
		Text:      app.controller,
		Clipboard: app.clipboard,
		Logger:    app.log,
	})
	if err != nil {
		return nil, err
	}
	for _, path := range scripts {
		if err := p.LoadFile(path); err != nil {
			app.log.Warn("%v", err)
		}
	}
	return p, nil
}

// initSubscriptions applies setting changes to the running components.
func (b *bootstrapper) initSubscriptions() error {
	app := b.app
	cfg := app.config
	subs := []*notify.Subscription{
		cfg.SubscribePath("logging.level", func(ch notify.Change) {
			if b.opts.LogLevel != "" {
				return
			}
			if level, err := cfg.GetString("logging.level"); err == nil {
				app.log.SetLevel(logging.ParseLevel(level))
			}
		}),
		cfg.SubscribePath("search", func(notify.Change) {
			name, _ := cfg.GetString("search.name")
			tmpl, _ := cfg.GetString("search.template")
			app.search.Set(b.searchEngine(config.SearchSettings{Name: name, Template: tmpl}))
		}),
		cfg.SubscribePath("ui.locale", func(notify.Change) {
			locale, _ := cfg.GetString("ui.locale")
			app.text.Set(b.catalog(locale))
		}),
		cfg.SubscribePath("plugins.scripts", func(ch notify.Change) {
			if ch.Type == notify.ChangeReload {
				return
			}
			app.reloadPlugins()
		}),
	}

	app.mu.Lock()
	app.subs = subs
	app.mu.Unlock()
	b.initOrder = append(b.initOrder, "subscriptions")
	return nil
}

// reloadPlugins replaces the script host with one running the current
// script list.
func (app *Application) reloadPlugins() {
	scripts, err := app.config.GetStringSlice("plugins.scripts")
	if err != nil {
		app.log.Warn("plugins.scripts: %v", err)
		return
	}

	app.mu.Lock()
	old := app.plugins
	app.plugins = nil
	app.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	p, err := loadPlugins(app, scripts)
	if err != nil {
		app.log.Error("reload plugins: %v", err)
		return
	}
	app.mu.Lock()
	app.plugins = p
	app.mu.Unlock()
	app.log.Info("reloaded %d scripts", len(scripts))
}

// cleanup releases initialized components in reverse order.
func (b *bootstrapper) cleanup() {
	for i := len(b.initOrder) - 1; i >= 0; i-- {
		switch b.initOrder[i] {
		case "controller":
			b.app.controller.Close()
		case "plugins":
			if b.app.plugins != nil {
				_ = b.app.plugins.Close()
			}
		case "config":
			_ = b.app.config.Close()
		}
	}
}
