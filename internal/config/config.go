package config

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dshills/textsel/internal/config/loader"
	"github.com/dshills/textsel/internal/config/notify"
	"github.com/dshills/textsel/internal/config/watcher"
	"github.com/dshills/textsel/internal/logging"
)

// SourceRuntime is the change source of Set.
const SourceRuntime = "runtime"

// SourceEnv is the change source of the environment layer.
const SourceEnv = "env"

// Config holds the merged settings and keeps them current.
type Config struct {
	mu sync.RWMutex

	defaults map[string]any
	file     map[string]any
	env      map[string]any
	runtime  map[string]any
	merged   map[string]any

	path    string
	fsys    loader.FileSystem
	environ []string

	enableWatcher bool
	watcher       *watcher.Watcher
	notifier      *notify.Notifier
	log           *logging.Logger
	closed        bool
}

// Option configures a Config instance.
type Option func(*Config)

// WithFile sets the settings file. Its format follows the extension.
func WithFile(path string) Option {
	return func(c *Config) {
		c.path = path
	}
}

// WithFileSystem replaces the file system the settings file is read from.
func WithFileSystem(fsys loader.FileSystem) Option {
	return func(c *Config) {
		c.fsys = fsys
	}
}

// WithEnviron reads the environment layer from a fixed KEY=VALUE list
// instead of the process environment.
func WithEnviron(env []string) Option {
	return func(c *Config) {
		c.environ = env
	}
}

// WithWatcher enables reloading the settings file when it changes.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(c *Config) {
		c.log = l
	}
}

// New creates a Config holding only the defaults. Call Load to read the
// file and environment layers.
func New(opts ...Option) *Config {
	c := &Config{
		defaults: defaultConfig(),
		runtime:  make(map[string]any),
		fsys:     loader.DefaultFS(),
		notifier: notify.New(),
		log:      logging.Null(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("config")
	c.rebuild()
	return c
}

// Load reads the settings file and the environment and starts the watcher
// if enabled. A missing settings file is not an error.
func (c *Config) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	file, err := c.readFile()
	if err != nil {
		return err
	}
	env, err := c.envLoader().Load()
	if err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.file = file
	c.env = env
	c.rebuild()
	c.mu.Unlock()

	if c.enableWatcher && c.path != "" {
		if err := c.startWatcher(); err != nil {
			return err
		}
	}
	return nil
}

// Reload re-reads the settings file and notifies observers of every
// setting that changed.
func (c *Config) Reload() error {
	file, err := c.readFile()
	if err != nil {
		c.log.Warn("reload %s: %v", c.path, err)
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	before := c.merged
	c.file = file
	c.rebuild()
	after := c.merged
	c.mu.Unlock()

	c.log.Info("reloaded %s", c.path)
	c.notifier.NotifyDiff(before, after, c.path)
	c.notifier.NotifyReload(c.path)
	return nil
}

// Close stops the watcher and drops all observers.
func (c *Config) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	w := c.watcher
	c.watcher = nil
	c.mu.Unlock()

	c.notifier.Close()
	if w != nil {
		return w.Close()
	}
	return nil
}

// Path returns the settings file path.
func (c *Config) Path() string {
	return c.path
}

// Get returns the value at the given path from the merged configuration.
func (c *Config) Get(path string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return getPath(c.merged, path)
}

// GetString returns a string value at the given path.
func (c *Config) GetString(path string) (string, error) {
	v, ok := c.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	s, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return s, nil
}

// GetInt returns an integer value at the given path.
func (c *Config) GetInt(path string) (int, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
}

// GetBool returns a boolean value at the given path.
func (c *Config) GetBool(path string) (bool, error) {
	v, ok := c.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetFloat returns a float64 value at the given path.
func (c *Config) GetFloat(path string) (float64, error) {
	v, ok := c.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	default:
		return 0, &TypeError{Path: path, Expected: "float64", Actual: typeName(v)}
	}
}

// GetStringSlice returns a string slice at the given path.
func (c *Config) GetStringSlice(path string) ([]string, error) {
	v, ok := c.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}

	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), nil
	case []any:
		result := make([]string, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
			}
			result[i] = s
		}
		return result, nil
	default:
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
}

// Set sets a value at the given path in the runtime layer.
func (c *Config) Set(path string, value any) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	old, _ := getPath(c.merged, path)
	if err := setPath(c.runtime, path, value); err != nil {
		c.mu.Unlock()
		return err
	}
	c.rebuild()
	c.mu.Unlock()

	c.notifier.Notify(notify.Change{
		Path:     path,
		Type:     notify.ChangeSet,
		OldValue: old,
		NewValue: value,
		Source:   SourceRuntime,
	})
	return nil
}

// Int implements native.Preferences. Host preference names such as
// browser.ui.selection.distance resolve to their setting path; a missing
// or non-numeric value yields def.
func (c *Config) Int(name string, def int) int {
	path := name
	if alias, ok := prefAliases[name]; ok {
		path = alias
	}
	v, err := c.GetInt(path)
	if err != nil {
		return def
	}
	return v
}

// Subscribe registers an observer for all changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes at or below path.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

// Merged returns a copy of the merged configuration.
func (c *Config) Merged() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return loader.Clone(c.merged)
}

// rebuild recomputes merged from the layers. Callers hold mu or own c.
func (c *Config) rebuild() {
	merged := loader.Clone(c.defaults)
	for _, l := range []map[string]any{c.file, c.env, c.runtime} {
		if l != nil {
			merged = loader.DeepMerge(merged, l)
		}
	}
	c.merged = merged
}

func (c *Config) readFile() (map[string]any, error) {
	if c.path == "" {
		return nil, nil
	}
	f, err := loader.FormatFor(c.path)
	if err != nil {
		return nil, err
	}
	data, err := loader.NewFileLoader(c.fsys, c.path, f).Load()
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Config) envLoader() *loader.EnvLoader {
	if c.environ != nil {
		return loader.NewEnvLoaderFrom(c.environ)
	}
	return loader.NewEnvLoader()
}

func (c *Config) startWatcher() error {
	w, err := watcher.New(watcher.WithErrorHandler(func(err error) {
		c.log.Warn("watch %s: %v", c.path, err)
	}))
	if err != nil {
		return err
	}
	if err := w.Watch(c.path); err != nil {
		_ = w.Close()
		return err
	}
	w.OnChange(c.handleFileChange)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return w.Close()
	}
	if c.watcher != nil {
		_ = c.watcher.Close()
	}
	c.watcher = w
	return nil
}

func (c *Config) handleFileChange(event watcher.Event) {
	c.log.Debug("%s %s", event.Op, event.Path)
	_ = c.Reload()
}

// getPath retrieves a value from a nested map using a dot-separated path.
func getPath(m map[string]any, path string) (any, bool) {
	parts := splitPath(path)
	if len(parts) == 0 {
		return nil, false
	}

	current := any(m)
	for _, part := range parts {
		cm, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = cm[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// setPath sets a value in a nested map using a dot-separated path.
func setPath(m map[string]any, path string, value any) error {
	parts := splitPath(path)
	if len(parts) == 0 {
		return ErrInvalidPath
	}

	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		nextMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s is not a section", ErrInvalidPath, part)
		}
		current = nextMap
	}
	current[parts[len(parts)-1]] = value
	return nil
}

func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, ".") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// typeName returns the type name for error messages.
func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	switch v.(type) {
	case string:
		return "string"
	case int, int64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []any:
		return "[]any"
	case map[string]any:
		return "map"
	default:
		return fmt.Sprintf("%T", v)
	}
}
