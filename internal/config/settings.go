package config

import (
	"errors"
	"fmt"

	"github.com/dshills/textsel/internal/geom"
)

// Settings is a typed snapshot of the configuration.
type Settings struct {
	Selection SelectionSettings
	Search    SearchSettings
	UI        UISettings
	Logging   LoggingSettings
	Plugins   PluginSettings
}

// SelectionSettings configure the selection controller.
type SelectionSettings struct {
	// Distance is the largest manhattan distance between a long press and
	// the word it selects.
	Distance int
	// TouchRadius inflates the selection when testing taps against it.
	TouchRadius geom.Insets
	// DefaultIcon and ShowAsAction fill unset action menu fields.
	DefaultIcon  string
	ShowAsAction bool
}

// SearchSettings name the search engine.
type SearchSettings struct {
	Name string
	// Template is the submission URL with a {searchTerms} placeholder.
	Template string
}

// UISettings describe the host display.
type UISettings struct {
	Locale     string
	PixelRatio float64
}

// LoggingSettings configure the logger.
type LoggingSettings struct {
	Level string
}

// PluginSettings list the Lua action scripts to load.
type PluginSettings struct {
	Scripts []string
}

// Settings returns a typed snapshot of the merged configuration. Values
// of the wrong type or range are reported together.
func (c *Config) Settings() (Settings, error) {
	r := reader{c: c}
	s := Settings{
		Selection: SelectionSettings{
			Distance: r.int("selection.distance", DefaultSelectionDistance),
			TouchRadius: geom.Insets{
				Left:   r.float("selection.touchRadius.left", 0),
				Top:    r.float("selection.touchRadius.top", 0),
				Right:  r.float("selection.touchRadius.right", 0),
				Bottom: r.float("selection.touchRadius.bottom", 0),
			},
			DefaultIcon:  r.string("selection.defaultIcon", DefaultActionIcon),
			ShowAsAction: r.bool("selection.showAsAction", true),
		},
		Search: SearchSettings{
			Name:     r.string("search.name", DefaultSearchName),
			Template: r.string("search.template", DefaultSearchTemplate),
		},
		UI: UISettings{
			Locale:     r.string("ui.locale", DefaultLocale),
			PixelRatio: r.float("ui.pixelRatio", DefaultPixelRatio),
		},
		Logging: LoggingSettings{
			Level: r.string("logging.level", DefaultLogLevel),
		},
		Plugins: PluginSettings{
			Scripts: r.strings("plugins.scripts"),
		},
	}

	if s.Selection.Distance < 0 {
		r.fail(fmt.Errorf("%w: selection.distance must not be negative", ErrInvalidSetting))
	}
	if s.UI.PixelRatio <= 0 {
		r.fail(fmt.Errorf("%w: ui.pixelRatio must be positive", ErrInvalidSetting))
	}
	return s, r.err
}

// reader collects the first error while reading settings with defaults.
type reader struct {
	c   *Config
	err error
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *reader) int(path string, def int) int {
	v, err := r.c.GetInt(path)
	return pick(r, err, v, def)
}

func (r *reader) float(path string, def float64) float64 {
	v, err := r.c.GetFloat(path)
	return pick(r, err, v, def)
}

func (r *reader) string(path, def string) string {
	v, err := r.c.GetString(path)
	return pick(r, err, v, def)
}

func (r *reader) bool(path string, def bool) bool {
	v, err := r.c.GetBool(path)
	return pick(r, err, v, def)
}

func (r *reader) strings(path string) []string {
	v, err := r.c.GetStringSlice(path)
	return pick(r, err, v, nil)
}

func pick[T any](r *reader, err error, v, def T) T {
	if err == nil {
		return v
	}
	if !errors.Is(err, ErrSettingNotFound) {
		r.fail(err)
	}
	return def
}
