package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/textsel/internal/config/notify"
	"github.com/dshills/textsel/internal/geom"
	"github.com/dshills/textsel/internal/native"
)

var _ native.Preferences = (*Config)(nil)

func TestDefaults(t *testing.T) {
	c := New(WithEnviron([]string{}))
	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	want := Settings{
		Selection: SelectionSettings{
			Distance:     DefaultSelectionDistance,
			TouchRadius:  geom.Insets{Left: 8, Top: 12, Right: 8, Bottom: 4},
			DefaultIcon:  DefaultActionIcon,
			ShowAsAction: true,
		},
		Search:  SearchSettings{Name: DefaultSearchName, Template: DefaultSearchTemplate},
		UI:      UISettings{Locale: "en", PixelRatio: 1},
		Logging: LoggingSettings{Level: "info"},
		Plugins: PluginSettings{Scripts: []string{}},
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("Settings (-want +got):\n%s", diff)
	}
}

func TestLoadLayers(t *testing.T) {
	fsys := fstest.MapFS{
		"conf/settings.toml": {Data: []byte(`
"@include" = ["base.yaml"]

[selection]
distance = 120

[ui]
locale = "fr"
`)},
		"conf/base.yaml": {Data: []byte(`
selection:
  distance: 90
  defaultIcon: drawable://custom
plugins:
  scripts: [a.lua, b.lua]
`)},
	}
	c := New(
		WithFile("conf/settings.toml"),
		WithFileSystem(fsys),
		WithEnviron([]string{"TEXTSEL_LOCALE=de", "HOME=/root"}),
	)
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer c.Close()

	s, err := c.Settings()
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if s.Selection.Distance != 120 {
		t.Errorf("distance = %d, want 120", s.Selection.Distance)
	}
	if s.Selection.DefaultIcon != "drawable://custom" {
		t.Errorf("icon = %q, want included value", s.Selection.DefaultIcon)
	}
	if s.UI.Locale != "de" {
		t.Errorf("locale = %q, want environment value de", s.UI.Locale)
	}
	if diff := cmp.Diff([]string{"a.lua", "b.lua"}, s.Plugins.Scripts); diff != "" {
		t.Errorf("scripts (-want +got):\n%s", diff)
	}
	if got := c.Int("browser.ui.selection.distance", 1); got != 120 {
		t.Errorf("Int(distance pref) = %d, want 120", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	c := New(WithFile("nope.toml"), WithFileSystem(fstest.MapFS{}), WithEnviron(nil))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Int("selection.distance", 0); got != DefaultSelectionDistance {
		t.Errorf("distance = %d, want default", got)
	}
}

func TestLoadErrors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.toml":     {Data: []byte("[selection\n")},
		"settings.ini": {Data: []byte("a=1")},
	}
	tests := []struct {
		name string
		path string
	}{
		{"syntax", "bad.toml"},
		{"format", "settings.ini"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithFile(tt.path), WithFileSystem(fsys), WithEnviron([]string{}))
			if err := c.Load(context.Background()); err == nil {
				t.Error("Load succeeded, want error")
			}
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := New().Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load(cancelled) = %v, want context.Canceled", err)
	}
}

func TestTypedGetters(t *testing.T) {
	c := New(WithEnviron([]string{}))

	if _, err := c.GetString("nope.missing"); !errors.Is(err, ErrSettingNotFound) {
		t.Errorf("GetString(missing) = %v, want ErrSettingNotFound", err)
	}
	if _, err := c.GetInt("ui.locale"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetInt(string) = %v, want ErrTypeMismatch", err)
	}
	var te *TypeError
	if _, err := c.GetBool("selection.distance"); !errors.As(err, &te) || te.Expected != "bool" || te.Actual != "int" {
		t.Errorf("GetBool(int) = %v, want TypeError bool/int", err)
	}
	if f, err := c.GetFloat("selection.distance"); err != nil || f != 250 {
		t.Errorf("GetFloat(int) = %v, %v; want 250", f, err)
	}
	if b, err := c.GetBool("selection.showAsAction"); err != nil || !b {
		t.Errorf("GetBool = %v, %v; want true", b, err)
	}
	if _, err := c.GetStringSlice("ui"); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("GetStringSlice(map) = %v, want ErrTypeMismatch", err)
	}
	if got := c.Int("ui.locale", 7); got != 7 {
		t.Errorf("Int(non-numeric) = %d, want default 7", got)
	}
}

func TestSetNotifies(t *testing.T) {
	c := New(WithEnviron([]string{}))
	var got []notify.Change
	c.SubscribePath("selection", func(ch notify.Change) { got = append(got, ch) })

	if err := c.Set("selection.distance", int64(40)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set("ui.locale", "de"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Set("ui.locale.deeper", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Set through a leaf = %v, want ErrInvalidPath", err)
	}
	if err := c.Set("", 1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Set(empty) = %v, want ErrInvalidPath", err)
	}

	want := []notify.Change{{
		Path:     "selection.distance",
		Type:     notify.ChangeSet,
		OldValue: int64(DefaultSelectionDistance),
		NewValue: int64(40),
		Source:   SourceRuntime,
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}
	if d := c.Int("browser.ui.selection.distance", 0); d != 40 {
		t.Errorf("distance = %d, want 40", d)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Set("ui.locale", "fr"); !errors.Is(err, ErrClosed) {
		t.Errorf("Set after Close = %v, want ErrClosed", err)
	}
}

func TestSettingsValidation(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
		want  error
	}{
		{"negative distance", "selection.distance", int64(-1), ErrInvalidSetting},
		{"zero ratio", "ui.pixelRatio", 0.0, ErrInvalidSetting},
		{"wrong type", "search.name", int64(3), ErrTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(WithEnviron([]string{}))
			if err := c.Set(tt.path, tt.value); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if _, err := c.Settings(); !errors.Is(err, tt.want) {
				t.Errorf("Settings() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMergedIsCopy(t *testing.T) {
	c := New(WithEnviron([]string{}))
	m := c.Merged()
	m["selection"].(map[string]any)["distance"] = int64(1)
	if got := c.Int("selection.distance", 0); got != DefaultSelectionDistance {
		t.Errorf("distance = %d, Merged leaked internal state", got)
	}
}

func TestReloadOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	if err := os.WriteFile(path, []byte("selection:\n  distance: 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(WithFile(path), WithWatcher(true), WithEnviron([]string{}))
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer c.Close()

	changed := make(chan notify.Change, 8)
	c.SubscribePath("selection.distance", func(ch notify.Change) {
		if ch.Type == notify.ChangeSet {
			changed <- ch
		}
	})

	if err := os.WriteFile(path, []byte("selection:\n  distance: 60\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case ch := <-changed:
		if ch.NewValue != int64(60) {
			t.Errorf("new value = %v, want 60", ch.NewValue)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
	if got := c.Int("browser.ui.selection.distance", 0); got != 60 {
		t.Errorf("distance = %d, want 60", got)
	}
}
