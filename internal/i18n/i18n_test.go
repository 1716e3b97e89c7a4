package i18n

import (
	"testing"

	"golang.org/x/text/language"

	"github.com/dshills/textsel/internal/selection/action"
)

var _ action.Localizer = (*Catalog)(nil)

func TestText(t *testing.T) {
	tests := []struct {
		locale string
		key    string
		args   []any
		want   string
	}{
		{"", action.KeyCopy, nil, "Copy"},
		{"en-US", action.KeySearch, []any{"DuckDuckGo"}, "DuckDuckGo Search"},
		{"fr", action.KeyPaste, nil, "Coller"},
		{"fr-CA", action.KeySearch, []any{"Qwant"}, "Recherche Qwant"},
		{"de", action.KeyTextCopied, nil, "Text in die Zwischenablage kopiert"},
		{"ja", action.KeyCut, nil, "Cut"},
		{"en", "custom.label", nil, "custom.label"},
	}
	for _, tt := range tests {
		c, err := New(tt.locale)
		if err != nil {
			t.Fatalf("New(%q): %v", tt.locale, err)
		}
		if got := c.Text(tt.key, tt.args...); got != tt.want {
			t.Errorf("%s: Text(%s) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestLanguageMatch(t *testing.T) {
	c, err := New("de-AT")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if base, _ := c.Language().Base(); base.String() != "de" {
		t.Errorf("Language = %v, want de", c.Language())
	}
	if Default().Language() != language.English {
		t.Errorf("Default language = %v", Default().Language())
	}
}

func TestInvalidLocale(t *testing.T) {
	if _, err := New("not a locale!"); err == nil {
		t.Error("expected an error for an invalid tag")
	}
}
