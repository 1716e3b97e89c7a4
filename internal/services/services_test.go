package services

import (
	"errors"
	"testing"

	"github.com/dshills/textsel/internal/native"
)

var (
	_ native.Clipboard    = SystemClipboard{}
	_ native.Clipboard    = (*MemoryClipboard)(nil)
	_ native.SearchEngine = (*TemplateSearchEngine)(nil)
)

func TestMemoryClipboard(t *testing.T) {
	c := &MemoryClipboard{}
	if c.HasText() {
		t.Error("new clipboard should be empty")
	}
	if err := c.WriteText("hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	got, err := c.ReadText()
	if err != nil || got != "hello" {
		t.Errorf("ReadText = %q, %v; want hello", got, err)
	}
	if !c.HasText() {
		t.Error("HasText = false after write")
	}
}

func TestNewClipboard(t *testing.T) {
	if NewClipboard() == nil {
		t.Fatal("NewClipboard returned nil")
	}
}

func TestTemplateSearchEngine(t *testing.T) {
	e, err := NewTemplateSearchEngine("Duck", "https://duckduckgo.com/?q={searchTerms}")
	if err != nil {
		t.Fatalf("NewTemplateSearchEngine: %v", err)
	}
	if e.Name() != "Duck" {
		t.Errorf("Name = %q", e.Name())
	}

	tests := []struct {
		terms   string
		want    string
		wantErr error
	}{
		{"hello", "https://duckduckgo.com/?q=hello", nil},
		{"  a b&c ", "https://duckduckgo.com/?q=a+b%26c", nil},
		{"   ", "", ErrEmptyTerms},
	}
	for _, tt := range tests {
		got, err := e.SubmissionURL(tt.terms)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("SubmissionURL(%q) err = %v, want %v", tt.terms, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("SubmissionURL(%q) = %q, want %q", tt.terms, got, tt.want)
		}
	}
}

func TestTemplateSearchEngineInvalid(t *testing.T) {
	tests := []struct {
		name     string
		template string
	}{
		{"no placeholder", "https://example.com/?q="},
		{"relative", "/search?q={searchTerms}"},
	}
	for _, tt := range tests {
		if _, err := NewTemplateSearchEngine("x", tt.template); err == nil {
			t.Errorf("%s: expected an error", tt.name)
		}
	}
	if _, err := NewTemplateSearchEngine("x", "https://example.com/?q="); !errors.Is(err, ErrNoPlaceholder) {
		t.Errorf("err = %v, want ErrNoPlaceholder", err)
	}
}
