package phone

import (
	"testing"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/textdoc"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"555", true},
		{"+1 (555) 123-4567", true},
		{"555-1234#22", true},
		{"555,,123p4", true},
		{"Call +1", false},
		{"", false},
		{"++1", false},
		{"1234567890123456789012345678901", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.text); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	if got, ok := Number("  555-1234 "); !ok || got != "555-1234" {
		t.Errorf("Number = %q, %v", got, ok)
	}
	if _, ok := Number("hello"); ok {
		t.Error("hello is not a phone number")
	}
}

func selectRange(t *testing.T, text string, from, to int) *textdoc.Selection {
	t.Helper()
	doc := textdoc.New()
	el := doc.AddText(text)
	sel := doc.DocumentSelection()
	if err := sel.Collapse(dom.Position{Node: el, Offset: from}); err != nil {
		t.Fatal(err)
	}
	if err := sel.Extend(dom.Position{Node: el, Offset: to}); err != nil {
		t.Fatal(err)
	}
	return sel
}

func TestExtend(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		from, to int
		want     string
		isPhone  bool
	}{
		{"inside digits", "Call +1 (555) 123-4567 now", 9, 12, "+1 (555) 123-4567", true},
		{"last group", "Call +1 (555) 123-4567 now", 14, 22, "+1 (555) 123-4567", true},
		{"whole text", "555 1234", 0, 3, "555 1234", true},
		{"not a number", "Call +1 (555) 123-4567 now", 0, 4, "Call", false},
	}
	for _, tt := range tests {
		sel := selectRange(t, tt.text, tt.from, tt.to)
		ok, err := Extend(sel)
		if err != nil {
			t.Fatalf("%s: Extend: %v", tt.name, err)
		}
		if ok != tt.isPhone {
			t.Errorf("%s: Extend = %v, want %v", tt.name, ok, tt.isPhone)
		}
		if got := sel.String(); got != tt.want {
			t.Errorf("%s: selection = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestExtendKeepsForwardFocus(t *testing.T) {
	sel := selectRange(t, "Call +1 (555) 123-4567 now", 9, 12)
	if _, err := Extend(sel); err != nil {
		t.Fatal(err)
	}
	if sel.Anchor().Offset != 5 || sel.Focus().Offset != 22 {
		t.Errorf("anchor/focus = %d/%d, want 5/22", sel.Anchor().Offset, sel.Focus().Offset)
	}
}
