package dom_test

import (
	"testing"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/textdoc"
)

func TestElementPredicates(t *testing.T) {
	doc := textdoc.New()
	_, frameDoc := doc.AddFrame(32)

	tests := []struct {
		name        string
		el          dom.Element
		field       bool
		fieldNoPass bool
		editable    bool
		selectable  bool
	}{
		{"text", doc.AddText("p"), false, false, false, true},
		{"input", doc.AddInput("text", "v"), true, true, true, true},
		{"email", doc.AddInput("email", "v"), true, true, true, true},
		{"password", doc.AddInput("password", "v"), true, false, true, true},
		{"checkbox", doc.AddInput("checkbox", ""), false, false, false, true},
		{"textarea", doc.AddTextArea("v"), false, false, true, true},
		{"button", doc.AddButton("b"), false, false, false, false},
		{"image", doc.AddImage(16), false, false, false, false},
		{"no select", doc.AddText("x").SetUserSelectNone(true), false, false, false, false},
		{"frame text", frameDoc.AddText("f"), false, false, false, true},
		{"nil", nil, false, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dom.IsTextField(tt.el, false); got != tt.field {
				t.Errorf("IsTextField = %v, want %v", got, tt.field)
			}
			if got := dom.IsTextField(tt.el, true); got != tt.fieldNoPass {
				t.Errorf("IsTextField(excludePassword) = %v, want %v", got, tt.fieldNoPass)
			}
			if got := dom.IsEditableText(tt.el); got != tt.editable {
				t.Errorf("IsEditableText = %v, want %v", got, tt.editable)
			}
			if got := dom.CanSelect(tt.el); got != tt.selectable {
				t.Errorf("CanSelect = %v, want %v", got, tt.selectable)
			}
		})
	}
}

func TestSameView(t *testing.T) {
	a, b := textdoc.New(), textdoc.New()
	tests := []struct {
		x, y dom.View
		want bool
	}{
		{a, a, true},
		{a, b, false},
		{a, nil, false},
		{nil, a, false},
		{nil, nil, true},
	}
	for _, tt := range tests {
		if got := dom.SameView(tt.x, tt.y); got != tt.want {
			t.Errorf("SameView(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	if dom.RTL.String() != "rtl" || dom.LTR.String() != "ltr" {
		t.Error("direction names")
	}
	if dom.KindTextArea.String() != "textarea" || dom.ElementKind(99).String() != "unknown" {
		t.Error("kind names")
	}
	r := dom.ReasonMouseUp | dom.ReasonCollapseToEnd
	if !r.Has(dom.ReasonCollapseToEnd) || r.Has(dom.ReasonDrag) {
		t.Errorf("ChangeReason.Has on %b", r)
	}
	if !(dom.Position{}).IsZero() {
		t.Error("zero position not zero")
	}
}
