package app

import (
	"errors"
	"strings"
	"testing"
)

func TestComponentError(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		err  *ComponentError
		want string
	}{
		{NewComponentError("config", "load", base), "config: load: boom"},
		{NewComponentError("plugins", "", base), "plugins: boom"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
		if !errors.Is(tt.err, base) {
			t.Error("Unwrap lost the cause")
		}
	}
}

func TestErrorList(t *testing.T) {
	var list ErrorList
	if list.AsError() != nil {
		t.Error("empty list is not nil")
	}
	list.Add(nil)
	first, second := errors.New("first"), errors.New("second")
	list.Add(first)
	list.Add(NewComponentError("config", "close", second))

	if list.Len() != 2 {
		t.Fatalf("Len = %d, want 2", list.Len())
	}
	err := list.AsError()
	if !errors.Is(err, first) || !errors.Is(err, second) {
		t.Errorf("errors.Is failed for %v", err)
	}
	var ce *ComponentError
	if !errors.As(err, &ce) || ce.Component != "config" {
		t.Error("errors.As failed")
	}
	if !strings.Contains(err.Error(), "first") || !strings.Contains(err.Error(), "second") {
		t.Errorf("Error() = %q", err.Error())
	}
}
