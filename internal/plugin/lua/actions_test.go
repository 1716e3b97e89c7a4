package lua

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/services"
	"github.com/dshills/textsel/internal/textdoc"
)

type fixedText string

func (f fixedText) SelectedText() string { return string(f) }

func newPlugin(t *testing.T) (*Plugin, *action.Registry, *services.MemoryClipboard) {
	t.Helper()
	reg := action.NewRegistry()
	clip := &services.MemoryClipboard{}
	p, err := New(Options{Registry: reg, Text: fixedText("hello world"), Clipboard: clip})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p, reg, clip
}

func TestNewRequiresRegistry(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Error("New without registry succeeded")
	}
}

func TestAddActionStaticFields(t *testing.T) {
	p, reg, clip := newPlugin(t)
	err := p.LoadString(`
		textsel.add_action{
			id = "upper",
			label = "Uppercase",
			icon = "drawable://upper",
			order = 7,
			show_as_action = false,
			applicable = function(target) return target.editable end,
			perform = function(target) textsel.set_clipboard(textsel.selected_text():upper()) end,
		}
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	doc := textdoc.New()
	field := doc.AddInput("text", "abc")
	para := doc.AddText("plain")

	want := []action.Item{{ID: "upper", Label: "Uppercase", Icon: "drawable://upper", Order: 7}}
	if diff := cmp.Diff(want, reg.Menu(field, action.DefaultDefaults())); diff != "" {
		t.Errorf("menu for field (-want +got):\n%s", diff)
	}
	if got := reg.Menu(para, action.DefaultDefaults()); len(got) != 0 {
		t.Errorf("menu for paragraph = %v, want empty", got)
	}

	if err := reg.Perform("upper", field); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if got, _ := clip.ReadText(); got != "HELLO WORLD" {
		t.Errorf("clipboard = %q, want HELLO WORLD", got)
	}
}

func TestAddActionComputedFields(t *testing.T) {
	p, reg, _ := newPlugin(t)
	err := p.LoadString(`
		id = textsel.add_action{
			label = function(target) return "Kind " .. target.kind end,
			order = function(target) return #target.text end,
			icon = function(target) return 42 end,
			show_as_action = function(target) return "yes" end,
			applicable = function(target) return not target.disabled end,
			perform = function(target) end,
		}
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	ids := p.Actions()
	if len(ids) != 1 || ids[0] == "" {
		t.Fatalf("Actions = %v, want one generated id", ids)
	}

	doc := textdoc.New()
	el := doc.AddText("four")
	got := reg.Menu(el, action.DefaultDefaults())
	// A number converts to a string; a string does not convert to a bool.
	want := []action.Item{{ID: ids[0], Label: "Kind text", Icon: "42", Order: 4}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("menu (-want +got):\n%s", diff)
	}

	el.SetDisabled(true)
	if got := reg.Menu(el, action.DefaultDefaults()); len(got) != 0 {
		t.Errorf("menu for disabled = %v, want empty", got)
	}
}

func TestAddActionErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		want string
	}{
		{"no applicable", `textsel.add_action{perform = function() end}`, "applicable"},
		{"no perform", `textsel.add_action{applicable = function() return true end}`, "perform"},
		{"not a table", `textsel.add_action("x")`, "table"},
		{"duplicate", `
			local a = {id = "d", applicable = function() return true end, perform = function() end}
			textsel.add_action(a)
			textsel.add_action(a)`, "already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := newPlugin(t)
			err := p.LoadString(tt.code)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadString = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestPerformError(t *testing.T) {
	p, reg, _ := newPlugin(t)
	if err := p.LoadString(`
		textsel.add_action{id = "boom", applicable = function() error("bad") end, perform = function() error("failed") end}
	`); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	el := textdoc.New().AddText("x")
	if got := reg.Menu(el, action.DefaultDefaults()); len(got) != 0 {
		t.Errorf("failing predicate offered action: %v", got)
	}
	if err := reg.Perform("boom", el); err == nil || !strings.Contains(err.Error(), "failed") {
		t.Errorf("Perform = %v, want script error", err)
	}
}

func TestRemoveActionAndClose(t *testing.T) {
	p, reg, _ := newPlugin(t)
	if err := p.LoadString(`
		for _, id in ipairs({"a", "b", "c"}) do
			textsel.add_action{id = id, applicable = function() return true end, perform = function() end}
		end
		removed = textsel.remove_action("b")
		missing = textsel.remove_action("zzz")
		if not removed or missing then error("remove_action results") end
	`); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c"}, p.Actions()); diff != "" {
		t.Errorf("Actions (-want +got):\n%s", diff)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry has %d actions after Close, want 0", reg.Len())
	}
	if err := p.LoadString(`x = 1`); !errors.Is(err, ErrStateClosed) {
		t.Errorf("LoadString after Close = %v, want ErrStateClosed", err)
	}
}

func TestSandbox(t *testing.T) {
	p, _, _ := newPlugin(t)
	for _, global := range []string{"io", "os", "dofile", "loadfile", "load", "loadstring", "require", "debug"} {
		code := "if " + global + " ~= nil then error('" + global + " is available') end"
		if err := p.LoadString(code); err != nil {
			t.Errorf("%s: %v", global, err)
		}
	}
}

func TestExecutionTimeout(t *testing.T) {
	reg := action.NewRegistry()
	p, err := New(Options{Registry: reg, Timeout: 50 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if err := p.LoadString(`while true do end`); !IsTimeout(err) {
		t.Errorf("LoadString(loop) = %v, want timeout", err)
	}
	if err := p.LoadString(`x = 1`); err != nil {
		t.Errorf("state unusable after timeout: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	p, reg, _ := newPlugin(t)
	path := filepath.Join(t.TempDir(), "actions.lua")
	script := `textsel.log("loading") print("a", 1)
textsel.add_action{id = "f", applicable = function() return true end, perform = function() end}`
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := p.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := reg.Get("f"); !ok {
		t.Error("action f not registered")
	}
	if err := p.LoadFile(filepath.Join(t.TempDir(), "missing.lua")); err == nil {
		t.Error("LoadFile(missing) succeeded")
	}
}

func TestStateCall(t *testing.T) {
	s := NewState()
	defer s.Close()
	if err := s.DoString(`function double(n) return n * 2 end`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	fn, ok := s.L.GetGlobal("double").(*lua.LFunction)
	if !ok {
		t.Fatal("double is not a function")
	}
	got, err := s.Call(fn, lua.LNumber(21))
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if n, ok := toInt(got); !ok || n != 42 {
		t.Errorf("double(21) = %v, want 42", got)
	}
	if s.IsClosed() {
		t.Error("IsClosed before Close")
	}
}
