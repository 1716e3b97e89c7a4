package lua

import (
	"fmt"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/logging"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
)

// ModuleName is the global table scripts use.
const ModuleName = "textsel"

// TextSource returns the current selection text.
type TextSource interface {
	SelectedText() string
}

// Options configure a Plugin.
type Options struct {
	// Registry receives the script actions. Required.
	Registry *action.Registry
	// Text backs textsel.selected_text.
	Text TextSource
	// Clipboard backs textsel.set_clipboard.
	Clipboard native.Clipboard
	Logger    *logging.Logger
	// Timeout bounds each call into Lua; zero keeps the default.
	Timeout time.Duration
}

// Plugin loads scripts and keeps the actions they register.
type Plugin struct {
	state    *State
	registry *action.Registry
	text     TextSource
	clip     native.Clipboard
	log      *logging.Logger

	mu    sync.Mutex
	owned []string
}

// New creates a plugin host with its own Lua state.
func New(opts Options) (*Plugin, error) {
	if opts.Registry == nil {
		return nil, fmt.Errorf("lua: registry is required")
	}
	p := &Plugin{
		registry: opts.Registry,
		text:     opts.Text,
		clip:     opts.Clipboard,
		log:      opts.Logger,
	}
	if p.log == nil {
		p.log = logging.Null()
	}
	p.log = p.log.WithComponent("lua")

	stateOpts := []StateOption{WithPrint(func(msg string) { p.log.Info("%s", msg) })}
	if opts.Timeout > 0 {
		stateOpts = append(stateOpts, WithExecutionTimeout(opts.Timeout))
	}
	p.state = NewState(stateOpts...)
	p.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"add_action":    p.addAction,
		"remove_action": p.removeAction,
		"selected_text": p.selectedText,
		"set_clipboard": p.setClipboard,
		"log":           p.logMessage,
	})
	return p, nil
}

// LoadFile runs a script file.
func (p *Plugin) LoadFile(path string) error {
	if err := p.state.DoFile(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	p.log.Debug("loaded %s", path)
	return nil
}

// LoadString runs a script chunk.
func (p *Plugin) LoadString(code string) error {
	return p.state.DoString(code)
}

// Actions returns the ids of the actions registered by scripts and still
// present.
func (p *Plugin) Actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.owned...)
}

// Close unregisters every script action and releases the Lua state.
func (p *Plugin) Close() error {
	p.mu.Lock()
	owned := p.owned
	p.owned = nil
	p.mu.Unlock()

	for _, id := range owned {
		_ = p.registry.Remove(id)
	}
	return p.state.Close()
}

func (p *Plugin) addAction(L *lua.LState) int {
	t := L.CheckTable(1)

	applicable, ok := t.RawGetString("applicable").(*lua.LFunction)
	if !ok {
		L.ArgError(1, "applicable must be a function")
	}
	perform, ok := t.RawGetString("perform").(*lua.LFunction)
	if !ok {
		L.ArgError(1, "perform must be a function")
	}

	a := action.Action{
		IsApplicable: func(target dom.Element) bool {
			v, err := p.call(applicable, target)
			if err != nil {
				p.log.Warn("applicable: %v", err)
				return false
			}
			return lua.LVAsBool(v)
		},
		Perform: func(target dom.Element) error {
			_, err := p.call(perform, target)
			return err
		},
	}
	if id, ok := t.RawGetString("id").(lua.LString); ok {
		a.ID = string(id)
	}
	if f, ok := getField(t, "label"); ok {
		a.Label = value(p, f, toString)
	}
	if f, ok := getField(t, "icon"); ok {
		a.Icon = value(p, f, toString)
	}
	if f, ok := getField(t, "order"); ok {
		a.Order = value(p, f, toInt)
	}
	if f, ok := getField(t, "show_as_action"); ok {
		a.ShowAsAction = value(p, f, toBool)
	}

	id, err := p.registry.Add(a)
	if err != nil {
		L.RaiseError("%v", err)
	}
	p.mu.Lock()
	p.owned = append(p.owned, id)
	p.mu.Unlock()

	L.Push(lua.LString(id))
	return 1
}

func (p *Plugin) removeAction(L *lua.LState) int {
	id := L.CheckString(1)
	if err := p.registry.Remove(id); err != nil {
		L.Push(lua.LFalse)
		return 1
	}
	p.mu.Lock()
	for i, owned := range p.owned {
		if owned == id {
			p.owned = append(p.owned[:i], p.owned[i+1:]...)
			break
		}
	}
	p.mu.Unlock()
	L.Push(lua.LTrue)
	return 1
}

func (p *Plugin) selectedText(L *lua.LState) int {
	if p.text == nil {
		L.Push(lua.LString(""))
		return 1
	}
	L.Push(lua.LString(p.text.SelectedText()))
	return 1
}

func (p *Plugin) setClipboard(L *lua.LState) int {
	text := L.CheckString(1)
	if p.clip == nil {
		L.RaiseError("no clipboard")
	}
	if err := p.clip.WriteText(text); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (p *Plugin) logMessage(L *lua.LState) int {
	p.log.Info("%s", L.CheckString(1))
	return 0
}

// call runs a script function with the target table.
func (p *Plugin) call(fn *lua.LFunction, target dom.Element) (lua.LValue, error) {
	ret := lua.LValue(lua.LNil)
	err := p.state.run(func(L *lua.LState) error {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, targetTable(L, target)); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	return ret, err
}

// value turns a script field into a menu Value. Function results of the
// wrong type resolve to the zero value and are logged.
func value[T any](p *Plugin, f field, conv func(lua.LValue) (T, bool)) action.Value[T] {
	if f.fn == nil {
		v, ok := conv(f.value)
		if !ok {
			return action.Value[T]{}
		}
		return action.Static(v)
	}
	fn := f.fn
	return action.Computed(func(target dom.Element) T {
		var zero T
		ret, err := p.call(fn, target)
		if err != nil {
			p.log.Warn("menu field: %v", err)
			return zero
		}
		v, ok := conv(ret)
		if !ok {
			p.log.Warn("menu field: %v: got %s", ErrBadResult, ret.Type())
			return zero
		}
		return v
	})
}
