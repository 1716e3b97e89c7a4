package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/textsel/internal/dom"
)

// targetTable describes el to a script.
func targetTable(L *lua.LState, el dom.Element) *lua.LTable {
	t := L.NewTable()
	if el == nil {
		return t
	}
	t.RawSetString("kind", lua.LString(el.Kind().String()))
	t.RawSetString("input_type", lua.LString(el.InputType()))
	t.RawSetString("disabled", lua.LBool(el.Disabled()))
	t.RawSetString("direction", lua.LString(el.Direction().String()))
	t.RawSetString("text", lua.LString(el.NodeText()))
	ed, ok := el.Editor()
	t.RawSetString("editable", lua.LBool(ok))
	if ok {
		t.RawSetString("value", lua.LString(ed.Value()))
	}
	return t
}

// field is a table entry that is either a constant or a function of the
// target.
type field struct {
	value lua.LValue
	fn    *lua.LFunction
}

func getField(t *lua.LTable, key string) (field, bool) {
	v := t.RawGetString(key)
	switch v := v.(type) {
	case *lua.LNilType:
		return field{}, false
	case *lua.LFunction:
		return field{fn: v}, true
	default:
		return field{value: v}, true
	}
}

func toString(v lua.LValue) (string, bool) {
	switch v := v.(type) {
	case lua.LString:
		return string(v), true
	case lua.LNumber:
		return v.String(), true
	}
	return "", false
}

func toInt(v lua.LValue) (int, bool) {
	n, ok := v.(lua.LNumber)
	return int(n), ok
}

func toBool(v lua.LValue) (bool, bool) {
	b, ok := v.(lua.LBool)
	return bool(b), ok
}
