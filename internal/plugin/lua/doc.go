// Package lua runs user scripts that add actions to the selection menu.
//
// Scripts run in a sandboxed gopher-lua state holding only the base,
// table, string and math libraries, plus a textsel module:
//
//	textsel.add_action{
//	    id = "upper",                       -- optional, generated when absent
//	    label = "Uppercase",                -- value or function(target)
//	    icon = "drawable://upper",          -- value or function(target)
//	    order = 2,                          -- value or function(target)
//	    show_as_action = false,             -- value or function(target)
//	    applicable = function(target) return target.editable end,
//	    perform = function(target) textsel.set_clipboard(textsel.selected_text():upper()) end,
//	}
//	textsel.remove_action("upper")
//	textsel.log("loaded")
//
// The target passed to script functions is a table describing the element
// the selection lives in: kind, input_type, disabled, editable, direction,
// text and, for form fields, value.
//
// The state is not safe for concurrent use from Lua; every call from Go is
// serialized by the State mutex and bounded by the execution timeout.
package lua
