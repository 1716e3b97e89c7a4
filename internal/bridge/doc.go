// Package bridge carries the selection controller over a newline-delimited
// JSON connection to the native UI layer.
//
// Every line is one object of the form
//
//	{"type": "<topic or command>", "data": {...}}
//
// Inbound lines are notifications (published on the controller's router)
// or commands (start a selection, attach a caret, close). Outbound lines are
// the controller's native messages, encoded with the message type.
package bridge
