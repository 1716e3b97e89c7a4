// Package config provides the settings of the selection service.
//
// Settings are merged from layers, higher layers overriding lower:
//
//	runtime      Set calls
//	environment  TEXTSEL_* variables
//	file         settings.toml or settings.yaml (with @include)
//	defaults     built in
//
// The file layer is reloaded when the file changes if watching is enabled;
// observers registered with Subscribe or SubscribePath receive one change
// per modified setting followed by a reload event.
//
// Typed access goes through the Get* methods or the Settings snapshot.
// Config also serves as the preferences source of the controller:
//
//	distance := cfg.Int("browser.ui.selection.distance", 250)
package config
