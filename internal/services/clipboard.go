// Package services implements the system services the selection controller
// consumes: clipboard access and the default search engine.
package services

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/dshills/textsel/internal/native"
)

// ErrClipboardUnsupported is returned when no system clipboard utility is
// available.
var ErrClipboardUnsupported = errors.New("system clipboard unsupported")

// SystemClipboard is the operating system clipboard.
type SystemClipboard struct{}

// NewClipboard returns the system clipboard, or a MemoryClipboard when the
// platform has no clipboard utility.
func NewClipboard() native.Clipboard {
	if clipboard.Unsupported {
		return &MemoryClipboard{}
	}
	return SystemClipboard{}
}

// WriteText replaces the clipboard contents.
func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrClipboardUnsupported
	}
	return clipboard.WriteAll(text)
}

// ReadText returns the clipboard contents.
func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", ErrClipboardUnsupported
	}
	return clipboard.ReadAll()
}

// HasText reports whether the clipboard holds non-empty text.
func (c SystemClipboard) HasText() bool {
	text, err := c.ReadText()
	return err == nil && text != ""
}

// MemoryClipboard is a process-local clipboard.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
}

// WriteText implements native.Clipboard.
func (c *MemoryClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	return nil
}

// ReadText implements native.Clipboard.
func (c *MemoryClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, nil
}

// HasText implements native.Clipboard.
func (c *MemoryClipboard) HasText() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text != ""
}
