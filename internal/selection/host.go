package selection

import (
	"strings"

	"github.com/dshills/textsel/internal/dom"
	"github.com/dshills/textsel/internal/native"
	"github.com/dshills/textsel/internal/selection/action"
	"github.com/dshills/textsel/internal/selection/phone"
)

var _ action.Host = (*Controller)(nil)

// SelectedText returns the selected text. Textarea selections keep their
// formatting; other selections are trimmed.
func (c *Controller) SelectedText() string {
	return c.selectedText()
}

func (c *Controller) selectedText() string {
	if c.s.view == nil {
		return ""
	}
	sel := c.selection()
	if sel == nil {
		return ""
	}
	if c.s.target.Kind() == dom.KindTextArea {
		return sel.PreformattedString()
	}
	return strings.TrimSpace(sel.String())
}

// SelectedPhoneNumber implements action.Host.
func (c *Controller) SelectedPhoneNumber() (string, bool) {
	return phone.Number(c.selectedText())
}

// SelectAll implements action.Host.
func (c *Controller) SelectAll(target dom.Element) error {
	return c.StartSelection(target, StartOptions{Mode: SelectAll})
}

// CopySelection implements action.Host. It copies the selected text,
// confirms with a toast and closes the session.
func (c *Controller) CopySelection() error {
	defer c.closeSelection()

	text := c.selectedText()
	if text == "" {
		return nil
	}
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	if err := c.clipboard.WriteText(text); err != nil {
		return c.opError("copy", c.s.target, err)
	}
	c.send(native.Toast{Message: c.localize(action.KeyTextCopied), Duration: "short"})
	return nil
}

// CutSelection implements action.Host. It copies the selection out of an
// editable target, removes it and leaves a caret where it was.
func (c *Controller) CutSelection(target dom.Element) error {
	ed, ok := target.Editor()
	if !ok {
		return c.opError("cut", target, ErrUnsupportedTarget)
	}
	start, end := ed.SelectionStart(), ed.SelectionEnd()
	if err := c.CopySelection(); err != nil {
		return err
	}

	value := []rune(ed.Value())
	start, end = min(max(start, 0), len(value)), min(max(end, 0), len(value))
	if start < end {
		ed.SetValue(string(value[:start]) + string(value[end:]))
		ed.SetSelectionRange(start, start)
	}
	return c.AttachCaret(target)
}

// PasteInto implements action.Host. It pastes the clipboard text into an
// editable target and closes the session.
func (c *Controller) PasteInto(target dom.Element) error {
	ed, ok := target.Editor()
	if !ok {
		return nil
	}
	if c.clipboard == nil {
		return ErrNoClipboard
	}
	text, err := c.clipboard.ReadText()
	if err != nil {
		return c.opError("paste", target, err)
	}
	ed.Paste(text)
	target.Focus()
	c.closeSelection()
	return nil
}

// ShareSelection implements action.Host.
func (c *Controller) ShareSelection() error {
	if text := c.selectedText(); text != "" {
		c.send(native.ShareText{Text: text})
	}
	c.closeSelection()
	return nil
}

// SearchSelection implements action.Host. It opens a new tab searching the
// default engine for the selected text.
func (c *Controller) SearchSelection() error {
	defer c.closeSelection()

	text := c.selectedText()
	if text == "" || c.search == nil {
		return nil
	}
	url, err := c.search.SubmissionURL(text)
	if err != nil {
		return c.opError("search", c.s.target, err)
	}
	c.send(native.OpenTab{URL: url})
	return nil
}

// CallSelection implements action.Host. It dials the selected phone number.
func (c *Controller) CallSelection() error {
	if number, ok := c.SelectedPhoneNumber(); ok {
		c.send(native.LoadURI{URI: "tel:" + number})
	}
	c.closeSelection()
	return nil
}

func (c *Controller) localize(key string, args ...any) string {
	if c.text == nil {
		return key
	}
	return c.text.Text(key, args...)
}
