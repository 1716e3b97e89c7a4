// Package phone snaps a selection to the whole phone number it sits in.
package phone

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/textsel/internal/dom"
)

var pattern = regexp.MustCompile(`^\+?[0-9\s,\-.()*#pw]{1,30}$`)

// Matches reports whether text looks like a phone number.
func Matches(text string) bool {
	return pattern.MatchString(text)
}

// Number returns the trimmed text when it looks like a phone number.
func Number(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if !Matches(text) {
		return "", false
	}
	return text, true
}

// Extend grows a selection whose text is a phone number word by word,
// first forward and then backward, for as long as the text still matches.
// It reports whether the selection was a phone number.
func Extend(sel dom.Selection) (bool, error) {
	if sel.RangeCount() == 0 || !Matches(sel.String()) {
		return false, nil
	}

	anchor := sel.Anchor()
	forward := grow(sel, dom.Forward)

	if err := sel.Collapse(forward); err != nil {
		return true, fmt.Errorf("collapse to forward end: %w", err)
	}
	if err := sel.Extend(anchor); err != nil {
		return true, fmt.Errorf("extend to anchor: %w", err)
	}

	backward := grow(sel, dom.Backward)

	if err := sel.Collapse(backward); err != nil {
		return true, fmt.Errorf("collapse to backward end: %w", err)
	}
	if err := sel.Extend(forward); err != nil {
		return true, fmt.Errorf("extend to forward end: %w", err)
	}
	return true, nil
}

// grow extends the focus one word at a time in dir and returns the last
// focus at which the selected text still matched.
func grow(sel dom.Selection, dir dom.MoveDirection) dom.Position {
	last := sel.Focus()
	for Matches(strings.TrimSpace(sel.String())) {
		last = sel.Focus()
		sel.ExtendBy(dir, dom.GranularityWord)
		if sel.Focus() == last {
			break
		}
	}
	return last
}
