package textdoc

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/dshills/textsel/internal/dom"
)

// wordBounds returns the rune range of the word segment containing idx.
// Segments without a letter or digit (spaces, punctuation) are not words.
func wordBounds(text []rune, idx int) (int, int, bool) {
	if idx < 0 || idx >= len(text) {
		return 0, 0, false
	}
	rest := string(text)
	state := -1
	start := 0
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		n := utf8.RuneCountInString(word)
		if idx >= start && idx < start+n {
			if !isWord(word) {
				return 0, 0, false
			}
			return start, start + n, true
		}
		start += n
	}
	return 0, 0, false
}

func isWord(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// moveOffset moves a boundary offset one unit of g in dir. Word movement
// skips whitespace and then one run of non-whitespace, so punctuation stays
// attached to the word it touches.
func moveOffset(text []rune, offset int, dir dom.MoveDirection, g dom.Granularity) int {
	n := len(text)
	if g == dom.GranularityParagraph {
		if dir == dom.Forward {
			return n
		}
		return 0
	}
	i := min(max(offset, 0), n)
	if dir == dom.Forward {
		for i < n && unicode.IsSpace(text[i]) {
			i++
		}
		for i < n && !unicode.IsSpace(text[i]) {
			i++
		}
		return i
	}
	for i > 0 && unicode.IsSpace(text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(text[i-1]) {
		i--
	}
	return i
}
