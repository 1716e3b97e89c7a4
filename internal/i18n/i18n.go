// Package i18n provides the localized strings of the selection menu.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/dshills/textsel/internal/selection/action"
)

// supported lists the translated languages, fallback first.
var supported = []language.Tag{language.English, language.French, language.German}

// translations holds the strings per language.
var translations = map[language.Tag]map[string]string{
	language.English: {
		action.KeySelectAll:  "Select All",
		action.KeyCut:        "Cut",
		action.KeyCopy:       "Copy",
		action.KeyPaste:      "Paste",
		action.KeyShare:      "Share",
		action.KeySearch:     "%s Search",
		action.KeyCall:       "Call",
		action.KeyTextCopied: "Text copied to clipboard",
	},
	language.French: {
		action.KeySelectAll:  "Tout sélectionner",
		action.KeyCut:        "Couper",
		action.KeyCopy:       "Copier",
		action.KeyPaste:      "Coller",
		action.KeyShare:      "Partager",
		action.KeySearch:     "Recherche %s",
		action.KeyCall:       "Appeler",
		action.KeyTextCopied: "Texte copié dans le presse-papiers",
	},
	language.German: {
		action.KeySelectAll:  "Alles auswählen",
		action.KeyCut:        "Ausschneiden",
		action.KeyCopy:       "Kopieren",
		action.KeyPaste:      "Einfügen",
		action.KeyShare:      "Teilen",
		action.KeySearch:     "%s-Suche",
		action.KeyCall:       "Anrufen",
		action.KeyTextCopied: "Text in die Zwischenablage kopiert",
	},
}

// Catalog formats localized strings for one locale.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a catalog for locale, a BCP 47 tag such as "fr-CA". Locales
// without translations fall back to English.
func New(locale string) (*Catalog, error) {
	requested := language.English
	if locale != "" {
		t, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("parse locale %q: %w", locale, err)
		}
		requested = t
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, msgs := range translations {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("catalog %s %s: %w", tag, key, err)
			}
		}
	}

	_, idx, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[idx]
	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(b))}, nil
}

// Default returns the English catalog.
func Default() *Catalog {
	c, err := New("")
	if err != nil {
		panic(err)
	}
	return c
}

// Language returns the matched language.
func (c *Catalog) Language() language.Tag { return c.tag }

// Text implements action.Localizer. Unknown keys are returned as is.
func (c *Catalog) Text(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
