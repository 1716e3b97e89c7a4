package action

import "github.com/dshills/textsel/internal/dom"

// Builtin action ids.
const (
	SelectAllID = "selectall_action"
	CutID       = "cut_action"
	CopyID      = "copy_action"
	PasteID     = "paste_action"
	ShareID     = "share_action"
	SearchID    = "search_action"
	CallID      = "call_action"
)

// Message keys of the builtin labels.
const (
	KeySelectAll  = "contextmenu.selectAll"
	KeyCut        = "contextmenu.cut"
	KeyCopy       = "contextmenu.copy"
	KeyPaste      = "contextmenu.paste"
	KeyShare      = "contextmenu.share"
	KeySearch     = "contextmenu.search"
	KeyCall       = "contextmenu.call"
	KeyTextCopied = "selectionHelper.textCopied"
)

// Host is the selection controller surface the builtin actions use.
type Host interface {
	// IsSelectionActive reports whether a range selection is active.
	IsSelectionActive() bool
	// SelectedPhoneNumber returns the selected text if it is a phone number.
	SelectedPhoneNumber() (string, bool)

	SelectAll(target dom.Element) error
	CopySelection() error
	CutSelection(target dom.Element) error
	PasteInto(target dom.Element) error
	ShareSelection() error
	SearchSelection() error
	CallSelection() error
}

// Localizer returns the localized text for a message key.
type Localizer interface {
	Text(key string, args ...any) string
}

// ClipboardChecker reports whether the clipboard holds text.
type ClipboardChecker interface {
	HasText() bool
}

// EngineNamer names the default search engine.
type EngineNamer interface {
	Name() string
}

// BuiltinDeps are the services the builtin actions consult.
type BuiltinDeps struct {
	Text      Localizer
	Clipboard ClipboardChecker
	Search    EngineNamer
}

// Builtins returns the standard actions: select all, cut, copy, paste,
// share, search and call.
func Builtins(h Host, deps BuiltinDeps) []Action {
	text := func(key string, args ...any) string {
		if deps.Text == nil {
			return key
		}
		return deps.Text.Text(key, args...)
	}
	// Labels follow locale changes made after registration.
	label := func(key string) Value[string] {
		return Computed(func(dom.Element) string { return text(key) })
	}

	return []Action{
		{
			ID:    SelectAllID,
			Label: label(KeySelectAll),
			Icon:  Static("drawable://ab_select_all"),
			Order: Static(5),
			IsApplicable: func(target dom.Element) bool {
				return target != nil && target.TextLength() != 0
			},
			Perform: h.SelectAll,
		},
		{
			ID:    CutID,
			Label: label(KeyCut),
			Icon:  Static("drawable://ab_cut"),
			Order: Static(4),
			IsApplicable: func(target dom.Element) bool {
				return dom.IsEditableText(target) && h.IsSelectionActive()
			},
			Perform: h.CutSelection,
		},
		{
			ID:    CopyID,
			Label: label(KeyCopy),
			Icon:  Static("drawable://ab_copy"),
			Order: Static(3),
			IsApplicable: func(target dom.Element) bool {
				if target != nil && target.Kind() == dom.KindInput && !dom.IsTextField(target, true) {
					return false
				}
				return h.IsSelectionActive()
			},
			Perform: func(dom.Element) error { return h.CopySelection() },
		},
		{
			ID:    PasteID,
			Label: label(KeyPaste),
			Icon:  Static("drawable://ab_paste"),
			Order: Static(2),
			IsApplicable: func(target dom.Element) bool {
				return dom.IsEditableText(target) && deps.Clipboard != nil && deps.Clipboard.HasText()
			},
			Perform: h.PasteInto,
		},
		{
			ID:    ShareID,
			Label: label(KeyShare),
			Icon:  Static("drawable://ic_menu_share"),
			IsApplicable: func(dom.Element) bool {
				return h.IsSelectionActive()
			},
			Perform: func(dom.Element) error { return h.ShareSelection() },
		},
		{
			ID: SearchID,
			Label: Computed(func(dom.Element) string {
				name := ""
				if deps.Search != nil {
					name = deps.Search.Name()
				}
				return text(KeySearch, name)
			}),
			Icon:  Static("drawable://ab_search"),
			Order: Static(1),
			IsApplicable: func(dom.Element) bool {
				return h.IsSelectionActive()
			},
			Perform: func(dom.Element) error { return h.SearchSelection() },
		},
		{
			ID:    CallID,
			Label: label(KeyCall),
			Icon:  Static("drawable://phone"),
			Order: Static(1),
			IsApplicable: func(dom.Element) bool {
				_, ok := h.SelectedPhoneNumber()
				return ok
			},
			Perform: func(dom.Element) error { return h.CallSelection() },
		},
	}
}

// RegisterBuiltins adds the builtin actions to r.
func RegisterBuiltins(r *Registry, h Host, deps BuiltinDeps) error {
	for _, a := range Builtins(h, deps) {
		if _, err := r.Add(a); err != nil {
			return err
		}
	}
	return nil
}
