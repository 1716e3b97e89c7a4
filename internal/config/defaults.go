package config

// Default setting values.
const (
	DefaultSelectionDistance = 250
	DefaultLocale            = "en"
	DefaultPixelRatio        = 1.0
	DefaultLogLevel          = "info"
	DefaultSearchName        = "DuckDuckGo"
	DefaultSearchTemplate    = "https://duckduckgo.com/?q={searchTerms}"
	DefaultActionIcon        = "drawable://ic_status_logo"
)

// prefAliases maps host preference names to setting paths.
var prefAliases = map[string]string{
	"browser.ui.selection.distance": "selection.distance",
}

func defaultConfig() map[string]any {
	return map[string]any{
		"selection": map[string]any{
			"distance": int64(DefaultSelectionDistance),
			"touchRadius": map[string]any{
				"left":   int64(8),
				"top":    int64(12),
				"right":  int64(8),
				"bottom": int64(4),
			},
			"defaultIcon":  DefaultActionIcon,
			"showAsAction": true,
		},
		"search": map[string]any{
			"name":     DefaultSearchName,
			"template": DefaultSearchTemplate,
		},
		"ui": map[string]any{
			"locale":     DefaultLocale,
			"pixelRatio": DefaultPixelRatio,
		},
		"logging": map[string]any{
			"level": DefaultLogLevel,
		},
		"plugins": map[string]any{
			"scripts": []any{},
		},
	}
}
