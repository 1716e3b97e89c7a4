package action

import (
	"sort"

	"github.com/dshills/textsel/internal/dom"
)

// Build resolves every action applicable to target into a menu item and
// sorts the items by descending order. Items with equal order keep their
// registration order.
func Build(actions []Action, target dom.Element, defaults Defaults) []Item {
	items := make([]Item, 0, len(actions))
	for _, a := range actions {
		if a.IsApplicable == nil || !a.IsApplicable(target) {
			continue
		}
		items = append(items, Item{
			ID:           a.ID,
			Label:        a.Label.Resolve(target, defaults.Label),
			Icon:         a.Icon.Resolve(target, defaults.Icon),
			ShowAsAction: a.ShowAsAction.Resolve(target, defaults.ShowAsAction),
			Order:        a.Order.Resolve(target, defaults.Order),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Order > items[j].Order
	})
	return items
}
