package model

import "strings"

// ShoppingItem is the domain model for one entry on the list.
// ID is zero until the store has persisted the item.
type ShoppingItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsBought bool   `json:"is_bought"`
}

// NewItem returns an unsaved, not-yet-bought item with a trimmed name.
func NewItem(name string) ShoppingItem {
	return ShoppingItem{Name: strings.TrimSpace(name)}
}

// Toggled returns a copy with IsBought flipped.
func (it ShoppingItem) Toggled() ShoppingItem {
	it.IsBought = !it.IsBought
	return it
}

// Renamed returns a copy carrying the trimmed name.
func (it ShoppingItem) Renamed(name string) ShoppingItem {
	it.Name = strings.TrimSpace(name)
	return it
}

// IsBlank reports whether a name is empty once surrounding whitespace is removed.
func IsBlank(name string) bool { return strings.TrimSpace(name) == "" }

// Stats counts bought items against the total, used by every list header.
func Stats(items []ShoppingItem) (bought, total int) {
	for _, it := range items {
		if it.IsBought {
			bought++
		}
	}
	return bought, len(items)
}
