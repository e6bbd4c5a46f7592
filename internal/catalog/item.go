// Package catalog holds the immutable product entries vendors list.
package catalog

import "github.com/shopspring/decimal"

// Item is a purchasable product. Items are never mutated after the
// directory loads them; the basket and orders copy them by value.
type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Weight      string          `json:"weight"`
	ImageURL    string          `json:"imageUrl"`
	CategoryID  string          `json:"categoryId"`
}

// FindItem returns the item with the given id.
func FindItem(items []Item, id string) (Item, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// CloneItems returns an independent copy of items; nil stays nil.
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
