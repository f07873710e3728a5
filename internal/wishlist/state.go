// Package wishlist keeps the signed-in shopper's saved products in sync with
// the remote wishlist rows.
package wishlist

import (
	"slices"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
)

// Item is one saved product. Identity is (UserID, ProductID).
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	ProductID string          `json:"product_id"`
	Product   catalog.Product `json:"product"`
	CreatedAt time.Time       `json:"created_at"`
}

// State is the local copy of one user's wishlist.
type State struct {
	UserID string `json:"user_id"`
	Items  []Item `json:"items"`
}

// Replace discards local items in favour of rows fetched for userID.
func Replace(userID string, rows []Item) State {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		if row.UserID != "" && row.UserID != userID {
			continue
		}
		if slices.ContainsFunc(items, func(it Item) bool { return it.ProductID == row.ProductID }) {
			continue
		}
		row.UserID = userID
		items = append(items, row)
	}
	return State{UserID: userID, Items: items}
}

// Append adds item unless its product is already saved. The bool reports
// whether the state changed.
func (s State) Append(item Item) (State, bool) {
	if s.Contains(item.ProductID) {
		return s, false
	}
	return State{UserID: s.UserID, Items: append(slices.Clone(s.Items), item)}, true
}

// Remove drops the entry for productID; an absent product is a no-op.
func (s State) Remove(productID string) State {
	return State{
		UserID: s.UserID,
		Items:  slices.DeleteFunc(slices.Clone(s.Items), func(it Item) bool { return it.ProductID == productID }),
	}
}

func (s State) Contains(productID string) bool {
	return slices.ContainsFunc(s.Items, func(it Item) bool { return it.ProductID == productID })
}

// ProductIDs lists saved product ids in display order.
func (s State) ProductIDs() []string {
	out := make([]string, 0, len(s.Items))
	for _, it := range s.Items {
		out = append(out, it.ProductID)
	}
	return out
}
