// Package cart holds the shopper's cart: pure state transitions plus a Store
// that persists every change.
package cart

import (
	"fmt"
	"slices"
	"time"

	"github.com/angelmondragon/storefront/internal/catalog"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
)

// Item is one cart line. Price is the unit price captured when the line was
// created and does not follow later catalog changes.
type Item struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size"`
	Color     string          `json:"color"`
	Price     int64           `json:"price"`
	AddedAt   time.Time       `json:"added_at"`
}

// LineTotal is Price × Quantity.
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

func (i Item) matches(productID, size, color string) bool {
	return i.ProductID == productID && i.Size == size && i.Color == color
}

// State is the ordered line list; insertion order is display order.
type State struct {
	Items []Item `json:"items"`
}

// LineID derives a line identifier from the merge identity and creation time.
func LineID(productID, size, color string, at time.Time) string {
	return fmt.Sprintf("%s-%s-%s-%d", productID, size, color, at.UnixNano())
}

// ValidateAdd checks the add-to-cart contract without touching state.
func ValidateAdd(product catalog.Product, quantity int, size, color string) error {
	details := map[string]any{"product_id": product.ID, "size": size, "color": color, "quantity": quantity}
	switch {
	case product.ID == "":
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required").WithDetails(details)
	case quantity < 1:
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").WithDetails(details)
	case !product.HasSize(size):
		return pkgerrors.New(pkgerrors.CodeValidation, "size is not offered for this product").WithDetails(details)
	case !product.HasColor(color):
		return pkgerrors.New(pkgerrors.CodeValidation, "color is not offered for this product").WithDetails(details)
	}
	return nil
}

// AddItem merges into the line with the same (product, size, color) or
// appends a new line priced at product.Price.
func (s State) AddItem(product catalog.Product, quantity int, size, color string, now time.Time) (State, error) {
	if err := ValidateAdd(product, quantity, size, color); err != nil {
		return s, err
	}
	items := slices.Clone(s.Items)
	if idx := slices.IndexFunc(items, func(it Item) bool { return it.matches(product.ID, size, color) }); idx >= 0 {
		items[idx].Quantity += quantity
		return State{Items: items}, nil
	}
	items = append(items, Item{
		ID:        LineID(product.ID, size, color, now),
		ProductID: product.ID,
		Product:   product,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Price:     product.Price,
		AddedAt:   now,
	})
	return State{Items: items}, nil
}

// RemoveItem drops the line; an unknown id is a no-op.
func (s State) RemoveItem(lineID string) State {
	return State{Items: slices.DeleteFunc(slices.Clone(s.Items), func(it Item) bool { return it.ID == lineID })}
}

// UpdateQuantity sets a line's quantity, clamped to at least 1. An unknown id
// is a no-op.
func (s State) UpdateQuantity(lineID string, quantity int) State {
	quantity = max(quantity, 1)
	items := slices.Clone(s.Items)
	for i := range items {
		if items[i].ID == lineID {
			items[i].Quantity = quantity
		}
	}
	return State{Items: items}
}

func (s State) Clear() State {
	return State{}
}

// Find returns the line with lineID.
func (s State) Find(lineID string) (Item, bool) {
	idx := slices.IndexFunc(s.Items, func(it Item) bool { return it.ID == lineID })
	if idx < 0 {
		return Item{}, false
	}
	return s.Items[idx], true
}

func (s State) TotalItemCount() int {
	total := 0
	for _, it := range s.Items {
		total += it.Quantity
	}
	return total
}

func (s State) TotalPrice() int64 {
	var total int64
	for _, it := range s.Items {
		total += it.LineTotal()
	}
	return total
}

func (s State) IsEmpty() bool {
	return len(s.Items) == 0
}

// Summary prices the cart with standard shipping, as shown on the cart page.
func (s State) Summary(rules pricing.Rules) pricing.Totals {
	return pricing.Quote(s.TotalPrice(), enums.ShippingMethodStandard, rules)
}
