package orders

import (
	"time"

	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/pkg/db/models"
	"github.com/angelmondragon/storefront/pkg/enums"
)

// Address is the information step of checkout.
type Address struct {
	Email      string `json:"email" validate:"required,email"`
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Address    string `json:"address" validate:"required"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Phone      string `json:"phone" validate:"required"`
}

// LineInput is one cart line as submitted by the client.
type LineInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// PlaceRequest is the order submission. Expected, when set, is the quote the
// client showed the shopper; a mismatch rejects the order.
type PlaceRequest struct {
	Lines          []LineInput          `json:"lines" validate:"required,min=1,dive"`
	Address        Address              `json:"address"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method" validate:"required"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method" validate:"required"`
	Expected       *pricing.Totals      `json:"expected,omitempty"`
}

type Line struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Order is the API representation of a placed order.
type Order struct {
	ID             string               `json:"id"`
	UserID         string               `json:"user_id"`
	Lines          []Line               `json:"lines"`
	Address        Address              `json:"address"`
	Subtotal       int64                `json:"subtotal"`
	Shipping       int64                `json:"shipping"`
	Tax            int64                `json:"tax"`
	Total          int64                `json:"total"`
	Currency       string               `json:"currency"`
	ShippingMethod enums.ShippingMethod `json:"shipping_method"`
	PaymentMethod  enums.PaymentMethod  `json:"payment_method"`
	Status         enums.OrderStatus    `json:"status"`
	PaymentStatus  enums.PaymentStatus  `json:"payment_status"`
	CreatedAt      time.Time            `json:"created_at"`
}

// ItemCount is the number of units across all lines.
func (o Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// ListParams selects one page of a user's orders, newest first.
type ListParams struct {
	Limit  int
	Cursor string
}

type ListResult struct {
	Orders     []Order `json:"orders"`
	NextCursor string  `json:"next_cursor,omitempty"`
}

// FromModel maps a persisted order to its API representation.
func FromModel(m models.Order) Order {
	lines := make([]Line, 0, len(m.Lines))
	for _, l := range m.Lines {
		lines = append(lines, Line(l))
	}
	return Order{
		ID:             m.ID.String(),
		UserID:         m.UserID.String(),
		Lines:          lines,
		Address:        Address(m.Address),
		Subtotal:       m.Subtotal,
		Shipping:       m.Shipping,
		Tax:            m.Tax,
		Total:          m.Total,
		Currency:       m.Currency,
		ShippingMethod: m.ShippingMethod,
		PaymentMethod:  m.PaymentMethod,
		Status:         m.Status,
		PaymentStatus:  m.PaymentStatus,
		CreatedAt:      m.CreatedAt,
	}
}
