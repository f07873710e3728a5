package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront/pkg/enums"
)

// OrderLine is a snapshot of one cart line at checkout.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Image     string `json:"image,omitempty"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// ShippingAddress is the information step of checkout as persisted.
type ShippingAddress struct {
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Address    string `json:"address"`
	Apartment  string `json:"apartment,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

// Order is a placed checkout.
type Order struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index:orders_user_created_idx,priority:1"`
	Lines          []OrderLine          `gorm:"column:lines;type:jsonb;serializer:json;not null"`
	Address        ShippingAddress      `gorm:"column:shipping_address;type:jsonb;serializer:json;not null"`
	Subtotal       int64                `gorm:"column:subtotal;not null"`
	Shipping       int64                `gorm:"column:shipping;not null"`
	Tax            int64                `gorm:"column:tax;not null"`
	Total          int64                `gorm:"column:total;not null"`
	Currency       string               `gorm:"column:currency;not null;default:'INR'"`
	ShippingMethod enums.ShippingMethod `gorm:"column:shipping_method;not null"`
	PaymentMethod  enums.PaymentMethod  `gorm:"column:payment_method;not null"`
	Status         enums.OrderStatus    `gorm:"column:status;not null"`
	PaymentStatus  enums.PaymentStatus  `gorm:"column:payment_status;not null"`
	CreatedAt      time.Time            `gorm:"column:created_at;index:orders_user_created_idx,priority:2,sort:desc"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	return nil
}
