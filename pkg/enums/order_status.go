package enums

// OrderStatus tracks fulfilment of a placed order.
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderStatuses = values[OrderStatus]{"order status", []OrderStatus{
	OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled,
}}

func (o OrderStatus) String() string { return string(o) }
func (o OrderStatus) IsValid() bool  { return orderStatuses.has(o) }

// IsOpen reports whether the order can still change.
func (o OrderStatus) IsOpen() bool {
	return o == OrderStatusProcessing || o == OrderStatusShipped
}

func ParseOrderStatus(value string) (OrderStatus, error) { return orderStatuses.parse(value) }
