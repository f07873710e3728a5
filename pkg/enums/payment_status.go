package enums

// PaymentStatus tracks settlement of an order's payment. Card and PayPal
// orders settle out of band, so every order starts pending.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

var paymentStatuses = values[PaymentStatus]{"payment status", []PaymentStatus{
	PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed,
}}

func (p PaymentStatus) String() string { return string(p) }
func (p PaymentStatus) IsValid() bool  { return paymentStatuses.has(p) }

func ParsePaymentStatus(value string) (PaymentStatus, error) { return paymentStatuses.parse(value) }
