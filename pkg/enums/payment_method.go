package enums

// PaymentMethod is how the shopper intends to pay.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit-card"
	PaymentMethodPayPal     PaymentMethod = "paypal"
	PaymentMethodCOD        PaymentMethod = "cod"
)

var paymentMethods = values[PaymentMethod]{"payment method", []PaymentMethod{
	PaymentMethodCreditCard, PaymentMethodPayPal, PaymentMethodCOD,
}}

func (p PaymentMethod) String() string { return string(p) }
func (p PaymentMethod) IsValid() bool  { return paymentMethods.has(p) }

// Label is the checkout display name.
func (p PaymentMethod) Label() string {
	switch p {
	case PaymentMethodCreditCard:
		return "Credit card"
	case PaymentMethodPayPal:
		return "PayPal"
	case PaymentMethodCOD:
		return "Cash on delivery"
	}
	return string(p)
}

func ParsePaymentMethod(value string) (PaymentMethod, error) { return paymentMethods.parse(value) }
