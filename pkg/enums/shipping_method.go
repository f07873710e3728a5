package enums

// ShippingMethod is the delivery speed chosen at checkout.
type ShippingMethod string

const (
	ShippingMethodStandard ShippingMethod = "standard"
	ShippingMethodExpress  ShippingMethod = "express"
)

var shippingMethods = values[ShippingMethod]{"shipping method", []ShippingMethod{
	ShippingMethodStandard, ShippingMethodExpress,
}}

func (s ShippingMethod) String() string { return string(s) }
func (s ShippingMethod) IsValid() bool  { return shippingMethods.has(s) }

// Label is the checkout display name with the delivery window.
func (s ShippingMethod) Label() string {
	switch s {
	case ShippingMethodStandard:
		return "Standard (5-7 business days)"
	case ShippingMethodExpress:
		return "Express (2-3 business days)"
	}
	return string(s)
}

func ParseShippingMethod(value string) (ShippingMethod, error) { return shippingMethods.parse(value) }
