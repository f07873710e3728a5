package enums

import "slices"

// CheckoutStep is a stage of the checkout wizard.
type CheckoutStep string

const (
	CheckoutStepInformation CheckoutStep = "information"
	CheckoutStepShipping    CheckoutStep = "shipping"
	CheckoutStepPayment     CheckoutStep = "payment"
	CheckoutStepComplete    CheckoutStep = "complete"
)

// checkoutSteps is ordered; Next and Previous walk it.
var checkoutSteps = values[CheckoutStep]{"checkout step", []CheckoutStep{
	CheckoutStepInformation, CheckoutStepShipping, CheckoutStepPayment, CheckoutStepComplete,
}}

func (c CheckoutStep) String() string { return string(c) }

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	return c.index() >= 0
}

// Next returns the following step; complete is terminal.
func (c CheckoutStep) Next() CheckoutStep {
	idx := c.index()
	if idx < 0 || idx == len(checkoutSteps.all)-1 {
		return c
	}
	return checkoutSteps.all[idx+1]
}

// Previous returns the preceding step; information and complete do not move.
func (c CheckoutStep) Previous() CheckoutStep {
	idx := c.index()
	if idx <= 0 || c == CheckoutStepComplete {
		return c
	}
	return checkoutSteps.all[idx-1]
}

func (c CheckoutStep) index() int { return slices.Index(checkoutSteps.all, c) }

func ParseCheckoutStep(value string) (CheckoutStep, error) { return checkoutSteps.parse(value) }
