// Package pricing computes order totals from a subtotal and the shop's
// shipping and tax rules. All amounts are minor units.
package pricing

import (
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/money"
	"github.com/shopspring/decimal"
)

type Rules struct {
	Currency              string
	FreeShippingThreshold int64
	StandardShipping      int64
	ExpressShipping       int64
	TaxRate               decimal.Decimal
}

// DefaultRules matches the configuration defaults.
func DefaultRules() Rules {
	return Rules{
		Currency:              "INR",
		FreeShippingThreshold: 99900,
		StandardShipping:      9900,
		ExpressShipping:       19900,
		TaxRate:               decimal.RequireFromString("0.18"),
	}
}

func RulesFromConfig(cfg config.CheckoutConfig) Rules {
	return Rules{
		Currency:              cfg.Currency,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		StandardShipping:      cfg.StandardShipping,
		ExpressShipping:       cfg.ExpressShipping,
		TaxRate:               cfg.Tax(),
	}
}

type Totals struct {
	Subtotal int64  `json:"subtotal"`
	Shipping int64  `json:"shipping"`
	Tax      int64  `json:"tax"`
	Total    int64  `json:"total"`
	Currency string `json:"currency"`
}

// Shipping is the flat express rate, or the standard rate unless the subtotal
// is strictly above the free-shipping threshold.
func (r Rules) Shipping(subtotal int64, method enums.ShippingMethod) int64 {
	if method == enums.ShippingMethodExpress {
		return r.ExpressShipping
	}
	if subtotal > r.FreeShippingThreshold {
		return 0
	}
	return r.StandardShipping
}

// Quote prices an order. Tax is charged on the subtotal only.
func Quote(subtotal int64, method enums.ShippingMethod, rules Rules) Totals {
	shipping := rules.Shipping(subtotal, method)
	tax := money.ApplyRate(subtotal, rules.TaxRate)
	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
		Currency: rules.Currency,
	}
}
