// Package checkout drives the information, shipping and payment steps and
// submits the cart as an order.
package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/angelmondragon/storefront/internal/cart"
	"github.com/angelmondragon/storefront/internal/orders"
	"github.com/angelmondragon/storefront/internal/pricing"
	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// OrderPlacer submits orders to the remote collaborator.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req orders.PlaceRequest) (orders.Order, error)
}

type cartStore interface {
	Items() []cart.Item
	TotalPrice() int64
	Clear(ctx context.Context) error
}

// Shipping is the shipping step form.
type Shipping struct {
	Method enums.ShippingMethod `json:"method" validate:"required,oneof=standard express"`
}

// Payment is the payment step form. Card fields are only checked for card
// payments and never leave the client.
type Payment struct {
	Method     enums.PaymentMethod `json:"method" validate:"required,oneof=credit-card paypal cod"`
	CardName   string              `json:"card_name" validate:"required_if=Method credit-card"`
	CardNumber string              `json:"card_number" validate:"required_if=Method credit-card"`
	Expiry     string              `json:"expiry" validate:"required_if=Method credit-card"`
	CVC        string              `json:"cvc" validate:"required_if=Method credit-card"`
}

type WizardParams struct {
	Cart   cartStore
	Placer OrderPlacer
	Rules  pricing.Rules
	Logger *logger.Logger
}

// Wizard holds the in-progress checkout. It is not persisted.
type Wizard struct {
	mu       sync.Mutex
	step     enums.CheckoutStep
	info     orders.Address
	shipping Shipping
	payment  Payment
	placed   *orders.Order

	cart   cartStore
	placer OrderPlacer
	rules  pricing.Rules
	logg   *logger.Logger
}

func NewWizard(params WizardParams) (*Wizard, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is required")
	}
	if params.Placer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order placer is required")
	}
	w := &Wizard{
		step:     enums.CheckoutStepInformation,
		shipping: Shipping{Method: enums.ShippingMethodStandard},
		payment:  Payment{Method: enums.PaymentMethodCreditCard},
		cart:     params.Cart,
		placer:   params.Placer,
		rules:    params.Rules,
		logg:     params.Logger,
	}
	if w.logg == nil {
		w.logg = logger.Nop()
	}
	return w, nil
}

func (w *Wizard) Step() enums.CheckoutStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Placed is the order submitted by this wizard, or nil.
func (w *Wizard) Placed() *orders.Order {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.placed
}

func (w *Wizard) SetInformation(info orders.Address) {
	info.Email = strings.TrimSpace(info.Email)
	w.mu.Lock()
	defer w.mu.Unlock()
	w.info = info
}

func (w *Wizard) SetShipping(method enums.ShippingMethod) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.shipping = Shipping{Method: method}
}

func (w *Wizard) SetPayment(p Payment) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.payment = p
}

// Quote prices the current cart with the selected shipping method.
func (w *Wizard) Quote() pricing.Totals {
	w.mu.Lock()
	method := w.shipping.Method
	w.mu.Unlock()
	if !method.IsValid() {
		method = enums.ShippingMethodStandard
	}
	return pricing.Quote(w.cart.TotalPrice(), method, w.rules)
}

// Next validates the current step and advances. On the payment step it
// places the order.
func (w *Wizard) Next(ctx context.Context) error {
	w.mu.Lock()
	step := w.step
	var err error
	switch step {
	case enums.CheckoutStepInformation:
		err = validateStep("information", w.info)
	case enums.CheckoutStepShipping:
		err = validateStep("shipping", w.shipping)
	case enums.CheckoutStepComplete:
		err = pkgerrors.New(pkgerrors.CodeValidation, "checkout is already complete")
	}
	if err == nil && step != enums.CheckoutStepPayment {
		w.step = step.Next()
	}
	w.mu.Unlock()

	if err != nil {
		return err
	}
	if step == enums.CheckoutStepPayment {
		_, err = w.Place(ctx)
	}
	return err
}

// Back returns to the previous step. It is a no-op on the first step and
// once the order is placed.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step == enums.CheckoutStepComplete {
		return
	}
	w.step = w.step.Previous()
}

// Place submits the cart. The cart is cleared only after the remote accepts
// the order; on any failure it is left untouched.
func (w *Wizard) Place(ctx context.Context) (orders.Order, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == enums.CheckoutStepComplete && w.placed != nil {
		return *w.placed, nil
	}
	items := w.cart.Items()
	if len(items) == 0 {
		return orders.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := w.validateAll(); err != nil {
		return orders.Order{}, err
	}

	req := buildRequest(items, w.info, w.shipping.Method, w.payment.Method, w.rules)
	order, err := w.placer.PlaceOrder(ctx, req)
	if err != nil {
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
		}
		w.logg.Warn(w.logg.WithField(ctx, "error", err.Error()), "checkout.place_failed")
		return orders.Order{}, err
	}

	w.placed = &order
	w.step = enums.CheckoutStepComplete
	if err := w.cart.Clear(ctx); err != nil {
		w.logg.Error(w.logg.WithField(ctx, "order_id", order.ID), "checkout.cart_clear_failed", err)
	}
	w.logg.Info(w.logg.WithFields(ctx, map[string]any{"order_id": order.ID, "total": order.Total}), "checkout.order_placed")
	return order, nil
}

func (w *Wizard) validateAll() error {
	if err := validateStep("information", w.info); err != nil {
		return err
	}
	if err := validateStep("shipping", w.shipping); err != nil {
		return err
	}
	return validateStep("payment", w.payment)
}

func buildRequest(items []cart.Item, info orders.Address, shipping enums.ShippingMethod, payment enums.PaymentMethod, rules pricing.Rules) orders.PlaceRequest {
	lines := make([]orders.LineInput, 0, len(items))
	var subtotal int64
	for _, item := range items {
		lines = append(lines, orders.LineInput{
			ProductID: item.ProductID,
			Size:      item.Size,
			Color:     item.Color,
			Quantity:  item.Quantity,
		})
		subtotal += item.LineTotal()
	}
	quote := pricing.Quote(subtotal, shipping, rules)
	return orders.PlaceRequest{
		Lines:          lines,
		Address:        info,
		ShippingMethod: shipping,
		PaymentMethod:  payment,
		Expected:       &quote,
	}
}
