package enums

import "testing"

func TestParseSortKey(t *testing.T) {
	cases := map[string]SortKey{
		"":               SortFeatured,
		"featured":       SortFeatured,
		"newest":         SortNewest,
		"price-low-high": SortPriceLowHigh,
		"price-high-low": SortPriceHighLow,
		"trending":       SortTrending,
	}
	for raw, want := range cases {
		got, err := ParseSortKey(raw)
		if err != nil {
			t.Fatalf("ParseSortKey(%q) returned error: %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseSortKey(%q) = %s, want %s", raw, got, want)
		}
	}
	if _, err := ParseSortKey("cheapest"); err == nil {
		t.Fatal("expected unknown sort key to fail")
	}
}

func TestCheckoutStepWalk(t *testing.T) {
	step := CheckoutStepInformation
	want := []CheckoutStep{CheckoutStepShipping, CheckoutStepPayment, CheckoutStepComplete, CheckoutStepComplete}
	for _, next := range want {
		step = step.Next()
		if step != next {
			t.Fatalf("expected %s, got %s", next, step)
		}
	}
	if got := CheckoutStepComplete.Previous(); got != CheckoutStepComplete {
		t.Fatalf("complete must not move back, got %s", got)
	}
	if got := CheckoutStepPayment.Previous(); got != CheckoutStepShipping {
		t.Fatalf("expected shipping, got %s", got)
	}
	if got := CheckoutStepInformation.Previous(); got != CheckoutStepInformation {
		t.Fatalf("information is the first step, got %s", got)
	}
	if CheckoutStep("review").IsValid() {
		t.Fatal("unexpected valid step")
	}
}

func TestParseMethods(t *testing.T) {
	if m, err := ParsePaymentMethod("credit-card"); err != nil || m != PaymentMethodCreditCard {
		t.Fatalf("unexpected payment method %q err=%v", m, err)
	}
	if _, err := ParsePaymentMethod("bitcoin"); err == nil {
		t.Fatal("expected invalid payment method")
	}
	if m, err := ParseShippingMethod("express"); err != nil || m != ShippingMethodExpress {
		t.Fatalf("unexpected shipping method %q err=%v", m, err)
	}
	if !StateBackendRedis.IsValid() || StateBackend("s3").IsValid() {
		t.Fatal("unexpected state backend validity")
	}
	if !OrderStatusProcessing.IsValid() || !PaymentStatusPending.IsValid() {
		t.Fatal("expected default order statuses to be valid")
	}
}

func TestLabelsAndSets(t *testing.T) {
	if got := PaymentMethodCOD.Label(); got != "Cash on delivery" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := ShippingMethod("drone").Label(); got != "drone" {
		t.Fatalf("unknown methods should label as themselves, got %q", got)
	}
	if OrderStatusDelivered.IsOpen() || !OrderStatusShipped.IsOpen() {
		t.Fatal("unexpected open states")
	}

	keys := SortKeys()
	keys[0] = "mutated"
	if SortKeys()[0] != SortFeatured {
		t.Fatal("SortKeys must return a copy")
	}
	if _, err := ParseOrderStatus("lost"); err == nil || err.Error() != `invalid order status "lost"` {
		t.Fatalf("unexpected error %v", err)
	}
}
