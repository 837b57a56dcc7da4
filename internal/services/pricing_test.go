package services_test

import (
	"testing"

	"vrukshavalli/internal/services"
)

func TestQuoteShippingBoundary(t *testing.T) {
	c := services.DefaultCalculator()

	q := c.Quote(1000)
	if q.Shipping != 100 {
		t.Fatalf("subtotal 1000 should still pay shipping, got %d", q.Shipping)
	}

	q = c.Quote(1001)
	if q.Shipping != 0 {
		t.Fatalf("subtotal 1001 should ship free, got %d", q.Shipping)
	}
}

func TestQuoteTaxRounding(t *testing.T) {
	c := services.DefaultCalculator()

	q := c.Quote(500)
	if q.Tax != 90 {
		t.Fatalf("tax on 500 = %d, want 90", q.Tax)
	}
	if q.Total != 500+100+90 {
		t.Fatalf("total = %d, want 690", q.Total)
	}
}

func TestQuoteCheckoutScenario(t *testing.T) {
	// Two Monsteras at 899 plus one Snake Plant at 599.
	c := services.DefaultCalculator()
	q := c.Quote(2397)

	if q.Subtotal != 2397 {
		t.Fatalf("subtotal = %d, want 2397", q.Subtotal)
	}
	if q.Shipping != 0 {
		t.Fatalf("shipping = %d, want 0", q.Shipping)
	}
	if q.Tax != 431 {
		t.Fatalf("tax = %d, want 431", q.Tax)
	}
	if q.Total != 2828 {
		t.Fatalf("total = %d, want 2828", q.Total)
	}
}

func TestQuoteZeroSubtotal(t *testing.T) {
	c := services.DefaultCalculator()
	q := c.Quote(0)
	if q.Shipping != 100 || q.Tax != 0 || q.Total != 100 {
		t.Fatalf("empty quote = %+v", q)
	}
}
