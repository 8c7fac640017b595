package invoice

import (
	"testing"

	"github.com/aiaero/shopsite-api/models"
	"github.com/aiaero/shopsite-api/orders"
	"github.com/shopspring/decimal"
)

func buildDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestFromOrder_FormatsLineItems(t *testing.T) {
	order := &models.Order{Email: "buyer@example.com"}
	order.ID = 42
	items := []models.OrderItem{
		{Name: "Propeller Set", Price: buildDec(t, "500.00"), Quantity: 2},
		{Name: "Sticker", Price: buildDec(t, "10.005"), Quantity: 1},
	}
	totals := orders.Totals{
		Subtotal: buildDec(t, "1010.01"),
		Shipping: buildDec(t, "100.00"),
		Tax:      buildDec(t, "181.80"),
		Total:    buildDec(t, "1291.81"),
	}

	inv := FromOrder(order, items, totals, "18")

	if inv.OrderID != 42 {
		t.Errorf("Expected order id 42, got %d", inv.OrderID)
	}
	if len(inv.Items) != 2 {
		t.Fatalf("Expected 2 line items, got %d", len(inv.Items))
	}
	if inv.Items[0].LineTotal != "1000.00" {
		t.Errorf("Expected line total 1000.00, got %s", inv.Items[0].LineTotal)
	}
	if inv.Items[1].LineTotal != "10.01" {
		t.Errorf("Expected rounded line total 10.01, got %s", inv.Items[1].LineTotal)
	}
	if inv.TotalStr != "1291.81" {
		t.Errorf("Expected total string 1291.81, got %s", inv.TotalStr)
	}
	if inv.TaxRatePct != "18" {
		t.Errorf("Expected tax rate 18, got %s", inv.TaxRatePct)
	}
}

func TestFromOrder_MalformedQuantityCountsAsOne(t *testing.T) {
	order := &models.Order{Email: "buyer@example.com"}
	items := []models.OrderItem{
		{Name: "Sticker", Price: buildDec(t, "10.00"), Quantity: 0},
	}

	inv := FromOrder(order, items, orders.Totals{}, "")
	if inv.Items[0].Qty != "1" {
		t.Errorf("Expected quantity floored at 1, got %s", inv.Items[0].Qty)
	}
	if inv.Items[0].LineTotal != "10.00" {
		t.Errorf("Expected line total 10.00, got %s", inv.Items[0].LineTotal)
	}
}

func TestBuildAddressLines_FullAddress(t *testing.T) {
	order := &models.Order{
		Email: "buyer@example.com",
		Address: &models.Address{
			FullName: "Test Buyer",
			Line1:    "12 MG Road",
			Line2:    "Indiranagar",
			City:     "Bengaluru",
			State:    "Karnataka",
			Pincode:  "560001",
			Country:  "India",
		},
	}

	lines := buildAddressLines(order)
	want := []string{
		"Test Buyer",
		"12 MG Road, Indiranagar",
		"Bengaluru Karnataka 560001",
		"India",
		"buyer@example.com",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestBuildAddressLines_MissingAddressFallsBackToEmail(t *testing.T) {
	order := &models.Order{Email: "buyer@example.com"}

	lines := buildAddressLines(order)
	if len(lines) != 1 || lines[0] != "buyer@example.com" {
		t.Errorf("Expected email-only fallback, got %v", lines)
	}
}
