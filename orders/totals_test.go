package orders

import (
	"testing"

	"github.com/aiaero/shopsite-api/models"
	"github.com/shopspring/decimal"
)

func testPolicy() Policy {
	tax, _ := decimal.NewFromString("18.00")
	freeOver, _ := decimal.NewFromString("9999.00")
	flat, _ := decimal.NewFromString("100.00")
	return Policy{TaxRatePct: tax, FreeShippingOver: freeOver, ShippingFlat: flat}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestCalculate_SingleLine(t *testing.T) {
	totals := testPolicy().Calculate([]Line{
		{Price: dec(t, "500.00"), Qty: 2},
	})

	if totals.ItemsCount != 2 {
		t.Errorf("Expected items count 2, got %d", totals.ItemsCount)
	}
	if got := totals.Subtotal.StringFixed(2); got != "1000.00" {
		t.Errorf("Expected subtotal 1000.00, got %s", got)
	}
	if got := totals.Shipping.StringFixed(2); got != "100.00" {
		t.Errorf("Expected shipping 100.00, got %s", got)
	}
	if got := totals.Tax.StringFixed(2); got != "180.00" {
		t.Errorf("Expected tax 180.00, got %s", got)
	}
	if got := totals.Total.StringFixed(2); got != "1280.00" {
		t.Errorf("Expected total 1280.00, got %s", got)
	}
}

func TestCalculate_FreeShippingAtThreshold(t *testing.T) {
	totals := testPolicy().Calculate([]Line{
		{Price: dec(t, "9999.00"), Qty: 1},
	})

	if got := totals.Shipping.StringFixed(2); got != "0.00" {
		t.Errorf("Expected free shipping at threshold, got %s", got)
	}
	if got := totals.Tax.StringFixed(2); got != "1799.82" {
		t.Errorf("Expected tax 1799.82, got %s", got)
	}
	if got := totals.Total.StringFixed(2); got != "11798.82" {
		t.Errorf("Expected total 11798.82, got %s", got)
	}
}

func TestCalculate_FlatFeeOneCentBelowThreshold(t *testing.T) {
	totals := testPolicy().Calculate([]Line{
		{Price: dec(t, "9998.99"), Qty: 1},
	})

	if got := totals.Shipping.StringFixed(2); got != "100.00" {
		t.Errorf("Expected flat shipping below threshold, got %s", got)
	}
}

func TestCalculate_EmptyCartPaysNoShipping(t *testing.T) {
	totals := testPolicy().Calculate(nil)

	if got := totals.Subtotal.StringFixed(2); got != "0.00" {
		t.Errorf("Expected zero subtotal, got %s", got)
	}
	// Zero subtotal never clears the free-shipping bar; the flat fee applies.
	if got := totals.Shipping.StringFixed(2); got != "100.00" {
		t.Errorf("Expected flat fee on zero subtotal, got %s", got)
	}
	if totals.ItemsCount != 0 {
		t.Errorf("Expected items count 0, got %d", totals.ItemsCount)
	}
}

func TestCalculate_RoundsHalfUp(t *testing.T) {
	// 10.005 -> 10.01 subtotal; 18% tax -> 1.80.
	totals := testPolicy().Calculate([]Line{
		{Price: dec(t, "10.005"), Qty: 1},
	})

	if got := totals.Subtotal.StringFixed(2); got != "10.01" {
		t.Errorf("Expected subtotal 10.01, got %s", got)
	}
	if got := totals.Tax.StringFixed(2); got != "1.80" {
		t.Errorf("Expected tax 1.80, got %s", got)
	}
}

func TestCalculate_MalformedQuantityCountsAsOne(t *testing.T) {
	totals := testPolicy().Calculate([]Line{
		{Price: dec(t, "50.00"), Qty: 0},
		{Price: dec(t, "50.00"), Qty: -3},
	})

	if totals.ItemsCount != 2 {
		t.Errorf("Expected items count 2, got %d", totals.ItemsCount)
	}
	if got := totals.Subtotal.StringFixed(2); got != "100.00" {
		t.Errorf("Expected subtotal 100.00, got %s", got)
	}
}

func TestCalculateFromItems_MatchesCalculate(t *testing.T) {
	policy := testPolicy()

	cases := [][]Line{
		{{Price: dec(t, "500.00"), Qty: 2}},
		{{Price: dec(t, "9999.00"), Qty: 1}},
		{{Price: dec(t, "0.01"), Qty: 3}, {Price: dec(t, "1234.56"), Qty: 7}},
		{{Price: dec(t, "10.005"), Qty: 1}, {Price: dec(t, "0.00"), Qty: 5}},
	}

	for i, lines := range cases {
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, models.OrderItem{Price: line.Price, Quantity: line.Qty})
		}

		fromCart := policy.Calculate(lines)
		fromItems := policy.CalculateFromItems(items)

		if !fromCart.Subtotal.Equal(fromItems.Subtotal) ||
			!fromCart.Shipping.Equal(fromItems.Shipping) ||
			!fromCart.Tax.Equal(fromItems.Tax) ||
			!fromCart.Total.Equal(fromItems.Total) ||
			fromCart.ItemsCount != fromItems.ItemsCount {
			t.Errorf("Case %d: cart path %+v diverges from items path %+v", i, fromCart, fromItems)
		}
	}
}

func TestTotalsForOrder_PrefersStoredTotals(t *testing.T) {
	policy := testPolicy()
	order := &models.Order{
		Subtotal: dec(t, "1000.00"),
		Shipping: dec(t, "100.00"),
		Tax:      dec(t, "180.00"),
		Total:    dec(t, "1280.00"),
	}
	// Item reflects a later price drift; stored totals must win.
	items := []models.OrderItem{{Price: dec(t, "999.00"), Quantity: 2}}

	totals := policy.TotalsForOrder(order, items)
	if got := totals.Total.StringFixed(2); got != "1280.00" {
		t.Errorf("Expected stored total 1280.00, got %s", got)
	}
}

func TestTotalsForOrder_RecomputesLegacyOrders(t *testing.T) {
	policy := testPolicy()
	order := &models.Order{}
	items := []models.OrderItem{{Price: dec(t, "500.00"), Quantity: 2}}

	totals := policy.TotalsForOrder(order, items)
	if got := totals.Total.StringFixed(2); got != "1280.00" {
		t.Errorf("Expected recomputed total 1280.00, got %s", got)
	}
}

func TestRound2_HalfUp(t *testing.T) {
	cases := map[string]string{
		"10.005": "10.01",
		"10.004": "10.00",
		"1.80":   "1.80",
		"0.125":  "0.13",
	}
	for in, want := range cases {
		if got := Round2(dec(t, in)).StringFixed(2); got != want {
			t.Errorf("Round2(%s): expected %s, got %s", in, want, got)
		}
	}
}
