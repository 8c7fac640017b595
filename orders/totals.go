package orders

import (
	"os"

	"github.com/aiaero/shopsite-api/models"
	"github.com/shopspring/decimal"
)

// Policy carries the checkout pricing rules. It is built once and passed in
// explicitly so the calculator stays pure.
type Policy struct {
	TaxRatePct       decimal.Decimal
	FreeShippingOver decimal.Decimal
	ShippingFlat     decimal.Decimal
}

const (
	defaultTaxRatePct       = "18.00"
	defaultFreeShippingOver = "9999.00"
	defaultShippingFlat     = "100.00"
)

func PolicyFromEnv() Policy {
	return Policy{
		TaxRatePct:       envDecimal("CHECKOUT_TAX_RATE_PCT", defaultTaxRatePct),
		FreeShippingOver: envDecimal("CART_SHIPPING_FREE_OVER", defaultFreeShippingOver),
		ShippingFlat:     envDecimal("CART_SHIPPING_FLAT", defaultShippingFlat),
	}
}

func envDecimal(key, fallback string) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	}
	d, _ := decimal.NewFromString(fallback)
	return d
}

// Round2 quantizes to two decimal places, rounding half up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Line is one cart row as seen by the calculator.
type Line struct {
	Price decimal.Decimal
	Qty   int
}

type Totals struct {
	ItemsCount int             `json:"itemsCount"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// Calculate derives the order totals from a sequence of (price, qty) lines.
// Shipping and tax are each quantized before being summed into the total so
// the displayed breakdown always adds up to the displayed grand total.
func (p Policy) Calculate(lines []Line) Totals {
	subtotal := decimal.Zero
	itemsCount := 0

	for _, line := range lines {
		qty := line.Qty
		if qty < 1 {
			itemsCount++
			qty = 1
		} else {
			itemsCount += qty
		}
		subtotal = subtotal.Add(line.Price.Mul(decimal.NewFromInt(int64(qty))))
	}

	subtotal = Round2(subtotal)

	shipping := p.ShippingFlat
	if subtotal.IsPositive() && subtotal.GreaterThanOrEqual(p.FreeShippingOver) {
		shipping = decimal.Zero
	}
	shipping = Round2(shipping)

	tax := Round2(subtotal.Mul(p.TaxRatePct).Div(decimal.NewFromInt(100)))

	return Totals{
		ItemsCount: itemsCount,
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		Total:      Round2(subtotal.Add(shipping).Add(tax)),
	}
}

// CalculateFromItems mirrors Calculate for persisted order items, so invoices
// and emails for historical orders never diverge from checkout.
func (p Policy) CalculateFromItems(items []models.OrderItem) Totals {
	lines := make([]Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, Line{Price: item.Price, Qty: item.Quantity})
	}
	return p.Calculate(lines)
}

// TotalsForOrder prefers the totals stored at checkout time; legacy rows that
// never stored them are recomputed from their items.
func (p Policy) TotalsForOrder(order *models.Order, items []models.OrderItem) Totals {
	if order.Total.IsZero() && len(items) > 0 {
		return p.CalculateFromItems(items)
	}

	count := 0
	for _, item := range items {
		if item.Quantity < 1 {
			count++
			continue
		}
		count += item.Quantity
	}
	return Totals{
		ItemsCount: count,
		Subtotal:   order.Subtotal,
		Shipping:   order.Shipping,
		Tax:        order.Tax,
		Total:      order.Total,
	}
}
