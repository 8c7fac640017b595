package invoice

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one invoice row, all fields pre-formatted.
type LineItem struct {
	Name      string
	Qty       string
	Price     string
	LineTotal string
}

// Invoice is everything the renderers need: an order snapshot, totals and
// display metadata. Totals may arrive as decimals or as pre-formatted
// strings; the strings take precedence when present.
type Invoice struct {
	OrderID   uint
	CreatedAt time.Time

	BillTo []string
	ShipTo []string
	Items  []LineItem

	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal

	SubtotalStr string
	ShippingStr string
	TaxStr      string
	TotalStr    string

	TaxRatePct   string
	CompanyName  string
	CompanyEmail string
	LogoB64      string
}

func amount(formatted string, value decimal.Decimal) string {
	if formatted != "" {
		return formatted
	}
	return value.StringFixed(2)
}

func (inv *Invoice) SubtotalDisplay() string { return amount(inv.SubtotalStr, inv.Subtotal) }
func (inv *Invoice) ShippingDisplay() string { return amount(inv.ShippingStr, inv.Shipping) }
func (inv *Invoice) TaxDisplay() string      { return amount(inv.TaxStr, inv.Tax) }
func (inv *Invoice) TotalDisplay() string    { return amount(inv.TotalStr, inv.Total) }

func (inv *Invoice) TaxLabel() string {
	if inv.TaxRatePct != "" {
		return fmt.Sprintf("Tax (%s%%)", inv.TaxRatePct)
	}
	return "Tax"
}

// Engine renders an invoice to PDF bytes.
type Engine interface {
	Name() string
	Render(ctx context.Context, inv *Invoice) ([]byte, error)
}

func defaultEngines() []Engine {
	return []Engine{wkhtmltopdfEngine{}, chromeEngine{}, vectorEngine{}}
}

// Generate tries each engine in order and returns the first non-empty
// output. Intermediate failures are logged and swallowed; only the last
// engine's failure is fatal.
func Generate(ctx context.Context, inv *Invoice) ([]byte, error) {
	return generate(ctx, inv, defaultEngines()...)
}

func generate(ctx context.Context, inv *Invoice, engines ...Engine) ([]byte, error) {
	var lastErr error
	for _, engine := range engines {
		data, err := engine.Render(ctx, inv)
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if err == nil {
			err = fmt.Errorf("%s returned an empty document", engine.Name())
		}
		lastErr = err
		log.Printf("Invoice engine %s failed for order %d: %v", engine.Name(), inv.OrderID, err)
	}
	return nil, fmt.Errorf("all invoice engines failed: %w", lastErr)
}
