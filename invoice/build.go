package invoice

import (
	"encoding/base64"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/aiaero/shopsite-api/models"
	"github.com/aiaero/shopsite-api/orders"
	"github.com/shopspring/decimal"
)

// FromOrder assembles the renderer input from a persisted order. All line
// item values come out pre-formatted.
func FromOrder(order *models.Order, items []models.OrderItem, totals orders.Totals, taxRatePct string) *Invoice {
	lineItems := make([]LineItem, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lineTotal := orders.Round2(item.Price.Mul(decimal.NewFromInt(int64(qty))))
		lineItems = append(lineItems, LineItem{
			Name:      item.Name,
			Qty:       strconv.Itoa(qty),
			Price:     item.Price.StringFixed(2),
			LineTotal: lineTotal.StringFixed(2),
		})
	}

	addressLines := buildAddressLines(order)

	return &Invoice{
		OrderID:      order.ID,
		CreatedAt:    order.CreatedAt,
		BillTo:       addressLines,
		ShipTo:       addressLines,
		Items:        lineItems,
		Subtotal:     totals.Subtotal,
		Shipping:     totals.Shipping,
		Tax:          totals.Tax,
		Total:        totals.Total,
		SubtotalStr:  totals.Subtotal.StringFixed(2),
		ShippingStr:  totals.Shipping.StringFixed(2),
		TaxStr:       totals.Tax.StringFixed(2),
		TotalStr:     totals.Total.StringFixed(2),
		TaxRatePct:   taxRatePct,
		CompanyName:  envOr("COMPANY_NAME", "Ai-Aero India Pvt Ltd"),
		CompanyEmail: envOr("COMPANY_EMAIL", "info@aiaeroindia.com"),
		LogoB64:      readLogoB64(os.Getenv("INVOICE_LOGO_PATH")),
	}
}

func buildAddressLines(order *models.Order) []string {
	addr := order.Address
	if addr == nil {
		return []string{order.Email}
	}

	cityLine := strings.TrimSpace(strings.Join(nonEmpty(addr.City, addr.State, addr.Pincode), " "))
	street := addr.Line1
	if addr.Line2 != "" {
		street += ", " + addr.Line2
	}

	lines := []string{addr.FullName, street, cityLine, addr.Country}
	if email := firstNonEmpty(order.Email, addr.Email); email != "" {
		lines = append(lines, email)
	}
	return lines
}

func readLogoB64(path string) string {
	if path == "" {
		return ""
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Println("Failed to read invoice logo:", err)
		return ""
	}
	return base64.StdEncoding.EncodeToString(raw)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
