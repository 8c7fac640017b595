package invoice

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// vectorEngine draws the invoice directly with gofpdf. No HTML dependency;
// it is the last resort and must succeed for well-formed input.
type vectorEngine struct{}

func (vectorEngine) Name() string { return "vector" }

const (
	pageW   = 210.0
	pageH   = 297.0
	xMargin = 20.0
	gutter  = 8.0
	topY    = 25.0
	bottomY = pageH - 30.0

	lineH     = 4.2
	itemLineH = 4.2
)

func (vectorEngine) Render(ctx context.Context, inv *Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := topY

	// Header: logo left, title block right.
	drawLogo(pdf, inv.LogoB64, xMargin, y)

	pdf.SetFont("Helvetica", "B", 16)
	textRight(pdf, pageW-xMargin, y, "Invoice")

	pdf.SetFont("Helvetica", "", 9)
	textRight(pdf, pageW-xMargin, y+6, fmt.Sprintf("Order #%d", inv.OrderID))
	if !inv.CreatedAt.IsZero() {
		textRight(pdf, pageW-xMargin, y+10, "Placed on "+inv.CreatedAt.Format("Jan 02, 2006, 03:04 PM"))
	}
	y += 18

	// Company block.
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(xMargin, y, inv.CompanyName)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Text(xMargin, y+5, inv.CompanyEmail)
	y += 12

	// Bill To / Ship To boxes side by side.
	boxW := (pageW - 2*xMargin - gutter) / 2
	leftUsed := drawAddressBox(pdf, "Bill To", xMargin, y, boxW, inv.BillTo)
	rightUsed := drawAddressBox(pdf, "Ship To", xMargin+boxW+gutter, y, boxW, inv.ShipTo)
	if rightUsed > leftUsed {
		leftUsed = rightUsed
	}
	y += leftUsed + 8

	// Item table header.
	col1 := xMargin
	col2 := pageW - 65
	col3 := pageW - 40
	col4 := pageW - xMargin

	pdf.SetFont("Helvetica", "B", 9)
	pdf.Text(col1, y, "Product")
	textRight(pdf, col2, y, "Qty")
	textRight(pdf, col3, y, "Price")
	textRight(pdf, col4, y, "Line Total")
	y += 4
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(xMargin, y, pageW-xMargin, y)
	y += 5

	// Item rows, wrapped product names, thin dividers.
	pdf.SetFont("Helvetica", "", 9)
	for _, item := range inv.Items {
		nameLines := wrapText(pdf, item.Name, col2-col1-2)
		for idx, nameLine := range nameLines {
			pdf.Text(col1, y, nameLine)
			if idx == 0 {
				textRight(pdf, col2, y, item.Qty)
				textRight(pdf, col3, y, "Rs. "+item.Price)
				textRight(pdf, col4, y, "Rs. "+item.LineTotal)
			}
			y += itemLineH
			if y > bottomY {
				pdf.AddPage()
				y = topY
				pdf.SetFont("Helvetica", "", 9)
			}
		}
		pdf.SetDrawColor(225, 225, 225)
		pdf.Line(xMargin, y-3, pageW-xMargin, y-3)
		y += 1
	}

	// Totals block.
	y += 4
	if y+30 > bottomY {
		pdf.AddPage()
		y = topY
	}
	pdf.SetDrawColor(120, 120, 120)
	pdf.Line(xMargin, y, pageW-xMargin, y)
	y += 8

	totalsRow := func(label, value string, bold bool) {
		style, size := "", 9.0
		if bold {
			style, size = "B", 10.0
		}
		pdf.SetFont("Helvetica", style, size)
		textRight(pdf, col3, y, label)
		textRight(pdf, col4, y, "Rs. "+value)
		y += 6
	}

	totalsRow("Subtotal", inv.SubtotalDisplay(), false)
	totalsRow("Shipping", inv.ShippingDisplay(), false)
	totalsRow(inv.TaxLabel(), inv.TaxDisplay(), false)
	totalsRow("Grand Total", inv.TotalDisplay(), true)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("vector rendering failed: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLogo places the optional base64 PNG logo; anything malformed is skipped.
func drawLogo(pdf *gofpdf.Fpdf, logoB64 string, x, y float64) {
	if logoB64 == "" {
		return
	}
	raw, err := base64.StdEncoding.DecodeString(logoB64)
	if err != nil {
		return
	}
	if _, err := png.DecodeConfig(bytes.NewReader(raw)); err != nil {
		return
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("company-logo", opts, bytes.NewReader(raw))
	pdf.ImageOptions("company-logo", x, y-8, 32, 12, false, opts, 0, "")
}

func textRight(pdf *gofpdf.Fpdf, x, y float64, s string) {
	pdf.Text(x-pdf.GetStringWidth(s), y, s)
}

// wrapText breaks text into lines no wider than maxW, measured with the
// currently selected font.
func wrapText(pdf *gofpdf.Fpdf, text string, maxW float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	lines := []string{}
	current := words[0]
	for _, word := range words[1:] {
		trial := current + " " + word
		if pdf.GetStringWidth(trial) <= maxW {
			current = trial
		} else {
			lines = append(lines, current)
			current = word
		}
	}
	return append(lines, current)
}

// drawAddressBox renders a bordered, titled box with word-wrapped content and
// returns the height it used.
func drawAddressBox(pdf *gofpdf.Fpdf, title string, x, y, boxW float64, lines []string) float64 {
	const padding = 4.0
	const titleH = 5.0

	pdf.SetFont("Helvetica", "", 9)
	var wrapped []string
	for _, line := range lines {
		wrapped = append(wrapped, wrapText(pdf, line, boxW-2*padding)...)
	}

	boxH := padding + titleH + 2 + float64(len(wrapped))*lineH + padding

	pdf.SetDrawColor(215, 215, 215)
	pdf.Rect(x, y, boxW, boxH, "D")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(x+padding, y+padding+2, title)

	pdf.SetFont("Helvetica", "", 9)
	cursor := y + padding + titleH + 4
	for _, line := range wrapped {
		pdf.Text(x+padding, cursor, line)
		cursor += lineH
	}
	return boxH
}
