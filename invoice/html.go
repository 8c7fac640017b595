package invoice

import (
	"bytes"
	"html/template"
)

var invoiceTmpl = template.Must(template.New("invoice").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 12px; color: #222; margin: 24px; }
  .header { overflow: hidden; margin-bottom: 18px; }
  .header img { height: 48px; float: left; }
  .header .title { float: right; text-align: right; }
  .header h1 { margin: 0; font-size: 22px; }
  .company { margin-bottom: 18px; }
  .company .name { font-weight: bold; }
  .addresses { width: 100%; margin-bottom: 18px; }
  .addresses td { width: 50%; border: 1px solid #ddd; padding: 8px; vertical-align: top; }
  .addresses .box-title { font-weight: bold; margin-bottom: 4px; }
  table.items { width: 100%; border-collapse: collapse; }
  table.items th { text-align: right; border-bottom: 1px solid #999; padding: 4px; }
  table.items th:first-child, table.items td:first-child { text-align: left; }
  table.items td { text-align: right; border-bottom: 1px solid #eee; padding: 4px; }
  table.totals { margin-top: 12px; margin-left: auto; }
  table.totals td { padding: 2px 6px; text-align: right; }
  table.totals .grand td { font-weight: bold; border-top: 1px solid #999; }
</style>
</head>
<body>
  <div class="header">
    {{if .LogoB64}}<img src="data:image/png;base64,{{.LogoB64}}" alt="logo">{{end}}
    <div class="title">
      <h1>Invoice</h1>
      <div>Order #{{.OrderID}}</div>
      <div>Placed on {{.CreatedAt.Format "Jan 02, 2006, 03:04 PM"}}</div>
    </div>
  </div>

  <div class="company">
    <div class="name">{{.CompanyName}}</div>
    <div>{{.CompanyEmail}}</div>
  </div>

  <table class="addresses">
    <tr>
      <td>
        <div class="box-title">Bill To</div>
        {{range .BillTo}}<div>{{.}}</div>{{end}}
      </td>
      <td>
        <div class="box-title">Ship To</div>
        {{range .ShipTo}}<div>{{.}}</div>{{end}}
      </td>
    </tr>
  </table>

  <table class="items">
    <tr><th>Product</th><th>Qty</th><th>Price</th><th>Line Total</th></tr>
    {{range .Items}}
    <tr><td>{{.Name}}</td><td>{{.Qty}}</td><td>Rs. {{.Price}}</td><td>Rs. {{.LineTotal}}</td></tr>
    {{end}}
  </table>

  <table class="totals">
    <tr><td>Subtotal</td><td>Rs. {{.SubtotalDisplay}}</td></tr>
    <tr><td>Shipping</td><td>Rs. {{.ShippingDisplay}}</td></tr>
    <tr><td>{{.TaxLabel}}</td><td>Rs. {{.TaxDisplay}}</td></tr>
    <tr class="grand"><td>Grand Total</td><td>Rs. {{.TotalDisplay}}</td></tr>
  </table>
</body>
</html>
`))

func buildHTML(inv *Invoice) (string, error) {
	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, inv); err != nil {
		return "", err
	}
	return buf.String(), nil
}
