package invoice

import (
	"context"
	"strings"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// wkhtmltopdfEngine shells out to the wkhtmltopdf binary; full CSS fidelity
// when the binary is installed.
type wkhtmltopdfEngine struct{}

func (wkhtmltopdfEngine) Name() string { return "wkhtmltopdf" }

func (wkhtmltopdfEngine) Render(ctx context.Context, inv *Invoice) ([]byte, error) {
	html, err := buildHTML(inv)
	if err != nil {
		return nil, err
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, err
	}
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.EnableLocalFileAccess.Set(false)
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, err
	}
	return pdfg.Bytes(), nil
}
