package invoice

import (
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

func wrapTestPDF() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 9)
	return pdf
}

func TestWrapText_RespectsWidth(t *testing.T) {
	pdf := wrapTestPDF()
	const maxW = 30.0

	text := "Carbon Fiber Quadcopter Frame Kit with Integrated Power Distribution"
	lines := wrapText(pdf, text, maxW)

	if len(lines) < 2 {
		t.Fatalf("Expected the text to wrap, got %d line(s)", len(lines))
	}
	for i, line := range lines {
		// A single over-long word may exceed the limit; multi-word lines must not.
		if strings.Contains(line, " ") && pdf.GetStringWidth(line) > maxW {
			t.Errorf("Line %d too wide: %q", i, line)
		}
	}
	if strings.Join(lines, " ") != text {
		t.Errorf("Wrapping lost words: %v", lines)
	}
}

func TestWrapText_ShortTextStaysOneLine(t *testing.T) {
	pdf := wrapTestPDF()

	lines := wrapText(pdf, "Sticker", 100)
	if len(lines) != 1 || lines[0] != "Sticker" {
		t.Errorf("Expected single line, got %v", lines)
	}
}

func TestWrapText_EmptyInput(t *testing.T) {
	pdf := wrapTestPDF()

	lines := wrapText(pdf, "   ", 100)
	if len(lines) != 1 || lines[0] != "" {
		t.Errorf("Expected a single empty line, got %v", lines)
	}
}
