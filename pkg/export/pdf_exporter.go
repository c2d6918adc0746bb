package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and one table per
// sheet, each preceded by the sheet name. Used for printable room-wise
// seating charts posted outside exam halls.
func (e *PDFExporter) Render(sheets []Sheet, title string) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("pdf requires at least one sheet")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	for _, sheet := range sheets {
		if len(sheet.Headers) == 0 {
			return nil, fmt.Errorf("pdf sheet %q requires at least one header", sheet.Name)
		}

		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 9, sheet.Name, "", 1, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 10)
		colWidth := 190.0 / float64(len(sheet.Headers))
		for _, header := range sheet.Headers {
			pdf.CellFormat(colWidth, 8, header, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range sheet.Rows {
			for _, header := range sheet.Headers {
				pdf.CellFormat(colWidth, 7, row[header], "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
