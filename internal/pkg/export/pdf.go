package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// RenderPDF renders the report as a PDF document.
// Uses the built-in core fonts with a transliteration fallback since
// they cannot encode Cyrillic.
func RenderPDF(report StudentReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	translate := pdf.UnicodeTranslatorFromDescriptor("cp1251")
	pdf.SetTitle(translate(report.StudentName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, translate(report.StudentName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, translate(fmt.Sprintf("Клас: %d", report.Grade)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, section := range report.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(221, 235, 247)
		pdf.CellFormat(0, 8, translate(section.Title), "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 10)

		for _, kv := range section.Rows {
			pdf.CellFormat(70, 6, translate(kv[0]), "", 0, "L", false, 0, "")
			pdf.MultiCell(0, 6, translate(kv[1]), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
