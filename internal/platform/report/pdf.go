package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// Page geometry in millimetres. Sections need more headroom than single
// field lines because the header plus at least one field must fit.
const (
	pageTopMargin    = 15.0
	pageLeftMargin   = 15.0
	pageRightMargin  = 15.0
	lineHeight       = 6.0
	sectionGap       = 4.0
	sectionThreshold = 250.0
	fieldThreshold   = 270.0
)

// RenderPDF replays a Document into a paginated PDF. The generation
// timestamp is a parameter so rendering stays deterministic under test.
func RenderPDF(doc Document, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageLeftMargin, pageTopMargin, pageRightMargin)
	pdf.SetAutoPageBreak(false, 0)

	footer := fmt.Sprintf("Generated %s", generatedAt.Format("2006-01-02 15:04"))
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 6, fmt.Sprintf("Page %d    %s", pdf.PageNo(), footer),
			"", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(2)

	usableWidth, _ := pdf.GetPageSize()
	usableWidth -= pageLeftMargin + pageRightMargin

	for _, sec := range doc.Sections {
		if pdf.GetY() > sectionThreshold {
			pdf.AddPage()
			pdf.SetY(pageTopMargin)
		}
		pdf.Ln(sectionGap)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, lineHeight+1, sec.Title, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		for _, f := range sec.Fields {
			if pdf.GetY() > fieldThreshold {
				pdf.AddPage()
				pdf.SetY(pageTopMargin)
				pdf.SetFont("Helvetica", "", 10)
			}
			// MultiCell wraps the value and advances one line-height per
			// wrapped line.
			pdf.MultiCell(usableWidth, lineHeight, fmt.Sprintf("%s: %s", f.Label, f.Value), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
