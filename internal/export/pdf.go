package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfLeftMargin = 18.0
	pdfLineHeight = 6.0
)

// RenderPDF writes the report as an A4 PDF with a page counter and a
// confidentiality notice in the footer.
func RenderPDF(r Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfLeftMargin, 20, pdfLeftMargin)
	pdf.SetAutoPageBreak(true, 25)
	pdf.SetTitle(r.Title, true)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Times", "", 10)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 1, "C", false, 0, "")
		pdf.SetFont("Times", "", 8)
		pdf.CellFormat(0, 4, "CONFIDENTIAL HEALTH INFORMATION", "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Times", "B", 20)
	pdf.SetTextColor(0, 0, 204)
	pdf.CellFormat(0, 10, tr(r.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Times", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, pdfLineHeight, "Generated on: "+r.GeneratedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Times", "B", 14)
	pdf.SetTextColor(77, 77, 153)
	pdf.CellFormat(0, 7, "Profile Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Times", "", 11)
	pdf.SetTextColor(0, 0, 153)
	pdf.MultiCell(0, pdfLineHeight, tr(r.Summary), "", "L", false)
	pdf.Ln(4)

	for _, s := range r.Sections {
		pdf.SetFont("Times", "B", 16)
		pdf.SetFillColor(242, 242, 242)
		pdf.SetDrawColor(204, 204, 204)
		pdf.SetTextColor(0, 0, 179)
		pdf.CellFormat(0, 9, tr(s.Title), "1", 1, "L", true, 0, "")
		pdf.Ln(2)

		for _, row := range s.Rows {
			pdf.SetFont("Times", "B", 11)
			pdf.SetTextColor(77, 77, 77)
			if row.Items != nil {
				pdf.CellFormat(0, pdfLineHeight, tr(row.Label+":"), "", 1, "L", false, 0, "")
				pdf.SetFont("Times", "", 11)
				pdf.SetTextColor(0, 0, 153)
				for _, item := range row.Items {
					pdf.SetX(pdfLeftMargin + 6)
					pdf.MultiCell(0, pdfLineHeight, tr("• "+item), "", "L", false)
				}
				continue
			}
			label := tr(row.Label + ": ")
			pdf.CellFormat(pdf.GetStringWidth(label)+1, pdfLineHeight, label, "", 0, "L", false, 0, "")
			pdf.SetFont("Times", "", 11)
			pdf.SetTextColor(0, 0, 153)
			pdf.MultiCell(0, pdfLineHeight, tr(row.Value), "", "L", false)
		}
		pdf.Ln(5)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
