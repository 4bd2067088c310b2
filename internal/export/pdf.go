package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin    = 10.0
	pdfRowHeight = 7.0
)

// WritePDF renders s as a landscape A4 table with a repeated header row.
func WritePDF(w io.Writer, s Sheet) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	colW := (pageW - 2*pdfMargin) / float64(max(len(s.Columns), 1))

	header := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, c := range s.Columns {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(c.Label), colW), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}
	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			header()
		}
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, tr(s.Title))
	pdf.Ln(10)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s, %d entries", s.GeneratedAt.Format("2006-01-02 15:04"), len(s.Rows)))
	pdf.Ln(8)

	header()
	if len(s.Rows) == 0 {
		pdf.CellFormat(colW*float64(len(s.Columns)), pdfRowHeight, "No data available", "1", 1, "C", false, 0, "")
	}
	for _, row := range s.Rows {
		for _, c := range s.Columns {
			pdf.CellFormat(colW, pdfRowHeight, fit(pdf, tr(c.text(row)), colW), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.Output(w)
}

// fit trims text with an ellipsis until it fits a cell of width w.
func fit(pdf *gofpdf.Fpdf, text string, w float64) string {
	limit := w - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
