// Package report renders classification results as a downloadable PDF.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/agrovision-ai/go-crops/diseases"
)

// Item is one classified image in the report.
type Item struct {
	Filename   string
	Class      string
	Confidence float32
}

// Options controls the report header.
type Options struct {
	Title       string
	GeneratedBy string
	GeneratedAt time.Time
}

// Generate writes a PDF summarizing the results: a header, one table row
// per image, and a treatment section for each distinct disease detected.
func Generate(w io.Writer, items []Item, opts Options) error {
	if opts.Title == "" {
		opts.Title = "Crop Disease Detection Report"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(opts.Title, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, opts.Title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated: "+opts.GeneratedAt.Format("2006-01-02 15:04:05"), "", 1, "C", false, 0, "")
	if opts.GeneratedBy != "" {
		pdf.CellFormat(0, 6, "Requested by: "+opts.GeneratedBy, "", 1, "C", false, 0, "")
	}
	pdf.Ln(6)

	writeResultsTable(pdf, items)
	writeTreatmentSections(pdf, items)

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "rendering pdf report")
	}
	return nil
}

func writeResultsTable(pdf *fpdf.Fpdf, items []Item) {
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 240, 230)
	pdf.CellFormat(90, 8, "Image", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 8, "Diagnosis", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Confidence", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.CellFormat(90, 7, item.Filename, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, item.Class, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, fmt.Sprintf("%.2f%%", item.Confidence), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)
}

func writeTreatmentSections(pdf *fpdf.Fpdf, items []Item) {
	seen := map[string]bool{}
	for _, item := range items {
		if seen[item.Class] {
			continue
		}
		seen[item.Class] = true

		info := diseases.InfoFor(item.Class)

		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 9, item.Class, "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, "About: "+info.Description, "", "L", false)
		pdf.MultiCell(0, 5, "Symptoms: "+info.Symptoms, "", "L", false)
		pdf.MultiCell(0, 5, "Treatment: "+info.Treatment, "", "L", false)

		if remedy, ok := diseases.RemedyFor(item.Class); ok {
			pdf.MultiCell(0, 5, "Severity: "+remedy.Severity, "", "L", false)
			pdf.MultiCell(0, 5, "Expected recovery: "+remedy.TimeToCure, "", "L", false)
		}
		pdf.Ln(4)
	}
}
