package report

import (
	"fmt"
	"slices"

	"github.com/go-pdf/fpdf"

	"github.com/hedisam/chaininvestigator/internal/facts"
)

func bandColor(band facts.Band) (int, int, int) {
	switch band {
	case facts.BandHigh:
		return 220, 53, 69
	case facts.BandMedium:
		return 255, 193, 7
	default:
		return 25, 135, 84
	}
}

func (d *document) writePDF(path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.MultiCell(0, 8, tr(d.title), "", "L", false)
	r, g, b := bandColor(d.band)
	pdf.SetFillColor(r, g, b)
	pdf.CellFormat(0, 1.5, "", "", 1, "L", true, 0, "")
	pdf.Ln(4)

	for s := range slices.Values(d.sections) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.MultiCell(0, 7, tr(s.title), "", "L", false)

		pdf.SetFont("Helvetica", "", 10)
		for f := range slices.Values(s.fields) {
			pdf.MultiCell(0, 5, tr(fmt.Sprintf("%s: %s", f.label, f.text)), "", "L", false)
		}
		for bullet := range slices.Values(s.bullets) {
			pdf.MultiCell(0, 5, tr("- "+bullet), "", "L", false)
		}
		if s.text != "" {
			pdf.MultiCell(0, 5, tr(s.text), "", "L", false)
		}
		pdf.Ln(3)
	}

	pdf.SetFont("Helvetica", "I", 8)
	for f := range slices.Values(d.footer) {
		pdf.MultiCell(0, 4, tr(f), "", "L", false)
	}

	err := pdf.OutputFileAndClose(path)
	if err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}
