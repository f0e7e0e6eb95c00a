package output

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10
	pdfLineHeight = 4
	pdfFontSize   = 7
	pdfTabWidth   = 4
)

// Core PDF fonts are cp1252; tree glyphs and emoji outside it are folded to
// ASCII before the translator sees them.
var pdfGlyphs = strings.NewReplacer(
	"📁", "[D]",
	"📄", "[F]",
	"├──", "+--",
	"└──", "`--",
	"│", "|",
	"\t", strings.Repeat(" ", pdfTabWidth),
)

// WritePDF renders report lines verbatim in a monospace font.
func WritePDF(path, title string, lines []string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Courier", "", pdfFontSize)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width := float64(pdfPageWidth - 2*pdfMargin)
	for _, line := range lines {
		if line == "" {
			pdf.Ln(pdfLineHeight)
			continue
		}
		pdf.MultiCell(width, pdfLineHeight, tr(pdfGlyphs.Replace(line)), "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error generating PDF %s: %w", path, err)
	}
	return nil
}
