package service

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// headingKeywords promote a line to a bold section heading in the
// rendered PDF.
var headingKeywords = []string{"experience", "education", "skills", "summary", "objective"}

// WriteResumePDF renders enhanced resume text to a Letter-sized PDF at
// outputPath. All-caps lines and lines naming a resume section become
// headings; everything else is body text.
func WriteResumePDF(text, outputPath string) error {
	doc := fpdf.New("P", "pt", "Letter", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(54, 54, 54)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 18)
	doc.CellFormat(0, 24, "ENHANCED RESUME", "", 1, "C", false, 0, "")
	doc.Ln(12)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isHeadingLine(line) {
			doc.SetFont("Helvetica", "B", 13)
		} else {
			doc.SetFont("Helvetica", "", 10)
		}
		doc.MultiCell(0, 14, tr(line), "", "L", false)
		doc.Ln(4)
	}

	if err := doc.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("writing resume PDF: %w", err)
	}
	return nil
}

func isHeadingLine(line string) bool {
	if line == strings.ToUpper(line) && strings.ContainsAny(line, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return true
	}
	lower := strings.ToLower(line)
	for _, kw := range headingKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
