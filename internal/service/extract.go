package service

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
)

// Escalation thresholds: below lowTextThreshold chars the layout-aware
// pdftotext pass runs; below ocrTextThreshold after that, OCR runs.
const (
	lowTextThreshold = 100
	ocrTextThreshold = 50
)

// Extractor pulls plain text out of a PDF, escalating through fallbacks
// for image-based or oddly encoded documents. Extraction is best-effort:
// every failure is swallowed and the result may be empty.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the best text this extractor could recover from the
// PDF at path. It never returns an error; callers decide whether the yield
// is sufficient.
func (e *Extractor) ExtractText(pdfPath string) string {
	text, err := extractWithPDFLib(pdfPath)
	if err != nil {
		log.Warn().Err(err).Str("path", pdfPath).Msg("PDF library extraction failed")
	}

	if len(strings.TrimSpace(text)) < lowTextThreshold {
		layoutText, err := extractWithPdfToText(pdfPath)
		if err != nil {
			log.Warn().Err(err).Msg("pdftotext extraction failed")
		} else if len(strings.TrimSpace(layoutText)) > len(strings.TrimSpace(text)) {
			text = layoutText
		}

		if len(strings.TrimSpace(text)) < ocrTextThreshold {
			ocrText, err := extractWithOCR(pdfPath)
			if err != nil {
				log.Warn().Err(err).Msg("OCR extraction failed")
			} else if len(strings.TrimSpace(ocrText)) > len(strings.TrimSpace(text)) {
				text = ocrText
			}
		}
	}

	return strings.TrimSpace(text)
}

// extractWithPDFLib reads embedded text page by page.
func extractWithPDFLib(pdfPath string) (string, error) {
	f, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Warn().Int("page", i).Err(err).Msg("Failed to extract text from PDF page")
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}

// extractWithPdfToText shells out to poppler's pdftotext, which handles
// layouts and encodings the pure-Go reader chokes on.
func extractWithPdfToText(pdfPath string) (string, error) {
	if _, err := exec.LookPath("pdftotext"); err != nil {
		return "", fmt.Errorf("pdftotext not available: %w", err)
	}

	outFile := pdfPath + ".txt"
	defer os.Remove(outFile)

	if err := exec.Command("pdftotext", "-layout", pdfPath, outFile).Run(); err != nil {
		return "", fmt.Errorf("running pdftotext: %w", err)
	}

	content, err := os.ReadFile(outFile)
	if err != nil {
		return "", fmt.Errorf("reading pdftotext output: %w", err)
	}

	return string(content), nil
}

// extractWithOCR rasterizes pages with pdftoppm and runs tesseract over
// each image. Last resort for scanned resumes.
func extractWithOCR(pdfPath string) (string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return "", fmt.Errorf("pdftoppm not available: %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return "", fmt.Errorf("tesseract not available: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "resume-ocr-")
	if err != nil {
		return "", fmt.Errorf("creating OCR temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	if err := exec.Command("pdftoppm", "-r", "300", "-png", pdfPath, prefix).Run(); err != nil {
		return "", fmt.Errorf("rasterizing PDF: %w", err)
	}

	images, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return "", fmt.Errorf("listing rasterized pages: %w", err)
	}

	var sb strings.Builder
	for _, img := range images {
		out, err := exec.Command("tesseract", img, "stdout").Output()
		if err != nil {
			log.Warn().Err(err).Str("image", img).Msg("tesseract failed on page image")
			continue
		}
		sb.Write(out)
		sb.WriteString("\n")
	}

	return sb.String(), nil
}
