// Package extract turns binary statement sources into plain text the
// ingestion router can work with.
package extract

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/finsight/ledgerparse/internal/domain"
)

// TextExtractor yields plain text from a PDF file on disk.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// PDFTextExtractor extracts text with the pdf library, trying row-ordered
// extraction first and whole-document plain text second. Scanned or
// image-only PDFs produce no usable text and surface as ErrUnreadableSource.
type PDFTextExtractor struct{}

func NewPDFTextExtractor() *PDFTextExtractor {
	return &PDFTextExtractor{}
}

func (x *PDFTextExtractor) ExtractText(path string) (text string, err error) {
	// the pdf library panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: pdf reader panic: %v", domain.ErrUnreadableSource, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrUnreadableSource, err)
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("%w: pdf has no pages", domain.ErrUnreadableSource)
	}

	if text := extractByRows(r); readable(text) {
		return text, nil
	}
	if text := extractPlain(r); readable(text) {
		return text, nil
	}

	return "", fmt.Errorf("%w: no readable text in pdf, file may be scanned or image-based", domain.ErrUnreadableSource)
}

// extractByRows walks each page row by row, which preserves the tabular
// layout of statement PDFs better than whole-document extraction.
func extractByRows(r *pdf.Reader) string {
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			pages = append(pages, strings.Join(lines, "\n"))
		}
	}
	return strings.Join(pages, "\n\n")
}

func extractPlain(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readable guards against garbage from custom font encodings: the text must
// be non-trivial and mostly plain ASCII. Statement text is numbers, dates
// and Latin descriptions, so a low ASCII ratio means the encoding was not
// decoded, not that the statement is exotic.
func readable(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	total, ok := 0, 0
	for _, r := range text {
		total++
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || strings.ContainsRune(`.,-/:;()'"&@#%+=*`, r)) {
			ok++
		} else if r == '₹' || r == '£' || r == '€' {
			ok++
		}
	}
	if total == 0 {
		return false
	}
	return float64(ok)/float64(total) > 0.6
}
