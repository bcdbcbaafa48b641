// Package document normalizes heterogeneous statement formats (PDF, DOCX,
// XLSX, images, plain text) into a single plain-text string for the forensic
// pipeline.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// TextExtractor is the text-in/text-out contract each format delegate
// implements.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// Service selects an extraction strategy by declared MIME type first,
// filename extension second, and falls back to raw UTF-8.
type Service struct {
	pdf    TextExtractor
	docx   TextExtractor
	xlsx   TextExtractor
	ocr    TextExtractor
	logger *slog.Logger
}

// NewService wires the real format delegates. ocrLanguage is the tesseract
// language code, "spa" for the statements this system audits.
func NewService(ocrLanguage string, logger *slog.Logger) *Service {
	return &Service{
		pdf:    &PDFExtractor{},
		docx:   &DocxExtractor{},
		xlsx:   &ExcelExtractor{},
		ocr:    &OCRExtractor{Language: ocrLanguage},
		logger: logger,
	}
}

// NewServiceWithExtractors injects custom delegates; used by tests.
func NewServiceWithExtractors(pdf, docx, xlsx, ocr TextExtractor, logger *slog.Logger) *Service {
	return &Service{pdf: pdf, docx: docx, xlsx: xlsx, ocr: ocr, logger: logger}
}

const docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Normalize never fails: any delegate error is downgraded to a sentinel
// string naming the file, and downstream stages handle near-empty text by
// falling back to their placeholder result.
func (s *Service) Normalize(ctx context.Context, data []byte, filename, mimeType string) string {
	lowerName := strings.ToLower(filename)

	var (
		text string
		err  error
	)

	switch {
	case mimeType == "application/pdf" || strings.HasSuffix(lowerName, ".pdf"):
		text, err = s.pdf.Extract(ctx, data)
	case mimeType == docxMIME || strings.HasSuffix(lowerName, ".docx"):
		text, err = s.docx.Extract(ctx, data)
	case mimeType == xlsxMIME || strings.HasSuffix(lowerName, ".xlsx"):
		text, err = s.xlsx.Extract(ctx, data)
	case strings.HasPrefix(mimeType, "image/") || hasImageExtension(lowerName):
		text, err = s.ocr.Extract(ctx, data)
	default:
		text = string(data)
	}

	if err != nil {
		s.logger.Error("text extraction failed",
			slog.String("filename", filename),
			slog.String("mime_type", mimeType),
			slog.Any("error", err),
		)
		return fmt.Sprintf("Error en extracción de %s", filename)
	}

	return text
}

func hasImageExtension(lowerName string) bool {
	return strings.HasSuffix(lowerName, ".png") ||
		strings.HasSuffix(lowerName, ".jpg") ||
		strings.HasSuffix(lowerName, ".jpeg")
}
