package document

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// OCRExtractor recognizes text in scanned statement images via tesseract.
// The client is a scoped resource: one is created per call and closed on
// every exit path, never reused across documents.
type OCRExtractor struct {
	Language string
}

func (e *OCRExtractor) Extract(_ context.Context, data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Language); err != nil {
		return "", fmt.Errorf("set ocr language %q: %w", e.Language, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("load ocr image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize image: %w", err)
	}
	return text, nil
}
