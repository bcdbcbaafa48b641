package document

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) Extract(context.Context, []byte) (string, error) {
	return f.text, f.err
}

func testService(pdf, docx, xlsx, ocr TextExtractor) *Service {
	return NewServiceWithExtractors(pdf, docx, xlsx, ocr,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNormalize_DispatchByMIME(t *testing.T) {
	svc := testService(
		&fakeExtractor{text: "pdf text"},
		&fakeExtractor{text: "docx text"},
		&fakeExtractor{text: "xlsx text"},
		&fakeExtractor{text: "ocr text"},
	)
	ctx := context.Background()

	tests := []struct {
		name     string
		filename string
		mimeType string
		want     string
	}{
		{"pdf by mime", "statement.bin", "application/pdf", "pdf text"},
		{"docx by mime", "statement.bin", docxMIME, "docx text"},
		{"xlsx by mime", "statement.bin", xlsxMIME, "xlsx text"},
		{"image by mime", "statement.bin", "image/png", "ocr text"},
		{"pdf by extension", "gc_marzo.pdf", "", "pdf text"},
		{"docx by extension", "gc_marzo.docx", "", "docx text"},
		{"xlsx by extension", "gc_marzo.xlsx", "", "xlsx text"},
		{"jpeg by extension", "scan.JPEG", "", "ocr text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Normalize(ctx, []byte("raw"), tt.filename, tt.mimeType)
			assert.Equal(t, tt.want, got)
		})
	}
}

// A declared MIME type beats a mismatched extension.
func TestNormalize_MIMEWinsOverExtension(t *testing.T) {
	svc := testService(
		&fakeExtractor{text: "pdf text"},
		&fakeExtractor{text: "docx text"},
		&fakeExtractor{text: "xlsx text"},
		&fakeExtractor{text: "ocr text"},
	)

	got := svc.Normalize(context.Background(), []byte("raw"), "misnamed.docx", "application/pdf")
	assert.Equal(t, "pdf text", got)
}

func TestNormalize_FallsBackToRawText(t *testing.T) {
	svc := testService(nil, nil, nil, nil)

	got := svc.Normalize(context.Background(),
		[]byte("Mantención ascensores 1.250.000"), "gastos.txt", "text/plain")
	assert.Equal(t, "Mantención ascensores 1.250.000", got)
}

func TestNormalize_ExtractionFailureYieldsSentinel(t *testing.T) {
	svc := testService(
		&fakeExtractor{err: errors.New("corrupt xref")},
		nil, nil, nil,
	)

	got := svc.Normalize(context.Background(), []byte("%PDF-"), "gc_marzo_2026.pdf", "application/pdf")
	assert.Equal(t, "Error en extracción de gc_marzo_2026.pdf", got)
}

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/document.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDocxExtractor(t *testing.T) {
	data := buildDocx(t, `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Mantención ascensores 1.250.000</w:t></w:r></w:p>
    <w:p><w:r><w:t>Reajuste 2%</w:t></w:r></w:p>
  </w:body>
</w:document>`)

	text, err := (&DocxExtractor{}).Extract(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "Mantención ascensores 1.250.000")
	assert.Contains(t, text, "Reajuste 2%")

	// Paragraphs become separate lines.
	assert.Contains(t, text, "1.250.000\n")
}

func TestDocxExtractor_NotAnArchive(t *testing.T) {
	_, err := (&DocxExtractor{}).Extract(context.Background(), []byte("plain text, not a zip"))
	require.Error(t, err)
}

func TestDocxExtractor_MissingDocumentPart(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	f, err := w.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<styles/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = (&DocxExtractor{}).Extract(context.Background(), buf.Bytes())
	require.Error(t, err)
}

func TestExcelExtractor(t *testing.T) {
	book := excelize.NewFile()
	require.NoError(t, book.SetCellValue("Sheet1", "A1", "Mantención ascensores"))
	require.NoError(t, book.SetCellValue("Sheet1", "B1", "1.250.000"))
	require.NoError(t, book.SetCellValue("Sheet1", "A2", "Reajuste 2%"))

	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf))

	text, err := (&ExcelExtractor{}).Extract(context.Background(), buf.Bytes())
	require.NoError(t, err)
	assert.Contains(t, text, "Mantención ascensores 1.250.000")
	assert.Contains(t, text, "Reajuste 2%")
}

func TestExcelExtractor_Invalid(t *testing.T) {
	_, err := (&ExcelExtractor{}).Extract(context.Background(), []byte("not a workbook"))
	require.Error(t, err)
}
