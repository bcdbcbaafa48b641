package document

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelExtractor flattens every sheet of an XLSX workbook into lines, one
// row per line with cells joined by single spaces, so the line-oriented
// expense patterns apply unchanged.
type ExcelExtractor struct{}

func (e *ExcelExtractor) Extract(_ context.Context, data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			sb.WriteString(strings.Join(row, " "))
			sb.WriteByte('\n')
		}
	}

	return sb.String(), nil
}
