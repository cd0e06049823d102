package reader

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// parseWorkbook parses an XLSX export. The first sheet is the data
// sheet; the first row is the header row.
func parseWorkbook(data []byte) (*ParsedFile, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyFile
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := trimRow(records[0])
	rows := make([]domain.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if emptyRow(record) {
			continue
		}
		row := make(domain.RawRow, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, ErrNoDataRows
	}

	return &ParsedFile{
		Format:  "xlsx",
		Headers: nonEmpty(headers),
		Rows:    rows,
	}, nil
}
