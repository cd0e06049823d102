package reader

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// parseDelimited parses a delimited text export. The delimiter is
// sniffed from the header line: the regulatory portals emit both
// comma- and semicolon-separated files.
func parseDelimited(data []byte) (*ParsedFile, error) {
	text := decodeText(data)
	text = strings.TrimPrefix(text, "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = sniffDelimiter(text)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited file: %w", err)
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
		Format:  "csv",
		Headers: nonEmpty(headers),
		Rows:    rows,
	}, nil
}

// sniffDelimiter picks the rune that splits the header line into more
// fields. Comma wins ties, matching the common case.
func sniffDelimiter(text string) rune {
	line := text
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		line = text[:idx]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func trimRow(record []string) []string {
	out := make([]string, len(record))
	for i, cell := range record {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func emptyRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func nonEmpty(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}
