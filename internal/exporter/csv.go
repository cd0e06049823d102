// Package exporter writes aggregated reports to CSV and XLSX files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// CSVWriter writes report rows as CSV.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// Write streams the report to w with a UTF-8 BOM so spreadsheet tools
// recognize the encoding.
func (e *CSVWriter) Write(w io.Writer, report *domain.Report) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Headers(report.ServiceType)); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range FormatRows(report.ServiceType, report.Rows) {
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the report to a CSV file, creating the directory
// when needed.
func (e *CSVWriter) WriteFile(path string, report *domain.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if err := e.Write(f, report); err != nil {
		return err
	}
	e.logger.Info("report exported",
		slog.String("path", path),
		slog.Int("rows", len(report.Rows)))
	return nil
}
