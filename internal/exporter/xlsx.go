package exporter

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

const reportSheet = "Reporte"

// Column widths per service type.
var (
	aseoWidths    = []float64{10, 10, 10, 15}
	defaultWidths = []float64{10, 12, 10, 15, 18, 15, 15}
)

// XLSXWriter writes report rows as an Excel workbook.
type XLSXWriter struct {
	logger *slog.Logger
}

// NewXLSXWriter creates an XLSX writer.
func NewXLSXWriter(logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{logger: logger.With(slog.String("component", "xlsx_exporter"))}
}

// Write streams the report as a workbook to w.
func (e *XLSXWriter) Write(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := e.fill(f, report); err != nil {
		return err
	}
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// WriteFile writes the report workbook to path.
func (e *XLSXWriter) WriteFile(path string, report *domain.Report) error {
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

func (e *XLSXWriter) fill(f *excelize.File, report *domain.Report) error {
	headers := Headers(report.ServiceType)
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return err
		}
	}

	for r, record := range FormatRows(report.ServiceType, report.Rows) {
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(reportSheet, cell, value); err != nil {
				return err
			}
		}
	}

	widths := defaultWidths
	if report.ServiceType == domain.ServiceAseo {
		widths = aseoWidths
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(reportSheet, col, col, w); err != nil {
			return err
		}
	}
	return nil
}
