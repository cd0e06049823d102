// Package services orchestrates the billing report pipeline:
// read -> validate columns -> normalize -> aggregate.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Ing-Eduardo-E/csv-processor/internal/normalize"
	"github.com/Ing-Eduardo-E/csv-processor/internal/reader"
	"github.com/Ing-Eduardo-E/csv-processor/internal/report"
	"github.com/Ing-Eduardo-E/csv-processor/internal/schema"
	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// ValidationFailedError is the structural failure of an upload whose
// required columns did not resolve. Missing carries the user-facing
// column list (or sentinel message) verbatim.
type ValidationFailedError struct {
	Missing []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("columnas faltantes: %v", e.Missing)
}

// ReportService runs the normalization and aggregation pipeline over
// uploaded export files. It owns no mutable state; every invocation
// works on its own Session.
type ReportService struct {
	reader *reader.Reader
	logger *slog.Logger
}

// NewReportService creates a ReportService. maxUploadBytes bounds the
// accepted file size; <= 0 disables the bound.
func NewReportService(maxUploadBytes int64, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		reader: reader.New(maxUploadBytes, logger),
		logger: logger.With(slog.String("component", "report_service")),
	}
}

// Session holds one upload's parsed and normalized data. The caller
// owns it and can re-aggregate under different modes without
// re-reading the file; no state is shared between sessions.
type Session struct {
	ID          string
	ServiceType domain.ServiceType
	Headers     []string
	Rows        []domain.RawRow
	Records     []domain.CanonicalRecord
	CreatedAt   time.Time

	aggregator *report.Aggregator
}

// Open reads and validates an upload and normalizes its rows,
// returning a Session ready for aggregation. Structural failures
// (unreadable file, missing columns, unknown service) abort before
// any aggregate is computed.
func (s *ReportService) Open(ctx context.Context, src io.Reader, filename string, service domain.ServiceType) (*Session, error) {
	parsed, err := s.reader.Read(src, filename)
	if err != nil {
		return nil, err
	}

	validation := schema.ValidateColumns(parsed.Headers, service)
	if !validation.Valid {
		s.logger.WarnContext(ctx, "column validation failed",
			slog.String("service", string(service)),
			slog.Any("missing", validation.MissingColumns))
		return nil, &ValidationFailedError{Missing: validation.MissingColumns}
	}

	normalizer, err := normalize.New(service, s.logger)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:          uuid.NewString(),
		ServiceType: service,
		Headers:     parsed.Headers,
		Rows:        parsed.Rows,
		Records:     normalizer.NormalizeAll(parsed.Rows, parsed.Headers),
		CreatedAt:   time.Now(),
		aggregator:  report.NewAggregator(service, s.logger),
	}

	s.logger.InfoContext(ctx, "session opened",
		slog.String("session_id", session.ID),
		slog.String("service", string(service)),
		slog.String("format", parsed.Format),
		slog.Int("records", len(session.Records)))
	return session, nil
}

// Generate aggregates the session's records under the given mode.
// Deterministic and side-effect free: the same session and mode always
// yield the same report.
func (s *ReportService) Generate(ctx context.Context, session *Session, mode domain.ReportMode) (*domain.Report, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown report mode %q", mode)
	}
	rows := session.aggregator.Aggregate(ctx, session.Records, mode)
	return &domain.Report{
		ID:          uuid.NewString(),
		ServiceType: session.ServiceType,
		Mode:        mode,
		RecordCount: len(session.Records),
		Rows:        rows,
		GeneratedAt: time.Now(),
	}, nil
}

// GenerateFromFile is the one-shot path used by the CLI: open the
// file, build the session, aggregate.
func (s *ReportService) GenerateFromFile(ctx context.Context, path string, service domain.ServiceType, mode domain.ReportMode) (*domain.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()
	return s.GenerateFromUpload(ctx, f, filepath.Base(path), service, mode)
}

// GenerateFromUpload is the one-shot path used by the HTTP transport.
func (s *ReportService) GenerateFromUpload(ctx context.Context, src io.Reader, filename string, service domain.ServiceType, mode domain.ReportMode) (*domain.Report, error) {
	session, err := s.Open(ctx, src, filename, service)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, session, mode)
}
