// Package http exposes the report pipeline over a chi HTTP API.
package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/Ing-Eduardo-E/csv-processor/internal/errors"
	"github.com/Ing-Eduardo-E/csv-processor/internal/exporter"
	"github.com/Ing-Eduardo-E/csv-processor/internal/reader"
	"github.com/Ing-Eduardo-E/csv-processor/internal/services"
	"github.com/Ing-Eduardo-E/csv-processor/pkg/contracts/domain"
)

// ReportHandler handles upload-and-report HTTP requests.
type ReportHandler struct {
	service  *services.ReportService
	logger   *slog.Logger
	validate *validator.Validate
}

// NewReportHandler creates a report handler.
func NewReportHandler(service *services.ReportService, logger *slog.Logger) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportHandler{
		service:  service,
		logger:   logger.With(slog.String("component", "report_handler")),
		validate: validator.New(),
	}
}

// Routes returns the report routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/reports", h.CreateReport)
	return r
}

// reportRequest is the multipart form contract of POST /api/reports.
type reportRequest struct {
	ServiceType string `validate:"required,oneof=acueducto alcantarillado aseo"`
	Mode        string `validate:"required,oneof=monthly annual"`
	Format      string `validate:"omitempty,oneof=json csv xlsx"`
}

// reportResponse wraps a successful report.
type reportResponse struct {
	Success bool           `json:"success"`
	Report  *domain.Report `json:"report"`
}

// Render implements render.Renderer.
func (r *reportResponse) Render(w http.ResponseWriter, req *http.Request) error {
	render.Status(req, http.StatusOK)
	return nil
}

// CreateReport handles POST /api/reports: multipart upload with
// service_type and mode fields, returning the aggregated report as
// JSON or as an exported file when format=csv|xlsx.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetReqID(r.Context())

	req := reportRequest{
		ServiceType: r.FormValue("service_type"),
		Mode:        r.FormValue("mode"),
		Format:      r.FormValue("format"),
	}
	if req.Format == "" {
		req.Format = "json"
	}
	if err := h.validate.Struct(req); err != nil {
		h.renderError(w, r, apierrors.NewWithDetails(http.StatusBadRequest,
			"VALIDATION_FAILED", "Request validation failed", err.Error()))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.renderError(w, r, apierrors.ErrValidation("file", "Uploaded file is required"))
		return
	}
	defer file.Close()

	h.logger.InfoContext(r.Context(), "processing upload",
		slog.String("request_id", reqID),
		slog.String("filename", header.Filename),
		slog.String("service_type", req.ServiceType),
		slog.String("mode", req.Mode))

	report, err := h.service.GenerateFromUpload(r.Context(), file, header.Filename,
		domain.ServiceType(req.ServiceType), domain.ReportMode(req.Mode))
	if err != nil {
		h.renderError(w, r, mapPipelineError(err))
		return
	}

	switch req.Format {
	case "csv":
		h.sendCSV(w, r, report)
	case "xlsx":
		h.sendXLSX(w, r, report)
	default:
		if err := render.Render(w, r, &reportResponse{Success: true, Report: report}); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to render response", slog.String("error", err.Error()))
		}
	}
}

func (h *ReportHandler) sendCSV(w http.ResponseWriter, r *http.Request, report *domain.Report) {
	name := exporter.FileName(report.ServiceType, report.Mode, report.GeneratedAt) + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := exporter.NewCSVWriter(h.logger).Write(w, report); err != nil {
		h.logger.ErrorContext(r.Context(), "csv export failed", slog.String("error", err.Error()))
	}
}

func (h *ReportHandler) sendXLSX(w http.ResponseWriter, r *http.Request, report *domain.Report) {
	name := exporter.FileName(report.ServiceType, report.Mode, report.GeneratedAt) + ".xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := exporter.NewXLSXWriter(h.logger).Write(w, report); err != nil {
		h.logger.ErrorContext(r.Context(), "xlsx export failed", slog.String("error", err.Error()))
	}
}

func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, apiErr *apierrors.APIError) {
	if err := render.Render(w, r, apierrors.NewErrorResponse(apiErr)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render error", slog.String("error", err.Error()))
	}
}

// mapPipelineError translates pipeline failures into API errors,
// keeping the missing-column list intact for the user.
func mapPipelineError(err error) *apierrors.APIError {
	var vErr *services.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		return apierrors.MissingColumnsError(vErr.Missing)
	case errors.Is(err, reader.ErrEmptyFile), errors.Is(err, reader.ErrNoDataRows):
		return apierrors.ErrEmptyFile
	case errors.Is(err, reader.ErrFileTooLarge):
		return apierrors.ErrFileTooLarge
	default:
		return apierrors.UnreadableFileError(err)
	}
}
