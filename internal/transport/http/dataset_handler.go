package http

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"stylelens/internal/dataprocessing"
	apierrors "stylelens/internal/errors"
	"stylelens/internal/exporter"
	"stylelens/internal/services"
	apiv1 "stylelens/pkg/contracts/api/v1"
	"stylelens/pkg/contracts/domain"
)

// uploadFieldName is the multipart form field carrying the dataset file.
const uploadFieldName = "file"

// DatasetHandler handles dataset upload, reporting, and export requests
// with RFC 7807 compliance.
type DatasetHandler struct {
	service        DashboardServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	validate       *validator.Validate
	maxUploadBytes int64
}

// NewDatasetHandler creates a new dataset handler with RFC 7807 error handling
func NewDatasetHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler, maxUploadBytes int64) *DatasetHandler {
	return &DatasetHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "dataset_handler")),
		errorHandler:   errorHandler,
		validate:       validator.New(),
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the dataset routes with proper Chi patterns
func (h *DatasetHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Upload)
	r.Get("/", h.List)

	r.Route("/{id}", func(r chi.Router) {
		r.Use(h.DatasetCtx)
		r.Get("/widgets", h.GetWidgets)
		r.Post("/report", h.BuildReport)
		r.Post("/export", h.Export)
	})

	return r
}

// DatasetCtx middleware validates the id parameter
func (h *DatasetHandler) DatasetCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "id") == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("id", "Dataset ID is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Upload accepts a multipart CSV or XLSX file, cleans it, and registers it
// as a new dataset.
func (h *DatasetHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.New(http.StatusRequestEntityTooLarge,
				"UPLOAD_TOO_LARGE", fmt.Sprintf("Upload exceeds the %d byte limit", h.maxUploadBytes)))
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation(uploadFieldName, "A dataset file is required"))
		return
	}
	defer file.Close()

	format, err := dataprocessing.FormatForFilename(header.Filename)
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.UnsupportedFormatError(header.Filename))
		return
	}

	ds, err := h.service.LoadDataset(r.Context(), header.Filename, file, format)
	if err != nil {
		if dataprocessing.IsLoadError(err) {
			h.errorHandler.HandleError(w, r, apierrors.LoadFailedError(err))
			return
		}
		h.logger.ErrorContext(r.Context(), "upload failed",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, datasetResponse(ds))
}

// List returns the datasets currently resident in memory.
func (h *DatasetHandler) List(w http.ResponseWriter, r *http.Request) {
	datasets := h.service.Datasets(r.Context())
	resp := apiv1.DatasetListResponse{Datasets: make([]apiv1.DatasetResponse, 0, len(datasets))}
	for _, ds := range datasets {
		resp.Datasets = append(resp.Datasets, datasetResponse(ds))
	}
	render.JSON(w, r, resp)
}

// GetWidgets returns the filter widget specifications for a dataset.
func (h *DatasetHandler) GetWidgets(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	widgets, err := h.service.WidgetSpecs(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, id, err)
		return
	}
	render.JSON(w, r, apiv1.WidgetsResponse{DatasetID: id, Widgets: widgets})
}

// BuildReport filters a dataset and returns the aggregated dashboard views.
func (h *DatasetHandler) BuildReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req apiv1.ReportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Invalid JSON request body"))
		return
	}
	if apiErr := h.validateFilters(req.Filters, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	opts := dataprocessing.ReportOptions{TopK: req.TopK, HistogramBins: req.HistogramBins}
	report, err := h.service.Report(r.Context(), id, req.Filters, opts)
	if err != nil {
		h.handleServiceError(w, r, id, err)
		return
	}
	render.JSON(w, r, apiv1.ReportResponse{DatasetID: id, Report: report})
}

// Export streams the filtered rows as a CSV attachment.
func (h *DatasetHandler) Export(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req apiv1.ExportRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("body", "Invalid JSON request body"))
		return
	}
	if apiErr := h.validateFilters(req.Filters, req); apiErr != nil {
		h.errorHandler.HandleError(w, r, apiErr)
		return
	}

	// Buffer the CSV so failures still produce a problem document instead
	// of a truncated attachment.
	var buf bytes.Buffer
	if err := h.service.Export(r.Context(), id, req.Filters, req.Columns, &buf); err != nil {
		h.handleServiceError(w, r, id, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", exporter.DownloadFilename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.WarnContext(r.Context(), "export write interrupted",
			slog.String("id", id),
			slog.String("error", err.Error()))
	}
}

// validateFilters applies struct validation plus the price range sanity
// check shared by report and export requests.
func (h *DatasetHandler) validateFilters(filters domain.FilterSet, req interface{}) *apierrors.APIError {
	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]apierrors.ValidationError, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, apierrors.ValidationError{
					Field:   fe.Field(),
					Message: fmt.Sprintf("failed %s validation", fe.Tag()),
				})
			}
			return apierrors.NewValidationErrors(fields)
		}
		return apierrors.ErrValidation("body", err.Error())
	}
	if pr := filters.PriceRange; pr != nil && pr.Min > pr.Max {
		return apierrors.ErrValidation("filters.price_range", "min must not exceed max")
	}
	return nil
}

func (h *DatasetHandler) handleServiceError(w http.ResponseWriter, r *http.Request, id string, err error) {
	switch {
	case errors.Is(err, services.ErrDatasetNotFound):
		h.errorHandler.HandleError(w, r, apierrors.DatasetNotFoundError(id))
	case errors.Is(err, services.ErrUnknownColumn):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("columns", err.Error()))
	default:
		h.logger.ErrorContext(r.Context(), "service call failed",
			slog.String("id", id),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrInternalServer)
	}
}

func datasetResponse(ds *services.Dataset) apiv1.DatasetResponse {
	return apiv1.DatasetResponse{
		ID:         ds.ID,
		Name:       ds.Name,
		RowCount:   ds.Table.RowCount(),
		Columns:    ds.Table.Columns,
		UploadedAt: ds.UploadedAt,
	}
}
