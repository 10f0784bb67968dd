package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylelens/internal/dataprocessing"
	apierrors "stylelens/internal/errors"
	"stylelens/internal/exporter"
	"stylelens/internal/services"
	"stylelens/pkg/contracts/domain"
)

const handlerCSV = `name,brand_name,category_main,color,price_point,availability,price_amount
Shirt,Acme,Tops,Red,budget,in stock,10
Dress,Acme,Dresses,Blue,premium,In Stock - online,20
`

type stubDashboardService struct {
	loadFn     func(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*services.Dataset, error)
	datasetsFn func(ctx context.Context) []*services.Dataset
	widgetsFn  func(ctx context.Context, id string) ([]domain.WidgetSpec, error)
	reportFn   func(ctx context.Context, id string, f domain.FilterSet, opts dataprocessing.ReportOptions) (*domain.Report, error)
	exportFn   func(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error
}

func (s *stubDashboardService) LoadDataset(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*services.Dataset, error) {
	return s.loadFn(ctx, name, r, format)
}

func (s *stubDashboardService) Datasets(ctx context.Context) []*services.Dataset {
	if s.datasetsFn == nil {
		return nil
	}
	return s.datasetsFn(ctx)
}

func (s *stubDashboardService) WidgetSpecs(ctx context.Context, id string) ([]domain.WidgetSpec, error) {
	return s.widgetsFn(ctx, id)
}

func (s *stubDashboardService) Report(ctx context.Context, id string, f domain.FilterSet, opts dataprocessing.ReportOptions) (*domain.Report, error) {
	return s.reportFn(ctx, id, f, opts)
}

func (s *stubDashboardService) Export(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error {
	return s.exportFn(ctx, id, f, columns, w)
}

func sampleDataset(t *testing.T) *services.Dataset {
	t.Helper()
	table, err := dataprocessing.ParseCSV(strings.NewReader(handlerCSV))
	require.NoError(t, err)
	return &services.Dataset{
		ID:         "ds-1",
		Name:       "products.csv",
		UploadedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Table:      table,
	}
}

func newHandler(t *testing.T, svc DashboardServiceInterface) *DatasetHandler {
	t.Helper()
	logger := slog.Default()
	return NewDatasetHandler(svc, logger, apierrors.NewErrorHandler(logger), 1<<20)
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(uploadFieldName, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	ds := sampleDataset(t)
	svc := &stubDashboardService{
		loadFn: func(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*services.Dataset, error) {
			assert.Equal(t, "products.csv", name)
			assert.Equal(t, dataprocessing.FormatCSV, format)
			return ds, nil
		},
	}

	body, contentType := multipartUpload(t, "products.csv", handlerCSV)
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ds-1", resp["id"])
	assert.Equal(t, float64(2), resp["row_count"])
}

func TestUploadMissingFile(t *testing.T) {
	svc := &stubDashboardService{}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestUploadUnsupportedFormat(t *testing.T) {
	svc := &stubDashboardService{}
	body, contentType := multipartUpload(t, "products.pdf", "junk")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestUploadLoadFailure(t *testing.T) {
	svc := &stubDashboardService{
		loadFn: func(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*services.Dataset, error) {
			return nil, &dataprocessing.LoadError{Format: format, Err: fmt.Errorf("no header row")}
		},
	}
	body, contentType := multipartUpload(t, "empty.csv", "")
	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestList(t *testing.T) {
	ds := sampleDataset(t)
	svc := &stubDashboardService{
		datasetsFn: func(ctx context.Context) []*services.Dataset {
			return []*services.Dataset{ds}
		},
	}
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Datasets []map[string]interface{} `json:"datasets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Datasets, 1)
	assert.Equal(t, "products.csv", resp.Datasets[0]["name"])
}

func TestGetWidgets(t *testing.T) {
	ds := sampleDataset(t)
	svc := &stubDashboardService{
		widgetsFn: func(ctx context.Context, id string) ([]domain.WidgetSpec, error) {
			assert.Equal(t, "ds-1", id)
			return dataprocessing.WidgetSpecs(ds.Table), nil
		},
	}
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ds-1/widgets", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		DatasetID string              `json:"dataset_id"`
		Widgets   []domain.WidgetSpec `json:"widgets"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ds-1", resp.DatasetID)
	assert.NotEmpty(t, resp.Widgets)
}

func TestGetWidgetsNotFound(t *testing.T) {
	svc := &stubDashboardService{
		widgetsFn: func(ctx context.Context, id string) ([]domain.WidgetSpec, error) {
			return nil, services.ErrDatasetNotFound
		},
	}
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope/widgets", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}

func TestBuildReport(t *testing.T) {
	ds := sampleDataset(t)
	var gotFilters domain.FilterSet
	svc := &stubDashboardService{
		reportFn: func(ctx context.Context, id string, f domain.FilterSet, opts dataprocessing.ReportOptions) (*domain.Report, error) {
			gotFilters = f
			return dataprocessing.BuildReport(ds.Table, f, opts), nil
		},
	}

	body := `{"filters":{"brand":"Acme","colors":["Red"]}}`
	req := httptest.NewRequest(http.MethodPost, "/ds-1/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Acme", gotFilters.Brand)
	assert.Equal(t, []string{"Red"}, gotFilters.Colors)

	var resp struct {
		Report *domain.Report `json:"report"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Report)
	assert.Equal(t, 2, resp.Report.TotalRows)
	assert.Equal(t, 1, resp.Report.FilteredRows)
}

func TestBuildReportBadJSON(t *testing.T) {
	svc := &stubDashboardService{}
	req := httptest.NewRequest(http.MethodPost, "/ds-1/report", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildReportInvalidPriceRange(t *testing.T) {
	svc := &stubDashboardService{}
	body := `{"filters":{"price_range":{"min":50,"max":10}}}`
	req := httptest.NewRequest(http.MethodPost, "/ds-1/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBuildReportInvalidTopK(t *testing.T) {
	svc := &stubDashboardService{}
	body := `{"filters":{},"top_k":-3}`
	req := httptest.NewRequest(http.MethodPost, "/ds-1/report", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportHandler(t *testing.T) {
	ds := sampleDataset(t)
	svc := &stubDashboardService{
		exportFn: func(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error {
			filtered := dataprocessing.ApplyFilters(ds.Table, f)
			return exporter.Write(w, filtered, exporter.WriteOptions{Columns: exporter.DefaultColumns(filtered)})
		},
	}

	body := `{"filters":{"brand":"Acme"}}`
	req := httptest.NewRequest(http.MethodPost, "/ds-1/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, fmt.Sprintf("attachment; filename=%s", exporter.DownloadFilename),
		w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "Shirt")
}

func TestExportUnknownColumnHandler(t *testing.T) {
	svc := &stubDashboardService{
		exportFn: func(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error {
			return fmt.Errorf("column %q: %w", "nope", services.ErrUnknownColumn)
		},
	}
	body := `{"filters":{},"columns":["nope"]}`
	req := httptest.NewRequest(http.MethodPost, "/ds-1/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newHandler(t, svc).Routes().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/problem+json", w.Header().Get("Content-Type"))
}
