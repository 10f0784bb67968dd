package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"stylelens/internal/config"
	"stylelens/internal/dataprocessing"
	"stylelens/internal/exporter"
	"stylelens/internal/infrastructure"
	"stylelens/pkg/contracts/domain"
)

// Dataset is a cleaned table held in memory together with its upload metadata.
type Dataset struct {
	ID         string
	Name       string
	UploadedAt time.Time
	Table      *domain.Table
}

// DashboardService owns the in-memory dataset registry and runs the analytics
// pipeline on behalf of the transport layer. Datasets are bounded by
// configuration; when the registry is full the oldest upload is evicted.
type DashboardService struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	order    []string

	cfg    config.DashboardConfig
	logger *slog.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service with an empty registry.
func NewDashboardService(cfg config.DashboardConfig, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		datasets: make(map[string]*Dataset),
		cfg:      cfg,
		logger:   infrastructure.WithComponent(logger, "dashboard_service"),
		now:      time.Now,
	}
}

// LoadDataset parses and cleans an uploaded file and registers it under a
// fresh identifier. Parse failures are returned as *dataprocessing.LoadError
// so the caller can distinguish malformed uploads from internal faults.
func (s *DashboardService) LoadDataset(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*Dataset, error) {
	ctx, span := infrastructure.StartSpan(ctx, "DashboardService.LoadDataset",
		attribute.String("dataset.name", name),
		attribute.String("dataset.format", string(format)))
	defer span.End()

	table, err := dataprocessing.Parse(r, format)
	if err != nil {
		infrastructure.DatasetUploads.WithLabelValues(string(format), "error").Inc()
		s.logger.ErrorContext(ctx, "dataset load failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return nil, err
	}

	ds := &Dataset{
		ID:         uuid.New().String(),
		Name:       name,
		UploadedAt: s.now(),
		Table:      table,
	}

	s.mu.Lock()
	s.evictLocked()
	s.datasets[ds.ID] = ds
	s.order = append(s.order, ds.ID)
	resident := len(s.datasets)
	s.mu.Unlock()

	infrastructure.DatasetUploads.WithLabelValues(string(format), "success").Inc()
	infrastructure.DatasetsResident.Set(float64(resident))
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("id", ds.ID),
		slog.String("name", name),
		slog.Int("rows", table.RowCount()),
		slog.Int("resident", resident))
	return ds, nil
}

// evictLocked drops the oldest dataset when the registry is at capacity.
// Caller must hold the write lock.
func (s *DashboardService) evictLocked() {
	max := s.cfg.MaxDatasets
	if max <= 0 {
		return
	}
	for len(s.datasets) >= max && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.datasets, oldest)
		s.logger.Info("dataset evicted", slog.String("id", oldest))
	}
}

// Dataset returns a registered dataset by ID.
func (s *DashboardService) Dataset(ctx context.Context, id string) (*Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	if !ok {
		return nil, fmt.Errorf("dataset %s: %w", id, ErrDatasetNotFound)
	}
	return ds, nil
}

// Datasets lists the registered datasets in upload order.
func (s *DashboardService) Datasets(ctx context.Context) []*Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Dataset, 0, len(s.order))
	for _, id := range s.order {
		if ds, ok := s.datasets[id]; ok {
			out = append(out, ds)
		}
	}
	return out
}

// WidgetSpecs derives the filter widget specifications for a dataset.
func (s *DashboardService) WidgetSpecs(ctx context.Context, id string) ([]domain.WidgetSpec, error) {
	ds, err := s.Dataset(ctx, id)
	if err != nil {
		return nil, err
	}
	return dataprocessing.WidgetSpecs(ds.Table), nil
}

// Report filters a dataset and builds the full set of dashboard views.
// Zero-valued option fields fall back to the configured dashboard defaults.
func (s *DashboardService) Report(ctx context.Context, id string, f domain.FilterSet, opts dataprocessing.ReportOptions) (*domain.Report, error) {
	ctx, span := infrastructure.StartSpan(ctx, "DashboardService.Report",
		attribute.String("dataset.id", id))
	defer span.End()

	ds, err := s.Dataset(ctx, id)
	if err != nil {
		return nil, err
	}
	if opts.TopK == 0 {
		opts.TopK = s.cfg.TopK
	}
	if opts.HistogramBins == 0 {
		opts.HistogramBins = s.cfg.HistogramBins
	}

	report := dataprocessing.BuildReport(ds.Table, f, opts)
	infrastructure.ReportsBuilt.Inc()
	s.logger.InfoContext(ctx, "report built",
		slog.String("id", id),
		slog.Int("total_rows", report.TotalRows),
		slog.Int("filtered_rows", report.FilteredRows))
	return report, nil
}

// Export streams the filtered rows of a dataset as CSV. An empty columns
// slice selects the default display columns. Columns not present in the
// dataset are rejected with ErrUnknownColumn before anything is written.
func (s *DashboardService) Export(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error {
	ctx, span := infrastructure.StartSpan(ctx, "DashboardService.Export",
		attribute.String("dataset.id", id))
	defer span.End()

	ds, err := s.Dataset(ctx, id)
	if err != nil {
		return err
	}
	filtered := dataprocessing.ApplyFilters(ds.Table, f)
	if len(columns) == 0 {
		columns = exporter.DefaultColumns(filtered)
	} else {
		for _, col := range columns {
			if !filtered.HasColumn(col) {
				return fmt.Errorf("column %q: %w", col, ErrUnknownColumn)
			}
		}
	}

	if err := exporter.Write(w, filtered, exporter.WriteOptions{Columns: columns}); err != nil {
		return err
	}
	infrastructure.ExportsServed.Inc()
	s.logger.InfoContext(ctx, "export served",
		slog.String("id", id),
		slog.Int("rows", filtered.RowCount()),
		slog.Int("columns", len(columns)))
	return nil
}
