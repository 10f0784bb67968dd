package http

import (
	"context"
	"io"

	"stylelens/internal/dataprocessing"
	"stylelens/internal/services"
	"stylelens/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dataset operations the handlers need
type DashboardServiceInterface interface {
	LoadDataset(ctx context.Context, name string, r io.Reader, format dataprocessing.Format) (*services.Dataset, error)
	Datasets(ctx context.Context) []*services.Dataset
	WidgetSpecs(ctx context.Context, id string) ([]domain.WidgetSpec, error)
	Report(ctx context.Context, id string, f domain.FilterSet, opts dataprocessing.ReportOptions) (*domain.Report, error)
	Export(ctx context.Context, id string, f domain.FilterSet, columns []string, w io.Writer) error
}

// HealthServiceInterface defines the health probes exposed over HTTP
type HealthServiceInterface interface {
	Health(ctx context.Context) *services.HealthStatus
	Ready(ctx context.Context) bool
}
