// Package api contains API contract definitions for the StyleLens dashboard.
// Version v1 represents the current stable API version.
package api

import (
	"stylelens/pkg/contracts/domain"
)

// Dataset API Requests

// ReportRequest asks for a filtered analytics report over a dataset.
type ReportRequest struct {
	Filters       domain.FilterSet `json:"filters"`
	TopK          int              `json:"top_k,omitempty" validate:"omitempty,min=1,max=100"`
	HistogramBins int              `json:"histogram_bins,omitempty" validate:"omitempty,min=1,max=200"`
}

// ExportRequest asks for a CSV download of the filtered rows. An empty
// Columns slice selects the default display columns.
type ExportRequest struct {
	Filters domain.FilterSet `json:"filters"`
	Columns []string         `json:"columns,omitempty" validate:"omitempty,dive,required"`
}
