package api

import (
	"time"

	"stylelens/pkg/contracts/domain"
)

// Dataset API Responses

// DatasetResponse describes an uploaded dataset.
type DatasetResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	RowCount   int       `json:"row_count"`
	Columns    []string  `json:"columns"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// DatasetListResponse lists the datasets currently held in memory.
type DatasetListResponse struct {
	Datasets []DatasetResponse `json:"datasets"`
}

// WidgetsResponse carries the filter widget specifications for a dataset.
type WidgetsResponse struct {
	DatasetID string              `json:"dataset_id"`
	Widgets   []domain.WidgetSpec `json:"widgets"`
}

// ReportResponse wraps a built report with its dataset identity.
type ReportResponse struct {
	DatasetID string         `json:"dataset_id"`
	Report    *domain.Report `json:"report"`
}
