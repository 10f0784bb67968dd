package domain

// ScalarSummary is the headline metric strip of the dashboard.
type ScalarSummary struct {
	TotalProducts int      `json:"total_products"`
	UniqueBrands  int      `json:"unique_brands"`
	AveragePrice  *float64 `json:"average_price"` // nil when no numeric prices exist
	InStockCount  int      `json:"in_stock_count"`
}

// CountBucket is one row of a frequency table.
type CountBucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// MeanBucket is one row of a grouped-mean table.
type MeanBucket struct {
	Value string  `json:"value"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// CrossTab is a two-dimensional count table. Counts[i][j] is the number
// of rows with RowValues[i] in the row column and ColValues[j] in the
// column column; combinations absent from the data are zero.
type CrossTab struct {
	RowColumn string   `json:"row_column"`
	ColColumn string   `json:"col_column"`
	RowValues []string `json:"row_values"`
	ColValues []string `json:"col_values"`
	Counts    [][]int  `json:"counts"`
}

// Total returns the sum over all cells.
func (ct *CrossTab) Total() int {
	total := 0
	for _, row := range ct.Counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// RollupNode is one parent in a hierarchical rollup. Count equals the
// sum of the child counts.
type RollupNode struct {
	Value    string        `json:"value"`
	Count    int           `json:"count"`
	Children []CountBucket `json:"children"`
}

// JointBucket carries both metrics of the joint aggregate for one
// (category_main, price_point) pair present in the data.
type JointBucket struct {
	CategoryMain string   `json:"category_main"`
	PricePoint   string   `json:"price_point"`
	Count        int      `json:"count"`
	MeanPrice    *float64 `json:"mean_price"` // nil when the pair has no numeric prices
}

// HistogramBin is one equal-width bin of the price distribution.
// Bins are half-open [Low, High) except the last, which includes High.
type HistogramBin struct {
	Low   float64 `json:"low"`
	High  float64 `json:"high"`
	Count int     `json:"count"`
}

// WidgetKind identifies the control a filter renders as.
type WidgetKind string

const (
	WidgetSingleSelect WidgetKind = "single_select"
	WidgetMultiSelect  WidgetKind = "multi_select"
	WidgetRange        WidgetKind = "range"
)

// WidgetSpec describes one filter control for the UI collaborator:
// its label, kind, and resolved options or bounds for the current table.
type WidgetSpec struct {
	Name    string     `json:"name"`
	Label   string     `json:"label"`
	Kind    WidgetKind `json:"kind"`
	Options []string   `json:"options,omitempty"`
	Min     *float64   `json:"min,omitempty"`
	Max     *float64   `json:"max,omitempty"`
	Step    float64    `json:"step,omitempty"`
}

// Report is the complete output of one render pass: the scalar summary
// plus every chart view over the filtered table. Views whose backing
// columns are absent from the table are nil. When the filtered table
// has zero rows, Empty is true and all views are skipped.
type Report struct {
	TotalRows    int  `json:"total_rows"`
	FilteredRows int  `json:"filtered_rows"`
	Empty        bool `json:"empty"`

	Summary *ScalarSummary `json:"summary,omitempty"`

	PriceHistogram     []HistogramBin `json:"price_histogram,omitempty"`
	PricePointCounts   []CountBucket  `json:"price_point_counts,omitempty"`
	TopBrands          []CountBucket  `json:"top_brands,omitempty"`
	BrandMeanPrice     []MeanBucket   `json:"brand_mean_price,omitempty"`
	CategoryCounts     []CountBucket  `json:"category_counts,omitempty"`
	TopSubCategories   []CountBucket  `json:"top_sub_categories,omitempty"`
	ColorCounts        []CountBucket  `json:"color_counts,omitempty"`
	ColorMeanPrice     []MeanBucket   `json:"color_mean_price,omitempty"`
	AvailabilityCounts []CountBucket  `json:"availability_counts,omitempty"`

	CategoryPricePoint *CrossTab     `json:"category_price_point,omitempty"`
	CategoryRollup     []RollupNode  `json:"category_rollup,omitempty"`
	CategoryJoint      []JointBucket `json:"category_joint,omitempty"`
}
