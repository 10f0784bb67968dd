package dataprocessing

import (
	"sort"

	"stylelens/pkg/contracts/domain"
)

// ReportOptions tunes the view builders of one render pass.
type ReportOptions struct {
	// TopK truncates the frequency and grouped-mean tables.
	TopK int
	// HistogramBins is the bin count of the price distribution.
	HistogramBins int
}

// DefaultReportOptions matches the dashboard's fixed chart set:
// top-10 tables and a 20-bin price histogram.
func DefaultReportOptions() ReportOptions {
	return ReportOptions{TopK: 10, HistogramBins: 20}
}

func (o ReportOptions) withDefaults() ReportOptions {
	if o.TopK <= 0 {
		o.TopK = 10
	}
	if o.HistogramBins <= 0 {
		o.HistogramBins = 20
	}
	return o
}

// BuildReport runs one full render pass: apply the filter set, then
// compute the scalar summary and every chart view over the filtered
// subset. It is a pure function of its inputs and is invoked
// identically from HTTP handlers, the CLI, and tests.
//
// A zero-row filtered table is a valid outcome, not an error: the
// report comes back with Empty set and all views skipped, and the
// caller surfaces an informational message instead of charts.
func BuildReport(t *domain.Table, f domain.FilterSet, opts ReportOptions) *domain.Report {
	opts = opts.withDefaults()

	filtered := ApplyFilters(t, f)
	report := &domain.Report{
		TotalRows:    t.RowCount(),
		FilteredRows: filtered.RowCount(),
	}
	if filtered.RowCount() == 0 {
		report.Empty = true
		return report
	}

	summary := Summarize(filtered)
	report.Summary = &summary

	report.PriceHistogram = PriceHistogram(filtered, opts.HistogramBins)
	report.PricePointCounts = ValueCounts(filtered, domain.ColPricePoint, 0)
	report.TopBrands = ValueCounts(filtered, domain.ColBrandName, opts.TopK)
	report.BrandMeanPrice = GroupedMeanPrice(filtered, domain.ColBrandName, opts.TopK)
	report.CategoryCounts = ValueCounts(filtered, domain.ColCategoryMain, 0)
	report.TopSubCategories = ValueCounts(filtered, domain.ColCategorySub, opts.TopK)
	report.ColorCounts = ValueCounts(filtered, domain.ColColor, opts.TopK)
	report.ColorMeanPrice = GroupedMeanPrice(filtered, domain.ColColor, opts.TopK)
	report.AvailabilityCounts = ValueCounts(filtered, domain.ColAvailability, 0)

	report.CategoryPricePoint = CrossTabulate(filtered, domain.ColCategoryMain, domain.ColPricePoint)
	report.CategoryRollup = RollupCategories(filtered)
	report.CategoryJoint = JointAggregateByCategory(filtered)

	return report
}

// widget labels shown by the UI collaborator, keyed by filter name.
var widgetLabels = map[string]string{
	domain.ColBrandName:    "Brand",
	domain.ColCategoryMain: "Main Category",
	domain.ColCategorySub:  "Sub Category",
	domain.ColPriceAmount:  "Price Range ($)",
	domain.ColPricePoint:   "Price Point",
	domain.ColColor:        "Colors",
	domain.ColAvailability: "Availability",
}

// WidgetSpecs derives the filter controls for a table: one spec per
// known column present, in the dashboard's fixed order. Select options
// are the column's distinct values sorted ascending with the "All"
// sentinel prepended; the range widget carries the numeric price
// bounds, falling back to [0, 1000] when every price is missing.
func WidgetSpecs(t *domain.Table) []domain.WidgetSpec {
	var specs []domain.WidgetSpec

	addSelect := func(column string, kind domain.WidgetKind) {
		if !t.HasColumn(column) {
			return
		}
		specs = append(specs, domain.WidgetSpec{
			Name:    column,
			Label:   widgetLabels[column],
			Kind:    kind,
			Options: selectOptions(t, column),
		})
	}

	addSelect(domain.ColBrandName, domain.WidgetSingleSelect)
	addSelect(domain.ColCategoryMain, domain.WidgetSingleSelect)
	addSelect(domain.ColCategorySub, domain.WidgetSingleSelect)

	if t.HasColumn(domain.ColPriceAmount) {
		min, max, ok := PriceBounds(t)
		if !ok {
			min, max = 0, 1000
		}
		specs = append(specs, domain.WidgetSpec{
			Name:  domain.ColPriceAmount,
			Label: widgetLabels[domain.ColPriceAmount],
			Kind:  domain.WidgetRange,
			Min:   &min,
			Max:   &max,
			Step:  10,
		})
	}

	addSelect(domain.ColPricePoint, domain.WidgetSingleSelect)
	addSelect(domain.ColColor, domain.WidgetMultiSelect)
	addSelect(domain.ColAvailability, domain.WidgetSingleSelect)

	return specs
}

func selectOptions(t *domain.Table, column string) []string {
	idx := t.ColumnIndex(column)
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		if c := row[idx]; c.Kind == domain.CellText {
			seen[c.Text] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen)+1)
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{domain.SelectionAll}, values...)
}
