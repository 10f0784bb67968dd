package cli

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stylelens/internal/dataprocessing"
	"stylelens/internal/exporter"
	"stylelens/pkg/contracts/domain"
)

var (
	reportOutputDir string

	reportBrand        string
	reportCategory     string
	reportSubCategory  string
	reportPricePoint   string
	reportAvailability string
	reportColors       []string
	reportPriceMin     float64
	reportPriceMax     float64
	reportTopK         int
	reportBins         int
)

var reportCmd = &cobra.Command{
	Use:   "report <dataset-file>",
	Short: "Build a one-shot report from a CSV or XLSX file",
	Long: `Report loads a product catalog, applies the given filters, prints the
summary metrics and top charts, and writes the filtered rows to
filtered_fashion_data.csv in the output directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		format, err := dataprocessing.FormatForFilename(path)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open dataset: %w", err)
		}
		defer f.Close()

		table, err := dataprocessing.Parse(f, format)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}

		filters := buildFilterSet(cmd)
		opts := dataprocessing.ReportOptions{TopK: reportTopK, HistogramBins: reportBins}
		report := dataprocessing.BuildReport(table, filters, opts)
		printReport(cmd, report)

		if report.Empty {
			return nil
		}
		filtered := dataprocessing.ApplyFilters(table, filters)
		out := filepath.Join(reportOutputDir, exporter.DownloadFilename)
		if err := exporter.WriteFile(out, filtered, exporter.WriteOptions{
			Columns: exporter.DefaultColumns(filtered),
		}); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
		cmd.Printf("\nFiltered rows written to %s\n", out)
		return nil
	},
}

func buildFilterSet(cmd *cobra.Command) domain.FilterSet {
	filters := domain.FilterSet{
		Brand:        reportBrand,
		CategoryMain: reportCategory,
		CategorySub:  reportSubCategory,
		PricePoint:   reportPricePoint,
		Availability: reportAvailability,
		Colors:       reportColors,
	}
	// The range only applies when at least one bound was given; a missing
	// upper bound leaves the range open above.
	minSet := cmd.Flags().Changed("price-min")
	maxSet := cmd.Flags().Changed("price-max")
	if minSet || maxSet {
		max := reportPriceMax
		if !maxSet {
			max = math.MaxFloat64
		}
		filters.PriceRange = &domain.PriceRange{Min: reportPriceMin, Max: max}
	}
	return filters
}

func printReport(cmd *cobra.Command, report *domain.Report) {
	cmd.Printf("Products: %d of %d match the current filters\n",
		report.FilteredRows, report.TotalRows)
	if report.Empty {
		cmd.Println("No products match the selected filters.")
		return
	}

	s := report.Summary
	cmd.Printf("Unique brands: %d\n", s.UniqueBrands)
	if s.AveragePrice != nil {
		cmd.Printf("Average price: %.2f\n", *s.AveragePrice)
	} else {
		cmd.Println("Average price: N/A")
	}
	cmd.Printf("In stock: %d\n", s.InStockCount)

	if len(report.TopBrands) > 0 {
		cmd.Println("\nTop brands:")
		for _, b := range report.TopBrands {
			cmd.Printf("  %-24s %d\n", b.Value, b.Count)
		}
	}
	if len(report.CategoryCounts) > 0 {
		cmd.Println("\nCategories:")
		for _, b := range report.CategoryCounts {
			cmd.Printf("  %-24s %d\n", b.Value, b.Count)
		}
	}
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutputDir, "output-dir", "o", ".", "directory for the exported CSV")
	reportCmd.Flags().StringVar(&reportBrand, "brand", "", "filter by brand name")
	reportCmd.Flags().StringVar(&reportCategory, "category", "", "filter by main category")
	reportCmd.Flags().StringVar(&reportSubCategory, "sub-category", "", "filter by sub category")
	reportCmd.Flags().StringVar(&reportPricePoint, "price-point", "", "filter by price point")
	reportCmd.Flags().StringVar(&reportAvailability, "availability", "", "filter by availability")
	reportCmd.Flags().StringSliceVar(&reportColors, "colors", nil, "filter by colors (comma separated)")
	reportCmd.Flags().Float64Var(&reportPriceMin, "price-min", 0, "minimum price")
	reportCmd.Flags().Float64Var(&reportPriceMax, "price-max", 0, "maximum price")
	reportCmd.Flags().IntVar(&reportTopK, "top-k", 0, "bucket count for top charts (default 10)")
	reportCmd.Flags().IntVar(&reportBins, "bins", 0, "price histogram bin count (default 20)")
	rootCmd.AddCommand(reportCmd)
}
