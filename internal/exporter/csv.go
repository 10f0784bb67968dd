// Package exporter serializes filtered product tables back to CSV,
// mirroring the serialization of the upload so a downloaded file can be
// re-uploaded unchanged.
package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"stylelens/pkg/contracts/domain"
)

// DownloadFilename is the fixed attachment name of the dashboard's
// filtered-data download.
const DownloadFilename = "filtered_fashion_data.csv"

// defaultDisplayColumns is the dashboard's preferred column selection,
// intersected with whatever the table actually has.
var defaultDisplayColumns = []string{
	domain.ColName,
	domain.ColBrandName,
	domain.ColCategoryMain,
	domain.ColPriceAmount,
	domain.ColColor,
	domain.ColAvailability,
}

// WriteOptions configures CSV serialization.
type WriteOptions struct {
	// Columns selects and orders the exported columns. Empty means
	// DefaultColumns(table).
	Columns []string
	// BOMPrefix prepends a UTF-8 BOM so Excel opens the file cleanly.
	BOMPrefix bool
}

// DefaultColumns returns the dashboard's default display columns
// restricted to those present in the table, capped at six. When none
// of the preferred columns exist, every table column is returned.
func DefaultColumns(t *domain.Table) []string {
	columns := make([]string, 0, len(defaultDisplayColumns))
	for _, c := range defaultDisplayColumns {
		if t.HasColumn(c) {
			columns = append(columns, c)
		}
	}
	if len(columns) == 0 {
		return t.Columns
	}
	return columns
}

// Write serializes the selected columns of a table as CSV. Missing
// cells become empty fields, numeric cells use the shortest exact
// decimal representation, and text cells are written verbatim.
func Write(w io.Writer, t *domain.Table, opts WriteOptions) error {
	columns := opts.Columns
	if len(columns) == 0 {
		columns = DefaultColumns(t)
	}

	indices := make([]int, len(columns))
	for i, c := range columns {
		idx := t.ColumnIndex(c)
		if idx < 0 {
			return fmt.Errorf("unknown column %q", c)
		}
		indices[i] = idx
	}

	if opts.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(indices))
	for i, row := range t.Rows {
		for j, idx := range indices {
			record[j] = formatCell(row[idx])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFile serializes a table to a file on disk, creating parent
// directories as needed. Used by the offline report command.
func WriteFile(path string, t *domain.Table, opts WriteOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	slog.Info("writing table export",
		slog.String("path", path),
		slog.Int("row_count", t.RowCount()))

	if err := Write(file, t, opts); err != nil {
		return err
	}
	return file.Close()
}

func formatCell(c domain.Cell) string {
	switch c.Kind {
	case domain.CellText:
		return c.Text
	case domain.CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
