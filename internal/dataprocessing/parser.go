package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"stylelens/pkg/contracts/domain"
)

// Format identifies the serialization of an uploaded dataset.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// FormatForFilename maps a filename extension to a Format.
func FormatForFilename(name string) (Format, error) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".csv"):
		return FormatCSV, nil
	case strings.HasSuffix(lower, ".xlsx"):
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported file format: %s", name)
	}
}

// LoadError reports an unparseable upload. No partial table accompanies
// it; the caller surfaces the message and skips all downstream work.
type LoadError struct {
	Format Format
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s data: %v", e.Format, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// Parse reads an uploaded dataset in the given format and returns the
// cleaned product table.
func Parse(r io.Reader, format Format) (*domain.Table, error) {
	switch format {
	case FormatCSV:
		return ParseCSV(r)
	case FormatXLSX:
		return ParseXLSX(r)
	default:
		return nil, &LoadError{Format: format, Err: fmt.Errorf("unknown format %q", format)}
	}
}

// ParseCSV reads CSV bytes into a cleaned table. The first record is
// the header; every following record is a data row. Empty fields become
// missing cells. A UTF-8 BOM, common in spreadsheet exports, is
// stripped before parsing. Any CSV syntax error aborts the load.
func ParseCSV(r io.Reader) (*domain.Table, error) {
	// Excel prepends a BOM to UTF-8 exports; BOMOverride makes the
	// decode tolerant without affecting clean input.
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.TrimLeadingSpace = false

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &LoadError{Format: FormatCSV, Err: fmt.Errorf("empty input")}
	}
	if err != nil {
		return nil, &LoadError{Format: FormatCSV, Err: err}
	}

	table := &domain.Table{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &LoadError{Format: FormatCSV, Err: err}
		}
		row := make([]domain.Cell, len(header))
		for i, field := range record {
			row[i] = cellForField(field)
		}
		table.Rows = append(table.Rows, row)
	}

	Clean(table)
	return table, nil
}

// ParseXLSX reads the first sheet of a workbook into a cleaned table.
// The first row is the header; short rows are padded with missing
// cells, matching how spreadsheets represent trailing blanks.
func ParseXLSX(r io.Reader) (*domain.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Format: FormatXLSX, Err: fmt.Errorf("workbook has no sheets")}
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Format: FormatXLSX, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Format: FormatXLSX, Err: fmt.Errorf("sheet %q is empty", sheets[0])}
	}

	header := rows[0]
	table := &domain.Table{Columns: header}
	for _, raw := range rows[1:] {
		row := make([]domain.Cell, len(header))
		for i := range header {
			if i < len(raw) {
				row[i] = cellForField(raw[i])
			} else {
				row[i] = domain.MissingCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}

	Clean(table)
	return table, nil
}

func cellForField(field string) domain.Cell {
	if field == "" {
		return domain.MissingCell()
	}
	return domain.TextCell(field)
}
