package dataprocessing

import (
	"strconv"
	"strings"

	"stylelens/pkg/contracts/domain"
)

// Clean normalizes a freshly parsed table in place. If price_amount is
// present, every cell is coerced to numeric; cells that fail coercion
// become missing rather than failing the load. For each known
// categorical column that is present, missing entries are replaced
// with the "Unknown" sentinel. All other columns pass through
// unmodified, and no plausibility checks are applied.
func Clean(t *domain.Table) {
	if t == nil {
		return
	}

	if idx := t.ColumnIndex(domain.ColPriceAmount); idx >= 0 {
		for _, row := range t.Rows {
			row[idx] = coerceNumeric(row[idx])
		}
	}

	for _, col := range domain.CategoricalColumns {
		idx := t.ColumnIndex(col)
		if idx < 0 {
			continue
		}
		for _, row := range t.Rows {
			if row[idx].IsMissing() {
				row[idx] = domain.TextCell(domain.MissingSentinel)
			}
		}
	}
}

// coerceNumeric converts a cell to a number, or to missing when the
// value cannot be parsed. Numbers already coerced pass through.
func coerceNumeric(c domain.Cell) domain.Cell {
	switch c.Kind {
	case domain.CellNumber:
		return c
	case domain.CellText:
		v, err := strconv.ParseFloat(strings.TrimSpace(c.Text), 64)
		if err != nil {
			return domain.MissingCell()
		}
		return domain.NumberCell(v)
	default:
		return domain.MissingCell()
	}
}
