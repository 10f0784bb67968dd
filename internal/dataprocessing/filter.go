package dataprocessing

import (
	"stylelens/pkg/contracts/domain"
)

// ApplyFilters returns the subset of rows satisfying every active
// constraint in the filter set (logical AND). Row order is preserved;
// rows are only ever removed. Filters over columns absent from the
// table are no-ops, and a zero-row result is a valid outcome.
//
// Applying the same filter set twice yields the same result: each
// constraint is a pure per-row predicate.
func ApplyFilters(t *domain.Table, f domain.FilterSet) *domain.Table {
	preds := buildPredicates(t, f)
	if len(preds) == 0 {
		return t
	}

	keep := make([]int, 0, len(t.Rows))
rows:
	for i := range t.Rows {
		for _, p := range preds {
			if !p(t.Rows[i]) {
				continue rows
			}
		}
		keep = append(keep, i)
	}
	return t.Subset(keep)
}

type rowPredicate func(row []domain.Cell) bool

func buildPredicates(t *domain.Table, f domain.FilterSet) []rowPredicate {
	var preds []rowPredicate

	single := []struct {
		column string
		value  string
	}{
		{domain.ColBrandName, f.Brand},
		{domain.ColCategoryMain, f.CategoryMain},
		{domain.ColCategorySub, f.CategorySub},
		{domain.ColPricePoint, f.PricePoint},
		{domain.ColAvailability, f.Availability},
	}
	for _, s := range single {
		if s.value == "" || s.value == domain.SelectionAll {
			continue
		}
		idx := t.ColumnIndex(s.column)
		if idx < 0 {
			continue
		}
		value := s.value
		preds = append(preds, func(row []domain.Cell) bool {
			c := row[idx]
			return c.Kind == domain.CellText && c.Text == value
		})
	}

	if p := colorPredicate(t, f.Colors); p != nil {
		preds = append(preds, p)
	}

	if f.PriceRange != nil {
		if idx := t.ColumnIndex(domain.ColPriceAmount); idx >= 0 {
			r := *f.PriceRange
			// A missing price can never satisfy a numeric comparison,
			// so it is excluded whenever the range filter is active.
			preds = append(preds, func(row []domain.Cell) bool {
				c := row[idx]
				return c.Kind == domain.CellNumber && r.Contains(c.Number)
			})
		}
	}

	return preds
}

// colorPredicate builds the multi-choice constraint. The SelectionAll
// sentinel anywhere in the selection disables the filter, overriding
// every other selected value.
func colorPredicate(t *domain.Table, colors []string) rowPredicate {
	if len(colors) == 0 {
		return nil
	}
	for _, c := range colors {
		if c == domain.SelectionAll {
			return nil
		}
	}
	idx := t.ColumnIndex(domain.ColColor)
	if idx < 0 {
		return nil
	}

	selected := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		selected[c] = struct{}{}
	}
	return func(row []domain.Cell) bool {
		c := row[idx]
		if c.Kind != domain.CellText {
			return false
		}
		_, ok := selected[c.Text]
		return ok
	}
}
