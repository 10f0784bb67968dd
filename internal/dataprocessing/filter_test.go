package dataprocessing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylelens/pkg/contracts/domain"
)

func loadTable(t *testing.T, lines ...string) *domain.Table {
	t.Helper()
	table, err := ParseCSV(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return table
}

func productTable(t *testing.T) *domain.Table {
	t.Helper()
	return loadTable(t,
		"name,brand_name,category_main,color,price_point,availability,price_amount",
		"Shirt,Acme,Tops,Red,budget,in stock,10",
		"Dress,Acme,Dresses,Blue,premium,In Stock - online,20",
		"Hat,Zed,Accessories,Red,budget,sold out,30",
		"Scarf,Zed,Accessories,Green,premium,out of stock,",
	)
}

func names(t *testing.T, table *domain.Table) []string {
	t.Helper()
	idx := table.ColumnIndex("name")
	require.GreaterOrEqual(t, idx, 0)
	out := make([]string, 0, table.RowCount())
	for _, row := range table.Rows {
		out = append(out, row[idx].Text)
	}
	return out
}

func TestApplyFiltersUnconstrained(t *testing.T) {
	table := productTable(t)

	tests := []struct {
		name    string
		filters domain.FilterSet
	}{
		{name: "zero value"},
		{name: "explicit All everywhere", filters: domain.FilterSet{
			Brand:        domain.SelectionAll,
			CategoryMain: domain.SelectionAll,
			CategorySub:  domain.SelectionAll,
			PricePoint:   domain.SelectionAll,
			Availability: domain.SelectionAll,
			Colors:       []string{domain.SelectionAll},
		}},
		{name: "All among other colors", filters: domain.FilterSet{
			Colors: []string{"Red", domain.SelectionAll, "Blue"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(table, tt.filters)
			// row-for-row equal, order preserved
			require.Equal(t, table.RowCount(), got.RowCount())
			assert.Equal(t, names(t, table), names(t, got))
			assert.True(t, tt.filters.IsUnconstrained())
		})
	}
}

func TestApplyFiltersSingleChoice(t *testing.T) {
	table := productTable(t)

	tests := []struct {
		name    string
		filters domain.FilterSet
		want    []string
	}{
		{
			name:    "brand",
			filters: domain.FilterSet{Brand: "Acme"},
			want:    []string{"Shirt", "Dress"},
		},
		{
			name:    "category and price point",
			filters: domain.FilterSet{CategoryMain: "Accessories", PricePoint: "budget"},
			want:    []string{"Hat"},
		},
		{
			name:    "availability exact match only",
			filters: domain.FilterSet{Availability: "sold out"},
			want:    []string{"Hat"},
		},
		{
			name:    "no rows satisfy all filters",
			filters: domain.FilterSet{Brand: "Acme", CategoryMain: "Accessories"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(table, tt.filters)
			assert.Equal(t, tt.want, names(t, got))
		})
	}
}

func TestApplyFiltersMultiChoice(t *testing.T) {
	table := productTable(t)

	got := ApplyFilters(table, domain.FilterSet{Colors: []string{"Red", "Green"}})
	assert.Equal(t, []string{"Shirt", "Hat", "Scarf"}, names(t, got))
}

func TestApplyFiltersPriceRange(t *testing.T) {
	table := productTable(t)

	tests := []struct {
		name    string
		filters domain.FilterSet
		want    []string
	}{
		{
			name:    "inclusive bounds keep rows two and three",
			filters: domain.FilterSet{PriceRange: &domain.PriceRange{Min: 15, Max: 30}},
			want:    []string{"Dress", "Hat"},
		},
		{
			name:    "full range still excludes missing price",
			filters: domain.FilterSet{PriceRange: &domain.PriceRange{Min: 10, Max: 30}},
			want:    []string{"Shirt", "Dress", "Hat"},
		},
		{
			name:    "range matching nothing",
			filters: domain.FilterSet{PriceRange: &domain.PriceRange{Min: 100, Max: 200}},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(table, tt.filters)
			assert.Equal(t, tt.want, names(t, got))
		})
	}
}

func TestApplyFiltersAbsentColumns(t *testing.T) {
	table := loadTable(t,
		"name,color",
		"Shirt,Red",
		"Hat,Blue",
	)

	// brand and price filters target columns this table does not have
	got := ApplyFilters(table, domain.FilterSet{
		Brand:      "Acme",
		PriceRange: &domain.PriceRange{Min: 0, Max: 1},
	})
	assert.Equal(t, []string{"Shirt", "Hat"}, names(t, got))
}

func TestApplyFiltersIdempotent(t *testing.T) {
	table := productTable(t)
	filters := domain.FilterSet{
		Brand:      "Acme",
		Colors:     []string{"Red", "Blue"},
		PriceRange: &domain.PriceRange{Min: 0, Max: 25},
	}

	once := ApplyFilters(table, filters)
	twice := ApplyFilters(once, filters)
	assert.Equal(t, names(t, once), names(t, twice))
}

func TestApplyFiltersEmptyResultIsValid(t *testing.T) {
	table := productTable(t)

	got := ApplyFilters(table, domain.FilterSet{Brand: "NoSuchBrand"})
	assert.Equal(t, 0, got.RowCount())
	assert.Equal(t, table.Columns, got.Columns)
}
