package domain

// Known product columns. All of them are optional in an uploaded file;
// cleaning only touches the ones that are present.
const (
	ColName         = "name"
	ColBrandName    = "brand_name"
	ColCategoryMain = "category_main"
	ColCategorySub  = "category_sub"
	ColColor        = "color"
	ColPricePoint   = "price_point"
	ColAvailability = "availability"
	ColPriceAmount  = "price_amount"
)

// MissingSentinel replaces missing values in the known categorical
// columns during cleaning.
const MissingSentinel = "Unknown"

// CategoricalColumns lists the known categorical columns in cleaning order.
var CategoricalColumns = []string{
	ColBrandName,
	ColCategoryMain,
	ColCategorySub,
	ColColor,
	ColPricePoint,
	ColAvailability,
}

// CellKind discriminates the value held by a Cell.
type CellKind uint8

const (
	// CellMissing marks an absent value: an empty CSV field, a short
	// spreadsheet row, or a price that failed numeric coercion.
	CellMissing CellKind = iota
	// CellText holds a categorical or free-form string value.
	CellText
	// CellNumber holds a coerced numeric value.
	CellNumber
)

// Cell is a single table value.
type Cell struct {
	Kind   CellKind
	Text   string
	Number float64
}

// IsMissing reports whether the cell holds no value.
func (c Cell) IsMissing() bool { return c.Kind == CellMissing }

// TextCell creates a text cell.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell creates a numeric cell.
func NumberCell(v float64) Cell { return Cell{Kind: CellNumber, Number: v} }

// MissingCell is the zero cell.
func MissingCell() Cell { return Cell{Kind: CellMissing} }

// Table is an ordered sequence of rows over an ordered column list.
// Each row is aligned with Columns; Rows[i][j] is the value of column
// Columns[j] in row i. Tables are treated as immutable once built:
// filtering produces a new Table sharing row slices with its input.
type Table struct {
	Columns []string
	Rows    [][]Cell
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	if t == nil {
		return -1
	}
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Cell returns the value at (row, column). The second return is false
// when the column does not exist.
func (t *Table) Cell(row int, column string) (Cell, bool) {
	idx := t.ColumnIndex(column)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return Cell{}, false
	}
	return t.Rows[row][idx], true
}

// Subset returns a new table containing the given rows in order.
// Row slices are shared with the receiver, never copied.
func (t *Table) Subset(rows []int) *Table {
	sub := &Table{Columns: t.Columns, Rows: make([][]Cell, 0, len(rows))}
	for _, i := range rows {
		sub.Rows = append(sub.Rows, t.Rows[i])
	}
	return sub
}
