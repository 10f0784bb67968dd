package dataprocessing

import (
	"sort"
	"strings"

	"stylelens/pkg/contracts/domain"
)

// Every view builder in this file is a pure function of its input
// table; none of them mutate it, and nothing is cached between calls.
//
// Ordering rule for frequency and grouped-mean tables: descending by
// the primary metric, ties broken by first-encountered row order in
// the underlying grouping pass (stable sort over first-seen buckets).

// Summarize computes the scalar summary over a table: row count,
// distinct brand count, mean price, and the number of rows whose
// availability value contains "in stock" case-insensitively.
// AveragePrice is nil when no numeric price values exist, including
// when the price_amount column is absent entirely.
func Summarize(t *domain.Table) domain.ScalarSummary {
	summary := domain.ScalarSummary{TotalProducts: t.RowCount()}

	if idx := t.ColumnIndex(domain.ColBrandName); idx >= 0 {
		brands := make(map[string]struct{})
		for _, row := range t.Rows {
			if c := row[idx]; c.Kind == domain.CellText {
				brands[c.Text] = struct{}{}
			}
		}
		summary.UniqueBrands = len(brands)
	}

	if idx := t.ColumnIndex(domain.ColPriceAmount); idx >= 0 {
		var sum float64
		var n int
		for _, row := range t.Rows {
			if c := row[idx]; c.Kind == domain.CellNumber {
				sum += c.Number
				n++
			}
		}
		if n > 0 {
			mean := sum / float64(n)
			summary.AveragePrice = &mean
		}
	}

	if idx := t.ColumnIndex(domain.ColAvailability); idx >= 0 {
		for _, row := range t.Rows {
			c := row[idx]
			if c.Kind == domain.CellText && strings.Contains(strings.ToLower(c.Text), "in stock") {
				summary.InStockCount++
			}
		}
	}

	return summary
}

// ValueCounts computes the frequency table of a categorical column,
// descending by count. Missing cells are skipped. A positive topK
// truncates the result; topK <= 0 returns every bucket. Returns nil
// when the column is absent.
func ValueCounts(t *domain.Table, column string, topK int) []domain.CountBucket {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, row := range t.Rows {
		c := row[idx]
		if c.Kind != domain.CellText {
			continue
		}
		if _, seen := counts[c.Text]; !seen {
			order = append(order, c.Text)
		}
		counts[c.Text]++
	}

	buckets := make([]domain.CountBucket, 0, len(order))
	for _, v := range order {
		buckets = append(buckets, domain.CountBucket{Value: v, Count: counts[v]})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Count > buckets[j].Count
	})

	if topK > 0 && len(buckets) > topK {
		buckets = buckets[:topK]
	}
	return buckets
}

// GroupedMeanPrice computes the mean price_amount per distinct value
// of a categorical column, descending by mean. Rows with a missing
// price contribute nothing; groups left with no numeric prices are
// omitted, since their mean is undefined. Returns nil when either
// column is absent.
func GroupedMeanPrice(t *domain.Table, column string, topK int) []domain.MeanBucket {
	groupIdx := t.ColumnIndex(column)
	priceIdx := t.ColumnIndex(domain.ColPriceAmount)
	if groupIdx < 0 || priceIdx < 0 {
		return nil
	}

	type acc struct {
		sum   float64
		count int
	}
	groups := make(map[string]*acc)
	order := make([]string, 0)
	for _, row := range t.Rows {
		g := row[groupIdx]
		if g.Kind != domain.CellText {
			continue
		}
		p := row[priceIdx]
		if p.Kind != domain.CellNumber {
			continue
		}
		a, ok := groups[g.Text]
		if !ok {
			a = &acc{}
			groups[g.Text] = a
			order = append(order, g.Text)
		}
		a.sum += p.Number
		a.count++
	}

	buckets := make([]domain.MeanBucket, 0, len(order))
	for _, v := range order {
		a := groups[v]
		buckets = append(buckets, domain.MeanBucket{
			Value: v,
			Mean:  a.sum / float64(a.count),
			Count: a.count,
		})
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Mean > buckets[j].Mean
	})

	if topK > 0 && len(buckets) > topK {
		buckets = buckets[:topK]
	}
	return buckets
}

// CrossTabulate builds the two-dimensional count table over two
// categorical columns. Only rows with both values non-missing
// contribute, so the sum over all cells equals the count of such rows.
// Axis labels are sorted ascending; combinations absent from the data
// hold zero. Returns nil when either column is absent.
func CrossTabulate(t *domain.Table, rowColumn, colColumn string) *domain.CrossTab {
	rowIdx := t.ColumnIndex(rowColumn)
	colIdx := t.ColumnIndex(colColumn)
	if rowIdx < 0 || colIdx < 0 {
		return nil
	}

	type pair struct{ r, c string }
	counts := make(map[pair]int)
	rowSet := make(map[string]struct{})
	colSet := make(map[string]struct{})
	for _, row := range t.Rows {
		r, c := row[rowIdx], row[colIdx]
		if r.Kind != domain.CellText || c.Kind != domain.CellText {
			continue
		}
		rowSet[r.Text] = struct{}{}
		colSet[c.Text] = struct{}{}
		counts[pair{r.Text, c.Text}]++
	}

	ct := &domain.CrossTab{
		RowColumn: rowColumn,
		ColColumn: colColumn,
		RowValues: sortedKeys(rowSet),
		ColValues: sortedKeys(colSet),
	}
	ct.Counts = make([][]int, len(ct.RowValues))
	for i, rv := range ct.RowValues {
		ct.Counts[i] = make([]int, len(ct.ColValues))
		for j, cv := range ct.ColValues {
			ct.Counts[i][j] = counts[pair{rv, cv}]
		}
	}
	return ct
}

// RollupCategories builds the hierarchical rollup: one node per
// category_main value holding its per-price_point breakdown. A parent
// count is the sum of its child counts, the invariant required for
// nested renderings (sunburst, treemap). Node order and child order
// follow first appearance in the table. Returns nil when either
// column is absent.
func RollupCategories(t *domain.Table) []domain.RollupNode {
	catIdx := t.ColumnIndex(domain.ColCategoryMain)
	ppIdx := t.ColumnIndex(domain.ColPricePoint)
	if catIdx < 0 || ppIdx < 0 {
		return nil
	}

	type child struct {
		order []string
		count map[string]int
	}
	children := make(map[string]*child)
	catOrder := make([]string, 0)
	for _, row := range t.Rows {
		cat, pp := row[catIdx], row[ppIdx]
		if cat.Kind != domain.CellText || pp.Kind != domain.CellText {
			continue
		}
		ch, ok := children[cat.Text]
		if !ok {
			ch = &child{count: make(map[string]int)}
			children[cat.Text] = ch
			catOrder = append(catOrder, cat.Text)
		}
		if _, seen := ch.count[pp.Text]; !seen {
			ch.order = append(ch.order, pp.Text)
		}
		ch.count[pp.Text]++
	}

	nodes := make([]domain.RollupNode, 0, len(catOrder))
	for _, cat := range catOrder {
		ch := children[cat]
		node := domain.RollupNode{Value: cat}
		for _, pp := range ch.order {
			node.Children = append(node.Children, domain.CountBucket{Value: pp, Count: ch.count[pp]})
			node.Count += ch.count[pp]
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// JointAggregateByCategory computes, for every (category_main,
// price_point) pair present in the data, both the row count and the
// mean price within the pair. MeanPrice is nil for pairs with no
// numeric prices and when price_amount is absent. Pair order follows
// first appearance. Returns nil when either grouping column is absent.
func JointAggregateByCategory(t *domain.Table) []domain.JointBucket {
	catIdx := t.ColumnIndex(domain.ColCategoryMain)
	ppIdx := t.ColumnIndex(domain.ColPricePoint)
	if catIdx < 0 || ppIdx < 0 {
		return nil
	}
	priceIdx := t.ColumnIndex(domain.ColPriceAmount)

	type key struct{ cat, pp string }
	type acc struct {
		count    int
		priceSum float64
		priceN   int
	}
	groups := make(map[key]*acc)
	order := make([]key, 0)
	for _, row := range t.Rows {
		cat, pp := row[catIdx], row[ppIdx]
		if cat.Kind != domain.CellText || pp.Kind != domain.CellText {
			continue
		}
		k := key{cat.Text, pp.Text}
		a, ok := groups[k]
		if !ok {
			a = &acc{}
			groups[k] = a
			order = append(order, k)
		}
		a.count++
		if priceIdx >= 0 {
			if p := row[priceIdx]; p.Kind == domain.CellNumber {
				a.priceSum += p.Number
				a.priceN++
			}
		}
	}

	buckets := make([]domain.JointBucket, 0, len(order))
	for _, k := range order {
		a := groups[k]
		b := domain.JointBucket{CategoryMain: k.cat, PricePoint: k.pp, Count: a.count}
		if a.priceN > 0 {
			mean := a.priceSum / float64(a.priceN)
			b.MeanPrice = &mean
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// PriceHistogram bins the non-missing price_amount values into the
// given number of equal-width bins spanning [min, max]. The last bin
// is closed on both ends. Returns nil when there are no numeric
// values, when the column is absent, or when bins is not positive.
func PriceHistogram(t *domain.Table, bins int) []domain.HistogramBin {
	idx := t.ColumnIndex(domain.ColPriceAmount)
	if idx < 0 || bins <= 0 {
		return nil
	}

	values := make([]float64, 0, t.RowCount())
	for _, row := range t.Rows {
		if c := row[idx]; c.Kind == domain.CellNumber {
			values = append(values, c.Number)
		}
	}
	if len(values) == 0 {
		return nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []domain.HistogramBin{{Low: min, High: max, Count: len(values)}}
	}

	width := (max - min) / float64(bins)
	result := make([]domain.HistogramBin, bins)
	for i := range result {
		result[i].Low = min + float64(i)*width
		result[i].High = min + float64(i+1)*width
	}
	result[bins-1].High = max

	for _, v := range values {
		i := int((v - min) / width)
		if i >= bins {
			i = bins - 1
		}
		result[i].Count++
	}
	return result
}

// PriceBounds returns the minimum and maximum numeric price in the
// table. ok is false when no numeric value exists.
func PriceBounds(t *domain.Table) (min, max float64, ok bool) {
	idx := t.ColumnIndex(domain.ColPriceAmount)
	if idx < 0 {
		return 0, 0, false
	}
	for _, row := range t.Rows {
		c := row[idx]
		if c.Kind != domain.CellNumber {
			continue
		}
		if !ok {
			min, max, ok = c.Number, c.Number, true
			continue
		}
		if c.Number < min {
			min = c.Number
		}
		if c.Number > max {
			max = c.Number
		}
	}
	return min, max, ok
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
