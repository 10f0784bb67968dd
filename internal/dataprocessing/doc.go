// Package dataprocessing implements the analytics core of the dashboard:
// loading, cleaning, filtering, and aggregating fashion product tables.
//
// # Architecture
//
// The package is organized as a one-way pipeline:
//
//	raw bytes → Parser → Cleaner → Filter Engine → View Builder → Report
//
// 1. Parser: reads CSV or XLSX bytes into a domain.Table
// 2. Cleaner: coerces price_amount to numeric and fills missing
//    categorical values with the "Unknown" sentinel
// 3. Filter Engine: derives the row subset satisfying a FilterSet
// 4. View Builder: computes the aggregate views (counts, grouped means,
//    cross-tabulations, rollups) handed to the chart renderer
//
// # Usage
//
// The whole pipeline is a pure function and is invoked the same way
// from HTTP handlers, the CLI, and tests:
//
//	table, err := dataprocessing.ParseCSV(file)
//	if err != nil {
//	    // load error: no partial table is ever returned
//	}
//	report := dataprocessing.BuildReport(table, filters, dataprocessing.DefaultReportOptions())
//
// # Error Handling
//
// Only parsing can fail; a malformed upload yields a *LoadError and no
// table. Everything downstream substitutes sentinels for missing data
// and treats a zero-row filtered table as a valid, non-error outcome.
package dataprocessing
