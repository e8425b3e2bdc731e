// Package exporter writes tables and summaries to Excel workbooks.
//
// A workbook has a "data" sheet holding the cleaned table with typed cells
// and, when a summary is given, a "summary" sheet with one row per
// statistic. Missing values are left as empty cells.
//
// Example usage:
//
//	exp := exporter.NewWorkbookExporter(logger)
//	err := exp.Export(ctx, "out/report.xlsx", tbl, summary)
package exporter
