// Package table holds the in-memory tabular model and the loader that
// builds it from delimited text.
//
// A Table is an ordered set of named columns of equal length. Each column
// has a Dtype inferred once at load time from its full contents:
//
//	Int64    every cell is an integer and none is missing
//	Float64  every present cell is numeric (integers with gaps promote here)
//	Bool     every cell is True/False in one of the usual spellings
//	Object   anything else
//
// Cells are Values, a tagged union of Missing, Int, Float, Text and Bool.
//
// Loading a file:
//
//	loader := table.NewLoader(logger, table.LoadOptions{Delimiter: '\t'})
//	t, report, err := loader.Load(ctx, "../P2data5117.csv")
//
// Load trims whitespace from Object columns before returning; Read parses
// without trimming.
package table
