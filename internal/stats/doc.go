// Package stats computes describe-style summaries of numeric table columns.
//
// A Summary has one column per numeric input column and eight rows, in
// order: count, mean, std, min, 25%, 50%, 75%, max. Missing cells are
// dropped per column before anything is computed, so each column has its
// own sample size. A column with no values has count 0 and NaN
// everywhere else; std is NaN below two values.
package stats
