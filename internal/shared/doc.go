// Package shared holds helpers used by more than one tabstat package.
//
// The testutil subpackage provides:
//
//	- BufferedSlogHandler, a slog.Handler that records everything it is
//	  given so tests can assert on log output
//	- fixture writers for delimited input files
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteTSV(t, "data.csv", []string{"a", "b"}, []string{"1", "x"})
//	    ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "Table loaded")
//	}
//
// Nothing here may import a domain package.
package shared
