// Package app wires the tabstat pipeline together.
//
// A run is linear and single-threaded:
//
//	1. Load the input file and trim text columns
//	2. Print the cleaned table
//	3. If enabled, summarize numeric columns and print the summary
//	4. If configured, export both to an Excel workbook
//	5. If configured, write collected metrics to a Prometheus textfile
//
// Each stage runs inside its own span and records its duration. The first
// failing stage ends the run and its error is returned unchanged, so
// callers can inspect its type with the errors package predicates.
//
// # Usage
//
//	p, err := app.New(cfg, logger, os.Stdout, telemetry)
//	if err != nil {
//	    return err
//	}
//	if _, err := p.Run(ctx); err != nil {
//	    return err
//	}
//
// The package never calls os.Exit; cmd/tabstat owns the exit code.
package app
