// Package config loads tabstat configuration.
//
// # Configuration Sources
//
// Configuration is resolved from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern TABSTAT_<SECTION>_<FIELD>:
//
//	TABSTAT_INPUT_PATH=../P2data5117.csv
//	TABSTAT_INPUT_DELIMITER=tab
//	TABSTAT_SUMMARY_ENABLED=true
//	TABSTAT_DISPLAY_MAX_ROWS=60
//	TABSTAT_LOGGING_LEVEL=debug
//
// TABSTAT_CONFIG_FILE points at an explicit YAML file; otherwise tabstat.yaml
// and configs/tabstat.yaml are tried.
//
// With nothing set, the defaults reproduce the plain batch run: read the
// tab-separated file, print every row and column, skip the summary.
package config
