package config

// Application constants
const (
	AppName    = "tabstat"
	AppVersion = "1.0.0"

	// EnvPrefix namespaces every environment variable, e.g. TABSTAT_INPUT_PATH
	EnvPrefix = "TABSTAT"

	// Input defaults: the tab-separated data file one directory up
	DefaultInputPath = "../P2data5117.csv"
	DefaultDelimiter = "\t"

	DefaultFloatPrecision = 6
	DefaultLogFile        = "logs/tabstat.log"
)

// DefaultConfigLocations are searched in order when TABSTAT_CONFIG_FILE is unset
var DefaultConfigLocations = []string{
	"tabstat.yaml",
	"configs/tabstat.yaml",
}
