package config

// this holds the resolved configuration values from CLI
var (
	LogLevel  string // sets the log level (zap log level values)
	LogFormat string // text vs json
	LogFilter string // zapfilter rules for namespace-scoped debugging
	TrackFile string // path to a track JSON file, empty means built-in oval
)
