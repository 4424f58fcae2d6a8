package config

const (
	defaultReportColor = "auto"
	defaultLogFormat   = "text"
	defaultLogLevel    = "info"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Report: Report{
			Color: defaultReportColor,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
