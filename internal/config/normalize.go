package config

import "strings"

func (c *Config) normalize() {
	c.Repository.Layout = strings.ToLower(strings.TrimSpace(c.Repository.Layout))
	c.Repository.BookDir = strings.Trim(strings.TrimSpace(c.Repository.BookDir), "/")

	c.Report.Color = strings.ToLower(strings.TrimSpace(c.Report.Color))
	if c.Report.Color == "" {
		c.Report.Color = defaultReportColor
	}

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
}
