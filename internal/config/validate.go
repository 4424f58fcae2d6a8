package config

import (
	"fmt"
	"strings"

	"texrepo/internal/layout"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRepository(); err != nil {
		return err
	}
	if err := c.validateReport(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRepository() error {
	if c.Repository.Layout != "" {
		if _, ok := layout.FromName(c.Repository.Layout); !ok {
			return fmt.Errorf("repository.layout %q is not a known layout", c.Repository.Layout)
		}
	}
	if strings.Contains(c.Repository.BookDir, "/") {
		return fmt.Errorf("repository.book_dir must be a top-level directory name, got %q", c.Repository.BookDir)
	}
	return nil
}

func (c *Config) validateReport() error {
	switch c.Report.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("report.color must be auto, always, or never, got %q", c.Report.Color)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not a valid log level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	return nil
}
