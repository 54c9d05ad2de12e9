package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.Preprocess.Backend = strings.ToLower(strings.TrimSpace(c.Preprocess.Backend))
	c.Scoring.Policy = strings.ToLower(strings.TrimSpace(c.Scoring.Policy))
	c.normalizeLogging()
}

func (c *Config) normalizeLogging() {
	if value, ok := os.LookupEnv("OMR_LOG_LEVEL"); ok {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "text":
		c.Logging.Format = "console"
	}
}
