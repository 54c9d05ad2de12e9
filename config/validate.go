package config

import (
	"errors"
	"fmt"

	"github.com/tsawler/omr/logging"
)

// Validate ensures the profile is usable.
func (c *Config) Validate() error {
	if err := c.validateSheet(); err != nil {
		return err
	}
	if err := c.validatePreprocess(); err != nil {
		return err
	}
	if err := c.detector().Validate(); err != nil {
		return fmt.Errorf("detector: %w", err)
	}
	if err := c.layout().Validate(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if err := c.validateScoring(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateSheet() error {
	if c.Sheet.Questions < 0 {
		return errors.New("sheet.questions must not be negative")
	}
	if c.Sheet.Options <= 0 {
		return errors.New("sheet.options must be positive")
	}
	return nil
}

func (c *Config) validatePreprocess() error {
	p := c.Preprocess
	if len(p.Zone) != 0 && len(p.Zone) != 4 {
		return fmt.Errorf("preprocess.zone needs 4 values, got %d", len(p.Zone))
	}
	if z, _ := c.zone(); !z.Valid() {
		return errors.New("preprocess.zone values must lie between 0 and 1")
	}
	if p.CanonicalWidth < 0 {
		return errors.New("preprocess.canonical_width must not be negative")
	}
	if p.BlockSize < 3 || p.BlockSize%2 == 0 {
		return fmt.Errorf("preprocess.block_size must be odd and at least 3, got %d", p.BlockSize)
	}
	switch p.Backend {
	case "mean", "opencv":
	default:
		return fmt.Errorf("preprocess.backend must be mean or opencv, got %q", p.Backend)
	}
	return nil
}

func (c *Config) validateScoring() error {
	switch c.Scoring.Policy {
	case "first-max", "near-tie":
	default:
		return fmt.Errorf("scoring.policy must be first-max or near-tie, got %q", c.Scoring.Policy)
	}
	if c.Scoring.Threshold < 0 {
		return errors.New("scoring.threshold must not be negative")
	}
	if c.Scoring.Ratio < 0 || c.Scoring.Ratio >= 1 {
		return errors.New("scoring.ratio must be in [0, 1)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
}
