package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/tsawler/omr"
	"github.com/tsawler/omr/config"
)

type globalFlags struct {
	profile   string
	logLevel  string
	logFormat string
}

type commandContext struct {
	flags *globalFlags

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(strings.TrimSpace(c.flags.profile))
		if err != nil {
			c.configErr = err
			return
		}
		if v := strings.TrimSpace(c.flags.logLevel); v != "" {
			cfg.Logging.Level = strings.ToLower(v)
		}
		if v := strings.TrimSpace(c.flags.logFormat); v != "" {
			cfg.Logging.Format = strings.ToLower(v)
		}
		if err := cfg.Validate(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

// scanner builds a scanner for the loaded profile, logging to w.
func (c *commandContext) scanner(w io.Writer) (*omr.Scanner, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	logger, err := cfg.Logger(w)
	if err != nil {
		return nil, nil, err
	}

	avail := omr.Probe(cfg.Preprocess.Backend)
	if !avail.Ready() {
		return nil, nil, &unavailableError{reason: avail.Reason()}
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts, omr.WithLogger(logger))

	return omr.New(avail, opts...), logger, nil
}

type unavailableError struct {
	reason string
}

func (e *unavailableError) Error() string {
	return "scanner unavailable: " + e.reason
}

func (e *unavailableError) Unwrap() error {
	return omr.ErrUnavailable
}
