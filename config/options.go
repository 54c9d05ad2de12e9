package config

import (
	"io"
	"log/slog"

	"github.com/tsawler/omr"
	"github.com/tsawler/omr/bubbles"
	"github.com/tsawler/omr/imaging"
	"github.com/tsawler/omr/layout"
	"github.com/tsawler/omr/logging"
	"github.com/tsawler/omr/scoring"
)

// Options converts the profile into scanner options. It fails when the
// configured binarizer backend is not compiled in.
func (c *Config) Options() ([]omr.Option, error) {
	binarizer, err := imaging.NewBinarizer(c.Preprocess.Backend, c.Preprocess.BlockSize, c.Preprocess.Bias)
	if err != nil {
		return nil, err
	}
	policy, err := scoring.NewPolicy(c.Scoring.Policy, c.Scoring.Threshold, c.Scoring.Ratio)
	if err != nil {
		return nil, err
	}

	zone, _ := c.zone()
	deskew := imaging.DefaultDeskewConfig()
	deskew.Enabled = c.Preprocess.Deskew

	return []omr.Option{
		omr.WithZone(zone),
		omr.WithCanonicalWidth(c.Preprocess.CanonicalWidth),
		omr.WithBinarizer(binarizer),
		omr.WithDeskew(deskew),
		omr.WithDetector(c.detector()),
		omr.WithLayout(c.layout()),
		omr.WithPolicy(policy),
		omr.WithOCRFallback(c.Identifier.OCRFallback),
	}, nil
}

// Request returns the per-sheet request described by the [sheet] section.
func (c *Config) Request() omr.Request {
	return omr.Request{Questions: c.Sheet.Questions, Options: c.Sheet.Options}
}

// Logger builds the logger described by the [logging] section.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  c.Logging.Level,
		Format: c.Logging.Format,
		Output: w,
	})
}

// zone returns the blanked zone; ok is false when none is configured.
func (c *Config) zone() (imaging.Zone, bool) {
	z := c.Preprocess.Zone
	if len(z) != 4 {
		return imaging.Zone{}, false
	}
	return imaging.Zone{MinX: z[0], MinY: z[1], MaxX: z[2], MaxY: z[3]}, true
}

func (c *Config) detector() bubbles.Config {
	return bubbles.Config{
		MinSize:      c.Detector.MinSize,
		MaxSize:      c.Detector.MaxSize,
		MinAspect:    c.Detector.MinAspect,
		MaxAspect:    c.Detector.MaxAspect,
		ExternalOnly: c.Detector.ExternalOnly,
	}
}

func (c *Config) layout() layout.Config {
	return layout.Config{
		ColumnThreshold:     c.Layout.ColumnThreshold,
		RowTolerance:        c.Layout.RowTolerance,
		Options:             c.Sheet.Options,
		MinOptions:          c.Layout.MinOptions,
		LeftColumnQuestions: c.Layout.LeftColumnQuestions,
	}
}
