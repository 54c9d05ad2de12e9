package config

import (
	"github.com/tsawler/omr/bubbles"
	"github.com/tsawler/omr/imaging"
	"github.com/tsawler/omr/layout"
	"github.com/tsawler/omr/scoring"
)

// Default returns the profile of the standard printed card.
func Default() Config {
	zone := imaging.DefaultZone()
	mean := imaging.DefaultMeanThreshold()
	det := bubbles.DefaultConfig()
	lay := layout.DefaultConfig()
	nearTie := scoring.DefaultNearTie()

	return Config{
		Sheet: Sheet{
			Options: lay.Options,
		},
		Preprocess: Preprocess{
			Zone:           []float64{zone.MinX, zone.MinY, zone.MaxX, zone.MaxY},
			CanonicalWidth: imaging.DefaultCanonicalWidth,
			Backend:        imaging.BackendMean,
			BlockSize:      mean.BlockSize,
			Bias:           mean.Bias,
		},
		Detector: Detector{
			MinSize:      det.MinSize,
			MaxSize:      det.MaxSize,
			MinAspect:    det.MinAspect,
			MaxAspect:    det.MaxAspect,
			ExternalOnly: det.ExternalOnly,
		},
		Layout: Layout{
			ColumnThreshold: lay.ColumnThreshold,
			RowTolerance:    lay.RowTolerance,
			MinOptions:      lay.MinOptions,
		},
		Scoring: Scoring{
			Policy:    "first-max",
			Threshold: scoring.DefaultThreshold,
			Ratio:     nearTie.Ratio,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
	}
}
