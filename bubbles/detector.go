package bubbles

import (
	"errors"
	"fmt"
	"image"

	"github.com/tsawler/omr/model"
)

// ErrNoRegions is returned when no blob passes the shape filter.
var ErrNoRegions = errors.New("no marks detected")

// Config holds the bubble shape filter. All bounds are inclusive and in
// canonical pixels.
type Config struct {
	// MinSize and MaxSize bound both width and height.
	// Default: 14 and 80
	MinSize int
	MaxSize int

	// MinAspect and MaxAspect bound width/height.
	// Default: 0.55 and 1.45
	MinAspect float64
	MaxAspect float64

	// ExternalOnly drops blobs enclosed by another blob. Default: true
	ExternalOnly bool
}

// DefaultConfig returns the filter calibrated for the canonical width.
func DefaultConfig() Config {
	return Config{
		MinSize:      14,
		MaxSize:      80,
		MinAspect:    0.55,
		MaxAspect:    1.45,
		ExternalOnly: true,
	}
}

// Validate checks the filter bounds.
func (c Config) Validate() error {
	if c.MinSize <= 0 || c.MaxSize < c.MinSize {
		return fmt.Errorf("bubble size range [%d, %d] is invalid", c.MinSize, c.MaxSize)
	}
	if c.MinAspect <= 0 || c.MaxAspect < c.MinAspect {
		return fmt.Errorf("bubble aspect range [%g, %g] is invalid", c.MinAspect, c.MaxAspect)
	}
	return nil
}

// WithDefaults returns c with every unset (zero or negative) bound taken
// from DefaultConfig. ExternalOnly is kept as given.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.MinSize <= 0 {
		c.MinSize = def.MinSize
	}
	if c.MaxSize <= 0 {
		c.MaxSize = def.MaxSize
	}
	if c.MinAspect <= 0 {
		c.MinAspect = def.MinAspect
	}
	if c.MaxAspect <= 0 {
		c.MaxAspect = def.MaxAspect
	}
	return c
}

// Accepts reports whether a bounding box looks like a bubble.
func (c Config) Accepts(r model.Rect) bool {
	if r.Width < c.MinSize || r.Width > c.MaxSize {
		return false
	}
	if r.Height < c.MinSize || r.Height > c.MaxSize {
		return false
	}
	aspect := r.Aspect()
	return aspect >= c.MinAspect && aspect <= c.MaxAspect
}

// Detector finds bubble candidates on a binarized sheet
type Detector struct {
	config Config
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return &Detector{config: DefaultConfig()}
}

// NewDetectorWithConfig creates a detector with custom configuration. Unset
// bounds take their defaults.
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{config: config.WithDefaults()}
}

// Config returns the detector configuration
func (d *Detector) Config() Config {
	return d.config
}

// Filter keeps the regions that pass the shape filter. Order is preserved.
func (d *Detector) Filter(regions []model.Region) []model.Region {
	var out []model.Region
	for _, r := range regions {
		if d.config.Accepts(r.Rect) {
			out = append(out, r)
		}
	}
	return out
}

// Detect labels bin and returns the bubble candidates. It returns
// ErrNoRegions when nothing qualifies.
func (d *Detector) Detect(bin *image.Gray) ([]model.Region, error) {
	candidates := d.Filter(Components(bin, d.config.ExternalOnly))
	if len(candidates) == 0 {
		return nil, ErrNoRegions
	}
	return candidates, nil
}
