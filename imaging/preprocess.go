package imaging

import (
	"fmt"
	"image"
)

// Config controls the preprocessing steps.
type Config struct {
	// Zone is painted white before anything else. An empty zone disables suppression.
	Zone Zone

	// CanonicalWidth is the maximum working width. Default: 1200
	CanonicalWidth int

	// Binarizer converts the grayscale sheet to ink/paper. Default: MeanThreshold{41, 10}
	Binarizer Binarizer
}

// DefaultConfig returns the preprocessing defaults.
func DefaultConfig() Config {
	return Config{
		Zone:           DefaultZone(),
		CanonicalWidth: DefaultCanonicalWidth,
		Binarizer:      DefaultMeanThreshold(),
	}
}

// Sheet is a preprocessed answer sheet.
type Sheet struct {
	// Binary is the inverted binary image (ink = 255) at canonical scale.
	Binary *image.Gray

	// Scale is the factor applied to the source (canonical / original).
	Scale float64

	// Source is the bounds of the original photo.
	Source image.Rectangle
}

// Preprocess suppresses the identifier zone, rescales and binarizes img.
func Preprocess(img image.Image, cfg Config) (*Sheet, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	src := img.Bounds()
	if src.Dx() == 0 || src.Dy() == 0 {
		return nil, fmt.Errorf("%w: zero-sized image", ErrInvalidImage)
	}

	binarizer := cfg.Binarizer
	if binarizer == nil {
		binarizer = DefaultMeanThreshold()
	}

	// Suppression must happen at full resolution, before rescaling.
	masked := Suppress(img, cfg.Zone)
	scaled, scale := Rescale(masked, cfg.CanonicalWidth)
	gray := Grayscale(scaled)

	bin, err := binarizer.Binarize(gray)
	if err != nil {
		return nil, fmt.Errorf("binarize (%s): %w", binarizer.Name(), err)
	}

	return &Sheet{Binary: bin, Scale: scale, Source: src}, nil
}
