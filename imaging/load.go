package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/sunshineplan/imgconv"

	"github.com/tsawler/omr/format"
)

// ErrInvalidImage is returned when the input cannot be decoded as a raster image.
var ErrInvalidImage = errors.New("invalid image")

// Load decodes raw image bytes (JPEG, PNG, GIF, BMP, TIFF or WEBP).
func Load(data []byte) (image.Image, format.Format, error) {
	if len(data) == 0 {
		return nil, format.Unknown, fmt.Errorf("%w: empty input", ErrInvalidImage)
	}

	f := format.DetectFromMagic(data)
	if !f.IsSupported() {
		return nil, format.Unknown, fmt.Errorf("%w: unrecognized format", ErrInvalidImage)
	}

	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, f, fmt.Errorf("%w: decode %s: %v", ErrInvalidImage, f, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, f, fmt.Errorf("%w: zero-sized %s", ErrInvalidImage, f)
	}

	return img, f, nil
}

// Open reads and decodes an image file.
func Open(path string) (image.Image, format.Format, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, format.Unknown, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return Load(data)
}
