package imaging

import (
	"image"

	"github.com/sunshineplan/imgconv"
)

// DefaultCanonicalWidth is the width all size thresholds are calibrated for.
const DefaultCanonicalWidth = 1200

// Rescale shrinks img to the given width when it is wider, preserving the
// aspect ratio. It returns the image and the scale factor applied (1 when the
// image was left alone). Images are never enlarged.
func Rescale(img image.Image, width int) (image.Image, float64) {
	b := img.Bounds()
	if width <= 0 || b.Dx() <= width {
		return img, 1
	}

	scale := float64(width) / float64(b.Dx())
	height := int(float64(b.Dy())*scale + 0.5)
	if height < 1 {
		height = 1
	}

	return imgconv.Resize(img, &imgconv.ResizeOption{Width: width, Height: height}), scale
}
