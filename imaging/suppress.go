package imaging

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Zone is a rectangle expressed as fractions (0..1) of the frame size.
type Zone struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// DefaultZone covers the bottom-right band where the card prints its QR code.
func DefaultZone() Zone {
	return Zone{MinX: 0.60, MinY: 0.80, MaxX: 1.0, MaxY: 1.0}
}

// IsEmpty reports whether the zone covers no area.
func (z Zone) IsEmpty() bool {
	return z.MaxX <= z.MinX || z.MaxY <= z.MinY
}

// Valid reports whether all fractions lie in [0, 1].
func (z Zone) Valid() bool {
	for _, v := range []float64{z.MinX, z.MinY, z.MaxX, z.MaxY} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Rect converts the zone to pixel coordinates within bounds.
func (z Zone) Rect(bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	r := image.Rect(
		bounds.Min.X+int(math.Floor(z.MinX*w)),
		bounds.Min.Y+int(math.Floor(z.MinY*h)),
		bounds.Min.X+int(math.Ceil(z.MaxX*w)),
		bounds.Min.Y+int(math.Ceil(z.MaxY*h)),
	)
	return r.Intersect(bounds)
}

// Suppress returns a copy of img with the zone painted paper white.
// The input image is never modified.
func Suppress(img image.Image, z Zone) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)

	if z.IsEmpty() {
		return dst
	}

	white := image.NewUniform(color.White)
	draw.Draw(dst, z.Rect(dst.Bounds()), white, image.Point{}, draw.Src)
	return dst
}

// Crop returns a copy of the zone's contents.
func Crop(img image.Image, z Zone) *image.RGBA {
	r := z.Rect(img.Bounds())
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}
