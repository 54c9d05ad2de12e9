package imaging

import (
	"image"
	"math"
	"sort"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/tsawler/omr/model"
)

// DeskewConfig controls fiducial-based rotation correction.
type DeskewConfig struct {
	// Enabled turns the step on. Default: false
	Enabled bool

	// MinMarker and MaxMarker bound the side of a fiducial square in pixels.
	MinMarker int
	MaxMarker int

	// MinFill is the fraction of the bounding box a marker must cover (solid squares ~1.0,
	// filled circles ~0.78).
	MinFill float64

	// TopBand is the fraction of the image height searched for the top markers.
	TopBand float64

	// MinAngle is the smallest skew (degrees) worth correcting.
	MinAngle float64

	// MaxAngle is the largest skew (degrees) trusted; beyond it the markers are
	// assumed to be misdetected.
	MaxAngle float64
}

// DefaultDeskewConfig returns sensible defaults for the printed card.
func DefaultDeskewConfig() DeskewConfig {
	return DeskewConfig{
		Enabled:   false,
		MinMarker: 16,
		MaxMarker: 120,
		MinFill:   0.9,
		TopBand:   0.3,
		MinAngle:  0.3,
		MaxAngle:  15,
	}
}

// Markers returns the regions that look like solid fiducial squares.
func (c DeskewConfig) Markers(regions []model.Region) []model.Region {
	var out []model.Region
	for _, r := range regions {
		w, h := r.Rect.Width, r.Rect.Height
		if w < c.MinMarker || h < c.MinMarker || w > c.MaxMarker || h > c.MaxMarker {
			continue
		}
		if a := r.Rect.Aspect(); a < 0.8 || a > 1.25 {
			continue
		}
		if r.Fill() < c.MinFill {
			continue
		}
		out = append(out, r)
	}
	return out
}

// SkewAngle estimates the sheet rotation in degrees from the two outermost
// markers in the top band. Positive means the right side sits lower.
// ok is false when no usable marker pair exists.
func (c DeskewConfig) SkewAngle(regions []model.Region, bounds image.Rectangle) (angle float64, ok bool) {
	markers := c.Markers(regions)

	limit := float64(bounds.Min.Y) + c.TopBand*float64(bounds.Dy())
	var top []model.Region
	for _, m := range markers {
		if m.Rect.Center().Y <= limit {
			top = append(top, m)
		}
	}
	if len(top) < 2 {
		return 0, false
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Rect.Center().X < top[j].Rect.Center().X
	})

	left := top[0].Rect.Center()
	right := top[len(top)-1].Rect.Center()
	dx := right.X - left.X
	if dx < float64(bounds.Dx())/2 {
		return 0, false
	}

	angle = math.Atan2(right.Y-left.Y, dx) * 180 / math.Pi
	if math.Abs(angle) > c.MaxAngle {
		return angle, false
	}
	return angle, true
}

// Deskew rotates bin so the top markers become level. It returns the input
// unchanged (and applied=false) when the step is disabled, the markers are
// not found, or the skew is below MinAngle.
func Deskew(bin *image.Gray, regions []model.Region, cfg DeskewConfig) (out *image.Gray, angle float64, applied bool) {
	if !cfg.Enabled {
		return bin, 0, false
	}

	angle, ok := cfg.SkewAngle(regions, bin.Bounds())
	if !ok || math.Abs(angle) < cfg.MinAngle {
		return bin, angle, false
	}

	return Rotate(bin, -angle), angle, true
}

// Rotate turns src by the given angle (degrees, clockwise on screen) around
// its centre. Uncovered pixels become paper.
func Rotate(src *image.Gray, degrees float64) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(b)

	rad := degrees * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx := float64(b.Min.X) + float64(b.Dx())/2
	cy := float64(b.Min.Y) + float64(b.Dy())/2

	// Maps source coordinates to destination coordinates.
	m := f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
	draw.NearestNeighbor.Transform(dst, m, src, b, draw.Src, nil)
	return dst
}
