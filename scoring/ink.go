package scoring

import (
	"image"

	"github.com/tsawler/omr/model"
)

// InkCount returns the number of ink pixels of bin inside the region's
// filled outline. Regions without spans are measured over their bounding box.
func InkCount(bin *image.Gray, region model.Region) int {
	b := bin.Bounds()
	if len(region.Spans) == 0 {
		return inkInRect(bin, region.Rect.Image().Intersect(b))
	}

	n := 0
	for _, s := range region.Spans {
		if s.Y < b.Min.Y || s.Y >= b.Max.Y {
			continue
		}
		x0, x1 := max(s.X0, b.Min.X), min(s.X1, b.Max.X-1)
		if x0 > x1 {
			continue
		}
		off := bin.PixOffset(x0, s.Y)
		for _, v := range bin.Pix[off : off+x1-x0+1] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

func inkInRect(bin *image.Gray, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := bin.PixOffset(r.Min.X, y)
		for _, v := range bin.Pix[off : off+r.Dx()] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
