package model

// Span is one scanline of a filled region, from X0 to X1 inclusive
type Span struct {
	Y  int
	X0 int
	X1 int
}

// Len returns the number of pixels covered by the span
func (s Span) Len() int {
	return s.X1 - s.X0 + 1
}

// Region is a connected blob of ink on a binarized sheet
type Region struct {
	// Rect is the bounding box of the blob
	Rect Rect

	// Pixels is the number of ink pixels that belong to the blob itself
	Pixels int

	// Spans is the filled outline of the blob, one entry per scanline
	// (sorted top to bottom). Holes inside the outline are included.
	Spans []Span
}

// X returns the left edge of the region
func (r Region) X() int {
	return r.Rect.X
}

// Y returns the top edge of the region
func (r Region) Y() int {
	return r.Rect.Y
}

// FilledArea returns the number of pixels inside the filled outline
func (r Region) FilledArea() int {
	total := 0
	for _, s := range r.Spans {
		total += s.Len()
	}
	return total
}

// Fill returns the fraction of the bounding box covered by the blob's own pixels
func (r Region) Fill() float64 {
	area := r.Rect.Area()
	if area == 0 {
		return 0
	}
	return float64(r.Pixels) / float64(area)
}

// RectRegion builds a region whose outline is its full bounding box.
// It is mostly useful for tests and for callers that only know boxes.
func RectRegion(x, y, width, height int) Region {
	spans := make([]Span, 0, height)
	for row := y; row < y+height; row++ {
		spans = append(spans, Span{Y: row, X0: x, X1: x + width - 1})
	}
	return Region{
		Rect:   NewRect(x, y, width, height),
		Pixels: width * height,
		Spans:  spans,
	}
}
