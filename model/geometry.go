package model

import (
	"image"
	"math"
)

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Rect represents an axis-aligned bounding box in pixel coordinates
type Rect struct {
	X      int // Left
	Y      int // Top (image coordinate system)
	Width  int
	Height int
}

// NewRect creates a bounding box from coordinates
func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// RectFromImage converts an image.Rectangle to a Rect
func RectFromImage(r image.Rectangle) Rect {
	r = r.Canon()
	return Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

// Left returns the left edge X coordinate
func (r Rect) Left() int {
	return r.X
}

// Right returns the X coordinate one past the right edge
func (r Rect) Right() int {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() int {
	return r.Y
}

// Bottom returns the Y coordinate one past the bottom edge
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: float64(r.X) + float64(r.Width)/2,
		Y: float64(r.Y) + float64(r.Height)/2,
	}
}

// Area returns the area of the bounding box
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Aspect returns width divided by height, or 0 for a degenerate box
func (r Rect) Aspect() float64 {
	if r.Height <= 0 {
		return 0
	}
	return float64(r.Width) / float64(r.Height)
}

// Contains checks if a pixel lies inside the bounding box
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left() && x < r.Right() && y >= r.Top() && y < r.Bottom()
}

// ContainsRect checks if other lies entirely inside the bounding box
func (r Rect) ContainsRect(other Rect) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Top() >= r.Top() && other.Bottom() <= r.Bottom()
}

// Intersects checks if two bounding boxes overlap
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// Intersection returns the overlap of two bounding boxes
func (r Rect) Intersection(other Rect) Rect {
	if !r.Intersects(other) {
		return Rect{}
	}
	return RectFromImage(r.Image().Intersect(other.Image()))
}

// Union returns the smallest box containing both boxes
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return RectFromImage(r.Image().Union(other.Image()))
}

// IsEmpty returns true if the bounding box has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Image converts the box to an image.Rectangle
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Scale multiplies position and size by f, rounding to the nearest pixel
func (r Rect) Scale(f float64) Rect {
	return Rect{
		X:      int(math.Round(float64(r.X) * f)),
		Y:      int(math.Round(float64(r.Y) * f)),
		Width:  int(math.Round(float64(r.Width) * f)),
		Height: int(math.Round(float64(r.Height) * f)),
	}
}
