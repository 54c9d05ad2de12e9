// Package model provides the geometric types shared by the scanning stages.
//
// All coordinates are in image space: the origin is the top-left pixel, X
// grows to the right and Y grows downward. Rectangles are half-open, so a
// [Rect] with Width 10 covers columns X through X+9.
//
// # Geometry
//
//   - [Point] - 2D point with distance calculation
//   - [Rect] - integer bounding box with intersection, union and aspect ratio
//
// # Regions
//
// A [Region] is a connected blob of ink found on a binarized sheet. Besides
// its bounding box it carries the filled outline of the blob as one [Span]
// per scanline, which is what the mark scorer counts ink inside.
package model
