package bubbles

import (
	"image"
	"sort"

	"github.com/tsawler/omr/model"
)

// Components labels the 8-connected ink blobs of bin (any non-zero pixel is
// ink). When externalOnly is set, blobs that lie inside a hole of another
// blob are dropped, so only outermost outlines are returned.
func Components(bin *image.Gray, externalOnly bool) []model.Region {
	b := bin.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}

	ink := make([]bool, w*h)
	for y := 0; y < h; y++ {
		off := bin.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			ink[y*w+x] = bin.Pix[off+x] != 0
		}
	}

	var outside []bool
	if externalOnly {
		outside = outerBackground(ink, w, h)
	}

	visited := make([]bool, w*h)
	var regions []model.Region
	var stack []int

	for start := range ink {
		if !ink[start] || visited[start] {
			continue
		}

		visited[start] = true
		stack = append(stack[:0], start)

		minX, minY := w, h
		maxX, maxY := -1, -1
		pixels := 0
		external := !externalOnly
		rows := map[int][2]int{}

		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := p%w, p/w

			pixels++
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
			if ext, ok := rows[y]; ok {
				if x < ext[0] {
					ext[0] = x
				}
				if x > ext[1] {
					ext[1] = x
				}
				rows[y] = ext
			} else {
				rows[y] = [2]int{x, x}
			}

			if !external && touchesOutside(outside, x, y, w, h) {
				external = true
			}

			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
						continue
					}
					n := ny*w + nx
					if ink[n] && !visited[n] {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}
		}

		if !external {
			continue
		}

		spans := make([]model.Span, 0, len(rows))
		for y, ext := range rows {
			spans = append(spans, model.Span{Y: y + b.Min.Y, X0: ext[0] + b.Min.X, X1: ext[1] + b.Min.X})
		}
		sort.Slice(spans, func(i, j int) bool { return spans[i].Y < spans[j].Y })

		regions = append(regions, model.Region{
			Rect:   model.NewRect(minX+b.Min.X, minY+b.Min.Y, maxX-minX+1, maxY-minY+1),
			Pixels: pixels,
			Spans:  spans,
		})
	}

	return regions
}

// outerBackground marks the paper pixels 4-connected to the image border.
// Paper not reached this way sits inside a hole of some blob.
func outerBackground(ink []bool, w, h int) []bool {
	outside := make([]bool, w*h)
	var stack []int

	push := func(p int) {
		if !ink[p] && !outside[p] {
			outside[p] = true
			stack = append(stack, p)
		}
	}

	for x := 0; x < w; x++ {
		push(x)
		push((h-1)*w + x)
	}
	for y := 0; y < h; y++ {
		push(y * w)
		push(y*w + w - 1)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, y := p%w, p/w

		if x > 0 {
			push(p - 1)
		}
		if x < w-1 {
			push(p + 1)
		}
		if y > 0 {
			push(p - w)
		}
		if y < h-1 {
			push(p + w)
		}
	}

	return outside
}

// touchesOutside reports whether the ink pixel at (x, y) lies on the image
// border or next to outer background.
func touchesOutside(outside []bool, x, y, w, h int) bool {
	if x == 0 || y == 0 || x == w-1 || y == h-1 {
		return true
	}
	p := y*w + x
	return outside[p-1] || outside[p+1] || outside[p-w] || outside[p+w]
}
