package testsheet

import (
	"image"
)

// Layout describes a printed bubble grid.
type Layout struct {
	Width  int
	Height int

	Questions int
	Options   int

	// PerColumn is the number of questions in the left column. Zero puts
	// every question in one column.
	PerColumn int

	// Origin is the centre of question 1, option A.
	Origin image.Point

	// ColumnOffset is the horizontal distance between the two columns' A bubbles.
	ColumnOffset int

	RowPitch    int
	OptionPitch int
	Radius      int

	// Payload, when set, is printed as a QR code in the bottom-right corner.
	Payload string
	QRSize  int

	// Markers draws solid fiducial squares in the four corners.
	Markers    bool
	MarkerSize int
}

// DefaultLayout returns a single column sheet that fits the canonical width.
func DefaultLayout(questions int) Layout {
	return Layout{
		Width:        800,
		Height:       1000,
		Questions:    questions,
		Options:      5,
		Origin:       image.Point{X: 80, Y: 80},
		ColumnOffset: 380,
		RowPitch:     36,
		OptionPitch:  32,
		Radius:       9,
		QRSize:       150,
		MarkerSize:   24,
	}
}

// Center returns the centre of the given bubble (question is 1-based,
// option 0-based).
func (l Layout) Center(question, option int) image.Point {
	col, row := 0, question-1
	if l.PerColumn > 0 && question > l.PerColumn {
		col = 1
		row = question - 1 - l.PerColumn
	}
	return image.Point{
		X: l.Origin.X + col*l.ColumnOffset + option*l.OptionPitch,
		Y: l.Origin.Y + row*l.RowPitch,
	}
}

// Render draws the sheet. marks maps a question to the option indices that
// are filled in.
func Render(l Layout, marks map[int][]int) (*image.RGBA, error) {
	img := Blank(l.Width, l.Height)

	for q := 1; q <= l.Questions; q++ {
		filled := map[int]bool{}
		for _, o := range marks[q] {
			filled[o] = true
		}
		for o := 0; o < l.Options; o++ {
			c := l.Center(q, o)
			if filled[o] {
				Disc(img, c.X, c.Y, l.Radius)
			} else {
				Ring(img, c.X, c.Y, l.Radius)
			}
		}
	}

	if l.Markers {
		m := l.MarkerSize
		Square(img, 10, 10, m)
		Square(img, l.Width-10-m, 10, m)
		Square(img, 10, l.Height-10-m, m)
	}

	if l.Payload != "" {
		x := l.Width - l.QRSize - 20
		y := l.Height - l.QRSize - 20
		if err := QR(img, l.Payload, x, y, l.QRSize); err != nil {
			return nil, err
		}
	}

	return img, nil
}
