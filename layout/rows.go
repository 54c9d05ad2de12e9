package layout

import (
	"sort"

	"github.com/tsawler/omr/model"
)

// Row is one question's bubbles, ordered left to right
type Row struct {
	// Question is the 1-based question number
	Question int

	// Column is the physical column the row was found in
	Column Column

	// Regions are the option bubbles (at most Config.Options)
	Regions []model.Region
}

// Bounds returns the box around all of the row's bubbles
func (r Row) Bounds() model.Rect {
	var b model.Rect
	for _, reg := range r.Regions {
		b = b.Union(reg.Rect)
	}
	return b
}

// Top returns the top edge of the row's first bubble
func (r Row) Top() int {
	if len(r.Regions) == 0 {
		return 0
	}
	return r.Regions[0].Y()
}

// groupRows chains regions into rows top to bottom. Each returned row is
// sorted left to right.
func (r *Resolver) groupRows(regions []model.Region) [][]model.Region {
	if len(regions) == 0 {
		return nil
	}

	sorted := append([]model.Region(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y() != sorted[j].Y() {
			return sorted[i].Y() < sorted[j].Y()
		}
		return sorted[i].X() < sorted[j].X()
	})

	var rows [][]model.Region
	current := []model.Region{sorted[0]}

	for i := 1; i < len(sorted); i++ {
		dy := sorted[i].Y() - sorted[i-1].Y()
		if dy < 0 {
			dy = -dy
		}
		if dy < r.config.RowTolerance {
			current = append(current, sorted[i])
			continue
		}
		rows = append(rows, closeRow(current))
		current = []model.Region{sorted[i]}
	}
	rows = append(rows, closeRow(current))

	return rows
}

func closeRow(row []model.Region) []model.Region {
	sort.SliceStable(row, func(i, j int) bool {
		return row[i].X() < row[j].X()
	})
	return row
}
