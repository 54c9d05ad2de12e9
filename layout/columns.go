package layout

import "github.com/tsawler/omr/model"

// Column identifies a physical question column
type Column int

const (
	Left Column = iota
	Right
)

// String returns a string representation of the column
func (c Column) String() string {
	if c == Right {
		return "right"
	}
	return "left"
}

// splitColumns partitions regions by the midpoint of their left edge spread.
// It returns the split point, or 0 when the sheet is a single column.
func (r *Resolver) splitColumns(regions []model.Region) (left, right []model.Region, mid float64) {
	if len(regions) == 0 {
		return nil, nil, 0
	}

	minX, maxX := regions[0].X(), regions[0].X()
	for _, reg := range regions[1:] {
		if reg.X() < minX {
			minX = reg.X()
		}
		if reg.X() > maxX {
			maxX = reg.X()
		}
	}

	if maxX-minX <= r.config.ColumnThreshold {
		return append([]model.Region(nil), regions...), nil, 0
	}

	mid = float64(minX+maxX) / 2
	for _, reg := range regions {
		if float64(reg.X()) < mid {
			left = append(left, reg)
		} else {
			right = append(right, reg)
		}
	}
	return left, right, mid
}
