package layout

import (
	"fmt"

	"github.com/tsawler/omr/model"
)

// Layout is the resolved question grid of one sheet
type Layout struct {
	// Columns is 1 or 2 (0 when there were no regions)
	Columns int

	// Split is the x coordinate dividing the columns, 0 for one column
	Split float64

	// LeftQuestions is the size of the left column's number range.
	// Zero means unbounded.
	LeftQuestions int

	// Rows are the accepted question rows, sorted by question number
	Rows []Row

	// Notes describe rows that were discarded or dropped
	Notes []string
}

// Row returns the row for a question number
func (l *Layout) Row(question int) (Row, bool) {
	for _, r := range l.Rows {
		if r.Question == question {
			return r, true
		}
	}
	return Row{}, false
}

// Questions returns the question numbers present, in order
func (l *Layout) Questions() []int {
	out := make([]int, len(l.Rows))
	for i, r := range l.Rows {
		out[i] = r.Question
	}
	return out
}

// Resolver turns bubble regions into numbered rows
type Resolver struct {
	config Config
}

// NewResolver creates a resolver with default configuration
func NewResolver() *Resolver {
	return &Resolver{config: DefaultConfig()}
}

// NewResolverWithConfig creates a resolver with custom configuration. Unset
// fields take their defaults.
func NewResolverWithConfig(config Config) *Resolver {
	return &Resolver{config: config.WithDefaults()}
}

// Config returns the resolver configuration
func (r *Resolver) Config() Config {
	return r.config
}

// Resolve groups regions into question rows. expected is the number of
// questions on the sheet, or 0 when unknown.
func (r *Resolver) Resolve(regions []model.Region, expected int) *Layout {
	out := &Layout{}
	if len(regions) == 0 {
		return out
	}

	left, right, mid := r.splitColumns(regions)
	out.Split = mid
	out.Columns = 1
	if right != nil {
		out.Columns = 2
	}

	leftRows := r.acceptRows(r.groupRows(left), Left, out)
	rightRows := r.acceptRows(r.groupRows(right), Right, out)

	switch {
	case out.Columns == 1:
		out.LeftQuestions = expected
	case r.config.LeftColumnQuestions > 0:
		out.LeftQuestions = r.config.LeftColumnQuestions
	case expected > 0:
		out.LeftQuestions = (expected + 1) / 2
	default:
		out.LeftQuestions = len(leftRows)
	}

	for i, regs := range leftRows {
		q := i + 1
		if out.LeftQuestions > 0 && q > out.LeftQuestions {
			out.note("row at y=%d in left column dropped: question %d exceeds the column's %d questions", regs[0].Y(), q, out.LeftQuestions)
			continue
		}
		out.Rows = append(out.Rows, Row{Question: q, Column: Left, Regions: regs})
	}

	for i, regs := range rightRows {
		q := out.LeftQuestions + i + 1
		if expected > 0 && q > expected {
			out.note("row at y=%d in right column dropped: question %d exceeds the expected %d questions", regs[0].Y(), q, expected)
			continue
		}
		out.Rows = append(out.Rows, Row{Question: q, Column: Right, Regions: regs})
	}

	return out
}

// acceptRows truncates rows to the option count and discards rows that are
// too short to be a question.
func (r *Resolver) acceptRows(rows [][]model.Region, col Column, out *Layout) [][]model.Region {
	var accepted [][]model.Region
	for _, row := range rows {
		if len(row) < r.config.MinOptions {
			out.note("row at y=%d in %s column discarded: %d bubbles, need at least %d", row[0].Y(), col, len(row), r.config.MinOptions)
			continue
		}
		if len(row) > r.config.Options {
			row = row[:r.config.Options]
		}
		accepted = append(accepted, row)
	}
	return accepted
}

func (l *Layout) note(format string, args ...any) {
	l.Notes = append(l.Notes, fmt.Sprintf(format, args...))
}
