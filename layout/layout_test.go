package layout

import (
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/omr/model"
)

const bubble = 20

// grid builds rows of equally spaced bubbles. The first bubble of the first
// row has its top-left corner at (x, y).
func grid(x, y, rows, options, rowPitch, optionPitch int) []model.Region {
	var out []model.Region
	for r := 0; r < rows; r++ {
		for o := 0; o < options; o++ {
			out = append(out, model.RectRegion(x+o*optionPitch, y+r*rowPitch, bubble, bubble))
		}
	}
	return out
}

func shuffled(regions []model.Region, seed int64) []model.Region {
	out := append([]model.Region(nil), regions...)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

func rowXs(row Row) []int {
	xs := make([]int, len(row.Regions))
	for i, r := range row.Regions {
		xs[i] = r.X()
	}
	return xs
}

// ============================================================================
// Config Tests
// ============================================================================

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.ColumnThreshold != 250 || c.RowTolerance != 20 || c.Options != 5 || c.MinOptions != 3 {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero threshold", func(c *Config) { c.ColumnThreshold = 0 }},
		{"zero tolerance", func(c *Config) { c.RowTolerance = 0 }},
		{"zero options", func(c *Config) { c.Options = 0 }},
		{"min above options", func(c *Config) { c.MinOptions = 6 }},
		{"negative left column", func(c *Config) { c.LeftColumnQuestions = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(&c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{"empty", Config{}, DefaultConfig()},
		{"partial", Config{ColumnThreshold: 300, RowTolerance: 12}, Config{300, 12, 5, 3, 0}},
		{"narrow rows", Config{Options: 2}, Config{250, 20, 2, 2, 0}},
		{"negative", Config{ColumnThreshold: -1, Options: -4, LeftColumnQuestions: -2}, DefaultConfig()},
		{"explicit kept", Config{250, 20, 4, 4, 10}, Config{250, 20, 4, 4, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.WithDefaults()
			if got != tt.want {
				t.Errorf("WithDefaults() = %+v, want %+v", got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestResolve_PartialConfigKeepsFullRows(t *testing.T) {
	regions := grid(50, 50, 3, 5, 40, 30)

	r := NewResolverWithConfig(Config{ColumnThreshold: 250, RowTolerance: 20})
	l := r.Resolve(regions, 3)

	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Questions() = %v, want [1 2 3]", got)
	}
	for _, row := range l.Rows {
		if len(row.Regions) != 5 {
			t.Errorf("question %d has %d regions, want 5", row.Question, len(row.Regions))
		}
	}
	if len(l.Notes) != 0 {
		t.Errorf("unexpected notes: %v", l.Notes)
	}
}

// ============================================================================
// Row Grouping Tests
// ============================================================================

func TestResolve_SingleColumn(t *testing.T) {
	regions := shuffled(grid(80, 80, 3, 5, 36, 32), 1)

	l := NewResolver().Resolve(regions, 3)
	if l.Columns != 1 {
		t.Errorf("Columns = %d, want 1", l.Columns)
	}
	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Questions() = %v", got)
	}

	for i, row := range l.Rows {
		if row.Top() != 80+i*36 {
			t.Errorf("row %d top = %d, want %d", row.Question, row.Top(), 80+i*36)
		}
		if got := rowXs(row); !reflect.DeepEqual(got, []int{80, 112, 144, 176, 208}) {
			t.Errorf("row %d options out of order: %v", row.Question, got)
		}
	}
	if len(l.Notes) != 0 {
		t.Errorf("unexpected notes: %v", l.Notes)
	}
}

func TestResolve_RowTolerance(t *testing.T) {
	tests := []struct {
		name     string
		dy       int
		wantRows int
	}{
		{"well inside", 5, 1},
		{"just inside", 19, 1},
		{"at tolerance", 20, 2},
		{"beyond", 30, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regions := []model.Region{
				model.RectRegion(0, 100, bubble, bubble),
				model.RectRegion(40, 100, bubble, bubble),
				model.RectRegion(80, 100, bubble, bubble),
				model.RectRegion(120, 100+tt.dy, bubble, bubble),
				model.RectRegion(160, 100+tt.dy, bubble, bubble),
				model.RectRegion(200, 100+tt.dy, bubble, bubble),
			}
			cfg := DefaultConfig()
			cfg.Options = 6
			l := NewResolverWithConfig(cfg).Resolve(regions, 0)
			if len(l.Rows) != tt.wantRows {
				t.Errorf("got %d rows, want %d", len(l.Rows), tt.wantRows)
			}
		})
	}
}

func TestResolve_RowChaining(t *testing.T) {
	// Each bubble is within tolerance of the previous one, so the whole
	// drifting sequence forms one row even though it spans 45 pixels.
	regions := []model.Region{
		model.RectRegion(0, 100, bubble, bubble),
		model.RectRegion(40, 115, bubble, bubble),
		model.RectRegion(80, 130, bubble, bubble),
		model.RectRegion(120, 145, bubble, bubble),
	}

	l := NewResolver().Resolve(regions, 0)
	if len(l.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(l.Rows))
	}
	if len(l.Rows[0].Regions) != 4 {
		t.Errorf("row has %d regions, want 4", len(l.Rows[0].Regions))
	}
}

func TestResolve_OptionTruncation(t *testing.T) {
	regions := shuffled(grid(10, 10, 1, 7, 0, 30), 3)

	l := NewResolver().Resolve(regions, 0)
	if len(l.Rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(l.Rows))
	}
	if got := rowXs(l.Rows[0]); !reflect.DeepEqual(got, []int{10, 40, 70, 100, 130}) {
		t.Errorf("kept options %v, want the five leftmost", got)
	}
}

func TestResolve_ShortRowsDoNotConsumeNumbers(t *testing.T) {
	regions := grid(80, 80, 1, 5, 0, 32)
	regions = append(regions, grid(80, 116, 1, 2, 0, 32)...)
	regions = append(regions, grid(80, 152, 1, 3, 0, 32)...)

	l := NewResolver().Resolve(regions, 0)
	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("Questions() = %v, want [1 2]", got)
	}

	q2, ok := l.Row(2)
	if !ok {
		t.Fatal("Row(2) not found")
	}
	if q2.Top() != 152 || len(q2.Regions) != 3 {
		t.Errorf("question 2 = top %d with %d regions, want the three bubble row", q2.Top(), len(q2.Regions))
	}

	if len(l.Notes) != 1 || !strings.Contains(l.Notes[0], "discarded") {
		t.Errorf("Notes = %v, want one discard note", l.Notes)
	}
}

func TestResolve_ExpectedCapsSingleColumn(t *testing.T) {
	l := NewResolver().Resolve(grid(80, 80, 4, 5, 36, 32), 3)
	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("Questions() = %v", got)
	}
	if len(l.Notes) != 1 || !strings.Contains(l.Notes[0], "dropped") {
		t.Errorf("Notes = %v, want one drop note", l.Notes)
	}
}

func TestResolve_Empty(t *testing.T) {
	l := NewResolver().Resolve(nil, 10)
	if l.Columns != 0 || len(l.Rows) != 0 {
		t.Errorf("Resolve(nil) = %+v", l)
	}
	if _, ok := l.Row(1); ok {
		t.Error("Row(1) found on empty layout")
	}
}

// ============================================================================
// Column Tests
// ============================================================================

func TestResolve_ColumnBoundary(t *testing.T) {
	tests := []struct {
		name        string
		rightStart  int
		wantColumns int
	}{
		{"span below threshold", 189, 1},
		{"span at threshold is one column", 190, 1},
		{"span above threshold", 191, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Left edges run 0..rightStart+60, so the spread is rightStart+60.
			regions := grid(0, 100, 1, 3, 0, 30)
			regions = append(regions, grid(tt.rightStart, 100, 1, 3, 0, 30)...)

			cfg := DefaultConfig()
			cfg.Options = 6
			l := NewResolverWithConfig(cfg).Resolve(regions, 0)

			if l.Columns != tt.wantColumns {
				t.Fatalf("Columns = %d, want %d", l.Columns, tt.wantColumns)
			}
			switch tt.wantColumns {
			case 1:
				if len(l.Rows) != 1 || len(l.Rows[0].Regions) != 6 {
					t.Errorf("expected one row of 6, got %+v", l.Rows)
				}
			case 2:
				if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2}) {
					t.Errorf("Questions() = %v, want [1 2]", got)
				}
				if l.Rows[1].Column != Right {
					t.Errorf("question 2 column = %v, want right", l.Rows[1].Column)
				}
			}
		})
	}
}

func TestResolve_SplitAtMidpoint(t *testing.T) {
	// Spread 0..400, midpoint 200. A bubble exactly at the midpoint goes right.
	regions := []model.Region{
		model.RectRegion(0, 100, bubble, bubble),
		model.RectRegion(40, 100, bubble, bubble),
		model.RectRegion(199, 100, bubble, bubble),
		model.RectRegion(200, 200, bubble, bubble),
		model.RectRegion(300, 200, bubble, bubble),
		model.RectRegion(400, 200, bubble, bubble),
	}

	l := NewResolver().Resolve(regions, 0)
	if l.Split != 200 {
		t.Errorf("Split = %v, want 200", l.Split)
	}

	q1, _ := l.Row(1)
	if got := rowXs(q1); !reflect.DeepEqual(got, []int{0, 40, 199}) {
		t.Errorf("left row = %v", got)
	}
	q2, _ := l.Row(2)
	if got := rowXs(q2); !reflect.DeepEqual(got, []int{200, 300, 400}) {
		t.Errorf("right row = %v", got)
	}
}

func TestResolve_TwoColumnsWithExpected(t *testing.T) {
	regions := grid(80, 80, 15, 5, 36, 32)
	regions = append(regions, grid(460, 80, 15, 5, 36, 32)...)

	l := NewResolver().Resolve(shuffled(regions, 11), 30)

	if l.Columns != 2 {
		t.Fatalf("Columns = %d, want 2", l.Columns)
	}
	if l.LeftQuestions != 15 {
		t.Errorf("LeftQuestions = %d, want 15", l.LeftQuestions)
	}
	if len(l.Rows) != 30 {
		t.Fatalf("got %d rows, want 30", len(l.Rows))
	}

	for q := 1; q <= 15; q++ {
		row, ok := l.Row(q)
		if !ok || row.Column != Left {
			t.Fatalf("question %d should be in the left column", q)
		}
	}

	q16, ok := l.Row(16)
	if !ok {
		t.Fatal("Row(16) not found")
	}
	if q16.Column != Right || q16.Top() != 80 || q16.Regions[0].X() != 460 {
		t.Errorf("question 16 = %s column at (%d, %d), want the first right row",
			q16.Column, q16.Regions[0].X(), q16.Top())
	}

	q30, _ := l.Row(30)
	if q30.Top() != 80+14*36 {
		t.Errorf("question 30 top = %d", q30.Top())
	}
}

func TestResolve_NoisyLeftColumnKeepsRightNumbering(t *testing.T) {
	regions := grid(80, 80, 2, 5, 36, 32)
	regions = append(regions, grid(80, 152, 1, 2, 0, 32)...) // occluded row
	regions = append(regions, grid(80, 188, 12, 5, 36, 32)...)
	regions = append(regions, grid(460, 80, 15, 5, 36, 32)...)

	l := NewResolver().Resolve(regions, 30)

	q16, ok := l.Row(16)
	if !ok || q16.Column != Right || q16.Top() != 80 {
		t.Errorf("question 16 should be the first right row, got %+v ok=%v", q16, ok)
	}
	if _, ok := l.Row(15); ok {
		t.Error("question 15 should be missing after the occluded row was discarded")
	}
	if len(l.Notes) != 1 {
		t.Errorf("Notes = %v", l.Notes)
	}
}

func TestResolve_TwoColumnsWithoutExpected(t *testing.T) {
	regions := grid(80, 80, 4, 5, 36, 32)
	regions = append(regions, grid(460, 80, 4, 5, 36, 32)...)

	l := NewResolver().Resolve(regions, 0)
	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5, 6, 7, 8}) {
		t.Errorf("Questions() = %v", got)
	}
}

func TestResolve_ConfiguredLeftColumn(t *testing.T) {
	regions := grid(80, 80, 3, 5, 36, 32)
	regions = append(regions, grid(460, 80, 3, 5, 36, 32)...)

	cfg := DefaultConfig()
	cfg.LeftColumnQuestions = 20
	l := NewResolverWithConfig(cfg).Resolve(regions, 0)

	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3, 21, 22, 23}) {
		t.Errorf("Questions() = %v", got)
	}
}

func TestResolve_OverflowingColumnsDropped(t *testing.T) {
	regions := grid(80, 80, 6, 5, 36, 32)
	regions = append(regions, grid(460, 80, 6, 5, 36, 32)...)

	l := NewResolver().Resolve(regions, 10)

	if got := l.Questions(); !reflect.DeepEqual(got, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}) {
		t.Errorf("Questions() = %v", got)
	}
	if len(l.Notes) != 2 {
		t.Errorf("expected two drop notes, got %v", l.Notes)
	}
}

// ============================================================================
// Determinism Tests
// ============================================================================

func TestResolve_Deterministic(t *testing.T) {
	regions := grid(80, 80, 15, 5, 36, 32)
	regions = append(regions, grid(460, 83, 15, 5, 36, 32)...)

	want := NewResolver().Resolve(regions, 30)

	for seed := int64(0); seed < 10; seed++ {
		got := NewResolver().Resolve(shuffled(regions, seed), 30)
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("seed %d produced a different layout", seed)
		}
	}
}

func TestRowBounds(t *testing.T) {
	row := Row{Regions: []model.Region{
		model.RectRegion(10, 10, 20, 20),
		model.RectRegion(50, 12, 20, 20),
	}}
	if got := row.Bounds(); got != (model.Rect{X: 10, Y: 10, Width: 60, Height: 22}) {
		t.Errorf("Bounds() = %+v", got)
	}
}
