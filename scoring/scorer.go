package scoring

import (
	"errors"
	"fmt"
	"image"

	"github.com/tsawler/omr/layout"
)

// ErrEmptyRow is returned when a row has no bubbles to score
var ErrEmptyRow = errors.New("row has no bubbles")

// Outcome is the scored decision for one question
type Outcome struct {
	Question int    `json:"question"`
	Status   Status `json:"status"`

	// Index is the selected option (0-based), -1 when blank
	Index int `json:"index"`

	// Label is the selected option's letter, empty when blank
	Label string `json:"label,omitempty"`

	// Scores holds the ink count of every option, left to right
	Scores []int `json:"scores"`
}

// Scorer applies a policy to question rows
type Scorer struct {
	policy Policy
}

// NewScorer creates a scorer with the default first-max policy
func NewScorer() *Scorer {
	return &Scorer{policy: FirstMax{Threshold: DefaultThreshold}}
}

// NewScorerWithPolicy creates a scorer with a custom policy
func NewScorerWithPolicy(policy Policy) *Scorer {
	return &Scorer{policy: policy}
}

// Policy returns the scorer's selection policy
func (s *Scorer) Policy() Policy {
	return s.policy
}

// ScoreRow measures every bubble of row and selects the marked option
func (s *Scorer) ScoreRow(bin *image.Gray, row layout.Row) (Outcome, error) {
	if len(row.Regions) == 0 {
		return Outcome{}, fmt.Errorf("question %d: %w", row.Question, ErrEmptyRow)
	}

	scores := make([]int, len(row.Regions))
	for i, r := range row.Regions {
		scores[i] = InkCount(bin, r)
	}

	out := Outcome{Question: row.Question, Scores: scores, Index: -1}
	idx, status := s.policy.Select(scores)
	out.Status = status
	if status != Blank {
		out.Index = idx
		out.Label = Label(idx)
	}
	return out, nil
}

// ScoreLayout scores every row of a layout in question order. Rows that
// cannot be scored are skipped and reported as errors.
func (s *Scorer) ScoreLayout(bin *image.Gray, l *layout.Layout) ([]Outcome, []error) {
	var outcomes []Outcome
	var errs []error
	for _, row := range l.Rows {
		o, err := s.ScoreRow(bin, row)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		outcomes = append(outcomes, o)
	}
	return outcomes, errs
}

// Label returns the option letter for a 0-based index: A..Z, then AA, AB...
func Label(i int) string {
	if i < 0 {
		return ""
	}
	var buf []byte
	for i >= 0 {
		buf = append([]byte{byte('A' + i%26)}, buf...)
		i = i/26 - 1
	}
	return string(buf)
}
