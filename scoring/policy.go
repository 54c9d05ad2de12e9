package scoring

import "fmt"

// DefaultThreshold is the ink count a mark must exceed at canonical scale
const DefaultThreshold = 100

// Status is the decision for one question
type Status int

const (
	// Blank means no option cleared the threshold
	Blank Status = iota
	// Marked means exactly one option was selected
	Marked
	// Ambiguous means two options were inked almost equally
	Ambiguous
)

// String returns a string representation of the status
func (s Status) String() string {
	switch s {
	case Marked:
		return "marked"
	case Ambiguous:
		return "ambiguous"
	default:
		return "blank"
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Policy picks the marked option of a row from its scores. index is the
// winning option, or -1 for a blank row.
type Policy interface {
	Select(scores []int) (index int, status Status)
	Name() string
}

// FirstMax selects the highest score if it exceeds Threshold. On a tie the
// leftmost option wins.
type FirstMax struct {
	Threshold int
}

// Select implements Policy
func (p FirstMax) Select(scores []int) (int, Status) {
	best, _ := top2(scores)
	if best < 0 || scores[best] <= p.Threshold {
		return -1, Blank
	}
	return best, Marked
}

// Name implements Policy
func (p FirstMax) Name() string {
	return fmt.Sprintf("first-max(%d)", p.Threshold)
}

// NearTie behaves like FirstMax but reports Ambiguous when the runner-up
// also exceeds Threshold and is within Ratio of the winner, so
// winner-runnerUp <= Ratio*winner.
type NearTie struct {
	Threshold int
	Ratio     float64
}

// DefaultNearTie flags rows whose two best options are within 10%
func DefaultNearTie() NearTie {
	return NearTie{Threshold: DefaultThreshold, Ratio: 0.10}
}

// Select implements Policy
func (p NearTie) Select(scores []int) (int, Status) {
	best, second := top2(scores)
	if best < 0 || scores[best] <= p.Threshold {
		return -1, Blank
	}
	if second >= 0 && scores[second] > p.Threshold &&
		float64(scores[best]-scores[second]) <= p.Ratio*float64(scores[best]) {
		return best, Ambiguous
	}
	return best, Marked
}

// Name implements Policy
func (p NearTie) Name() string {
	return fmt.Sprintf("near-tie(%d, %.2f)", p.Threshold, p.Ratio)
}

// NewPolicy returns a policy by name: "first-max" or "near-tie".
func NewPolicy(name string, threshold int, ratio float64) (Policy, error) {
	switch name {
	case "", "first-max":
		return FirstMax{Threshold: threshold}, nil
	case "near-tie":
		return NearTie{Threshold: threshold, Ratio: ratio}, nil
	default:
		return nil, fmt.Errorf("unknown scoring policy %q", name)
	}
}

// top2 returns the indices of the highest and second highest scores, first
// occurrence winning ties. Missing positions are -1.
func top2(scores []int) (best, second int) {
	best, second = -1, -1
	for i, s := range scores {
		switch {
		case best < 0 || s > scores[best]:
			second = best
			best = i
		case second < 0 || s > scores[second]:
			second = i
		}
	}
	return best, second
}
