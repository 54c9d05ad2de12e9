package omr

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/omr/ident"
	"github.com/tsawler/omr/scoring"
)

// Sentinel errors reported through Result.Err.
var (
	// ErrNoMarks means no usable bubble rows were found on the sheet
	ErrNoMarks = errors.New("no marks detected")

	// ErrUnavailable means the scanner's environment failed its probe
	ErrUnavailable = errors.New("scanner unavailable")

	// ErrInvalidConfig means the scanner was built with unusable settings
	ErrInvalidConfig = errors.New("invalid scanner configuration")
)

// Result is the outcome of scanning one sheet.
type Result struct {
	// Success is true when at least one question row was read
	Success bool `json:"success"`

	// Diagnostic explains a failure in words suitable for the person
	// holding the camera
	Diagnostic string `json:"diagnostic,omitempty"`

	// Identifier is the sheet's reference, nil when none was found
	Identifier *ident.Reference `json:"identifier"`

	// Answers maps question numbers to the marked option's label. Blank
	// and ambiguous questions are absent.
	Answers map[int]string `json:"answers"`

	// Notes lists non-fatal problems: discarded rows, ambiguous marks and
	// unreadable identifier tokens
	Notes []string `json:"notes"`

	// Outcomes holds the per-question scores behind Answers
	Outcomes []scoring.Outcome `json:"-"`

	// IdentifierSource says whether the identifier came from the QR code
	// or from printed text
	IdentifierSource ident.Source `json:"-"`

	// SkewAngle is the rotation corrected before detection, in degrees
	SkewAngle float64 `json:"-"`

	// Err wraps the sentinel behind a failure
	Err error `json:"-"`
}

func newResult(ref *ident.Reference) Result {
	return Result{
		Identifier: ref,
		Answers:    map[int]string{},
		Notes:      []string{},
	}
}

func failed(ref *ident.Reference, diagnostic string, err error) Result {
	r := newResult(ref)
	r.Diagnostic = diagnostic
	r.Err = err
	return r
}

// Answer returns the marked label for a question
func (r Result) Answer(question int) (string, bool) {
	label, ok := r.Answers[question]
	return label, ok
}

// Questions returns the answered question numbers in ascending order
func (r Result) Questions() []int {
	qs := make([]int, 0, len(r.Answers))
	for q := range r.Answers {
		qs = append(qs, q)
	}
	sort.Ints(qs)
	return qs
}

// Outcome returns the scored outcome of a question
func (r Result) Outcome(question int) (scoring.Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Question == question {
			return o, true
		}
	}
	return scoring.Outcome{}, false
}

// String summarises the result on one line
func (r Result) String() string {
	id := "no identifier"
	if r.Identifier != nil {
		id = r.Identifier.String()
	}
	if !r.Success {
		return fmt.Sprintf("failed (%s): %s", id, r.Diagnostic)
	}
	return fmt.Sprintf("%s: %d answers, %d notes", id, len(r.Answers), len(r.Notes))
}
