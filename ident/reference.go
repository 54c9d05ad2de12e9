package ident

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token prefixes
const (
	PrefixAssessment = 'A'
	PrefixEnrollment = 'M'
	PrefixIdentity   = 'U'
)

// Kind says what the subject id of a reference refers to
type Kind string

const (
	// KindNone means the identifier carried no subject
	KindNone Kind = ""
	// KindEnrollment is a class enrollment id (M prefix)
	KindEnrollment Kind = "enrollment"
	// KindLegacyIdentity is a person id from older sheets (U prefix)
	KindLegacyIdentity Kind = "legacy_identity"
)

// Reference is a parsed sheet identifier. Zero ids mean "not present".
type Reference struct {
	// Raw is the payload as decoded
	Raw string

	AssessmentID int
	SubjectID    int
	SubjectKind  Kind

	// Skipped lists tokens that could not be understood
	Skipped []string
}

// HasAssessment reports whether the assessment id is present
func (r Reference) HasAssessment() bool {
	return r.AssessmentID > 0
}

// HasSubject reports whether a subject id is present
func (r Reference) HasSubject() bool {
	return r.SubjectID > 0 && r.SubjectKind != KindNone
}

// String returns the canonical form of the reference
func (r Reference) String() string {
	var parts []string
	if r.AssessmentID > 0 {
		parts = append(parts, fmt.Sprintf("%c%d", PrefixAssessment, r.AssessmentID))
	}
	if r.SubjectID > 0 {
		switch r.SubjectKind {
		case KindEnrollment:
			parts = append(parts, fmt.Sprintf("%c%d", PrefixEnrollment, r.SubjectID))
		case KindLegacyIdentity:
			parts = append(parts, fmt.Sprintf("%c%d", PrefixIdentity, r.SubjectID))
		}
	}
	return strings.Join(parts, "-")
}

type referenceJSON struct {
	AssessmentRef  *int   `json:"assessment_ref"`
	SubjectRef     *int   `json:"subject_ref"`
	SubjectRefKind *Kind  `json:"subject_ref_kind"`
	Raw            string `json:"raw,omitempty"`
}

// MarshalJSON writes absent ids as null
func (r Reference) MarshalJSON() ([]byte, error) {
	var out referenceJSON
	out.Raw = r.Raw
	if r.AssessmentID > 0 {
		id := r.AssessmentID
		out.AssessmentRef = &id
	}
	if r.HasSubject() {
		id, kind := r.SubjectID, r.SubjectKind
		out.SubjectRef = &id
		out.SubjectRefKind = &kind
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the form written by MarshalJSON
func (r *Reference) UnmarshalJSON(data []byte) error {
	var in referenceJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*r = Reference{Raw: in.Raw}
	if in.AssessmentRef != nil {
		r.AssessmentID = *in.AssessmentRef
	}
	if in.SubjectRef != nil {
		r.SubjectID = *in.SubjectRef
	}
	if in.SubjectRefKind != nil {
		r.SubjectKind = *in.SubjectRefKind
	}
	return nil
}

// Encode builds the identifier for an enrollment, e.g. "A34-M559"
func Encode(assessmentID, enrollmentID int) string {
	return Reference{AssessmentID: assessmentID, SubjectID: enrollmentID, SubjectKind: KindEnrollment}.String()
}

// EncodeLegacy builds the identifier for a legacy identity, e.g. "A15-U102"
func EncodeLegacy(assessmentID, identityID int) string {
	return Reference{AssessmentID: assessmentID, SubjectID: identityID, SubjectKind: KindLegacyIdentity}.String()
}

// Parse reads an identifier payload. It never fails: unknown or malformed
// tokens are recorded in Skipped and the corresponding ids stay zero.
// A later token of the same kind replaces an earlier one.
func Parse(payload string) Reference {
	ref := Reference{Raw: payload}

	s := strings.TrimSpace(norm.NFKC.String(payload))
	if s == "" {
		return ref
	}

	for _, tok := range strings.Split(s, "-") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		id, ok := parseID(tok[1:])
		if !ok {
			ref.Skipped = append(ref.Skipped, tok)
			continue
		}

		switch tok[0] {
		case PrefixAssessment:
			ref.AssessmentID = id
		case PrefixEnrollment:
			ref.SubjectID = id
			ref.SubjectKind = KindEnrollment
		case PrefixIdentity:
			ref.SubjectID = id
			ref.SubjectKind = KindLegacyIdentity
		default:
			ref.Skipped = append(ref.Skipped, tok)
		}
	}

	return ref
}

// parseID accepts a positive decimal id made only of ASCII digits
func parseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
