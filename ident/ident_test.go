package ident

import (
	"encoding/json"
	"errors"
	"image"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/omr/imaging"
	"github.com/tsawler/omr/internal/testsheet"
	"github.com/tsawler/omr/ocr"
)

// ============================================================================
// Encode/Parse Tests
// ============================================================================

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		encoded    string
		assessment int
		subject    int
		kind       Kind
	}{
		{"enrollment", Encode(34, 559), 34, 559, KindEnrollment},
		{"legacy identity", EncodeLegacy(15, 102), 15, 102, KindLegacyIdentity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Parse(tt.encoded)
			if ref.AssessmentID != tt.assessment || ref.SubjectID != tt.subject || ref.SubjectKind != tt.kind {
				t.Errorf("Parse(%q) = %+v", tt.encoded, ref)
			}
			if ref.String() != tt.encoded {
				t.Errorf("String() = %q, want %q", ref.String(), tt.encoded)
			}
		})
	}

	if got := Encode(34, 559); got != "A34-M559" {
		t.Errorf("Encode() = %q", got)
	}
	if got := EncodeLegacy(15, 102); got != "A15-U102" {
		t.Errorf("EncodeLegacy() = %q", got)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		payload    string
		assessment int
		subject    int
		kind       Kind
		skipped    []string
	}{
		{"empty", "", 0, 0, KindNone, nil},
		{"assessment only", "A7", 7, 0, KindNone, nil},
		{"subject first", "M42-A7", 7, 42, KindEnrollment, nil},
		{"surrounding space", "  A7-M42\n", 7, 42, KindEnrollment, nil},
		{"full width digits", "Ａ７-Ｍ４２", 7, 42, KindEnrollment, nil},
		{"unknown prefix", "A7-X9-M42", 7, 42, KindEnrollment, []string{"X9"}},
		{"bad id", "Aabc-M42", 0, 42, KindEnrollment, []string{"Aabc"}},
		{"zero id", "A0-M42", 0, 42, KindEnrollment, []string{"A0"}},
		{"negative looking", "A7--M42", 7, 42, KindEnrollment, nil},
		{"lone prefix", "A-M3", 0, 3, KindEnrollment, []string{"A"}},
		{"lowercase prefix", "a7-m42", 0, 0, KindNone, []string{"a7", "m42"}},
		{"signed id", "A+7", 0, 0, KindNone, []string{"A+7"}},
		{"later token wins", "A1-A2-U5-M6", 2, 6, KindEnrollment, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Parse(tt.payload)
			if ref.Raw != tt.payload {
				t.Errorf("Raw = %q, want %q", ref.Raw, tt.payload)
			}
			if ref.AssessmentID != tt.assessment || ref.SubjectID != tt.subject || ref.SubjectKind != tt.kind {
				t.Errorf("Parse(%q) = %+v", tt.payload, ref)
			}
			if !reflect.DeepEqual(ref.Skipped, tt.skipped) {
				t.Errorf("Skipped = %v, want %v", ref.Skipped, tt.skipped)
			}
		})
	}
}

func TestReferencePresence(t *testing.T) {
	ref := Parse("A7")
	if !ref.HasAssessment() || ref.HasSubject() {
		t.Errorf("A7: HasAssessment=%v HasSubject=%v", ref.HasAssessment(), ref.HasSubject())
	}
	ref = Parse("U3")
	if ref.HasAssessment() || !ref.HasSubject() {
		t.Errorf("U3: HasAssessment=%v HasSubject=%v", ref.HasAssessment(), ref.HasSubject())
	}
}

func TestReferenceJSON(t *testing.T) {
	data, err := json.Marshal(Parse("A7-M42"))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"assessment_ref":7,"subject_ref":42,"subject_ref_kind":"enrollment","raw":"A7-M42"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	data, _ = json.Marshal(Parse("A7"))
	if !strings.Contains(string(data), `"subject_ref":null`) {
		t.Errorf("absent subject should be null: %s", data)
	}

	var back Reference
	if err := json.Unmarshal([]byte(want), &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back.AssessmentID != 7 || back.SubjectID != 42 || back.SubjectKind != KindEnrollment {
		t.Errorf("Unmarshal() = %+v", back)
	}
}

// ============================================================================
// QR Tests
// ============================================================================

func TestDecode(t *testing.T) {
	img := testsheet.Blank(400, 400)
	if err := testsheet.QR(img, "A7-M42", 220, 220, 150); err != nil {
		t.Fatalf("QR() error = %v", err)
	}

	got, err := Decode(img)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != "A7-M42" {
		t.Errorf("Decode() = %q, want A7-M42", got)
	}
}

func TestDecode_AfterPNGRoundTrip(t *testing.T) {
	qr, err := EncodeImage(EncodeLegacy(15, 102), 200)
	if err != nil {
		t.Fatalf("EncodeImage() error = %v", err)
	}

	img, _, err := imaging.Load(testsheet.PNG(qr))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	got, err := Decode(img)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	ref := Parse(got)
	if ref.AssessmentID != 15 || ref.SubjectID != 102 || ref.SubjectKind != KindLegacyIdentity {
		t.Errorf("Parse(Decode()) = %+v", ref)
	}
}

func TestDecode_NotFound(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"blank page", testsheet.Blank(300, 300)},
		{"empty image", image.NewGray(image.Rect(0, 0, 0, 0))},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.img); !errors.Is(err, ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

// ============================================================================
// Reader Tests
// ============================================================================

func TestFindPrinted(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"A34-M559", "A34-M559"},
		{"Sheet: A15-U102 page 1", "A15-U102"},
		{"A15 - U102", "A15-U102"},
		{"no identifier here", ""},
		{"A15-X102", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := FindPrinted(tt.text)
			if got != tt.want || ok != (tt.want != "") {
				t.Errorf("FindPrinted(%q) = (%q, %v), want %q", tt.text, got, ok, tt.want)
			}
		})
	}
}

func TestReader_PrefersQR(t *testing.T) {
	img := testsheet.Blank(400, 400)
	if err := testsheet.QR(img, "A7-M42", 220, 220, 150); err != nil {
		t.Fatalf("QR() error = %v", err)
	}

	called := false
	r := NewReader()
	r.Fallback = func(image.Image) (string, error) {
		called = true
		return "A1-M1", nil
	}

	ref, src, err := r.Read(img)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if src != SourceQR || ref.AssessmentID != 7 || ref.SubjectID != 42 {
		t.Errorf("Read() = %+v from %q", ref, src)
	}
	if called {
		t.Error("fallback should not run when the QR code decodes")
	}
}

func TestReader_Fallback(t *testing.T) {
	img := testsheet.Blank(500, 500)

	var seen image.Rectangle
	r := NewReader()
	r.Fallback = func(zone image.Image) (string, error) {
		seen = zone.Bounds()
		return "Prova\nA15 - U102\n", nil
	}

	ref, src, err := r.Read(img)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if src != SourceText || ref.AssessmentID != 15 || ref.SubjectID != 102 || ref.SubjectKind != KindLegacyIdentity {
		t.Errorf("Read() = %+v from %q", ref, src)
	}
	if seen.Dx() != 200 || seen.Dy() != 100 {
		t.Errorf("fallback saw %v, want the 200x100 identifier zone", seen)
	}
}

func TestReader_NotFound(t *testing.T) {
	img := testsheet.Blank(200, 200)

	r := NewReader()
	if _, _, err := r.Read(img); !errors.Is(err, ErrNotFound) {
		t.Errorf("QR only: expected ErrNotFound, got %v", err)
	}

	r.Fallback = func(image.Image) (string, error) { return "nothing", nil }
	if _, _, err := r.Read(img); !errors.Is(err, ErrNotFound) {
		t.Errorf("no printed id: expected ErrNotFound, got %v", err)
	}

	r.Fallback = func(image.Image) (string, error) { return "", errors.New("tesseract missing") }
	if _, _, err := r.Read(img); !errors.Is(err, ErrNotFound) {
		t.Errorf("failing fallback: expected ErrNotFound, got %v", err)
	}
}

func TestReader_OCRFallbackSignature(t *testing.T) {
	// The scanner wires ocr.RecognizeIdentifier in as the fallback.
	var fallback RecognizeFunc = ocr.RecognizeIdentifier

	r := NewReader()
	r.Fallback = fallback
	if _, _, err := r.Read(testsheet.Blank(200, 200)); !errors.Is(err, ErrNotFound) {
		t.Errorf("blank sheet: expected ErrNotFound, got %v", err)
	}
}
