package ident

import (
	"errors"
	"fmt"
	"image"
	"regexp"
	"strings"

	"github.com/tsawler/omr/imaging"
)

// Source says where a reference was read from
type Source string

const (
	SourceNone Source = ""
	SourceQR   Source = "qr"
	SourceText Source = "text"
)

// RecognizeFunc turns an image into text. It is usually ocr.RecognizeIdentifier.
type RecognizeFunc func(img image.Image) (string, error)

var printedPattern = regexp.MustCompile(`A\d+-[MU]\d+`)

// FindPrinted returns the first identifier-shaped substring of text.
// Whitespace inside the identifier, common in OCR output, is ignored.
func FindPrinted(text string) (string, bool) {
	compact := strings.Join(strings.Fields(text), "")
	m := printedPattern.FindString(compact)
	return m, m != ""
}

// Reader reads the identifier of a sheet, first from its QR code and then,
// when configured, from the printed text in Zone.
type Reader struct {
	// Zone is the area searched for printed text
	Zone imaging.Zone

	// Fallback recognises printed text. Nil disables the fallback.
	Fallback RecognizeFunc
}

// NewReader creates a QR only reader
func NewReader() *Reader {
	return &Reader{Zone: imaging.DefaultZone()}
}

// Read returns the sheet's reference. ErrNotFound means neither the QR code
// nor the printed text could be read; it is not fatal for a scan.
func (r *Reader) Read(img image.Image) (*Reference, Source, error) {
	payload, err := Decode(img)
	if err == nil {
		ref := Parse(payload)
		return &ref, SourceQR, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, SourceNone, err
	}
	if r.Fallback == nil {
		return nil, SourceNone, err
	}

	zone := img
	if !r.Zone.IsEmpty() {
		zone = imaging.Crop(img, r.Zone)
	}

	text, ferr := r.Fallback(zone)
	if ferr != nil {
		return nil, SourceNone, fmt.Errorf("%w: printed text: %v", ErrNotFound, ferr)
	}

	printed, ok := FindPrinted(text)
	if !ok {
		return nil, SourceNone, ErrNotFound
	}

	ref := Parse(printed)
	return &ref, SourceText, nil
}
