package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
)

// ErrOCRNotEnabled is returned when OCR functions are called but OCR support
// was not compiled in. Rebuild with -tags ocr to enable OCR support.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// PageSegMode is a Tesseract page segmentation mode.
type PageSegMode int

// PSM_SPARSE_TEXT finds as much text as possible in no particular order.
const PSM_SPARSE_TEXT PageSegMode = 11

// IdentifierCharset is every character a printed sheet identifier can use
const IdentifierCharset = "0123456789AMU-"

// encodePNG serialises an image for the engine
func encodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
