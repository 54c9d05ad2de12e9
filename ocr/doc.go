// Package ocr recognises printed text on answer sheets.
//
// It is used as a fallback for the sheet identifier when the QR code cannot
// be decoded. The package wraps the Tesseract engine via gosseract and is
// only compiled in with the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Tesseract must be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag every entry point returns [ErrOCRNotEnabled] and
// [Enabled] is false.
package ocr
