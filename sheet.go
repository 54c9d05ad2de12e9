package omr

import (
	"fmt"
	"image"
)

// Sheet provides a fluent interface for scanning one answer sheet.
// Each configuration method returns a new Sheet instance, making it
// safe for concurrent use and allowing method chaining.
type Sheet struct {
	// Source (exactly one is set)
	filename string
	data     []byte
	img      image.Image

	// Configuration
	options ScanOptions
	scanner *Scanner

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Sheet with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (s *Sheet) clone() *Sheet {
	return &Sheet{
		filename: s.filename,
		data:     s.data,
		img:      s.img,
		options:  s.options.clone(),
		scanner:  s.scanner,
		err:      s.err,
	}
}

// Questions sets the expected number of questions on the sheet.
// The count drives the column split of two column sheets.
func (s *Sheet) Questions(n int) *Sheet {
	newSheet := s.clone()
	if n < 0 {
		newSheet.err = fmt.Errorf("invalid question count: %d", n)
		return newSheet
	}
	newSheet.options.questions = n
	return newSheet
}

// Options sets the number of options per question (default 5).
func (s *Sheet) Options(n int) *Sheet {
	newSheet := s.clone()
	if n < 0 {
		newSheet.err = fmt.Errorf("invalid option count: %d", n)
		return newSheet
	}
	newSheet.options.options = n
	return newSheet
}

// Using selects the scanner that performs the scan. Services pass the
// scanner they built from a startup [Probe]; its availability and
// configuration errors are reported as they are for direct calls. Without
// Using the package probes a default scanner lazily, once per process.
func (s *Sheet) Using(scanner *Scanner) *Sheet {
	newSheet := s.clone()
	newSheet.scanner = scanner
	return newSheet
}

// Scan runs the scan. Configuration errors are reported in the result.
func (s *Sheet) Scan() Result {
	if s.err != nil {
		return failed(nil, s.err.Error(), s.err)
	}

	scanner := s.scanner
	if scanner == nil {
		scanner = defaultScanner()
	}

	req := s.options.request()
	switch {
	case s.img != nil:
		return scanner.ScanImage(s.img, req)
	case s.data != nil:
		return scanner.ScanBytes(s.data, req)
	case s.filename != "":
		return scanner.ScanFile(s.filename, req)
	default:
		err := fmt.Errorf("no image specified")
		return failed(nil, err.Error(), err)
	}
}
