// Package omr reads photographed bubble answer sheets.
//
// A scan recovers two things from one image: the identifier printed on the
// sheet as a QR code, and the option marked for each question.
//
// Basic usage:
//
//	result := omr.Open("sheet.jpg").Questions(30).Scan()
//	if !result.Success {
//	    log.Println("rescan needed:", result.Diagnostic)
//	}
//	for q, letter := range result.Answers {
//	    fmt.Println(q, letter)
//	}
//
// The fluent calls above probe the environment lazily, once per process, on
// the first Scan that has no scanner of its own. Services should instead
// probe at startup, refuse to start when the probe fails, and pass the
// resulting [Scanner] to every scan:
//
//	avail := omr.Probe(imaging.BackendMean)
//	if !avail.Ready() {
//	    log.Fatal(avail.Reason())
//	}
//	scanner := omr.New(avail, omr.WithLogger(logger))
//	if err := scanner.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
//	result := scanner.ScanFile("sheet.jpg", omr.Request{Questions: 30})
//	// or, keeping the fluent style:
//	result = omr.FromBytes(upload).Questions(30).Using(scanner).Scan()
//
// A scan never panics on bad input. Every failure is reported through
// [Result.Success], [Result.Diagnostic] and [Result.Err].
//
// The individual stages live in their own packages: ident, imaging,
// bubbles, layout and scoring.
package omr

import (
	"image"
	"sync"
)

// defaultScanner backs fluent scans that were not given a scanner with
// Sheet.Using. It is probed on first use.
var defaultScanner = sync.OnceValue(func() *Scanner {
	return New(Probe(""))
})

// Open starts a scan of an image file.
//
// Example:
//
//	result := omr.Open("sheet.png").Questions(20).Options(4).Scan()
func Open(filename string) *Sheet {
	return &Sheet{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes starts a scan of encoded image data (JPEG, PNG, ...).
//
// Example:
//
//	result := omr.FromBytes(upload).Questions(30).Scan()
func FromBytes(data []byte) *Sheet {
	return &Sheet{
		data:    data,
		options: defaultOptions(),
	}
}

// FromImage starts a scan of an already decoded image.
func FromImage(img image.Image) *Sheet {
	return &Sheet{
		img:     img,
		options: defaultOptions(),
	}
}
