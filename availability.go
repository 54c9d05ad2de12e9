package omr

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/tsawler/omr/ident"
	"github.com/tsawler/omr/imaging"
	"github.com/tsawler/omr/ocr"
)

// Availability records what the running process can do. It is produced once
// by Probe and handed to New; a scanner built from an availability that is
// not Ready refuses every scan.
type Availability struct {
	// Codecs lists the image formats that decoded a self-test image
	Codecs []string `json:"codecs"`

	// QR is true when the QR decoder read back a generated code
	QR bool `json:"qr"`

	// OCR is true when the printed identifier fallback is usable
	OCR        bool   `json:"ocr"`
	OCRVersion string `json:"ocr_version,omitempty"`

	// OpenCV is true when the OpenCV binarizer was compiled in
	OpenCV bool `json:"opencv"`

	// Backend is the requested binarizer and BackendReady whether it works
	Backend      string `json:"backend"`
	BackendReady bool   `json:"backend_ready"`

	// Problems lists the reasons the scanner cannot run
	Problems []string `json:"problems,omitempty"`

	binarizer imaging.Binarizer
}

// Ready reports whether scans can run
func (a Availability) Ready() bool {
	return len(a.Problems) == 0 && a.binarizer != nil
}

// Reason describes why the scanner is unavailable
func (a Availability) Reason() string {
	if len(a.Problems) == 0 && a.binarizer == nil {
		return "environment was not probed"
	}
	return strings.Join(a.Problems, "; ")
}

// Probe checks the image codecs, the QR decoder, the OCR engine and the
// requested binarizer backend ("" selects the pure Go mean threshold).
func Probe(backend string) Availability {
	a := Availability{
		Backend: backend,
		OCR:     ocr.Enabled && ocr.Version() != "",
		OpenCV:  imaging.OpenCVEnabled,
	}
	if a.Backend == "" {
		a.Backend = imaging.BackendMean
	}
	if a.OCR {
		a.OCRVersion = ocr.Version()
	}

	a.Codecs = probeCodecs()
	if !containsAll(a.Codecs, "JPEG", "PNG") {
		a.Problems = append(a.Problems, fmt.Sprintf("image codecs: need JPEG and PNG, have %v", a.Codecs))
	}

	if err := probeQR(); err != nil {
		a.Problems = append(a.Problems, fmt.Sprintf("qr decoder: %v", err))
	} else {
		a.QR = true
	}

	b, err := probeBackend(a.Backend)
	if err != nil {
		a.Problems = append(a.Problems, fmt.Sprintf("binarizer %s: %v", a.Backend, err))
	} else {
		a.BackendReady = true
		a.binarizer = b
	}

	return a
}

var codecEncoders = []struct {
	name   string
	encode func(io.Writer, image.Image) error
}{
	{"JPEG", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
	{"PNG", png.Encode},
	{"GIF", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
	{"BMP", bmp.Encode},
	{"TIFF", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
}

func probeCodecs() []string {
	sample := image.NewGray(image.Rect(0, 0, 8, 8))
	for i := range sample.Pix {
		sample.Pix[i] = 255
	}
	sample.SetGray(3, 3, color.Gray{})

	var names []string
	for _, c := range codecEncoders {
		var buf bytes.Buffer
		if err := c.encode(&buf, sample); err != nil {
			continue
		}
		img, f, err := imaging.Load(buf.Bytes())
		if err != nil || f.String() != c.name || img.Bounds().Dx() != 8 {
			continue
		}
		names = append(names, c.name)
	}
	return names
}

func probeQR() error {
	const payload = "A1-M1"
	code, err := ident.EncodeImage(payload, 120)
	if err != nil {
		return err
	}
	got, err := ident.Decode(code)
	if err != nil {
		return err
	}
	if got != payload {
		return fmt.Errorf("self-test decoded %q, want %q", got, payload)
	}
	return nil
}

func probeBackend(name string) (imaging.Binarizer, error) {
	b, err := imaging.NewBinarizer(name, imaging.DefaultBlockSize, imaging.DefaultBias)
	if err != nil {
		return nil, err
	}
	if _, err := b.Binarize(image.NewGray(image.Rect(0, 0, 16, 16))); err != nil {
		return nil, err
	}
	return b, nil
}

func containsAll(have []string, want ...string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
