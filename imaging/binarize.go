package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"
)

// Ink and Paper are the pixel values of a binarized sheet.
const (
	Ink   uint8 = 255
	Paper uint8 = 0
)

// Default adaptive threshold parameters, calibrated at the canonical width.
const (
	DefaultBlockSize = 41
	DefaultBias      = 10.0
)

// Backend names accepted by NewBinarizer.
const (
	BackendMean   = "mean"
	BackendOpenCV = "opencv"
)

// ErrBackendUnavailable is returned when a binarizer backend was not compiled in.
var ErrBackendUnavailable = errors.New("binarizer backend not available")

// Binarizer converts a grayscale image to an inverted binary image
// (ink = 255, paper = 0) of the same size.
type Binarizer interface {
	Binarize(src *image.Gray) (*image.Gray, error)
	Name() string
}

// MeanThreshold marks a pixel as ink when it is at least Bias darker than the
// mean of the BlockSize x BlockSize window centred on it. Windows are clipped
// at the image border.
type MeanThreshold struct {
	BlockSize int
	Bias      float64
}

// DefaultMeanThreshold returns the pure Go binarizer with default parameters.
func DefaultMeanThreshold() MeanThreshold {
	return MeanThreshold{BlockSize: DefaultBlockSize, Bias: DefaultBias}
}

// Name returns the backend name
func (m MeanThreshold) Name() string {
	return BackendMean
}

// Binarize applies the adaptive mean threshold using a summed-area table.
func (m MeanThreshold) Binarize(src *image.Gray) (*image.Gray, error) {
	if err := validateBlockSize(m.BlockSize); err != nil {
		return nil, err
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty grayscale image", ErrInvalidImage)
	}

	// integral[(y)*(w+1)+x] holds the sum of src over [0,x) x [0,y)
	stride := w + 1
	integral := make([]int64, stride*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			rowSum += int64(src.Pix[off+x])
			integral[(y+1)*stride+x+1] = integral[y*stride+x+1] + rowSum
		}
	}

	half := m.BlockSize / 2
	dst := image.NewGray(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		y0 := max(0, y-half)
		y1 := min(h-1, y+half)
		off := src.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			x0 := max(0, x-half)
			x1 := min(w-1, x+half)

			count := int64((x1 - x0 + 1) * (y1 - y0 + 1))
			sum := integral[(y1+1)*stride+x1+1] -
				integral[y0*stride+x1+1] -
				integral[(y1+1)*stride+x0] +
				integral[y0*stride+x0]

			mean := float64(sum) / float64(count)
			if float64(src.Pix[off+x]) <= mean-m.Bias {
				dst.Pix[y*dst.Stride+x] = Ink
			}
		}
	}

	return dst, nil
}

// NewBinarizer returns the binarizer registered under name. An empty name
// selects the pure Go mean threshold.
func NewBinarizer(name string, blockSize int, bias float64) (Binarizer, error) {
	if err := validateBlockSize(blockSize); err != nil {
		return nil, err
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendMean:
		return MeanThreshold{BlockSize: blockSize, Bias: bias}, nil
	case BackendOpenCV:
		if !OpenCVEnabled {
			return nil, fmt.Errorf("%w: %s (rebuild with -tags opencv)", ErrBackendUnavailable, BackendOpenCV)
		}
		return OpenCVThreshold{BlockSize: blockSize, Bias: bias}, nil
	default:
		return nil, fmt.Errorf("unknown binarizer backend %q", name)
	}
}

// Backends lists the binarizer backends compiled into this binary.
func Backends() []string {
	if OpenCVEnabled {
		return []string{BackendMean, BackendOpenCV}
	}
	return []string{BackendMean}
}

func validateBlockSize(n int) error {
	if n < 3 || n%2 == 0 {
		return fmt.Errorf("block size must be an odd number >= 3, got %d", n)
	}
	return nil
}
