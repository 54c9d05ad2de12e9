//go:build !opencv

package imaging

import "image"

// OpenCVEnabled reports whether the OpenCV backend was compiled in.
const OpenCVEnabled = false

// OpenCVThreshold is the stub used when the "opencv" build tag is not set.
// Binarize always returns ErrBackendUnavailable.
type OpenCVThreshold struct {
	BlockSize int
	Bias      float64
}

// Name returns the backend name
func (o OpenCVThreshold) Name() string {
	return BackendOpenCV
}

// Binarize returns ErrBackendUnavailable.
func (o OpenCVThreshold) Binarize(src *image.Gray) (*image.Gray, error) {
	return nil, ErrBackendUnavailable
}
