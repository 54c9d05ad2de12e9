//go:build opencv

package imaging

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// OpenCVEnabled reports whether the OpenCV backend was compiled in.
const OpenCVEnabled = true

// OpenCVThreshold binarizes with OpenCV's Gaussian adaptive threshold.
type OpenCVThreshold struct {
	BlockSize int
	Bias      float64
}

// Name returns the backend name
func (o OpenCVThreshold) Name() string {
	return BackendOpenCV
}

// Binarize runs cv::adaptiveThreshold with THRESH_BINARY_INV.
func (o OpenCVThreshold) Binarize(src *image.Gray) (*image.Gray, error) {
	if err := validateBlockSize(o.BlockSize); err != nil {
		return nil, err
	}

	mat, err := gocv.ImageGrayToMatGray(src)
	if err != nil {
		return nil, fmt.Errorf("gray to mat: %w", err)
	}
	defer mat.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	gocv.AdaptiveThreshold(mat, &dst, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, o.BlockSize, float32(o.Bias))

	out, err := dst.ToImage()
	if err != nil {
		return nil, fmt.Errorf("mat to image: %w", err)
	}

	gray, ok := out.(*image.Gray)
	if !ok {
		return Grayscale(out), nil
	}
	return gray, nil
}
