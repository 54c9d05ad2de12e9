package ident

import (
	"errors"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
)

// ErrNotFound is returned when an image carries no readable identifier
var ErrNotFound = errors.New("identifier not found")

// Decode locates a QR code anywhere in img and returns its text
func Decode(img image.Image) (string, error) {
	if img == nil || img.Bounds().Empty() {
		return "", ErrNotFound
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", fmt.Errorf("failed to create bitmap: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_TRY_HARDER: true,
	}

	result, err := qrcode.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}

	return result.GetText(), nil
}

// EncodeImage renders payload as a QR code of size x size pixels
func EncodeImage(payload string, size int) (image.Image, error) {
	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return matrix, nil
}
