//go:build !ocr

package ocr

import "image"

// Enabled reports whether OCR support was compiled in
const Enabled = false

// Client is a stub OCR client that returns errors for all operations.
type Client struct{}

// New returns an error indicating OCR support is not enabled.
// To enable OCR, rebuild with: go build -tags ocr
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub client.
// It is safe to call on a nil client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage returns an error indicating OCR support is not enabled.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// Recognize returns an error indicating OCR support is not enabled.
func (c *Client) Recognize(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetPageSegMode returns an error indicating OCR support is not enabled.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return ErrOCRNotEnabled
}

// SetWhitelist returns an error indicating OCR support is not enabled.
func (c *Client) SetWhitelist(chars string) error {
	return ErrOCRNotEnabled
}

// Version returns the Tesseract version, or "" when OCR is disabled.
func Version() string {
	return ""
}

// RecognizeIdentifier returns an error indicating OCR support is not enabled.
func RecognizeIdentifier(img image.Image) (string, error) {
	return "", ErrOCRNotEnabled
}
