//go:build ocr

package ocr

import (
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Enabled reports whether OCR support was compiled in
const Enabled = true

// Client wraps Tesseract for OCR operations.
// A Client is not safe for concurrent use.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeImage performs OCR on image data (PNG, TIFF, JPEG, etc.).
// Returns the recognized text with leading/trailing whitespace trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// Recognize performs OCR on a decoded image.
func (c *Client) Recognize(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return c.RecognizeImage(data)
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}

// SetWhitelist restricts recognition to the given characters.
func (c *Client) SetWhitelist(chars string) error {
	return c.client.SetWhitelist(chars)
}

// Version returns the Tesseract version, or "" when OCR is disabled.
func Version() string {
	return gosseract.Version()
}

// RecognizeIdentifier reads the printed identifier text in img. It uses a
// fresh client per call so it is safe for concurrent use.
func RecognizeIdentifier(img image.Image) (string, error) {
	c, err := New()
	if err != nil {
		return "", err
	}
	defer c.Close()

	if err := c.SetPageSegMode(PSM_SPARSE_TEXT); err != nil {
		return "", fmt.Errorf("set page segmentation: %w", err)
	}
	if err := c.SetWhitelist(IdentifierCharset); err != nil {
		return "", fmt.Errorf("set whitelist: %w", err)
	}

	return c.Recognize(img)
}
