// Package format provides raster image format detection for sheet photos.
package format

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported raster image format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JPEG indicates a JPEG/JFIF photo.
	JPEG
	// PNG indicates a Portable Network Graphics image.
	PNG
	// GIF indicates a GIF image.
	GIF
	// BMP indicates a Windows bitmap.
	BMP
	// TIFF indicates a TIFF image (scanner output).
	TIFF
	// WEBP indicates a WebP image (common for phone uploads).
	WEBP
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JPEG:
		return "JPEG"
	case PNG:
		return "PNG"
	case GIF:
		return "GIF"
	case BMP:
		return "BMP"
	case TIFF:
		return "TIFF"
	case WEBP:
		return "WEBP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JPEG:
		return ".jpg"
	case PNG:
		return ".png"
	case GIF:
		return ".gif"
	case BMP:
		return ".bmp"
	case TIFF:
		return ".tiff"
	case WEBP:
		return ".webp"
	default:
		return ""
	}
}

// Detect determines image format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".jpe", ".jfif":
		return JPEG
	case ".png":
		return PNG
	case ".gif":
		return GIF
	case ".bmp":
		return BMP
	case ".tif", ".tiff":
		return TIFF
	case ".webp":
		return WEBP
	default:
		return Unknown
	}
}

var (
	magicPNG     = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	magicJPEG    = []byte{0xFF, 0xD8, 0xFF}
	magicTIFFLE  = []byte{'I', 'I', 0x2A, 0x00}
	magicTIFFBE  = []byte{'M', 'M', 0x00, 0x2A}
	magicGIF87   = []byte("GIF87a")
	magicGIF89   = []byte("GIF89a")
	magicBMP     = []byte("BM")
	magicRIFF    = []byte("RIFF")
	magicWEBPTag = []byte("WEBP")
)

// DetectFromMagic checks the leading bytes to determine the image format.
// This is more reliable than the extension: phones frequently upload JPEG
// data under a .png name and vice versa.
func DetectFromMagic(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, magicPNG):
		return PNG
	case bytes.HasPrefix(data, magicJPEG):
		return JPEG
	case bytes.HasPrefix(data, magicGIF87), bytes.HasPrefix(data, magicGIF89):
		return GIF
	case bytes.HasPrefix(data, magicTIFFLE), bytes.HasPrefix(data, magicTIFFBE):
		return TIFF
	case len(data) >= 12 && bytes.HasPrefix(data, magicRIFF) && bytes.Equal(data[8:12], magicWEBPTag):
		return WEBP
	case len(data) >= 14 && bytes.HasPrefix(data, magicBMP):
		return BMP
	default:
		return Unknown
	}
}

// DetectFromReader reads the first bytes of r and inspects them.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 16)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// IsSupported reports whether the format can be decoded.
func (f Format) IsSupported() bool {
	return f != Unknown
}
