package format

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JPEG, "JPEG"},
		{PNG, "PNG"},
		{GIF, "GIF"},
		{BMP, "BMP"},
		{TIFF, "TIFF"},
		{WEBP, "WEBP"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{JPEG, ".jpg"},
		{PNG, ".png"},
		{TIFF, ".tiff"},
		{WEBP, ".webp"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"sheet.jpg", JPEG},
		{"sheet.JPEG", JPEG},
		{"sheet.png", PNG},
		{"scan.tif", TIFF},
		{"scan.TIFF", TIFF},
		{"upload.webp", WEBP},
		{"sheet.bmp", BMP},
		{"sheet.gif", GIF},
		{"sheet.pdf", Unknown},
		{"sheet", Unknown},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	webp := append([]byte("RIFF\x00\x00\x00\x00WEBP"), make([]byte, 8)...)
	bmp := append([]byte("BM"), make([]byte, 20)...)

	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"png", pngBuf.Bytes(), PNG},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10}, JPEG},
		{"gif", []byte("GIF89a......"), GIF},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0, 8, 0, 0, 0}, TIFF},
		{"tiff big endian", []byte{'M', 'M', 0, 0x2A, 0, 0, 0, 8}, TIFF},
		{"webp", webp, WEBP},
		{"bmp", bmp, BMP},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVE"), Unknown},
		{"pdf", []byte("%PDF-1.7"), Unknown},
		{"too short", []byte{0xFF}, Unknown},
		{"empty", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader(t *testing.T) {
	f, err := DetectFromReader(bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xDB}))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if f != JPEG {
		t.Errorf("DetectFromReader() = %v, want JPEG", f)
	}

	f, err = DetectFromReader(bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("DetectFromReader() on empty input error = %v", err)
	}
	if f.IsSupported() {
		t.Error("empty input should not be supported")
	}
}
