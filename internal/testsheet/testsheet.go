// Package testsheet renders synthetic answer sheets for tests.
//
// Sheets are drawn black on white with no antialiasing, so pixel counts in
// tests can be derived exactly from the drawing parameters.
package testsheet

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"golang.org/x/image/draw"
)

// Blank returns a white canvas.
func Blank(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

// Disc fills a circle of radius r centred on (cx, cy) and returns the
// number of pixels painted.
func Disc(img draw.Image, cx, cy, r int) int {
	n := 0
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				img.Set(cx+x, cy+y, color.Black)
				n++
			}
		}
	}
	return n
}

// Ring draws a one pixel circle outline of radius r and returns the number
// of pixels painted.
func Ring(img draw.Image, cx, cy, r int) int {
	n := 0
	inner := (r - 1) * (r - 1)
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			d := x*x + y*y
			if d <= r*r && d > inner {
				img.Set(cx+x, cy+y, color.Black)
				n++
			}
		}
	}
	return n
}

// Square fills a solid square.
func Square(img draw.Image, x, y, size int) {
	draw.Draw(img, image.Rect(x, y, x+size, y+size), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// Rect fills a solid rectangle.
func Rect(img draw.Image, x, y, w, h int) {
	draw.Draw(img, image.Rect(x, y, x+w, y+h), image.NewUniform(color.Black), image.Point{}, draw.Src)
}

// QR draws a QR code encoding payload into a size x size box at (x, y).
func QR(img draw.Image, payload string, x, y, size int) error {
	matrix, err := qrcode.NewQRCodeWriter().Encode(payload, gozxing.BarcodeFormat_QR_CODE, size, size, nil)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	draw.Draw(img, image.Rect(x, y, x+size, y+size), matrix, image.Point{}, draw.Src)
	return nil
}

// PNG encodes img as PNG.
func PNG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// JPEG encodes img as a high quality JPEG.
func JPEG(img image.Image) []byte {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Binary converts a drawing to the scanner's ink map (ink = 255) without
// adaptive thresholding. Any pixel darker than mid gray is ink.
func Binary(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if g.Y < 128 {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}
	return out
}
