// Package imaging turns a photographed answer sheet into a binary ink map.
//
// The steps run in a fixed order:
//
//  1. [Suppress] paints the identifier zone (where the QR code is printed)
//     with paper white so its modules are never mistaken for bubbles.
//  2. [Rescale] shrinks wide photos to a canonical width so that every pixel
//     threshold used later refers to the same scale.
//  3. [Grayscale] and a [Binarizer] produce an inverted binary image: ink is
//     255, paper is 0. The default [MeanThreshold] compares each pixel to the
//     mean of its neighbourhood, which tolerates shadows and uneven light.
//
// [Preprocess] runs all three. [Deskew] is an optional extra step that uses
// the solid corner markers printed on the card to undo small rotations.
//
// # Backends
//
// The pure Go [MeanThreshold] is always available. Building with the
// "opencv" tag adds [OpenCVThreshold], backed by gocv:
//
//	go build -tags opencv
//
// [OpenCVEnabled] reports which variant was compiled in.
package imaging
