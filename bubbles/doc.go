// Package bubbles finds candidate answer bubbles on a binarized sheet.
//
// Detection has two steps. [Components] labels 8-connected blobs of ink and
// records each blob's bounding box and filled outline. A [Detector] then
// keeps only the blobs that are roughly square and roughly bubble sized:
//
//	detector := bubbles.NewDetector()
//	regions, err := detector.Detect(bin)
//	if errors.Is(err, bubbles.ErrNoRegions) {
//	    // nothing on the sheet looks like a bubble
//	}
//
// By default only outermost blobs are reported. A printed letter inside an
// empty bubble, or anything drawn inside a closed frame, is enclosed by
// another blob and is skipped.
//
// The returned regions are in no particular order; imposing rows and columns
// is the job of package layout.
package bubbles
