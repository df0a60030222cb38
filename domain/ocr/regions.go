package ocr

import "image"

// Region is a single recognized word with its bounding box in the coordinates
// of the image handed to the engine and a confidence in [0, 1].
type Region struct {
	Text       string
	Box        image.Rectangle
	Confidence float64
}

// Result is one completed recognition pass.
type Result struct {
	Text    string
	Regions []Region
}

// OffsetRegions translates every box by off. Boxes coming out of the engine
// are relative to the preprocessed crop; translating by the region origin
// maps them back onto the full frame.
func OffsetRegions(regions []Region, off image.Point) []Region {
	if off == (image.Point{}) {
		return regions
	}
	out := make([]Region, len(regions))
	for i, r := range regions {
		r.Box = r.Box.Add(off)
		out[i] = r
	}
	return out
}

// FilterConfidence drops regions below the minimum confidence. Low scoring
// fragments are usually noise speckle the thresholding let through.
func FilterConfidence(regions []Region, min float64) []Region {
	out := regions[:0:0]
	for _, r := range regions {
		if r.Confidence >= min {
			out = append(out, r)
		}
	}
	return out
}
