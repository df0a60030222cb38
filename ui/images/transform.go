package images

import "image"

// FitTransform maps between the coordinates of a frame and the coordinates of
// its scaled-to-fit rendition on screen. Pointer events arrive in display
// space; the region selector works in frame space.
type FitTransform struct {
	scale float64
	frame image.Rectangle
}

// NewFitTransform computes the transform for a frame of frameSize shown
// within a display area of dispSize. The scale never exceeds 1; a frame
// smaller than the display is shown unscaled.
func NewFitTransform(frameSize, dispSize image.Point) FitTransform {
	t := FitTransform{scale: 1, frame: image.Rect(0, 0, frameSize.X, frameSize.Y)}
	if frameSize.X <= 0 || frameSize.Y <= 0 || dispSize.X <= 0 || dispSize.Y <= 0 {
		return t
	}
	sx := float64(dispSize.X) / float64(frameSize.X)
	sy := float64(dispSize.Y) / float64(frameSize.Y)
	s := sx
	if sy < s {
		s = sy
	}
	if s < 1 {
		t.scale = s
	}
	return t
}

// Scale reports the display-per-frame pixel ratio.
func (t FitTransform) Scale() float64 { return t.scale }

// DisplaySize is the size of the scaled frame on screen.
func (t FitTransform) DisplaySize() image.Point {
	return image.Pt(
		int(float64(t.frame.Dx())*t.scale+0.5),
		int(float64(t.frame.Dy())*t.scale+0.5),
	)
}

// ToFrame converts a display point to frame coordinates, clamped to the frame
// bounds so drags past the edge stay valid.
func (t FitTransform) ToFrame(p image.Point) image.Point {
	fp := image.Pt(int(float64(p.X)/t.scale), int(float64(p.Y)/t.scale))
	if fp.X < t.frame.Min.X {
		fp.X = t.frame.Min.X
	}
	if fp.X > t.frame.Max.X {
		fp.X = t.frame.Max.X
	}
	if fp.Y < t.frame.Min.Y {
		fp.Y = t.frame.Min.Y
	}
	if fp.Y > t.frame.Max.Y {
		fp.Y = t.frame.Max.Y
	}
	return fp
}

// ToDisplay converts a frame rectangle to display coordinates.
func (t FitTransform) ToDisplay(r image.Rectangle) image.Rectangle {
	return image.Rect(
		int(float64(r.Min.X)*t.scale+0.5),
		int(float64(r.Min.Y)*t.scale+0.5),
		int(float64(r.Max.X)*t.scale+0.5),
		int(float64(r.Max.Y)*t.scale+0.5),
	)
}
