// Package overlay draws recognition results on top of a frame.
package overlay

import (
	"image"
	"image/color"
	"image/draw"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/okvist/text-reader-go/domain/ocr"
)

const labelOffset = 5

// Render returns a copy of frame with a rectangle and a text label drawn for
// every region. Boxes are expected in frame coordinates. The input frame is
// never modified.
func Render(frame *image.RGBA, regions []ocr.Region) *image.RGBA {
	out := image.NewRGBA(frame.Bounds())
	draw.Draw(out, out.Bounds(), frame, frame.Bounds().Min, draw.Src)
	for _, r := range regions {
		box := r.Box.Intersect(out.Bounds())
		if box.Empty() {
			continue
		}
		c := confidenceColor(r.Confidence)
		drawRect(out, box, c)
		drawLabel(out, r.Text, box, c)
	}
	return out
}

// confidenceColor maps a confidence in [0, 1] onto a red-to-green hue ramp,
// red for uncertain words and green for confident ones.
func confidenceColor(conf float64) color.RGBA {
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	r, g, b := colorful.Hsv(conf*120, 1, 0.9).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func drawRect(img *image.RGBA, rect image.Rectangle, c color.RGBA) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		img.SetRGBA(x, rect.Min.Y, c)
		img.SetRGBA(x, rect.Max.Y-1, c)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		img.SetRGBA(rect.Min.X, y, c)
		img.SetRGBA(rect.Max.X-1, y, c)
	}
}

// drawLabel puts the word just above its box, clamped so labels on boxes near
// the top edge stay visible.
func drawLabel(img *image.RGBA, text string, box image.Rectangle, c color.RGBA) {
	if text == "" {
		return
	}
	y := box.Min.Y - labelOffset
	minY := img.Bounds().Min.Y + basicfont.Face7x13.Ascent
	if y < minY {
		y = minY
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(box.Min.X, y),
	}
	d.DrawString(text)
}
