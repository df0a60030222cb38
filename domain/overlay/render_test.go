package overlay

import (
	"image"
	"image/color"
	"testing"

	"github.com/okvist/text-reader-go/domain/ocr"
)

func blankFrame(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestRender_DoesNotMutateFrame(t *testing.T) {
	frame := blankFrame(100, 80)
	before := make([]uint8, len(frame.Pix))
	copy(before, frame.Pix)

	Render(frame, []ocr.Region{{Text: "word", Box: image.Rect(10, 10, 60, 30), Confidence: 0.9}})
	for i := range before {
		if frame.Pix[i] != before[i] {
			t.Fatalf("frame pixel %d changed", i)
		}
	}
}

func TestRender_OutlinesBox(t *testing.T) {
	frame := blankFrame(100, 80)
	box := image.Rect(20, 40, 60, 60)

	out := Render(frame, []ocr.Region{{Text: "", Box: box, Confidence: 1}})
	white := color.RGBA{255, 255, 255, 255}
	if out.RGBAAt(20, 50) == white {
		t.Fatal("left edge not drawn")
	}
	if out.RGBAAt(59, 50) == white {
		t.Fatal("right edge not drawn")
	}
	if out.RGBAAt(40, 40) == white {
		t.Fatal("top edge not drawn")
	}
	// Interior stays untouched.
	if out.RGBAAt(40, 50) != white {
		t.Fatal("interior was filled")
	}
}

func TestRender_BoxOutsideFrameSkipped(t *testing.T) {
	frame := blankFrame(50, 50)

	out := Render(frame, []ocr.Region{{Text: "gone", Box: image.Rect(200, 200, 250, 220), Confidence: 0.5}})
	for i := range out.Pix {
		if out.Pix[i] != 255 {
			t.Fatalf("pixel %d drawn for off-frame box", i)
		}
	}
}

func TestRender_LabelNearTopEdgeStaysInside(t *testing.T) {
	frame := blankFrame(120, 60)
	// Box flush with the top; the label has no room above and must be pushed
	// down instead of vanishing.
	out := Render(frame, []ocr.Region{{Text: "TOP", Box: image.Rect(10, 0, 70, 20), Confidence: 0.9}})

	found := false
	for y := 0; y < 15 && !found; y++ {
		for x := 0; x < 120; x++ {
			px := out.RGBAAt(x, y)
			if px != (color.RGBA{255, 255, 255, 255}) && y != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("no label pixels near the top edge")
	}
}

func TestConfidenceColor_Ramp(t *testing.T) {
	low := confidenceColor(0)
	high := confidenceColor(1)
	if low.R <= low.G {
		t.Fatalf("low confidence should be red-dominant, got %+v", low)
	}
	if high.G <= high.R {
		t.Fatalf("high confidence should be green-dominant, got %+v", high)
	}
	// Out-of-range inputs clamp instead of wrapping the hue.
	if confidenceColor(-3) != low || confidenceColor(7) != high {
		t.Fatal("confidence not clamped")
	}
}
