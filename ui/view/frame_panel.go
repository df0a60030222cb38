package view

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/okvist/text-reader-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// FramePanel shows the current frame and handles drag selection over it.
// Pointer coordinates are translated from display space to frame space before
// the handlers see them.
type FramePanel interface {
	UpdateFrame(img image.Image)
	SetSelection(rect image.Rectangle, active bool)
	OnPointer(down, move, up func(x, y int))
	Reset()
}

type framePanel struct {
	label     *LabelWidget
	prevPhoto *Img
	transform images.FitTransform

	source    image.Image
	selection image.Rectangle
	hasSel    bool

	down, move, up func(x, y int)
}

const (
	maxPanelW = 760
	maxPanelH = 480
)

var selectionColor = color.RGBA{R: 37, G: 99, B: 235, A: 255}

// NewFramePanel creates the frame label and grids it at the given row.
func NewFramePanel(row int) FramePanel {
	placeholder := image.NewRGBA(image.Rect(0, 0, maxPanelW/2, maxPanelH/2))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	label := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(label, Row(row), Column(0), Columnspan(5), Sticky("we"), Padx("0.4m"), Pady("0.4m"))

	v := &framePanel{label: label, prevPhoto: photo}
	Bind(label, "<ButtonPress-1>", Command(func(e *Event) { v.pointer(v.down, e) }))
	Bind(label, "<B1-Motion>", Command(func(e *Event) { v.pointer(v.move, e) }))
	Bind(label, "<ButtonRelease-1>", Command(func(e *Event) { v.pointer(v.up, e) }))
	return v
}

func (v *framePanel) OnPointer(down, move, up func(x, y int)) {
	v.down, v.move, v.up = down, move, up
}

func (v *framePanel) pointer(fn func(x, y int), e *Event) {
	if fn == nil || v.source == nil {
		return
	}
	p := v.transform.ToFrame(image.Pt(e.X, e.Y))
	fn(p.X, p.Y)
}

// UpdateFrame replaces the displayed image and recomputes the coordinate
// transform. Any selection rectangle is drawn on top of the scaled copy.
func (v *framePanel) UpdateFrame(img image.Image) {
	if v.label == nil || img == nil {
		return
	}
	v.source = img
	b := img.Bounds()
	v.transform = images.NewFitTransform(image.Pt(b.Dx(), b.Dy()), image.Pt(maxPanelW, maxPanelH))
	v.redraw()
}

// SetSelection sets or clears the rectangle drawn over the frame, in frame
// coordinates.
func (v *framePanel) SetSelection(rect image.Rectangle, active bool) {
	v.selection, v.hasSel = rect, active
	if v.source != nil {
		v.redraw()
	}
}

func (v *framePanel) redraw() {
	scaled := images.ScaleToFit(v.source, maxPanelW, maxPanelH)
	if v.hasSel && !v.selection.Empty() {
		scaled = withSelection(scaled, v.transform.ToDisplay(v.selection))
	}
	// Replace the previous photo to avoid retaining obsolete pixel buffers.
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(scaled)))
	v.label.Configure(Image(v.prevPhoto))
}

func (v *framePanel) Reset() {
	v.source = nil
	v.selection, v.hasSel = image.Rectangle{}, false
	placeholder := image.NewRGBA(image.Rect(0, 0, maxPanelW/2, maxPanelH/2))
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(placeholder)))
	if v.label != nil {
		v.label.Configure(Image(v.prevPhoto))
	}
}

// withSelection copies img and outlines rect on the copy.
func withSelection(img image.Image, rect image.Rectangle) image.Image {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	rect = rect.Intersect(out.Bounds())
	if rect.Empty() {
		return out
	}
	for x := rect.Min.X; x < rect.Max.X; x++ {
		out.SetRGBA(x, rect.Min.Y, selectionColor)
		out.SetRGBA(x, rect.Max.Y-1, selectionColor)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		out.SetRGBA(rect.Min.X, y, selectionColor)
		out.SetRGBA(rect.Max.X-1, y, selectionColor)
	}
	return out
}
