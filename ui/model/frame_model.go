package model

import (
	"image"
)

// FrameModel holds the frame currently shown to the user and, when a
// recognition pass has run, the overlay rendition of it. Zero value means no
// frame and is usable. No synchronization needed: updates occur on the UI
// thread tick.
type FrameModel struct {
	frame      *image.RGBA
	overlay    *image.RGBA
	generation uint64
}

func NewFrameModel() *FrameModel { return &FrameModel{} }

// SetFrame replaces the displayed frame and drops any overlay, since boxes
// from a previous pass would not line up with the new pixels.
func (m *FrameModel) SetFrame(img *image.RGBA) {
	if m == nil {
		return
	}
	m.frame = img
	m.overlay = nil
	m.generation++
}

// SetOverlay attaches an overlay for the current frame.
func (m *FrameModel) SetOverlay(img *image.RGBA) {
	if m == nil {
		return
	}
	m.overlay = img
	m.generation++
}

// ClearOverlay removes the overlay, keeping the frame.
func (m *FrameModel) ClearOverlay() {
	if m == nil || m.overlay == nil {
		return
	}
	m.overlay = nil
	m.generation++
}

// Frame returns the raw frame (may be nil).
func (m *FrameModel) Frame() *image.RGBA {
	if m == nil {
		return nil
	}
	return m.frame
}

// Displayed returns the image the view should show: the overlay when present,
// otherwise the raw frame.
func (m *FrameModel) Displayed() *image.RGBA {
	if m == nil {
		return nil
	}
	if m.overlay != nil {
		return m.overlay
	}
	return m.frame
}

// Generation increments on every visible change, letting the view skip
// redundant photo uploads.
func (m *FrameModel) Generation() uint64 {
	if m == nil {
		return 0
	}
	return m.generation
}
