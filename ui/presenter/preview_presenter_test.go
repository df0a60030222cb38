package presenter

import (
	"image"
	"testing"

	"github.com/okvist/text-reader-go/domain/capture"
	"github.com/okvist/text-reader-go/ui/model"
)

type fakeSource struct {
	running  bool
	snapshot capture.Snapshot
}

func (s *fakeSource) Running() bool                 { return s.running }
func (s *fakeSource) LatestFrame() capture.Snapshot { return s.snapshot }

type mockFrameView struct {
	updates int
	last    image.Image
}

func (v *mockFrameView) UpdateFrame(img image.Image) { v.updates++; v.last = img }

func TestPreviewPresenter_PullsFramesWhileLive(t *testing.T) {
	src := &fakeSource{running: true}
	camera := &model.CameraModel{}
	camera.SetState(model.CameraRunning)
	frames := model.NewFrameModel()
	view := &mockFrameView{}
	p := NewPreviewPresenter(src, camera, frames, view)

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.snapshot = capture.Snapshot{Image: img, Sequence: 1}
	p.ProcessFrame()
	if view.updates != 1 || view.last != img {
		t.Fatalf("updates=%d last=%v", view.updates, view.last)
	}
	// Same sequence again: nothing new to upload.
	p.ProcessFrame()
	if view.updates != 1 {
		t.Fatalf("redundant upload, updates=%d", view.updates)
	}

	next := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.snapshot = capture.Snapshot{Image: next, Sequence: 2}
	p.ProcessFrame()
	if view.updates != 2 || view.last != next {
		t.Fatalf("new frame not shown, updates=%d", view.updates)
	}
}

func TestPreviewPresenter_PausedFreezesDisplay(t *testing.T) {
	src := &fakeSource{running: true}
	camera := &model.CameraModel{}
	camera.SetState(model.CameraRunning)
	frames := model.NewFrameModel()
	view := &mockFrameView{}
	p := NewPreviewPresenter(src, camera, frames, view)

	frozen := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.snapshot = capture.Snapshot{Image: frozen, Sequence: 1}
	p.ProcessFrame()

	camera.SetState(model.CameraPaused)
	src.snapshot = capture.Snapshot{Image: image.NewRGBA(image.Rect(0, 0, 8, 8)), Sequence: 2}
	p.ProcessFrame()
	if frames.Frame() != frozen {
		t.Fatal("frame advanced while paused")
	}
	if view.updates != 1 {
		t.Fatalf("updates=%d, want 1", view.updates)
	}
}

func TestPreviewPresenter_OverlayPushedWithoutNewFrame(t *testing.T) {
	src := &fakeSource{}
	camera := &model.CameraModel{}
	frames := model.NewFrameModel()
	view := &mockFrameView{}
	p := NewPreviewPresenter(src, camera, frames, view)

	frames.SetFrame(image.NewRGBA(image.Rect(0, 0, 8, 8)))
	p.ProcessFrame()
	overlay := image.NewRGBA(image.Rect(0, 0, 8, 8))
	frames.SetOverlay(overlay)
	p.ProcessFrame()
	if view.updates != 2 || view.last != overlay {
		t.Fatalf("overlay not shown, updates=%d", view.updates)
	}
}

func TestLoop_TickNilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	(&Loop{}).Tick()

	called := 0
	loop := NewLoop(nil, nil, func() { called++ })
	loop.Tick()
	if called != 1 {
		t.Fatalf("schedule called %d times", called)
	}
}
