package app

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/domain/capture"
	"github.com/okvist/text-reader-go/domain/ocr"
	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/presenter"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

type mockView struct {
	statuses   []string
	dialogs    []string
	selections []image.Rectangle
	selActive  bool
	camState   model.CameraState
	openPath   string
	savePath   string
	text       string
	busy       bool
}

func (v *mockView) SetStatus(msg string)        { v.statuses = append(v.statuses, msg) }
func (v *mockView) ShowError(title, msg string) { v.dialogs = append(v.dialogs, title+": "+msg) }

func (v *mockView) SetCameraControls(state model.CameraState) { v.camState = state }
func (v *mockView) SetSelection(rect image.Rectangle, active bool) {
	v.selections = append(v.selections, rect)
	v.selActive = active
}
func (v *mockView) PromptOpenImage(string) string { return v.openPath }
func (v *mockView) PromptSaveText(string) string  { return v.savePath }

// TextView contract, so the same mock serves the text presenter.
func (v *mockView) SetText(s string)                 { v.text = s }
func (v *mockView) CopyToClipboard(s string)         {}
func (v *mockView) HighlightMatches(m []model.Match) {}

// OCRView contract.
func (v *mockView) SetBusy(b bool) { v.busy = b }

func (v *mockView) lastStatus() string {
	if len(v.statuses) == 0 {
		return ""
	}
	return v.statuses[len(v.statuses)-1]
}

type fakeCaptureSvc struct {
	startErr error
	starts   int
	stops    int
	running  bool
	frame    *image.RGBA
}

func (s *fakeCaptureSvc) Start(index int) error {
	s.starts++
	if s.startErr != nil {
		return s.startErr
	}
	s.running = true
	return nil
}

func (s *fakeCaptureSvc) Stop() {
	if s.running {
		s.stops++
		s.running = false
	}
}

func (s *fakeCaptureSvc) Running() bool { return s.running }

func (s *fakeCaptureSvc) LatestFrame() capture.Snapshot {
	return capture.Snapshot{Image: s.frame, Sequence: 1}
}

func (s *fakeCaptureSvc) Stats() capture.Stats { return capture.Stats{} }

type stubEngine struct {
	lastWidth  int
	lastHeight int
	release    chan struct{}
}

func (e *stubEngine) Recognize(ctx context.Context, img image.Image) (ocr.Result, error) {
	e.lastWidth, e.lastHeight = img.Bounds().Dx(), img.Bounds().Dy()
	if e.release != nil {
		<-e.release
	}
	return ocr.Result{Text: "stub"}, nil
}

func (e *stubEngine) Close() error { return nil }

type fixture struct {
	ctrl   *Controller
	view   *mockView
	svc    *fakeCaptureSvc
	engine *stubEngine
	camera *model.CameraModel
	frames *model.FrameModel
	ocrP   *presenter.OCRPresenter
	cfg    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultConfig()
	cfgPath := filepath.Join(t.TempDir(), "config.json")
	view := &mockView{}
	svc := &fakeCaptureSvc{}
	engine := &stubEngine{}
	camera := &model.CameraModel{}
	frames := model.NewFrameModel()
	textP := presenter.NewTextPresenter(model.NewTextModel(), view, discardLogger)
	ocrP := presenter.NewOCRPresenter(engine, camera, frames, textP, view, cfg, discardLogger)
	ctrl := NewController(cfg, cfgPath, discardLogger, camera, frames, svc, ocrP, textP, view)
	return &fixture{ctrl: ctrl, view: view, svc: svc, engine: engine, camera: camera, frames: frames, ocrP: ocrP, cfg: cfg}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func waitForResult(t *testing.T, f *fixture) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		f.ocrP.ProcessResults()
		if !f.ocrP.InFlight() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("recognition did not finish")
}

func TestLoadImage_ShowsFrameAndRemembersDir(t *testing.T) {
	f := newFixture(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "page.png")
	writePNG(t, path, 64, 48)
	f.view.openPath = path

	f.ctrl.Dispatch(ActionLoadImage)

	if f.frames.Frame() == nil {
		t.Fatal("no frame loaded")
	}
	if !strings.Contains(f.view.lastStatus(), "page.png") {
		t.Fatalf("status = %q", f.view.lastStatus())
	}
	if f.cfg.LastDir != dir {
		t.Fatalf("LastDir = %q, want %q", f.cfg.LastDir, dir)
	}
}

func TestLoadImage_DecodeErrorKeepsPreviousFrame(t *testing.T) {
	f := newFixture(t)
	prev := image.NewRGBA(image.Rect(0, 0, 10, 10))
	f.frames.SetFrame(prev)

	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	f.view.openPath = path

	f.ctrl.Dispatch(ActionLoadImage)

	if f.frames.Frame() != prev {
		t.Fatal("previous frame replaced after decode failure")
	}
	if len(f.view.dialogs) != 1 {
		t.Fatalf("dialogs = %v", f.view.dialogs)
	}
}

func TestLoadImage_CancelledDialogIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.view.openPath = ""
	f.ctrl.Dispatch(ActionLoadImage)
	if f.frames.Frame() != nil || len(f.view.statuses) != 0 {
		t.Fatal("cancelled dialog changed state")
	}
}

func TestLoadImage_StopsRunningCamera(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch(ActionStartCamera)
	if !f.svc.running {
		t.Fatal("camera not started")
	}
	path := filepath.Join(t.TempDir(), "doc.png")
	writePNG(t, path, 32, 32)
	f.view.openPath = path

	f.ctrl.Dispatch(ActionLoadImage)

	if f.svc.running || f.camera.State() != model.CameraStopped {
		t.Fatal("camera still running after image load")
	}
}

func TestStartCamera_DeviceUnavailableShowsDialog(t *testing.T) {
	f := newFixture(t)
	f.svc.startErr = capture.ErrDeviceUnavailable

	f.ctrl.Dispatch(ActionStartCamera)

	if f.camera.State() != model.CameraStopped {
		t.Fatal("camera marked running despite failure")
	}
	if len(f.view.dialogs) != 1 {
		t.Fatalf("dialogs = %v", f.view.dialogs)
	}
	if f.view.lastStatus() != "Camera unavailable" {
		t.Fatalf("status = %q", f.view.lastStatus())
	}
}

func TestStartStopCamera_Lifecycle(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Dispatch(ActionStartCamera)
	if f.camera.State() != model.CameraRunning || f.view.camState != model.CameraRunning {
		t.Fatal("start did not take effect")
	}
	// Starting again while running is a no-op.
	f.ctrl.Dispatch(ActionStartCamera)
	if f.svc.starts != 1 {
		t.Fatalf("service started %d times", f.svc.starts)
	}

	f.ctrl.Dispatch(ActionStopCamera)
	if f.camera.State() != model.CameraStopped || f.svc.running {
		t.Fatal("stop did not take effect")
	}
	// Stopping again is a no-op.
	f.ctrl.Dispatch(ActionStopCamera)
	if f.svc.stops != 1 {
		t.Fatalf("service stopped %d times", f.svc.stops)
	}
}

func TestStartCamera_ResumeFromPauseClearsOverlayAndSelection(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch(ActionStartCamera)

	frame := image.NewRGBA(image.Rect(0, 0, 100, 80))
	f.frames.SetFrame(frame)
	f.ctrl.PointerDown(10, 10)
	f.ctrl.PointerMove(50, 40)
	f.ctrl.PointerUp(50, 40)
	if _, ok := f.ctrl.Selector.Region(); !ok {
		t.Fatal("selection not set")
	}

	f.ctrl.Dispatch(ActionRunOCR)
	if f.camera.State() != model.CameraPaused {
		t.Fatal("recognition did not pause the camera")
	}
	waitForResult(t, f)
	if f.frames.Displayed() == frame {
		t.Fatal("no overlay after recognition")
	}

	f.ctrl.Dispatch(ActionStartCamera)
	if f.camera.State() != model.CameraRunning {
		t.Fatal("resume did not take effect")
	}
	if f.frames.Displayed() != frame {
		t.Fatal("overlay survived the resume")
	}
	if _, ok := f.ctrl.Selector.Region(); ok {
		t.Fatal("selection survived the resume")
	}
	if f.svc.starts != 1 {
		t.Fatal("resume restarted the capture service")
	}
}

func TestRunOCR_PauseReflectsInCameraControls(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch(ActionStartCamera)
	f.frames.SetFrame(image.NewRGBA(image.Rect(0, 0, 40, 40)))

	f.ctrl.Dispatch(ActionRunOCR)

	// The paused preview must leave the start control usable as Resume.
	if f.camera.State() != model.CameraPaused {
		t.Fatal("recognition did not pause the camera")
	}
	if f.view.camState != model.CameraPaused {
		t.Fatalf("view camera controls = %v, want paused", f.view.camState)
	}
	waitForResult(t, f)

	f.ctrl.Dispatch(ActionStartCamera)
	if f.view.camState != model.CameraRunning {
		t.Fatalf("view camera controls = %v after resume, want running", f.view.camState)
	}
}

func TestRunOCR_NoFrameSetsStatus(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Dispatch(ActionRunOCR)
	if !strings.Contains(f.view.lastStatus(), "Load an image") {
		t.Fatalf("status = %q", f.view.lastStatus())
	}
}

func TestRunOCR_SelectionRestrictsEngineInput(t *testing.T) {
	f := newFixture(t)
	f.frames.SetFrame(image.NewRGBA(image.Rect(0, 0, 200, 150)))

	f.ctrl.PointerDown(20, 30)
	f.ctrl.PointerMove(80, 90)
	f.ctrl.PointerUp(80, 90)

	f.ctrl.Dispatch(ActionRunOCR)
	waitForResult(t, f)

	if f.engine.lastWidth != 60 || f.engine.lastHeight != 60 {
		t.Fatalf("engine saw %dx%d, want 60x60", f.engine.lastWidth, f.engine.lastHeight)
	}
}

func TestRunOCR_WhileBusySetsStatus(t *testing.T) {
	f := newFixture(t)
	f.engine.release = make(chan struct{})
	f.frames.SetFrame(image.NewRGBA(image.Rect(0, 0, 40, 40)))

	f.ctrl.Dispatch(ActionRunOCR)
	f.ctrl.Dispatch(ActionRunOCR)
	if f.view.lastStatus() != "Recognition already running" {
		t.Fatalf("status = %q", f.view.lastStatus())
	}
	close(f.engine.release)
	waitForResult(t, f)
}

func TestClearSelection(t *testing.T) {
	f := newFixture(t)
	f.frames.SetFrame(image.NewRGBA(image.Rect(0, 0, 100, 100)))
	f.ctrl.PointerDown(5, 5)
	f.ctrl.PointerMove(50, 50)
	f.ctrl.PointerUp(50, 50)

	f.ctrl.Dispatch(ActionClearSelection)
	if _, ok := f.ctrl.Selector.Region(); ok {
		t.Fatal("selection not cleared")
	}
	if f.view.selActive {
		t.Fatal("view still shows a selection")
	}
}

func TestSaveText_EmptyWarnsWithoutDialog(t *testing.T) {
	f := newFixture(t)
	f.view.savePath = filepath.Join(t.TempDir(), "out.txt")
	f.ctrl.Dispatch(ActionSaveText)
	if f.view.lastStatus() != "No text to save" {
		t.Fatalf("status = %q", f.view.lastStatus())
	}
}

func TestPointerEvents_IgnoredWithoutFrame(t *testing.T) {
	f := newFixture(t)
	f.ctrl.PointerDown(10, 10)
	f.ctrl.PointerMove(20, 20)
	f.ctrl.PointerUp(20, 20)
	if _, ok := f.ctrl.Selector.Region(); ok {
		t.Fatal("selection set without a frame")
	}
}
