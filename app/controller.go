package app

import (
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"log/slog"

	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/domain/capture"
	"github.com/okvist/text-reader-go/domain/frame"
	"github.com/okvist/text-reader-go/domain/roi"
	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/presenter"
)

// Action enumerates the user-triggered operations the controller dispatches.
type Action int

const (
	ActionLoadImage Action = iota
	ActionStartCamera
	ActionStopCamera
	ActionRunOCR
	ActionClearSelection
	ActionCopyText
	ActionSaveText
	ActionClearText
)

// ControllerView is the subset of view operations the controller needs.
type ControllerView interface {
	SetStatus(msg string)
	ShowError(title, msg string)
	SetCameraControls(state model.CameraState)
	SetSelection(rect image.Rectangle, active bool)
	PromptOpenImage(initialDir string) string
	PromptSaveText(initialDir string) string
}

// Controller owns the application state transitions: loading frames, driving
// the camera lifecycle, dispatching recognition and the text panel actions.
// All methods run on the UI thread.
type Controller struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	Camera   *model.CameraModel
	Frames   *model.FrameModel
	Selector *roi.Selector

	captureSvc capture.Service
	ocrP       *presenter.OCRPresenter
	textP      *presenter.TextPresenter
	view       ControllerView
}

func NewController(cfg *config.Config, cfgPath string, logger *slog.Logger, camera *model.CameraModel, frames *model.FrameModel, captureSvc capture.Service, ocrP *presenter.OCRPresenter, textP *presenter.TextPresenter, view ControllerView) *Controller {
	return &Controller{
		cfg:        cfg,
		cfgPath:    cfgPath,
		logger:     logger,
		Camera:     camera,
		Frames:     frames,
		Selector:   roi.NewSelector(image.Rectangle{}),
		captureSvc: captureSvc,
		ocrP:       ocrP,
		textP:      textP,
		view:       view,
	}
}

// Dispatch routes an action to its handler.
func (c *Controller) Dispatch(action Action) {
	if c == nil {
		return
	}
	switch action {
	case ActionLoadImage:
		c.loadImage()
	case ActionStartCamera:
		c.startCamera()
	case ActionStopCamera:
		c.stopCamera()
	case ActionRunOCR:
		c.runOCR()
	case ActionClearSelection:
		c.clearSelection()
	case ActionCopyText:
		_ = c.textP.Copy()
	case ActionSaveText:
		c.saveText()
	case ActionClearText:
		c.textP.Clear()
	default:
		if c.logger != nil {
			c.logger.Warn("unknown action", "action", int(action))
		}
	}
}

func (c *Controller) loadImage() {
	path := c.view.PromptOpenImage(c.cfg.LastDir)
	if path == "" {
		return
	}
	img, err := frame.LoadImage(path)
	if err != nil {
		// The previously shown frame stays in place.
		if c.logger != nil {
			c.logger.Error("load image", "path", path, "error", err)
		}
		c.view.SetStatus("Could not load image")
		if errors.Is(err, frame.ErrDecode) {
			c.view.ShowError("Load Image", fmt.Sprintf("Could not read %s as an image.", filepath.Base(path)))
		}
		return
	}

	// A loaded file replaces the live preview entirely.
	if c.Camera.State() != model.CameraStopped {
		c.captureSvc.Stop()
		c.Camera.SetState(model.CameraStopped)
		c.view.SetCameraControls(model.CameraStopped)
	}
	c.Frames.SetFrame(img)
	c.Selector.SetBounds(img.Bounds())
	c.view.SetSelection(image.Rectangle{}, false)
	c.view.SetStatus(fmt.Sprintf("Loaded %s (%dx%d)", filepath.Base(path), img.Bounds().Dx(), img.Bounds().Dy()))

	c.cfg.LastDir = filepath.Dir(path)
	if err := c.cfg.Save(c.cfgPath); err != nil && c.logger != nil {
		c.logger.Warn("config save", "error", err)
	}
}

func (c *Controller) startCamera() {
	switch c.Camera.State() {
	case model.CameraRunning:
		return
	case model.CameraPaused:
		// Resume: the frozen frame, its overlay and the selection all belong
		// to the paused moment.
		c.Frames.ClearOverlay()
		c.clearSelection()
		c.Camera.SetState(model.CameraRunning)
		c.view.SetCameraControls(model.CameraRunning)
		c.view.SetStatus("Live preview resumed")
		return
	}

	if err := c.captureSvc.Start(c.cfg.CaptureIndex); err != nil {
		if c.logger != nil {
			c.logger.Error("start capture", "index", c.cfg.CaptureIndex, "error", err)
		}
		c.view.SetStatus("Camera unavailable")
		if errors.Is(err, capture.ErrDeviceUnavailable) {
			c.view.ShowError("Camera", fmt.Sprintf("Capture device %d is not available.", c.cfg.CaptureIndex))
		}
		return
	}
	c.Camera.SetState(model.CameraRunning)
	c.view.SetCameraControls(model.CameraRunning)
	c.view.SetStatus("Live preview running")
}

func (c *Controller) stopCamera() {
	if c.Camera.State() == model.CameraStopped {
		return
	}
	c.captureSvc.Stop()
	c.Camera.SetState(model.CameraStopped)
	c.view.SetCameraControls(model.CameraStopped)
	c.view.SetStatus("Camera stopped")
}

func (c *Controller) runOCR() {
	frameImg := c.Frames.Frame()
	if frameImg == nil {
		c.view.SetStatus("Load an image or start the camera first")
		return
	}
	c.syncSelectorBounds(frameImg.Bounds())
	var region *image.Rectangle
	if r, ok := c.Selector.Region(); ok {
		region = &r
	}
	if err := c.ocrP.Run(frameImg, region); err != nil {
		if errors.Is(err, presenter.ErrBusy) {
			c.view.SetStatus("Recognition already running")
			return
		}
		if c.logger != nil {
			c.logger.Error("run recognition", "error", err)
		}
		c.view.SetStatus("Recognition could not start")
		return
	}
	// Starting a pass freezes a live preview; offer the resume control.
	if c.Camera.State() == model.CameraPaused {
		c.view.SetCameraControls(model.CameraPaused)
	}
}

func (c *Controller) clearSelection() {
	c.Selector.Clear()
	c.view.SetSelection(image.Rectangle{}, false)
}

func (c *Controller) saveText() {
	if c.textP.Text.Empty() {
		c.view.SetStatus("No text to save")
		return
	}
	path := c.view.PromptSaveText(c.cfg.LastDir)
	if path == "" {
		return
	}
	if err := c.textP.Save(path); err != nil {
		c.view.ShowError("Save Text", err.Error())
	}
}

// Search forwards a query from the search box.
func (c *Controller) Search(query string) {
	c.textP.Search(query)
}

// Pointer handlers receive frame-space coordinates from the frame panel.

func (c *Controller) PointerDown(x, y int) {
	frameImg := c.Frames.Frame()
	if frameImg == nil {
		return
	}
	c.syncSelectorBounds(frameImg.Bounds())
	c.Selector.PointerDown(image.Pt(x, y))
	c.pushSelection()
}

func (c *Controller) PointerMove(x, y int) {
	c.Selector.PointerMove(image.Pt(x, y))
	c.pushSelection()
}

func (c *Controller) PointerUp(x, y int) {
	c.Selector.PointerUp(image.Pt(x, y))
	c.pushSelection()
	if r, ok := c.Selector.Region(); ok {
		c.view.SetStatus(fmt.Sprintf("Selection %dx%d", r.Dx(), r.Dy()))
	}
}

func (c *Controller) pushSelection() {
	rect := c.Selector.Rect()
	c.view.SetSelection(rect, !rect.Empty())
}

// syncSelectorBounds adopts new frame bounds without discarding a selection
// that is still valid for the same geometry.
func (c *Controller) syncSelectorBounds(b image.Rectangle) {
	if c.Selector.Bounds() != b {
		c.Selector.SetBounds(b)
	}
}

// Shutdown stops the background capture on exit.
func (c *Controller) Shutdown() {
	if c == nil {
		return
	}
	c.captureSvc.Stop()
	c.Camera.SetState(model.CameraStopped)
}
