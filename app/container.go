package app

import (
	"time"

	"log/slog"

	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/domain/capture"
	"github.com/okvist/text-reader-go/domain/ocr"
	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/presenter"
	"github.com/okvist/text-reader-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Camera     *model.CameraModel
	Frames     *model.FrameModel
	Text       *model.TextModel
	CaptureSvc capture.Service
	Engine     ocr.Engine
	RootView   *view.RootView

	// Presenters
	OCRPresenter     *presenter.OCRPresenter
	TextPresenter    *presenter.TextPresenter
	PreviewPresenter *presenter.PreviewPresenter
	Controller       *Controller
	Loop             *presenter.Loop
}

// BuildContainer constructs all components. The OCR engine may fail to
// initialize; the container is still returned so the rest of the application
// works, with recognition reported as unavailable.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) (*AppContainer, error) {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Camera = &model.CameraModel{}
	c.Frames = model.NewFrameModel()
	c.Text = model.NewTextModel()
	c.CaptureSvc = capture.NewService(nil, time.Duration(cfg.CaptureIntervalMs)*time.Millisecond, logger)

	engine, err := ocr.NewTesseractEngine(ocr.Options{
		Language:       cfg.Language,
		PageSegMode:    cfg.PageSegMode,
		TessdataPrefix: cfg.TessdataPrefix,
		MinConfidence:  cfg.MinConfidence,
	}, logger)
	if err == nil {
		c.Engine = engine
	}

	c.RootView = view.NewRootView(logger)
	c.TextPresenter = presenter.NewTextPresenter(c.Text, c.RootView, logger)
	c.OCRPresenter = presenter.NewOCRPresenter(c.Engine, c.Camera, c.Frames, c.TextPresenter, c.RootView, cfg, logger)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.CaptureSvc, c.Camera, c.Frames, c.RootView)
	c.Controller = NewController(cfg, cfgPath, logger, c.Camera, c.Frames, c.CaptureSvc, c.OCRPresenter, c.TextPresenter, c.RootView)
	return c, err
}
