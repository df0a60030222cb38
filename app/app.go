package app

import (
	"fmt"
	"time"

	"log/slog"

	. "modernc.org/tk9.0"

	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/presenter"
	"github.com/okvist/text-reader-go/ui/view"
)

const tick = 30 * time.Millisecond

type app struct {
	container *AppContainer
	logger    *slog.Logger
	afterID   string
	loop      *presenter.Loop
}

// NewApp builds the container and the window.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{logger: logger}

	container, err := BuildContainer(cfg, cfgPath, logger)
	a.container = container

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))

	ctrl := container.Controller
	container.RootView.Build(view.Handlers{
		OnLoadImage:      func() { ctrl.Dispatch(ActionLoadImage) },
		OnStartCamera:    func() { ctrl.Dispatch(ActionStartCamera) },
		OnStopCamera:     func() { ctrl.Dispatch(ActionStopCamera) },
		OnRunOCR:         func() { ctrl.Dispatch(ActionRunOCR) },
		OnClearSelection: func() { ctrl.Dispatch(ActionClearSelection) },
		OnCopy:           func() { ctrl.Dispatch(ActionCopyText) },
		OnSave:           func() { ctrl.Dispatch(ActionSaveText) },
		OnClear:          func() { ctrl.Dispatch(ActionClearText) },
		OnSearch:         ctrl.Search,
		OnExit:           a.exitHandler,
	})
	container.RootView.Frame.OnPointer(ctrl.PointerDown, ctrl.PointerMove, ctrl.PointerUp)
	container.RootView.SetCameraControls(model.CameraStopped)

	if err != nil {
		logger.Error("ocr engine init", "error", err)
		container.RootView.SetStatus("OCR engine unavailable")
		container.RootView.ShowError("OCR Engine",
			"Tesseract could not be initialized. Recognition is disabled.")
	}

	a.loop = presenter.NewLoop(container.OCRPresenter, container.PreviewPresenter, a.scheduleUpdate)
	return a
}

// Start kicks off the update loop and blocks in the Tk event loop.
func (a *app) Start() {
	a.scheduleUpdate()
	App.Wait()
}

func (a *app) scheduleUpdate() {
	// Schedule the next tick using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.loop.Tick() })
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.container.Controller.Shutdown()
	if a.container.Engine != nil {
		if err := a.container.Engine.Close(); err != nil && a.logger != nil {
			a.logger.Error("engine close", "error", err)
		}
	}
	Destroy(App)
}
