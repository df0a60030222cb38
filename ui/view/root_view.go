package view

import (
	"image"
	"log/slog"

	"github.com/okvist/text-reader-go/ui/model"
	"github.com/okvist/text-reader-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions the root view forwards to the controller.
type Handlers struct {
	OnLoadImage      func()
	OnStartCamera    func()
	OnStopCamera     func()
	OnRunOCR         func()
	OnClearSelection func()
	OnCopy           func()
	OnSave           func()
	OnClear          func()
	OnSearch         func(query string)
	OnExit           func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews but exposes minimal exported fields for presenters.
type RootView struct {
	logger *slog.Logger

	// Subviews
	Frame FramePanel
	Text  TextPanel

	// Widgets
	StatusLabel *LabelWidget
	runBtn      *ButtonWidget
	startBtn    *ButtonWidget
	stopBtn     *ButtonWidget
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout. Handlers are invoked on user actions.
func (rv *RootView) Build(handlers Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	menubar := Menu()
	fileMenu := menubar.Menu()
	fileMenu.AddCommand(Lbl("Load Image..."), Command(handlers.OnLoadImage))
	fileMenu.AddCommand(Lbl("Save Text..."), Command(handlers.OnSave))
	fileMenu.AddSeparator()
	fileMenu.AddCommand(Lbl("Exit"), Command(handlers.OnExit))
	menubar.AddCascade(Lbl("File"), Mnu(fileMenu))
	helpMenu := menubar.Menu()
	helpMenu.AddCommand(Lbl("About"), Command(func() {
		MessageBox(Icon("info"), Title("About"),
			Msg("Text Reader\n\nLoads an image or a live capture, lets you select a region and extracts the text in it."))
	}))
	menubar.AddCascade(Lbl("Help"), Mnu(helpMenu))
	App.Configure(Mnu(menubar))

	// Row 0: action buttons
	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	loadBtn := Button(Txt("Load Image"), Style(theme.StylePrimaryButton), Command(handlers.OnLoadImage))
	Grid(loadBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.startBtn = Button(Txt("Start Camera"), Style(theme.StylePrimaryButton), Command(handlers.OnStartCamera))
	Grid(rv.startBtn, In(btnFrame), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.stopBtn = Button(Txt("Stop Camera"), Command(handlers.OnStopCamera))
	Grid(rv.stopBtn, In(btnFrame), Row(0), Column(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.runBtn = Button(Txt("Run OCR"), Style(theme.StylePrimaryButton), Command(handlers.OnRunOCR))
	Grid(rv.runBtn, In(btnFrame), Row(0), Column(3), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	clearSelBtn := Button(Txt("Clear Selection"), Command(handlers.OnClearSelection))
	Grid(clearSelBtn, In(btnFrame), Row(0), Column(4), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Style(theme.StyleDangerButton), Command(handlers.OnExit))
	Grid(exitBtn, In(btnFrame), Row(0), Column(5), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: frame preview with drag selection
	rv.Frame = NewFramePanel(1)

	// Rows 2..n: extracted text panel
	textPanel, endRow := NewTextPanel(2, TextPanelHandlers{
		OnCopy:   handlers.OnCopy,
		OnSave:   handlers.OnSave,
		OnClear:  handlers.OnClear,
		OnSearch: handlers.OnSearch,
	})
	rv.Text = textPanel

	// Status bar
	rv.StatusLabel = Label(Txt("Ready"), Style(theme.StyleStatusLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(endRow), Column(0), Columnspan(5), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
}

// SetStatus updates the status bar text.
func (rv *RootView) SetStatus(msg string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(msg))
	}
}

// ShowError pops a modal error dialog.
func (rv *RootView) ShowError(title, msg string) {
	if rv == nil {
		return
	}
	MessageBox(Icon("error"), Title(title), Msg(msg))
}

// SetBusy disables the recognition button while a pass is running.
func (rv *RootView) SetBusy(busy bool) {
	if rv == nil || rv.runBtn == nil {
		return
	}
	state := "normal"
	if busy {
		state = "disabled"
	}
	rv.runBtn.Configure(State(state))
}

// SetCameraControls reflects the camera lifecycle in the start and stop
// buttons. While paused the start button reads Resume and stays enabled so
// the user can return to the live preview.
func (rv *RootView) SetCameraControls(state model.CameraState) {
	if rv == nil || rv.startBtn == nil || rv.stopBtn == nil {
		return
	}
	startLabel := "Start Camera"
	if state == model.CameraPaused {
		startLabel = "Resume Camera"
	}
	startState := "normal"
	if state == model.CameraRunning {
		startState = "disabled"
	}
	stopState := "normal"
	if state == model.CameraStopped {
		stopState = "disabled"
	}
	rv.startBtn.Configure(Txt(startLabel), State(startState))
	rv.stopBtn.Configure(State(stopState))
}

// UpdateFrame proxies to the frame panel.
func (rv *RootView) UpdateFrame(img image.Image) {
	if rv != nil && rv.Frame != nil {
		rv.Frame.UpdateFrame(img)
	}
}

// SetSelection proxies the selection rectangle to the frame panel.
func (rv *RootView) SetSelection(rect image.Rectangle, active bool) {
	if rv != nil && rv.Frame != nil {
		rv.Frame.SetSelection(rect, active)
	}
}

// SetText proxies to the text panel.
func (rv *RootView) SetText(s string) {
	if rv != nil && rv.Text != nil {
		rv.Text.SetText(s)
	}
}

// HighlightMatches proxies to the text panel.
func (rv *RootView) HighlightMatches(matches []model.Match) {
	if rv != nil && rv.Text != nil {
		rv.Text.HighlightMatches(matches)
	}
}

// CopyToClipboard replaces the clipboard contents with s.
func (rv *RootView) CopyToClipboard(s string) {
	ClipboardClear()
	ClipboardAppend(s)
}

// PromptOpenImage shows the file open dialog and returns the chosen path,
// empty when cancelled.
func (rv *RootView) PromptOpenImage(initialDir string) string {
	paths := GetOpenFile(Title("Open Image"), Initialdir(initialDir))
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// PromptSaveText shows the file save dialog and returns the chosen path,
// empty when cancelled.
func (rv *RootView) PromptSaveText(initialDir string) string {
	return GetSaveFile(Title("Save Text"), Initialdir(initialDir), Defaultextension(".txt"))
}
