package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	"github.com/anthonynsimon/bild/imgio"

	"github.com/okvist/text-reader-go/config"
	"github.com/okvist/text-reader-go/domain/imgproc"
	"github.com/okvist/text-reader-go/domain/ocr"
	"github.com/okvist/text-reader-go/domain/overlay"
	"github.com/okvist/text-reader-go/ui/model"
)

// ErrBusy is returned when a recognition pass is requested while a previous
// one is still running.
var ErrBusy = errors.New("presenter: recognition already in progress")

// OCRView is the UI surface updated with recognition outcomes.
type OCRView interface {
	SetStatus(msg string)
	ShowError(title, msg string)
	SetBusy(busy bool)
}

// TextSink receives the recognized text. Satisfied by TextPresenter.
type TextSink interface {
	SetContent(s string)
}

type ocrTask struct {
	frame *image.RGBA
	roi   *image.Rectangle
	cfg   config.Config
}

type ocrOutcome struct {
	result   ocr.Result
	regions  []ocr.Region
	frame    *image.RGBA
	err      error
	duration time.Duration
}

// OCRPresenter runs recognition passes on a single background worker and
// applies the results to the models on the UI tick. At most one pass is in
// flight at a time.
type OCRPresenter struct {
	Engine ocr.Engine
	Camera *model.CameraModel
	Frames *model.FrameModel
	Text   TextSink
	View   OCRView
	Config *config.Config
	logger *slog.Logger

	workerOnce sync.Once
	workCh     chan ocrTask
	resultCh   chan ocrOutcome
	inflight   bool
}

func NewOCRPresenter(engine ocr.Engine, camera *model.CameraModel, frames *model.FrameModel, text TextSink, view OCRView, cfg *config.Config, logger *slog.Logger) *OCRPresenter {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &OCRPresenter{
		Engine:   engine,
		Camera:   camera,
		Frames:   frames,
		Text:     text,
		View:     view,
		Config:   cfg,
		logger:   logger,
		workCh:   make(chan ocrTask, 1),
		resultCh: make(chan ocrOutcome, 1),
	}
}

// InFlight reports whether a pass is currently running.
func (p *OCRPresenter) InFlight() bool { return p != nil && p.inflight }

// Run starts a recognition pass over frame, restricted to roi when non-nil.
// A running camera preview is paused so the recognized frame stays on screen.
func (p *OCRPresenter) Run(frame *image.RGBA, roi *image.Rectangle) error {
	if p == nil || p.Engine == nil {
		return fmt.Errorf("%w", ocr.ErrEngineUnavailable)
	}
	if p.inflight {
		return ErrBusy
	}
	if frame == nil {
		return fmt.Errorf("%w: no frame loaded", imgproc.ErrInvalidImage)
	}
	if p.Camera.State() == model.CameraRunning {
		p.Camera.SetState(model.CameraPaused)
	}
	p.ensureWorker()
	p.inflight = true
	if p.View != nil {
		p.View.SetBusy(true)
		p.View.SetStatus("Recognizing...")
	}
	// The channel is empty whenever no pass is in flight, so this never blocks.
	p.workCh <- ocrTask{frame: frame, roi: roi, cfg: *p.Config}
	return nil
}

// ProcessResults drains completed passes and applies them. Runs on the UI tick.
func (p *OCRPresenter) ProcessResults() {
	if p == nil {
		return
	}
	for {
		select {
		case out := <-p.resultCh:
			p.inflight = false
			if p.View != nil {
				p.View.SetBusy(false)
			}
			p.applyOutcome(out)
		default:
			return
		}
	}
}

func (p *OCRPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *OCRPresenter) runWorker() {
	for task := range p.workCh {
		p.resultCh <- p.executeTask(task)
	}
}

func (p *OCRPresenter) executeTask(task ocrTask) ocrOutcome {
	out := ocrOutcome{frame: task.frame}
	start := time.Now()

	prepared, err := imgproc.Preprocess(task.frame, task.roi, imgproc.Options{
		BilateralDiameter:   task.cfg.BilateralDiameter,
		BilateralSigmaColor: task.cfg.BilateralSigmaColor,
		BilateralSigmaSpace: task.cfg.BilateralSigmaSpace,
		AdaptiveBlockSize:   task.cfg.AdaptiveBlockSize,
		AdaptiveBias:        task.cfg.AdaptiveBias,
	})
	if err != nil {
		out.err = err
		out.duration = time.Since(start)
		return out
	}
	if task.cfg.Debug {
		p.dumpPrepared(prepared)
	}

	timeout := time.Duration(task.cfg.OCRTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := p.Engine.Recognize(ctx, prepared)
	out.duration = time.Since(start)
	if err != nil {
		out.err = err
		return out
	}
	out.result = result
	out.regions = result.Regions
	if task.roi != nil {
		out.regions = ocr.OffsetRegions(result.Regions, task.roi.Min)
	}
	return out
}

// dumpPrepared writes the binarized image next to the temp dir so a bad
// preprocessing parameter set can be inspected.
func (p *OCRPresenter) dumpPrepared(img image.Image) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("text-reader-prepared-%d.png", time.Now().UnixMilli()))
	if err := imgio.Save(path, img, imgio.PNGEncoder()); err != nil {
		if p.logger != nil {
			p.logger.Warn("debug dump failed", "error", err)
		}
		return
	}
	if p.logger != nil {
		p.logger.Debug("wrote preprocessed image", "path", path)
	}
}

func (p *OCRPresenter) applyOutcome(out ocrOutcome) {
	if out.err != nil {
		p.reportError(out.err)
		return
	}
	if p.Text != nil {
		p.Text.SetContent(out.result.Text)
	}
	if p.Frames != nil && out.frame != nil && p.Frames.Frame() == out.frame {
		p.Frames.SetOverlay(overlay.Render(out.frame, out.regions))
	}
	if p.logger != nil {
		p.logger.Info("recognition complete", "words", len(out.regions), "duration", out.duration)
	}
	if p.View == nil {
		return
	}
	if out.result.Text == "" {
		p.View.SetStatus("No text detected")
		return
	}
	p.View.SetStatus(fmt.Sprintf("Recognized %d words in %s", len(out.regions), out.duration.Round(time.Millisecond)))
}

func (p *OCRPresenter) reportError(err error) {
	if p.logger != nil {
		p.logger.Error("recognition", "error", err)
	}
	if p.View == nil {
		return
	}
	switch {
	case errors.Is(err, ocr.ErrEngineTimeout):
		p.View.SetStatus("Recognition timed out")
		p.View.ShowError("Recognition", "The OCR engine did not finish in time.")
	case errors.Is(err, imgproc.ErrInvalidImage):
		p.View.SetStatus("Nothing to recognize")
	default:
		p.View.SetStatus("Recognition failed")
		p.View.ShowError("Recognition", err.Error())
	}
}
