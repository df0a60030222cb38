// Package ocr wraps the Tesseract engine behind a small interface so the rest
// of the application never touches the cgo client directly.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"
)

var (
	// ErrEngineUnavailable means Tesseract (or its language data) could not
	// be initialized at all.
	ErrEngineUnavailable = errors.New("ocr: engine unavailable")
	// ErrEngine wraps a failure of an individual recognition pass.
	ErrEngine = errors.New("ocr: recognition failed")
	// ErrEngineTimeout is returned when a pass exceeds its deadline.
	ErrEngineTimeout = errors.New("ocr: recognition timed out")
)

// Engine runs text recognition on a prepared image. Implementations must be
// safe for use from a single goroutine at a time; callers serialize.
type Engine interface {
	Recognize(ctx context.Context, img image.Image) (Result, error)
	Close() error
}

// Options configures the Tesseract client.
type Options struct {
	Language       string
	PageSegMode    int
	TessdataPrefix string
	MinConfidence  float64
}

type tesseractEngine struct {
	mu     sync.Mutex
	client *gosseract.Client
	opts   Options
	logger *slog.Logger
}

// NewTesseractEngine initializes a Tesseract client and verifies it can
// accept the requested language. The returned engine owns the client and
// must be closed.
func NewTesseractEngine(opts Options, logger *slog.Logger) (Engine, error) {
	if opts.Language == "" {
		opts.Language = "eng"
	}
	client := gosseract.NewClient()
	if opts.TessdataPrefix != "" {
		if err := client.SetTessdataPrefix(opts.TessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("%w: tessdata prefix %q: %v", ErrEngineUnavailable, opts.TessdataPrefix, err)
		}
	}
	if err := client.SetLanguage(opts.Language); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: language %q: %v", ErrEngineUnavailable, opts.Language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(opts.PageSegMode)); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: page segmentation mode %d: %v", ErrEngineUnavailable, opts.PageSegMode, err)
	}

	// Run a tiny probe image through the client so a broken installation
	// surfaces at startup instead of on the first user action.
	probe := image.NewGray(image.Rect(0, 0, 8, 8))
	var buf bytes.Buffer
	if err := png.Encode(&buf, probe); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}
	if _, err := client.Text(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, err)
	}

	if logger != nil {
		logger.Info("ocr engine ready", slog.String("tesseract", gosseract.Version()), slog.String("language", opts.Language), slog.Int("psm", opts.PageSegMode))
	}
	return &tesseractEngine{client: client, opts: opts, logger: logger}, nil
}

// Recognize runs one pass over img. An image containing no text is a success
// with an empty result, not an error. The context deadline is honored by
// abandoning the pass; the underlying client call still runs to completion in
// the background because Tesseract offers no cancellation.
func (e *tesseractEngine) Recognize(ctx context.Context, img image.Image) (Result, error) {
	if img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0 {
		return Result{}, fmt.Errorf("%w: empty input", ErrEngine)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}

	type outcome struct {
		res Result
		err error
	}
	ch := make(chan outcome, 1)
	go func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		res, err := e.recognizeLocked(buf.Bytes())
		ch <- outcome{res, err}
	}()

	select {
	case out := <-ch:
		return out.res, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return Result{}, ErrEngineTimeout
		}
		return Result{}, fmt.Errorf("%w: %v", ErrEngine, ctx.Err())
	}
}

func (e *tesseractEngine) recognizeLocked(pngBytes []byte) (Result, error) {
	if err := e.client.SetImageFromBytes(pngBytes); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}

	regions := make([]Region, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		regions = append(regions, Region{
			Text:       word,
			Box:        b.Box,
			Confidence: b.Confidence / 100,
		})
	}
	regions = FilterConfidence(regions, e.opts.MinConfidence)

	text, err := e.client.Text()
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrEngine, err)
	}
	return Result{Text: strings.TrimSpace(text), Regions: regions}, nil
}

func (e *tesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}
