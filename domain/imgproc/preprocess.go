// Package imgproc prepares frames for OCR. The pipeline is crop, grayscale,
// edge-preserving denoise, adaptive binarization. All steps are deterministic
// pure functions over the input pixels.
package imgproc

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage is returned when the input (or the requested region) has
// zero width or height.
var ErrInvalidImage = errors.New("imgproc: invalid image dimensions")

// Options controls the denoising and binarization stages.
type Options struct {
	BilateralDiameter   int
	BilateralSigmaColor float64
	BilateralSigmaSpace float64
	AdaptiveBlockSize   int
	AdaptiveBias        int
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		BilateralDiameter:   5,
		BilateralSigmaColor: 50,
		BilateralSigmaSpace: 50,
		AdaptiveBlockSize:   31,
		AdaptiveBias:        10,
	}
}

// Preprocess crops src to roi (nil means the whole frame), converts to
// grayscale, applies a bilateral filter and adaptive thresholding. The output
// dimensions equal the crop dimensions. The input is never mutated.
func Preprocess(src image.Image, roi *image.Rectangle, opts Options) (*image.Gray, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidImage, b.Dx(), b.Dy())
	}
	rect := b
	if roi != nil {
		rect = roi.Intersect(b)
		if rect.Dx() <= 0 || rect.Dy() <= 0 {
			return nil, fmt.Errorf("%w: region %v outside frame %v", ErrInvalidImage, *roi, b)
		}
	}

	cropped := imaging.Crop(src, rect)
	gray := grayscale(cropped)
	denoised := Bilateral(gray, opts.BilateralDiameter, opts.BilateralSigmaColor, opts.BilateralSigmaSpace)
	return AdaptiveThreshold(denoised, opts.AdaptiveBlockSize, opts.AdaptiveBias), nil
}

// grayscale converts to single-channel intensity. imaging.Grayscale keeps the
// NRGBA layout, so the red channel carries the luma afterwards.
func grayscale(img *image.NRGBA) *image.Gray {
	g := imaging.Grayscale(img)
	b := g.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		src := g.Pix[y*g.Stride : y*g.Stride+b.Dx()*4]
		dst := out.Pix[y*out.Stride : y*out.Stride+b.Dx()]
		for x := 0; x < b.Dx(); x++ {
			dst[x] = src[x*4]
		}
	}
	return out
}
