package imgproc

import (
	"image"

	"github.com/anthonynsimon/bild/parallel"
)

// AdaptiveThreshold binarizes src by comparing each pixel against the mean of
// its blockSize x blockSize neighborhood minus bias. Pixels above the local
// threshold become white, the rest black. Uneven lighting across the frame
// therefore does not bleed into the binarization the way a single global
// threshold would.
func AdaptiveThreshold(src *image.Gray, blockSize, bias int) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out
	}
	if blockSize < 3 {
		blockSize = 3
	}
	if blockSize%2 == 0 {
		blockSize++
	}
	radius := blockSize / 2

	// Summed-area table, one row and column of zero padding. Local means then
	// cost four lookups per pixel regardless of block size.
	iw := w + 1
	integral := make([]int64, iw*(h+1))
	for y := 0; y < h; y++ {
		var rowSum int64
		for x := 0; x < w; x++ {
			rowSum += int64(src.Pix[y*src.Stride+x])
			integral[(y+1)*iw+x+1] = integral[y*iw+x+1] + rowSum
		}
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			y0 := max(0, y-radius)
			y1 := min(h-1, y+radius)
			for x := 0; x < w; x++ {
				x0 := max(0, x-radius)
				x1 := min(w-1, x+radius)
				area := int64((x1 - x0 + 1) * (y1 - y0 + 1))
				sum := integral[(y1+1)*iw+x1+1] - integral[y0*iw+x1+1] -
					integral[(y1+1)*iw+x0] + integral[y0*iw+x0]
				threshold := sum/area - int64(bias)
				if int64(src.Pix[y*src.Stride+x]) > threshold {
					out.Pix[y*out.Stride+x] = 255
				}
			}
		}
	})
	return out
}
