package imgproc

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/parallel"
)

// Bilateral applies an edge-preserving smoothing filter with a square window
// of the given diameter. sigmaColor controls how much intensity difference a
// neighbor may have before it stops contributing; sigmaSpace controls the
// spatial falloff. A diameter below 3 returns a copy of the input.
func Bilateral(src *image.Gray, diameter int, sigmaColor, sigmaSpace float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if diameter < 3 {
		copy(out.Pix, src.Pix)
		return out
	}
	if diameter%2 == 0 {
		diameter++
	}
	radius := diameter / 2
	if sigmaColor <= 0 {
		sigmaColor = 1
	}
	if sigmaSpace <= 0 {
		sigmaSpace = 1
	}

	// Spatial weights depend only on the offset, range weights only on the
	// intensity delta. Both are small enough to precompute.
	spatial := make([]float64, diameter*diameter)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+radius)*diameter+(dx+radius)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}
	rangeW := make([]float64, 256)
	for d := 0; d < 256; d++ {
		rangeW[d] = math.Exp(-float64(d*d) / (2 * sigmaColor * sigmaColor))
	}

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				center := src.Pix[y*src.Stride+x]
				var sum, norm float64
				for dy := -radius; dy <= radius; dy++ {
					ny := y + dy
					if ny < 0 || ny >= h {
						continue
					}
					for dx := -radius; dx <= radius; dx++ {
						nx := x + dx
						if nx < 0 || nx >= w {
							continue
						}
						v := src.Pix[ny*src.Stride+nx]
						delta := int(v) - int(center)
						if delta < 0 {
							delta = -delta
						}
						wgt := spatial[(dy+radius)*diameter+(dx+radius)] * rangeW[delta]
						sum += wgt * float64(v)
						norm += wgt
					}
				}
				out.Pix[y*out.Stride+x] = uint8(sum/norm + 0.5)
			}
		}
	})
	return out
}
