package stages

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/anthonynsimon/bild/convolution"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
)

// Enhancements interpolate between a degenerate version of the image and
// the image itself: factor 0 gives the degenerate image, 1 the original,
// and larger factors extrapolate away from the degenerate image. Alpha is
// always taken from the original.

func brightness(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 {
		return img
	}
	return blend(image.NewNRGBA(img.Bounds()), img, factor)
}

func contrast(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 {
		return img
	}
	m := meanLuma(img)
	grey := imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
		return color.NRGBA{R: m, G: m, B: m, A: c.A}
	})
	return blend(grey, img, factor)
}

func saturation(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 {
		return img
	}
	grey := imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
		l := imaging.Luma(c)
		return color.NRGBA{R: l, G: l, B: l, A: c.A}
	})
	return blend(grey, img, factor)
}

func sharpen(img *image.NRGBA, factor float64) *image.NRGBA {
	if factor == 1 {
		return img
	}
	return blend(smooth(img), img, factor)
}

// meanLuma returns the average luminance of img rounded to the nearest
// integer.
func meanLuma(img *image.NRGBA) uint8 {
	b := img.Bounds()
	n := b.Dx() * b.Dy()
	if n == 0 {
		return 0
	}

	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += uint64(imaging.Luma(img.NRGBAAt(x, y)))
		}
	}
	return uint8(float64(sum)/float64(n) + 0.5)
}

// blend returns degenerate + factor*(img - degenerate) on the color
// channels, clamped and truncated, with img's alpha.
func blend(degenerate, img *image.NRGBA, factor float64) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		j := degenerate.PixOffset(b.Min.X, y)
		k := out.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			for c := 0; c < 3; c++ {
				d := float64(degenerate.Pix[j+c])
				out.Pix[k+c] = clampUint8(d + factor*(float64(img.Pix[i+c])-d))
			}
			out.Pix[k+3] = img.Pix[i+3]
			i, j, k = i+4, j+4, k+4
		}
	}
	return out
}

// smoothKernel is a 3x3 low-pass filter weighted towards the center pixel.
var smoothKernel = func() convolution.Matrix {
	k := convolution.NewKernel(3, 3)
	copy(k.Matrix, []float64{
		1, 1, 1,
		1, 5, 1,
		1, 1, 1,
	})
	return k.Normalized()
}()

// smooth applies smoothKernel to the interior of img. The outermost rows
// and columns are copied unfiltered and alpha is left as it was. Filtered
// values are rounded to nearest, hence the half-unit bias.
func smooth(img *image.NRGBA) *image.NRGBA {
	b := img.Bounds()
	filtered := image.NewNRGBA(b)
	conv := convolution.Convolve(img, smoothKernel, &convolution.Options{Bias: 0.5, KeepAlpha: true})
	draw.Draw(filtered, b, conv, b.Min, draw.Src)

	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if x > b.Min.X && x < b.Max.X-1 && y > b.Min.Y && y < b.Max.Y-1 {
				f := filtered.NRGBAAt(x, y)
				c.R, c.G, c.B = f.R, f.G, f.B
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}
