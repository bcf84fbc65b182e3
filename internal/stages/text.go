package stages

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
)

// face is the fixed-size bitmap font used for text and stickers.
var face = basicfont.Face7x13

// drawString renders s with its top-left corner at at.
func drawString(dst draw.Image, s string, at image.Point, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(at.X, at.Y+face.Ascent),
	}
	d.DrawString(s)
}

// upscale enlarges a full-canvas layer by size relative to the font's
// reference size and crops it back to the canvas, so that the layer's
// origin stays fixed. Only the part of the layer that lands on the canvas
// is resampled, so memory stays proportional to the canvas.
func upscale(layer *image.NRGBA, size int) *image.NRGBA {
	b := layer.Bounds()
	k := float64(size) / params.ReferenceTextSize
	// Keep a few source pixels past the cut so the filter kernel has data.
	const margin = 2
	src := image.Rect(b.Min.X, b.Min.Y,
		b.Min.X+int(math.Ceil(float64(b.Dx())/k))+margin,
		b.Min.Y+int(math.Ceil(float64(b.Dy())/k))+margin,
	).Intersect(b)
	part := imaging.Crop(layer, src)
	scaled := imaging.Scale(part, int(float64(src.Dx())*k), int(float64(src.Dy())*k))
	return imaging.Crop(scaled, image.Rect(0, 0, b.Dx(), b.Dy()))
}

// text draws the caption directly onto img. Above the reference size a
// second, enlarged copy is composited on top of the first; the small
// rendering stays visible underneath.
func text(img *image.NRGBA, op params.Text) *image.NRGBA {
	if op.Text == "" {
		return img
	}

	drawString(img, op.Text, op.At, op.Color)
	if op.Size > params.ReferenceTextSize {
		layer := imaging.New(img.Bounds().Dx(), img.Bounds().Dy())
		drawString(layer, op.Text, op.At, op.Color)
		imaging.Composite(img, upscale(layer, op.Size))
	}
	return img
}

// sticker draws white text at the sticker's alpha on a transparent layer,
// enlarges the layer above the reference size, and composites it once.
func sticker(img *image.NRGBA, op params.Sticker) *image.NRGBA {
	if op.Text == "" || op.Alpha == 0 {
		return img
	}

	layer := imaging.New(img.Bounds().Dx(), img.Bounds().Dy())
	drawString(layer, op.Text, op.At, color.NRGBA{R: 255, G: 255, B: 255, A: op.Alpha})
	if op.Size > params.ReferenceTextSize {
		layer = upscale(layer, op.Size)
	}
	imaging.Composite(img, layer)
	return img
}
