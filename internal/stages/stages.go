package stages

import (
	"fmt"
	"image"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
)

// Apply runs op on img and returns the resulting buffer.
func Apply(img *image.NRGBA, op params.Operation) *image.NRGBA {
	switch op := op.(type) {
	case params.Crop:
		return imaging.Crop(img, op.Rect)
	case params.Resize:
		return imaging.Resize(img, op.Width, op.Height)
	case params.Rotate:
		if op.Degrees == 0 {
			return img
		}
		return imaging.Rotate(img, op.Degrees)
	case params.Filter:
		return filter(img, op.Preset)
	case params.Brightness:
		return brightness(img, op.Factor)
	case params.Contrast:
		return contrast(img, op.Factor)
	case params.Saturation:
		return saturation(img, op.Factor)
	case params.Temperature:
		return temperature(img, op.Amount)
	case params.Blur:
		if op.Radius <= 0 {
			return img
		}
		return imaging.Blur(img, op.Radius)
	case params.Heal:
		return heal(img, op.Spots)
	case params.Brush:
		return brush(img, op.Dabs)
	case params.Sharpen:
		return sharpen(img, op.Factor)
	case params.Text:
		return text(img, op)
	case params.BackgroundRemove:
		return removeBackground(img, op.Threshold)
	case params.Clone:
		return clone(img, op.Patches)
	case params.Sticker:
		return sticker(img, op)
	}
	panic(fmt.Sprintf("stages: unhandled operation %T", op))
}

// clampUint8 clamps v to [0, 255] and truncates it.
func clampUint8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v)
}
