package stages

import (
	"image"
	"image/color"
	"math"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
)

// Duotone endpoints of the vintage preset.
const (
	vintageDark  = "#704214"
	vintageLight = "#e5c07b"
)

var vintageLUT = duotone(mustColor(vintageDark), mustColor(vintageLight))

func filter(img *image.NRGBA, preset params.Preset) *image.NRGBA {
	switch preset {
	case params.PresetBW:
		return imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
			l := imaging.Luma(c)
			return color.NRGBA{R: l, G: l, B: l, A: 255}
		})
	case params.PresetVintage:
		return imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
			return vintageLUT[imaging.Luma(c)]
		})
	case params.PresetWarm:
		return scaleRedBlue(img, 1.08, 0.95)
	case params.PresetCool:
		return scaleRedBlue(img, 0.95, 1.08)
	}
	return img
}

func scaleRedBlue(img *image.NRGBA, red, blue float64) *image.NRGBA {
	return imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
		c.R = clampUint8(float64(c.R) * red)
		c.B = clampUint8(float64(c.B) * blue)
		return c
	})
}

// duotone maps luminance 0..254 linearly from dark towards light and 255
// to light itself. The result is opaque.
func duotone(dark, light color.NRGBA) [256]color.NRGBA {
	ramp := func(d, l uint8, i int) uint8 {
		return uint8(int(d) + i*(int(l)-int(d))/255)
	}

	var lut [256]color.NRGBA
	for i := 0; i < 255; i++ {
		lut[i] = color.NRGBA{
			R: ramp(dark.R, light.R, i),
			G: ramp(dark.G, light.G, i),
			B: ramp(dark.B, light.B, i),
			A: 255,
		}
	}
	lut[255] = color.NRGBA{R: light.R, G: light.G, B: light.B, A: 255}
	return lut
}

func mustColor(s string) color.NRGBA {
	c, err := imaging.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// temperature warms (positive amount) or cools (negative amount) the image
// by raising one of red and blue and lowering the other.
func temperature(img *image.NRGBA, amount int) *image.NRGBA {
	if amount == 0 {
		return img
	}

	scale := math.Abs(float64(amount)) / 100
	up, down := 35*scale, 20*scale
	return imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
		if amount > 0 {
			c.R = clampUint8(float64(c.R) + up)
			c.B = clampUint8(float64(c.B) - down)
		} else {
			c.B = clampUint8(float64(c.B) + up)
			c.R = clampUint8(float64(c.R) - down)
		}
		return c
	})
}

// removeBackground makes near-white pixels fully transparent. A pixel is
// near-white when every channel exceeds 200 and its total distance from
// white is below threshold. Color channels are kept.
func removeBackground(img *image.NRGBA, threshold int) *image.NRGBA {
	if threshold <= 0 {
		return img
	}

	return imaging.Adjust(img, func(c color.NRGBA) color.NRGBA {
		if c.R > 200 && c.G > 200 && c.B > 200 &&
			765-int(c.R)-int(c.G)-int(c.B) < threshold {
			c.A = 0
		}
		return c
	})
}
