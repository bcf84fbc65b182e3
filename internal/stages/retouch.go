package stages

import (
	"image"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
)

const (
	// healSigma is the blur applied to the source of every heal patch.
	healSigma = 6
	// healOpacity is how strongly a heal patch covers the original.
	healOpacity = 200
)

// heal replaces each spot with the same region of a blurred copy of the
// image, pasted through a disc mask. The blurred copy is taken once, before
// any spot is applied.
func heal(img *image.NRGBA, spots []params.HealSpot) *image.NRGBA {
	if len(spots) == 0 {
		return img
	}

	blurred := imaging.Blur(img, healSigma)
	for _, s := range spots {
		box := image.Rectangle{
			Min: s.Center.Sub(image.Pt(s.Radius, s.Radius)),
			Max: s.Center.Add(image.Pt(s.Radius, s.Radius)),
		}
		patch := imaging.Crop(blurred, box)
		mask := &imaging.Circle{Center: image.Pt(s.Radius, s.Radius), Radius: s.Radius, Alpha: healOpacity}
		imaging.PasteMasked(img, patch, box.Min, mask)
	}
	return img
}

// brush paints filled discs in the given order.
func brush(img *image.NRGBA, dabs []params.BrushDab) *image.NRGBA {
	for _, d := range dabs {
		imaging.FillCircle(img, d.Center, d.Size, d.Color)
	}
	return img
}

// clone copies each source rectangle to its destination, using the patch's
// own alpha as the mask. Patches are applied in order, so a later patch
// sees the result of earlier ones.
func clone(img *image.NRGBA, patches []params.ClonePatch) *image.NRGBA {
	for _, p := range patches {
		patch := imaging.Crop(img, p.Source)
		imaging.PasteMasked(img, patch, p.Dest, patch)
	}
	return img
}
