package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// New returns a fully transparent buffer of the given size.
func New(width, height int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, width, height))
}

// Crop returns a new buffer holding the region r of img.
//
// The result is always r.Dx() x r.Dy() pixels. Parts of r that fall
// outside img are left transparent black.
func Crop(img image.Image, r image.Rectangle) *image.NRGBA {
	out := New(r.Dx(), r.Dy())
	src, ok := img.(*image.NRGBA)
	if !ok {
		draw.Draw(out, out.Bounds(), img, r.Min, draw.Src)
		return out
	}

	// Copy rows directly so transparent pixels keep their color channels.
	in := r.Intersect(src.Bounds())
	n := in.Dx() * 4
	for y := in.Min.Y; y < in.Max.Y; y++ {
		si := src.PixOffset(in.Min.X, y)
		di := out.PixOffset(in.Min.X-r.Min.X, y-r.Min.Y)
		copy(out.Pix[di:di+n], src.Pix[si:si+n])
	}
	return out
}

// Resize returns img resampled to width x height with a Lanczos filter.
func Resize(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// Scale returns img resampled to width x height with a bicubic
// (Catmull-Rom) filter.
func Scale(img image.Image, width, height int) *image.NRGBA {
	out := New(width, height)
	xdraw.CatmullRom.Scale(out, out.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return out
}

// Rotate returns img rotated counter-clockwise by degrees around its
// center.
//
// Exact quarter and half turns are lossless transposes, so a w x h image
// becomes exactly h x w. Any other angle is resampled bicubically into the
// bounding box of the rotated image: ceil(max) - floor(min) of the rotated
// corner coordinates on each axis. Pixels not covered by the source are
// transparent. A full turn is still resampled.
func Rotate(img image.Image, degrees float64) *image.NRGBA {
	turn := math.Mod(degrees, 360)
	if turn < 0 {
		turn += 360
	}
	switch turn {
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	}

	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	rad := turn * math.Pi / 180
	sin, cos := snap(math.Sin(rad)), snap(math.Cos(rad))

	// Source point (x, y) relative to the source center maps to
	// (x*cos + y*sin, -x*sin + y*cos); with y pointing down this turns
	// the picture counter-clockwise. Corners are taken in absolute
	// coordinates so that odd sizes round the same way on both sides.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range [4][2]float64{{-w / 2, -h / 2}, {w / 2, -h / 2}, {w / 2, h / 2}, {-w / 2, h / 2}} {
		x := snap(w/2 + c[0]*cos + c[1]*sin)
		y := snap(h/2 - c[0]*sin + c[1]*cos)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	nw := int(math.Ceil(maxX) - math.Floor(minX))
	nh := int(math.Ceil(maxY) - math.Floor(minY))

	out := New(nw, nh)
	cx, cy := float64(b.Min.X)+w/2, float64(b.Min.Y)+h/2
	ncx, ncy := float64(nw)/2, float64(nh)/2
	s2d := f64.Aff3{
		cos, sin, ncx - cos*cx - sin*cy,
		-sin, cos, ncy + sin*cx - cos*cy,
	}
	xdraw.CatmullRom.Transform(out, s2d, img, b, xdraw.Src, nil)
	return out
}

// snap rounds away floating point noise so that quarter turns and full
// turns produce exact bounding boxes.
func snap(v float64) float64 {
	const eps = 1e-9
	if r := math.Round(v); math.Abs(v-r) < eps {
		return r
	}
	return v
}

// Composite alpha-composites layer over dst in place, with the layer's
// top-left corner at dst's origin. Layer pixels outside dst are ignored and
// fully transparent layer pixels leave dst untouched.
func Composite(dst *image.NRGBA, layer image.Image) {
	lb := layer.Bounds()
	r := lb.Sub(lb.Min).Intersect(dst.Bounds())

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s := color.NRGBAModel.Convert(layer.At(lb.Min.X+x, lb.Min.Y+y)).(color.NRGBA)
			if s.A == 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			d := dst.Pix[i : i+4 : i+4]

			sa := float64(s.A) / 255
			da := float64(d[3]) / 255 * (1 - sa)
			oa := sa + da
			d[0] = uint8((float64(s.R)*sa+float64(d[0])*da)/oa + 0.5)
			d[1] = uint8((float64(s.G)*sa+float64(d[1])*da)/oa + 0.5)
			d[2] = uint8((float64(s.B)*sa+float64(d[2])*da)/oa + 0.5)
			d[3] = uint8(oa*255 + 0.5)
		}
	}
}

// Blur returns a Gaussian-blurred copy of img. A non-positive sigma
// returns an unmodified copy.
func Blur(img image.Image, sigma float64) *image.NRGBA {
	return imaging.Blur(img, sigma)
}

// Adjust returns a copy of img with fn applied to every pixel.
func Adjust(img image.Image, fn func(color.NRGBA) color.NRGBA) *image.NRGBA {
	return imaging.AdjustFunc(img, fn)
}

// PasteMasked copies src onto dst with src's top-left corner at at,
// blending every channel (alpha included) through mask:
//
//	dst = (src*m + dst*(255-m)) / 255
//
// mask is addressed in src's coordinate space and only its alpha is used.
// Pixels outside dst, src or mask are left alone.
func PasteMasked(dst *image.NRGBA, src image.Image, at image.Point, mask image.Image) {
	sb := src.Bounds()
	r := sb.Sub(sb.Min).Add(at).Intersect(dst.Bounds())
	offset := sb.Min.Sub(at)

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			sp := image.Pt(x, y).Add(offset)
			if !sp.In(mask.Bounds()) {
				continue
			}
			m := uint32(color.AlphaModel.Convert(mask.At(sp.X, sp.Y)).(color.Alpha).A)
			if m == 0 {
				continue
			}
			s := color.NRGBAModel.Convert(src.At(sp.X, sp.Y)).(color.NRGBA)
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			px[0] = blend(s.R, px[0], m)
			px[1] = blend(s.G, px[1], m)
			px[2] = blend(s.B, px[2], m)
			px[3] = blend(s.A, px[3], m)
		}
	}
}

func blend(s, d uint8, m uint32) uint8 {
	return uint8((uint32(s)*m + uint32(d)*(255-m) + 127) / 255)
}

// FillCircle draws a filled disc of the given radius centered on the
// pixel c, compositing col over dst.
func FillCircle(dst *image.NRGBA, c image.Point, radius int, col color.Color) {
	mask := &Circle{Center: c, Radius: radius, Alpha: 0xff}
	draw.DrawMask(dst, mask.Bounds(), image.NewUniform(col), image.Point{}, mask, mask.Bounds().Min, draw.Over)
}

// Circle is an alpha mask holding a filled disc. A pixel belongs to the
// disc when its center lies within Radius+0.5 of the center of pixel
// Center, so the disc spans 2*Radius+1 pixels on each axis.
type Circle struct {
	Center image.Point
	Radius int
	Alpha  uint8
}

func (c *Circle) ColorModel() color.Model { return color.AlphaModel }

func (c *Circle) Bounds() image.Rectangle {
	return image.Rect(c.Center.X-c.Radius, c.Center.Y-c.Radius, c.Center.X+c.Radius+1, c.Center.Y+c.Radius+1)
}

func (c *Circle) At(x, y int) color.Color {
	dx, dy := float64(x-c.Center.X), float64(y-c.Center.Y)
	r := float64(c.Radius) + 0.5
	if dx*dx+dy*dy <= r*r {
		return color.Alpha{A: c.Alpha}
	}
	return color.Alpha{}
}
