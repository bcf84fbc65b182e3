package imaging

import (
	"image"
	"image/color"
	"testing"
)

// createInMemoryImage creates a solid-color in-memory buffer.
func createInMemoryImage(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// createPatternImage creates an image with different colors in each quadrant.
func createPatternImage(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.NRGBA
			switch {
			case x < width/2 && y < height/2:
				c = color.NRGBA{255, 0, 0, 255} // Red top-left
			case x >= width/2 && y < height/2:
				c = color.NRGBA{0, 255, 0, 255} // Green top-right
			case x < width/2:
				c = color.NRGBA{0, 0, 255, 255} // Blue bottom-left
			default:
				c = color.NRGBA{255, 255, 255, 255} // White bottom-right
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name string
		rect image.Rectangle
		at   image.Point
		want color.NRGBA
	}{
		{"top-left quadrant", image.Rect(0, 0, 50, 50), image.Pt(25, 25), color.NRGBA{255, 0, 0, 255}},
		{"top-right quadrant", image.Rect(50, 0, 100, 50), image.Pt(25, 25), color.NRGBA{0, 255, 0, 255}},
		{"bottom-right quadrant", image.Rect(50, 50, 100, 100), image.Pt(0, 0), color.NRGBA{255, 255, 255, 255}},
		{"full image", image.Rect(0, 0, 100, 100), image.Pt(75, 75), color.NRGBA{255, 255, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Crop(img, tt.rect)
			if out.Bounds() != image.Rect(0, 0, tt.rect.Dx(), tt.rect.Dy()) {
				t.Fatalf("bounds: got %v, want %dx%d at origin", out.Bounds(), tt.rect.Dx(), tt.rect.Dy())
			}
			if got := out.NRGBAAt(tt.at.X, tt.at.Y); got != tt.want {
				t.Errorf("pixel %v: got %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestCrop_PadsOutsideSource(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{255, 0, 0, 255})

	out := Crop(img, image.Rect(-5, -5, 5, 5))
	if out.Bounds().Dx() != 10 || out.Bounds().Dy() != 10 {
		t.Fatalf("dimensions: got %dx%d, want 10x10", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{}) {
		t.Errorf("padded pixel: got %v, want transparent black", got)
	}
	if got := out.NRGBAAt(7, 7); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("copied pixel: got %v, want red", got)
	}
}

func TestCrop_KeepsTransparentColor(t *testing.T) {
	img := createInMemoryImage(4, 4, color.NRGBA{250, 250, 250, 0})

	out := Crop(img, image.Rect(1, 1, 3, 3))
	if got := out.NRGBAAt(0, 0); got != (color.NRGBA{250, 250, 250, 0}) {
		t.Errorf("got %v, want color channels preserved under zero alpha", got)
	}
}

func TestResize(t *testing.T) {
	img := createInMemoryImage(100, 100, color.NRGBA{0, 128, 255, 255})

	out := Resize(img, 20, 30)
	if out.Bounds().Dx() != 20 || out.Bounds().Dy() != 30 {
		t.Fatalf("dimensions: got %dx%d, want 20x30", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.NRGBAAt(10, 15); got != (color.NRGBA{0, 128, 255, 255}) {
		t.Errorf("solid color should survive resampling, got %v", got)
	}
}

func TestScale(t *testing.T) {
	img := createInMemoryImage(10, 10, color.NRGBA{10, 20, 30, 255})

	out := Scale(img, 25, 15)
	if out.Bounds().Dx() != 25 || out.Bounds().Dy() != 15 {
		t.Fatalf("dimensions: got %dx%d, want 25x15", out.Bounds().Dx(), out.Bounds().Dy())
	}
	if got := out.NRGBAAt(12, 7); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("center pixel: got %v", got)
	}
}

func TestRotate_Dimensions(t *testing.T) {
	tests := []struct {
		w, h         int
		degrees      float64
		wantW, wantH int
	}{
		{40, 20, 90, 20, 40},
		{40, 20, -90, 20, 40},
		{40, 20, 180, 40, 20},
		{40, 20, 270, 20, 40},
		{40, 20, -270, 20, 40},
		{40, 20, 450, 20, 40},
		{40, 20, 360, 40, 20},
		{40, 20, 45, 44, 44},
		{5, 4, 90, 4, 5},
		{5, 4, 270, 4, 5},
		{5, 4, 180, 5, 4},
		{4, 5, 90, 5, 4},
		{41, 20, 90, 20, 41},
		{41, 20, -90, 20, 41},
		{3, 3, 90, 3, 3},
	}

	for _, tt := range tests {
		img := createInMemoryImage(tt.w, tt.h, color.NRGBA{255, 0, 0, 255})
		out := Rotate(img, tt.degrees)
		if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
			t.Errorf("Rotate(%dx%d, %v): got %dx%d, want %dx%d",
				tt.w, tt.h, tt.degrees, out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestRotate_QuarterTurnHasNoFringe(t *testing.T) {
	red := color.NRGBA{255, 0, 0, 255}

	for _, size := range []image.Point{{5, 4}, {41, 20}} {
		img := createInMemoryImage(size.X, size.Y, red)
		for _, degrees := range []float64{90, 180, 270} {
			out := Rotate(img, degrees)
			b := out.Bounds()
			for _, p := range []image.Point{{0, 0}, {b.Max.X - 1, 0}, {0, b.Max.Y - 1}, {b.Max.X - 1, b.Max.Y - 1}} {
				if got := out.NRGBAAt(p.X, p.Y); got != red {
					t.Errorf("Rotate(%v, %v) corner %v: got %v, want opaque red", size, degrees, p, got)
				}
			}
		}
	}
}

func TestRotate_CounterClockwise(t *testing.T) {
	img := createPatternImage(40, 40)

	// A quarter turn counter-clockwise moves the top-right (green) quadrant
	// to the top-left.
	out := Rotate(img, 90)
	if got := out.NRGBAAt(10, 10); got != (color.NRGBA{0, 255, 0, 255}) {
		t.Errorf("top-left after 90°: got %v, want green", got)
	}
	if got := out.NRGBAAt(30, 30); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("bottom-right after 90°: got %v, want blue", got)
	}
}

func TestRotate_ExpandedCornersTransparent(t *testing.T) {
	img := createInMemoryImage(30, 30, color.NRGBA{255, 255, 255, 255})

	out := Rotate(img, 45)
	if got := out.NRGBAAt(0, 0); got.A != 0 {
		t.Errorf("corner outside the rotated source should be transparent, got %v", got)
	}
	c := out.Bounds().Max.Div(2)
	if got := out.NRGBAAt(c.X, c.Y); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("center should stay white, got %v", got)
	}
}

func TestComposite(t *testing.T) {
	dst := createInMemoryImage(10, 10, color.NRGBA{0, 0, 0, 255})
	layer := New(20, 20)
	layer.SetNRGBA(2, 2, color.NRGBA{255, 255, 255, 255})
	layer.SetNRGBA(3, 3, color.NRGBA{255, 255, 255, 128})
	layer.SetNRGBA(15, 15, color.NRGBA{255, 255, 255, 255})

	Composite(dst, layer)

	if dst.Bounds() != image.Rect(0, 0, 10, 10) {
		t.Fatalf("bounds changed: %v", dst.Bounds())
	}
	if got := dst.NRGBAAt(2, 2); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("opaque layer pixel: got %v, want white", got)
	}
	if got := dst.NRGBAAt(3, 3); got != (color.NRGBA{128, 128, 128, 255}) {
		t.Errorf("half transparent layer pixel: got %v, want {128 128 128 255}", got)
	}
	if got := dst.NRGBAAt(5, 5); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("transparent layer pixel: got %v, want black", got)
	}
}

func TestComposite_TransparentOverTransparent(t *testing.T) {
	dst := createInMemoryImage(4, 4, color.NRGBA{250, 250, 250, 0})
	layer := New(4, 4)
	layer.SetNRGBA(1, 1, color.NRGBA{255, 0, 0, 255})

	Composite(dst, layer)

	if got := dst.NRGBAAt(0, 0); got != (color.NRGBA{250, 250, 250, 0}) {
		t.Errorf("untouched pixel: got %v, want {250 250 250 0}", got)
	}
	if got := dst.NRGBAAt(1, 1); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("opaque over transparent: got %v, want red", got)
	}
}

func TestBlur(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(10, 10, color.NRGBA{255, 255, 255, 255})

	out := Blur(img, 2)
	if out == img {
		t.Fatal("Blur should return a new buffer")
	}
	if got := out.NRGBAAt(10, 10); got.R == 255 || got.R == 0 {
		t.Errorf("center should be spread out, got %v", got)
	}
	if got := out.NRGBAAt(11, 10); got.R == 0 {
		t.Errorf("neighbour should pick up light, got %v", got)
	}
	if got := img.NRGBAAt(10, 10); got.R != 255 {
		t.Error("Blur modified its input")
	}
}

func TestAdjust(t *testing.T) {
	img := createInMemoryImage(3, 3, color.NRGBA{10, 20, 30, 40})

	out := Adjust(img, func(c color.NRGBA) color.NRGBA {
		c.R, c.B = c.B, c.R
		return c
	})
	if got := out.NRGBAAt(1, 1); got != (color.NRGBA{30, 20, 10, 40}) {
		t.Errorf("got %v, want {30 20 10 40}", got)
	}
}

func TestPasteMasked(t *testing.T) {
	dst := createInMemoryImage(10, 10, color.NRGBA{0, 0, 0, 255})
	src := createInMemoryImage(4, 4, color.NRGBA{255, 255, 255, 255})
	mask := image.NewAlpha(image.Rect(0, 0, 4, 4))
	mask.SetAlpha(0, 0, color.Alpha{255})
	mask.SetAlpha(1, 0, color.Alpha{200})

	PasteMasked(dst, src, image.Pt(3, 3), mask)

	if got := dst.NRGBAAt(3, 3); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("full mask: got %v, want white", got)
	}
	if got := dst.NRGBAAt(4, 3); got != (color.NRGBA{200, 200, 200, 255}) {
		t.Errorf("mask 200: got %v, want {200 200 200 255}", got)
	}
	if got := dst.NRGBAAt(5, 3); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("zero mask: got %v, want black", got)
	}
}

func TestPasteMasked_ClipsToDestination(t *testing.T) {
	dst := createInMemoryImage(5, 5, color.NRGBA{0, 0, 0, 255})
	src := createInMemoryImage(4, 4, color.NRGBA{255, 0, 0, 255})

	PasteMasked(dst, src, image.Pt(-2, 3), src)

	if got := dst.NRGBAAt(0, 4); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("overlap pixel: got %v, want red", got)
	}
	if got := dst.NRGBAAt(2, 4); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("pixel beyond src: got %v, want black", got)
	}
}

func TestCircle(t *testing.T) {
	c := &Circle{Center: image.Pt(5, 5), Radius: 2, Alpha: 200}

	if c.Bounds() != image.Rect(3, 3, 8, 8) {
		t.Errorf("bounds: got %v, want (3,3)-(8,8)", c.Bounds())
	}

	tests := []struct {
		p    image.Point
		want uint8
	}{
		{image.Pt(5, 5), 200},
		{image.Pt(7, 5), 200},
		{image.Pt(5, 3), 200},
		{image.Pt(3, 3), 0},
		{image.Pt(8, 5), 0},
	}
	for _, tt := range tests {
		if got := c.At(tt.p.X, tt.p.Y).(color.Alpha).A; got != tt.want {
			t.Errorf("At%v: got %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestFillCircle(t *testing.T) {
	img := createInMemoryImage(20, 20, color.NRGBA{0, 0, 0, 255})

	FillCircle(img, image.Pt(10, 10), 3, color.NRGBA{255, 0, 0, 255})

	if got := img.NRGBAAt(10, 10); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("center: got %v, want red", got)
	}
	if got := img.NRGBAAt(13, 10); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("edge: got %v, want red", got)
	}
	if got := img.NRGBAAt(14, 10); got != (color.NRGBA{0, 0, 0, 255}) {
		t.Errorf("outside: got %v, want black", got)
	}
}
