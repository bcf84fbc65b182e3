package params

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func white() color.NRGBA { return color.NRGBA{255, 255, 255, 255} }

// defaultOps is the plan produced by DefaultOptions.
func defaultOps() []Operation {
	return []Operation{
		Rotate{},
		Filter{Preset: PresetNone},
		Brightness{Factor: 1},
		Contrast{Factor: 1},
		Saturation{Factor: 1},
		Temperature{},
		Blur{},
		Sharpen{Factor: 1},
		Text{At: image.Pt(40, 40), Size: 14, Color: white()},
		BackgroundRemove{},
		Sticker{At: image.Pt(80, 80), Size: 14, Alpha: 255},
	}
}

func TestNormalize_Defaults(t *testing.T) {
	plan, err := Normalize(DefaultOptions())
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if diff := cmp.Diff(defaultOps(), plan.Operations()); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Structured(t *testing.T) {
	o := DefaultOptions()
	o.Crop = "10, 20,110.9,220"
	o.Resize = "64,48"
	o.Heal = []string{"5,6,7", "1.5,2.5,3"}
	o.Brush = []string{"120,140,20,#ff0000", "0,0,0,#00f"}
	o.Clone = []string{"0,0,10,20,30,40"}

	plan, err := Normalize(o)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	want := []Operation{
		Crop{Rect: image.Rect(10, 20, 110, 220)},
		Resize{Width: 64, Height: 48},
	}
	want = append(want, defaultOps()[:7]...)
	want = append(want,
		Heal{Spots: []HealSpot{
			{Center: image.Pt(5, 6), Radius: 7},
			{Center: image.Pt(1, 2), Radius: 3},
		}},
		Brush{Dabs: []BrushDab{
			{Center: image.Pt(120, 140), Size: 20, Color: color.NRGBA{255, 0, 0, 255}},
			{Center: image.Pt(0, 0), Size: 0, Color: color.NRGBA{0, 0, 255, 255}},
		}},
		Sharpen{Factor: 1},
		Text{At: image.Pt(40, 40), Size: 14, Color: white()},
		BackgroundRemove{},
		Clone{Patches: []ClonePatch{
			{Source: image.Rect(0, 0, 10, 20), Dest: image.Pt(30, 40)},
		}},
		Sticker{At: image.Pt(80, 80), Size: 14, Alpha: 255},
	)

	if diff := cmp.Diff(want, plan.Operations()); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalize_Clamps(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
		want   Operation
	}{
		{"temperature high", func(o *Options) { o.Temperature = 500 }, Temperature{Amount: 100}},
		{"temperature low", func(o *Options) { o.Temperature = -101 }, Temperature{Amount: -100}},
		{"bg-remove high", func(o *Options) { o.BackgroundRemove = 300 }, BackgroundRemove{Threshold: 255}},
		{"bg-remove negative", func(o *Options) { o.BackgroundRemove = -4 }, BackgroundRemove{Threshold: 0}},
		{"negative contrast", func(o *Options) { o.Contrast = -2 }, Contrast{Factor: 0}},
		{"negative saturation", func(o *Options) { o.Saturation = -0.5 }, Saturation{Factor: 0}},
		{"negative sharpen", func(o *Options) { o.Sharpen = -1 }, Sharpen{Factor: 0}},
		{"negative blur", func(o *Options) { o.Blur = -3 }, Blur{Radius: 0}},
		{"negative brightness", func(o *Options) { o.Brightness = -1 }, Brightness{Factor: 0}},
		{"exposure gain", func(o *Options) { o.Exposure = 1 }, Brightness{Factor: 1.5}},
		{"exposure clamped", func(o *Options) { o.Exposure = 10 }, Brightness{Factor: 2}},
		{"exposure darkens to zero", func(o *Options) { o.Exposure = -2 }, Brightness{Factor: 0}},
		{"exposure and brightness", func(o *Options) { o.Brightness = 2; o.Exposure = -1 }, Brightness{Factor: 1}},
		{"sticker opacity half", func(o *Options) { o.StickerOpacity = 50 }, Sticker{At: image.Pt(80, 80), Size: 14, Alpha: 127}},
		{"sticker opacity zero", func(o *Options) { o.StickerOpacity = 0 }, Sticker{At: image.Pt(80, 80), Size: 14, Alpha: 0}},
		{"sticker opacity high", func(o *Options) { o.StickerOpacity = 150 }, Sticker{At: image.Pt(80, 80), Size: 14, Alpha: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			plan, err := Normalize(o)
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			got := find(plan, tt.want.Kind())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.want.Kind(), diff)
			}
		})
	}
}

func find(p *Plan, k Kind) Operation {
	for _, op := range p.Operations() {
		if op.Kind() == k {
			return op
		}
	}
	return nil
}

func TestNormalize_ParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Options)
		wantOption string
	}{
		{"resize arity", func(o *Options) { o.Resize = "10,20,30" }, "resize"},
		{"resize non-numeric", func(o *Options) { o.Resize = "10,abc" }, "resize"},
		{"resize zero", func(o *Options) { o.Resize = "0,20" }, "resize"},
		{"crop arity", func(o *Options) { o.Crop = "1,2,3" }, "crop"},
		{"crop inverted", func(o *Options) { o.Crop = "50,0,10,10" }, "crop"},
		{"crop empty field", func(o *Options) { o.Crop = "0,,10,10" }, "crop"},
		{"heal arity", func(o *Options) { o.Heal = []string{"1,2"} }, "heal"},
		{"heal zero radius", func(o *Options) { o.Heal = []string{"1,2,0"} }, "heal"},
		{"brush arity", func(o *Options) { o.Brush = []string{"1,2,3"} }, "brush"},
		{"brush negative size", func(o *Options) { o.Brush = []string{"1,2,-3,#fff"} }, "brush"},
		{"clone arity", func(o *Options) { o.Clone = []string{"1,2,3,4,5"} }, "clone"},
		{"clone empty patch", func(o *Options) { o.Clone = []string{"1,2,0,4,5,6"} }, "clone"},
		{"text-pos without text", func(o *Options) { o.TextPos = "40" }, "text-pos"},
		{"sticker-pos", func(o *Options) { o.StickerPos = "a,b" }, "sticker-pos"},
		{"infinite coordinate", func(o *Options) { o.TextPos = "inf,0" }, "text-pos"},
		{"huge crop", func(o *Options) { o.Crop = "0,0,2000000000,2000000000" }, "crop"},
		{"crop over pixel limit", func(o *Options) { o.Crop = "-5000,-5000,5000,5000" }, "crop"},
		{"huge resize", func(o *Options) { o.Resize = "100000,100000" }, "resize"},
		{"long thin resize", func(o *Options) { o.Resize = "67108865,1" }, "resize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			plan, err := Normalize(o)
			if plan != nil {
				t.Error("no plan should be returned on error")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Option != tt.wantOption {
				t.Errorf("Option: got %q, want %q", pe.Option, tt.wantOption)
			}
		})
	}
}

func TestNormalize_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(*Options)
		wantOption string
	}{
		{"unknown preset", func(o *Options) { o.Filter = "sepia" }, "filter"},
		{"preset case", func(o *Options) { o.Filter = "BW" }, "filter"},
		{"empty preset", func(o *Options) { o.Filter = "" }, "filter"},
		{"text color", func(o *Options) { o.TextColor = "white" }, "text-color"},
		{"brush color", func(o *Options) { o.Brush = []string{"1,2,3,notacolor"} }, "brush"},
		{"nan rotate", func(o *Options) { o.Rotate = math.NaN() }, "rotate"},
		{"infinite exposure", func(o *Options) { o.Exposure = math.Inf(1) }, "exposure"},
		{"huge text size", func(o *Options) { o.TextSize = 1 << 20 }, "text-size"},
		{"huge sticker size", func(o *Options) { o.StickerSize = MaxTextSize + 1 }, "sticker-size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.modify(&o)
			_, err := Normalize(o)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Option != tt.wantOption {
				t.Errorf("Option: got %q, want %q", ve.Option, tt.wantOption)
			}
		})
	}
}

func TestNormalize_SizeLimitsInclusive(t *testing.T) {
	o := DefaultOptions()
	o.Crop = "-4096,-4096,4096,4096"
	o.Resize = "8192,8192"
	o.TextSize = MaxTextSize
	o.StickerSize = MaxTextSize

	plan, err := Normalize(o)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if diff := cmp.Diff(Resize{Width: 8192, Height: 8192}, find(plan, KindResize)); diff != "" {
		t.Errorf("resize mismatch (-want +got):\n%s", diff)
	}
	if got := find(plan, KindText).(Text).Size; got != MaxTextSize {
		t.Errorf("text size: got %d, want %d", got, MaxTextSize)
	}
}

func TestParseInts_Truncates(t *testing.T) {
	tests := []struct {
		raw  string
		want []int
	}{
		{"1,2", []int{1, 2}},
		{" 3.7 , -3.7 ", []int{3, -3}},
		{"1e2,0.0", []int{100, 0}},
	}

	for _, tt := range tests {
		got, err := parseInts("pos", tt.raw, 2)
		if err != nil {
			t.Fatalf("parseInts(%q) failed: %v", tt.raw, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseInts(%q) mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestNewPlan_CanonicalOrder(t *testing.T) {
	plan := NewPlan(
		Sticker{Text: "s"},
		Clone{},
		Crop{Rect: image.Rect(0, 0, 1, 1)},
		Text{Text: "t"},
		Rotate{Degrees: 90},
		Resize{Width: 1, Height: 1},
	)

	var got []Kind
	for _, op := range plan.Operations() {
		got = append(got, op.Kind())
	}
	want := []Kind{KindCrop, KindResize, KindRotate, KindText, KindClone, KindSticker}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNewPlan_StableWithinKind(t *testing.T) {
	plan := NewPlan(Text{Text: "first"}, Crop{}, Text{Text: "second"})

	ops := plan.Operations()
	if ops[1].(Text).Text != "first" || ops[2].(Text).Text != "second" {
		t.Errorf("operations of the same kind were reordered: %+v", ops)
	}
}

func TestPlan_OperationsIsACopy(t *testing.T) {
	plan := NewPlan(Rotate{Degrees: 10})
	ops := plan.Operations()
	ops[0] = Rotate{Degrees: 99}

	if got := plan.Operations()[0].(Rotate).Degrees; got != 10 {
		t.Errorf("plan was modified through the returned slice: %v", got)
	}
	if plan.Len() != 1 {
		t.Errorf("Len: got %d, want 1", plan.Len())
	}
}

func TestKindString(t *testing.T) {
	if KindBackgroundRemove.String() != "bg-remove" {
		t.Errorf("got %q", KindBackgroundRemove.String())
	}
	if Kind(99).String() != "Kind(99)" {
		t.Errorf("got %q", Kind(99).String())
	}
}

func TestErrorMessages(t *testing.T) {
	err := &ParseError{Option: "resize", Value: "10,20,30", Reason: "expected 2 values, got 3"}
	want := `invalid --resize value "10,20,30": expected 2 values, got 3`
	if err.Error() != want {
		t.Errorf("got %q, want %q", err.Error(), want)
	}
}
