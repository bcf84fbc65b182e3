package params

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
)

// Options holds the raw, unvalidated value of every tool. Structured
// values are kept as text; repeatable tools hold one string per use.
type Options struct {
	Crop   string
	Resize string
	Rotate float64
	Filter string

	Brightness float64
	Contrast   float64
	Saturation float64
	Sharpen    float64
	Exposure   float64

	Temperature      int
	Blur             float64
	BackgroundRemove int

	Heal  []string
	Brush []string
	Clone []string

	Text      string
	TextPos   string
	TextSize  int
	TextColor string

	Sticker        string
	StickerPos     string
	StickerSize    int
	StickerOpacity int
}

// Reference size of the bitmap font. Text and stickers are only upscaled
// above it.
const ReferenceTextSize = 14

// Limits on what an edit may allocate. MaxPixels bounds the area of a crop
// or resize; MaxTextSize bounds text and sticker sizes.
const (
	MaxPixels   = 1 << 26
	MaxTextSize = 1000
)

// DefaultOptions returns the value every tool has when it is not given.
func DefaultOptions() Options {
	return Options{
		Filter:         string(PresetNone),
		Brightness:     1.0,
		Contrast:       1.0,
		Saturation:     1.0,
		Sharpen:        1.0,
		TextPos:        "40,40",
		TextSize:       ReferenceTextSize,
		TextColor:      "#ffffff",
		StickerPos:     "80,80",
		StickerSize:    ReferenceTextSize,
		StickerOpacity: 100,
	}
}

// Normalize validates o and returns the plan it describes. No operation is
// built unless every option is valid.
func Normalize(o Options) (*Plan, error) {
	var ops []Operation

	if o.Crop != "" {
		v, err := parseInts("crop", o.Crop, 4)
		if err != nil {
			return nil, err
		}
		if v[0] >= v[2] || v[1] >= v[3] {
			return nil, &ParseError{Option: "crop", Value: o.Crop, Reason: "need left < right and top < bottom"}
		}
		if err := checkArea("crop", o.Crop, v[2]-v[0], v[3]-v[1]); err != nil {
			return nil, err
		}
		ops = append(ops, Crop{Rect: image.Rect(v[0], v[1], v[2], v[3])})
	}

	if o.Resize != "" {
		v, err := parseInts("resize", o.Resize, 2)
		if err != nil {
			return nil, err
		}
		if v[0] <= 0 || v[1] <= 0 {
			return nil, &ParseError{Option: "resize", Value: o.Resize, Reason: "width and height must be positive"}
		}
		if err := checkArea("resize", o.Resize, v[0], v[1]); err != nil {
			return nil, err
		}
		ops = append(ops, Resize{Width: v[0], Height: v[1]})
	}

	for _, f := range []struct {
		option string
		value  float64
	}{
		{"rotate", o.Rotate},
		{"brightness", o.Brightness},
		{"contrast", o.Contrast},
		{"saturation", o.Saturation},
		{"sharpen", o.Sharpen},
		{"exposure", o.Exposure},
		{"blur", o.Blur},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return nil, &ValidationError{Option: f.option, Value: fmt.Sprint(f.value), Reason: "not a finite number"}
		}
	}
	ops = append(ops, Rotate{Degrees: o.Rotate})

	preset, err := ParsePreset(o.Filter)
	if err != nil {
		return nil, err
	}
	ops = append(ops, Filter{Preset: preset})

	gain := 1 + clamp(o.Exposure, -2, 2)*0.5
	ops = append(ops,
		Brightness{Factor: math.Max(0, o.Brightness*gain)},
		Contrast{Factor: math.Max(0, o.Contrast)},
		Saturation{Factor: math.Max(0, o.Saturation)},
		Temperature{Amount: clampInt(o.Temperature, -100, 100)},
		Blur{Radius: math.Max(0, o.Blur)},
		Sharpen{Factor: math.Max(0, o.Sharpen)},
		BackgroundRemove{Threshold: clampInt(o.BackgroundRemove, 0, 255)},
	)

	if len(o.Heal) > 0 {
		heal := Heal{Spots: make([]HealSpot, 0, len(o.Heal))}
		for _, raw := range o.Heal {
			v, err := parseInts("heal", raw, 3)
			if err != nil {
				return nil, err
			}
			if v[2] <= 0 {
				return nil, &ParseError{Option: "heal", Value: raw, Reason: "radius must be positive"}
			}
			heal.Spots = append(heal.Spots, HealSpot{Center: image.Pt(v[0], v[1]), Radius: v[2]})
		}
		ops = append(ops, heal)
	}

	if len(o.Brush) > 0 {
		brush := Brush{Dabs: make([]BrushDab, 0, len(o.Brush))}
		for _, raw := range o.Brush {
			dab, err := parseBrush(raw)
			if err != nil {
				return nil, err
			}
			brush.Dabs = append(brush.Dabs, dab)
		}
		ops = append(ops, brush)
	}

	if len(o.Clone) > 0 {
		clone := Clone{Patches: make([]ClonePatch, 0, len(o.Clone))}
		for _, raw := range o.Clone {
			v, err := parseInts("clone", raw, 6)
			if err != nil {
				return nil, err
			}
			if v[2] <= 0 || v[3] <= 0 {
				return nil, &ParseError{Option: "clone", Value: raw, Reason: "width and height must be positive"}
			}
			clone.Patches = append(clone.Patches, ClonePatch{
				Source: image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]),
				Dest:   image.Pt(v[4], v[5]),
			})
		}
		ops = append(ops, clone)
	}

	// Positions and sizes are checked even when there is nothing to draw.
	for _, f := range []struct {
		option string
		value  int
	}{
		{"text-size", o.TextSize},
		{"sticker-size", o.StickerSize},
	} {
		if f.value > MaxTextSize {
			return nil, &ValidationError{Option: f.option, Value: strconv.Itoa(f.value), Reason: fmt.Sprintf("must be at most %d", MaxTextSize)}
		}
	}
	textAt, err := parsePoint("text-pos", o.TextPos)
	if err != nil {
		return nil, err
	}
	textColor, err := imaging.ParseColor(o.TextColor)
	if err != nil {
		return nil, &ValidationError{Option: "text-color", Value: o.TextColor, Reason: "not a hex color"}
	}
	ops = append(ops, Text{Text: o.Text, At: textAt, Size: o.TextSize, Color: textColor})

	stickerAt, err := parsePoint("sticker-pos", o.StickerPos)
	if err != nil {
		return nil, err
	}
	opacity := clampInt(o.StickerOpacity, 0, 100)
	ops = append(ops, Sticker{
		Text:  o.Sticker,
		At:    stickerAt,
		Size:  o.StickerSize,
		Alpha: uint8(math.Round(float64(opacity) * 2.55)),
	})

	return NewPlan(ops...), nil
}

// ParsePreset resolves a filter name. Names are case sensitive.
func ParsePreset(name string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", &ValidationError{Option: "filter", Value: name, Reason: "expected one of none, bw, vintage, warm, cool"}
}

func parseBrush(raw string) (BrushDab, error) {
	parts := splitFields(raw)
	if len(parts) != 4 {
		return BrushDab{}, &ParseError{Option: "brush", Value: raw, Reason: fmt.Sprintf("expected 4 values, got %d", len(parts))}
	}
	v := make([]int, 3)
	for i := range v {
		n, err := parseInt(parts[i])
		if err != nil {
			return BrushDab{}, &ParseError{Option: "brush", Value: raw, Reason: err.Error()}
		}
		v[i] = n
	}
	if v[2] < 0 {
		return BrushDab{}, &ParseError{Option: "brush", Value: raw, Reason: "size must not be negative"}
	}
	c, err := imaging.ParseColor(parts[3])
	if err != nil {
		return BrushDab{}, &ValidationError{Option: "brush", Value: raw, Reason: fmt.Sprintf("%q is not a hex color", parts[3])}
	}
	return BrushDab{Center: image.Pt(v[0], v[1]), Size: v[2], Color: c}, nil
}

// checkArea rejects output sizes above MaxPixels. The product is taken in
// int64 so it cannot overflow.
func checkArea(option, raw string, w, h int) error {
	if int64(w)*int64(h) > MaxPixels {
		return &ParseError{Option: option, Value: raw, Reason: fmt.Sprintf("area %dx%d exceeds %d pixels", w, h, MaxPixels)}
	}
	return nil
}

func parsePoint(option, raw string) (image.Point, error) {
	v, err := parseInts(option, raw, 2)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}

// parseInts splits raw on commas and parses exactly count numbers.
// Fractional values are truncated towards zero.
func parseInts(option, raw string, count int) ([]int, error) {
	parts := splitFields(raw)
	if len(parts) != count {
		return nil, &ParseError{Option: option, Value: raw, Reason: fmt.Sprintf("expected %d values, got %d", count, len(parts))}
	}
	out := make([]int, count)
	for i, p := range parts {
		n, err := parseInt(p)
		if err != nil {
			return nil, &ParseError{Option: option, Value: raw, Reason: err.Error()}
		}
		out[i] = n
	}
	return out, nil
}

func splitFields(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseInt(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if math.Abs(f) > math.MaxInt32 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return int(f), nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
