package params

import (
	"fmt"
	"image"
	"image/color"
	"sort"
)

// Kind identifies a stage. Kinds are declared in canonical pipeline order,
// so sorting by Kind yields execution order.
type Kind int

const (
	KindCrop Kind = iota
	KindResize
	KindRotate
	KindFilter
	KindBrightness
	KindContrast
	KindSaturation
	KindTemperature
	KindBlur
	KindHeal
	KindBrush
	KindSharpen
	KindText
	KindBackgroundRemove
	KindClone
	KindSticker
)

var kindNames = [...]string{
	KindCrop:             "crop",
	KindResize:           "resize",
	KindRotate:           "rotate",
	KindFilter:           "filter",
	KindBrightness:       "brightness",
	KindContrast:         "contrast",
	KindSaturation:       "saturation",
	KindTemperature:      "temperature",
	KindBlur:             "blur",
	KindHeal:             "heal",
	KindBrush:            "brush",
	KindSharpen:          "sharpen",
	KindText:             "text",
	KindBackgroundRemove: "bg-remove",
	KindClone:            "clone",
	KindSticker:          "sticker",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Operation is one validated stage invocation. The set of implementations
// is closed: only this package can add variants.
type Operation interface {
	Kind() Kind
	operation()
}

// Preset names a color filter.
type Preset string

const (
	PresetNone    Preset = "none"
	PresetBW      Preset = "bw"
	PresetVintage Preset = "vintage"
	PresetWarm    Preset = "warm"
	PresetCool    Preset = "cool"
)

// Presets lists every supported filter preset.
var Presets = []Preset{PresetNone, PresetBW, PresetVintage, PresetWarm, PresetCool}

// Crop keeps only Rect of the image.
type Crop struct {
	Rect image.Rectangle
}

// Resize resamples the image to Width x Height.
type Resize struct {
	Width, Height int
}

// Rotate turns the image counter-clockwise by Degrees, expanding the canvas.
type Rotate struct {
	Degrees float64
}

// Filter applies a named color preset.
type Filter struct {
	Preset Preset
}

// Brightness scales every color channel towards black. Factor already
// includes the exposure gain.
type Brightness struct {
	Factor float64
}

// Contrast scales each pixel's distance from the mean luma by Factor.
type Contrast struct {
	Factor float64
}

// Saturation blends from grayscale (0) through the original colors (1).
type Saturation struct {
	Factor float64
}

// Temperature shifts red and blue in opposite directions. Positive values
// warm the image, negative values cool it. Range is [-100, 100].
type Temperature struct {
	Amount int
}

// Blur applies a Gaussian blur of the given radius.
type Blur struct {
	Radius float64
}

// HealSpot is a circular region to be replaced by its blurred surroundings.
type HealSpot struct {
	Center image.Point
	Radius int
}

// Heal softens every spot with a blurred copy of the image.
type Heal struct {
	Spots []HealSpot
}

// BrushDab is a filled disc of Color.
type BrushDab struct {
	Center image.Point
	Size   int
	Color  color.NRGBA
}

// Brush paints its dabs in order.
type Brush struct {
	Dabs []BrushDab
}

// Sharpen blends from a smoothed copy (0) through the original (1).
// Factors above 1 sharpen.
type Sharpen struct {
	Factor float64
}

// Text draws a caption with its top-left corner at At. Size is relative to
// the 14 pixel reference size of the bitmap font.
type Text struct {
	Text  string
	At    image.Point
	Size  int
	Color color.NRGBA
}

// BackgroundRemove makes near-white pixels transparent. Threshold is in
// [0, 255]; 0 disables the stage.
type BackgroundRemove struct {
	Threshold int
}

// ClonePatch copies the Source rectangle of the working image to Dest.
type ClonePatch struct {
	Source image.Rectangle
	Dest   image.Point
}

// Clone applies its patches in order, each reading the working image.
type Clone struct {
	Patches []ClonePatch
}

// Sticker draws white text at the given alpha on its own layer.
type Sticker struct {
	Text  string
	At    image.Point
	Size  int
	Alpha uint8
}

func (Crop) Kind() Kind             { return KindCrop }
func (Resize) Kind() Kind           { return KindResize }
func (Rotate) Kind() Kind           { return KindRotate }
func (Filter) Kind() Kind           { return KindFilter }
func (Brightness) Kind() Kind       { return KindBrightness }
func (Contrast) Kind() Kind         { return KindContrast }
func (Saturation) Kind() Kind       { return KindSaturation }
func (Temperature) Kind() Kind      { return KindTemperature }
func (Blur) Kind() Kind             { return KindBlur }
func (Heal) Kind() Kind             { return KindHeal }
func (Brush) Kind() Kind            { return KindBrush }
func (Sharpen) Kind() Kind          { return KindSharpen }
func (Text) Kind() Kind             { return KindText }
func (BackgroundRemove) Kind() Kind { return KindBackgroundRemove }
func (Clone) Kind() Kind            { return KindClone }
func (Sticker) Kind() Kind          { return KindSticker }

func (Crop) operation()             {}
func (Resize) operation()           {}
func (Rotate) operation()           {}
func (Filter) operation()           {}
func (Brightness) operation()       {}
func (Contrast) operation()         {}
func (Saturation) operation()       {}
func (Temperature) operation()      {}
func (Blur) operation()             {}
func (Heal) operation()             {}
func (Brush) operation()            {}
func (Sharpen) operation()          {}
func (Text) operation()             {}
func (BackgroundRemove) operation() {}
func (Clone) operation()            {}
func (Sticker) operation()          {}

// Plan is an ordered list of operations ready to execute.
type Plan struct {
	ops []Operation
}

// NewPlan returns a plan holding ops in canonical order. Operations of the
// same kind keep their relative order.
func NewPlan(ops ...Operation) *Plan {
	sorted := make([]Operation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Kind() < sorted[j].Kind()
	})
	return &Plan{ops: sorted}
}

// Operations returns the plan's operations in execution order.
func (p *Plan) Operations() []Operation {
	out := make([]Operation, len(p.ops))
	copy(out, p.ops)
	return out
}

// Len returns the number of planned operations.
func (p *Plan) Len() int {
	return len(p.ops)
}
