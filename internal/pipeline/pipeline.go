// Package pipeline runs a plan against an image file.
//
// A run decodes the input, applies every operation of the plan in order,
// and encodes the result. The output file is only written once every
// stage has finished, and it is written atomically, so a failed run never
// leaves a partial or stale-but-new file behind.
package pipeline

import (
	"image"
	"log"
	"time"

	"github.com/ironsheep/image-edit-tools/internal/imaging"
	"github.com/ironsheep/image-edit-tools/internal/params"
	"github.com/ironsheep/image-edit-tools/internal/stages"
)

// Executor applies plans to image files.
type Executor struct {
	// Debug logs every stage with its duration.
	Debug bool
}

// Result describes a finished run.
type Result struct {
	Output string `json:"output"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Stages int    `json:"stages"`
}

// Run decodes input, applies plan and writes the result to output.
//
// Decode failures are returned as *imaging.DecodeError and write failures
// as *imaging.IOError.
func (e *Executor) Run(input, output string, plan *params.Plan) (*Result, error) {
	start := time.Now()

	img, err := imaging.Decode(input)
	if err != nil {
		return nil, err
	}
	if e.Debug {
		log.Printf("decoded %s (%dx%d)", input, img.Bounds().Dx(), img.Bounds().Dy())
	}

	img = e.Apply(img, plan)

	if err := imaging.Encode(output, img); err != nil {
		return nil, err
	}
	if e.Debug {
		log.Printf("wrote %s in %s", output, time.Since(start))
	}

	return &Result{
		Output: output,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Stages: plan.Len(),
	}, nil
}

// Apply runs every operation of plan on img in order and returns the final
// buffer. img must not be used afterwards.
func (e *Executor) Apply(img *image.NRGBA, plan *params.Plan) *image.NRGBA {
	for _, op := range plan.Operations() {
		stageStart := time.Now()
		img = stages.Apply(img, op)
		if e.Debug {
			log.Printf("stage %-10s %s -> %dx%d", op.Kind(), time.Since(stageStart), img.Bounds().Dx(), img.Bounds().Dy())
		}
	}
	return img
}

// Edit normalizes opts and runs the resulting plan.
func (e *Executor) Edit(input, output string, opts params.Options) (*Result, error) {
	plan, err := params.Normalize(opts)
	if err != nil {
		return nil, err
	}
	return e.Run(input, output, plan)
}
