// Package record renders a simulator offline into still and animated images.
package record

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/png"
	"io"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/render"
)

// ErrEmptyViewport is returned when the simulator has no size to render
var ErrEmptyViewport = errors.New("empty viewport")

// warmupStep is the fixed step used while fast-forwarding
const warmupStep = 1.0 / parameter.ReferenceFPS

func prepare(sim *neural.Simulator, canvas *render.Canvas) error {
	w, h := sim.Size()
	if int(w) <= 0 || int(h) <= 0 {
		return ErrEmptyViewport
	}
	canvas.Resize(int(w), int(h))
	return nil
}

// advance steps sim by d in fixed increments
func advance(sim *neural.Simulator, d time.Duration) {
	for remaining := d.Seconds(); remaining > 0; remaining -= warmupStep {
		sim.Step(min(remaining, warmupStep))
	}
}

// Poster fast-forwards sim by warmup and writes a single PNG frame
func Poster(sim *neural.Simulator, canvas *render.Canvas, warmup time.Duration, w io.Writer) error {
	if err := prepare(sim, canvas); err != nil {
		return err
	}
	advance(sim, warmup)
	sim.Render(canvas)

	if err := png.Encode(w, canvas.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// GIF records frames at fps into an endlessly looping animation
func GIF(sim *neural.Simulator, canvas *render.Canvas, frames, fps int, w io.Writer) error {
	if frames <= 0 {
		return fmt.Errorf("frame count %d: must be positive", frames)
	}
	if fps <= 0 || fps > 100 {
		return fmt.Errorf("fps %d: must be in 1..100", fps)
	}
	if err := prepare(sim, canvas); err != nil {
		return err
	}

	dt := 1.0 / float64(fps)
	delay := max(100/fps, 1) // Hundredths of a second
	anim := &gif.GIF{LoopCount: 0}

	for i := 0; i < frames; i++ {
		sim.Step(dt)
		sim.Render(canvas)
		anim.Image = append(anim.Image, quantize(canvas.Image()))
		anim.Delay = append(anim.Delay, delay)
	}

	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("encode gif: %w", err)
	}
	return nil
}

// quantize dithers img onto the Plan9 palette
func quantize(img *image.RGBA) *image.Paletted {
	b := img.Bounds()
	out := image.NewPaletted(b, palette.Plan9)
	xdraw.FloydSteinberg.Draw(out, b, img, b.Min)
	return out
}
