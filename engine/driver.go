package engine

import (
	"context"
	"fmt"
	"image"
	"io"
	"log/slog"
	"time"

	"github.com/snappingturtle/synapse/event"
	"github.com/snappingturtle/synapse/neural"
	"github.com/snappingturtle/synapse/parameter"
	"github.com/snappingturtle/synapse/render"
)

// Presenter shows a finished frame
type Presenter interface {
	Present(img *image.RGBA) error
}

// PresenterFunc adapts a function to Presenter
type PresenterFunc func(img *image.RGBA) error

func (f PresenterFunc) Present(img *image.RGBA) error { return f(img) }

// FrameInfo is reported after every frame
type FrameInfo struct {
	Frame     uint64
	DT        time.Duration
	Visible   bool
	Presented bool
	Stats     neural.Stats
}

// Driver runs the frame loop: drain input, step, render, present
// Only the goroutine running Run/Frame touches Sim and Canvas
type Driver struct {
	Sim       *neural.Simulator
	Queue     *event.Queue
	Canvas    *render.Canvas
	Presenter Presenter
	Clock     *PausableClock
	Interval  time.Duration
	Log       *slog.Logger
	OnFrame   func(FrameInfo)

	// Updates carries work that must run on the frame goroutine, such as
	// config reloads touching Sim. Nil disables it.
	Updates <-chan func()

	ready bool
	last  time.Duration
	frame uint64
}

// init fills defaults on first use
func (d *Driver) init() {
	if d.ready {
		return
	}
	if d.Queue == nil {
		d.Queue = event.NewQueue()
	}
	if d.Canvas == nil {
		w, h := d.Sim.Size()
		d.Canvas = render.NewCanvas(int(w), int(h))
	}
	if d.Clock == nil {
		d.Clock = NewPausableClock(nil)
	}
	if d.Interval <= 0 {
		d.Interval = parameter.FrameUpdateInterval
	}
	if d.Log == nil {
		d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d.last = d.Clock.Elapsed()
	d.ready = true
}

// Run ticks Frame at the configured interval until ctx is cancelled
// Returns ctx.Err() on cancellation or the first presenter error
func (d *Driver) Run(ctx context.Context) error {
	d.init()
	ticker := time.NewTicker(d.Interval)
	defer ticker.Stop()

	d.Log.Debug("frame loop started", "interval", d.Interval)
	for {
		select {
		case <-ctx.Done():
			d.Log.Debug("frame loop stopped", "frames", d.frame, "reason", ctx.Err())
			return ctx.Err()
		case fn := <-d.Updates:
			fn()
		case <-ticker.C:
			if err := d.Frame(); err != nil {
				return err
			}
		}
	}
}

// Frame runs one iteration of the loop
func (d *Driver) Frame() error {
	d.init()

	for _, ev := range d.Queue.DrainInto(d.Sim) {
		switch ev.Kind {
		case neural.EventVisibility:
			// Hidden spells never reach the simulator as a large dt
			if ev.Visible {
				d.Clock.Resume()
			} else {
				d.Clock.Pause()
			}
		case neural.EventResize:
			d.Canvas.Resize(int(ev.Width), int(ev.Height))
		}
	}

	now := d.Clock.Elapsed()
	dt := now - d.last
	d.last = now

	d.Sim.Step(dt.Seconds())
	d.frame++

	info := FrameInfo{Frame: d.frame, DT: dt, Visible: d.Sim.Visible()}
	if info.Visible {
		d.Sim.Render(d.Canvas)
		if d.Presenter != nil {
			if err := d.Presenter.Present(d.Canvas.Image()); err != nil {
				return fmt.Errorf("present frame %d: %w", d.frame, err)
			}
			info.Presented = true
		}
	}

	if d.OnFrame != nil {
		info.Stats = d.Sim.Stats()
		d.OnFrame(info)
	}
	return nil
}
