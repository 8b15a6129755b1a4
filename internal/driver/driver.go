package driver

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/modulation"
)

// MaxFrameDelta caps the time advanced by a single frame, in seconds.
// After a long stall (suspended window, debugger) the engine moves on by one
// short frame instead of replaying the gap.
const MaxFrameDelta = 0.1

// FrameLogInterval is how many frames pass between frame timing lines in the
// debug log.
const FrameLogInterval = 300

// Renderer consumes one curve per frame. Points run left to right with
// x in [0,width] and y in [0,height], y growing downward.
type Renderer interface {
	Render(c filter.Curve, accent color.RGBA)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(c filter.Curve, accent color.RGBA)

func (f RendererFunc) Render(c filter.Curve, accent color.RGBA) { f(c, accent) }

// Scheduler hands out frame times. Next blocks until the host's next frame
// and returns an error once the loop should stop.
type Scheduler interface {
	Next(ctx context.Context) (time.Time, error)
}

type Option func(*Driver)

// WithViewport sets the size source, consulted on every frame.
func WithViewport(size func() (w, h int)) Option {
	return func(d *Driver) {
		d.size = size
	}
}

func WithAccent(c color.RGBA) Option {
	return func(d *Driver) {
		d.accent = c
	}
}

// WithStart sets the time the first frame measures its delta from.
func WithStart(t time.Time) Option {
	return func(d *Driver) {
		d.last = t
	}
}

// Driver runs one animation step per host frame: measure the frame delta,
// advance the modulation, rebuild the curve and hand it to the renderer.
type Driver struct {
	engine   *modulation.Engine
	renderer Renderer
	size     func() (w, h int)
	accent   color.RGBA

	last    time.Time
	dt      float64
	plotter filter.Plotter
	curve   filter.Curve
}

func New(engine *modulation.Engine, renderer Renderer, opts ...Option) (*Driver, error) {
	if engine == nil {
		return nil, errors.New("driver: engine is required")
	}
	if renderer == nil {
		return nil, errors.New("driver: renderer is required")
	}
	d := &Driver{
		engine:   engine,
		renderer: renderer,
		size:     func() (int, int) { return 600, 200 },
		accent:   color.RGBA{0xff, 0x8c, 0x42, 0xff},
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.last.IsZero() {
		d.last = time.Now()
	}
	return d, nil
}

// Frame runs a single animation step for a frame presented at now.
func (d *Driver) Frame(now time.Time) {
	d.dt = ClampDelta(now.Sub(d.last))
	d.last = now

	d.engine.Advance(d.dt)

	w, h := d.size()
	q := d.engine.Params().Q
	d.curve = d.plotter.BuildInto(d.curve, w, h, d.engine.FcNorm(), q)
	d.renderer.Render(d.curve, d.accent)

	if debug.Enabled() {
		debug.LogEvery(FrameLogInterval, "driver", "frame dt=%.4fs fc=%.3f size=%dx%d",
			d.dt, d.engine.FcNorm(), w, h)
	}
}

// ClampDelta converts a frame gap to seconds in [0, MaxFrameDelta].
func ClampDelta(gap time.Duration) float64 {
	dt := gap.Seconds()
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameDelta {
		debug.Log("driver", "frame gap %.3fs clamped to %.1fs", dt, MaxFrameDelta)
		return MaxFrameDelta
	}
	return dt
}

// Run drives frames from sched until ctx is done or sched fails.
func (d *Driver) Run(ctx context.Context, sched Scheduler) error {
	for {
		now, err := sched.Next(ctx)
		if err != nil {
			return err
		}
		d.Frame(now)
	}
}

// LastDelta returns the clamped delta of the most recent frame, in seconds.
func (d *Driver) LastDelta() float64 { return d.dt }

// Curve returns the most recently rendered curve. It is overwritten by the
// next frame.
func (d *Driver) Curve() filter.Curve { return d.curve }

func (d *Driver) Engine() *modulation.Engine { return d.engine }

func (d *Driver) SetAccent(c color.RGBA) { d.accent = c }
