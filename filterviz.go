// Package filterviz animates the magnitude response of a resonant low-pass
// filter whose cutoff is swept by an LFO or by a step-sequenced envelope.
package filterviz

import (
	"context"
	"errors"
	"image/color"
	"time"

	"github.com/cbegin/filterviz-go/internal/driver"
	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/modulation"
	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
	"github.com/cbegin/filterviz-go/internal/theme"
)

type (
	Mode   = params.Mode
	Params = params.Params
	Curve  = filter.Curve
)

const (
	ModeLFO      = params.ModeLFO
	ModeEnvelope = params.ModeEnvelope
)

type Option func(*visualizerConfig)

type visualizerConfig struct {
	params   params.Params
	steps    *[sequencer.NumSteps]bool
	accent   string
	viewport func() (w, h int)
	renderer driver.Renderer
	onStep   func(step int)
	start    time.Time
}

func defaultVisualizerConfig() visualizerConfig {
	return visualizerConfig{
		params: params.Default(),
		accent: theme.DefaultAccent,
	}
}

func WithMode(mode Mode) Option {
	return func(cfg *visualizerConfig) {
		cfg.params.Mode = mode
	}
}

// WithParams replaces the whole configuration, mode included. Values are
// used as given; hosts clamp them to the control ranges if they want to.
func WithParams(p Params) Option {
	return func(cfg *visualizerConfig) {
		cfg.params = p
	}
}

func WithSteps(steps [sequencer.NumSteps]bool) Option {
	return func(cfg *visualizerConfig) {
		cfg.steps = &steps
	}
}

// WithAccent sets the curve colour as a "#rgb" or "#rrggbb" hex string.
func WithAccent(hex string) Option {
	return func(cfg *visualizerConfig) {
		cfg.accent = hex
	}
}

// WithViewport sets the plot size source. It is called once per frame so
// resizes are picked up immediately.
func WithViewport(size func() (w, h int)) Option {
	return func(cfg *visualizerConfig) {
		cfg.viewport = size
	}
}

func WithRenderer(r driver.Renderer) Option {
	return func(cfg *visualizerConfig) {
		cfg.renderer = r
	}
}

// WithStepObserver installs a callback run on the frame goroutine each time
// the sequencer enters a step, and with -1 when it is reset.
func WithStepObserver(fn func(step int)) Option {
	return func(cfg *visualizerConfig) {
		cfg.onStep = fn
	}
}

// WithStart sets the time the first frame measures from. Defaults to now.
func WithStart(t time.Time) Option {
	return func(cfg *visualizerConfig) {
		cfg.start = t
	}
}

// Visualizer owns the parameters, the modulation engine and the frame driver.
// It is not safe for concurrent use; drive it from one goroutine.
type Visualizer struct {
	params *params.Params
	engine *modulation.Engine
	driver *driver.Driver
	accent theme.Accent
}

func New(opts ...Option) (*Visualizer, error) {
	cfg := defaultVisualizerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	accent, err := theme.ParseAccent(cfg.accent)
	if err != nil {
		return nil, err
	}

	v := &Visualizer{accent: accent}
	p := cfg.params
	v.params = &p
	v.engine = modulation.New(v.params)
	if cfg.steps != nil {
		v.engine.Sequencer().Steps = *cfg.steps
	}
	if cfg.onStep != nil {
		v.engine.OnStep(cfg.onStep)
	}

	renderer := cfg.renderer
	if renderer == nil {
		renderer = driver.RendererFunc(func(filter.Curve, color.RGBA) {})
	}
	dopts := []driver.Option{driver.WithAccent(accent.RGBA())}
	if cfg.viewport != nil {
		dopts = append(dopts, driver.WithViewport(cfg.viewport))
	}
	if !cfg.start.IsZero() {
		dopts = append(dopts, driver.WithStart(cfg.start))
	}
	v.driver, err = driver.New(v.engine, renderer, dopts...)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Frame runs one animation step for a frame presented at now.
func (v *Visualizer) Frame(now time.Time) {
	v.driver.Frame(now)
}

// Run drives frames from sched until ctx is cancelled or sched gives up.
// A cancelled context is not reported as an error.
func (v *Visualizer) Run(ctx context.Context, sched driver.Scheduler) error {
	err := v.driver.Run(ctx, sched)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Params returns the live configuration. Changes apply on the next frame.
func (v *Visualizer) Params() *Params { return v.params }

func (v *Visualizer) Mode() Mode { return v.engine.Mode() }

func (v *Visualizer) SwitchMode(mode Mode) { v.engine.SwitchMode(mode) }

// FcNorm returns the normalized cutoff of the most recent frame.
func (v *Visualizer) FcNorm() float64 { return v.engine.FcNorm() }

// Step returns the highlighted step, or -1 before the first step.
func (v *Visualizer) Step() int { return v.engine.Step() }

func (v *Visualizer) Steps() [sequencer.NumSteps]bool { return v.engine.Sequencer().Steps }

func (v *Visualizer) ToggleStep(i int) { v.engine.Sequencer().Toggle(i) }

// Curve returns the most recently built curve. The slice is reused by the
// next frame; copy it to keep it.
func (v *Visualizer) Curve() Curve { return v.driver.Curve() }

// LastDelta returns the clamped time step of the most recent frame.
func (v *Visualizer) LastDelta() float64 { return v.driver.LastDelta() }

func (v *Visualizer) Accent() string { return v.accent.Hex() }

func (v *Visualizer) SetAccent(hex string) error {
	a, err := theme.ParseAccent(hex)
	if err != nil {
		return err
	}
	v.accent = a
	v.driver.SetAccent(a.RGBA())
	return nil
}

// Engine exposes the modulation engine to hosts wiring extra controls.
func (v *Visualizer) Engine() *modulation.Engine { return v.engine }
