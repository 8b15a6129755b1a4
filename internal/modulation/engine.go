package modulation

import (
	"github.com/cbegin/filterviz-go/internal/envelope"
	"github.com/cbegin/filterviz-go/internal/lfo"
	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
)

// Engine produces the normalized cutoff from whichever source the mode
// selects. It reads p on every call and only writes p.Mode in SwitchMode.
type Engine struct {
	p *params.Params

	mode params.Mode
	lfo  lfo.LFO
	env  envelope.Envelope
	seq  *sequencer.Sequencer
}

// New builds an engine over p. If p starts in envelope mode the sequencer
// and envelope start from their reset state.
func New(p *params.Params) *Engine {
	e := &Engine{p: p, mode: params.ModeLFO}
	e.seq = sequencer.New(&e.env)
	e.SwitchMode(p.Mode)
	return e
}

// Advance moves the active source forward by dt seconds.
func (e *Engine) Advance(dt float64) {
	e.syncMode()
	switch e.mode {
	case params.ModeEnvelope:
		e.seq.Advance(dt, e.p.Tempo)
		e.env.Advance(dt, e.p.Attack, e.p.Decay)
	default:
		e.lfo.Advance(dt, e.p.LFORate)
	}
}

// FcNorm returns the current normalized cutoff.
func (e *Engine) FcNorm() float64 {
	if e.mode == params.ModeEnvelope {
		return e.env.FcNorm(e.p.Depth)
	}
	return e.lfo.FcNorm(e.p.Depth)
}

// SwitchMode changes the active source. Entering envelope mode restarts the
// sequencer and closes the envelope; entering LFO mode keeps the LFO phase.
func (e *Engine) SwitchMode(m params.Mode) {
	if m != params.ModeEnvelope {
		m = params.ModeLFO
	}
	e.p.Mode = m
	if m == e.mode {
		return
	}
	e.mode = m
	if m == params.ModeEnvelope {
		e.seq.Reset()
		e.env.Reset()
	}
}

// syncMode picks up a mode written directly into the params.
func (e *Engine) syncMode() {
	if e.p.Mode != e.mode {
		e.SwitchMode(e.p.Mode)
	}
}

func (e *Engine) Mode() params.Mode { return e.mode }

// Params returns the configuration the engine reads.
func (e *Engine) Params() *params.Params { return e.p }

// Step returns the sequencer's playing step, or sequencer.NotStarted.
func (e *Engine) Step() int { return e.seq.Current() }

// OnStep installs the step highlight callback.
func (e *Engine) OnStep(fn func(step int)) { e.seq.OnStep(fn) }

// Sequencer exposes the step pattern for the host's toggles.
func (e *Engine) Sequencer() *sequencer.Sequencer { return e.seq }

// Envelope exposes the envelope for inspection and manual triggering.
func (e *Engine) Envelope() *envelope.Envelope { return &e.env }

// LFO exposes the oscillator for inspection.
func (e *Engine) LFO() *lfo.LFO { return &e.lfo }
