package params

import "fmt"

// Mode selects the modulation source driving the cutoff.
type Mode string

const (
	ModeLFO      Mode = "lfo"
	ModeEnvelope Mode = "envelope"
)

// ParseMode maps a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch Mode(name) {
	case ModeLFO, ModeEnvelope:
		return Mode(name), nil
	default:
		return "", fmt.Errorf("invalid mode %q (expected lfo|envelope)", name)
	}
}

// Range is the inclusive bound a host control keeps a parameter in.
type Range struct {
	Min, Max float64
}

func (r Range) Clamp(v float64) float64 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Host-side control ranges. The engine itself never enforces these.
var (
	LFORateRange = Range{0.05, 10}
	DepthRange   = Range{0, 0.4}
	TempoRange   = Range{40, 200}
	AttackRange  = Range{0.01, 1}
	DecayRange   = Range{0.05, 2}
	QRange       = Range{1, 20}
)

// Params is the shared, host-owned configuration read by the engine on every
// frame. Writes take effect on the next frame.
type Params struct {
	Mode Mode

	LFORate float64 // Hz
	Depth   float64 // cutoff swing, shared by both modes

	Tempo  float64 // BPM, one step per sixteenth note
	Attack float64 // seconds
	Decay  float64 // seconds

	Q float64 // resonance
}

func Default() Params {
	return Params{
		Mode:    ModeLFO,
		LFORate: 0.12,
		Depth:   0.04,
		Tempo:   120,
		Attack:  0.05,
		Decay:   0.30,
		Q:       3,
	}
}

// Clamp pulls every numeric field into its control range and falls back to
// LFO for an unknown mode.
func (p *Params) Clamp() {
	if p.Mode != ModeEnvelope {
		p.Mode = ModeLFO
	}
	p.LFORate = LFORateRange.Clamp(p.LFORate)
	p.Depth = DepthRange.Clamp(p.Depth)
	p.Tempo = TempoRange.Clamp(p.Tempo)
	p.Attack = AttackRange.Clamp(p.Attack)
	p.Decay = DecayRange.Clamp(p.Decay)
	p.Q = QRange.Clamp(p.Q)
}
