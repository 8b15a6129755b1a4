package control

import (
	"fmt"
	"math"

	"github.com/cbegin/filterviz-go/internal/params"
)

// ID names a knob-controlled parameter.
type ID string

const (
	Rate      ID = "rate"
	Depth     ID = "depth"
	Tempo     ID = "tempo"
	Attack    ID = "attack"
	Decay     ID = "decay"
	Resonance ID = "resonance"
)

// DragPixels is the vertical drag distance that sweeps a knob's full range.
const DragPixels = 150

// Indicator sweep, in degrees, at the minimum and maximum value.
const (
	MinAngle = -135.0
	MaxAngle = 135.0
)

// Knob is a bounded rotary control bound to one parameter field.
type Knob struct {
	ID     ID
	Label  string
	Range  params.Range
	value  *float64
	format func(float64) string
}

func (k *Knob) Value() float64 { return *k.value }

// Set clamps v into the knob's range and writes it through.
func (k *Knob) Set(v float64) {
	*k.value = k.Range.Clamp(v)
}

// Normalized returns the value's position in the range, in [0,1].
func (k *Knob) Normalized() float64 {
	span := k.Range.Max - k.Range.Min
	if span == 0 {
		return 0
	}
	return (k.Value() - k.Range.Min) / span
}

// SetNormalized sets the value from a position in [0,1].
func (k *Knob) SetNormalized(t float64) {
	k.Set(k.Range.Min + t*(k.Range.Max-k.Range.Min))
}

// Drag sets the value from a drag that started at start, where dy is how
// many pixels the pointer has moved up since (negative for down).
func (k *Knob) Drag(start, dy float64) {
	k.Set(start + dy*(k.Range.Max-k.Range.Min)/DragPixels)
}

// Angle returns the indicator rotation in degrees.
func (k *Knob) Angle() float64 {
	return MinAngle + k.Normalized()*(MaxAngle-MinAngle)
}

// Text returns the formatted value.
func (k *Knob) Text() string {
	return k.format(k.Value())
}

// Set is an ordered group of knobs.
type Set []*Knob

// Find returns the knob with id, or nil.
func (s Set) Find(id ID) *Knob {
	for _, k := range s {
		if k.ID == id {
			return k
		}
	}
	return nil
}

// All returns every knob bound to p, in a stable order.
func All(p *params.Params) Set {
	return Set{
		{ID: Rate, Label: "Rate", Range: params.LFORateRange, value: &p.LFORate, format: formatHz},
		{ID: Tempo, Label: "Tempo", Range: params.TempoRange, value: &p.Tempo, format: formatBPM},
		{ID: Depth, Label: "Depth", Range: params.DepthRange, value: &p.Depth, format: formatDepth},
		{ID: Attack, Label: "Attack", Range: params.AttackRange, value: &p.Attack, format: formatMillis},
		{ID: Decay, Label: "Decay", Range: params.DecayRange, value: &p.Decay, format: formatSeconds},
		{ID: Resonance, Label: "Resonance", Range: params.QRange, value: &p.Q, format: formatQ},
	}
}

// ForMode returns the knobs shown in mode, in panel order.
func ForMode(p *params.Params, mode params.Mode) Set {
	all := All(p)
	ids := []ID{Rate, Depth, Resonance}
	if mode == params.ModeEnvelope {
		ids = []ID{Tempo, Depth, Attack, Decay, Resonance}
	}
	out := make(Set, 0, len(ids))
	for _, id := range ids {
		out = append(out, all.Find(id))
	}
	return out
}

func formatHz(v float64) string  { return fmt.Sprintf("%.2f Hz", v) }
func formatBPM(v float64) string { return fmt.Sprintf("%d BPM", int(math.Round(v))) }
func formatQ(v float64) string   { return fmt.Sprintf("%.1f", v) }

func formatDepth(v float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(v/params.DepthRange.Max*100)))
}

func formatMillis(v float64) string {
	return fmt.Sprintf("%.0f ms", v*1000)
}

func formatSeconds(v float64) string {
	if v < 1 {
		return formatMillis(v)
	}
	return fmt.Sprintf("%.2f s", v)
}
