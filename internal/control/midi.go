package control

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
)

// Bindings maps MIDI input onto the controls.
type Bindings struct {
	// Knobs maps a controller number to the knob it sets (0-127 over the range).
	Knobs map[uint8]ID
	// ModeCC switches to envelope mode at values >= 64 and to LFO below.
	ModeCC uint8
	// StepBaseNote is the note that toggles step 0; the next 7 notes toggle
	// the following steps.
	StepBaseNote uint8
}

// DefaultBindings suits the first knob row of most controllers and a pad
// bank starting at C1.
func DefaultBindings() Bindings {
	return Bindings{
		Knobs: map[uint8]ID{
			21: Rate,
			22: Depth,
			23: Tempo,
			24: Attack,
			25: Decay,
			26: Resonance,
		},
		ModeCC:       27,
		StepBaseNote: 36,
	}
}

type eventKind int

const (
	eventKnob eventKind = iota
	eventMode
	eventStep
)

type event struct {
	kind eventKind
	knob ID
	norm float64
	mode params.Mode
	step int
}

// ModeSwitcher applies a mode change with its reset semantics.
type ModeSwitcher interface {
	SwitchMode(m params.Mode)
}

// MIDI turns incoming messages into control changes. Messages may arrive on
// any goroutine; they are queued and applied by Drain on the frame loop.
type MIDI struct {
	bindings Bindings
	events   chan event
}

func NewMIDI(b Bindings) *MIDI {
	return &MIDI{
		bindings: b,
		events:   make(chan event, 64),
	}
}

// Handle queues the control change carried by msg, if any. A full queue
// drops the message.
func (m *MIDI) Handle(msg gomidi.Message) bool {
	var channel, key, velocity, controller, value uint8
	var ev event
	switch {
	case msg.GetControlChange(&channel, &controller, &value):
		if controller == m.bindings.ModeCC {
			ev = event{kind: eventMode, mode: params.ModeLFO}
			if value >= 64 {
				ev.mode = params.ModeEnvelope
			}
			break
		}
		id, ok := m.bindings.Knobs[controller]
		if !ok {
			return false
		}
		ev = event{kind: eventKnob, knob: id, norm: float64(value) / 127}
	case msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0:
		if key < m.bindings.StepBaseNote || key >= m.bindings.StepBaseNote+sequencer.NumSteps {
			return false
		}
		ev = event{kind: eventStep, step: int(key - m.bindings.StepBaseNote)}
	default:
		return false
	}
	select {
	case m.events <- ev:
		return true
	default:
		return false
	}
}

// Drain applies every queued change and returns how many were applied.
func (m *MIDI) Drain(knobs Set, modes ModeSwitcher, seq *sequencer.Sequencer) int {
	n := 0
	for {
		select {
		case ev := <-m.events:
			switch ev.kind {
			case eventKnob:
				if k := knobs.Find(ev.knob); k != nil {
					k.SetNormalized(ev.norm)
				}
			case eventMode:
				modes.SwitchMode(ev.mode)
			case eventStep:
				seq.Toggle(ev.step)
			}
			n++
		default:
			return n
		}
	}
}

// Listen feeds messages from in to Handle until the returned stop is called.
func (m *MIDI) Listen(in drivers.In) (stop func(), err error) {
	stop, err = gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		m.Handle(msg)
	})
	if err != nil {
		return nil, fmt.Errorf("listen to %s: %w", in, err)
	}
	return stop, nil
}

// InPortNames lists the available MIDI inputs.
func InPortNames() []string {
	ins := gomidi.GetInPorts()
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.String()
	}
	return names
}

// OpenInPort finds an input port by name.
func OpenInPort(name string) (drivers.In, error) {
	in, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("find MIDI input %q: %w", name, err)
	}
	return in, nil
}
