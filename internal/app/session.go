// Package app holds the host setup shared by the filterviz binaries: flags
// layered over the saved preset, MIDI input and debug logging.
package app

import (
	"flag"
	"fmt"
	"strings"

	filterviz "github.com/cbegin/filterviz-go"
	"github.com/cbegin/filterviz-go/internal/config"
	"github.com/cbegin/filterviz-go/internal/control"
	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
)

// Flags are the command line settings common to every host.
type Flags struct {
	fs *flag.FlagSet

	mode   *string
	rate   *float64
	depth  *float64
	tempo  *float64
	attack *float64
	decay  *float64
	q      *float64
	steps  *string
	accent *string

	configPath *string
	save       *bool
	midiPort   *string
	debug      *bool
}

// RegisterFlags defines the common flags on fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	d := params.Default()
	return &Flags{
		fs:         fs,
		mode:       fs.String("mode", string(d.Mode), "modulation source: lfo|envelope"),
		rate:       fs.Float64("rate", d.LFORate, "LFO rate in Hz"),
		depth:      fs.Float64("depth", d.Depth, "cutoff modulation depth (0..0.4)"),
		tempo:      fs.Float64("tempo", d.Tempo, "sequencer tempo in BPM"),
		attack:     fs.Float64("attack", d.Attack, "envelope attack in seconds"),
		decay:      fs.Float64("decay", d.Decay, "envelope decay in seconds"),
		q:          fs.Float64("q", d.Q, "filter resonance"),
		steps:      fs.String("steps", FormatSteps(sequencer.DefaultPattern), "step pattern, 8 characters of 1/0 or x/."),
		accent:     fs.String("accent", "", "curve colour as #rgb or #rrggbb"),
		configPath: fs.String("config", "", "preset file (default ~/.config/filterviz/config.json)"),
		save:       fs.Bool("save", false, "save the final state to the preset file on exit"),
		midiPort:   fs.String("midi", "", "MIDI input port name, or \"list\" to print the ports"),
		debug:      fs.Bool("debug", false, "write a debug log to ~/.config/filterviz/debug.log"),
	}
}

// Session is the resolved host configuration.
type Session struct {
	Params     params.Params
	Steps      [sequencer.NumSteps]bool
	Accent     string
	ConfigPath string
	Save       bool
	MIDIPort   string
	Debug      bool
}

// Resolve loads the preset and lets explicitly set flags override it.
// Call it after the flag set has been parsed.
func (f *Flags) Resolve() (*Session, error) {
	path := *f.configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	s := &Session{
		Steps:      sequencer.DefaultPattern,
		Accent:     cfg.UI.Accent,
		ConfigPath: path,
		Save:       *f.save,
		MIDIPort:   cfg.MIDI.InputPort,
		Debug:      *f.debug,
	}
	cfg.Apply(&s.Params, &s.Steps)

	var firstErr error
	f.fs.Visit(func(fl *flag.Flag) {
		if err := f.override(s, fl.Name); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	if firstErr != nil {
		return nil, firstErr
	}
	s.Params.Clamp()
	if s.Accent == "" {
		s.Accent = config.DefaultConfig().UI.Accent
	}
	return s, nil
}

func (f *Flags) override(s *Session, name string) error {
	switch name {
	case "mode":
		m, err := params.ParseMode(strings.ToLower(strings.TrimSpace(*f.mode)))
		if err != nil {
			return fmt.Errorf("-mode: %w", err)
		}
		s.Params.Mode = m
	case "rate":
		s.Params.LFORate = *f.rate
	case "depth":
		s.Params.Depth = *f.depth
	case "tempo":
		s.Params.Tempo = *f.tempo
	case "attack":
		s.Params.Attack = *f.attack
	case "decay":
		s.Params.Decay = *f.decay
	case "q":
		s.Params.Q = *f.q
	case "steps":
		steps, err := ParseSteps(*f.steps)
		if err != nil {
			return fmt.Errorf("-steps: %w", err)
		}
		s.Steps = steps
	case "accent":
		s.Accent = *f.accent
	case "midi":
		s.MIDIPort = *f.midiPort
	}
	return nil
}

// Options returns the visualizer options for the session.
func (s *Session) Options() []filterviz.Option {
	return []filterviz.Option{
		filterviz.WithParams(s.Params),
		filterviz.WithSteps(s.Steps),
		filterviz.WithAccent(s.Accent),
	}
}

// Persist writes the visualizer's state to the preset file when saving was
// requested.
func (s *Session) Persist(v *filterviz.Visualizer) error {
	if !s.Save {
		return nil
	}
	cfg := config.FromState(*v.Params(), v.Steps(), v.Accent())
	cfg.MIDI.InputPort = s.MIDIPort
	if err := cfg.Save(s.ConfigPath); err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	return nil
}

// StartDebug enables the debug log when requested.
func (s *Session) StartDebug() error {
	if !s.Debug {
		return nil
	}
	path, err := debug.DefaultPath()
	if err != nil {
		return err
	}
	return debug.Enable(path)
}

// StartMIDI opens the session's MIDI port and feeds it into m. Without a
// port it does nothing and returns a no-op stop.
func (s *Session) StartMIDI(m *control.MIDI) (stop func(), err error) {
	if s.MIDIPort == "" {
		return func() {}, nil
	}
	in, err := control.OpenInPort(s.MIDIPort)
	if err != nil {
		return nil, err
	}
	stop, err = m.Listen(in)
	if err != nil {
		return nil, err
	}
	debug.Log("midi", "listening on %s", in)
	return stop, nil
}

// ListPortsRequested reports whether -midi list was given.
func (s *Session) ListPortsRequested() bool {
	return s.MIDIPort == "list"
}

// ParseSteps reads an 8 character pattern where 1 or x arms a step and
// 0 or . leaves it off.
func ParseSteps(pattern string) ([sequencer.NumSteps]bool, error) {
	var steps [sequencer.NumSteps]bool
	pattern = strings.TrimSpace(pattern)
	if len(pattern) != sequencer.NumSteps {
		return steps, fmt.Errorf("pattern %q must have %d steps", pattern, sequencer.NumSteps)
	}
	for i, ch := range pattern {
		switch ch {
		case '1', 'x', 'X':
			steps[i] = true
		case '0', '.', '-':
		default:
			return steps, fmt.Errorf("pattern %q: invalid step %q", pattern, ch)
		}
	}
	return steps, nil
}

// FormatSteps is the inverse of ParseSteps using 1 and 0.
func FormatSteps(steps [sequencer.NumSteps]bool) string {
	var b strings.Builder
	for _, on := range steps {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
