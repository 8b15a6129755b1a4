package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
	"github.com/cbegin/filterviz-go/internal/theme"
)

// ModulationConfig stores the knob positions.
type ModulationConfig struct {
	Mode    string  `json:"mode"`
	LFORate float64 `json:"lfoRate"`
	Depth   float64 `json:"depth"`
	Tempo   float64 `json:"tempo"`
	Attack  float64 `json:"attack"`
	Decay   float64 `json:"decay"`
	Q       float64 `json:"q"`
}

// UIConfig stores display preferences.
type UIConfig struct {
	Accent string `json:"accent,omitempty"`
}

// MIDIConfig names the controller input to listen on.
type MIDIConfig struct {
	InputPort string `json:"inputPort,omitempty"`
}

// Config is the saved preset.
type Config struct {
	Modulation ModulationConfig `json:"modulation"`
	Steps      []bool           `json:"steps,omitempty"`
	UI         UIConfig         `json:"ui,omitempty"`
	MIDI       MIDIConfig       `json:"midi,omitempty"`
}

// DefaultConfig returns the factory preset.
func DefaultConfig() *Config {
	return FromState(params.Default(), sequencer.DefaultPattern, theme.DefaultAccent)
}

// FromState captures the current parameters and pattern.
func FromState(p params.Params, steps [sequencer.NumSteps]bool, accent string) *Config {
	return &Config{
		Modulation: ModulationConfig{
			Mode:    string(p.Mode),
			LFORate: p.LFORate,
			Depth:   p.Depth,
			Tempo:   p.Tempo,
			Attack:  p.Attack,
			Decay:   p.Decay,
			Q:       p.Q,
		},
		Steps: steps[:],
		UI:    UIConfig{Accent: accent},
	}
}

// Apply writes the preset into p and steps, clamping every value into its
// control range. Missing steps keep their current state.
func (c *Config) Apply(p *params.Params, steps *[sequencer.NumSteps]bool) {
	m := c.Modulation
	p.Mode = params.Mode(m.Mode)
	p.LFORate = m.LFORate
	p.Depth = m.Depth
	p.Tempo = m.Tempo
	p.Attack = m.Attack
	p.Decay = m.Decay
	p.Q = m.Q
	p.Clamp()
	for i := 0; i < len(c.Steps) && i < sequencer.NumSteps; i++ {
		steps[i] = c.Steps[i]
	}
}

// Dir returns the config directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "filterviz"), nil
}

// DefaultPath returns the full path to config.json.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the preset at path, or returns defaults if it does not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the preset to path, creating its directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
