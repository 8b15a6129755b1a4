package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cbegin/filterviz-go/internal/params"
	"github.com/cbegin/filterviz-go/internal/sequencer"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var p params.Params
	steps := [sequencer.NumSteps]bool{}
	cfg.Apply(&p, &steps)
	if p != params.Default() {
		t.Fatalf("params = %+v, want defaults", p)
	}
	if steps != sequencer.DefaultPattern {
		t.Fatalf("steps = %v, want default pattern", steps)
	}
}

func TestSaveLoadPreservesState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	p := params.Default()
	p.Mode = params.ModeEnvelope
	p.Tempo = 96
	p.Q = 12.5
	steps := [sequencer.NumSteps]bool{false, true, true}
	cfg := FromState(p, steps, "#00ff88")
	cfg.MIDI.InputPort = "nanoKONTROL2"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var gotP params.Params
	var gotSteps [sequencer.NumSteps]bool
	loaded.Apply(&gotP, &gotSteps)
	if gotP != p {
		t.Fatalf("params = %+v, want %+v", gotP, p)
	}
	if gotSteps != steps {
		t.Fatalf("steps = %v, want %v", gotSteps, steps)
	}
	if loaded.UI.Accent != "#00ff88" || loaded.MIDI.InputPort != "nanoKONTROL2" {
		t.Fatalf("ui/midi = %+v %+v", loaded.UI, loaded.MIDI)
	}
}

func TestApplyClampsOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	raw := `{"modulation":{"mode":"envelope","lfoRate":99,"depth":2,"tempo":500,"attack":0,"decay":9,"q":0},"steps":[true]}`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var p params.Params
	steps := [sequencer.NumSteps]bool{false, true}
	cfg.Apply(&p, &steps)
	if p.LFORate != 10 || p.Depth != 0.4 || p.Tempo != 200 || p.Attack != 0.01 || p.Decay != 2 || p.Q != 1 {
		t.Fatalf("params not clamped: %+v", p)
	}
	if !steps[0] || !steps[1] {
		t.Fatalf("steps = %v, want first from file and second kept", steps)
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
