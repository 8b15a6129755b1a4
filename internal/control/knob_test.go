package control

import (
	"math"
	"testing"

	"github.com/cbegin/filterviz-go/internal/params"
)

func TestKnobSetClampsAndWritesThrough(t *testing.T) {
	p := params.Default()
	q := All(&p).Find(Resonance)
	q.Set(50)
	if p.Q != 20 {
		t.Fatalf("Q = %v, want 20", p.Q)
	}
	q.Set(-3)
	if p.Q != 1 {
		t.Fatalf("Q = %v, want 1", p.Q)
	}
}

func TestKnobDragSweepsRangeOver150Pixels(t *testing.T) {
	p := params.Default()
	k := All(&p).Find(Depth)
	k.Set(0)
	k.Drag(0, DragPixels)
	if math.Abs(p.Depth-0.4) > 1e-12 {
		t.Fatalf("depth after full drag up = %v, want 0.4", p.Depth)
	}
	k.Drag(0.4, -DragPixels/2)
	if math.Abs(p.Depth-0.2) > 1e-12 {
		t.Fatalf("depth after half drag down = %v, want 0.2", p.Depth)
	}
}

func TestKnobAngle(t *testing.T) {
	p := params.Default()
	k := All(&p).Find(Tempo)
	cases := []struct {
		tempo float64
		want  float64
	}{
		{40, -135},
		{120, 0},
		{200, 135},
	}
	for _, tc := range cases {
		k.Set(tc.tempo)
		if got := k.Angle(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("tempo %v: angle = %v, want %v", tc.tempo, got, tc.want)
		}
	}
}

func TestKnobText(t *testing.T) {
	p := params.Default()
	all := All(&p)
	cases := []struct {
		id   ID
		v    float64
		want string
	}{
		{Rate, 0.12, "0.12 Hz"},
		{Depth, 0.04, "10%"},
		{Tempo, 119.6, "120 BPM"},
		{Attack, 0.05, "50 ms"},
		{Decay, 0.3, "300 ms"},
		{Decay, 1.5, "1.50 s"},
		{Resonance, 3, "3.0"},
	}
	for _, tc := range cases {
		k := all.Find(tc.id)
		k.Set(tc.v)
		if got := k.Text(); got != tc.want {
			t.Errorf("%s(%v) = %q, want %q", tc.id, tc.v, got, tc.want)
		}
	}
}

func TestForMode(t *testing.T) {
	p := params.Default()
	lfo := ForMode(&p, params.ModeLFO)
	env := ForMode(&p, params.ModeEnvelope)
	wantLFO := []ID{Rate, Depth, Resonance}
	wantEnv := []ID{Tempo, Depth, Attack, Decay, Resonance}
	check := func(name string, got Set, want []ID) {
		if len(got) != len(want) {
			t.Fatalf("%s: %d knobs, want %d", name, len(got), len(want))
		}
		for i := range want {
			if got[i].ID != want[i] {
				t.Fatalf("%s: knob %d = %s, want %s", name, i, got[i].ID, want[i])
			}
		}
	}
	check("lfo", lfo, wantLFO)
	check("envelope", env, wantEnv)

	// Both sets share the same parameter.
	lfo.Find(Depth).Set(0.3)
	if env.Find(Depth).Value() != 0.3 {
		t.Fatal("depth knobs are not bound to the same field")
	}
}

func TestSetNormalized(t *testing.T) {
	p := params.Default()
	k := All(&p).Find(Attack)
	k.SetNormalized(1)
	if math.Abs(p.Attack-1) > 1e-12 {
		t.Fatalf("attack = %v, want 1", p.Attack)
	}
	k.SetNormalized(0)
	if p.Attack != 0.01 {
		t.Fatalf("attack = %v, want 0.01", p.Attack)
	}
	if k.Normalized() != 0 {
		t.Fatalf("normalized = %v", k.Normalized())
	}
}
