package filterviz

import (
	"math"
	"testing"
)

func TestRenderFramesLFO(t *testing.T) {
	p := Params{Mode: ModeLFO, LFORate: 0.12, Depth: 0.04, Tempo: 120, Attack: 0.05, Decay: 0.3, Q: 3}
	frames, err := RenderFrames(64, 2, WithParams(p), WithViewport(func() (int, int) { return 200, 80 }))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(frames) != 128 {
		t.Fatalf("frames = %d, want 128", len(frames))
	}
	for i, f := range frames {
		want := 0.475 + 0.04*math.Sin(2*math.Pi*0.12*f.Time)
		if math.Abs(f.FcNorm-want) > 1e-9 {
			t.Fatalf("frame %d: fcNorm = %v, want %v", i, f.FcNorm, want)
		}
		if len(f.Curve) != 201 {
			t.Fatalf("frame %d: curve len = %d", i, len(f.Curve))
		}
		if f.Step != -1 {
			t.Fatalf("frame %d: sequencer ran in LFO mode", i)
		}
	}
	if &frames[0].Curve[0] == &frames[1].Curve[0] {
		t.Fatal("frames share a curve buffer")
	}
}

func TestRenderFramesEnvelope(t *testing.T) {
	var steps []int
	frames, err := RenderFrames(64, 1,
		WithMode(ModeEnvelope),
		WithSteps([8]bool{true}),
		WithStepObserver(func(step int) { steps = append(steps, step) }),
	)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 0.125 s: one sixteenth at 120 BPM.
	f := frames[7]
	if f.Time != 0.125 || f.Step != 0 {
		t.Fatalf("frame 7: time=%v step=%d", f.Time, f.Step)
	}
	// The trigger lands before the envelope advances within the frame.
	want := 0.25 + (0.015625/0.05)*0.04
	if math.Abs(f.FcNorm-want) > 1e-12 {
		t.Fatalf("fcNorm = %v, want %v", f.FcNorm, want)
	}
	for i := 0; i < 7; i++ {
		if frames[i].FcNorm != 0.25 || frames[i].Step != -1 {
			t.Fatalf("frame %d opened before the first step", i)
		}
	}
	wantSteps := []int{0, 1, 2, 3, 4, 5, 6, 7}
	if len(steps) != len(wantSteps) {
		t.Fatalf("steps = %v, want %v", steps, wantSteps)
	}
	for i := range steps {
		if steps[i] != wantSteps[i] {
			t.Fatalf("steps = %v, want %v", steps, wantSteps)
		}
	}
}

func TestRenderFramesRejectsBadRate(t *testing.T) {
	if _, err := RenderFrames(0, 1); err == nil {
		t.Fatal("expected an error for fps=0")
	}
}
