package lfo

import (
	"math"
	"testing"
)

func TestLFOStartsAtCenter(t *testing.T) {
	l := &LFO{}
	if got := l.FcNorm(0.04); got != Center {
		t.Fatalf("fcNorm at phase 0 = %v, want %v", got, Center)
	}
}

func TestLFOQuarterCycleReachesPeak(t *testing.T) {
	l := &LFO{}
	rate := 0.12
	// A quarter period puts the phase at pi/2.
	l.Advance(1/(4*rate), rate)
	if math.Abs(l.Phase()-math.Pi/2) > 1e-12 {
		t.Fatalf("phase = %v, want pi/2", l.Phase())
	}
	if got := l.FcNorm(0.04); math.Abs(got-0.515) > 1e-12 {
		t.Fatalf("fcNorm = %v, want 0.515", got)
	}
}

func TestLFOPhaseIsLinearInTime(t *testing.T) {
	rate := 3.7
	total := 12.5

	small := &LFO{}
	steps := 12500
	for i := 0; i < steps; i++ {
		small.Advance(total/float64(steps), rate)
	}
	big := &LFO{}
	big.Advance(total, rate)

	want := 2 * math.Pi * rate * total
	if math.Abs(big.Phase()-want) > 1e-12 {
		t.Errorf("single step phase = %v, want %v", big.Phase(), want)
	}
	if math.Abs(small.Phase()-want) > 1e-9 {
		t.Errorf("many steps phase = %v, want %v", small.Phase(), want)
	}
}

func TestLFOPhaseIsNotWrapped(t *testing.T) {
	l := &LFO{}
	l.Advance(10, 1)
	if l.Phase() < 2*math.Pi*10-1e-9 {
		t.Fatalf("phase = %v, expected unwrapped accumulation", l.Phase())
	}
}

func TestLFOSwingStaysWithinDepth(t *testing.T) {
	l := &LFO{}
	depth := 0.4
	for i := 0; i < 1000; i++ {
		l.Advance(0.016, 2.3)
		v := l.FcNorm(depth)
		if v < Center-depth-1e-12 || v > Center+depth+1e-12 {
			t.Fatalf("fcNorm = %v outside [%v, %v]", v, Center-depth, Center+depth)
		}
	}
}
