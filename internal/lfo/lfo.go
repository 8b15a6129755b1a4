package lfo

import "math"

// Center is the normalized cutoff the LFO swings around.
const Center = 0.475

// LFO is a free-running sine oscillator modulating the normalized cutoff.
// It keeps running whether or not its output is being displayed.
type LFO struct {
	phase float64 // radians, accumulated for the lifetime of the LFO
}

// Advance moves the phase forward by dt seconds at rateHz.
// The phase is never wrapped; sin is periodic.
func (l *LFO) Advance(dt, rateHz float64) {
	l.phase += 2 * math.Pi * rateHz * dt
}

// FcNorm returns the modulated normalized cutoff for the given depth.
func (l *LFO) FcNorm(depth float64) float64 {
	return Center + depth*math.Sin(l.phase)
}

// Phase returns the accumulated phase in radians.
func (l *LFO) Phase() float64 {
	return l.phase
}
