package envelope

// Base is the normalized cutoff when the envelope is fully closed.
const Base = 0.25

// Epsilon floors the attack and decay times so a ramp is never undefined.
const Epsilon = 0.001

// Stage is the envelope state.
type Stage int

const (
	StageIdle Stage = iota
	StageAttack
	StageDecay
)

func (s Stage) String() string {
	switch s {
	case StageAttack:
		return "attack"
	case StageDecay:
		return "decay"
	default:
		return "idle"
	}
}

// Envelope is a one-shot attack/decay ramp on [0,1].
//
//	1 +    x
//	  |   / \
//	  |  /   \
//	0 +-x-----x---
//	    |a  |d  |
type Envelope struct {
	stage Stage
	value float64
	timer float64 // seconds since the current stage was entered
}

// Trigger (re)starts the attack. The current value is kept; only the stage
// and the stage timer change.
func (e *Envelope) Trigger() {
	e.stage = StageAttack
	e.timer = 0
}

// Reset forces the envelope closed and idle.
func (e *Envelope) Reset() {
	e.stage = StageIdle
	e.value = 0
	e.timer = 0
}

// Advance moves the ramp forward by dt seconds.
func (e *Envelope) Advance(dt, attack, decay float64) {
	switch e.stage {
	case StageAttack:
		e.timer += dt
		e.value = min(1, e.timer/max(Epsilon, attack))
		if e.value >= 1 {
			e.stage = StageDecay
			e.timer = 0
		}
	case StageDecay:
		e.timer += dt
		e.value = max(0, 1-e.timer/max(Epsilon, decay))
		if e.value <= 0 {
			e.stage = StageIdle
		}
	}
}

// FcNorm returns the modulated normalized cutoff for the given depth.
func (e *Envelope) FcNorm(depth float64) float64 {
	return Base + e.value*depth
}

func (e *Envelope) Stage() Stage     { return e.stage }
func (e *Envelope) Value() float64   { return e.value }
func (e *Envelope) Elapsed() float64 { return e.timer }
