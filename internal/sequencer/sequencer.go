package sequencer

// NumSteps is the length of the step pattern.
const NumSteps = 8

// NotStarted is the step index before the first step has been entered.
const NotStarted = -1

// Triggerer receives a trigger each time an armed step is entered.
type Triggerer interface {
	Trigger()
}

// DefaultPattern is the pattern a fresh sequencer starts with.
var DefaultPattern = [NumSteps]bool{true, false, false, false, true, false, true, false}

// Sequencer is a fixed 8-step clock running in sixteenth notes.
// Steps may be flipped by the host at any time; the sequencer only reads them.
type Sequencer struct {
	Steps [NumSteps]bool

	current int
	timer   float64 // seconds accumulated within the current step

	target Triggerer
	onStep func(step int)
}

// New returns a sequencer with the default pattern that fires target on
// armed steps. target may be nil.
func New(target Triggerer) *Sequencer {
	return &Sequencer{
		Steps:   DefaultPattern,
		current: NotStarted,
		target:  target,
	}
}

// StepDuration is one sixteenth note at tempo BPM, in seconds.
func StepDuration(tempo float64) float64 {
	return 60 / tempo / 4
}

// OnStep installs a callback invoked with the new step index after every
// advance and with NotStarted after Reset.
func (s *Sequencer) OnStep(fn func(step int)) {
	s.onStep = fn
}

// Advance accumulates dt seconds and enters as many steps as that spans.
// A tempo that gives no positive step duration holds the sequencer still.
func (s *Sequencer) Advance(dt, tempo float64) {
	d := StepDuration(tempo)
	if !(d > 0) {
		return
	}
	s.timer += dt
	for s.timer >= d {
		s.timer -= d
		s.current = (s.current + 1) % NumSteps
		if s.Steps[s.current] && s.target != nil {
			s.target.Trigger()
		}
		s.notify()
	}
}

// Reset rewinds to before the first step.
func (s *Sequencer) Reset() {
	s.timer = 0
	s.current = NotStarted
	s.notify()
}

// Current returns the playing step index, or NotStarted.
func (s *Sequencer) Current() int {
	return s.current
}

// Elapsed returns the time spent in the current step.
func (s *Sequencer) Elapsed() float64 {
	return s.timer
}

// Toggle flips step i. Out of range indexes are ignored.
func (s *Sequencer) Toggle(i int) {
	if i >= 0 && i < NumSteps {
		s.Steps[i] = !s.Steps[i]
	}
}

// SetStep arms or disarms step i. Out of range indexes are ignored.
func (s *Sequencer) SetStep(i int, on bool) {
	if i >= 0 && i < NumSteps {
		s.Steps[i] = on
	}
}

func (s *Sequencer) notify() {
	if s.onStep != nil {
		s.onStep(s.current)
	}
}
