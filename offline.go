package filterviz

import (
	"errors"
	"time"
)

// Frame is one offline animation step.
type Frame struct {
	Time   float64 // seconds since the start
	FcNorm float64
	Step   int
	Curve  Curve
}

// RenderFrames runs the animation on a synthetic clock at fps frames per
// second for the given duration and returns every frame. No renderer or
// display is involved, so the result is deterministic.
func RenderFrames(fps int, seconds float64, opts ...Option) ([]Frame, error) {
	if fps <= 0 {
		return nil, errors.New("fps must be positive")
	}
	start := time.Unix(0, 0)
	v, err := New(append(opts[:len(opts):len(opts)], WithStart(start))...)
	if err != nil {
		return nil, err
	}
	period := time.Second / time.Duration(fps)
	// The epsilon keeps fps*seconds from flooring one frame short.
	n := int(float64(fps)*seconds + 1e-9)
	out := make([]Frame, 0, max(0, n))
	for i := 1; i <= n; i++ {
		now := start.Add(time.Duration(i) * period)
		v.Frame(now)
		out = append(out, Frame{
			Time:   now.Sub(start).Seconds(),
			FcNorm: v.FcNorm(),
			Step:   v.Step(),
			Curve:  append(Curve(nil), v.Curve()...),
		})
	}
	return out, nil
}
