package filter

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const (
	// LogRange is the number of decades spread across the horizontal axis.
	LogRange = 3.0
	// DBMin is the response level drawn at the bottom edge.
	DBMin = -54.0
	// Headroom above the resonance peak at the top edge, in dB.
	Headroom = 6.0
)

// Point is one plot coordinate in pixels.
type Point struct {
	X, Y float64
}

// Curve is an ordered left-to-right polyline.
type Curve []Point

// MagnitudeDB returns the response in dB of two cascaded identical resonant
// 2nd-order low-pass stages at u = f/fc.
func MagnitudeDB(u, q float64) float64 {
	h := 1 / math.Sqrt((1-u*u)*(1-u*u)+(u/q)*(u/q))
	return 40 * math.Log10(h)
}

// DBMax is the level drawn at the top edge for resonance q.
func DBMax(q float64) float64 {
	return 40*math.Log10(q) + Headroom
}

// Ratio maps pixel column x of width to the frequency ratio f/fc.
func Ratio(x, width int, fcNorm float64) float64 {
	pos := 0.0
	if width > 0 {
		pos = float64(x) / float64(width)
	}
	return math.Pow(10, (pos-fcNorm)*LogRange)
}

// Plotter builds response curves, reusing its buffers between calls.
// A Plotter is not safe for concurrent use.
type Plotter struct {
	re, im, den []float64
}

// BuildCurve returns width+1 points for the response at fcNorm and q.
func BuildCurve(width, height int, fcNorm, q float64) Curve {
	var p Plotter
	return p.BuildInto(nil, width, height, fcNorm, q)
}

// BuildInto writes the curve into dst, growing it when needed, and returns it.
func (p *Plotter) BuildInto(dst Curve, width, height int, fcNorm, q float64) Curve {
	if width < 0 {
		width = 0
	}
	n := width + 1
	p.grow(n)

	// 1/h = |(1-u^2) + j(u/q)|
	for x := 0; x < n; x++ {
		u := Ratio(x, width, fcNorm)
		p.re[x] = 1 - u*u
		p.im[x] = u / q
	}
	vecmath.Magnitude(p.den, p.re, p.im)

	if cap(dst) < n {
		dst = make(Curve, n)
	}
	dst = dst[:n]

	lo := DBMin
	span := DBMax(q) - lo
	fh := float64(height)
	for x := 0; x < n; x++ {
		db := -40 * math.Log10(p.den[x])
		t := (db - lo) / span
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
		dst[x] = Point{X: float64(x), Y: fh * (1 - t)}
	}
	return dst
}

func (p *Plotter) grow(n int) {
	if cap(p.re) < n {
		p.re = make([]float64, n)
		p.im = make([]float64, n)
		p.den = make([]float64, n)
	}
	p.re = p.re[:n]
	p.im = p.im[:n]
	p.den = p.den[:n]
}
