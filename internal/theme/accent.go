package theme

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultAccent is used when the host supplies no accent colour.
const DefaultAccent = "#ff8c42"

// Curve fill opacity at the top and bottom of the viewport.
const (
	FillTopAlpha    = 0.25
	FillBottomAlpha = 0.0
)

// Accent is the colour the response curve is drawn in.
type Accent struct {
	c colorful.Color
}

// ParseAccent reads a CSS-style hex colour, with or without '#', in the
// 3- or 6-digit form.
func ParseAccent(hex string) (Accent, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return Accent{}, fmt.Errorf("parse accent %q: %w", hex, err)
	}
	return Accent{c: c}, nil
}

// MustParseAccent is ParseAccent for constants.
func MustParseAccent(hex string) Accent {
	a, err := ParseAccent(hex)
	if err != nil {
		panic(err)
	}
	return a
}

func FromRGBA(c color.RGBA) Accent {
	cc, _ := colorful.MakeColor(color.RGBA{c.R, c.G, c.B, 0xff})
	return Accent{c: cc}
}

// RGBA returns the opaque accent.
func (a Accent) RGBA() color.RGBA {
	r, g, b := a.c.RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// Hex returns the accent as #rrggbb.
func (a Accent) Hex() string {
	return a.c.Hex()
}

// Fill returns the premultiplied fill colour at vertical position t, where
// 0 is the top of the viewport and 1 the bottom.
func (a Accent) Fill(t float64) (r, g, b, alpha float32) {
	t = clamp01(t)
	al := FillTopAlpha + (FillBottomAlpha-FillTopAlpha)*t
	return float32(a.c.R * al), float32(a.c.G * al), float32(a.c.B * al), float32(al)
}

// Glow returns a lighter tint of the accent for the halo around the stroke.
func (a Accent) Glow() color.RGBA {
	r, g, b := a.c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, 0.35).Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}

// Dim blends the accent toward bg by t, for secondary UI elements.
func (a Accent) Dim(bg color.RGBA, t float64) color.RGBA {
	base := FromRGBA(bg).c
	r, g, b := a.c.BlendRgb(base, clamp01(t)).Clamped().RGB255()
	return color.RGBA{r, g, b, 0xff}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
