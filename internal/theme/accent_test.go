package theme

import (
	"image/color"
	"math"
	"testing"
)

func TestParseAccent(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"#ff8c42", color.RGBA{0xff, 0x8c, 0x42, 0xff}},
		{"FF8C42", color.RGBA{0xff, 0x8c, 0x42, 0xff}},
		{"  #0a0b0c ", color.RGBA{0x0a, 0x0b, 0x0c, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#f00", color.RGBA{0xff, 0x00, 0x00, 0xff}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			a, err := ParseAccent(tc.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := a.RGBA(); got != tc.want {
				t.Fatalf("rgba = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestParseAccentRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "#12", "#zzzzzz"} {
		if _, err := ParseAccent(in); err == nil {
			t.Errorf("ParseAccent(%q) succeeded", in)
		}
	}
}

func TestFillFadesTopToBottom(t *testing.T) {
	a := MustParseAccent("#ffffff")
	r, g, b, al := a.Fill(0)
	if math.Abs(float64(al)-FillTopAlpha) > 1e-6 || math.Abs(float64(r)-FillTopAlpha) > 1e-6 {
		t.Fatalf("top fill = %v %v %v %v", r, g, b, al)
	}
	_, _, _, al = a.Fill(1)
	if al != 0 {
		t.Fatalf("bottom alpha = %v, want 0", al)
	}
	_, _, _, mid := a.Fill(0.5)
	if math.Abs(float64(mid)-FillTopAlpha/2) > 1e-6 {
		t.Fatalf("mid alpha = %v", mid)
	}
}

func TestDimAndGlow(t *testing.T) {
	a := MustParseAccent("#ff0000")
	black := color.RGBA{0, 0, 0, 0xff}
	if got := a.Dim(black, 1); got != black {
		t.Fatalf("fully dimmed = %v, want %v", got, black)
	}
	if got := a.Dim(black, 0); got != a.RGBA() {
		t.Fatalf("undimmed = %v, want %v", got, a.RGBA())
	}
	g := a.Glow()
	if g.G == 0 && g.B == 0 {
		t.Fatalf("glow %v is not lighter than the accent", g)
	}
	if a.Hex() != "#ff0000" {
		t.Fatalf("hex = %q", a.Hex())
	}
}
