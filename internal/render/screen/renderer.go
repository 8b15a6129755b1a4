package screen

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/theme"
)

const (
	// StrokeWidth is the width of the response line.
	StrokeWidth = 1.5
	// GlowWidth is the width of the translucent halo under the line.
	GlowWidth = 6
	glowAlpha = 0x30
)

// Vertex colours are built premultiplied.
var drawOptions = ebiten.DrawTrianglesOptions{
	AntiAlias:      true,
	ColorScaleMode: ebiten.ColorScaleModePremultipliedAlpha,
}

// Renderer turns each frame's curve into triangle batches on Render (called
// from the game's Update) and paints them on Draw. It also owns the plot
// size, so the driver can read its viewport from Size.
type Renderer struct {
	w, h int

	fill, glow, stroke Meshes
	scratch            []ebiten.Vertex

	white *ebiten.Image
}

func NewRenderer(w, h int) *Renderer {
	return &Renderer{w: w, h: h}
}

// SetSize updates the plot size; the next frame uses it.
func (r *Renderer) SetSize(w, h int) {
	r.w, r.h = max(0, w), max(0, h)
}

// Size returns the plot size.
func (r *Renderer) Size() (w, h int) {
	return r.w, r.h
}

// Render rebuilds the meshes for c.
func (r *Renderer) Render(c filter.Curve, accent color.RGBA) {
	a := theme.FromRGBA(accent)
	r.fill = FillMeshes(r.fill, c, float64(r.h), a)
	r.glow = StrokeMeshes(r.glow, c, GlowWidth, translucent(a.Glow(), glowAlpha))
	r.stroke = StrokeMeshes(r.stroke, c, StrokeWidth, a.RGBA())
}

// Draw paints the last rendered curve with its origin at at.
func (r *Renderer) Draw(dst *ebiten.Image, at image.Point) {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	op := drawOptions
	for _, layer := range []Meshes{r.fill, r.glow, r.stroke} {
		for _, m := range layer {
			r.scratch = translate(r.scratch[:0], m.Vertices, at)
			dst.DrawTriangles(r.scratch, m.Indices, r.white, &op)
		}
	}
}

// Meshes returns the fill, glow and stroke batches of the last frame.
func (r *Renderer) Meshes() (fill, glow, stroke Meshes) {
	return r.fill, r.glow, r.stroke
}

func translate(dst, vs []ebiten.Vertex, at image.Point) []ebiten.Vertex {
	dx, dy := float32(at.X), float32(at.Y)
	for _, v := range vs {
		v.DstX += dx
		v.DstY += dy
		dst = append(dst, v)
	}
	return dst
}

// translucent scales an opaque colour to alpha a, premultiplied.
func translucent(c color.RGBA, a uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(a) / 0xff) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: a}
}
