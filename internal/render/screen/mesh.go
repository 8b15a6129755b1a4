package screen

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/theme"
)

// maxMeshVertices keeps each batch addressable with uint16 indices.
const maxMeshVertices = 1 << 15

// Mesh is a batch of triangles ready for DrawTriangles.
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Meshes is a list of batches; long curves span several.
type Meshes []Mesh

func (ms Meshes) last() *Mesh {
	return &ms[len(ms)-1]
}

// room ensures the last batch can take n more vertices.
func (ms Meshes) room(n int) Meshes {
	if len(ms) == 0 || len(ms.last().Vertices)+n > maxMeshVertices {
		ms = append(ms, Mesh{})
	}
	return ms
}

// VertexCount returns the total number of vertices across batches.
func (ms Meshes) VertexCount() int {
	n := 0
	for _, m := range ms {
		n += len(m.Vertices)
	}
	return n
}

// FillMeshes builds the area between the curve and the bottom edge, shaded
// with the accent's vertical gradient.
func FillMeshes(dst Meshes, c filter.Curve, height float64, accent theme.Accent) Meshes {
	dst = dst[:0]
	if len(c) < 2 || height <= 0 {
		return dst
	}
	br, bg, bb, ba := accent.Fill(1)
	for i := 0; i < len(c)-1; i++ {
		dst = dst.room(4)
		m := dst.last()
		base := uint16(len(m.Vertices))
		for _, p := range c[i : i+2] {
			r, g, b, a := accent.Fill(p.Y / height)
			m.Vertices = append(m.Vertices,
				vertex(p.X, p.Y, r, g, b, a),
				vertex(p.X, height, br, bg, bb, ba),
			)
		}
		// top0 bottom0 top1 bottom1
		m.Indices = append(m.Indices, base, base+1, base+2, base+1, base+3, base+2)
	}
	return dst
}

// StrokeMeshes builds a polyline of the given width as one quad per segment.
func StrokeMeshes(dst Meshes, c filter.Curve, width float64, clr color.RGBA) Meshes {
	dst = dst[:0]
	if len(c) < 2 || width <= 0 {
		return dst
	}
	r, g, b, a := premultiplied(clr)
	hw := width / 2
	for i := 0; i < len(c)-1; i++ {
		p0, p1 := c[i], c[i+1]
		dx, dy := p1.X-p0.X, p1.Y-p0.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*hw, dx/l*hw

		dst = dst.room(4)
		m := dst.last()
		base := uint16(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			vertex(p0.X+nx, p0.Y+ny, r, g, b, a),
			vertex(p0.X-nx, p0.Y-ny, r, g, b, a),
			vertex(p1.X+nx, p1.Y+ny, r, g, b, a),
			vertex(p1.X-nx, p1.Y-ny, r, g, b, a),
		)
		m.Indices = append(m.Indices, base, base+1, base+2, base+1, base+3, base+2)
	}
	return dst
}

func vertex(x, y float64, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
}

func premultiplied(c color.RGBA) (r, g, b, a float32) {
	// color.RGBA is already alpha-premultiplied.
	return float32(c.R) / 0xff, float32(c.G) / 0xff, float32(c.B) / 0xff, float32(c.A) / 0xff
}
