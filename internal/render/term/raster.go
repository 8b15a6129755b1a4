package term

import (
	"math"

	"github.com/cbegin/filterviz-go/internal/filter"
)

// Each terminal cell holds a 2x4 braille dot matrix.
const (
	DotsX = 2
	DotsY = 4

	brailleBase = 0x2800
)

var dotBits = [DotsX][DotsY]rune{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// cellKind says what a cell draws.
type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellFill
	cellLine
)

// Raster is a character grid holding the curve line as braille dots and the
// area beneath it as fill cells.
type Raster struct {
	cols, rows int
	dots       []rune
	kinds      []cellKind
}

func NewRaster(cols, rows int) *Raster {
	r := &Raster{}
	r.Resize(cols, rows)
	return r
}

func (r *Raster) Resize(cols, rows int) {
	r.cols, r.rows = max(0, cols), max(0, rows)
	n := r.cols * r.rows
	if cap(r.dots) < n {
		r.dots = make([]rune, n)
		r.kinds = make([]cellKind, n)
	}
	r.dots = r.dots[:n]
	r.kinds = r.kinds[:n]
}

// Size returns the raster's resolution in dots.
func (r *Raster) Size() (w, h int) {
	return r.cols * DotsX, r.rows * DotsY
}

// Draw clears the grid and plots c, whose coordinates are in dots.
func (r *Raster) Draw(c filter.Curve) {
	for i := range r.dots {
		r.dots[i] = 0
		r.kinds[i] = cellEmpty
	}
	w, h := r.Size()
	if w == 0 || h == 0 || len(c) == 0 {
		return
	}

	prev := -1
	for x := 0; x < w && x < len(c); x++ {
		y := dotRow(c[x].Y, h)
		lo, hi := y, y
		if prev >= 0 {
			// Bridge steep slopes so the line stays connected.
			if prev < lo {
				lo = prev + 1
			} else if prev > hi {
				hi = prev - 1
			}
		}
		for yy := lo; yy <= hi; yy++ {
			r.plot(x, yy)
		}
		prev = y

		// Cells entirely below the line get filled.
		for row := y/DotsY + 1; row < r.rows; row++ {
			i := row*r.cols + x/DotsX
			if r.kinds[i] == cellEmpty {
				r.kinds[i] = cellFill
			}
		}
	}
}

func (r *Raster) plot(x, y int) {
	i := (y/DotsY)*r.cols + x/DotsX
	r.dots[i] |= dotBits[x%DotsX][y%DotsY]
	r.kinds[i] = cellLine
}

// Lines returns the grid as plain text, one string per row.
func (r *Raster) Lines() []string {
	out := make([]string, r.rows)
	for row := 0; row < r.rows; row++ {
		line := make([]rune, r.cols)
		for col := range line {
			line[col] = r.glyph(row*r.cols + col)
		}
		out[row] = string(line)
	}
	return out
}

func (r *Raster) glyph(i int) rune {
	switch r.kinds[i] {
	case cellLine:
		return brailleBase + r.dots[i]
	case cellFill:
		return '░'
	default:
		return ' '
	}
}

func dotRow(y float64, h int) int {
	row := int(math.Round(y))
	if row < 0 {
		return 0
	}
	if row > h-1 {
		return h - 1
	}
	return row
}
