package term

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/theme"
)

var background = color.RGBA{0x12, 0x12, 0x18, 0xff}

// Renderer draws the response curve as styled terminal text.
type Renderer struct {
	raster    *Raster
	lineStyle lipgloss.Style
	fillStyle lipgloss.Style
	accent    color.RGBA
}

func NewRenderer(cols, rows int) *Renderer {
	r := &Renderer{raster: NewRaster(cols, rows)}
	r.setAccent(theme.MustParseAccent(theme.DefaultAccent).RGBA())
	return r
}

// SetSize sets the plot area in terminal cells.
func (r *Renderer) SetSize(cols, rows int) {
	r.raster.Resize(cols, rows)
}

// Size returns the plot resolution in dots, the driver's viewport.
func (r *Renderer) Size() (w, h int) {
	return r.raster.Size()
}

func (r *Renderer) Render(c filter.Curve, accent color.RGBA) {
	if accent != r.accent {
		r.setAccent(accent)
	}
	r.raster.Draw(c)
}

// Lines returns the last frame unstyled.
func (r *Renderer) Lines() []string {
	return r.raster.Lines()
}

// View returns the last frame with the accent styling applied.
func (r *Renderer) View() string {
	var b strings.Builder
	for i, line := range r.raster.Lines() {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.styleLine(&b, line)
	}
	return b.String()
}

// styleLine writes runs of line and fill glyphs with one style each.
func (r *Renderer) styleLine(b *strings.Builder, line string) {
	var run []rune
	var runStyle *lipgloss.Style
	flush := func() {
		if len(run) == 0 {
			return
		}
		if runStyle == nil {
			b.WriteString(string(run))
		} else {
			b.WriteString(runStyle.Render(string(run)))
		}
		run = run[:0]
	}
	for _, ch := range line {
		var st *lipgloss.Style
		switch {
		case ch == '░':
			st = &r.fillStyle
		case ch != ' ':
			st = &r.lineStyle
		}
		if st != runStyle {
			flush()
			runStyle = st
		}
		run = append(run, ch)
	}
	flush()
}

func (r *Renderer) setAccent(c color.RGBA) {
	r.accent = c
	a := theme.FromRGBA(c)
	dim := theme.FromRGBA(a.Dim(background, 0.7))
	r.lineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(a.Hex())).Bold(true)
	r.fillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(dim.Hex()))
}
