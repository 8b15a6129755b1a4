package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	filterviz "github.com/cbegin/filterviz-go"
	"github.com/cbegin/filterviz-go/internal/app"
	"github.com/cbegin/filterviz-go/internal/control"
	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/render/screen"
	"github.com/cbegin/filterviz-go/internal/sequencer"
	"github.com/cbegin/filterviz-go/internal/theme"
)

const (
	windowW    = 960
	windowH    = 600
	minWindowW = 720
	minWindowH = 460

	textScale = 2
	charW     = 7 * textScale
	lineH     = 14 * textScale

	margin     = 16
	plotInset  = 2
	controlsH  = 170
	modeW      = 150
	knobSlotW  = 110
	knobRadius = 26
	stepW      = 44
	stepGap    = 8
)

var (
	bgColor      = color.RGBA{18, 18, 24, 255}
	panelColor   = color.RGBA{32, 32, 42, 255}
	sunkenColor  = color.RGBA{10, 10, 14, 255}
	borderColor  = color.RGBA{64, 64, 80, 255}
	bevelLight   = color.RGBA{90, 90, 110, 255}
	bevelDarker  = color.RGBA{4, 4, 8, 255}
	knobFace     = color.RGBA{48, 48, 62, 255}
	stepOffColor = color.RGBA{40, 40, 52, 255}
)

var stepKeys = [sequencer.NumSteps]ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8,
}

type uiLayout struct {
	plot  image.Rectangle
	mode  image.Rectangle
	knobs []image.Rectangle
	steps [sequencer.NumSteps]image.Rectangle
}

type knobDrag struct {
	knob   *control.Knob
	startY int
	start  float64
}

type game struct {
	viz    *filterviz.Visualizer
	plot   *screen.Renderer
	midi   *control.MIDI
	accent theme.Accent

	drag      *knobDrag
	highlight int

	textCache map[string]*ebiten.Image
	viewW     int
	viewH     int
}

func newGame(s *app.Session) (*game, error) {
	accent, err := theme.ParseAccent(s.Accent)
	if err != nil {
		return nil, err
	}
	g := &game{
		plot:      screen.NewRenderer(0, 0),
		midi:      control.NewMIDI(control.DefaultBindings()),
		accent:    accent,
		highlight: sequencer.NotStarted,
		textCache: make(map[string]*ebiten.Image, 64),
		viewW:     windowW,
		viewH:     windowH,
	}
	g.resizePlot()

	opts := append(s.Options(),
		filterviz.WithRenderer(g.plot),
		filterviz.WithViewport(g.plot.Size),
		filterviz.WithStepObserver(func(step int) { g.highlight = step }),
	)
	g.viz, err = filterviz.New(opts...)
	if err != nil {
		return nil, err
	}
	return g, nil
}

func (g *game) Update() error {
	engine := g.viz.Engine()
	if n := g.midi.Drain(control.All(g.viz.Params()), engine, engine.Sequencer()); n > 0 {
		debug.Log("midi", "applied %d changes", n)
	}
	g.handleKeys()
	g.handleMouse()
	g.viz.Frame(time.Now())
	return nil
}

func (g *game) Draw(dst *ebiten.Image) {
	dst.Fill(bgColor)
	l := g.layoutRects()

	g.drawSunkenPanel(dst, l.plot)
	g.plot.Draw(dst, l.plot.Min.Add(image.Pt(plotInset, plotInset)))

	g.drawButton(dst, l.mode, g.modeLabel())
	for i, k := range g.knobs() {
		g.drawKnob(dst, l.knobs[i], k)
	}
	if g.viz.Mode() == filterviz.ModeEnvelope {
		g.drawSteps(dst, l)
	}
	status := fmt.Sprintf("fc %.3f", g.viz.FcNorm())
	g.drawText(dst, status, l.mode.Min.X, l.mode.Max.Y+12)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	outsideW = max(outsideW, minWindowW)
	outsideH = max(outsideH, minWindowH)
	if outsideW != g.viewW || outsideH != g.viewH {
		g.viewW, g.viewH = outsideW, outsideH
		g.resizePlot()
	}
	return outsideW, outsideH
}

func (g *game) resizePlot() {
	r := g.plotRect().Inset(plotInset)
	g.plot.SetSize(r.Dx(), r.Dy())
}

func (g *game) plotRect() image.Rectangle {
	top := g.viewH - margin - controlsH
	return image.Rect(margin, margin, g.viewW-margin, top-margin)
}

func (g *game) layoutRects() uiLayout {
	var l uiLayout
	top := g.viewH - margin - controlsH
	l.plot = g.plotRect()
	l.mode = image.Rect(margin, top, margin+modeW, top+40)

	x0 := l.mode.Max.X + margin
	for i := 0; i < len(g.knobs()); i++ {
		cx := x0 + i*knobSlotW + knobSlotW/2
		cy := top + knobRadius + 4
		l.knobs = append(l.knobs, image.Rect(cx-knobRadius, cy-knobRadius, cx+knobRadius, cy+knobRadius))
	}
	stepY := g.viewH - margin - stepW
	for i := range l.steps {
		x := x0 + i*(stepW+stepGap)
		l.steps[i] = image.Rect(x, stepY, x+stepW, stepY+stepW)
	}
	return l
}

func (g *game) knobs() control.Set {
	return control.ForMode(g.viz.Params(), g.viz.Mode())
}

func (g *game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.toggleMode()
	}
	if g.viz.Mode() != filterviz.ModeEnvelope {
		return
	}
	for i, k := range stepKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.viz.ToggleStep(i)
		}
	}
}

func (g *game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	l := g.layoutRects()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if pointInRect(mx, my, l.mode) {
			g.toggleMode()
			return
		}
		knobs := g.knobs()
		for i, r := range l.knobs {
			if pointInRect(mx, my, r) {
				g.drag = &knobDrag{knob: knobs[i], startY: my, start: knobs[i].Value()}
				return
			}
		}
		if g.viz.Mode() == filterviz.ModeEnvelope {
			for i, r := range l.steps {
				if pointInRect(mx, my, r) {
					g.viz.ToggleStep(i)
					return
				}
			}
		}
	}

	if g.drag == nil {
		return
	}
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.drag = nil
		return
	}
	g.drag.knob.Drag(g.drag.start, float64(g.drag.startY-my))
}

func (g *game) toggleMode() {
	g.drag = nil
	if g.viz.Mode() == filterviz.ModeEnvelope {
		g.viz.SwitchMode(filterviz.ModeLFO)
	} else {
		g.viz.SwitchMode(filterviz.ModeEnvelope)
	}
	debug.Log("ui", "mode -> %s", g.viz.Mode())
}

func (g *game) modeLabel() string {
	if g.viz.Mode() == filterviz.ModeEnvelope {
		return "ENV"
	}
	return "LFO"
}

func (g *game) drawKnob(dst *ebiten.Image, rect image.Rectangle, k *control.Knob) {
	cx := float64(rect.Min.X+rect.Max.X) / 2
	cy := float64(rect.Min.Y+rect.Max.Y) / 2
	r := float64(rect.Dx()) / 2
	ebitenutil.DrawCircle(dst, cx, cy, r, borderColor)
	ebitenutil.DrawCircle(dst, cx, cy, r-3, knobFace)

	// 0 degrees points straight up.
	a := k.Angle() * math.Pi / 180
	tx := cx + math.Sin(a)*(r-6)
	ty := cy - math.Cos(a)*(r-6)
	ebitenutil.DrawLine(dst, cx, cy, tx, ty, g.accent.RGBA())

	g.drawCentered(dst, k.Label, rect.Min.X+rect.Dx()/2, rect.Max.Y+6)
	g.drawCentered(dst, k.Text(), rect.Min.X+rect.Dx()/2, rect.Max.Y+6+lineH)
}

func (g *game) drawSteps(dst *ebiten.Image, l uiLayout) {
	steps := g.viz.Steps()
	armed := g.accent.Dim(panelColor, 0.45)
	for i, rect := range l.steps {
		fill := color.Color(stepOffColor)
		switch {
		case i == g.highlight:
			fill = g.accent.Glow()
		case steps[i]:
			fill = armed
		}
		ebitenutil.DrawRect(dst, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), fill)
		if steps[i] {
			drawBorder(dst, rect)
		} else {
			drawSunkenBorder(dst, rect)
		}
	}
}

func (g *game) drawSunkenPanel(dst *ebiten.Image, rect image.Rectangle) {
	ebitenutil.DrawRect(dst, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), sunkenColor)
	drawSunkenBorder(dst, rect)
}

func (g *game) drawButton(dst *ebiten.Image, rect image.Rectangle, label string) {
	ebitenutil.DrawRect(dst, float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()), panelColor)
	drawBorder(dst, rect)
	labelW := len([]rune(label)) * charW
	g.drawText(dst, label, rect.Min.X+(rect.Dx()-labelW)/2, rect.Min.Y+(rect.Dy()-lineH)/2)
}

func (g *game) drawCentered(dst *ebiten.Image, msg string, cx, y int) {
	g.drawText(dst, msg, cx-len([]rune(msg))*charW/2, y)
}

// drawBorder draws a raised bevel.
func drawBorder(dst *ebiten.Image, rect image.Rectangle) {
	x, y := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	ebitenutil.DrawRect(dst, x, y, w-1, 1, bevelLight)
	ebitenutil.DrawRect(dst, x, y+1, 1, h-2, bevelLight)
	ebitenutil.DrawRect(dst, x, y+h-1, w, 1, bevelDarker)
	ebitenutil.DrawRect(dst, x+w-1, y, 1, h, bevelDarker)
}

// drawSunkenBorder draws a sunken bevel.
func drawSunkenBorder(dst *ebiten.Image, rect image.Rectangle) {
	x, y := float64(rect.Min.X), float64(rect.Min.Y)
	w, h := float64(rect.Dx()), float64(rect.Dy())
	ebitenutil.DrawRect(dst, x, y, w-1, 1, bevelDarker)
	ebitenutil.DrawRect(dst, x, y+1, 1, h-2, bevelDarker)
	ebitenutil.DrawRect(dst, x, y+h-1, w, 1, borderColor)
	ebitenutil.DrawRect(dst, x+w-1, y, 1, h, borderColor)
}

func (g *game) drawText(dst *ebiten.Image, msg string, x, y int) {
	if msg == "" {
		return
	}
	img := g.textCache[msg]
	if img == nil {
		img = ebiten.NewImage(max(1, len([]rune(msg))*7), 14)
		ebitenutil.DebugPrintAt(img, msg, 0, 0)
		if len(g.textCache) > 512 {
			g.textCache = make(map[string]*ebiten.Image, 64)
		}
		g.textCache[msg] = img
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(textScale, textScale)
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(img, op)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	flag.Parse()

	session, err := flags.Resolve()
	if err != nil {
		log.Fatal(err)
	}
	if session.ListPortsRequested() {
		for _, name := range control.InPortNames() {
			fmt.Println(name)
		}
		return
	}
	if err := session.StartDebug(); err != nil {
		log.Fatal(err)
	}
	defer debug.Disable()

	g, err := newGame(session)
	if err != nil {
		log.Fatal(err)
	}
	stop, err := session.StartMIDI(g.midi)
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSizeLimits(minWindowW, minWindowH, -1, -1)
	ebiten.SetWindowTitle("filterviz")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
	if err := session.Persist(g.viz); err != nil {
		log.Fatal(err)
	}
}
