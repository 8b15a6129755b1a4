package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	filterviz "github.com/cbegin/filterviz-go"
	"github.com/cbegin/filterviz-go/internal/app"
	"github.com/cbegin/filterviz-go/internal/control"
	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/render/term"
	"github.com/cbegin/filterviz-go/internal/sequencer"
	"github.com/cbegin/filterviz-go/internal/theme"
)

// Rows used by everything except the plot: header, border, knobs, steps, help.
const chromeRows = 7

// Fraction of a knob's range moved by one key press.
const (
	nudge       = 1.0 / 50
	fineNudge   = 1.0 / 500
	coarseNudge = 1.0 / 10
)

type frameMsg time.Time

type styles struct {
	title  lipgloss.Style
	focus  lipgloss.Style
	dim    lipgloss.Style
	border lipgloss.Style
	stepOn lipgloss.Style
	stepAt lipgloss.Style
}

func newStyles(a theme.Accent) styles {
	accent := lipgloss.Color(a.Hex())
	glow := lipgloss.Color(theme.FromRGBA(a.Glow()).Hex())
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		focus:  lipgloss.NewStyle().Bold(true).Reverse(true).Foreground(accent),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6c6c7a")),
		border: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent),
		stepOn: lipgloss.NewStyle().Foreground(accent),
		stepAt: lipgloss.NewStyle().Bold(true).Foreground(glow),
	}
}

type model struct {
	viz  *filterviz.Visualizer
	plot *term.Renderer
	midi *control.MIDI
	fps  int

	styles    styles
	focus     int
	highlight int
}

func newModel(s *app.Session, fps int) (*model, error) {
	accent, err := theme.ParseAccent(s.Accent)
	if err != nil {
		return nil, err
	}
	m := &model{
		plot:      term.NewRenderer(78, 16),
		midi:      control.NewMIDI(control.DefaultBindings()),
		fps:       max(1, fps),
		styles:    newStyles(accent),
		highlight: sequencer.NotStarted,
	}
	opts := append(s.Options(),
		filterviz.WithRenderer(m.plot),
		filterviz.WithViewport(m.plot.Size),
		filterviz.WithStepObserver(func(step int) { m.highlight = step }),
	)
	m.viz, err = filterviz.New(opts...)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *model) Init() tea.Cmd {
	return m.tick()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.plot.SetSize(max(1, msg.Width-2), max(4, msg.Height-chromeRows))

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case frameMsg:
		engine := m.viz.Engine()
		if n := m.midi.Drain(control.All(m.viz.Params()), engine, engine.Sequencer()); n > 0 {
			debug.Log("midi", "applied %d changes", n)
		}
		m.viz.Frame(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m *model) handleKey(key string) tea.Cmd {
	knobs := m.knobs()
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "m", " ":
		if m.viz.Mode() == filterviz.ModeEnvelope {
			m.viz.SwitchMode(filterviz.ModeLFO)
		} else {
			m.viz.SwitchMode(filterviz.ModeEnvelope)
		}
		m.focus = 0
	case "tab", "right", "l":
		m.focus = (m.focus + 1) % len(knobs)
	case "shift+tab", "left", "h":
		m.focus = (m.focus + len(knobs) - 1) % len(knobs)
	case "up", "k":
		m.adjust(knobs, nudge)
	case "down", "j":
		m.adjust(knobs, -nudge)
	case "K":
		m.adjust(knobs, fineNudge)
	case "J":
		m.adjust(knobs, -fineNudge)
	case "pgup":
		m.adjust(knobs, coarseNudge)
	case "pgdown":
		m.adjust(knobs, -coarseNudge)
	case "1", "2", "3", "4", "5", "6", "7", "8":
		if m.viz.Mode() == filterviz.ModeEnvelope {
			m.viz.ToggleStep(int(key[0] - '1'))
		}
	}
	return nil
}

func (m *model) adjust(knobs control.Set, delta float64) {
	if m.focus >= len(knobs) {
		m.focus = 0
	}
	k := knobs[m.focus]
	k.SetNormalized(k.Normalized() + delta)
}

func (m *model) knobs() control.Set {
	return control.ForMode(m.viz.Params(), m.viz.Mode())
}

func (m *model) View() string {
	var b strings.Builder
	mode := "LFO"
	if m.viz.Mode() == filterviz.ModeEnvelope {
		mode = "ENV"
	}
	b.WriteString(m.styles.title.Render("filterviz"))
	b.WriteString(m.styles.dim.Render(fmt.Sprintf("  %s  fc %.3f  Q %.1f", mode, m.viz.FcNorm(), m.viz.Params().Q)))
	b.WriteByte('\n')
	b.WriteString(m.styles.border.Render(m.plot.View()))
	b.WriteByte('\n')

	for i, k := range m.knobs() {
		cell := fmt.Sprintf(" %s %s ", k.Label, k.Text())
		if i == m.focus {
			b.WriteString(m.styles.focus.Render(cell))
		} else {
			b.WriteString(cell)
		}
	}
	b.WriteByte('\n')

	if m.viz.Mode() == filterviz.ModeEnvelope {
		b.WriteString(m.stepRow())
	}
	b.WriteByte('\n')
	b.WriteString(m.styles.dim.Render("m mode  ←/→ knob  ↑/↓ adjust  J/K fine  pgup/pgdn coarse  1-8 steps  q quit"))
	return b.String()
}

func (m *model) stepRow() string {
	var b strings.Builder
	steps := m.viz.Steps()
	for i, on := range steps {
		glyph := "□"
		if on {
			glyph = "■"
		}
		switch {
		case i == m.highlight:
			b.WriteString(m.styles.stepAt.Render("[" + glyph + "]"))
		case on:
			b.WriteString(m.styles.stepOn.Render(" " + glyph + " "))
		default:
			b.WriteString(m.styles.dim.Render(" " + glyph + " "))
		}
	}
	return b.String()
}
