package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"golang.org/x/sync/errgroup"

	filterviz "github.com/cbegin/filterviz-go"
	"github.com/cbegin/filterviz-go/internal/app"
	"github.com/cbegin/filterviz-go/internal/control"
	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/render/term"
	"github.com/cbegin/filterviz-go/internal/theme"
)

func main() {
	flags := app.RegisterFlags(flag.CommandLine)
	var (
		fps    = flag.Int("fps", 30, "frames per second")
		frames = flag.Int("frames", 0, "print N frames of fc values and the last plot, then exit")
	)
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

	if *frames > 0 {
		if err := dump(os.Stdout, session, *frames, *fps); err != nil {
			log.Fatal(err)
		}
		return
	}

	m, err := newModel(session, *fps)
	if err != nil {
		log.Fatal(err)
	}
	if err := run(m, session); err != nil {
		log.Fatal(err)
	}
	if err := session.Persist(m.viz); err != nil {
		log.Fatal(err)
	}
}

// run drives the terminal UI and the MIDI listener until either stops or a
// signal arrives.
func run(m *model, session *app.Session) error {
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	g.Go(func() error {
		stop, err := session.StartMIDI(m.midi)
		if err != nil {
			return err
		}
		<-ctx.Done()
		stop()
		return nil
	})
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	return g.Wait()
}

// dump renders frames on a synthetic clock and writes one CSV row per frame
// followed by the final plot as plain text.
func dump(w io.Writer, session *app.Session, frames, fps int) error {
	plot := term.NewRenderer(60, 12)
	seconds := float64(frames) / float64(max(1, fps))
	opts := append(session.Options(), filterviz.WithViewport(plot.Size))
	out, err := filterviz.RenderFrames(fps, seconds, opts...)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "time,fc,step"); err != nil {
		return err
	}
	for _, f := range out {
		if _, err := fmt.Fprintf(w, "%.4f,%.5f,%d\n", f.Time, f.FcNorm, f.Step); err != nil {
			return err
		}
	}
	if len(out) == 0 {
		return nil
	}
	accent, err := theme.ParseAccent(session.Accent)
	if err != nil {
		return err
	}
	plot.Render(out[len(out)-1].Curve, accent.RGBA())
	for _, line := range plot.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
