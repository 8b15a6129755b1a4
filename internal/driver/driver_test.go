package driver

import (
	"context"
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cbegin/filterviz-go/internal/debug"
	"github.com/cbegin/filterviz-go/internal/filter"
	"github.com/cbegin/filterviz-go/internal/modulation"
	"github.com/cbegin/filterviz-go/internal/params"
)

type recordingRenderer struct {
	frames int
	last   filter.Curve
	accent color.RGBA
}

func (r *recordingRenderer) Render(c filter.Curve, accent color.RGBA) {
	r.frames++
	r.last = append(r.last[:0], c...)
	r.accent = accent
}

// scriptedScheduler replays fixed frame times, then reports exhaustion.
type scriptedScheduler struct {
	times []time.Time
}

var errScriptDone = errors.New("script done")

func (s *scriptedScheduler) Next(ctx context.Context) (time.Time, error) {
	if len(s.times) == 0 {
		return time.Time{}, errScriptDone
	}
	t := s.times[0]
	s.times = s.times[1:]
	return t, nil
}

func newTestDriver(t *testing.T, p *params.Params, start time.Time, opts ...Option) (*Driver, *recordingRenderer) {
	t.Helper()
	r := &recordingRenderer{}
	opts = append([]Option{WithStart(start), WithViewport(func() (int, int) { return 100, 50 })}, opts...)
	d, err := New(modulation.New(p), r, opts...)
	if err != nil {
		t.Fatalf("new driver: %v", err)
	}
	return d, r
}

func TestClampDelta(t *testing.T) {
	cases := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"frame", 16 * time.Millisecond, 0.016},
		{"stall", 5 * time.Second, MaxFrameDelta},
		{"exact cap", 100 * time.Millisecond, 0.1},
		{"backwards", -time.Second, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampDelta(tc.gap); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("ClampDelta(%v) = %v, want %v", tc.gap, got, tc.want)
			}
		})
	}
}

func TestFrameStallIsClamped(t *testing.T) {
	p := params.Default()
	p.LFORate = 1
	start := time.Unix(1000, 0)
	d, _ := newTestDriver(t, &p, start)

	d.Frame(start.Add(5 * time.Second))
	if d.LastDelta() != MaxFrameDelta {
		t.Fatalf("dt = %v, want %v", d.LastDelta(), MaxFrameDelta)
	}
	want := 2 * math.Pi * 1 * MaxFrameDelta
	if got := d.Engine().LFO().Phase(); math.Abs(got-want) > 1e-12 {
		t.Fatalf("phase = %v, want %v", got, want)
	}
}

func TestFrameRendersCurveForViewport(t *testing.T) {
	p := params.Default()
	start := time.Unix(0, 0)
	w, h := 100, 50
	accent := color.RGBA{1, 2, 3, 255}
	d, r := newTestDriver(t, &p, start,
		WithViewport(func() (int, int) { return w, h }),
		WithAccent(accent))

	d.Frame(start.Add(16 * time.Millisecond))
	if r.frames != 1 || len(r.last) != 101 {
		t.Fatalf("frames=%d len=%d", r.frames, len(r.last))
	}
	if r.accent != accent {
		t.Fatalf("accent = %v, want %v", r.accent, accent)
	}
	want := filter.BuildCurve(w, h, d.Engine().FcNorm(), p.Q)
	for i := range want {
		if math.Abs(want[i].Y-r.last[i].Y) > 1e-9 {
			t.Fatalf("point %d = %v, want %v", i, r.last[i], want[i])
		}
	}

	// Resize is picked up on the next frame.
	w, h = 40, 30
	d.Frame(start.Add(32 * time.Millisecond))
	if len(r.last) != 41 {
		t.Fatalf("len after resize = %d, want 41", len(r.last))
	}
	for _, pt := range r.last {
		if pt.Y < 0 || pt.Y > 30 {
			t.Fatalf("y = %v outside resized viewport", pt.Y)
		}
	}
}

func TestParamChangesApplyNextFrame(t *testing.T) {
	p := params.Default()
	start := time.Unix(0, 0)
	d, r := newTestDriver(t, &p, start)
	d.Frame(start.Add(10 * time.Millisecond))
	before := append(filter.Curve(nil), r.last...)

	p.Q = 20
	d.Frame(start.Add(20 * time.Millisecond))
	same := true
	for i := range before {
		if before[i] != r.last[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("curve did not change after Q changed")
	}
}

func TestRunStopsWithScheduler(t *testing.T) {
	p := params.Default()
	start := time.Unix(0, 0)
	d, r := newTestDriver(t, &p, start)
	sched := &scriptedScheduler{}
	for i := 1; i <= 5; i++ {
		sched.times = append(sched.times, start.Add(time.Duration(i)*20*time.Millisecond))
	}
	err := d.Run(context.Background(), sched)
	if !errors.Is(err, errScriptDone) {
		t.Fatalf("run error = %v", err)
	}
	if r.frames != 5 {
		t.Fatalf("frames = %d, want 5", r.frames)
	}
}

func TestTickerSchedulerHonorsCancel(t *testing.T) {
	s := NewTickerScheduler(1)
	defer s.Stop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	p := params.Default()
	if _, err := New(nil, &recordingRenderer{}); err == nil {
		t.Error("expected error for nil engine")
	}
	if _, err := New(modulation.New(&p), nil); err == nil {
		t.Error("expected error for nil renderer")
	}
}

func TestFrameTimingIsLoggedPeriodically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	if err := debug.Enable(path); err != nil {
		t.Fatalf("enable debug log: %v", err)
	}
	defer debug.Disable()

	p := params.Default()
	start := time.Unix(0, 0)
	d, _ := newTestDriver(t, &p, start)
	for i := 1; i <= 2*FrameLogInterval; i++ {
		d.Frame(start.Add(time.Duration(i) * 10 * time.Millisecond))
	}
	debug.Disable()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if got := strings.Count(string(data), "frame dt=0.0100s"); got != 2 {
		t.Fatalf("frame timing lines = %d, want 2:\n%s", got, data)
	}
	if !strings.Contains(string(data), "size=100x50") {
		t.Fatalf("missing viewport in frame timing:\n%s", data)
	}
}
