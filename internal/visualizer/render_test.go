package visualizer

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/starburst/internal/config"
)

func constantBars(n int, v float64) []float64 {
	bars := make([]float64, n)
	for i := range bars {
		bars[i] = v
	}
	return bars
}

func testFrame(bars []float64, bass float64) Frame {
	return Frame{Bars: bars, Bass: bass, Geometry: NewGeometry(640, 480, 1, 2)}
}

func TestCircularWithReflection(t *testing.T) {
	cfg := testConfig()
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	r.Draw(c, config.ModeCircular, testFrame(constantBars(64, 128), 0))

	if got := c.count("line"); got != 64+32 {
		t.Fatalf("expected 64 bars plus 32 reflected, got %d lines", got)
	}
	if c.depth != 0 {
		t.Fatalf("unbalanced save/restore, depth %d", c.depth)
	}
	if c.count("save") != 2 || c.maxSave != 1 {
		t.Fatalf("expected two sibling transform scopes, got %d saves nested %d deep", c.count("save"), c.maxSave)
	}
	if c.count("fillCircle") != 1 || c.count("strokeCircle") != 1 {
		t.Fatal("expected inner disc and rim")
	}
}

func TestCircularWithoutReflection(t *testing.T) {
	cfg := testConfig()
	cfg.EnableReflection = false
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	r.Draw(c, config.ModeCircular, testFrame(constantBars(64, 128), 0))

	if got := c.count("line"); got != 64 {
		t.Fatalf("expected 64 lines, got %d", got)
	}
	if c.count("save") != 1 || c.depth != 0 {
		t.Fatal("expected a single balanced transform scope")
	}
}

func TestCircularInnerRadiusPulsesWithBass(t *testing.T) {
	cfg := testConfig()
	cfg.EnableReflection = false
	c := newRecordingCanvas(640, 480)

	startRadius := func(bass float64) float64 {
		r := NewRenderer(cfg, quietLog())
		r.Draw(c, config.ModeCircular, testFrame(constantBars(16, 0), bass))
		for _, op := range c.ops {
			if op.kind == "line" {
				return math.Hypot(op.args[0], op.args[1])
			}
		}
		t.Fatal("no bars drawn")
		return 0
	}

	quiet, loud := startRadius(0), startRadius(1)
	if math.Abs(loud/quiet-1.3) > 1e-9 {
		t.Fatalf("expected radius to grow by 30%% at full bass, got %v -> %v", quiet, loud)
	}
}

func TestGlowToggle(t *testing.T) {
	cfg := testConfig()
	cfg.EnableReflection = false
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	r.Draw(c, config.ModeCircular, testFrame(constantBars(8, 255), 0))
	// save, translate, scale, then the first bar.
	if c.ops[3].kind != "line" || c.ops[3].style.Blur == 0 {
		t.Fatalf("expected blurred bar with glow on, got %+v", c.ops[3])
	}

	r.SetEffects(false, false)
	r.Draw(c, config.ModeCircular, testFrame(constantBars(8, 255), 0))
	for _, op := range c.ops {
		if op.style.Blur != 0 {
			t.Fatalf("%s has blur %v with glow off", op.kind, op.style.Blur)
		}
	}
}

func TestRotationAdvancesWithBass(t *testing.T) {
	cfg := testConfig()
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	r.Draw(c, config.ModeClassic, testFrame(constantBars(4, 0), 0))
	r.Draw(c, config.ModeClassic, testFrame(constantBars(4, 0), 1))
	want := cfg.RotationSpeed * 3
	if math.Abs(r.Rotation()-want) > 1e-12 {
		t.Fatalf("rotation = %v, want %v", r.Rotation(), want)
	}
}

func TestClassicBars(t *testing.T) {
	cfg := testConfig()
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	r.Draw(c, config.ModeClassic, testFrame(constantBars(10, 255), 0))
	if got := c.count("rect"); got != 20 {
		t.Fatalf("expected bars plus reflections, got %d rects", got)
	}
	first := c.ops[0]
	if math.Abs(first.args[1]+first.args[3]-480*0.8) > 1e-9 {
		t.Fatalf("bar does not stand on the baseline: %v", first.args)
	}
	if math.Abs(first.args[3]-480*0.7) > 1e-9 {
		t.Fatalf("full-scale bar height = %v, want %v", first.args[3], 480*0.7)
	}

	r.SetEffects(true, false)
	r.Draw(c, config.ModeClassic, testFrame(constantBars(10, 0), 0))
	if got := c.count("rect"); got != 10 {
		t.Fatalf("expected 10 rects without reflection, got %d", got)
	}
	if c.ops[0].args[3] != minLinearBarHeight {
		t.Fatalf("silent bar height = %v, want %v", c.ops[0].args[3], minLinearBarHeight)
	}
}

func TestMirroredBarsAreSymmetric(t *testing.T) {
	cfg := testConfig()
	r := NewRenderer(cfg, quietLog())
	c := newRecordingCanvas(640, 480)

	bars := []float64{0, 64, 128, 255}
	r.Draw(c, config.ModeMirrored, testFrame(bars, 0))
	if c.count("rect") != len(bars) || c.count("line") != 1 {
		t.Fatalf("expected %d rects and a midline, got %d/%d", len(bars), c.count("rect"), c.count("line"))
	}
	for _, op := range c.ops {
		if op.kind != "rect" {
			continue
		}
		if center := op.args[1] + op.args[3]/2; math.Abs(center-240) > 1e-9 {
			t.Fatalf("rect %v not centered on the midline", op.args)
		}
	}
}

func TestFlashOverlay(t *testing.T) {
	r := NewRenderer(testConfig(), quietLog())
	c := newRecordingCanvas(640, 480)
	f := testFrame(constantBars(4, 0), 0)
	f.Flash = 1
	r.Draw(c, config.ModeMirrored, f)
	last := c.ops[len(c.ops)-1]
	if last.kind != "rect" || last.args[2] != 640 || last.args[3] != 480 {
		t.Fatalf("expected full-canvas flash last, got %+v", last)
	}
}

func TestUnknownModeFallsBackToCircular(t *testing.T) {
	r := NewRenderer(testConfig(), quietLog())
	c := newRecordingCanvas(640, 480)
	r.Draw(c, config.VisualMode(42), testFrame(constantBars(8, 10), 0))
	if c.count("line") == 0 {
		t.Fatal("expected circular bars")
	}
}

func TestEmptyBarsDrawNothing(t *testing.T) {
	r := NewRenderer(testConfig(), quietLog())
	c := newRecordingCanvas(640, 480)
	for _, mode := range []config.VisualMode{config.ModeCircular, config.ModeClassic, config.ModeMirrored} {
		r.Draw(c, mode, testFrame(nil, 0))
		if len(c.ops) != 0 {
			t.Fatalf("mode %v drew %d ops for zero bars", mode, len(c.ops))
		}
	}
}

func TestTickSchedulerDefersReentrantRequests(t *testing.T) {
	var s TickScheduler
	runs := 0
	var loop func(time.Time)
	loop = func(time.Time) {
		runs++
		s.RequestFrame(loop)
	}
	s.RequestFrame(loop)
	for i := 0; i < 4; i++ {
		s.Tick(time.Now())
	}
	if runs != 4 {
		t.Fatalf("expected one run per tick, got %d", runs)
	}
}

func TestTickSchedulerCancel(t *testing.T) {
	var s TickScheduler
	ran := map[string]bool{}
	var second FrameID
	s.RequestFrame(func(time.Time) {
		ran["first"] = true
		s.CancelFrame(second)
	})
	second = s.RequestFrame(func(time.Time) { ran["second"] = true })
	dropped := s.RequestFrame(func(time.Time) { ran["dropped"] = true })
	s.CancelFrame(dropped)
	s.CancelFrame(0)

	s.Tick(time.Now())
	if !ran["first"] || ran["second"] || ran["dropped"] {
		t.Fatalf("unexpected runs %v", ran)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", s.Pending())
	}
}
