package visualizer

import (
	"math"
	"testing"
	"time"
)

func TestBarsConvergeWithoutOvershoot(t *testing.T) {
	for _, k := range []float64{0.1, 0.35, 0.9, 1} {
		b := NewBars(3, k)
		raw := []float64{200, 0, 255}
		b.Values()[1] = 180

		prev := append([]float64(nil), b.Values()...)
		for frame := 0; frame < 200; frame++ {
			b.Smooth(raw)
			for i, v := range b.Values() {
				if raw[i] >= prev[i] && (v < prev[i] || v > raw[i]) {
					t.Fatalf("k=%v bar %d: %v -> %v not monotone towards %v", k, i, prev[i], v, raw[i])
				}
				if raw[i] < prev[i] && (v > prev[i] || v < raw[i]) {
					t.Fatalf("k=%v bar %d: %v -> %v not monotone towards %v", k, i, prev[i], v, raw[i])
				}
			}
			copy(prev, b.Values())
		}
		for i, v := range b.Values() {
			if diff := raw[i] - v; diff > 0.5 || diff < -0.5 {
				t.Fatalf("k=%v bar %d did not converge: %v vs %v", k, i, v, raw[i])
			}
		}
	}
}

func TestBarsResetAndResize(t *testing.T) {
	b := NewBars(4, 0.5)
	b.Smooth([]float64{100, 100, 100, 100})
	b.Reset()
	for i, v := range b.Values() {
		if v != 0 {
			t.Fatalf("bar %d = %v after reset", i, v)
		}
	}

	b.Smooth([]float64{100, 100, 100, 100})
	b.Resize(4)
	if b.Values()[0] == 0 {
		t.Fatal("resize to same length must keep state")
	}
	b.Resize(6)
	if b.Len() != 6 {
		t.Fatalf("expected 6 bars, got %d", b.Len())
	}
	for i, v := range b.Values() {
		if v != 0 {
			t.Fatalf("bar %d = %v after reallocation", i, v)
		}
	}
}

func TestBassLevelStaysInUnitRange(t *testing.T) {
	inputs := [][]byte{
		nil,
		make([]byte, 3),
		{255},
		{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255},
		{0, 255, 0, 255, 0, 255},
	}
	for _, k := range []float64{0.2, 1} {
		b := &BassExtractor{Bins: 10, Factor: k, Threshold: 0.65, Interval: 100 * time.Millisecond}
		now := time.Unix(0, 0)
		for _, in := range inputs {
			for i := 0; i < 50; i++ {
				level, _ := b.Update(in, now)
				if level < 0 || level > 1 {
					t.Fatalf("level %v outside [0,1] for %v", level, in)
				}
				now = now.Add(16 * time.Millisecond)
			}
		}
	}
}

func TestBassHitDebounce(t *testing.T) {
	b := &BassExtractor{Bins: 10, Factor: 1, Threshold: 0.65, Interval: 100 * time.Millisecond}
	loud := make([]byte, 16)
	for i := range loud {
		loud[i] = 255
	}

	start := time.Unix(100, 0)
	hits := 0
	for i := 0; i < 12; i++ {
		// 12 frames at 16ms span 176ms: one hit at t=0, one at t>=100ms.
		if _, hit := b.Update(loud, start.Add(time.Duration(i)*16*time.Millisecond)); hit {
			hits++
		}
	}
	if hits != 2 {
		t.Fatalf("expected 2 debounced hits, got %d", hits)
	}

	b.Reset()
	if _, hit := b.Update(make([]byte, 16), start); hit {
		t.Fatal("silence must not trigger a hit")
	}
}

func TestBassUsesOnlyLowBins(t *testing.T) {
	raw := make([]byte, 100)
	for i := 10; i < 100; i++ {
		raw[i] = 255
	}
	b := &BassExtractor{Bins: 10, Factor: 1, Threshold: 2}
	if level, _ := b.Update(raw, time.Now()); level != 0 {
		t.Fatalf("expected 0 bass from silent low bins, got %v", level)
	}
}

func TestParticlesStayInBoundsAfterManySteps(t *testing.T) {
	cfg := testConfig()
	cfg.ParticleBaseSpeed = 7
	cfg.ParticleBassMultiplier = 400
	f := NewParticleField(cfg, testRand())
	f.Reset(320, 200)

	for step := 0; step < 2000; step++ {
		f.Update(float64(step%10) / 9)
		for i, p := range f.Particles() {
			if p.X < 0 || p.X >= 320 || p.Y < 0 || p.Y >= 200 {
				t.Fatalf("step %d particle %d escaped: (%v, %v)", step, i, p.X, p.Y)
			}
		}
	}
}

func TestParticlesResizeReinitializesInsideNewBounds(t *testing.T) {
	cfg := testConfig()
	f := NewParticleField(cfg, testRand())
	f.Reset(1920, 1080)
	f.Reset(100, 50)
	if len(f.Particles()) != cfg.ParticleCount {
		t.Fatalf("pool size changed: %d", len(f.Particles()))
	}
	for i, p := range f.Particles() {
		if p.X < 0 || p.X >= 100 || p.Y < 0 || p.Y >= 50 {
			t.Fatalf("particle %d outside new bounds: (%v, %v)", i, p.X, p.Y)
		}
	}
}

func TestParticlesMoveWithoutBass(t *testing.T) {
	f := NewParticleField(testConfig(), testRand())
	f.Reset(400, 300)
	before := append([]Particle(nil), f.Particles()...)
	f.Update(0)
	moved := 0
	for i, p := range f.Particles() {
		if p.X != before[i].X || p.Y != before[i].Y {
			moved++
		}
	}
	if moved == 0 {
		t.Fatal("expected ambient motion with zero bass")
	}
}

func TestWrap(t *testing.T) {
	cases := []struct{ v, size, want float64 }{
		{5, 10, 5},
		{10, 10, 0},
		{-1, 10, 9},
		{25, 10, 5},
		{-25, 10, 5},
		{3, 0, 0},
	}
	for _, c := range cases {
		if got := wrap(c.v, c.size); got != c.want {
			t.Errorf("wrap(%v, %v) = %v, want %v", c.v, c.size, got, c.want)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := wrap(v, 10); got != 0 {
			t.Errorf("wrap(%v, 10) = %v, want 0", v, got)
		}
	}
	if got := wrap(-1e-18, 10); got < 0 || got >= 10 {
		t.Errorf("wrap of tiny negative escaped: %v", got)
	}
}

func TestHSLAConversion(t *testing.T) {
	cases := []struct {
		c       HSLA
		r, g, b uint8
	}{
		{HSLA{H: 0, S: 1, L: 0.5, A: 1}, 255, 0, 0},
		{HSLA{H: 120, S: 1, L: 0.5, A: 1}, 0, 255, 0},
		{HSLA{H: 600, S: 1, L: 0.5, A: 1}, 0, 0, 255},
		{HSLA{H: -120, S: 1, L: 0.5, A: 1}, 0, 0, 255},
		{HSLA{H: 42, S: 0, L: 1, A: 1}, 255, 255, 255},
	}
	for _, c := range cases {
		r, g, b := hslToRGB(c.c.H, c.c.S, c.c.L)
		if r != c.r || g != c.g || b != c.b {
			t.Errorf("%+v -> (%d,%d,%d), want (%d,%d,%d)", c.c, r, g, b, c.r, c.g, c.b)
		}
	}

	_, _, _, a := HSLA{H: 10, S: 1, L: 0.5, A: 0.5}.RGBA()
	if a != 0x7fff {
		t.Errorf("alpha = %#x, want 0x7fff", a)
	}
}

func TestNewGeometry(t *testing.T) {
	g := NewGeometry(800, 600, 3, 2)
	if g.DPR != 2 || g.BackingWidth != 1600 || g.BackingHeight != 1200 {
		t.Fatalf("unexpected geometry %+v", g)
	}
	if g.CenterX != 400 || g.CenterY != 300 {
		t.Fatalf("unexpected center (%v, %v)", g.CenterX, g.CenterY)
	}
	g = NewGeometry(0, -5, 0, 2)
	if g.Width != 1 || g.Height != 1 || g.DPR != 1 {
		t.Fatalf("expected clamped geometry, got %+v", g)
	}
}
