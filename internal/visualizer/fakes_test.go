package visualizer

import (
	"io"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/starburst/internal/config"
)

type canvasOp struct {
	kind  string
	args  []float64
	style Style
}

// recordingCanvas stores every primitive and tracks transform nesting.
type recordingCanvas struct {
	w, h    float64
	ops     []canvasOp
	clears  int
	depth   int
	maxSave int
}

func newRecordingCanvas(w, h float64) *recordingCanvas {
	return &recordingCanvas{w: w, h: h}
}

func (c *recordingCanvas) Size() (float64, float64) { return c.w, c.h }

func (c *recordingCanvas) Clear() {
	c.clears++
	c.ops = c.ops[:0]
}

func (c *recordingCanvas) Save() {
	c.depth++
	c.maxSave = max(c.maxSave, c.depth)
	c.ops = append(c.ops, canvasOp{kind: "save"})
}

func (c *recordingCanvas) Restore() {
	c.depth--
	c.ops = append(c.ops, canvasOp{kind: "restore"})
}

func (c *recordingCanvas) Translate(x, y float64) {
	c.ops = append(c.ops, canvasOp{kind: "translate", args: []float64{x, y}})
}

func (c *recordingCanvas) Scale(sx, sy float64) {
	c.ops = append(c.ops, canvasOp{kind: "scale", args: []float64{sx, sy}})
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1 float64, s Style) {
	c.ops = append(c.ops, canvasOp{kind: "line", args: []float64{x0, y0, x1, y1}, style: s})
}

func (c *recordingCanvas) FillCircle(cx, cy, r float64, s Style) {
	c.ops = append(c.ops, canvasOp{kind: "fillCircle", args: []float64{cx, cy, r}, style: s})
}

func (c *recordingCanvas) StrokeCircle(cx, cy, r float64, s Style) {
	c.ops = append(c.ops, canvasOp{kind: "strokeCircle", args: []float64{cx, cy, r}, style: s})
}

func (c *recordingCanvas) FillRect(x, y, w, h float64, s Style) {
	c.ops = append(c.ops, canvasOp{kind: "rect", args: []float64{x, y, w, h}, style: s})
}

func (c *recordingCanvas) count(kind string) int {
	n := 0
	for _, op := range c.ops {
		if op.kind == kind {
			n++
		}
	}
	return n
}

// fakeSource serves a fixed spectrum.
type fakeSource struct {
	bins   []byte
	done   chan struct{}
	closed int
	err    error
}

func newFakeSource(n int, value byte) *fakeSource {
	bins := make([]byte, n)
	for i := range bins {
		bins[i] = value
	}
	return &fakeSource{bins: bins, done: make(chan struct{})}
}

func (s *fakeSource) FrequencyBinCount() int { return len(s.bins) }

func (s *fakeSource) ByteFrequencyData(dst []byte) int { return copy(dst, s.bins) }

func (s *fakeSource) Done() <-chan struct{} { return s.done }

func (s *fakeSource) Close() error {
	s.closed++
	return s.err
}

func (s *fakeSource) fill(v byte) {
	for i := range s.bins {
		s.bins[i] = v
	}
}

func quietLog() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.BarCount = 64
	cfg.ParticleCount = 40
	return cfg
}
