package visualizer

import (
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/starburst/internal/config"
)

// Frame is everything a renderer reads for one frame. Bass must already be
// updated for this frame when the Frame is built.
type Frame struct {
	Bars     []float64
	Bass     float64
	Flash    float64
	Geometry Geometry
}

// Renderer draws the bar array in one of the visual modes and owns the
// rotation accumulator shared by all of them.
type Renderer struct {
	cfg      config.Config
	rotation float64
	log      *logrus.Entry
}

func NewRenderer(cfg config.Config, log *logrus.Entry) *Renderer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Renderer{cfg: cfg, log: log}
}

// SetEffects toggles glow and reflection at runtime.
func (r *Renderer) SetEffects(glow, reflection bool) {
	r.cfg.GlowEnabled = glow
	r.cfg.EnableReflection = reflection
}

func (r *Renderer) Effects() (glow, reflection bool) {
	return r.cfg.GlowEnabled, r.cfg.EnableReflection
}

func (r *Renderer) Rotation() float64 { return r.rotation }

// Draw clears c and paints f in the given mode.
func (r *Renderer) Draw(c Canvas, mode config.VisualMode, f Frame) {
	c.Clear()
	r.rotation += r.cfg.RotationSpeed * (1 + f.Bass)

	switch mode {
	case config.ModeCircular:
		r.drawCircular(c, f)
	case config.ModeClassic:
		r.drawClassic(c, f)
	case config.ModeMirrored:
		r.drawMirrored(c, f)
	default:
		r.log.Warnf("unknown visual mode %v, drawing circular", mode)
		r.drawCircular(c, f)
	}

	if f.Flash > 0 {
		c.FillRect(0, 0, f.Geometry.Width, f.Geometry.Height, Style{Color: HSLA{H: 0, S: 0, L: 1, A: f.Flash * 0.25}})
	}
}

func (r *Renderer) hue(i, n int) float64 {
	return r.cfg.HueStart + float64(i)/float64(n)*r.cfg.HueRange + r.rotation*r.cfg.HueDrift
}

func (r *Renderer) glow(v float64) float64 {
	if !r.cfg.GlowEnabled {
		return 0
	}
	return r.cfg.GlowIntensity * v
}

// normalized maps a bar value onto [0,1].
func normalized(v float64) float64 {
	return clamp01(v / maxMagnitude)
}
