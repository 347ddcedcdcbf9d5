package visualizer

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/starburst/internal/config"
)

const flashDecay = 0.85

// Driver is one visualizer session. It owns all per-frame state and keeps
// exactly one of two loops scheduled: the ambient particle-only loop while
// idle, and the full pipeline while a source is attached.
type Driver struct {
	sched     Scheduler
	particles Canvas
	visual    Canvas
	log       *logrus.Entry

	geom     Geometry
	mode     config.VisualMode
	sampler  Sampler
	mapper   *Mapper
	bars     *Bars
	mapped   []float64
	bass     *BassExtractor
	field    *ParticleField
	renderer *Renderer
	flash    float64

	source    Source
	active    bool
	ambientID FrameID
	activeID  FrameID

	// OnBassHit, when set, is called on the frame a bass hit is detected.
	OnBassHit func(level float64)
	// OnStop, when set, is called after a session ends, either through Stop
	// or because the source finished.
	OnStop func(err error)
}

// NewDriver creates a session drawing particles and bars on separate
// canvases and arms the ambient loop.
func NewDriver(cfg config.Config, sched Scheduler, particles, visual Canvas, geom Geometry, rng *rand.Rand, log *logrus.Entry) *Driver {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	d := &Driver{
		sched:     sched,
		particles: particles,
		visual:    visual,
		log:       log,
		geom:      geom,
		mode:      cfg.VisualMode,
		mapper:    NewMapper(cfg),
		bars:      NewBars(cfg.BarCount, cfg.SmoothingFactor),
		mapped:    make([]float64, cfg.BarCount),
		bass:      NewBassExtractor(cfg),
		field:     NewParticleField(cfg, rng),
		renderer:  NewRenderer(cfg, log),
	}
	d.field.Reset(geom.Width, geom.Height)
	d.armAmbient()
	return d
}

// Start attaches src and switches to the full pipeline. A running session
// is stopped first.
func (d *Driver) Start(src Source) error {
	if src == nil {
		return errors.New("visualizer: nil source")
	}
	if d.active {
		if err := d.Stop(); err != nil {
			d.log.WithError(err).Warn("stopping previous session")
		}
	}

	d.sched.CancelFrame(d.ambientID)
	d.ambientID = 0

	d.source = src
	d.active = true
	d.bars.Reset()
	d.bass.Reset()
	d.flash = 0
	d.activeID = d.sched.RequestFrame(d.activeFrame)

	d.log.WithFields(logrus.Fields{
		"mode": d.mode,
		"bins": src.FrequencyBinCount(),
		"bars": d.bars.Len(),
	}).Info("session started")
	return nil
}

// Stop cancels the pending active frame, releases the source and re-arms
// the ambient loop before returning. Stopping an idle driver is a no-op.
func (d *Driver) Stop() error {
	if !d.active {
		return nil
	}
	d.active = false
	d.sched.CancelFrame(d.activeID)
	d.activeID = 0

	var err error
	if d.source != nil {
		if cerr := d.source.Close(); cerr != nil {
			err = fmt.Errorf("closing audio source: %w", cerr)
		}
		d.source = nil
	}

	d.bars.Reset()
	d.bass.Reset()
	d.flash = 0
	d.visual.Clear()
	d.armAmbient()

	d.log.Info("session stopped")
	if d.OnStop != nil {
		d.OnStop(err)
	}
	return err
}

// SetMode switches the visual mode. Bar semantics differ between modes, so
// the smoothed state is zeroed whenever the mode actually changes.
func (d *Driver) SetMode(mode config.VisualMode) {
	if mode == d.mode {
		return
	}
	d.mode = mode
	d.bars.Reset()
	d.log.WithField("mode", mode).Info("visual mode changed")
}

// SetBarCount reallocates the bar array; the new array starts at zero.
func (d *Driver) SetBarCount(n int) {
	if n < 1 || n == d.bars.Len() {
		return
	}
	d.bars.Resize(n)
	d.mapped = make([]float64, n)
	d.log.WithField("bars", n).Debug("bar count changed")
}

// Resize replaces the geometry and re-initializes the particle pool in one
// step. Callers must invoke it from the same thread that ticks the
// scheduler.
func (d *Driver) Resize(geom Geometry) {
	d.geom = geom
	d.field.Reset(geom.Width, geom.Height)
	d.log.WithFields(logrus.Fields{
		"width":  geom.Width,
		"height": geom.Height,
		"dpr":    geom.DPR,
	}).Debug("geometry updated")
}

func (d *Driver) SetEffects(glow, reflection bool) { d.renderer.SetEffects(glow, reflection) }

func (d *Driver) Effects() (glow, reflection bool) { return d.renderer.Effects() }

func (d *Driver) Active() bool { return d.active }
func (d *Driver) Mode() config.VisualMode { return d.mode }
func (d *Driver) Geometry() Geometry { return d.geom }
func (d *Driver) Bars() []float64 { return d.bars.Values() }
func (d *Driver) BassLevel() float64 { return d.bass.Level() }
func (d *Driver) Particles() []Particle { return d.field.Particles() }
func (d *Driver) Source() Source { return d.source }

func (d *Driver) armAmbient() {
	if d.ambientID != 0 {
		return
	}
	d.ambientID = d.sched.RequestFrame(d.ambientFrame)
}

func (d *Driver) ambientFrame(time.Time) {
	d.ambientID = 0
	if d.active {
		return
	}
	d.particles.Clear()
	d.field.Update(0)
	d.field.Draw(d.particles, 0)
	d.ambientID = d.sched.RequestFrame(d.ambientFrame)
}

// activeFrame is the full pipeline: sample, map, smooth, extract bass,
// particles, bars. Bass extraction happens on the same raw sample right
// after mapping and before either consumer runs.
func (d *Driver) activeFrame(now time.Time) {
	d.activeID = 0
	if !d.active {
		return
	}
	select {
	case <-d.source.Done():
		d.log.Info("audio source ended")
		if err := d.Stop(); err != nil {
			d.log.WithError(err).Warn("stopping finished session")
		}
		return
	default:
	}

	raw := d.sampler.Sample(d.source)
	d.mapper.Map(raw, d.mode, d.mapped)
	d.bars.Smooth(d.mapped)
	level, hit := d.bass.Update(raw, now)
	if hit {
		d.flash = 1
		d.log.WithField("level", level).Debug("bass hit")
		if d.OnBassHit != nil {
			d.OnBassHit(level)
		}
	}

	d.particles.Clear()
	d.field.Update(level)
	d.field.Draw(d.particles, level)

	d.renderer.Draw(d.visual, d.mode, Frame{
		Bars:     d.bars.Values(),
		Bass:     level,
		Flash:    d.flash,
		Geometry: d.geom,
	})
	d.flash *= flashDecay
	if d.flash < 0.01 {
		d.flash = 0
	}

	if d.active {
		d.activeID = d.sched.RequestFrame(d.activeFrame)
	}
}
