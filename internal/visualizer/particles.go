package visualizer

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/starburst/internal/config"
)

// Particle is one ambient point. Particles are never destroyed; a reset
// re-randomizes the slot in place.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Hue    float64
	Alpha  float64
}

// ParticleSpec bounds the random attributes of a particle.
type ParticleSpec struct {
	Speed            float64
	MinSize, MaxSize float64
	HueStart         float64
	HueRange         float64
}

// RandomizeParticle returns a fresh particle placed uniformly inside
// [0,w) x [0,h).
func RandomizeParticle(rng *rand.Rand, w, h float64, spec ParticleSpec) Particle {
	angle := rng.Float64() * 2 * math.Pi
	speed := spec.Speed * (0.3 + 0.7*rng.Float64())
	return Particle{
		X:     rng.Float64() * w,
		Y:     rng.Float64() * h,
		VX:    math.Cos(angle) * speed,
		VY:    math.Sin(angle) * speed,
		Size:  lerp(spec.MinSize, spec.MaxSize, rng.Float64()),
		Hue:   spec.HueStart + rng.Float64()*spec.HueRange,
		Alpha: 0.15 + 0.35*rng.Float64(),
	}
}

// ParticleField is a fixed-size pool of drifting particles.
type ParticleField struct {
	particles      []Particle
	spec           ParticleSpec
	bassMultiplier float64
	rng            *rand.Rand
	w, h           float64
}

func NewParticleField(cfg config.Config, rng *rand.Rand) *ParticleField {
	return &ParticleField{
		particles: make([]Particle, cfg.ParticleCount),
		spec: ParticleSpec{
			Speed:    cfg.ParticleBaseSpeed,
			MinSize:  cfg.ParticleMinSize,
			MaxSize:  cfg.ParticleMaxSize,
			HueStart: cfg.HueStart,
			HueRange: cfg.HueRange,
		},
		bassMultiplier: cfg.ParticleBassMultiplier,
		rng:            rng,
	}
}

// Reset re-randomizes every particle inside the new bounds. The pool keeps
// its length.
func (f *ParticleField) Reset(w, h float64) {
	f.w, f.h = w, h
	for i := range f.particles {
		f.particles[i] = RandomizeParticle(f.rng, w, h, f.spec)
	}
}

// Update advances every particle one step. Bass adds random jitter scaled by
// the configured multiplier.
func (f *ParticleField) Update(bass float64) {
	jitter := clamp01(bass) * f.bassMultiplier
	for i := range f.particles {
		p := &f.particles[i]
		p.X += p.VX
		p.Y += p.VY
		if jitter > 0 {
			p.X += (f.rng.Float64() - 0.5) * jitter
			p.Y += (f.rng.Float64() - 0.5) * jitter
		}
		p.X = wrap(p.X, f.w)
		p.Y = wrap(p.Y, f.h)
	}
}

// Draw paints the particles, slightly larger and brighter with bass.
func (f *ParticleField) Draw(c Canvas, bass float64) {
	bass = clamp01(bass)
	for _, p := range f.particles {
		col := HSLA{H: p.Hue, S: 0.8, L: 0.6, A: clamp01(p.Alpha + bass*0.4)}
		c.FillCircle(p.X, p.Y, p.Size*(1+bass*0.5), Style{Color: col})
	}
}

func (f *ParticleField) Particles() []Particle { return f.particles }

// wrap maps v onto [0,size) toroidally.
func wrap(v, size float64) float64 {
	if size <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	if v >= 0 && v < size {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size can round up to size.
	if v >= size {
		v = 0
	}
	return v
}
