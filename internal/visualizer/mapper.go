package visualizer

import (
	"math"

	"github.com/iburimskiy/starburst/internal/config"
)

const maxMagnitude = 255

// Mapper reduces a raw spectrum to a fixed number of bar values.
type Mapper struct {
	UsableFraction float64
	NeighborRadius int
	Boost          float64

	half []float64
}

// NewMapper builds a mapper from the session configuration.
func NewMapper(cfg config.Config) *Mapper {
	return &Mapper{
		UsableFraction: cfg.UsableBinFraction,
		NeighborRadius: cfg.NeighborRadius,
		Boost:          cfg.AudioBoost,
	}
}

// Map writes len(out) bar values derived from raw for the given mode. Every
// value ends up in [0,255]; an empty raw sample produces all zeros.
func (m *Mapper) Map(raw []byte, mode config.VisualMode, out []float64) {
	n := len(out)
	if n == 0 {
		return
	}
	usable := m.usableBins(len(raw))
	if usable == 0 {
		clear(out)
		return
	}
	bins := raw[:usable]

	if !mode.Mirrored() {
		step := float64(usable) / float64(n)
		width := max(1, int(math.Ceil(step)))
		for i := 0; i < n; i++ {
			start := int(float64(i) * step)
			out[i] = m.boost(averageRange(bins, start, start+width))
		}
		return
	}

	halfBars := (n + 1) / 2
	if cap(m.half) < halfBars {
		m.half = make([]float64, halfBars)
	}
	half := m.half[:halfBars]
	step := float64(usable) / float64(halfBars)
	for i := 0; i < halfBars; i++ {
		center := int(float64(i) * step)
		half[i] = m.boost(averageRange(bins, center-m.NeighborRadius, center+m.NeighborRadius+1))
	}
	for i := 0; i < n; i++ {
		out[i] = half[min(i, n-1-i)]
	}
}

func (m *Mapper) usableBins(total int) int {
	if total <= 0 {
		return 0
	}
	frac := m.UsableFraction
	if frac <= 0 || frac > 1 {
		frac = 1
	}
	usable := int(float64(total) * frac)
	return min(max(usable, 1), total)
}

func (m *Mapper) boost(v float64) float64 {
	v *= m.Boost
	if v > maxMagnitude {
		return maxMagnitude
	}
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return v
}

// averageRange averages bins[lo:hi], skipping indices outside the slice so
// edges are not pulled towards zero.
func averageRange(bins []byte, lo, hi int) float64 {
	lo = max(lo, 0)
	hi = min(hi, len(bins))
	if hi <= lo {
		return 0
	}
	sum := 0
	for _, b := range bins[lo:hi] {
		sum += int(b)
	}
	return float64(sum) / float64(hi-lo)
}
