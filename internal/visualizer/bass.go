package visualizer

import (
	"time"

	"github.com/iburimskiy/starburst/internal/config"
)

// BassExtractor turns the lowest bins of a spectrum into a smoothed 0-1
// envelope and reports debounced hits.
type BassExtractor struct {
	Bins      int
	Factor    float64
	Threshold float64
	Interval  time.Duration

	level   float64
	lastHit time.Time
}

func NewBassExtractor(cfg config.Config) *BassExtractor {
	return &BassExtractor{
		Bins:      cfg.BassBins,
		Factor:    cfg.BassSmoothing,
		Threshold: cfg.BassHitThreshold,
		Interval:  cfg.BassHitInterval,
	}
}

// Update folds the current raw spectrum into the envelope. hit is true at
// most once per Interval while the level stays above Threshold.
func (b *BassExtractor) Update(raw []byte, now time.Time) (level float64, hit bool) {
	target := rawBass(raw, b.Bins)
	k := b.Factor
	if k <= 0 || k > 1 {
		k = 1
	}
	b.level = clamp01(b.level + (target-b.level)*k)

	if b.level > b.Threshold && (b.lastHit.IsZero() || now.Sub(b.lastHit) >= b.Interval) {
		b.lastHit = now
		hit = true
	}
	return b.level, hit
}

// Level is the envelope value computed by the last Update.
func (b *BassExtractor) Level() float64 { return b.level }

// Reset drops the envelope and the debounce state.
func (b *BassExtractor) Reset() {
	b.level = 0
	b.lastHit = time.Time{}
}

func rawBass(raw []byte, bins int) float64 {
	n := min(bins, len(raw))
	if n <= 0 {
		return 0
	}
	sum := 0
	for _, v := range raw[:n] {
		sum += int(v)
	}
	return clamp01(float64(sum) / float64(n) / maxMagnitude)
}
