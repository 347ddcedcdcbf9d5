package visualizer

// Bars is the persistent, smoothed bar array of a session.
type Bars struct {
	values []float64
	factor float64
}

// NewBars allocates n zeroed bars smoothed with factor k. k outside (0,1]
// falls back to 1, which tracks the raw values exactly.
func NewBars(n int, k float64) *Bars {
	if k <= 0 || k > 1 {
		k = 1
	}
	return &Bars{values: make([]float64, max(n, 0)), factor: k}
}

// Smooth moves every bar towards its raw target by the smoothing factor.
func (b *Bars) Smooth(raw []float64) {
	for i := range b.values {
		if i >= len(raw) {
			break
		}
		b.values[i] += (raw[i] - b.values[i]) * b.factor
	}
}

// Reset zeroes all bars.
func (b *Bars) Reset() {
	clear(b.values)
}

// Resize reallocates the array when n differs from the current length. The
// new array starts at zero.
func (b *Bars) Resize(n int) {
	if n == len(b.values) {
		return
	}
	b.values = make([]float64, max(n, 0))
}

func (b *Bars) Len() int { return len(b.values) }

// Values exposes the bars for reading. Callers must not keep the slice
// across frames.
func (b *Bars) Values() []float64 { return b.values }
