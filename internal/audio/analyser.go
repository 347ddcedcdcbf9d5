package audio

import (
	"fmt"
	"math"
	"math/bits"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

const (
	DefaultMinDecibels = -100
	DefaultMaxDecibels = -30
)

// AnalyserConfig describes the analysis node feeding the visualizer.
type AnalyserConfig struct {
	FFTSize               int
	SmoothingTimeConstant float64
	MinDecibels           float64
	MaxDecibels           float64
}

// Analyser turns the samples collected by its Tap into byte magnitudes per
// frequency bin: Blackman window, real FFT, magnitude / N, exponential
// smoothing over time, then a linear map of [MinDecibels, MaxDecibels] onto
// [0, 255].
type Analyser struct {
	tap      *Tap
	fft      *fourier.FFT
	size     int
	tau      float64
	minDB    float64
	maxDB    float64
	window   []float64
	frame    []float32
	input    []float64
	coeffs   []complex128
	smoothed []float64
}

func NewAnalyser(cfg AnalyserConfig) (*Analyser, error) {
	n := cfg.FFTSize
	if n < 32 || n > 32768 || bits.OnesCount(uint(n)) != 1 {
		return nil, fmt.Errorf("fft size must be a power of two in [32, 32768], got %d", n)
	}
	if cfg.SmoothingTimeConstant < 0 || cfg.SmoothingTimeConstant >= 1 {
		return nil, fmt.Errorf("smoothing time constant must be in [0, 1), got %v", cfg.SmoothingTimeConstant)
	}
	minDB, maxDB := cfg.MinDecibels, cfg.MaxDecibels
	if minDB == 0 && maxDB == 0 {
		minDB, maxDB = DefaultMinDecibels, DefaultMaxDecibels
	}
	if minDB >= maxDB {
		return nil, fmt.Errorf("decibel range [%v, %v] is empty", minDB, maxDB)
	}

	coeffs := make([]float64, n)
	for i := range coeffs {
		coeffs[i] = 1
	}
	window.Blackman(coeffs)

	return &Analyser{
		tap:      NewTap(n),
		fft:      fourier.NewFFT(n),
		size:     n,
		tau:      cfg.SmoothingTimeConstant,
		minDB:    minDB,
		maxDB:    maxDB,
		window:   coeffs,
		frame:    make([]float32, n),
		input:    make([]float64, n),
		coeffs:   make([]complex128, n/2+1),
		smoothed: make([]float64, n/2),
	}, nil
}

// Tap is the buffer audio callbacks write into.
func (a *Analyser) Tap() *Tap { return a.tap }

// FrequencyBinCount is half the FFT size.
func (a *Analyser) FrequencyBinCount() int { return a.size / 2 }

// ByteFrequencyData analyses the latest FFTSize samples and writes up to
// len(dst) byte magnitudes, returning how many were written.
func (a *Analyser) ByteFrequencyData(dst []byte) int {
	a.tap.Snapshot(a.frame)
	for i, s := range a.frame {
		a.input[i] = float64(s) * a.window[i]
	}
	a.fft.Coefficients(a.coeffs, a.input)

	scale := 1 / float64(a.size)
	span := a.maxDB - a.minDB
	n := min(len(dst), len(a.smoothed))
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) * scale
		a.smoothed[k] = a.tau*a.smoothed[k] + (1-a.tau)*mag
		if k < n {
			dst[k] = toByte((decibels(a.smoothed[k]) - a.minDB) / span)
		}
	}
	return n
}

// Reset drops the smoothing history and the buffered samples.
func (a *Analyser) Reset() {
	clear(a.smoothed)
	a.tap.Reset()
}

func decibels(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

func toByte(f float64) byte {
	switch {
	case math.IsNaN(f) || f <= 0:
		return 0
	case f >= 1:
		return 255
	}
	return byte(f * 255)
}
