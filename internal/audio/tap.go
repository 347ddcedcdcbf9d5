package audio

import (
	"sync"

	"github.com/faiface/beep"
)

// Tap is a mono ring buffer of the most recently played or captured samples.
// Audio callbacks write into it while the analyser reads snapshots on the
// frame thread.
type Tap struct {
	buffer    []float32
	nextIndex int
	written   int
	mu        sync.RWMutex
}

func NewTap(ringSize int) *Tap {
	if ringSize < 1 {
		ringSize = 1
	}
	return &Tap{buffer: make([]float32, ringSize)}
}

// Write appends mono samples.
func (t *Tap) Write(samples []float32) {
	if len(samples) == 0 {
		return
	}
	t.mu.Lock()
	for _, s := range samples {
		t.push(s)
	}
	t.mu.Unlock()
}

// WriteStereo down-mixes stereo frames and appends them.
func (t *Tap) WriteStereo(samples [][2]float64) {
	if len(samples) == 0 {
		return
	}
	t.mu.Lock()
	for _, s := range samples {
		t.push(float32((s[0] + s[1]) * 0.5))
	}
	t.mu.Unlock()
}

func (t *Tap) push(s float32) {
	t.buffer[t.nextIndex] = s
	t.nextIndex++
	if t.nextIndex >= len(t.buffer) {
		t.nextIndex = 0
	}
	if t.written < len(t.buffer) {
		t.written++
	}
}

// Snapshot fills dst with the latest len(dst) samples in chronological
// order, most recent last. Slots older than anything written are zero.
func (t *Tap) Snapshot(dst []float32) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := min(len(dst), t.written)
	lead := len(dst) - n
	clear(dst[:lead])

	idx := t.nextIndex - n
	if idx < 0 {
		idx += len(t.buffer)
	}
	for i := lead; i < len(dst); i++ {
		dst[i] = t.buffer[idx]
		idx++
		if idx >= len(t.buffer) {
			idx = 0
		}
	}
}

// Reset forgets every sample.
func (t *Tap) Reset() {
	t.mu.Lock()
	clear(t.buffer)
	t.nextIndex = 0
	t.written = 0
	t.mu.Unlock()
}

// Streamer wraps src so everything it produces is recorded in the tap before
// reaching the speaker.
func (t *Tap) Streamer(src beep.Streamer) beep.Streamer {
	return &tappedStreamer{src: src, tap: t}
}

type tappedStreamer struct {
	src beep.Streamer
	tap *Tap
}

func (s *tappedStreamer) Stream(samples [][2]float64) (int, bool) {
	n, ok := s.src.Stream(samples)
	if n > 0 {
		s.tap.WriteStereo(samples[:n])
	}
	return n, ok
}

func (s *tappedStreamer) Err() error { return s.src.Err() }
