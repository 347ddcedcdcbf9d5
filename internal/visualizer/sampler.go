package visualizer

// Source is a live analysis node plus the lifecycle of the signal behind it.
// Implementations are provided by the audio package.
type Source interface {
	// FrequencyBinCount is half the FFT size.
	FrequencyBinCount() int
	// ByteFrequencyData fills dst with the current spectrum and returns the
	// number of bins written.
	ByteFrequencyData(dst []byte) int
	// Done is closed when the signal ends on its own.
	Done() <-chan struct{}
	// Close releases the underlying audio tap.
	Close() error
}

// Sampler pulls one spectrum per frame into a reusable buffer.
type Sampler struct {
	buf []byte
}

// Sample returns the current spectrum of src. The slice is only valid until
// the next call. A nil source yields an empty sample, which downstream
// stages treat as silence.
func (s *Sampler) Sample(src Source) []byte {
	if src == nil {
		return s.buf[:0]
	}
	n := src.FrequencyBinCount()
	if n <= 0 {
		return s.buf[:0]
	}
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	s.buf = s.buf[:n]
	written := src.ByteFrequencyData(s.buf)
	if written < 0 {
		written = 0
	}
	if written > n {
		written = n
	}
	// Bins the source did not fill are silence, not last frame's data.
	clear(s.buf[written:])
	return s.buf
}
