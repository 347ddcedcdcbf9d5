package audio

import (
	"errors"
	"testing"

	"github.com/faiface/beep"
)

func TestTapSnapshotChronological(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]float32{1, 2, 3, 4, 5, 6})

	dst := make([]float32, 3)
	tap.Snapshot(dst)
	want := []float32{4, 5, 6}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", dst, want)
		}
	}
}

func TestTapSnapshotPadsMissingHistory(t *testing.T) {
	tap := NewTap(8)
	tap.Write([]float32{7, 8})

	dst := []float32{9, 9, 9, 9, 9}
	tap.Snapshot(dst)
	want := []float32{0, 0, 0, 7, 8}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", dst, want)
		}
	}

	big := make([]float32, 12)
	tap.Write([]float32{1, 2, 3, 4, 5, 6, 7, 8, 9})
	tap.Snapshot(big)
	for i := 0; i < 4; i++ {
		if big[i] != 0 {
			t.Fatalf("slot %d older than the ring must be zero, got %v", i, big)
		}
	}
	if big[4] != 2 || big[11] != 9 {
		t.Fatalf("unexpected ring contents %v", big)
	}
}

func TestTapReset(t *testing.T) {
	tap := NewTap(4)
	tap.Write([]float32{1, 2, 3})
	tap.Reset()
	dst := make([]float32, 4)
	tap.Snapshot(dst)
	for _, v := range dst {
		if v != 0 {
			t.Fatalf("reset kept %v", dst)
		}
	}
}

type fixedStreamer struct {
	frames [][2]float64
	err    error
}

func (s *fixedStreamer) Stream(samples [][2]float64) (int, bool) {
	n := copy(samples, s.frames)
	s.frames = s.frames[n:]
	return n, n > 0
}

func (s *fixedStreamer) Err() error { return s.err }

func TestTapStreamerRecordsMonoMix(t *testing.T) {
	tap := NewTap(8)
	src := &fixedStreamer{frames: [][2]float64{{1, 0}, {0.5, 0.5}, {-1, 1}}, err: errors.New("boom")}
	var st beep.Streamer = tap.Streamer(src)

	buf := make([][2]float64, 8)
	n, ok := st.Stream(buf)
	if n != 3 || !ok {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	if !errors.Is(st.Err(), src.err) {
		t.Fatal("Err not forwarded")
	}

	dst := make([]float32, 3)
	tap.Snapshot(dst)
	want := []float32{0.5, 0.5, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Fatalf("snapshot = %v, want %v", dst, want)
		}
	}
}
