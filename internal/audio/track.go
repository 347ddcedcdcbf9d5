package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedFormat is returned for track files beep cannot decode.
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// SupportedPatterns lists the file patterns accepted by NewTrackSource.
var SupportedPatterns = []string{"*.wav", "*.mp3", "*.flac"}

// speaker.Init is process-wide; it is re-run only when the sample rate
// changes.
var speakerState struct {
	sync.Mutex
	ready bool
	rate  beep.SampleRate
}

// TrackSource plays a local file through the speaker and analyses what is
// played.
type TrackSource struct {
	*Analyser

	path     string
	size     int64
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	log      *logrus.Entry

	done      chan struct{}
	doneOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
}

// NewTrackSource decodes path and starts playback immediately.
func NewTrackSource(path string, cfg AnalyserConfig, log *logrus.Entry) (*TrackSource, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	analyser, err := NewAnalyser(cfg)
	if err != nil {
		return nil, err
	}
	f, streamer, format, err := openTrack(path)
	if err != nil {
		return nil, err
	}

	s := &TrackSource{
		Analyser: analyser,
		path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		log:      log.WithField("track", filepath.Base(path)),
		done:     make(chan struct{}),
	}
	if info, err := f.Stat(); err == nil {
		s.size = info.Size()
	}

	if err := initSpeaker(format.SampleRate); err != nil {
		_ = closeTrack(streamer, f)
		return nil, err
	}

	s.ctrl = &beep.Ctrl{Streamer: analyser.Tap().Streamer(streamer)}
	speaker.Play(beep.Seq(s.ctrl, beep.Callback(s.finish)))

	s.log.WithFields(logrus.Fields{
		"rate":     int(format.SampleRate),
		"channels": format.NumChannels,
		"duration": s.Duration().Round(time.Second),
	}).Info("track playing")
	return s, nil
}

// openTrack opens and decodes path according to its extension.
func openTrack(path string) (*os.File, beep.StreamSeekCloser, beep.Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav", ".mp3", ".flac":
	default:
		return nil, nil, beep.Format{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, beep.Format{}, fmt.Errorf("failed to open track: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	}
	if err != nil {
		_ = f.Close()
		return nil, nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}
	return f, streamer, format, nil
}

// closeTrack releases a decoded track. The decoders close the file they
// were given, so an already closed file is not an error.
func closeTrack(streamer beep.StreamSeekCloser, f *os.File) error {
	err := streamer.Close()
	if ferr := f.Close(); ferr != nil && !errors.Is(ferr, os.ErrClosed) {
		err = errors.Join(err, ferr)
	}
	return err
}

func initSpeaker(rate beep.SampleRate) error {
	speakerState.Lock()
	defer speakerState.Unlock()

	if speakerState.ready && speakerState.rate == rate {
		speaker.Clear()
		return nil
	}
	if speakerState.ready {
		speaker.Clear()
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speakerState.ready = true
	speakerState.rate = rate
	return nil
}

func (s *TrackSource) finish() {
	s.doneOnce.Do(func() { close(s.done) })
}

// Done is closed when the track has played to the end or the source is
// closed.
func (s *TrackSource) Done() <-chan struct{} { return s.done }

// Close stops playback and releases the decoder and the file. It is safe to
// call more than once.
func (s *TrackSource) Close() error {
	s.closeOnce.Do(func() {
		speaker.Lock()
		s.ctrl.Streamer = nil
		speaker.Unlock()

		s.closeErr = closeTrack(s.streamer, s.file)
		s.Analyser.Reset()
		s.finish()
		s.log.Debug("track closed")
	})
	return s.closeErr
}

// TogglePause pauses or resumes playback and reports whether the track is
// now paused.
func (s *TrackSource) TogglePause() bool {
	speaker.Lock()
	defer speaker.Unlock()
	s.ctrl.Paused = !s.ctrl.Paused
	return s.ctrl.Paused
}

func (s *TrackSource) Paused() bool {
	speaker.Lock()
	defer speaker.Unlock()
	return s.ctrl.Paused
}

func (s *TrackSource) Position() time.Duration {
	speaker.Lock()
	defer speaker.Unlock()
	return s.format.SampleRate.D(s.streamer.Position())
}

func (s *TrackSource) Duration() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}

// Seek jumps to a fraction of the track, clamped to [0, 1).
func (s *TrackSource) Seek(fraction float64) error {
	speaker.Lock()
	defer speaker.Unlock()

	n := s.streamer.Len()
	pos := int(fraction * float64(n))
	pos = max(0, min(pos, n-1))
	if err := s.streamer.Seek(pos); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

func (s *TrackSource) SampleRate() int { return int(s.format.SampleRate) }

func (s *TrackSource) Name() string { return filepath.Base(s.path) }

// Size is the file size in bytes.
func (s *TrackSource) Size() int64 { return s.size }
