package audio

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

const captureFramesPerBuffer = 512

// PortAudio is initialized by the first capture and terminated once at exit.
var portAudioState struct {
	sync.Mutex
	ready bool
}

func ensurePortAudio() error {
	portAudioState.Lock()
	defer portAudioState.Unlock()
	if portAudioState.ready {
		return nil
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	portAudioState.ready = true
	return nil
}

// Terminate shuts PortAudio down if a capture ever initialized it.
func Terminate() error {
	portAudioState.Lock()
	defer portAudioState.Unlock()
	if !portAudioState.ready {
		return nil
	}
	portAudioState.ready = false
	if err := portaudio.Terminate(); err != nil {
		return fmt.Errorf("failed to terminate PortAudio: %w", err)
	}
	return nil
}

// CaptureSource analyses the default input device. Capture has no natural
// end: Done closes only when the source is closed.
type CaptureSource struct {
	*Analyser

	stream     *portaudio.Stream
	device     string
	sampleRate float64
	log        *logrus.Entry

	done      chan struct{}
	closeOnce sync.Once
	closeErr  error
}

// NewCaptureSource opens and starts a mono stream on the default input
// device at its native sample rate.
func NewCaptureSource(cfg AnalyserConfig, log *logrus.Entry) (*CaptureSource, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	analyser, err := NewAnalyser(cfg)
	if err != nil {
		return nil, err
	}

	if err := ensurePortAudio(); err != nil {
		return nil, err
	}
	device, err := portaudio.DefaultInputDevice()
	if err != nil {
		return nil, fmt.Errorf("no input device: %w", err)
	}
	if device.MaxInputChannels < 1 {
		return nil, fmt.Errorf("input device %q has no input channels", device.Name)
	}

	s := &CaptureSource{
		Analyser:   analyser,
		device:     device.Name,
		sampleRate: device.DefaultSampleRate,
		log:        log.WithField("device", device.Name),
		done:       make(chan struct{}),
	}

	tap := analyser.Tap()
	stream, err := portaudio.OpenDefaultStream(1, 0, device.DefaultSampleRate, captureFramesPerBuffer, func(in []float32) {
		tap.Write(in)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		return nil, fmt.Errorf("failed to start input stream: %w", err)
	}
	s.stream = stream

	s.log.WithField("rate", s.sampleRate).Info("capture started")
	return s, nil
}

func (s *CaptureSource) Done() <-chan struct{} { return s.done }

// Close stops and closes the stream. It is safe to call more than once.
func (s *CaptureSource) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = errors.Join(s.stream.Stop(), s.stream.Close())
		s.Analyser.Reset()
		close(s.done)
		s.log.Debug("capture closed")
	})
	return s.closeErr
}

func (s *CaptureSource) SampleRate() int { return int(s.sampleRate) }

func (s *CaptureSource) Name() string { return s.device }
