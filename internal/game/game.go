package game

import (
	"errors"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/iburimskiy/starburst/internal/audio"
	"github.com/iburimskiy/starburst/internal/config"
	"github.com/iburimskiy/starburst/internal/visualizer"
)

var background = color.RGBA{R: 6, G: 8, B: 16, A: 255}

type pickResult struct {
	path string
	err  error
}

// Game hosts one visualizer session in an ebiten window. All session calls
// happen on ebiten's update goroutine; the file dialog runs on its own
// goroutine and hands its result back through a channel.
type Game struct {
	cfg config.Config
	log *logrus.Entry

	sched     *visualizer.TickScheduler
	particles *Layer
	visual    *Layer
	driver    *visualizer.Driver
	geom      visualizer.Geometry
	pending   *visualizer.Geometry

	track   *audio.TrackSource
	capture *audio.CaptureSource
	picked  chan pickResult
	picking bool

	buttons  []*button
	progress progressBar
	lastErr  error
}

var _ ebiten.Game = (*Game)(nil)

func New(cfg config.Config, log *logrus.Entry) *Game {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	geom := visualizer.NewGeometry(cfg.Width, cfg.Height, 1, cfg.MaxDevicePixelRatio)
	g := &Game{
		cfg:       cfg,
		log:       log,
		sched:     &visualizer.TickScheduler{},
		particles: NewLayer(geom),
		visual:    NewLayer(geom),
		geom:      geom,
		picked:    make(chan pickResult, 1),
	}
	g.driver = visualizer.NewDriver(cfg, g.sched, g.particles, g.visual, geom, nil, log.WithField("component", "driver"))
	g.driver.OnStop = g.onStop
	g.buttons = []*button{
		{label: "Open Track", onClick: g.openDialog},
		{label: "Capture", onClick: g.toggleCapture},
		{label: "Stop", onClick: g.Stop},
		{label: "Mode", onClick: g.cycleMode},
	}
	layoutButtons(g.buttons)
	g.progress.layout(geom)
	return g
}

// PlayTrack decodes path and starts a session on it.
func (g *Game) PlayTrack(path string) error {
	src, err := audio.NewTrackSource(path, g.analyserConfig(), g.log.WithField("component", "track"))
	if err != nil {
		g.fail(err)
		return err
	}
	if err := g.driver.Start(src); err != nil {
		_ = src.Close()
		g.fail(err)
		return err
	}
	g.track = src
	g.lastErr = nil
	return nil
}

// StartCapture starts a session on the default input device.
func (g *Game) StartCapture() error {
	src, err := audio.NewCaptureSource(g.analyserConfig(), g.log.WithField("component", "capture"))
	if err != nil {
		g.fail(err)
		return err
	}
	if err := g.driver.Start(src); err != nil {
		_ = src.Close()
		g.fail(err)
		return err
	}
	g.capture = src
	g.lastErr = nil
	return nil
}

// Stop ends the current session, if any.
func (g *Game) Stop() {
	if err := g.driver.Stop(); err != nil {
		g.fail(err)
	}
}

// Close releases the audio source on shutdown.
func (g *Game) Close() error {
	return g.driver.Stop()
}

func (g *Game) Update() error {
	if g.pending != nil {
		g.applyGeometry(*g.pending)
		g.pending = nil
	}
	g.drainPicker()

	if err := g.handleKeys(); err != nil {
		return err
	}
	g.handleMouse()

	g.sched.Tick(time.Now())
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	screen.DrawImage(g.particles.Image(), nil)
	screen.DrawImage(g.visual.Image(), nil)
	g.drawUI(screen)
}

// Layout reports the backing resolution. Size changes are queued and
// applied at the start of the next Update, before any frame callback runs.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	geom := visualizer.NewGeometry(outsideWidth, outsideHeight, deviceScale(), g.cfg.MaxDevicePixelRatio)
	if geom != g.geom {
		g.pending = &geom
	} else {
		g.pending = nil
	}
	return geom.BackingWidth, geom.BackingHeight
}

func (g *Game) applyGeometry(geom visualizer.Geometry) {
	g.geom = geom
	g.particles.Resize(geom)
	g.visual.Resize(geom)
	g.driver.Resize(geom)
	layoutButtons(g.buttons)
	g.progress.layout(geom)
}

func (g *Game) handleKeys() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.cycleMode()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		glow, reflection := g.driver.Effects()
		g.driver.SetEffects(glow, !reflection)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		glow, reflection := g.driver.Effects()
		g.driver.SetEffects(!glow, reflection)
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.toggleCapture()
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openDialog()
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.Stop()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if g.track != nil {
			paused := g.track.TogglePause()
			g.log.WithField("paused", paused).Debug("playback toggled")
		}
	}
	return nil
}

func (g *Game) handleMouse() {
	cx, cy := ebiten.CursorPosition()
	mx, my := float64(cx)/g.geom.DPR, float64(cy)/g.geom.DPR
	for _, b := range g.buttons {
		b.update(mx, my)
	}
	if g.track != nil {
		if fraction, ok := g.progress.update(mx, my, g.track.Position(), g.track.Duration()); ok {
			if err := g.track.Seek(fraction); err != nil {
				g.fail(err)
			}
		}
	}
}

func (g *Game) cycleMode() {
	g.driver.SetMode(g.driver.Mode().Next())
}

func (g *Game) toggleCapture() {
	if g.capture != nil {
		g.Stop()
		return
	}
	_ = g.StartCapture()
}

// openDialog shows the file picker without blocking the frame loop.
func (g *Game) openDialog() {
	if g.picking {
		return
	}
	g.picking = true
	go func() {
		path, err := zenity.SelectFile(
			zenity.Title("Open Audio File"),
			zenity.FileFilters{{
				Name:     "Audio",
				Patterns: audio.SupportedPatterns,
			}},
		)
		g.picked <- pickResult{path: path, err: err}
	}()
}

func (g *Game) drainPicker() {
	select {
	case r := <-g.picked:
		g.picking = false
		switch {
		case errors.Is(r.err, zenity.ErrCanceled):
		case r.err != nil:
			g.fail(r.err)
		default:
			_ = g.PlayTrack(r.path)
		}
	default:
	}
}

func (g *Game) onStop(err error) {
	g.track = nil
	g.capture = nil
	g.progress.reset()
	if err != nil {
		g.fail(err)
	}
}

func (g *Game) fail(err error) {
	g.lastErr = err
	g.log.WithError(err).Error("audio source error")
}

func (g *Game) analyserConfig() audio.AnalyserConfig {
	return audio.AnalyserConfig{
		FFTSize:               g.cfg.FFTSize,
		SmoothingTimeConstant: g.cfg.SmoothingTimeConstant,
	}
}
