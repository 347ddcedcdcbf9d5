package game

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starburst/internal/visualizer"
)

const (
	buttonWidth  = 110
	buttonHeight = 28
	buttonX      = 12
	buttonY      = 36
	buttonGap    = 8

	progressHeight = 10
	progressMargin = 20
	progressBottom = 36

	// Minimum progress change before a drag issues another seek.
	seekThreshold = 0.01
	seekCooldown  = 50 * time.Millisecond
)

type button struct {
	label      string
	x, y, w, h float64
	hovered    bool
	pressed    bool
	onClick    func()
}

func layoutButtons(buttons []*button) {
	for i, b := range buttons {
		b.x = buttonX + float64(i)*(buttonWidth+buttonGap)
		b.y = buttonY
		b.w = buttonWidth
		b.h = buttonHeight
	}
}

func (b *button) contains(x, y float64) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// update tracks hover and press state; a click is a press and release both
// inside the button.
func (b *button) update(mx, my float64) {
	b.hovered = b.contains(mx, my)
	if b.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.pressed = true
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if b.pressed && b.hovered && b.onClick != nil {
			b.onClick()
		}
		b.pressed = false
	}
}

func (b *button) draw(screen *ebiten.Image, dpr float64) {
	var bg color.Color
	switch {
	case b.pressed:
		bg = color.RGBA{R: 40, G: 60, B: 100, A: 230}
	case b.hovered:
		bg = color.RGBA{R: 60, G: 85, B: 130, A: 230}
	default:
		bg = color.RGBA{R: 30, G: 40, B: 70, A: 200}
	}
	x, y, w, h := float32(b.x*dpr), float32(b.y*dpr), float32(b.w*dpr), float32(b.h*dpr)
	vector.DrawFilledRect(screen, x, y, w, h, bg, true)
	vector.StrokeRect(screen, x, y, w, h, float32(dpr), color.RGBA{R: 120, G: 150, B: 210, A: 255}, true)

	textWidth := len(b.label) * 6
	ebitenutil.DebugPrintAt(screen, b.label, int(x)+(int(w)-textWidth)/2, int(y)+(int(h)-16)/2)
}

// progressBar is the seekable track position strip along the bottom edge.
type progressBar struct {
	x, y, w, h float64
	hovered    bool
	dragging   bool
	lastSeek   time.Time
}

func (p *progressBar) layout(geom visualizer.Geometry) {
	p.x = progressMargin
	p.w = math.Max(geom.Width-2*progressMargin, 1)
	p.h = progressHeight
	p.y = geom.Height - progressBottom
}

func (p *progressBar) reset() {
	p.dragging = false
	p.hovered = false
}

// fraction maps a cursor x onto the bar, clamped to [0, 1].
func (p *progressBar) fraction(mx float64) float64 {
	return clamp01((mx - p.x) / p.w)
}

// update handles click and drag and returns the position to seek to, if
// any. Drags are throttled by distance and time.
func (p *progressBar) update(mx, my float64, pos, total time.Duration) (float64, bool) {
	p.hovered = mx >= p.x && mx <= p.x+p.w && my >= p.y && my <= p.y+p.h
	if total <= 0 {
		return 0, false
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		p.dragging = false
	}
	if p.hovered && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p.dragging = true
		p.lastSeek = time.Now()
		return p.fraction(mx), true
	}
	if !p.dragging {
		return 0, false
	}
	target := p.fraction(mx)
	current := float64(pos) / float64(total)
	if math.Abs(target-current) <= seekThreshold || time.Since(p.lastSeek) < seekCooldown {
		return 0, false
	}
	p.lastSeek = time.Now()
	return target, true
}

func (p *progressBar) draw(screen *ebiten.Image, dpr float64, pos, total time.Duration, hue float64) {
	if total <= 0 {
		return
	}
	progress := clamp01(float64(pos) / float64(total))
	x, y, w, h := float32(p.x*dpr), float32(p.y*dpr), float32(p.w*dpr), float32(p.h*dpr)

	vector.DrawFilledRect(screen, x, y, w, h, color.RGBA{R: 25, G: 30, B: 40, A: 200}, true)
	if progress > 0 {
		fill := visualizer.HSLA{H: hue, S: 0.8, L: 0.55, A: 0.8}
		vector.DrawFilledRect(screen, x, y, w*float32(progress), h, fill, true)
	}
	vector.StrokeRect(screen, x, y, w, h, float32(dpr), color.RGBA{R: 70, G: 80, B: 100, A: 255}, true)
	vector.DrawFilledCircle(screen, x+w*float32(progress), y+h/2, h*0.8, color.White, true)

	labelY := int(y+h) + 4
	ebitenutil.DebugPrintAt(screen, formatDuration(pos), int(x), labelY)
	totalLabel := formatDuration(total)
	ebitenutil.DebugPrintAt(screen, totalLabel, int(x+w)-len(totalLabel)*6, labelY)
}

// sessionInfo is what the status line shows about the current source.
type sessionInfo struct {
	mode       string
	kind       string
	name       string
	sampleRate int
	size       int64
	paused     bool
	glow       bool
	reflection bool
	err        error
}

func statusLine(s sessionInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]", s.mode)
	if s.kind == "" {
		b.WriteString(" idle - O: open track, C: capture")
	} else {
		fmt.Fprintf(&b, " %s: %s", s.kind, s.name)
		if s.sampleRate > 0 {
			fmt.Fprintf(&b, " @ %s", humanize.SI(float64(s.sampleRate), "Hz"))
		}
		if s.size > 0 {
			fmt.Fprintf(&b, " (%s)", humanize.Bytes(uint64(s.size)))
		}
		if s.paused {
			b.WriteString(" paused")
		}
	}
	fmt.Fprintf(&b, " | glow %s, reflection %s", onOff(s.glow), onOff(s.reflection))
	if s.err != nil {
		b.WriteString(" | error: ")
		b.WriteString(s.err.Error())
	}
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (g *Game) sessionInfo() sessionInfo {
	glow, reflection := g.driver.Effects()
	info := sessionInfo{
		mode:       g.driver.Mode().String(),
		glow:       glow,
		reflection: reflection,
		err:        g.lastErr,
	}
	switch {
	case g.track != nil:
		info.kind = "track"
		info.name = g.track.Name()
		info.sampleRate = g.track.SampleRate()
		info.size = g.track.Size()
		info.paused = g.track.Paused()
	case g.capture != nil:
		info.kind = "capture"
		info.name = g.capture.Name()
		info.sampleRate = g.capture.SampleRate()
	}
	return info
}

func (g *Game) drawUI(screen *ebiten.Image) {
	dpr := g.geom.DPR
	ebitenutil.DebugPrintAt(screen, statusLine(g.sessionInfo()), 12, 12)
	for _, b := range g.buttons {
		b.draw(screen, dpr)
	}
	if g.track != nil {
		g.progress.draw(screen, dpr, g.track.Position(), g.track.Duration(), g.cfg.HueStart)
	}
	help := "M mode  R reflection  G glow  Space pause  S stop  Esc quit"
	ebitenutil.DebugPrintAt(screen, help, 12, int((buttonY+buttonHeight+6)*dpr))
}
