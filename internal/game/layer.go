package game

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/starburst/internal/visualizer"
)

const (
	ellipseSegments = 96
	glowSpread      = 0.6
	glowAlpha       = 0.3
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// whiteTexture is the 1x1 source image for DrawTriangles. It is created on
// first use so the package can be loaded without a graphics context.
func whiteTexture() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Layer is a visualizer.Canvas drawing into an offscreen ebiten image sized
// to the backing resolution. Callers draw in logical units; the base
// transform scales them by the device pixel ratio.
type Layer struct {
	img   *ebiten.Image
	geom  visualizer.Geometry
	base  ebiten.GeoM
	geo   ebiten.GeoM
	stack []ebiten.GeoM

	path     vector.Path
	vertices []ebiten.Vertex
	indices  []uint16
}

var _ visualizer.Canvas = (*Layer)(nil)

func NewLayer(geom visualizer.Geometry) *Layer {
	l := &Layer{}
	l.Resize(geom)
	return l
}

// Resize reallocates the backing image when the pixel size changes.
func (l *Layer) Resize(geom visualizer.Geometry) {
	if l.img == nil || l.geom.BackingWidth != geom.BackingWidth || l.geom.BackingHeight != geom.BackingHeight {
		if l.img != nil {
			l.img.Deallocate()
		}
		l.img = ebiten.NewImage(geom.BackingWidth, geom.BackingHeight)
	}
	l.geom = geom
	l.base = ebiten.GeoM{}
	l.base.Scale(geom.DPR, geom.DPR)
	l.geo = l.base
	l.stack = l.stack[:0]
}

func (l *Layer) Image() *ebiten.Image { return l.img }

func (l *Layer) Size() (float64, float64) { return l.geom.Width, l.geom.Height }

func (l *Layer) Clear() {
	l.img.Clear()
	l.geo = l.base
	l.stack = l.stack[:0]
}

func (l *Layer) Save() { l.stack = append(l.stack, l.geo) }

func (l *Layer) Restore() {
	if len(l.stack) == 0 {
		return
	}
	l.geo = l.stack[len(l.stack)-1]
	l.stack = l.stack[:len(l.stack)-1]
}

// Translate and Scale apply before the current transform, like a 2D
// canvas context.
func (l *Layer) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	m.Concat(l.geo)
	l.geo = m
}

func (l *Layer) Scale(sx, sy float64) {
	var m ebiten.GeoM
	m.Scale(sx, sy)
	m.Concat(l.geo)
	l.geo = m
}

func (l *Layer) StrokeLine(x0, y0, x1, y1 float64, s visualizer.Style) {
	ax, ay := l.geo.Apply(x0, y0)
	bx, by := l.geo.Apply(x1, y1)
	width := s.LineWidth * l.lineScale()
	if s.Blur > 0 {
		vector.StrokeLine(l.img, float32(ax), float32(ay), float32(bx), float32(by),
			float32(width+s.Blur*glowSpread*l.geom.DPR), fade(s.Color, glowAlpha), true)
	}
	vector.StrokeLine(l.img, float32(ax), float32(ay), float32(bx), float32(by), float32(width), s.Color, true)
}

func (l *Layer) FillCircle(cx, cy, r float64, s visualizer.Style) {
	if s.Blur > 0 {
		l.ellipse(cx, cy, r+s.Blur*glowSpread)
		l.fill(fade(s.Color, glowAlpha))
	}
	l.ellipse(cx, cy, r)
	l.fill(s.Color)
}

func (l *Layer) StrokeCircle(cx, cy, r float64, s visualizer.Style) {
	width := s.LineWidth * l.lineScale()
	if s.Blur > 0 {
		l.ellipse(cx, cy, r)
		l.stroke(width+s.Blur*glowSpread*l.geom.DPR, fade(s.Color, glowAlpha))
	}
	l.ellipse(cx, cy, r)
	l.stroke(width, s.Color)
}

func (l *Layer) FillRect(x, y, w, h float64, s visualizer.Style) {
	ax, ay := l.geo.Apply(x, y)
	bx, by := l.geo.Apply(x+w, y+h)
	left, top := math.Min(ax, bx), math.Min(ay, by)
	rw, rh := math.Abs(bx-ax), math.Abs(by-ay)
	if s.Blur > 0 {
		pad := s.Blur * glowSpread * l.geom.DPR / 2
		vector.DrawFilledRect(l.img, float32(left-pad), float32(top-pad), float32(rw+2*pad), float32(rh+2*pad), fade(s.Color, glowAlpha), true)
	}
	vector.DrawFilledRect(l.img, float32(left), float32(top), float32(rw), float32(rh), s.Color, true)
}

// ellipse rebuilds the shared path as a circle mapped through the current
// transform, which turns it into an ellipse under non-uniform scale.
func (l *Layer) ellipse(cx, cy, r float64) {
	l.path = vector.Path{}
	for i := 0; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		x, y := l.geo.Apply(cx+r*math.Cos(a), cy+r*math.Sin(a))
		if i == 0 {
			l.path.MoveTo(float32(x), float32(y))
		} else {
			l.path.LineTo(float32(x), float32(y))
		}
	}
	l.path.Close()
}

func (l *Layer) fill(c color.Color) {
	l.vertices, l.indices = l.path.AppendVerticesAndIndicesForFilling(l.vertices[:0], l.indices[:0])
	l.drawTriangles(c)
}

func (l *Layer) stroke(width float64, c color.Color) {
	l.vertices, l.indices = l.path.AppendVerticesAndIndicesForStroke(l.vertices[:0], l.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
	})
	l.drawTriangles(c)
}

func (l *Layer) drawTriangles(c color.Color) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	for i := range l.vertices {
		v := &l.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(n.R) / 0xff
		v.ColorG = float32(n.G) / 0xff
		v.ColorB = float32(n.B) / 0xff
		v.ColorA = float32(n.A) / 0xff
	}
	l.img.DrawTriangles(l.vertices, l.indices, whiteTexture(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// lineScale is the average linear scale of the current transform.
func (l *Layer) lineScale() float64 {
	a, b := l.geo.Element(0, 0), l.geo.Element(0, 1)
	c, d := l.geo.Element(1, 0), l.geo.Element(1, 1)
	return math.Sqrt(math.Abs(a*d - b*c))
}

// fade multiplies the alpha of c by f.
func fade(c color.Color, f float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A) * f)
	return n
}
