package visualizer

import "math"

const (
	reflectionAlpha    = 0.25
	reflectionSquash   = 0.5
	innerDiscLightness = 0.08
)

// drawCircular paints the radial starburst. The vertical axis is compressed
// by the perspective scale to fake a tilted floor, and an optional squashed,
// flipped copy underneath acts as the reflection.
func (r *Renderer) drawCircular(c Canvas, f Frame) {
	g := f.Geometry
	n := len(f.Bars)
	if n == 0 {
		return
	}

	fit := r.fitScale(g)
	baseRadius := r.cfg.InnerRadius * fit
	radius := baseRadius + f.Bass*baseRadius*0.3
	minH := r.cfg.MinBarHeight * fit
	maxH := r.cfg.MaxBarHeight * fit
	persp := r.cfg.PerspectiveScale

	if r.cfg.EnableReflection {
		c.Save()
		c.Translate(g.CenterX, g.CenterY+(baseRadius+maxH)*persp*(1+reflectionSquash))
		c.Scale(1, -persp*reflectionSquash)
		r.drawRadialBars(c, f.Bars, radius, minH, maxH, fit, reflectionAlpha, 2, false)
		c.Restore()
	}

	c.Save()
	c.Translate(g.CenterX, g.CenterY)
	c.Scale(1, persp)
	r.drawRadialBars(c, f.Bars, radius, minH, maxH, fit, 1, 1, r.cfg.GlowEnabled)

	rim := HSLA{H: r.hue(0, n), S: 0.8, L: 0.55 + f.Bass*0.2, A: 0.9}
	c.FillCircle(0, 0, radius, Style{Color: HSLA{H: rim.H, S: 0.4, L: innerDiscLightness, A: 0.95}})
	c.StrokeCircle(0, 0, radius, Style{Color: rim, LineWidth: 2 * fit, Blur: r.glow(f.Bass)})
	c.Restore()
}

// drawRadialBars strokes every stride-th bar from the inner radius outwards.
func (r *Renderer) drawRadialBars(c Canvas, bars []float64, radius, minH, maxH, fit, alpha float64, stride int, glow bool) {
	n := len(bars)
	angleStep := 2 * math.Pi / float64(n)
	for i := 0; i < n; i += stride {
		v := normalized(bars[i])
		angle := float64(i)*angleStep + r.rotation
		cos, sin := math.Cos(angle), math.Sin(angle)
		outer := radius + lerp(minH, maxH, v)

		style := Style{
			Color: HSLA{
				H: r.hue(i, n),
				S: 0.7 + 0.3*v,
				L: 0.45 + 0.25*v,
				A: alpha * (0.55 + 0.45*v),
			},
			LineWidth: r.cfg.BarWidth * fit,
		}
		if glow {
			style.Blur = r.glow(v)
		}
		c.StrokeLine(cos*radius, sin*radius, cos*outer, sin*outer, style)
	}
}

// fitScale shrinks radii on canvases too small for the configured sizes.
func (r *Renderer) fitScale(g Geometry) float64 {
	extent := r.cfg.InnerRadius + r.cfg.MaxBarHeight
	if extent <= 0 {
		return 1
	}
	avail := math.Min(g.Width, g.Height) * 0.45
	return math.Min(1, avail/extent)
}
