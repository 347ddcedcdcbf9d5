package visualizer

const (
	linearPadding      = 0.05
	linearGap          = 0.2
	minLinearBarHeight = 2
)

// drawClassic paints left-to-right bars standing on a baseline at 80% of the
// height, each with a faded stub underneath as reflection.
func (r *Renderer) drawClassic(c Canvas, f Frame) {
	g := f.Geometry
	n := len(f.Bars)
	if n == 0 {
		return
	}
	pad := g.Width * linearPadding
	slot := (g.Width - 2*pad) / float64(n)
	barW := slot * (1 - linearGap)
	base := g.Height * 0.8

	for i, raw := range f.Bars {
		v := normalized(raw)
		h := max(v*g.Height*0.7, minLinearBarHeight)
		x := pad + float64(i)*slot
		col := HSLA{H: r.hue(i, n), S: 0.85, L: 0.5 + 0.15*v, A: 0.9}

		c.FillRect(x, base-h, barW, h, Style{Color: col, Blur: r.glow(v)})
		if r.cfg.EnableReflection {
			c.FillRect(x, base+2, barW, h*0.3, Style{Color: col.WithAlpha(0.2)})
		}
	}
}

// drawMirrored paints bars growing symmetrically from the horizontal
// midline.
func (r *Renderer) drawMirrored(c Canvas, f Frame) {
	g := f.Geometry
	n := len(f.Bars)
	if n == 0 {
		return
	}
	pad := g.Width * linearPadding
	slot := (g.Width - 2*pad) / float64(n)
	barW := slot * (1 - linearGap)
	mid := g.Height / 2

	for i, raw := range f.Bars {
		v := normalized(raw)
		h := max(v*g.Height*0.4, minLinearBarHeight/2)
		x := pad + float64(i)*slot
		col := HSLA{H: r.hue(i, n), S: 0.85, L: 0.5 + 0.15*v, A: 0.9}
		c.FillRect(x, mid-h, barW, 2*h, Style{Color: col, Blur: r.glow(v)})
	}

	c.StrokeLine(0, mid, g.Width, mid, Style{Color: HSLA{S: 0, L: 1, A: 0.15}, LineWidth: 1})
}
