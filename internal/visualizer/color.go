package visualizer

import "math"

// HSLA is a hue/saturation/lightness color with straight alpha. Hue is in
// degrees, the rest in [0,1]. It satisfies color.Color.
type HSLA struct {
	H, S, L, A float64
}

func (c HSLA) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := hslToRGB(c.H, c.S, c.L)
	alpha := clamp01(c.A)
	a = uint32(alpha * 0xffff)
	r = uint32(float64(r8) * 0x101 * alpha)
	g = uint32(float64(g8) * 0x101 * alpha)
	b = uint32(float64(b8) * 0x101 * alpha)
	return
}

// WithAlpha returns a copy with alpha scaled by f.
func (c HSLA) WithAlpha(f float64) HSLA {
	c.A = clamp01(c.A * f)
	return c
}

// hslToRGB converts HSL to RGB (hue: any degrees, saturation: 0-1, lightness: 0-1)
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	s = clamp01(s)
	l = clamp01(l)

	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
