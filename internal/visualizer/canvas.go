package visualizer

import "image/color"

// Style describes how a primitive is painted. Blur > 0 asks the surface for a
// glow of roughly that radius in the same color.
type Style struct {
	Color     color.Color
	LineWidth float64
	Blur      float64
}

// Canvas is the drawing surface the renderers and the particle field paint
// on. Coordinates are logical pixels; transforms apply to everything drawn
// between Save and the matching Restore.
type Canvas interface {
	Size() (width, height float64)
	Clear()

	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)

	StrokeLine(x0, y0, x1, y1 float64, s Style)
	FillCircle(cx, cy, r float64, s Style)
	StrokeCircle(cx, cy, r float64, s Style)
	FillRect(x, y, w, h float64, s Style)
}
