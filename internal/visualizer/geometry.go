package visualizer

import "math"

// Geometry caches the canvas metrics derived from the window size. It is
// recomputed only on resize and passed by value, so a frame always sees one
// consistent snapshot.
type Geometry struct {
	Width, Height    float64
	CenterX, CenterY float64
	DPR              float64

	BackingWidth, BackingHeight int
}

// NewGeometry derives a geometry for a logical size and device pixel ratio.
// The ratio is capped at maxDPR; non-positive inputs are clamped so nothing
// downstream divides by zero.
func NewGeometry(width, height int, dpr, maxDPR float64) Geometry {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if dpr <= 0 || math.IsNaN(dpr) {
		dpr = 1
	}
	if maxDPR >= 1 && dpr > maxDPR {
		dpr = maxDPR
	}
	w, h := float64(width), float64(height)
	return Geometry{
		Width:         w,
		Height:        h,
		CenterX:       w / 2,
		CenterY:       h / 2,
		DPR:           dpr,
		BackingWidth:  int(math.Ceil(w * dpr)),
		BackingHeight: int(math.Ceil(h * dpr)),
	}
}
