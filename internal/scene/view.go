package scene

import (
	"math"

	"softraster/internal/mathutil"
)

// View maps document coordinates to normalized device coordinates, where
// the visible square spans [0, 1] on both axes.
type View struct {
	docW, docH float64
	toNDC      mathutil.Mat3
}

// NewView returns a view framing a docW x docH document.
func NewView(docW, docH float64) *View {
	v := &View{docW: docW, docH: docH}
	v.Init()
	return v
}

// Init frames the whole document with a 10% margin on each side.
func (v *View) Init() {
	v.Set(v.docW/2, v.docH/2, 1.2*math.Max(v.docW, v.docH)/2)
}

// Set centers the view on (x, y) with a half-extent of span document
// units.
func (v *View) Set(x, y, span float64) {
	v.toNDC = mathutil.Mat3{
		1, 0, -x + span,
		0, 1, -y + span,
		0, 0, 2 * span,
	}
}

// Center returns the current view center and half-extent.
func (v *View) Center() (x, y, span float64) {
	col := v.toNDC.Column(2)
	span = col[2] / 2
	return -(col[0] - span), -(col[1] - span), span
}

// Move recenters by (dx, dy) document units and scales the whole mapping
// by zoom.
func (v *View) Move(dx, dy, zoom float64) {
	x, y, span := v.Center()
	v.toNDC = mathutil.Mat3{
		1, 0, (-x + span + dx) * zoom,
		0, 1, (-y + span + dy) * zoom,
		0, 0, 2 * span * zoom,
	}
}

// Pan shifts the view by a screen-space drag of (dx, dy) pixels on a
// screenW x screenH target.
func (v *View) Pan(dx, dy float64, screenW, screenH int) {
	if screenW <= 0 || screenH <= 0 {
		return
	}
	v.Move(dx*v.docW/float64(screenW), dy*v.docH/float64(screenH), 1)
}

// Scroll zooms by a wheel offset. Each unit is 5%, clamped to a factor
// in [0.5, 1.5] per call.
func (v *View) Scroll(offX, offY float64) {
	scale := 1 + 0.05*(offX+offY)
	scale = math.Min(1.5, math.Max(0.5, scale))
	v.Move(0, 0, scale)
}

// NDC returns the document to NDC transform.
func (v *View) NDC() mathutil.Mat3 {
	return v.toNDC
}

// ScreenTransform composes the NDC mapping with the viewport transform
// of a w x h target: the NDC square is scaled to the smaller dimension and
// centered.
func (v *View) ScreenTransform(w, h int) mathutil.Mat3 {
	return NDCToScreen(w, h).Mul(v.toNDC)
}

// NDCToScreen maps the NDC unit square onto the largest centered square
// of a w x h target.
func NDCToScreen(w, h int) mathutil.Mat3 {
	size := float64(min(w, h))
	return mathutil.Mat3{
		size, 0, (float64(w) - size) / 2,
		0, size, (float64(h) - size) / 2,
		0, 0, 1,
	}
}
