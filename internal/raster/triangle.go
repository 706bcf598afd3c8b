package raster

import (
	"math"

	"softraster/internal/mathutil"
	"softraster/internal/texture"
)

// minArea is the smallest |2·signed area| (in samples²) a triangle needs
// to be drawn.
const minArea = 1e-8

// Triangle fills the triangle p0 p1 p2, given in screen space.
//
// Every sample centre (x+0.5, y+0.5) inside the scaled bounding box is
// tested against the three edge functions; samples on an edge count as
// inside. Flat fills are written directly. Other fills are shaded per
// sample with Shade, using the barycentric coordinates at the centre and
// at its right and lower neighbours. Zero-area triangles draw nothing.
func (r *Rasterizer) Triangle(p0, p1, p2 mathutil.Vec2, fill Fill, psm texture.PixelSampleMethod, lsm texture.LevelSampleMethod) {
	if fill == nil {
		return
	}
	k := float64(r.k)
	x0, y0 := p0[0]*k, p0[1]*k
	x1, y1 := p1[0]*k, p1[1]*k
	x2, y2 := p2[0]*k, p2[1]*k

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if !(math.Abs(det) >= minArea) || math.IsInf(det, 0) {
		return
	}
	invDet := 1.0 / det
	sign := 1.0
	if det < 0 {
		sign = -1
	}

	// Precompute edge deltas
	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2
	dy01 := y0 - y1
	dx10 := x1 - x0

	// Bounding box, clipped to the buffer
	minX := math.Max(math.Floor(math.Min(math.Min(x0, x1), x2)), 0)
	maxX := math.Min(math.Max(math.Max(x0, x1), x2), float64(r.buf.Width))
	minY := math.Max(math.Floor(math.Min(math.Min(y0, y1), y2)), 0)
	maxY := math.Min(math.Max(math.Max(y0, y1), y2), float64(r.buf.Height))

	flat, isFlat := fill.(Flat)

	for sy := minY; sy+0.5 <= maxY; sy++ {
		cy := sy + 0.5
		dsy := cy - y2
		for sx := minX; sx+0.5 <= maxX; sx++ {
			cx := sx + 0.5
			dsx := cx - x2

			e0 := dy12*dsx + dx21*dsy
			e1 := dy20*dsx + dx02*dsy
			e2 := dy01*(cx-x0) + dx10*(cy-y0)
			if e0*sign < 0 || e1*sign < 0 || e2*sign < 0 {
				continue
			}

			if isFlat {
				r.Point(cx, cy, flat.Color)
				continue
			}

			bary := mathutil.V2(e0*invDet, e1*invDet)
			right := mathutil.V2(
				(dy12*(dsx+1)+dx21*dsy)*invDet,
				(dy20*(dsx+1)+dx02*dsy)*invDet,
			)
			below := mathutil.V2(
				(dy12*dsx+dx21*(dsy+1))*invDet,
				(dy20*dsx+dx02*(dsy+1))*invDet,
			)
			r.Point(cx, cy, Shade(fill, bary, right, below, psm, lsm))
		}
	}
}
