package raster

import (
	"math"

	"softraster/internal/pixel"
)

// Rasterizer turns primitives into writes on a supersample buffer.
//
// The buffer is k times the output resolution on each axis. Point works in
// sample space; Pixel, Line and Triangle take screen-space coordinates and
// scale them by k. Writes outside the buffer are discarded.
type Rasterizer struct {
	buf *pixel.Buffer
	k   int
}

// New binds a rasterizer to a supersample buffer with k samples per axis.
func New(buf *pixel.Buffer, k int) *Rasterizer {
	if k < 1 {
		k = 1
	}
	return &Rasterizer{buf: buf, k: k}
}

// Factor returns the number of samples per pixel along each axis.
func (r *Rasterizer) Factor() int {
	return r.k
}

// Buffer returns the supersample buffer the rasterizer writes to.
func (r *Rasterizer) Buffer() *pixel.Buffer {
	return r.buf
}

// Point blends c into the sample cell containing (x, y), given in sample
// space. Every other primitive is expressed in terms of Point.
func (r *Rasterizer) Point(x, y float64, c pixel.Color) {
	sx := math.Floor(x)
	sy := math.Floor(y)
	// NaN fails both comparisons.
	if !(sx >= 0 && sx < float64(r.buf.Width)) || !(sy >= 0 && sy < float64(r.buf.Height)) {
		return
	}
	r.buf.Blend(int(sx), int(sy), c)
}

// Pixel blends c into every sample of the screen pixel containing (x, y).
func (r *Rasterizer) Pixel(x, y float64, c pixel.Color) {
	k := float64(r.k)
	px := math.Floor(x) * k
	py := math.Floor(y) * k
	for j := 0; j < r.k; j++ {
		for i := 0; i < r.k; i++ {
			r.Point(px+float64(i), py+float64(j), c)
		}
	}
}

// Line draws the segment (x0, y0)–(x1, y1) with a digital differential
// analyzer. The walk steps one sample along the major axis, from the lower
// to the higher endpoint inclusive, and writes k stacked samples along the
// minor axis so the line stays one screen pixel thick at every rate.
func (r *Rasterizer) Line(x0, y0, x1, y1 float64, c pixel.Color) {
	for _, v := range [4]float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return
		}
	}
	k := float64(r.k)
	x0, y0, x1, y1 = x0*k, y0*k, x1*k, y1*k

	if math.Abs(y1-y0) <= math.Abs(x1-x0) {
		walk(x0, y0, x1, y1, r.buf.Width, func(x, y float64) {
			for i := 0; i < r.k; i++ {
				r.Point(x, y+float64(i), c)
			}
		})
		return
	}
	walk(y0, x0, y1, x1, r.buf.Height, func(y, x float64) {
		for i := 0; i < r.k; i++ {
			r.Point(x+float64(i), y, c)
		}
	})
}

// walk steps a from a0 to a1 inclusive in unit increments while b follows
// the segment. Steps that cannot land inside [0, limit) on the major axis
// are skipped.
func walk(a0, b0, a1, b1 float64, limit int, plot func(a, b float64)) {
	if a0 > a1 {
		a0, a1 = a1, a0
		b0, b1 = b1, b0
	}
	slope := 0.0
	if a1 != a0 {
		slope = (b1 - b0) / (a1 - a0)
	}

	if a0 < -1 {
		skip := math.Floor(-1 - a0)
		a0 += skip
		b0 += skip * slope
	}
	end := math.Min(a1, float64(limit))

	for a, b := a0, b0; a <= end; a, b = a+1, b+slope {
		plot(a, b)
	}
}
