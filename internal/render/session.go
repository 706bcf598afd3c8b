// Package render owns a drawing session: the display buffer, its
// supersample buffer and the sampling state that draw calls read.
// Sessions share nothing, so several can render concurrently.
package render

import (
	"errors"
	"fmt"
	"image"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/raster"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

// MaxSampleRate is the largest supported samples-per-pixel count.
const MaxSampleRate = 16

// ErrSampleRate is returned for a rate that is not a perfect square in
// [1, MaxSampleRate].
var ErrSampleRate = errors.New("render: sample rate must be 1, 4, 9 or 16")

// Session renders into a width x height frame with sampleRate samples per
// pixel.
type Session struct {
	width, height int
	sampleRate    int
	psm           texture.PixelSampleMethod
	lsm           texture.LevelSampleMethod

	frame *pixel.Buffer
	super *pixel.Buffer
	rast  *raster.Rasterizer
}

// NewSession returns a session at one sample per pixel with nearest
// pixel sampling from level zero. Both buffers start white.
func NewSession(w, h int) *Session {
	s := &Session{
		sampleRate: 1,
		psm:        texture.PixelNearest,
		lsm:        texture.LevelZero,
	}
	s.Resize(w, h)
	return s
}

func (s *Session) Width() int      { return s.width }
func (s *Session) Height() int     { return s.height }
func (s *Session) SampleRate() int { return s.sampleRate }

func (s *Session) PixelSampleMethod() texture.PixelSampleMethod { return s.psm }
func (s *Session) LevelSampleMethod() texture.LevelSampleMethod { return s.lsm }

// Resize reallocates both buffers for a w x h frame. Contents are reset
// to white. Negative sizes are treated as zero.
func (s *Session) Resize(w, h int) {
	s.width, s.height = max(w, 0), max(h, 0)
	s.frame = pixel.NewBuffer(s.width, s.height)
	s.frame.Clear()
	s.realloc()
}

// realloc rebuilds a white supersample buffer for the current size and
// rate.
func (s *Session) realloc() {
	k := raster.SampleFactor(s.sampleRate)
	s.super = pixel.NewBuffer(s.width*k, s.height*k)
	s.super.Clear()
	s.rast = raster.New(s.super, k)
	Logger().Debug("render: buffers allocated",
		"width", s.width, "height", s.height, "sample_rate", s.sampleRate)
}

// SetSampleRate changes the samples per pixel and reallocates the
// supersample buffer. The display buffer is left untouched until the next
// Resolve.
func (s *Session) SetSampleRate(rate int) error {
	k := raster.SampleFactor(rate)
	if rate < 1 || rate > MaxSampleRate || k*k != rate {
		return fmt.Errorf("%w: got %d", ErrSampleRate, rate)
	}
	if rate == s.sampleRate {
		return nil
	}
	s.sampleRate = rate
	s.realloc()
	return nil
}

// IncreaseSampleRate steps 1 -> 4 -> 9 -> 16 and stops at the maximum.
func (s *Session) IncreaseSampleRate() {
	k := raster.SampleFactor(s.sampleRate) + 1
	if k*k > MaxSampleRate {
		return
	}
	_ = s.SetSampleRate(k * k)
}

// DecreaseSampleRate steps 16 -> 9 -> 4 -> 1 and stops at one.
func (s *Session) DecreaseSampleRate() {
	k := raster.SampleFactor(s.sampleRate) - 1
	if k < 1 {
		return
	}
	_ = s.SetSampleRate(k * k)
}

func (s *Session) SetPixelSampleMethod(m texture.PixelSampleMethod) {
	s.psm = m
	Logger().Debug("render: pixel sampling", "method", m.Name())
}

func (s *Session) SetLevelSampleMethod(m texture.LevelSampleMethod) {
	s.lsm = m
	Logger().Debug("render: level sampling", "method", m.Name())
}

// CyclePixelSampleMethod advances to the next pixel sampling method.
func (s *Session) CyclePixelSampleMethod() {
	s.SetPixelSampleMethod(s.psm.Next())
}

// CycleLevelSampleMethod advances to the next level sampling method.
func (s *Session) CycleLevelSampleMethod() {
	s.SetLevelSampleMethod(s.lsm.Next())
}

// DrawPoint paints the whole pixel containing p, every one of its
// samples, so points keep their size at any rate.
func (s *Session) DrawPoint(p mathutil.Vec2, c pixel.Color) {
	s.rast.Pixel(p[0], p[1], c)
}

func (s *Session) DrawLine(a, b mathutil.Vec2, c pixel.Color) {
	s.rast.Line(a[0], a[1], b[0], b[1], c)
}

func (s *Session) DrawTriangle(a, b, c mathutil.Vec2, fill raster.Fill) {
	s.rast.Triangle(a, b, c, fill, s.psm, s.lsm)
}

// Clear resets both buffers to opaque white.
func (s *Session) Clear() {
	s.frame.Clear()
	s.super.Clear()
}

// Resolve box-filters the supersample buffer into the display buffer.
func (s *Session) Resolve() {
	raster.Resolve(s.super, s.frame, s.sampleRate)
}

// Frame returns the display buffer. Callers must not retain it across
// Resize.
func (s *Session) Frame() *pixel.Buffer {
	return s.frame
}

// Image returns a copy of the display buffer.
func (s *Session) Image() *image.NRGBA {
	return s.frame.Image()
}

// Redraw renders doc through view: both buffers are cleared, the document
// is drawn, a black outline is drawn one pixel outside the canvas and the
// result is resolved.
func (s *Session) Redraw(doc *scene.Document, view *scene.View) {
	s.Clear()
	m := view.ScreenTransform(s.width, s.height)
	doc.Draw(s, m)

	a := m.MulPoint(mathutil.V2(0, 0)).Add(mathutil.V2(-1, 1))
	b := m.MulPoint(mathutil.V2(doc.Width, 0)).Add(mathutil.V2(1, 1))
	c := m.MulPoint(mathutil.V2(0, doc.Height)).Add(mathutil.V2(-1, -1))
	d := m.MulPoint(mathutil.V2(doc.Width, doc.Height)).Add(mathutil.V2(1, -1))
	s.DrawLine(a, b, pixel.Black)
	s.DrawLine(a, c, pixel.Black)
	s.DrawLine(d, b, pixel.Black)
	s.DrawLine(d, c, pixel.Black)

	s.Resolve()
	Logger().Info("render: frame", "info", s.Info())
}

// Info describes the resolution, sampling methods and rate.
func (s *Session) Info() string {
	return fmt.Sprintf("Resolution %d x %d. Using %s, %s sampling. Supersample rate %d per pixel. ",
		s.width, s.height, s.lsm, s.psm, s.sampleRate)
}

// Descriptor is the machine-readable form of Info.
type Descriptor struct {
	Width         int    `json:"width" toml:"width"`
	Height        int    `json:"height" toml:"height"`
	SampleRate    int    `json:"sample_rate" toml:"sample_rate"`
	PixelSampling string `json:"pixel_sampling" toml:"pixel_sampling"`
	LevelSampling string `json:"level_sampling" toml:"level_sampling"`
}

func (s *Session) Descriptor() Descriptor {
	return Descriptor{
		Width:         s.width,
		Height:        s.height,
		SampleRate:    s.sampleRate,
		PixelSampling: s.psm.Name(),
		LevelSampling: s.lsm.Name(),
	}
}
