package render

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/raster"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

var _ scene.Canvas = (*Session)(nil)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(8, 6)

	assert.Equal(t, 8, s.Width())
	assert.Equal(t, 6, s.Height())
	assert.Equal(t, 1, s.SampleRate())
	assert.Equal(t, texture.PixelNearest, s.PixelSampleMethod())
	assert.Equal(t, texture.LevelZero, s.LevelSampleMethod())
	for _, v := range s.Frame().Pix {
		require.Equal(t, uint8(255), v)
	}
}

func TestSetSampleRate(t *testing.T) {
	s := NewSession(4, 4)

	for _, rate := range []int{4, 9, 16, 1} {
		require.NoError(t, s.SetSampleRate(rate))
		assert.Equal(t, rate, s.SampleRate())
	}
	for _, rate := range []int{0, -4, 2, 8, 25} {
		err := s.SetSampleRate(rate)
		assert.ErrorIs(t, err, ErrSampleRate, "rate %d", rate)
		assert.Equal(t, 1, s.SampleRate())
	}
}

func TestSampleRateStepping(t *testing.T) {
	s := NewSession(2, 2)

	var up []int
	for i := 0; i < 5; i++ {
		s.IncreaseSampleRate()
		up = append(up, s.SampleRate())
	}
	assert.Equal(t, []int{4, 9, 16, 16, 16}, up)

	var down []int
	for i := 0; i < 5; i++ {
		s.DecreaseSampleRate()
		down = append(down, s.SampleRate())
	}
	assert.Equal(t, []int{9, 4, 1, 1, 1}, down)
}

func TestCycleMethods(t *testing.T) {
	s := NewSession(1, 1)

	s.CyclePixelSampleMethod()
	assert.Equal(t, texture.PixelBilinear, s.PixelSampleMethod())
	s.CyclePixelSampleMethod()
	assert.Equal(t, texture.PixelNearest, s.PixelSampleMethod())

	s.CycleLevelSampleMethod()
	assert.Equal(t, texture.LevelNearest, s.LevelSampleMethod())
	s.CycleLevelSampleMethod()
	assert.Equal(t, texture.LevelLinear, s.LevelSampleMethod())
	s.CycleLevelSampleMethod()
	assert.Equal(t, texture.LevelZero, s.LevelSampleMethod())
}

func TestInfo(t *testing.T) {
	s := NewSession(640, 480)
	require.NoError(t, s.SetSampleRate(4))
	s.SetPixelSampleMethod(texture.PixelBilinear)
	s.SetLevelSampleMethod(texture.LevelLinear)

	assert.Equal(t,
		"Resolution 640 x 480. Using bilinear level interpolation, bilinear pixel interpolation sampling. Supersample rate 4 per pixel. ",
		s.Info())
	assert.Equal(t, Descriptor{
		Width:         640,
		Height:        480,
		SampleRate:    4,
		PixelSampling: "bilinear",
		LevelSampling: "trilinear",
	}, s.Descriptor())
}

func TestPointFillsPixelAtEveryRate(t *testing.T) {
	for _, rate := range []int{1, 4, 9, 16} {
		s := NewSession(4, 4)
		require.NoError(t, s.SetSampleRate(rate))
		s.Clear()
		s.DrawPoint(mathutil.V2(1.7, 2.2), pixel.Black)
		s.Resolve()

		assert.Equal(t, []uint8{0, 0, 0, 255}, s.Frame().Pix[4*(2*4+1):4*(2*4+1)+4], "rate %d", rate)
		assert.Equal(t, []uint8{255, 255, 255, 255}, s.Frame().Pix[0:4], "rate %d", rate)
	}
}

func TestSupersampledEdgeIsGray(t *testing.T) {
	s := NewSession(4, 4)
	require.NoError(t, s.SetSampleRate(4))
	s.Clear()
	// covers the left half of every pixel in column 1
	s.DrawTriangle(mathutil.V2(0, 0), mathutil.V2(1.5, 0), mathutil.V2(1.5, 8), raster.Flat{Color: pixel.Black})
	s.DrawTriangle(mathutil.V2(0, 0), mathutil.V2(1.5, 8), mathutil.V2(0, 8), raster.Flat{Color: pixel.Black})
	s.Resolve()

	p := s.Frame().Pix[4*(1*4+1):]
	assert.Equal(t, uint8(127), p[0])
	assert.Equal(t, uint8(255), p[3])
	assert.Equal(t, uint8(0), s.Frame().Pix[4*(1*4+0)])
	assert.Equal(t, uint8(255), s.Frame().Pix[4*(1*4+2)])
}

func TestResizeResetsBuffers(t *testing.T) {
	s := NewSession(2, 2)
	require.NoError(t, s.SetSampleRate(9))
	s.DrawPoint(mathutil.V2(0, 0), pixel.Black)
	s.Resize(3, 5)
	s.Resolve()

	assert.Equal(t, 3, s.Frame().Width)
	assert.Equal(t, 5, s.Frame().Height)
	assert.Equal(t, 9, s.SampleRate())
	img := s.Image()
	assert.Equal(t, 3, img.Bounds().Dx())
	assert.Equal(t, uint8(255), img.Pix[0])
}

func TestRedrawDrawsDocumentAndOutline(t *testing.T) {
	s := NewSession(64, 64)
	doc := &scene.Document{
		Width:  10,
		Height: 10,
		Children: []scene.Shape{&scene.Rect{
			Size:  mathutil.V2(10, 10),
			Style: scene.Style{Fill: pixel.Color{R: 1, A: 1}},
		}},
	}
	view := scene.NewView(doc.Width, doc.Height)
	s.Redraw(doc, view)

	at := func(x, y int) []uint8 {
		i := 4 * (y*64 + x)
		return s.Frame().Pix[i : i+4]
	}
	// document center maps to the frame center
	assert.Equal(t, []uint8{255, 0, 0, 255}, at(32, 32))
	// outside the 10% margin nothing is drawn
	assert.Equal(t, []uint8{255, 255, 255, 255}, at(1, 1))

	// the outline runs one pixel outside the canvas edge
	m := view.ScreenTransform(64, 64)
	left := m.MulPoint(mathutil.V2(0, 5))
	assert.Equal(t, []uint8{0, 0, 0, 255}, at(int(left[0])-1, 32))
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession(2, 2)
	b := NewSession(2, 2)
	require.NoError(t, a.SetSampleRate(4))
	a.SetPixelSampleMethod(texture.PixelBilinear)
	a.DrawPoint(mathutil.V2(0, 0), pixel.Black)
	a.Resolve()
	b.Resolve()

	assert.Equal(t, 1, b.SampleRate())
	assert.Equal(t, texture.PixelNearest, b.PixelSampleMethod())
	assert.Equal(t, uint8(255), b.Frame().Pix[0])
	assert.Equal(t, uint8(0), a.Frame().Pix[0])
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	s := NewSession(1, 1)
	require.NoError(t, s.SetSampleRate(4))
	assert.Contains(t, buf.String(), "sample_rate=4")

	SetLogger(nil)
	buf.Reset()
	s.Resize(2, 2)
	assert.Empty(t, buf.String())
}
