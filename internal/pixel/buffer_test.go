package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlend(t *testing.T) {
	b := NewBuffer(1, 1)
	b.Fill(Color{0, 0, 1, 1})
	b.Blend(0, 0, Color{1, 0, 0, 0.5})

	got := b.At(0, 0)
	tol := 1.0 / 255
	assert.InDelta(t, 0.5, got.R, tol)
	assert.InDelta(t, 0.0, got.G, tol)
	assert.InDelta(t, 0.5, got.B, tol)
	assert.Equal(t, 1.0, got.A)
}

func TestBlendOpaqueReplaces(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Clear()
	c := NewColor8(12, 200, 99, 255)
	b.Blend(1, 1, c)
	assert.Equal(t, c, b.At(1, 1))
	assert.Equal(t, White, b.At(0, 0))
}

func TestBlendTransparentKeepsDestination(t *testing.T) {
	b := NewBuffer(1, 1)
	b.Fill(NewColor8(10, 20, 30, 40))
	b.Blend(0, 0, Color{1, 1, 1, 0})
	assert.Equal(t, []uint8{10, 20, 30, 40}, b.Pix)
}

func TestOutOfBoundsIgnored(t *testing.T) {
	b := NewBuffer(3, 2)
	b.Clear()
	before := append([]uint8(nil), b.Pix...)

	oob := []struct{ x, y int }{
		{-1, 0}, {3, 0}, {0, -1}, {0, 2}, {-100, -100}, {100, 100},
	}
	for _, p := range oob {
		b.Blend(p.x, p.y, Black)
		b.Set(p.x, p.y, Black)
		assert.Equal(t, Transparent, b.At(p.x, p.y))
	}
	assert.Equal(t, before, b.Pix)
}

func TestFillAndImage(t *testing.T) {
	b := NewBuffer(4, 3)
	require.Len(t, b.Pix, 4*3*4)

	b.Fill(Color{1, 0.5, 0, 1})
	img := b.Image()
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
	c := img.NRGBAAt(3, 2)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(128), c.G)
	assert.Equal(t, uint8(0), c.B)

	// the image is a copy
	img.Pix[0] = 7
	assert.Equal(t, uint8(255), b.Pix[0])
}

func TestRGBA8Clamps(t *testing.T) {
	r, g, b, a := Color{-1, 2, 0.5, 1}.RGBA8()
	assert.Equal(t, []uint8{0, 255, 128, 255}, []uint8{r, g, b, a})
}
