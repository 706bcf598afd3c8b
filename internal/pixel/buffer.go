package pixel

import "image"

// Buffer holds a render target as a flat slice for cache locality.
// Coordinates outside the buffer are ignored by every write.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewBuffer allocates a zeroed buffer. Callers clear it before use.
func NewBuffer(w, h int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// InBounds reports whether (x, y) addresses a pixel of b.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	r, g, bl, a := c.RGBA8()
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
		b.Pix[i+3] = a
	}
}

// Clear resets the buffer to opaque white.
func (b *Buffer) Clear() {
	for i := range b.Pix {
		b.Pix[i] = 255
	}
}

// At returns the color at (x, y), or Transparent when out of range.
func (b *Buffer) At(x, y int) Color {
	if !b.InBounds(x, y) {
		return Transparent
	}
	i := (y*b.Width + x) * 4
	return NewColor8(b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3])
}

// Set overwrites the pixel at (x, y) with c.
func (b *Buffer) Set(x, y int, c Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.Width + x) * 4
	b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3] = c.RGBA8()
}

// Blend composites c over the pixel at (x, y) (source-over, straight alpha):
//
//	out_rgb = src_rgb*src_a + dst_rgb*(1-src_a)
//	out_a   = 1 - (1-src_a)*(1-dst_a)
func (b *Buffer) Blend(x, y int, c Color) {
	if !b.InBounds(x, y) {
		return
	}
	i := (y*b.Width + x) * 4
	p := b.Pix[i : i+4 : i+4]
	sa := c.A
	da := float64(p[3]) / 255
	p[0] = clamp255(c.R*255*sa + (1-sa)*float64(p[0]))
	p[1] = clamp255(c.G*255*sa + (1-sa)*float64(p[1]))
	p[2] = clamp255(c.B*255*sa + (1-sa)*float64(p[2]))
	p[3] = clamp255((1 - (1-sa)*(1-da)) * 255)
}

// Image copies the buffer into a new NRGBA image.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	copy(img.Pix, b.Pix)
	return img
}
