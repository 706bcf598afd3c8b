package texture

import (
	"image"
	"math"
)

// MaxMipLevels caps the length of a mip chain, base level included.
const MaxMipLevels = 14

// MipLevel is one image of a mip chain.
type MipLevel struct {
	Width  int
	Height int
	Texels []uint8 // RGBA interleaved, len = W*H*4
}

// Texture owns a mip chain. Levels[0] is the full-resolution base image;
// each following level halves both dimensions, rounding down, with a
// minimum of 1. A Texture is immutable once built and safe to share
// between goroutines.
type Texture struct {
	Width  int
	Height int
	Levels []MipLevel
}

// New builds a texture and its full mip chain from img.
func New(img *image.NRGBA) *Texture {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	pix := make([]uint8, w*h*4)
	for y := 0; y < h; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(pix[y*w*4:(y+1)*w*4], src[:w*4])
	}
	return FromRGBA8(w, h, pix)
}

// FromRGBA8 builds a texture from a row-major RGBA8 base image.
// pix is owned by the texture afterwards.
func FromRGBA8(w, h int, pix []uint8) *Texture {
	t := &Texture{
		Width:  w,
		Height: h,
		Levels: []MipLevel{{Width: w, Height: h, Texels: pix}},
	}
	t.GenerateMips()
	return t
}

// NewFromLevels wraps an already computed chain without filtering.
func NewFromLevels(levels []MipLevel) *Texture {
	if len(levels) == 0 {
		return &Texture{}
	}
	return &Texture{
		Width:  levels[0].Width,
		Height: levels[0].Height,
		Levels: levels,
	}
}

// NumLevels returns the length of the mip chain.
func (t *Texture) NumLevels() int {
	return len(t.Levels)
}

// GenerateMips replaces every level after the base with a freshly
// filtered chain.
//
// Each texel of level i+1 is a trapezoid-filtered footprint of level i.
// When the source dimension is even the filter is a 2-tap box. When it
// is odd the footprint grows to 3 texels so that the destination stays
// centred, with weights (1 - i/N, 1, (i+1)/N) normalised by 1/(2 + 1/N),
// N being the destination dimension.
func (t *Texture) GenerateMips() {
	if len(t.Levels) == 0 {
		return
	}
	base := t.Levels[0]
	if base.Width <= 0 || base.Height <= 0 {
		t.Levels = t.Levels[:1]
		return
	}

	numSubLevels := int(math.Log2(float64(max(base.Width, base.Height))))
	numSubLevels = min(numSubLevels, MaxMipLevels-1)

	levels := make([]MipLevel, numSubLevels+1)
	levels[0] = base

	width, height := base.Width, base.Height
	for i := 1; i <= numSubLevels; i++ {
		width = max(1, width/2)
		height = max(1, height/2)
		levels[i] = MipLevel{
			Width:  width,
			Height: height,
			Texels: make([]uint8, 4*width*height),
		}
		downsample(&levels[i-1], &levels[i])
	}
	t.Levels = levels
}

// footprint returns the filter support and the per-tap weight function
// for reducing a source dimension to dst texels.
func footprint(src, dst int) (support int, weights func(i int) [3]float64) {
	support, decimal := 2, 0.0
	if src&1 == 1 {
		support = 3
		decimal = 1 / float64(dst)
	}
	norm := 1 / (2 + decimal)
	return support, func(i int) [3]float64 {
		return [3]float64{
			norm * (1 - decimal*float64(i)),
			norm,
			norm * decimal * float64(i+1),
		}
	}
}

func downsample(prev, curr *MipLevel) {
	prevPitch := prev.Width * 4
	currPitch := curr.Width * 4

	wSupport, wWeights := footprint(prev.Width, curr.Width)
	hSupport, hWeights := footprint(prev.Height, curr.Height)

	var in, acc [4]float64

	switch {
	case curr.Height == prev.Height:
		// Reduction only in width; the level is one texel tall.
		for i := 0; i < curr.Width; i++ {
			w := wWeights(i)
			acc = [4]float64{}
			for ii := 0; ii < wSupport; ii++ {
				load(&in, prev.Texels[4*(2*i+ii):])
				accumulate(&acc, &in, w[ii])
			}
			store(curr.Texels[4*i:], &acc)
		}

	case curr.Width == prev.Width:
		// Reduction only in height; the level is one texel wide.
		for j := 0; j < curr.Height; j++ {
			h := hWeights(j)
			acc = [4]float64{}
			for jj := 0; jj < hSupport; jj++ {
				load(&in, prev.Texels[prevPitch*(2*j+jj):])
				accumulate(&acc, &in, h[jj])
			}
			store(curr.Texels[currPitch*j:], &acc)
		}

	default:
		for j := 0; j < curr.Height; j++ {
			h := hWeights(j)
			for i := 0; i < curr.Width; i++ {
				w := wWeights(i)
				acc = [4]float64{}
				for jj := 0; jj < hSupport; jj++ {
					row := prevPitch * (2*j + jj)
					for ii := 0; ii < wSupport; ii++ {
						load(&in, prev.Texels[row+4*(2*i+ii):])
						accumulate(&acc, &in, h[jj]*w[ii])
					}
				}
				store(curr.Texels[currPitch*j+4*i:], &acc)
			}
		}
	}
}

func load(dst *[4]float64, src []uint8) {
	dst[0] = float64(src[0]) / 255
	dst[1] = float64(src[1]) / 255
	dst[2] = float64(src[2]) / 255
	dst[3] = float64(src[3]) / 255
}

func accumulate(acc, in *[4]float64, w float64) {
	acc[0] += w * in[0]
	acc[1] += w * in[1]
	acc[2] += w * in[2]
	acc[3] += w * in[3]
}

func store(dst []uint8, src *[4]float64) {
	for c := 0; c < 4; c++ {
		v := math.Max(0, math.Min(1, src[c]))
		dst[c] = uint8(255*v + 0.5)
	}
}
