package texture

import (
	"fmt"
	"math"
	"strings"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
)

// PixelSampleMethod selects how texels are read within one level.
type PixelSampleMethod uint8

const (
	PixelNearest PixelSampleMethod = iota
	PixelBilinear

	numPixelSampleMethods
)

// LevelSampleMethod selects which mip level(s) a sample reads.
type LevelSampleMethod uint8

const (
	LevelZero LevelSampleMethod = iota
	LevelNearest
	LevelLinear

	numLevelSampleMethods
)

// PixelSampleMethods and LevelSampleMethods list every method in cycle order.
var (
	PixelSampleMethods = []PixelSampleMethod{PixelNearest, PixelBilinear}
	LevelSampleMethods = []LevelSampleMethod{LevelZero, LevelNearest, LevelLinear}
)

func (m PixelSampleMethod) String() string {
	switch m {
	case PixelNearest:
		return "nearest pixel"
	case PixelBilinear:
		return "bilinear pixel interpolation"
	default:
		return "unknown"
	}
}

// Name returns the configuration spelling of m.
func (m PixelSampleMethod) Name() string {
	switch m {
	case PixelNearest:
		return "nearest"
	case PixelBilinear:
		return "bilinear"
	default:
		return "unknown"
	}
}

// Next returns the method that follows m in cycle order.
func (m PixelSampleMethod) Next() PixelSampleMethod {
	return (m + 1) % numPixelSampleMethods
}

func (m LevelSampleMethod) String() string {
	switch m {
	case LevelZero:
		return "level zero"
	case LevelNearest:
		return "nearest level"
	case LevelLinear:
		return "bilinear level interpolation"
	default:
		return "unknown"
	}
}

// Name returns the configuration spelling of m.
func (m LevelSampleMethod) Name() string {
	switch m {
	case LevelZero:
		return "zero"
	case LevelNearest:
		return "nearest"
	case LevelLinear:
		return "trilinear"
	default:
		return "unknown"
	}
}

// Next returns the method that follows m in cycle order.
func (m LevelSampleMethod) Next() LevelSampleMethod {
	return (m + 1) % numLevelSampleMethods
}

// ParsePixelSampleMethod accepts "nearest" or "bilinear".
func ParsePixelSampleMethod(s string) (PixelSampleMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nearest", "":
		return PixelNearest, nil
	case "bilinear", "linear":
		return PixelBilinear, nil
	}
	return 0, fmt.Errorf("texture: unknown pixel sample method %q", s)
}

// ParseLevelSampleMethod accepts "zero", "nearest" or "trilinear".
func ParseLevelSampleMethod(s string) (LevelSampleMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return LevelZero, nil
	case "nearest", "nearest-level":
		return LevelNearest, nil
	case "trilinear", "linear":
		return LevelLinear, nil
	}
	return 0, fmt.Errorf("texture: unknown level sample method %q", s)
}

// SampleParams describes one texture lookup.
//
// DU and DV hold the screen-space partial derivatives of u and v:
// DU = (du/dx, du/dy), DV = (dv/dx, dv/dy).
type SampleParams struct {
	UV  mathutil.Vec2
	DU  mathutil.Vec2
	DV  mathutil.Vec2
	PSM PixelSampleMethod
	LSM LevelSampleMethod
}

// outOfRange is returned for lookups that fall outside a level.
var outOfRange = pixel.White

// Sample filters the texture according to sp.PSM and sp.LSM.
func (t *Texture) Sample(sp SampleParams) pixel.Color {
	switch sp.LSM {
	case LevelNearest:
		level := int(t.clampedLevel(sp) + 0.5)
		return t.samplePixel(sp.UV, level, sp.PSM)
	case LevelLinear:
		return t.SampleTrilinear(sp.UV, t.clampedLevel(sp))
	default:
		return t.samplePixel(sp.UV, 0, sp.PSM)
	}
}

func (t *Texture) samplePixel(uv mathutil.Vec2, level int, psm PixelSampleMethod) pixel.Color {
	if psm == PixelBilinear {
		return t.SampleBilinear(uv, level)
	}
	return t.SampleNearest(uv, level)
}

// clampedLevel returns Level(sp) clamped to [0, last level].
func (t *Texture) clampedLevel(sp SampleParams) float64 {
	l := t.Level(sp)
	if math.IsNaN(l) || l < 0 {
		return 0
	}
	if last := float64(len(t.Levels) - 1); l > last {
		return math.Max(last, 0)
	}
	return l
}

// SampleTrilinear blends bilinear lookups of the two levels that bracket
// level. Integral levels read a single level.
func (t *Texture) SampleTrilinear(uv mathutil.Vec2, level float64) pixel.Color {
	lo, hi := math.Floor(level), math.Ceil(level)
	if lo == hi {
		return t.SampleBilinear(uv, int(lo))
	}
	c0 := t.SampleBilinear(uv, int(lo))
	c1 := t.SampleBilinear(uv, int(hi))
	return c0.Scale(hi - level).Add(c1.Scale(level - lo))
}

// Level estimates the mip level from the screen-space derivatives in sp.
// The result is unclamped: it is negative under magnification and may
// exceed the last level of the chain.
func (t *Texture) Level(sp SampleParams) float64 {
	w, h := float64(t.Width), float64(t.Height)
	lx := math.Hypot(sp.DU[0]*w, sp.DV[0]*w)
	ly := math.Hypot(sp.DU[1]*h, sp.DV[1]*h)
	return math.Log2(math.Max(lx, ly))
}

// level clamps l to the chain and returns the level it names.
func (t *Texture) level(l int) *MipLevel {
	if l > len(t.Levels)-1 {
		l = len(t.Levels) - 1
	}
	if l < 0 {
		l = 0
	}
	return &t.Levels[l]
}

// texelCoords denormalizes uv for lvl and reports whether the nearest
// texel lies inside it.
func texelCoords(lvl *MipLevel, uv mathutil.Vec2) (x, y float64, ix, iy int, ok bool) {
	x = uv[0] * float64(lvl.Width)
	y = uv[1] * float64(lvl.Height)
	ix = int(x + 0.5)
	iy = int(y + 0.5)
	ok = ix >= 0 && ix < lvl.Width && iy >= 0 && iy < lvl.Height
	return x, y, ix, iy, ok
}

// SampleNearest returns the texel nearest to uv in the given level, or
// opaque white when uv falls outside it. Levels past the end of the chain
// read the last level.
func (t *Texture) SampleNearest(uv mathutil.Vec2, level int) pixel.Color {
	if len(t.Levels) == 0 {
		return outOfRange
	}
	lvl := t.level(level)
	_, _, ix, iy, ok := texelCoords(lvl, uv)
	if !ok {
		return outOfRange
	}
	i := 4 * (ix + iy*lvl.Width)
	p := lvl.Texels[i : i+4 : i+4]
	return pixel.NewColor8(p[0], p[1], p[2], p[3])
}

// SampleBilinear interpolates the four texels around uv in the given
// level, or returns opaque white when uv falls outside it.
func (t *Texture) SampleBilinear(uv mathutil.Vec2, level int) pixel.Color {
	if len(t.Levels) == 0 {
		return outOfRange
	}
	lvl := t.level(level)
	x, y, _, _, ok := texelCoords(lvl, uv)
	if !ok {
		return outOfRange
	}

	fx, fy := math.Floor(x), math.Floor(y)
	x0 := clampIndex(int(fx), lvl.Width)
	x1 := clampIndex(int(math.Ceil(x)), lvl.Width)
	y0 := clampIndex(int(fy), lvl.Height)
	y1 := clampIndex(int(math.Ceil(y)), lvl.Height)
	dx := x - fx
	dy := y - fy

	pitch := lvl.Width * 4
	tex := lvl.Texels
	i00 := y0*pitch + x0*4
	i10 := y0*pitch + x1*4
	i01 := y1*pitch + x0*4
	i11 := y1*pitch + x1*4

	var out [4]float64
	for c := 0; c < 4; c++ {
		bottom := float64(tex[i00+c]) + dx*(float64(tex[i10+c])-float64(tex[i00+c]))
		top := float64(tex[i01+c]) + dx*(float64(tex[i11+c])-float64(tex[i01+c]))
		out[c] = (bottom + dy*(top-bottom)) / 255
	}
	return pixel.Color{R: out[0], G: out[1], B: out[2], A: out[3]}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
