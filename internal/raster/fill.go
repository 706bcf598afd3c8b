package raster

import (
	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/texture"
)

// Fill is the color source of a triangle. It is a closed set: Flat,
// VertexColors and TexCoords.
type Fill interface {
	isFill()
}

// Flat paints every covered sample with one color.
type Flat struct {
	Color pixel.Color
}

// VertexColors interpolates one color per vertex.
type VertexColors struct {
	A, B, C pixel.Color
}

// TexCoords interpolates one texture coordinate per vertex and samples Tex.
type TexCoords struct {
	Tex     *texture.Texture
	A, B, C mathutil.Vec2
}

func (Flat) isFill()         {}
func (VertexColors) isFill() {}
func (TexCoords) isFill()    {}

// Shade returns the color of fill at barycentric coordinates bary = (α, β).
// right and below are the barycentric coordinates one sample to the right
// and one sample down; their differences from bary stand in for the
// screen-space derivatives that drive mip level selection.
func Shade(fill Fill, bary, right, below mathutil.Vec2, psm texture.PixelSampleMethod, lsm texture.LevelSampleMethod) pixel.Color {
	switch f := fill.(type) {
	case Flat:
		return f.Color
	case VertexColors:
		alpha, beta := bary[0], bary[1]
		return f.A.Scale(alpha).Add(f.B.Scale(beta)).Add(f.C.Scale(1 - alpha - beta))
	case TexCoords:
		if f.Tex == nil {
			return pixel.White
		}
		uv := f.interp(bary)
		sp := texture.SampleParams{
			UV:  uv,
			PSM: psm,
			LSM: lsm,
		}
		ddx := f.interp(right).Sub(uv)
		ddy := f.interp(below).Sub(uv)
		sp.DU = mathutil.V2(ddx[0], ddy[0])
		sp.DV = mathutil.V2(ddx[1], ddy[1])
		return f.Tex.Sample(sp)
	}
	return pixel.Transparent
}

func (f TexCoords) interp(bary mathutil.Vec2) mathutil.Vec2 {
	alpha, beta := bary[0], bary[1]
	return f.A.Scale(alpha).Add(f.B.Scale(beta)).Add(f.C.Scale(1 - alpha - beta))
}
