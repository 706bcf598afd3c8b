package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

type call struct {
	kind  string
	pts   []mathutil.Vec2
	color pixel.Color
	fill  raster.Fill
}

type recorder struct {
	calls []call
}

func (r *recorder) DrawPoint(p mathutil.Vec2, c pixel.Color) {
	r.calls = append(r.calls, call{kind: "point", pts: []mathutil.Vec2{p}, color: c})
}

func (r *recorder) DrawLine(a, b mathutil.Vec2, c pixel.Color) {
	r.calls = append(r.calls, call{kind: "line", pts: []mathutil.Vec2{a, b}, color: c})
}

func (r *recorder) DrawTriangle(a, b, c mathutil.Vec2, fill raster.Fill) {
	r.calls = append(r.calls, call{kind: "triangle", pts: []mathutil.Vec2{a, b, c}, fill: fill})
}

func (r *recorder) kinds() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.kind
	}
	return out
}

func assertVec(t *testing.T, want, got mathutil.Vec2) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-9)
	assert.InDelta(t, want[1], got[1], 1e-9)
}

func TestDrawGroupComposesTransforms(t *testing.T) {
	g := &Group{
		Transform: mathutil.Translate(10, 0),
		Children: []Shape{
			&Point{
				Transform: mathutil.Scale(2, 2),
				Position:  mathutil.V2(1, 1),
				Style:     Style{Fill: pixel.Black},
			},
		},
	}
	var r recorder
	Draw(&r, g, mathutil.Translate(0, 5))

	require.Len(t, r.calls, 1)
	assertVec(t, mathutil.V2(12, 7), r.calls[0].pts[0])
	assert.Equal(t, pixel.Black, r.calls[0].color)
}

func TestDrawZeroTransformIsIdentity(t *testing.T) {
	var r recorder
	Draw(&r, &Line{From: mathutil.V2(1, 2), To: mathutil.V2(3, 4)}, mathutil.Mat3Identity())

	require.Len(t, r.calls, 1)
	assertVec(t, mathutil.V2(1, 2), r.calls[0].pts[0])
	assertVec(t, mathutil.V2(3, 4), r.calls[0].pts[1])
}

func TestDrawRect(t *testing.T) {
	rect := &Rect{
		Position: mathutil.V2(0, 0),
		Size:     mathutil.V2(4, 2),
		Style:    Style{Fill: pixel.White, Stroke: pixel.Black},
	}
	var r recorder
	Draw(&r, rect, mathutil.Mat3Identity())

	assert.Equal(t, []string{"triangle", "triangle", "line", "line", "line", "line"}, r.kinds())
	assert.Equal(t, raster.Flat{Color: pixel.White}, r.calls[0].fill)
	for _, c := range r.calls[2:] {
		assert.Equal(t, pixel.Black, c.color)
	}
}

func TestDrawRectTransparentParts(t *testing.T) {
	var r recorder
	Draw(&r, &Rect{Size: mathutil.V2(1, 1), Style: Style{Stroke: pixel.Black}}, mathutil.Mat3Identity())
	assert.Equal(t, []string{"line", "line", "line", "line"}, r.kinds())

	r = recorder{}
	Draw(&r, &Rect{Size: mathutil.V2(1, 1)}, mathutil.Mat3Identity())
	assert.Empty(t, r.calls)
}

func TestDrawPolylineIsOpen(t *testing.T) {
	pl := &Polyline{
		Points: []mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(1, 0), mathutil.V2(1, 1)},
		Style:  Style{Stroke: pixel.Black},
	}
	var r recorder
	Draw(&r, pl, mathutil.Mat3Identity())
	assert.Equal(t, []string{"line", "line"}, r.kinds())
}

func TestDrawPolygonFillsAndCloses(t *testing.T) {
	pg := &Polygon{
		Points: []mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(4, 0), mathutil.V2(4, 4), mathutil.V2(0, 4)},
		Style:  Style{Fill: pixel.White, Stroke: pixel.Black},
	}
	var r recorder
	Draw(&r, pg, mathutil.Mat3Identity())
	assert.Equal(t, []string{"triangle", "triangle", "line", "line", "line", "line"}, r.kinds())

	last := r.calls[len(r.calls)-1]
	assertVec(t, mathutil.V2(0, 4), last.pts[0])
	assertVec(t, mathutil.V2(0, 0), last.pts[1])
}

func TestDrawTrianglePassesFill(t *testing.T) {
	fill := raster.VertexColors{A: pixel.Black, B: pixel.White, C: pixel.Black}
	var r recorder
	Draw(&r, &Triangle{A: mathutil.V2(0, 0), B: mathutil.V2(1, 0), C: mathutil.V2(0, 1), Fill: fill},
		mathutil.Translate(1, 1))

	require.Len(t, r.calls, 1)
	assert.Equal(t, fill, r.calls[0].fill)
	assertVec(t, mathutil.V2(2, 1), r.calls[0].pts[1])
}

func TestDrawImageCoversBox(t *testing.T) {
	level := texture.MipLevel{Width: 1, Height: 1, Texels: []uint8{10, 20, 30, 255}}
	img := &Image{
		Position: mathutil.V2(2, 3),
		Size:     mathutil.V2(2, 1),
		Tex:      texture.NewFromLevels([]texture.MipLevel{level}),
	}
	var r recorder
	Draw(&r, img, mathutil.Mat3Identity())

	// x in 2..4, y in 3..4
	require.Len(t, r.calls, 6)
	assertVec(t, mathutil.V2(2, 3), r.calls[0].pts[0])
	r8, g8, b8, _ := r.calls[0].color.RGBA8()
	assert.Equal(t, []uint8{10, 20, 30}, []uint8{r8, g8, b8})
}

func TestDrawImageWithoutTexture(t *testing.T) {
	var r recorder
	Draw(&r, &Image{Size: mathutil.V2(4, 4)}, mathutil.Mat3Identity())
	assert.Empty(t, r.calls)
}

func triangleArea(tris []mathutil.Vec2) float64 {
	var sum float64
	for i := 0; i+2 < len(tris); i += 3 {
		sum += math.Abs(tris[i+1].Sub(tris[i]).Cross(tris[i+2].Sub(tris[i]))) / 2
	}
	return sum
}

func TestTriangulate(t *testing.T) {
	tests := []struct {
		name   string
		points []mathutil.Vec2
		tris   int
		area   float64
	}{
		{
			name:   "square ccw",
			points: []mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(2, 0), mathutil.V2(2, 2), mathutil.V2(0, 2)},
			tris:   2,
			area:   4,
		},
		{
			name:   "square cw",
			points: []mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(0, 2), mathutil.V2(2, 2), mathutil.V2(2, 0)},
			tris:   2,
			area:   4,
		},
		{
			name: "concave L",
			points: []mathutil.Vec2{
				mathutil.V2(0, 0), mathutil.V2(4, 0), mathutil.V2(4, 1),
				mathutil.V2(1, 1), mathutil.V2(1, 4), mathutil.V2(0, 4),
			},
			tris: 4,
			area: 7,
		},
		{
			name:   "triangle",
			points: []mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(3, 0), mathutil.V2(0, 3)},
			tris:   1,
			area:   4.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tris := Triangulate(tt.points)
			require.Len(t, tris, 3*tt.tris)
			assert.InDelta(t, tt.area, triangleArea(tris), 1e-9)
		})
	}
}

func TestTriangulateStar(t *testing.T) {
	pts := star(mathutil.V2(0, 0), 10, 4, 5)
	tris := Triangulate(pts)
	require.Len(t, tris, 3*(len(pts)-2))
	assert.InDelta(t, math.Abs(signedArea(pts)), triangleArea(tris), 1e-9)
}

func TestTriangulateTooFewPoints(t *testing.T) {
	assert.Nil(t, Triangulate([]mathutil.Vec2{mathutil.V2(0, 0), mathutil.V2(1, 1)}))
}

func TestViewInitFramesDocument(t *testing.T) {
	v := NewView(100, 50)

	x, y, span := v.Center()
	assert.InDelta(t, 50, x, 1e-9)
	assert.InDelta(t, 25, y, 1e-9)
	assert.InDelta(t, 60, span, 1e-9)

	assertVec(t, mathutil.V2(0.5, 0.5), v.NDC().MulPoint(mathutil.V2(50, 25)))
	assertVec(t, mathutil.V2(0, 0), v.NDC().MulPoint(mathutil.V2(-10, -35)))
}

func TestViewMovePreservesCenterWithoutZoom(t *testing.T) {
	v := NewView(100, 100)
	v.Move(10, 0, 1)

	x, y, span := v.Center()
	assert.InDelta(t, 40, x, 1e-9)
	assert.InDelta(t, 50, y, 1e-9)
	assert.InDelta(t, 60, span, 1e-9)
}

func TestViewScrollClamps(t *testing.T) {
	v := NewView(100, 100)
	before := v.NDC()
	v.Scroll(0, 100)
	after := v.NDC()
	assert.InDelta(t, before[8]*1.5, after[8], 1e-9)

	v.Init()
	v.Scroll(0, -100)
	assert.InDelta(t, before[8]*0.5, v.NDC()[8], 1e-9)
}

func TestViewPanIgnoresEmptyScreen(t *testing.T) {
	v := NewView(100, 100)
	before := v.NDC()
	v.Pan(5, 5, 0, 0)
	assert.Equal(t, before, v.NDC())
}

func TestScreenTransformCentersSquare(t *testing.T) {
	v := NewView(100, 100)
	m := v.ScreenTransform(200, 100)

	assertVec(t, mathutil.V2(100, 50), m.MulPoint(mathutil.V2(50, 50)))
	// the NDC square occupies x in [50, 150]
	assertVec(t, mathutil.V2(50, 0), NDCToScreen(200, 100).MulPoint(mathutil.V2(0, 0)))
	assertVec(t, mathutil.V2(150, 100), NDCToScreen(200, 100).MulPoint(mathutil.V2(1, 1)))
}

func TestTestPattern(t *testing.T) {
	doc := TestPattern(nil)
	assert.Equal(t, 100.0, doc.Width)
	for _, s := range doc.Children {
		if tri, ok := s.(*Triangle); ok {
			_, textured := tri.Fill.(raster.TexCoords)
			assert.False(t, textured)
		}
	}

	level := texture.MipLevel{Width: 1, Height: 1, Texels: []uint8{0, 0, 0, 255}}
	withTex := TestPattern(texture.NewFromLevels([]texture.MipLevel{level}))
	assert.Len(t, withTex.Children, len(doc.Children)+3)

	var r recorder
	withTex.Draw(&r, mathutil.Mat3Identity())
	assert.NotEmpty(t, r.calls)
}
