package scene

import (
	"math"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

// TestPattern builds a 100 x 100 document that exercises every shape
// kind: thin fans and slivers for aliasing, a concave polygon, per-vertex
// colors and, when tex is non-nil, a textured quad whose texture
// coordinates shrink towards the top so the level of detail varies
// across it.
func TestPattern(tex *texture.Texture) *Document {
	gray := pixel.NewColor8(0xdd, 0xdd, 0xdd, 0xff)
	red := pixel.NewColor8(0xe0, 0x20, 0x20, 0xff)
	blue := pixel.NewColor8(0x20, 0x40, 0xd0, 0xff)
	green := pixel.NewColor8(0x20, 0xa0, 0x40, 0xff)

	doc := &Document{Width: 100, Height: 100}
	doc.Children = append(doc.Children,
		&Rect{
			Position: mathutil.V2(0, 0),
			Size:     mathutil.V2(100, 100),
			Style:    Style{Fill: gray},
		},
		fan(mathutil.V2(25, 25), 22, 24),
		&Triangle{
			A:    mathutil.V2(55, 5),
			B:    mathutil.V2(95, 8),
			C:    mathutil.V2(58, 12),
			Fill: raster.Flat{Color: red},
		},
		&Group{
			Transform: mathutil.Translate(75, 30).Mul(mathutil.Rotate(mathutil.Deg2Rad(30))),
			Children: []Shape{&Triangle{
				A:    mathutil.V2(-15, 10),
				B:    mathutil.V2(15, 10),
				C:    mathutil.V2(0, -15),
				Fill: raster.VertexColors{
					A: pixel.Color{R: 1, A: 1},
					B: pixel.Color{G: 1, A: 1},
					C: pixel.Color{B: 1, A: 1},
				},
			}},
		},
		&Polygon{
			Points: star(mathutil.V2(25, 75), 20, 8, 5),
			Style:  Style{Fill: blue, Stroke: pixel.Black},
		},
		&Polyline{
			Points: zigzag(mathutil.V2(5, 52), 90, 4, 10),
			Style:  Style{Stroke: green},
		},
	)
	for i := 0; i < 10; i++ {
		doc.Children = append(doc.Children, &Point{
			Position: mathutil.V2(5+float64(i)*10, 97),
			Style:    Style{Fill: pixel.Black},
		})
	}

	if tex != nil {
		// the far edge is narrower than the near one, so screen-space
		// uv derivatives grow towards the top
		a, b := mathutil.V2(55, 95), mathutil.V2(95, 95)
		c, d := mathutil.V2(70, 60), mathutil.V2(80, 60)
		doc.Children = append(doc.Children,
			&Triangle{A: a, B: b, C: c, Fill: raster.TexCoords{
				Tex: tex, A: mathutil.V2(0, 1), B: mathutil.V2(1, 1), C: mathutil.V2(0, 0),
			}},
			&Triangle{A: c, B: b, C: d, Fill: raster.TexCoords{
				Tex: tex, A: mathutil.V2(0, 0), B: mathutil.V2(1, 1), C: mathutil.V2(1, 0),
			}},
			&Image{Position: mathutil.V2(85, 40), Size: mathutil.V2(12, 12), Tex: tex},
		)
	}
	return doc
}

// fan returns a group of n lines radiating from center over a quarter
// turn.
func fan(center mathutil.Vec2, radius float64, n int) *Group {
	g := &Group{}
	for i := 0; i < n; i++ {
		a := float64(i) / float64(n-1) * math.Pi / 2
		end := center.Add(mathutil.V2(math.Cos(a), math.Sin(a)).Scale(radius))
		g.Children = append(g.Children, &Line{
			From:  center,
			To:    end,
			Style: Style{Stroke: pixel.Black},
		})
	}
	return g
}

func star(center mathutil.Vec2, outer, inner float64, points int) []mathutil.Vec2 {
	out := make([]mathutil.Vec2, 0, 2*points)
	for i := 0; i < 2*points; i++ {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		a := float64(i)*math.Pi/float64(points) - math.Pi/2
		out = append(out, center.Add(mathutil.V2(math.Cos(a), math.Sin(a)).Scale(r)))
	}
	return out
}

func zigzag(start mathutil.Vec2, width, height float64, teeth int) []mathutil.Vec2 {
	out := make([]mathutil.Vec2, 0, teeth+1)
	for i := 0; i <= teeth; i++ {
		y := start[1]
		if i%2 == 1 {
			y += height
		}
		out = append(out, mathutil.V2(start[0]+width*float64(i)/float64(teeth), y))
	}
	return out
}
