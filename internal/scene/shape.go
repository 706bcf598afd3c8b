// Package scene holds a document of nested shapes and draws it onto a
// Canvas. Shapes form a single-owner tree: a Group owns its children in
// draw order.
package scene

import (
	"math"

	"softraster/internal/mathutil"
	"softraster/internal/pixel"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

// Canvas receives screen-space draw calls.
type Canvas interface {
	DrawPoint(p mathutil.Vec2, c pixel.Color)
	DrawLine(a, b mathutil.Vec2, c pixel.Color)
	DrawTriangle(a, b, c mathutil.Vec2, fill raster.Fill)
}

// Shape is one of *Group, *Point, *Line, *Polyline, *Rect, *Polygon,
// *Triangle or *Image.
//
// Every shape carries a local Transform applied before its parent's. The
// zero matrix stands for the identity so literals can leave it out.
type Shape interface {
	isShape()
}

// Style holds fill and stroke colors. A color with zero alpha disables
// that part of the shape.
type Style struct {
	Fill   pixel.Color
	Stroke pixel.Color
}

type Group struct {
	Transform mathutil.Mat3
	Children  []Shape
}

// Point is drawn with its fill color.
type Point struct {
	Transform mathutil.Mat3
	Position  mathutil.Vec2
	Style     Style
}

// Line is drawn with its stroke color.
type Line struct {
	Transform mathutil.Mat3
	From, To  mathutil.Vec2
	Style     Style
}

// Polyline is an open chain of segments drawn with the stroke color.
type Polyline struct {
	Transform mathutil.Mat3
	Points    []mathutil.Vec2
	Style     Style
}

type Rect struct {
	Transform mathutil.Mat3
	Position  mathutil.Vec2
	Size      mathutil.Vec2
	Style     Style
}

// Polygon is a closed simple polygon; its fill is triangulated.
type Polygon struct {
	Transform mathutil.Mat3
	Points    []mathutil.Vec2
	Style     Style
}

// Triangle is filled by Fill: flat, per-vertex colors or texture
// coordinates.
type Triangle struct {
	Transform mathutil.Mat3
	A, B, C   mathutil.Vec2
	Fill      raster.Fill
}

// Image blits level 0 of Tex, bilinearly filtered, over the box
// Position..Position+Size, one screen pixel at a time.
type Image struct {
	Transform mathutil.Mat3
	Position  mathutil.Vec2
	Size      mathutil.Vec2
	Tex       *texture.Texture
}

func (*Group) isShape()    {}
func (*Point) isShape()    {}
func (*Line) isShape()     {}
func (*Polyline) isShape() {}
func (*Rect) isShape()     {}
func (*Polygon) isShape()  {}
func (*Triangle) isShape() {}
func (*Image) isShape()    {}

func local(m mathutil.Mat3) mathutil.Mat3 {
	if m == (mathutil.Mat3{}) {
		return mathutil.Mat3Identity()
	}
	return m
}

// Draw draws s under the parent transform m.
func Draw(c Canvas, s Shape, m mathutil.Mat3) {
	switch s := s.(type) {
	case *Group:
		m = m.Mul(local(s.Transform))
		for _, child := range s.Children {
			Draw(c, child, m)
		}

	case *Point:
		m = m.Mul(local(s.Transform))
		c.DrawPoint(m.MulPoint(s.Position), s.Style.Fill)

	case *Line:
		m = m.Mul(local(s.Transform))
		c.DrawLine(m.MulPoint(s.From), m.MulPoint(s.To), s.Style.Stroke)

	case *Polyline:
		if s.Style.Stroke.A == 0 {
			return
		}
		m = m.Mul(local(s.Transform))
		for i := 0; i+1 < len(s.Points); i++ {
			c.DrawLine(m.MulPoint(s.Points[i]), m.MulPoint(s.Points[i+1]), s.Style.Stroke)
		}

	case *Rect:
		m = m.Mul(local(s.Transform))
		x, y := s.Position[0], s.Position[1]
		w, h := s.Size[0], s.Size[1]
		p0 := m.MulPoint(mathutil.V2(x, y))
		p1 := m.MulPoint(mathutil.V2(x+w, y))
		p2 := m.MulPoint(mathutil.V2(x, y+h))
		p3 := m.MulPoint(mathutil.V2(x+w, y+h))

		if s.Style.Fill.A != 0 {
			fill := raster.Flat{Color: s.Style.Fill}
			c.DrawTriangle(p0, p1, p2, fill)
			c.DrawTriangle(p2, p1, p3, fill)
		}
		if s.Style.Stroke.A != 0 {
			c.DrawLine(p0, p1, s.Style.Stroke)
			c.DrawLine(p1, p3, s.Style.Stroke)
			c.DrawLine(p3, p2, s.Style.Stroke)
			c.DrawLine(p2, p0, s.Style.Stroke)
		}

	case *Polygon:
		m = m.Mul(local(s.Transform))
		if s.Style.Fill.A != 0 {
			tris := Triangulate(s.Points)
			fill := raster.Flat{Color: s.Style.Fill}
			for i := 0; i+2 < len(tris); i += 3 {
				c.DrawTriangle(m.MulPoint(tris[i]), m.MulPoint(tris[i+1]), m.MulPoint(tris[i+2]), fill)
			}
		}
		if s.Style.Stroke.A != 0 {
			n := len(s.Points)
			for i := 0; i < n; i++ {
				c.DrawLine(m.MulPoint(s.Points[i]), m.MulPoint(s.Points[(i+1)%n]), s.Style.Stroke)
			}
		}

	case *Triangle:
		m = m.Mul(local(s.Transform))
		c.DrawTriangle(m.MulPoint(s.A), m.MulPoint(s.B), m.MulPoint(s.C), s.Fill)

	case *Image:
		if s.Tex == nil {
			return
		}
		m = m.Mul(local(s.Transform))
		drawImage(c, s.Tex, m.MulPoint(s.Position), m.MulPoint(s.Position.Add(s.Size)))
	}
}

func drawImage(c Canvas, tex *texture.Texture, p0, p1 mathutil.Vec2) {
	spanX := p1[0] - p0[0] + 1
	spanY := p1[1] - p0[1] + 1
	for x := math.Floor(p0[0]); x <= math.Floor(p1[0]); x++ {
		for y := math.Floor(p0[1]); y <= math.Floor(p1[1]); y++ {
			uv := mathutil.V2((x+0.5-p0[0])/spanX, (y+0.5-p0[1])/spanY)
			c.DrawPoint(mathutil.V2(x, y), tex.SampleBilinear(uv, 0))
		}
	}
}

// Document is the root of a scene: a canvas size in document units and
// the top-level shapes in draw order.
type Document struct {
	Width    float64
	Height   float64
	Children []Shape
}

// Draw draws every top-level shape of d under m.
func (d *Document) Draw(c Canvas, m mathutil.Mat3) {
	for _, s := range d.Children {
		Draw(c, s, m)
	}
}
