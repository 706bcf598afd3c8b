package scene

import "softraster/internal/mathutil"

// Triangulate splits a simple polygon into triangles by ear clipping and
// returns them as consecutive vertex triples. Either winding is accepted.
// Fewer than three points, or a polygon with no remaining ear (self
// intersecting or fully collinear), yields whatever was clipped so far.
func Triangulate(points []mathutil.Vec2) []mathutil.Vec2 {
	n := len(points)
	if n < 3 {
		return nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	orient := 1.0
	if signedArea(points) < 0 {
		orient = -1
	}

	out := make([]mathutil.Vec2, 0, 3*(n-2))
	for len(idx) > 3 {
		ear := -1
		for i := range idx {
			prev := idx[(i+len(idx)-1)%len(idx)]
			curr := idx[i]
			next := idx[(i+1)%len(idx)]
			if isEar(points, idx, prev, curr, next, orient) {
				ear = i
				break
			}
		}
		if ear < 0 {
			return out
		}
		prev := idx[(ear+len(idx)-1)%len(idx)]
		next := idx[(ear+1)%len(idx)]
		out = append(out, points[prev], points[idx[ear]], points[next])
		idx = append(idx[:ear], idx[ear+1:]...)
	}
	return append(out, points[idx[0]], points[idx[1]], points[idx[2]])
}

func signedArea(points []mathutil.Vec2) float64 {
	var a float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		a += p.Cross(q)
	}
	return a / 2
}

func isEar(points []mathutil.Vec2, idx []int, prev, curr, next int, orient float64) bool {
	a, b, c := points[prev], points[curr], points[next]
	if orient*b.Sub(a).Cross(c.Sub(b)) <= 0 {
		return false
	}
	for _, j := range idx {
		if j == prev || j == curr || j == next {
			continue
		}
		if inTriangle(points[j], a, b, c, orient) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c mathutil.Vec2, orient float64) bool {
	d0 := orient * b.Sub(a).Cross(p.Sub(a))
	d1 := orient * c.Sub(b).Cross(p.Sub(b))
	d2 := orient * a.Sub(c).Cross(p.Sub(c))
	return d0 >= 0 && d1 >= 0 && d2 >= 0
}
