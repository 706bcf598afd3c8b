package mathutil

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// It acts on 2D points in homogeneous coordinates (x, y, 1).
// Value type for zero heap allocation.
type Mat3 [9]float64

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Translate returns the translation by (tx, ty).
func Translate(tx, ty float64) Mat3 {
	return Mat3{1, 0, tx, 0, 1, ty, 0, 0, 1}
}

// Scale returns the scaling by (sx, sy) about the origin.
func Scale(sx, sy float64) Mat3 {
	return Mat3{sx, 0, 0, 0, sy, 0, 0, 0, 1}
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

// Mul returns m × b.
func (m Mat3) Mul(b Mat3) Mat3 {
	return Mat3Mul(m, b)
}

// MulPoint transforms p as the homogeneous point (x, y, 1) and divides
// by the resulting w. A zero w leaves the point undivided.
func (m Mat3) MulPoint(p Vec2) Vec2 {
	x := m[0]*p[0] + m[1]*p[1] + m[2]
	y := m[3]*p[0] + m[4]*p[1] + m[5]
	w := m[6]*p[0] + m[7]*p[1] + m[8]
	if w == 0 || w == 1 {
		return Vec2{x, y}
	}
	return Vec2{x / w, y / w}
}

// Column returns column c as (x, y, w).
func (m Mat3) Column(c int) [3]float64 {
	return [3]float64{m[c], m[3+c], m[6+c]}
}

func (m Mat3) Det() float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

func (m Mat3) Inverse() Mat3 {
	d := m.Det()
	if d == 0 {
		return Mat3Identity()
	}
	invD := 1.0 / d
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invD,
		(m[2]*m[7] - m[1]*m[8]) * invD,
		(m[1]*m[5] - m[2]*m[4]) * invD,
		(m[5]*m[6] - m[3]*m[8]) * invD,
		(m[0]*m[8] - m[2]*m[6]) * invD,
		(m[2]*m[3] - m[0]*m[5]) * invD,
		(m[3]*m[7] - m[4]*m[6]) * invD,
		(m[1]*m[6] - m[0]*m[7]) * invD,
		(m[0]*m[4] - m[1]*m[3]) * invD,
	}
}
