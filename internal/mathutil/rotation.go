package mathutil

import "math"

// Rotate returns a rotation about the origin. Angle in radians,
// positive angles turn +x towards +y.
func Rotate(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
