package paint

import (
	"math"

	"github.com/gogpu/gg"
)

// Point is a position on the surface. Coordinates are not bounded; clipping
// is left to the surface.
type Point gg.Point

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point(gg.Pt(x, y))
}

// Vec returns p as a gg vector.
func (p Point) Vec() gg.Point {
	return gg.Point(p)
}

// Add returns p shifted by dx, dy.
func (p Point) Add(dx, dy float64) Point {
	return Point(p.Vec().Add(gg.Pt(dx, dy)))
}

// Polar returns the point at the given angle (radians) and distance from p.
func (p Point) Polar(angle, dist float64) Point {
	return Point(p.Vec().Add(gg.Pt(dist, 0).Rotate(angle)))
}

// Lerp interpolates between p and q; t=0 yields p, t=1 yields q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point(p.Vec().Lerp(q.Vec(), t))
}

// Dist returns the euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return p.Vec().Distance(q.Vec())
}

// Finite reports whether both coordinates are neither NaN nor infinite.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
