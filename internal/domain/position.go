package domain

import "math"

// Point is a coordinate pair, in either canvas or screen space depending on
// where it came from
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for constructing a Point
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// MaxCoordinate bounds canvas positions on either axis
const MaxCoordinate = 1e7

// Snap quantizes v to the nearest lower multiple of GridSize. v is clamped
// to [-MaxCoordinate, MaxCoordinate] first; NaN snaps to 0.
func Snap(v float64) int {
	switch {
	case math.IsNaN(v):
		return 0
	case v > MaxCoordinate:
		v = MaxCoordinate
	case v < -MaxCoordinate:
		v = -MaxCoordinate
	}
	return int(math.Floor(v/GridSize)) * GridSize
}

// Rect is an axis-aligned rectangle in canvas space
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent cards never both claim a point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the midpoint of r
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}
