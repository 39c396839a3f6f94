package gesture

import "math"

// Point is a 2D position or displacement in absolute coordinates
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Length returns the Euclidean norm of p treated as a vector
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}
