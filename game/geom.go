package game

import (
	"math"
	"math/rand"
)

// Point is a 2D coordinate, or an axis-aligned unit vector when used as a direction.
type Point struct {
	X float64
	Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p*k.
func (p Point) Scale(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// Distance returns the euclidean distance between two points.
func Distance(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Normalize returns p scaled to unit length, or the zero vector when p is zero.
func Normalize(p Point) Point {
	l := math.Sqrt(p.X*p.X + p.Y*p.Y)
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Bounds is the playable canvas, [0,W] x [0,H].
type Bounds struct {
	W float64
	H float64
}

// Valid reports whether the canvas has been sized.
func (b Bounds) Valid() bool {
	return b.W > 0 && b.H > 0
}

// Center returns the middle of the canvas.
func (b Bounds) Center() Point {
	return Point{X: b.W / 2, Y: b.H / 2}
}

// Wrap teleports a point that left the canvas to the opposite edge.
func (b Bounds) Wrap(p Point) Point {
	if p.X < 0 {
		p.X = b.W
	}
	if p.X > b.W {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = b.H
	}
	if p.Y > b.H {
		p.Y = 0
	}
	return p
}

// RandomPoint returns a uniformly random point inside b inset by padding on all sides.
// A padding that swallows an axis collapses that axis to its center line.
func RandomPoint(rng *rand.Rand, b Bounds, padding float64) Point {
	return Point{
		X: randomSpan(rng, b.W, padding),
		Y: randomSpan(rng, b.H, padding),
	}
}

func randomSpan(rng *rand.Rand, size, padding float64) float64 {
	span := size - padding*2
	if span <= 0 {
		return size / 2
	}
	return padding + rng.Float64()*span
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
