package game

import "math"

// Snake is the player's body, index 0 = head.
type Snake struct {
	Segments []Point
}

// NewSnake lays out length segments on a horizontal line with the head at head and the
// body trailing to the left, link apart.
func NewSnake(head Point, length int, link float64) Snake {
	segments := make([]Point, length)
	for i := 0; i < length; i++ {
		segments[i] = Point{
			X: head.X - float64(i)*link,
			Y: head.Y,
		}
	}
	return Snake{Segments: segments}
}

// Head returns the head segment. The snake must not be empty.
func (s *Snake) Head() Point {
	return s.Segments[0]
}

// Len returns the number of segments.
func (s *Snake) Len() int {
	return len(s.Segments)
}

// Grow appends n copies of the tail.
func (s *Snake) Grow(n int) {
	tail := s.Segments[len(s.Segments)-1]
	for i := 0; i < n; i++ {
		s.Segments = append(s.Segments, tail)
	}
}

// ResolveMovement advances the head by dir*speed and drags the body after it. Segments are
// corrected in order, each pivoting on its already-moved predecessor: a segment farther than
// link is pulled back onto the ray from the predecessor at exactly link, a closer one stays put.
// The input slice is not modified.
func ResolveMovement(segments []Point, dir Point, speed, link float64) []Point {
	out := make([]Point, len(segments))
	copy(out, segments)
	if len(out) == 0 {
		return out
	}

	out[0] = out[0].Add(dir.Scale(speed))

	for i := 1; i < len(out); i++ {
		prev := out[i-1]
		curr := out[i]
		if Distance(prev, curr) > link {
			angle := math.Atan2(curr.Y-prev.Y, curr.X-prev.X)
			out[i] = Point{
				X: prev.X + math.Cos(angle)*link,
				Y: prev.Y + math.Sin(angle)*link,
			}
		}
	}
	return out
}

// SelfCollision reports whether the head touches its own body. The grace segments nearest the
// head are never tested, and the hit radius is half the link distance.
func SelfCollision(segments []Point, grace int, link float64) bool {
	if len(segments) <= grace {
		return false
	}
	head := segments[0]
	start := grace
	if start < 1 {
		start = 1
	}
	for i := start; i < len(segments); i++ {
		if Distance(head, segments[i]) < link/2 {
			return true
		}
	}
	return false
}
