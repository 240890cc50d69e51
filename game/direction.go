package game

import "fmt"

// Orthogonal unit directions. Y grows downward, as on a canvas.
var (
	Up    = Point{X: 0, Y: -1}
	Down  = Point{X: 0, Y: 1}
	Left  = Point{X: -1, Y: 0}
	Right = Point{X: 1, Y: 0}
)

// ParseDirection maps a direction name to its unit vector.
func ParseDirection(name string) (Point, error) {
	switch name {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	default:
		return Point{}, fmt.Errorf("invalid direction %q", name)
	}
}

// DirectionName is the inverse of ParseDirection; non-orthogonal vectors have no name.
func DirectionName(d Point) string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return ""
	}
}

// Heading is the two-slot direction buffer. Input writes Pending; the tick copies it into
// Committed once, so at most one turn lands per tick.
type Heading struct {
	Committed Point
	Pending   Point
}

func newHeading(d Point) Heading {
	return Heading{Committed: d, Pending: d}
}

// Request buffers a turn. Only the axis the snake is not moving on can be requested, which
// rules out reversing into the neck. The request is judged against the committed direction,
// so two requests inside one tick cannot chain into a reversal.
func (h *Heading) Request(x, y float64) bool {
	switch {
	case x != 0 && y == 0:
		if h.Committed.X != 0 {
			return false
		}
		h.Pending = Point{X: sign(x), Y: 0}
		return true
	case y != 0 && x == 0:
		if h.Committed.Y != 0 {
			return false
		}
		h.Pending = Point{X: 0, Y: sign(y)}
		return true
	default:
		return false
	}
}

// Commit promotes the pending direction.
func (h *Heading) Commit() Point {
	h.Committed = h.Pending
	return h.Committed
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
