package game

import "math"

// Autopilot steering constants
const (
	AutopilotDangerRadius = 60.0 // body segments closer than this, dead ahead, force a turn
	AutopilotAlignSlack   = 4.0  // off-axis gap tolerated before turning toward food
)

// Autopilot steers a session the way a player would, through SetDirection only.
// Priorities: avoid body ahead, then seek food (orbs first), else keep going.
type Autopilot struct {
	settle int // ticks to wait between turns so the neck never folds onto itself
	wait   int
}

// NewAutopilot sizes the turn spacing from the session tuning: the head must clear more than
// the hit radius sideways before it may turn again.
func NewAutopilot(cfg Config) *Autopilot {
	cfg = cfg.normalized()
	settle := int(math.Ceil(cfg.LinkDistance/math.Min(cfg.Speed, cfg.MobileSpeed))) + 1
	return &Autopilot{settle: settle}
}

// Steer decides and requests at most one turn. Returns the requested direction, if any.
func (a *Autopilot) Steer(s *Session) (Point, bool) {
	if s.State() != Playing || len(s.snake.Segments) == 0 {
		return Point{}, false
	}
	if a.wait > 0 {
		a.wait--
		return Point{}, false
	}

	dir, ok := a.decide(s)
	if !ok || dir == s.heading.Committed {
		return Point{}, false
	}
	if !s.SetDirection(dir.X, dir.Y) {
		return Point{}, false
	}
	a.wait = a.settle
	return dir, true
}

func (a *Autopilot) decide(s *Session) (Point, bool) {
	head := s.snake.Head()
	cur := s.heading.Committed
	left, right := perpendiculars(cur)

	// Priority 1: body segment dead ahead.
	if a.blocked(s, head, cur) {
		lc := a.crowding(s, head, left)
		rc := a.crowding(s, head, right)
		if lc <= rc {
			return left, true
		}
		return right, true
	}

	// Priority 2: food.
	target, ok := a.target(s, head)
	if !ok {
		return Point{}, false
	}
	d := target.Sub(head)
	if cur.X != 0 {
		// Moving horizontally: turn onto the vertical axis when level with the food,
		// or when the food is behind us.
		behind := d.X*cur.X < 0
		if math.Abs(d.X) <= AutopilotAlignSlack || behind {
			if math.Abs(d.Y) > AutopilotAlignSlack {
				return Point{X: 0, Y: sign(d.Y)}, true
			}
			if behind {
				return left, true
			}
		}
		return Point{}, false
	}
	behind := d.Y*cur.Y < 0
	if math.Abs(d.Y) <= AutopilotAlignSlack || behind {
		if math.Abs(d.X) > AutopilotAlignSlack {
			return Point{X: sign(d.X), Y: 0}, true
		}
		if behind {
			return left, true
		}
	}
	return Point{}, false
}

// target prefers an orb, otherwise the nearest food.
func (a *Autopilot) target(s *Session, head Point) (Point, bool) {
	best := -1.0
	var pos Point
	for _, f := range s.food.Items {
		d := Distance(head, f.Position)
		if f.Type == Special {
			return f.Position, true
		}
		if best < 0 || d < best {
			best = d
			pos = f.Position
		}
	}
	return pos, best >= 0
}

// blocked reports whether a collidable segment lies in the corridor ahead of the head.
func (a *Autopilot) blocked(s *Session, head, dir Point) bool {
	for i := s.cfg.CollisionGrace; i < len(s.snake.Segments); i++ {
		r := s.snake.Segments[i].Sub(head)
		forward := r.X*dir.X + r.Y*dir.Y
		lateral := math.Abs(r.X*dir.Y - r.Y*dir.X)
		if forward > 0 && forward < AutopilotDangerRadius && lateral < s.cfg.LinkDistance {
			return true
		}
	}
	return false
}

// crowding counts segments within the danger radius on the dir side of the head.
func (a *Autopilot) crowding(s *Session, head, dir Point) int {
	n := 0
	for i := 1; i < len(s.snake.Segments); i++ {
		r := s.snake.Segments[i].Sub(head)
		if r.X*dir.X+r.Y*dir.Y > 0 && Distance(head, s.snake.Segments[i]) < AutopilotDangerRadius {
			n++
		}
	}
	return n
}

// perpendiculars returns the two directions at right angles to d.
func perpendiculars(d Point) (Point, Point) {
	return Point{X: d.Y, Y: -d.X}, Point{X: -d.Y, Y: d.X}
}
