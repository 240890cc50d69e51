package game

import "time"

// Frame is the fully resolved picture of one tick, in paint order: background, grid,
// particles, food, body, spine. Renderers only draw it; every styling decision is made here.
type Frame struct {
	Step       uint64
	Bounds     Bounds
	Status     Status
	Background string
	Grid       Grid
	Particles  []Spark
	Foods      []Orb
	Body       []Disc
	Spine      Spine
}

// Grid is the dotted backdrop.
type Grid struct {
	Spacing float64
	Color   string
}

// Spark is a particle as drawn: a 2px square with opacity equal to its life.
type Spark struct {
	Position Point
	Alpha    float64
	Color    string
}

// Orb is a food item as drawn.
type Orb struct {
	ID        uint64
	Type      FoodType
	Position  Point
	Radius    float64
	Color     string
	Glow      float64
	GlowColor string
	Label     string // only on the final orb
	Final     bool
}

// Disc is one snake segment.
type Disc struct {
	Position Point
	Radius   float64
}

// Spine is the faint line threaded through the body.
type Spine struct {
	Points []Point
	Color  string
	Alpha  float64
}

// Frame renders the session without mutating it. now drives the final orb's flashing.
// Called every tick in every state so the frozen scene stays visible behind overlays.
func (s *Session) Frame(now time.Time) Frame {
	st := s.Status()
	f := Frame{
		Step:       s.steps,
		Bounds:     s.bounds,
		Status:     st,
		Background: BGColor,
		Grid:       Grid{Spacing: GridSpacing, Color: GridColor},
		Particles:  make([]Spark, 0, len(s.particles.Items)),
		Foods:      make([]Orb, 0, len(s.food.Items)),
		Body:       make([]Disc, 0, s.snake.Len()),
		Spine:      Spine{Color: ThemeColor, Alpha: SpineAlpha},
	}

	for _, p := range s.particles.Items {
		f.Particles = append(f.Particles, Spark{
			Position: p.Position,
			Alpha:    clamp(p.Life, 0, 1),
			Color:    ThemeColor,
		})
	}

	flash := flashOn(now)
	for _, food := range s.food.Items {
		f.Foods = append(f.Foods, s.orb(food, st.LastSection, flash))
	}

	for i, seg := range s.snake.Segments {
		size := s.cfg.SnakeSize
		if i > 0 {
			size -= 2
		}
		f.Body = append(f.Body, Disc{Position: seg, Radius: size / 2})
	}
	if s.snake.Len() > 0 {
		f.Spine.Points = s.Segments()
	}
	return f
}

func (s *Session) orb(food Food, last, flash bool) Orb {
	o := Orb{ID: food.ID, Type: food.Type, Position: food.Position}
	switch {
	case food.Type == Special && last:
		o.Final = true
		o.Radius = s.cfg.SpecialFoodSize / 2
		o.Color = SpecialColor
		if flash {
			o.Color = FinalColor
		}
		o.Glow = 20
		o.GlowColor = FinalColor
		o.Label = FinalLabel
	case food.Type == Special:
		o.Radius = s.cfg.SpecialFoodSize / 2
		o.Color = SpecialColor
		o.Glow = 15
		o.GlowColor = ThemeColor
	default:
		o.Radius = s.cfg.FoodSize / 2
		o.Color = ThemeColor
		o.Glow = 5
		o.GlowColor = ThemeColor
	}
	return o
}

// flashOn alternates every FlashPeriod.
func flashOn(now time.Time) bool {
	return (now.UnixMilli()/FlashPeriod.Milliseconds())%2 == 0
}
