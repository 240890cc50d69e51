package game

import "math/rand"

// FoodType distinguishes ordinary food from portfolio orbs.
type FoodType int

const (
	Normal FoodType = iota
	Special
)

func (t FoodType) String() string {
	if t == Special {
		return "SPECIAL"
	}
	return "NORMAL"
}

// Food is a collectible on the canvas.
type Food struct {
	ID       uint64
	Position Point
	Type     FoodType
}

// Spawner owns the active food set of one session.
type Spawner struct {
	Items []Food

	rng    *rand.Rand
	margin float64
	nextID uint64

	normalRadius  float64
	specialRadius float64
}

// NewSpawner creates an empty spawner. Capture radii are the rendered food size plus the
// snake size, so the larger special orb is easier to hit.
func NewSpawner(rng *rand.Rand, cfg Config) *Spawner {
	return &Spawner{
		rng:           rng,
		margin:        cfg.FoodMargin,
		normalRadius:  cfg.FoodSize + cfg.SnakeSize,
		specialRadius: cfg.SpecialFoodSize + cfg.SnakeSize,
	}
}

// Spawn places one food of type t at a random spot inside b, inset by the margin.
func (sp *Spawner) Spawn(b Bounds, t FoodType) Food {
	sp.nextID++
	f := Food{
		ID:       sp.nextID,
		Position: RandomPoint(sp.rng, b, sp.margin),
		Type:     t,
	}
	sp.Items = append(sp.Items, f)
	return f
}

// CaptureRadius returns how close the head must get to eat food of type t.
func (sp *Spawner) CaptureRadius(t FoodType) float64 {
	if t == Special {
		return sp.specialRadius
	}
	return sp.normalRadius
}

// Pickup removes and returns the first food the head is touching.
func (sp *Spawner) Pickup(head Point) (Food, bool) {
	for i, f := range sp.Items {
		if Distance(head, f.Position) < sp.CaptureRadius(f.Type) {
			sp.Items = append(sp.Items[:i], sp.Items[i+1:]...)
			return f, true
		}
	}
	return Food{}, false
}
