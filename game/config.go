package game

import "time"

// Tuning defaults. Distances are canvas pixels, speeds are pixels per tick.
const (
	// Loop
	TickRate = 60 // ticks per second, one per display frame

	// Snake
	Speed            = 4.0  // desktop speed
	MobileSpeed      = 2.5  // slower on narrow canvases
	MobileBreakpoint = 1024 // canvas width below which MobileSpeed applies
	LinkDistance     = 12.0 // max gap between consecutive segments
	SnakeSize        = 10.0 // head diameter; body is SnakeSize-2
	InitialLength    = 10
	CollisionGrace   = 10 // segments nearest the head skipped by self collision

	// Food
	FoodSize        = 8.0
	SpecialFoodSize = 16.0
	FoodMargin      = 50.0 // spawn inset from every edge
	SpecialEvery    = 5    // every Nth normal pickup spawns a special orb
	FoodScore       = 10

	// Particles
	BurstCount       = 8
	ParticleMaxSpeed = 3.0
	ParticleDecay    = 0.05

	// Render
	GridSpacing  = 40.0
	FlashPeriod  = 200 * time.Millisecond
	SpineAlpha   = 0.5
	ThemeColor   = "#00ff00"
	BGColor      = "#000000"
	GridColor    = "#003300"
	SpecialColor = "#ffffff"
	FinalColor   = "#ff0000"
	FinalLabel   = "END"
)

// Config carries the tuning a Session runs with.
type Config struct {
	Speed            float64
	MobileSpeed      float64
	MobileBreakpoint float64
	LinkDistance     float64
	SnakeSize        float64
	InitialLength    int
	CollisionGrace   int

	FoodSize        float64
	SpecialFoodSize float64
	FoodMargin      float64
	SpecialEvery    int
	FoodScore       int

	BurstCount       int
	ParticleMaxSpeed float64
	ParticleDecay    float64

	// Sections is the number of portfolio sections revealed by special orbs.
	Sections int
	// FinishOnLastSection ends the run when the last section's popup is closed.
	FinishOnLastSection bool

	// Seed for the session RNG; 0 seeds from the clock.
	Seed int64
}

// DefaultConfig returns the tuning used by the site.
func DefaultConfig() Config {
	return Config{
		Speed:            Speed,
		MobileSpeed:      MobileSpeed,
		MobileBreakpoint: MobileBreakpoint,
		LinkDistance:     LinkDistance,
		SnakeSize:        SnakeSize,
		InitialLength:    InitialLength,
		CollisionGrace:   CollisionGrace,
		FoodSize:         FoodSize,
		SpecialFoodSize:  SpecialFoodSize,
		FoodMargin:       FoodMargin,
		SpecialEvery:     SpecialEvery,
		FoodScore:        FoodScore,
		BurstCount:       BurstCount,
		ParticleMaxSpeed: ParticleMaxSpeed,
		ParticleDecay:    ParticleDecay,
		Sections:         1,
	}
}

// speedFor picks the per-tick speed for a canvas width.
func (c Config) speedFor(width float64) float64 {
	if width < c.MobileBreakpoint {
		return c.MobileSpeed
	}
	return c.Speed
}

// normalized fills zero fields with defaults so a partially built Config is usable.
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Speed <= 0 {
		c.Speed = d.Speed
	}
	if c.MobileSpeed <= 0 {
		c.MobileSpeed = d.MobileSpeed
	}
	if c.LinkDistance <= 0 {
		c.LinkDistance = d.LinkDistance
	}
	if c.SnakeSize <= 0 {
		c.SnakeSize = d.SnakeSize
	}
	if c.InitialLength <= 0 {
		c.InitialLength = d.InitialLength
	}
	if c.CollisionGrace < 0 {
		c.CollisionGrace = 0
	}
	if c.FoodSize <= 0 {
		c.FoodSize = d.FoodSize
	}
	if c.SpecialFoodSize <= 0 {
		c.SpecialFoodSize = d.SpecialFoodSize
	}
	if c.FoodMargin < 0 {
		c.FoodMargin = 0
	}
	if c.SpecialEvery <= 0 {
		c.SpecialEvery = d.SpecialEvery
	}
	if c.BurstCount < 0 {
		c.BurstCount = 0
	}
	if c.ParticleDecay <= 0 {
		c.ParticleDecay = d.ParticleDecay
	}
	if c.Sections <= 0 {
		c.Sections = 1
	}
	return c
}
