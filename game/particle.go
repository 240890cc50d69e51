package game

import (
	"math"
	"math/rand"
)

// Particle is a cosmetic spark; it has no effect on play.
type Particle struct {
	Position Point
	Velocity Point
	Life     float64 // 1 at birth, removed at <= 0
}

// Particles manages the bursts spawned on pickups.
type Particles struct {
	Items []Particle

	rng      *rand.Rand
	count    int
	maxSpeed float64
	decay    float64
}

// NewParticles creates an empty particle set.
func NewParticles(rng *rand.Rand, cfg Config) *Particles {
	return &Particles{
		Items:    make([]Particle, 0, cfg.BurstCount*4),
		rng:      rng,
		count:    cfg.BurstCount,
		maxSpeed: cfg.ParticleMaxSpeed,
		decay:    cfg.ParticleDecay,
	}
}

// Burst emits a radial spray at p, each spark with a random heading and speed.
func (ps *Particles) Burst(p Point) {
	for i := 0; i < ps.count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		speed := ps.rng.Float64() * ps.maxSpeed
		ps.Items = append(ps.Items, Particle{
			Position: p,
			Velocity: Point{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:     1.0,
		})
	}
}

// Update moves every particle, ages it, and compacts out the dead ones in place.
func (ps *Particles) Update() {
	alive := 0
	for i := range ps.Items {
		p := ps.Items[i]
		p.Position = p.Position.Add(p.Velocity)
		p.Life -= ps.decay
		if p.Life <= 0 {
			continue
		}
		ps.Items[alive] = p
		alive++
	}
	ps.Items = ps.Items[:alive]
}
