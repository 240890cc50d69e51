package game

import (
	"errors"
	"math/rand"
	"time"
)

// State is the screen the run is on.
type State int

const (
	Menu State = iota
	Playing
	Popup
	GameOver
)

func (s State) String() string {
	switch s {
	case Playing:
		return "PLAYING"
	case Popup:
		return "POPUP"
	case GameOver:
		return "GAME_OVER"
	default:
		return "MENU"
	}
}

// MarshalText lets State travel as its name in JSON.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ErrBadTransition is returned when an action is not valid in the current state.
var ErrBadTransition = errors.New("game: transition not allowed in current state")

// Status is what the overlay layer needs to draw itself.
type Status struct {
	State       State `json:"state"`
	Score       int   `json:"score"`
	FoodsEaten  int   `json:"eaten"`
	Section     int   `json:"section"`
	Sections    int   `json:"sections"`
	LastSection bool  `json:"last"`
}

// EventKind classifies session events.
type EventKind int

const (
	EventState EventKind = iota // From -> To transition
	EventEat                    // Food was eaten
)

// Event is emitted by the session and drained by whoever drives it.
type Event struct {
	Kind   EventKind
	From   State
	To     State
	Food   Food
	Status Status
}

// Session is one player's game: the state machine plus every piece of mutable play state.
// It is not safe for concurrent use; Loop serializes access.
type Session struct {
	cfg    Config
	rng    *rand.Rand
	bounds Bounds

	state   State
	score   int
	eaten   int
	section int
	steps   uint64

	snake     Snake
	heading   Heading
	food      *Spawner
	particles *Particles

	events []Event
}

// NewSession creates a session sitting on the menu. It has no canvas until Resize is called.
func NewSession(cfg Config) *Session {
	cfg = cfg.normalized()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
	s.reinit()
	return s
}

// reinit rebuilds snake, heading, food and particles from scratch for the current bounds.
// Without a sized canvas the snake stays empty and ticks are skipped.
func (s *Session) reinit() {
	s.heading = newHeading(Right)
	s.food = NewSpawner(s.rng, s.cfg)
	s.particles = NewParticles(s.rng, s.cfg)
	s.snake = Snake{}
	if !s.bounds.Valid() {
		return
	}
	s.snake = NewSnake(s.bounds.Center(), s.cfg.InitialLength, s.cfg.LinkDistance)
	s.food.Spawn(s.bounds, Normal)
}

// Resize updates the canvas. Play state is rebuilt only on the menu or when no snake exists
// yet; a run in progress keeps its snake and only sees the new bounds.
func (s *Session) Resize(w, h float64) {
	s.bounds = Bounds{W: w, H: h}
	if s.state == Menu || s.snake.Len() == 0 {
		s.reinit()
	}
}

// Start begins a new run from the menu or the game-over screen. Every counter and
// container is rebuilt.
func (s *Session) Start() error {
	if s.state != Menu && s.state != GameOver {
		return ErrBadTransition
	}
	s.score = 0
	s.eaten = 0
	s.section = 0
	s.steps = 0
	s.reinit()
	s.setState(Playing)
	return nil
}

// Resume closes the portfolio popup and advances to the next section, wrapping at the end.
func (s *Session) Resume() error {
	if s.state != Popup {
		return ErrBadTransition
	}
	wasLast := s.lastSection()
	s.section = (s.section + 1) % s.cfg.Sections
	if wasLast && s.cfg.FinishOnLastSection {
		s.setState(GameOver)
		return nil
	}
	s.setState(Playing)
	return nil
}

// SetDirection is the single entry point for keyboard and on-screen controls.
func (s *Session) SetDirection(x, y float64) bool {
	if s.state != Playing {
		return false
	}
	return s.heading.Request(x, y)
}

// Tick advances the simulation one step. Outside PLAYING, or before the canvas is sized,
// nothing changes.
func (s *Session) Tick() {
	if s.state != Playing || !s.bounds.Valid() || s.snake.Len() == 0 {
		return
	}
	s.steps++

	dir := s.heading.Commit()
	segments := ResolveMovement(s.snake.Segments, dir, s.cfg.speedFor(s.bounds.W), s.cfg.LinkDistance)
	segments[0] = s.bounds.Wrap(segments[0])
	s.snake.Segments = segments

	if SelfCollision(s.snake.Segments, s.cfg.CollisionGrace, s.cfg.LinkDistance) {
		s.setState(GameOver)
		return
	}

	if f, ok := s.food.Pickup(s.snake.Head()); ok {
		s.eat(f)
	}

	s.particles.Update()
}

func (s *Session) eat(f Food) {
	s.particles.Burst(f.Position)

	if f.Type == Special {
		s.emit(Event{Kind: EventEat, Food: f})
		s.setState(Popup)
		s.food.Spawn(s.bounds, Normal)
		return
	}

	s.score += s.cfg.FoodScore
	s.eaten++
	s.snake.Grow(1)
	s.emit(Event{Kind: EventEat, Food: f})

	if s.eaten%s.cfg.SpecialEvery == 0 {
		s.food.Spawn(s.bounds, Special)
	} else {
		s.food.Spawn(s.bounds, Normal)
	}
}

func (s *Session) setState(to State) {
	from := s.state
	s.state = to
	s.emit(Event{Kind: EventState, From: from, To: to})
}

func (s *Session) emit(e Event) {
	e.Status = s.Status()
	s.events = append(s.events, e)
}

// DrainEvents returns and clears the events emitted since the last call.
func (s *Session) DrainEvents() []Event {
	if len(s.events) == 0 {
		return nil
	}
	out := s.events
	s.events = nil
	return out
}

func (s *Session) lastSection() bool {
	return s.section == s.cfg.Sections-1
}

// Status returns the overlay-facing counters.
func (s *Session) Status() Status {
	return Status{
		State:       s.state,
		Score:       s.score,
		FoodsEaten:  s.eaten,
		Section:     s.section,
		Sections:    s.cfg.Sections,
		LastSection: s.lastSection(),
	}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Bounds returns the canvas size.
func (s *Session) Bounds() Bounds { return s.bounds }

// Heading returns the direction buffer.
func (s *Session) Heading() Heading { return s.heading }

// Steps returns the number of simulation steps taken this run.
func (s *Session) Steps() uint64 { return s.steps }

// Config returns the tuning the session runs with.
func (s *Session) Config() Config { return s.cfg }

// Segments returns a copy of the snake, head first.
func (s *Session) Segments() []Point {
	out := make([]Point, len(s.snake.Segments))
	copy(out, s.snake.Segments)
	return out
}

// Foods returns a copy of the active food set.
func (s *Session) Foods() []Food {
	out := make([]Food, len(s.food.Items))
	copy(out, s.food.Items)
	return out
}

// Particles returns a copy of the live particles.
func (s *Session) Particles() []Particle {
	out := make([]Particle, len(s.particles.Items))
	copy(out, s.particles.Items)
	return out
}
