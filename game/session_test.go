package game

import (
	"errors"
	"testing"
)

const (
	testW = 1200.0
	testH = 800.0
)

func newTestSession(t *testing.T, mutate ...func(*Config)) *Session {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Sections = 5
	for _, m := range mutate {
		m(&cfg)
	}
	s := NewSession(cfg)
	s.Resize(testW, testH)
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	s.DrainEvents()
	return s
}

// feed puts a single food right where the head will be after the next tick.
func feed(s *Session, typ FoodType) {
	next := s.snake.Head().Add(s.heading.Pending.Scale(s.cfg.speedFor(s.bounds.W)))
	s.food.Items = []Food{{ID: 9999, Position: next, Type: typ}}
}

func TestNewSessionStartsOnMenu(t *testing.T) {
	s := NewSession(DefaultConfig())
	if s.State() != Menu {
		t.Fatalf("state = %v, want MENU", s.State())
	}
	if len(s.Segments()) != 0 {
		t.Fatal("snake exists before the canvas is sized")
	}
	s.Tick() // unsized canvas: skipped, must not panic
	if s.Steps() != 0 {
		t.Fatal("tick ran without a canvas")
	}
}

func TestStartResetsEverything(t *testing.T) {
	s := newTestSession(t)
	s.score, s.eaten, s.section = 120, 12, 3
	s.snake.Grow(5)
	s.particles.Burst(Point{10, 10})
	s.state = GameOver

	if err := s.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	st := s.Status()
	if st.State != Playing || st.Score != 0 || st.FoodsEaten != 0 || st.Section != 0 {
		t.Fatalf("status after restart = %+v", st)
	}
	if len(s.Particles()) != 0 {
		t.Error("particles survived restart")
	}
	foods := s.Foods()
	if len(foods) != 1 || foods[0].Type != Normal {
		t.Errorf("foods after restart = %+v", foods)
	}
	if s.Heading().Committed != Right || s.Heading().Pending != Right {
		t.Errorf("heading after restart = %+v", s.Heading())
	}

	segs := s.Segments()
	if len(segs) != InitialLength {
		t.Fatalf("snake length = %d, want %d", len(segs), InitialLength)
	}
	center := Point{testW / 2, testH / 2}
	if segs[0] != center {
		t.Errorf("head = %+v, want canvas center %+v", segs[0], center)
	}
	for i := 1; i < len(segs); i++ {
		if segs[i].Y != center.Y || segs[i].X != segs[i-1].X-LinkDistance {
			t.Errorf("segment %d = %+v not colinear behind head", i, segs[i])
		}
	}
}

func TestStartRejectedMidRun(t *testing.T) {
	s := newTestSession(t)
	if err := s.Start(); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("Start while playing = %v, want ErrBadTransition", err)
	}
	s.state = Popup
	if err := s.Start(); !errors.Is(err, ErrBadTransition) {
		t.Fatalf("Start in popup = %v, want ErrBadTransition", err)
	}
}

func TestTickMovesAndWraps(t *testing.T) {
	s := newTestSession(t)
	s.food.Items = nil
	head := s.snake.Head()
	s.Tick()
	if got := s.snake.Head(); got != head.Add(Point{Speed, 0}) {
		t.Fatalf("head = %+v, want moved right by %v", got, Speed)
	}

	s.snake.Segments[0] = Point{testW - 1, 400}
	s.Tick()
	if got := s.snake.Head(); got.X != 0 {
		t.Errorf("head x = %v after leaving the right edge, want 0", got.X)
	}
}

func TestMobileSpeed(t *testing.T) {
	s := newTestSession(t)
	s.Resize(800, 600) // mid-run resize keeps the snake
	if s.snake.Head() != (Point{testW / 2, testH / 2}) {
		t.Fatal("resize during play rebuilt the snake")
	}
	s.food.Items = nil
	head := s.snake.Head()
	s.Tick()
	if got := s.snake.Head().X - head.X; got != MobileSpeed {
		t.Errorf("moved %v on a narrow canvas, want %v", got, MobileSpeed)
	}
}

func TestResizeOnMenuReinitializes(t *testing.T) {
	s := NewSession(DefaultConfig())
	s.Resize(400, 300)
	if s.snake.Head() != (Point{200, 150}) {
		t.Fatalf("head = %+v", s.snake.Head())
	}
	s.Resize(1000, 700)
	if s.snake.Head() != (Point{500, 350}) {
		t.Fatalf("menu resize did not re-center: %+v", s.snake.Head())
	}
}

func TestResizePolicy(t *testing.T) {
	unsized := func(t *testing.T) *Session {
		cfg := DefaultConfig()
		cfg.Seed = 42
		cfg.Sections = 5
		return NewSession(cfg)
	}
	midRun := func(state State) func(t *testing.T) *Session {
		return func(t *testing.T) *Session {
			s := newTestSession(t)
			s.Tick()
			s.Tick()
			s.state = state
			return s
		}
	}

	tests := []struct {
		name    string
		setup   func(t *testing.T) *Session
		state   State
		rebuilt bool
	}{
		{
			name: "menu",
			setup: func(t *testing.T) *Session {
				s := unsized(t)
				s.Resize(400, 300)
				return s
			},
			state:   Menu,
			rebuilt: true,
		},
		{
			name: "playing before the canvas was sized",
			setup: func(t *testing.T) *Session {
				s := unsized(t)
				if err := s.Start(); err != nil {
					t.Fatalf("Start: %v", err)
				}
				s.Tick()
				return s
			},
			state:   Playing,
			rebuilt: true,
		},
		{name: "playing", setup: midRun(Playing), state: Playing},
		{name: "popup", setup: midRun(Popup), state: Popup},
		{name: "game over", setup: midRun(GameOver), state: GameOver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.setup(t)
			before := s.Segments()
			foods := s.Foods()

			s.Resize(900, 700)

			if s.State() != tt.state {
				t.Fatalf("state = %v, want %v", s.State(), tt.state)
			}
			if s.Bounds() != (Bounds{W: 900, H: 700}) {
				t.Errorf("bounds = %+v", s.Bounds())
			}
			after := s.Segments()
			if tt.rebuilt {
				if len(after) != s.cfg.InitialLength {
					t.Errorf("length = %d, want %d", len(after), s.cfg.InitialLength)
				}
				if after[0] != (Point{450, 350}) {
					t.Errorf("head = %+v, want canvas center", after[0])
				}
				if len(s.Foods()) != 1 {
					t.Errorf("foods = %d, want 1", len(s.Foods()))
				}
				return
			}
			if len(after) != len(before) {
				t.Fatalf("length %d -> %d", len(before), len(after))
			}
			for i := range before {
				if before[i] != after[i] {
					t.Fatalf("segment %d moved: %+v -> %+v", i, before[i], after[i])
				}
			}
			if got := s.Foods(); len(got) != len(foods) || got[0] != foods[0] {
				t.Errorf("foods changed: %+v -> %+v", foods, got)
			}
		})
	}
}

func TestEatNormalFood(t *testing.T) {
	s := newTestSession(t)
	before := len(s.Segments())
	feed(s, Normal)
	s.Tick()

	st := s.Status()
	if len(s.Segments()) != before+1 {
		t.Errorf("length = %d, want %d", len(s.Segments()), before+1)
	}
	if st.Score != FoodScore || st.FoodsEaten != 1 {
		t.Errorf("status = %+v", st)
	}
	if len(s.Particles()) != BurstCount {
		t.Errorf("particles = %d, want %d", len(s.Particles()), BurstCount)
	}
	foods := s.Foods()
	if len(foods) != 1 || foods[0].Type != Normal {
		t.Errorf("replacement = %+v", foods)
	}

	var ate bool
	for _, e := range s.DrainEvents() {
		if e.Kind == EventEat && e.Food.ID == 9999 {
			ate = true
		}
	}
	if !ate {
		t.Error("no eat event emitted")
	}
}

func TestSpecialTriggerInterval(t *testing.T) {
	s := newTestSession(t)

	s.eaten = 4
	feed(s, Normal)
	s.Tick()
	if s.eaten != 5 {
		t.Fatalf("eaten = %d", s.eaten)
	}
	if foods := s.Foods(); len(foods) != 1 || foods[0].Type != Special {
		t.Fatalf("4->5 spawned %+v, want one SPECIAL", foods)
	}

	feed(s, Normal)
	s.Tick()
	if foods := s.Foods(); len(foods) != 1 || foods[0].Type != Normal {
		t.Fatalf("5->6 spawned %+v, want one NORMAL", foods)
	}
}

func TestEatSpecialOpensPopup(t *testing.T) {
	s := newTestSession(t)
	before := s.Segments()
	feed(s, Special)
	s.Tick()

	st := s.Status()
	if st.State != Popup {
		t.Fatalf("state = %v, want POPUP", st.State)
	}
	if len(s.Segments()) != len(before) || st.Score != 0 || st.FoodsEaten != 0 {
		t.Errorf("special changed length or counters: len=%d %+v", len(s.Segments()), st)
	}
	if foods := s.Foods(); len(foods) != 1 || foods[0].Type != Normal {
		t.Errorf("replacement = %+v", foods)
	}

	var transitioned bool
	for _, e := range s.DrainEvents() {
		if e.Kind == EventState && e.From == Playing && e.To == Popup {
			transitioned = true
		}
	}
	if !transitioned {
		t.Error("no PLAYING->POPUP event")
	}

	// Frozen while the popup is open.
	frozen := s.Segments()
	s.Tick()
	s.Tick()
	after := s.Segments()
	for i := range frozen {
		if frozen[i] != after[i] {
			t.Fatal("snake moved during popup")
		}
	}
	if s.SetDirection(0, -1) {
		t.Error("direction accepted during popup")
	}
}

func TestResumeWrapsSections(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < 5; i++ {
		s.state = Popup
		wantLast := i == 4
		if s.Status().LastSection != wantLast {
			t.Fatalf("section %d: LastSection = %v", i, s.Status().LastSection)
		}
		if err := s.Resume(); err != nil {
			t.Fatalf("Resume: %v", err)
		}
		if s.State() != Playing {
			t.Fatalf("state after resume = %v", s.State())
		}
	}
	if s.Status().Section != 0 {
		t.Errorf("section after closing the last popup = %d, want 0", s.Status().Section)
	}
	if err := s.Resume(); !errors.Is(err, ErrBadTransition) {
		t.Errorf("Resume while playing = %v", err)
	}
}

func TestFinishOnLastSection(t *testing.T) {
	s := newTestSession(t, func(c *Config) { c.FinishOnLastSection = true })
	s.section = 4
	s.state = Popup
	if err := s.Resume(); err != nil {
		t.Fatal(err)
	}
	if s.State() != GameOver {
		t.Fatalf("state = %v, want GAME_OVER after the last section", s.State())
	}
}

func TestSelfCollisionEndsRun(t *testing.T) {
	s := newTestSession(t)
	s.food.Items = nil

	// A loose loop (8px spacing, so nothing gets pulled) whose tail sits just above the
	// head; moving up lands the head on it.
	var segs []Point
	for i := 0; i <= 12; i++ {
		segs = append(segs, Point{100, 100 + 8*float64(i)})
	}
	for y := 196.0; y >= 92; y -= 8 {
		segs = append(segs, Point{108, y})
	}
	segs = append(segs, Point{100, 92})
	s.snake.Segments = segs
	s.heading = newHeading(Up)

	s.Tick()
	if s.State() != GameOver {
		t.Fatalf("state = %v, want GAME_OVER", s.State())
	}
	if s.SetDirection(1, 0) {
		t.Error("direction accepted after game over")
	}
	if err := s.Start(); err != nil {
		t.Fatalf("restart from game over: %v", err)
	}
}

func TestChainHoldsOverLongRun(t *testing.T) {
	s := newTestSession(t)
	ap := NewAutopilot(s.Config())
	prev := s.Heading().Committed
	for i := 0; i < 5000 && s.State() != GameOver; i++ {
		if s.State() == Popup {
			if err := s.Resume(); err != nil {
				t.Fatal(err)
			}
		}
		ap.Steer(s)
		before := s.Segments()
		s.Tick()
		if s.State() == GameOver {
			break
		}

		cur := s.Heading().Committed
		if (cur.X == 0) == (cur.Y == 0) {
			t.Fatalf("tick %d: committed %+v not orthogonal", i, cur)
		}
		if cur == prev.Scale(-1) {
			t.Fatalf("tick %d: reversed from %+v to %+v", i, prev, cur)
		}
		prev = cur

		// Recompute the unwrapped move to check the chain before the head teleports.
		moved := ResolveMovement(before, cur, s.cfg.speedFor(s.bounds.W), LinkDistance)
		for j := 1; j < len(moved); j++ {
			if d := Distance(moved[j-1], moved[j]); d > LinkDistance+eps {
				t.Fatalf("tick %d: gap %d = %v", i, j, d)
			}
		}
	}
}

func TestStateNames(t *testing.T) {
	for st, want := range map[State]string{Menu: "MENU", Playing: "PLAYING", Popup: "POPUP", GameOver: "GAME_OVER"} {
		b, _ := st.MarshalText()
		if string(b) != want {
			t.Errorf("%d -> %s, want %s", st, b, want)
		}
	}
}
