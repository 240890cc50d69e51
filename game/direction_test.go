package game

import "testing"

func TestHeadingRequest(t *testing.T) {
	tests := []struct {
		name      string
		committed Point
		x, y      float64
		accepted  bool
		pending   Point
	}{
		{"right to up", Right, 0, -1, true, Up},
		{"right to down", Right, 0, 1, true, Down},
		{"right to left rejected", Right, -1, 0, false, Right},
		{"right to right rejected", Right, 1, 0, false, Right},
		{"up to left", Up, -1, 0, true, Left},
		{"up to down rejected", Up, 0, 1, false, Up},
		{"diagonal rejected", Up, 1, 1, false, Up},
		{"zero rejected", Up, 0, 0, false, Up},
		{"magnitude clamped", Left, 0, 5, true, Down},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHeading(tt.committed)
			if got := h.Request(tt.x, tt.y); got != tt.accepted {
				t.Fatalf("Request(%v,%v) = %v, want %v", tt.x, tt.y, got, tt.accepted)
			}
			if h.Pending != tt.pending {
				t.Errorf("pending = %+v, want %+v", h.Pending, tt.pending)
			}
			if h.Committed != tt.committed {
				t.Errorf("committed changed before Commit: %+v", h.Committed)
			}
		})
	}
}

func TestHeadingNoReversalWithinOneTick(t *testing.T) {
	h := newHeading(Right)
	if !h.Request(0, -1) {
		t.Fatal("up should be accepted while moving right")
	}
	// Still moving right until commit, so left must be refused.
	if h.Request(-1, 0) {
		t.Fatal("left accepted before the up turn was committed")
	}
	if got := h.Commit(); got != Up {
		t.Fatalf("Commit = %+v, want up", got)
	}
	if !h.Request(-1, 0) {
		t.Fatal("left should be accepted after committing up")
	}
}

func TestParseDirection(t *testing.T) {
	for _, name := range []string{"up", "down", "left", "right"} {
		d, err := ParseDirection(name)
		if err != nil {
			t.Fatalf("ParseDirection(%q): %v", name, err)
		}
		if DirectionName(d) != name {
			t.Errorf("round trip %q -> %+v -> %q", name, d, DirectionName(d))
		}
	}
	if _, err := ParseDirection("north"); err == nil {
		t.Error("expected error for unknown direction")
	}
}
