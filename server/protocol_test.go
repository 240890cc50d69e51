package main

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"snakeos/game"
	"snakeos/portfolio"
)

func TestRoundTo1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.04, 1.0},
		{1.06, 1.1},
		{-1.06, -1.1},
		{600, 600},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundTo1(tt.in); got != tt.want {
			t.Errorf("roundTo1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFrameMsg(t *testing.T) {
	cfg := game.DefaultConfig()
	cfg.Seed = 3
	cfg.Sections = portfolio.Count()
	s := game.NewSession(cfg)
	s.Resize(1200, 800)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	s.Tick()

	msg := frameMsg(s.Frame(time.Unix(0, 0)))
	if msg.Type != MsgFrame || msg.Step != 1 || msg.Width != 1200 || msg.Height != 800 {
		t.Fatalf("header = %+v", msg)
	}
	if len(msg.Body) != cfg.InitialLength {
		t.Errorf("body len = %d", len(msg.Body))
	}
	if len(msg.Orbs) != 1 || msg.Orbs[0].Radius != cfg.FoodSize/2 {
		t.Errorf("orbs = %+v", msg.Orbs)
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), `"state":"PLAYING"`) {
		t.Errorf("state not encoded by name: %s", raw)
	}
}

func TestEventMsgPopupCarriesSection(t *testing.T) {
	e := game.Event{
		Kind:   game.EventState,
		From:   game.Playing,
		To:     game.Popup,
		Status: game.Status{State: game.Popup, Section: 4, Sections: 5, LastSection: true},
	}
	msg := eventMsg(e)
	if msg.Kind != EventKindState || msg.From != "PLAYING" || msg.To != "POPUP" {
		t.Fatalf("msg = %+v", msg)
	}
	if msg.Section == nil || msg.Section.ID != "contact" {
		t.Fatalf("section = %+v", msg.Section)
	}
	if msg.Footer != portfolio.Footer(true) {
		t.Errorf("footer = %q", msg.Footer)
	}

	eat := eventMsg(game.Event{Kind: game.EventEat, Food: game.Food{Type: game.Special}})
	if eat.Kind != EventKindEat || eat.Section != nil || eat.Food != game.Special.String() {
		t.Errorf("eat msg = %+v", eat)
	}
}
