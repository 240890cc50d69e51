package main

import (
	"math"

	"snakeos/game"
	"snakeos/portfolio"
)

// Protocol uses single-character JSON keys to keep per-frame messages small.
// All x,y coordinates are rounded to 1 decimal place.
//
// Message type constants (value of "t" field):
//   Client → Server:
//     "s" = start   {"t":"s"}                    new run from menu / game over
//     "d" = steer   {"t":"d","d":"up"}           or {"t":"d","x":0,"y":-1}
//     "c" = close   {"t":"c"}                    close the portfolio popup
//     "z" = resize  {"t":"z","w":1280,"h":720}   canvas size in px
//   Server → Client:
//     "w" = welcome {"t":"w","i":"id","n":5,"th":{...}}
//     "f" = frame   {"t":"f","n":step,"w":W,"h":H,"s":{status},"b":[[x,y]],"o":[orbs],"p":[[x,y,a]]}
//     "e" = event   {"t":"e","k":"state","fr":"PLAYING","to":"POPUP","s":{status},"sec":{...}}
//     "x" = error   {"t":"x","m":"message"}

// Message type identifiers
const (
	MsgStart   = "s"
	MsgSteer   = "d"
	MsgClose   = "c"
	MsgResize  = "z"
	MsgWelcome = "w"
	MsgFrame   = "f"
	MsgEvent   = "e"
	MsgError   = "x"
)

// Event kinds carried in EventMsg.Kind
const (
	EventKindState = "state"
	EventKindEat   = "eat"
)

// ClientMessage is any message from the browser.
type ClientMessage struct {
	Type   string  `json:"t"`
	Dir    string  `json:"d,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Width  float64 `json:"w,omitempty"`
	Height float64 `json:"h,omitempty"`
}

// Theme tells the client how to paint the parts of a frame that never change.
type Theme struct {
	Background  string  `json:"bg"`
	Color       string  `json:"c"`
	GridColor   string  `json:"gc"`
	GridSpacing float64 `json:"gs"`
	SpineAlpha  float64 `json:"sa"`
	HeadRadius  float64 `json:"hr"`
	BodyRadius  float64 `json:"br"`
}

// WelcomeMsg is sent once, right after the socket opens.
type WelcomeMsg struct {
	Type     string `json:"t"`
	ID       string `json:"i"`
	Sections int    `json:"n"`
	Owner    string `json:"o"`
	Theme    Theme  `json:"th"`
}

// OrbDTO is a food item as drawn.
type OrbDTO struct {
	ID        uint64  `json:"i"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Radius    float64 `json:"r"`
	Color     string  `json:"c"`
	Glow      float64 `json:"g"`
	GlowColor string  `json:"gc"`
	Label     string  `json:"lb,omitempty"`
}

// FrameMsg is the per-tick picture. Body doubles as the spine polyline.
type FrameMsg struct {
	Type      string       `json:"t"`
	Step      uint64       `json:"n"`
	Width     float64      `json:"w"`
	Height    float64      `json:"h"`
	Status    game.Status  `json:"s"`
	Body      [][2]float64 `json:"b"`
	Orbs      []OrbDTO     `json:"o"`
	Particles [][3]float64 `json:"p"`
}

// EventMsg reports a session event. Popup transitions carry the section to show.
type EventMsg struct {
	Kind    string             `json:"k"`
	Type    string             `json:"t"`
	From    string             `json:"fr,omitempty"`
	To      string             `json:"to,omitempty"`
	Food    string             `json:"ft,omitempty"`
	Status  game.Status        `json:"s"`
	Section *portfolio.Section `json:"sec,omitempty"`
	Footer  string             `json:"fo,omitempty"`
}

// ErrorMsg is sent before the server closes a socket, or when a command is refused.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

func defaultTheme(cfg game.Config) Theme {
	return Theme{
		Background:  game.BGColor,
		Color:       game.ThemeColor,
		GridColor:   game.GridColor,
		GridSpacing: game.GridSpacing,
		SpineAlpha:  game.SpineAlpha,
		HeadRadius:  cfg.SnakeSize / 2,
		BodyRadius:  (cfg.SnakeSize - 2) / 2,
	}
}

// frameMsg packs a frame into its wire form.
func frameMsg(f game.Frame) FrameMsg {
	body := make([][2]float64, len(f.Body))
	for i, d := range f.Body {
		body[i] = [2]float64{roundTo1(d.Position.X), roundTo1(d.Position.Y)}
	}
	orbs := make([]OrbDTO, len(f.Foods))
	for i, o := range f.Foods {
		orbs[i] = OrbDTO{
			ID:        o.ID,
			X:         roundTo1(o.Position.X),
			Y:         roundTo1(o.Position.Y),
			Radius:    o.Radius,
			Color:     o.Color,
			Glow:      o.Glow,
			GlowColor: o.GlowColor,
			Label:     o.Label,
		}
	}
	particles := make([][3]float64, len(f.Particles))
	for i, p := range f.Particles {
		particles[i] = [3]float64{roundTo1(p.Position.X), roundTo1(p.Position.Y), roundTo2(p.Alpha)}
	}
	return FrameMsg{
		Type:      MsgFrame,
		Step:      f.Step,
		Width:     f.Bounds.W,
		Height:    f.Bounds.H,
		Status:    f.Status,
		Body:      body,
		Orbs:      orbs,
		Particles: particles,
	}
}

// eventMsg packs a session event. Entering POPUP attaches the section being revealed.
func eventMsg(e game.Event) EventMsg {
	msg := EventMsg{Type: MsgEvent, Status: e.Status}
	switch e.Kind {
	case game.EventEat:
		msg.Kind = EventKindEat
		msg.Food = e.Food.Type.String()
	default:
		msg.Kind = EventKindState
		msg.From = e.From.String()
		msg.To = e.To.String()
		if e.To == game.Popup {
			sec := portfolio.At(e.Status.Section)
			msg.Section = &sec
			msg.Footer = portfolio.Footer(e.Status.LastSection)
		}
	}
	return msg
}

// roundTo1 rounds a float64 to 1 decimal place to save protocol bytes.
func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
