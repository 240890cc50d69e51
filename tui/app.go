package main

import (
	"context"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"snakeos/game"
	"snakeos/portfolio"
)

const (
	frameInterval = 16 * time.Millisecond // ~60 FPS redraw
	pilotPause    = 2 * time.Second       // autopilot lingers on overlays this long
	submitDelay   = 1500 * time.Millisecond
)

// App is the terminal front end: a tcell screen driving one game loop.
type App struct {
	screen tcell.Screen
	loop   *game.Loop
	sound  *SoundManager
	pilot  *game.Autopilot

	frames chan game.Frame
	events chan game.Event
	sent   chan struct{}

	frame      game.Frame
	ov         overlay
	stateSince time.Time
	now        func() time.Time
}

// NewApp binds a fresh session to screen. The loop is not started.
func NewApp(screen tcell.Screen, cfg game.Config, sound *SoundManager, autopilot bool) *App {
	a := &App{
		screen: screen,
		sound:  sound,
		frames: make(chan game.Frame, 1),
		events: make(chan game.Event, 64),
		sent:   make(chan struct{}, 1),
		now:    time.Now,
	}
	a.stateSince = a.now()
	if autopilot {
		a.pilot = game.NewAutopilot(cfg)
		a.ov.pilot = true
	}
	if qr, err := qrLines(portfolio.ContactURL); err == nil {
		a.ov.qr = qr
	} else {
		log.Printf("qr: %v", err)
	}

	s := game.NewSession(cfg)
	a.loop = game.NewLoop(s, a, game.TickRate)
	a.resize()
	return a
}

// Present implements game.Sink. Only the newest frame is kept.
func (a *App) Present(f game.Frame) {
	select {
	case a.frames <- f:
		return
	default:
	}
	select {
	case <-a.frames:
	default:
	}
	select {
	case a.frames <- f:
	default:
	}
}

// Notify implements game.Sink. It never blocks: Restart delivers events on the UI goroutine.
func (a *App) Notify(e game.Event) {
	select {
	case a.events <- e:
	default:
		log.Printf("event dropped: %+v", e)
	}
}

// Run owns the screen until the user quits or ctx ends.
func (a *App) Run(ctx context.Context) {
	a.loop.Start(ctx)
	defer a.loop.Stop()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	input := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			input <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-input:
			if !a.handleInput(ctx, ev) {
				return
			}
		case f := <-a.frames:
			a.frame = f
		case e := <-a.events:
			a.handleEvent(e)
		case <-a.sent:
			if a.ov.form != nil {
				a.ov.form.sent()
				log.Printf("hire form sent")
			}
		case <-ticker.C:
			a.drivePilot(ctx)
			drawFrame(a.screen, a.frame, a.ov)
			a.screen.Show()
		}
	}
}

func (a *App) resize() {
	cols, rows := a.screen.Size()
	w, h := canvasSize(cols, rows)
	a.loop.Resize(w, h)
}

func (a *App) handleEvent(e game.Event) {
	if a.sound != nil {
		a.sound.OnEvent(e)
	}
	if e.Kind != game.EventState {
		return
	}
	a.stateSince = a.now()
	a.frame.Status = e.Status

	switch e.To {
	case game.Popup:
		sec := portfolio.At(e.Status.Section)
		a.ov.popup = &sec
		a.ov.footer = portfolio.Footer(e.Status.LastSection)
	case game.GameOver:
		a.ov.popup = nil
		a.ov.form = &hireForm{}
		log.Printf("game over: score=%d eaten=%d", e.Status.Score, e.Status.FoodsEaten)
	default:
		a.ov.popup = nil
	}
}

// handleInput returns false when the app should exit.
func (a *App) handleInput(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.resize()
		return true
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			return false
		}
		return a.handleKey(ctx, ev)
	}
	return true
}

func (a *App) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	state := a.loop.Status().State
	if state == game.GameOver {
		return a.handleFormKey(ctx, ev)
	}
	if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
		return false
	}

	switch state {
	case game.Menu:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
			a.restart(ctx)
		}
		if ev.Key() == tcell.KeyEscape {
			return false
		}
	case game.Playing:
		if d, ok := keyDirection(ev); ok {
			a.loop.SetDirection(d.X, d.Y)
		}
	case game.Popup:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyEnter ||
			(ev.Key() == tcell.KeyRune && (ev.Rune() == 'c' || ev.Rune() == 'C')) {
			a.resume()
		}
	}
	return true
}

func (a *App) handleFormKey(ctx context.Context, ev *tcell.EventKey) bool {
	form := a.ov.form
	switch ev.Key() {
	case tcell.KeyCtrlR:
		a.restart(ctx)
	case tcell.KeyEscape:
		return false
	case tcell.KeyTab:
		if form != nil {
			form.next()
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if form != nil {
			form.backspace()
		}
	case tcell.KeyEnter:
		switch {
		case form == nil || form.status == portfolio.HireSent:
			a.restart(ctx)
		case form.submit() == nil && form.status == portfolio.HireSending:
			time.AfterFunc(submitDelay, func() {
				select {
				case a.sent <- struct{}{}:
				default:
				}
			})
		}
	case tcell.KeyRune:
		if form != nil {
			form.typeRune(ev.Rune())
		}
	}
	return true
}

// keyDirection maps arrows and WASD to a unit direction.
func keyDirection(ev *tcell.EventKey) (game.Point, bool) {
	switch ev.Key() {
	case tcell.KeyUp:
		return game.Up, true
	case tcell.KeyDown:
		return game.Down, true
	case tcell.KeyLeft:
		return game.Left, true
	case tcell.KeyRight:
		return game.Right, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			return game.Up, true
		case 's', 'S':
			return game.Down, true
		case 'a', 'A':
			return game.Left, true
		case 'd', 'D':
			return game.Right, true
		}
	}
	return game.Point{}, false
}

func (a *App) restart(ctx context.Context) {
	if err := a.loop.Restart(ctx); err != nil {
		log.Printf("restart: %v", err)
		return
	}
	a.ov.form = nil
	a.ov.popup = nil
}

func (a *App) resume() {
	if err := a.loop.Resume(); err != nil {
		log.Printf("resume: %v", err)
	}
}

// drivePilot steers during play and dismisses overlays after a pause.
func (a *App) drivePilot(ctx context.Context) {
	if a.pilot == nil {
		return
	}
	switch a.loop.Status().State {
	case game.Playing:
		a.loop.View(func(s *game.Session) { a.pilot.Steer(s) })
	case game.Popup:
		if a.now().Sub(a.stateSince) >= pilotPause {
			a.resume()
		}
	case game.Menu, game.GameOver:
		if a.now().Sub(a.stateSince) >= pilotPause {
			a.restart(ctx)
		}
	}
}
