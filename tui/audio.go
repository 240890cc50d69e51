package main

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"snakeos/game"
)

const (
	sampleRate   = beep.SampleRate(44100)
	masterVolume = 0.25
)

// blip is one short tone, or two played back to back.
type blip struct {
	freqs []float64
	note  time.Duration
}

var (
	blipEat      = blip{freqs: []float64{880}, note: 50 * time.Millisecond}
	blipOrb      = blip{freqs: []float64{987.77, 1318.51}, note: 70 * time.Millisecond}
	blipGameOver = blip{freqs: []float64{330, 220}, note: 180 * time.Millisecond}
)

// SoundManager plays the game's blips. A manager that failed to start (or was muted)
// silently ignores every call.
type SoundManager struct {
	mu          sync.Mutex
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{}
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	sm.initialized = true
	return nil
}

// Cleanup closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// OnEvent maps session events to sounds.
func (sm *SoundManager) OnEvent(e game.Event) {
	switch {
	case e.Kind == game.EventEat && e.Food.Type == game.Special:
		sm.play(blipOrb)
	case e.Kind == game.EventEat:
		sm.play(blipEat)
	case e.Kind == game.EventState && e.To == game.GameOver:
		sm.play(blipGameOver)
	}
}

func (sm *SoundManager) play(b blip) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s, err := b.streamer()
	if err != nil {
		log.Printf("audio: %v", err)
		return
	}
	speaker.Play(s)
}

func (b blip) streamer() (beep.Streamer, error) {
	notes := make([]beep.Streamer, 0, len(b.freqs))
	for _, f := range b.freqs {
		sine, err := generators.SineTone(sampleRate, f)
		if err != nil {
			return nil, err
		}
		notes = append(notes, beep.Take(sampleRate.N(b.note), sine))
	}
	return &effects.Volume{
		Streamer: beep.Seq(notes...),
		Base:     2,
		Volume:   math.Log2(masterVolume),
	}, nil
}
