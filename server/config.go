package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"snakeos/game"
)

// Server defaults. Every one can be overridden from the environment or a .env file.
const (
	ServerPort    = "8080"
	StaticDir     = "../client"
	WebSocketPath = "/ws"

	// Limits
	MaxSessions = 200             // concurrent sockets
	IPCooldown  = 2 * time.Second // min gap between connects from one IP

	// Hire form
	SubmitDelay = 1500 * time.Millisecond // simulated send latency
)

// Settings is the resolved server configuration.
type Settings struct {
	Port         string
	StaticDir    string
	TickRate     int
	MaxSessions  int
	IPCooldown   time.Duration
	SubmitDelay  time.Duration
	FinishOnLast bool
}

// Addr is the listen address.
func (s Settings) Addr() string { return ":" + s.Port }

// LoadSettings reads .env (if present) and the process environment.
// A missing .env is not an error; a malformed value is.
func LoadSettings() (Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Println(err)
	}
	return settingsFromEnv()
}

func settingsFromEnv() (Settings, error) {
	s := Settings{
		Port:        ServerPort,
		StaticDir:   StaticDir,
		TickRate:    game.TickRate,
		MaxSessions: MaxSessions,
		IPCooldown:  IPCooldown,
		SubmitDelay: SubmitDelay,
	}
	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if v := os.Getenv("SNAKEOS_STATIC_DIR"); v != "" {
		s.StaticDir = v
	}

	var err error
	if s.TickRate, err = envInt("SNAKEOS_TICK_RATE", s.TickRate); err != nil {
		return s, err
	}
	if s.TickRate <= 0 {
		return s, fmt.Errorf("SNAKEOS_TICK_RATE: must be positive, got %d", s.TickRate)
	}
	if s.MaxSessions, err = envInt("SNAKEOS_MAX_SESSIONS", s.MaxSessions); err != nil {
		return s, err
	}
	if s.IPCooldown, err = envDuration("SNAKEOS_IP_COOLDOWN", s.IPCooldown); err != nil {
		return s, err
	}
	if s.SubmitDelay, err = envDuration("SNAKEOS_SUBMIT_DELAY", s.SubmitDelay); err != nil {
		return s, err
	}
	if v := os.Getenv("SNAKEOS_FINISH_ON_LAST"); v != "" {
		if s.FinishOnLast, err = strconv.ParseBool(v); err != nil {
			return s, fmt.Errorf("SNAKEOS_FINISH_ON_LAST: %w", err)
		}
	}
	return s, nil
}

// GameConfig is the session tuning every new socket plays with.
func (s Settings) GameConfig(sections int) game.Config {
	cfg := game.DefaultConfig()
	cfg.Sections = sections
	cfg.FinishOnLastSection = s.FinishOnLast
	return cfg
}

func envInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
