package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"snakeos/game"
	"snakeos/portfolio"
)

const (
	logDir      = "logs"
	logFileName = "snakeos.log"
)

var (
	debugFlag     = flag.Bool("debug", false, "Write logs to logs/snakeos.log")
	autopilotFlag = flag.Bool("autopilot", false, "Let the snake play itself")
	muteFlag      = flag.Bool("mute", false, "Disable sound")
	seedFlag      = flag.Int64("seed", 0, "RNG seed for food and particles (0 = time based)")
	finishFlag    = flag.Bool("finish", false, "End the run after the last portfolio section")
)

// setupLogging sends log output to a file when debug is set and discards it otherwise,
// since the screen owns the terminal. The returned file is nil when logging is off.
func setupLogging(debug bool) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.SetOutput(io.Discard)
		return nil
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return f
}

func main() {
	flag.Parse()

	if f := setupLogging(*debugFlag); f != nil {
		defer f.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		r := recover()
		screen.Fini()
		if r != nil {
			fmt.Fprintf(os.Stderr, "\nSNAKE_OS CRASHED: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	sound := NewSoundManager()
	if !*muteFlag {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, game can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sound.Cleanup()

	cfg := game.DefaultConfig()
	cfg.Sections = portfolio.Count()
	cfg.Seed = *seedFlag
	cfg.FinishOnLastSection = *finishFlag

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("starting: autopilot=%v mute=%v seed=%d", *autopilotFlag, *muteFlag, *seedFlag)
	NewApp(screen, cfg, sound, *autopilotFlag).Run(ctx)
}
