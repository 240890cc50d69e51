package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	defer log.SetOutput(os.Stderr)

	if f := setupLogging(false); f != nil {
		f.Close()
		t.Fatal("expected nil log file when debug=false")
	}
	if log.Writer() != io.Discard {
		t.Errorf("log output = %v, want io.Discard", log.Writer())
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	defer log.SetOutput(os.Stderr)
	testChdir(t, t.TempDir())

	f := setupLogging(true)
	if f == nil {
		t.Fatal("expected a log file when debug=true")
	}
	defer f.Close()

	log.Println("test log message")

	info, err := os.Stat(filepath.Join(logDir, logFileName))
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}
