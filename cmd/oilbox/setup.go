package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox"
	"github.com/vovakirdan/oilbox/internal/games/stripsort"
	"github.com/vovakirdan/oilbox/internal/storage"
)

var (
	logger  = log.New(io.Discard)
	logFile *os.File
)

// setupLogging points the games at --log-file. Without it the TUI commands
// stay silent so the alt screen is not corrupted.
func setupLogging() error {
	if flagLogFile == "" {
		return nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open log file: %w", err)
	}
	logFile = f
	logger = log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "oilbox",
		Level:           log.DebugLevel,
	})
	oilbox.SetLogger(logger)
	stripsort.SetLogger(logger)
	return nil
}

func closeLogging() {
	if logFile != nil {
		logFile.Close()
	}
}

// serverLogger logs to --log-file when set, otherwise to stderr.
func serverLogger(prefix string) *log.Logger {
	if logFile != nil {
		return logger.WithPrefix(prefix)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the score database. Games still work without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}
