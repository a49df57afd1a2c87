package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oilbox/internal/web"
)

var (
	flagWebAddr     string
	flagMaxSegments int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the maze generator, hints, sort
streams and stored scores as JSON.

Endpoints:
  GET  /api/games
  GET  /api/maze?seed=&rows=&cols=&density=
  POST /api/maze/hint          {"layout": [...], "from": {"row":1,"col":1}}
  GET  /api/sort/{algorithm}?segments=&delay_ms=&seed=   (server-sent events)
  GET  /api/scores/{game}?limit=
  GET  /api/runs?algorithm=&limit=
  GET  /api/runs/{runID}

Examples:
  oilbox web
  oilbox web --addr :9000
  curl -N 'localhost:8080/api/sort/quick?segments=16&delay_ms=20'`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP listen address")
	webCmd.Flags().IntVar(&flagMaxSegments, "max-segments", 512, "Largest strip count a client may sort")
}

func runWeb(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := web.DefaultConfig()
	cfg.Addr = flagWebAddr
	cfg.MaxSegments = flagMaxSegments
	server := web.NewServer(cfg, store, serverLogger("oilbox-web"))

	fmt.Printf("Starting oilbox HTTP API on %s\n", cfg.Addr)
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- server.ListenAndServe() }()

	select {
	case err := <-errc:
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			return
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}
}
