package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oilbox/internal/registry"
	"github.com/vovakirdan/oilbox/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available toys",
	Long:  `Shows a list of all registered toys.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available toys:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	// Play counts are optional; a missing database just leaves them out.
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "ID", "Title", "Plays")
	fmt.Printf("  %-*s  %-12s  %s\n", maxIDLen, "--", "-----", "-----")
	for _, g := range games {
		plays := 0
		if st, ok := stats[g.ID]; ok {
			plays = st.GamesCount
		}
		fmt.Printf("  %-*s  %-12s  %d\n", maxIDLen, g.ID, g.Title, plays)
	}

	fmt.Println()
	fmt.Println("Run 'oilbox play <id>' to play.")
}
