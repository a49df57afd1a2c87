package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oilbox/internal/registry"
	"github.com/vovakirdan/oilbox/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresClear bool
	flagScoresRuns  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a toy",
	Long: `Display the top 10 high scores for the specified toy.

For stripsort, --runs lists the sorts streamed by the HTTP API instead.

Examples:
  oilbox scores oilbox
  oilbox scores oilbox --all
  oilbox scores oilbox --clear
  oilbox scores stripsort --runs`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the toy")
	scoresCmd.Flags().BoolVar(&flagScoresRuns, "runs", false, "List recent sort runs")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'oilbox list' to see available toys.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagScoresClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			return
		}
		fmt.Printf("Cleared all scores for %s.\n", title)
	case flagScoresRuns:
		printRuns(store)
	default:
		printScores(store, gameID, title)
	}
}

func printScores(store *storage.Store, gameID, title string) {
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, 10)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'oilbox play %s' to set the first high score!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Local().Format(storage.ScoreDateFormat + " 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printRuns(store *storage.Store) {
	runs, err := store.RecentSortRuns("", 20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sort runs: %v\n", err)
		return
	}
	if len(runs) == 0 {
		fmt.Println("No sort runs recorded yet. Stream one with 'oilbox web'.")
		return
	}

	fmt.Printf("  %-8s  %-10s  %-6s  %-7s  %-8s  %s\n", "Run", "Algorithm", "Strips", "Steps", "Status", "Date")
	for _, r := range runs {
		fmt.Printf("  %-8.8s  %-10s  %-6d  %-7d  %-8s  %s\n",
			r.RunID, r.Algorithm, r.Segments, r.Steps, r.Status,
			r.CreatedAt.Local().Format(storage.ScoreDateFormat+" 15:04"))
	}
}
