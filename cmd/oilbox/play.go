package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/oilbox/internal/core"
	"github.com/vovakirdan/oilbox/internal/games/oilbox"
	"github.com/vovakirdan/oilbox/internal/games/stripsort"
	"github.com/vovakirdan/oilbox/internal/platform/tui"
	"github.com/vovakirdan/oilbox/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagAlgorithm  string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a toy",
	Long: `Start playing the specified toy.

Oilbox controls:
  Arrows/WASD  - Slide until a wall
  R            - Retry the map (streak kept)
  T            - New map (streak recorded and reset)
  H H          - Show the solution path
  Q/Ctrl+C     - Quit

Stripsort controls:
  X            - Shuffle
  Enter/Space  - Sort (again to stop)
  Tab/Left/Right - Change algorithm
  Up/Down      - More or fewer strips
  R            - Reset to sorted order

Difficulty options (oilbox):
  easy, normal, hard - wall density 0.10, 0.15, 0.22 for every maze
  ramp               - starts at 0.15 and grows with the streak

Algorithms (stripsort):
  bubble, selection, insertion, merge, heap, quick, tree

Without --difficulty or --algorithm a picker is shown first.

Examples:
  oilbox play oilbox
  oilbox play oilbox --difficulty hard
  oilbox play stripsort --algorithm merge
  oilbox play oilbox --config ./my-oilbox.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Oilbox difficulty preset: easy, normal, hard, ramp")
	playCmd.Flags().StringVar(&flagAlgorithm, "algorithm", "", "Stripsort algorithm")
}

// applyGameFlags hands the play flags to the game about to be created.
// It reports whether the CLI already made the game's pre-start choice.
func applyGameFlags(gameID string) bool {
	switch gameID {
	case "oilbox":
		oilbox.SetConfigPath(flagConfig)
		oilbox.SetDifficultyPreset(flagDifficulty)
		return flagDifficulty != ""
	case "stripsort":
		stripsort.SetConfigPath(flagConfig)
		stripsort.SetAlgorithm(flagAlgorithm)
		return flagAlgorithm != ""
	}
	return false
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'oilbox list' to see available toys.")
		os.Exit(1)
	}

	cfg := runtimeConfig()
	chosen := applyGameFlags(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	if c, ok := game.(core.Chooser); ok && !chosen {
		picked, err := tui.RunChoice(game.Title(), c, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		// User pressed back or quit
		if !picked {
			return
		}
	}

	store := openStore()
	logger.Info("starting game", "game", gameID, "seed", cfg.Seed)

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
