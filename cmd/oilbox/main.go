// oilbox is a pair of terminal toys: a slide maze where the box only stops
// at walls, and a strip sorter that animates seven sorting algorithms.
//
// Usage:
//
//	oilbox list              - List available toys
//	oilbox play <game>       - Play a toy
//	oilbox menu              - Start menu to pick toys interactively
//	oilbox serve             - Start SSH server for remote play
//	oilbox web               - Start the HTTP API
//	oilbox scores <game>     - Show high scores for a toy
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible mazes and shuffles
//	--db <path>        - Set database path (default: ~/.oilbox/scores.db)
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/oilbox/internal/games/oilbox"
	_ "github.com/vovakirdan/oilbox/internal/games/stripsort"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "oilbox",
	Short: "Oilbox - a slide maze and a sorting visualizer for your terminal",
	Long: `Oilbox bundles two terminal toys:

  oilbox     - slide a box through a maze; it only stops at walls
  stripsort  - shuffle colored strips and watch a sort put them back

Available commands:
  list     - Show all available toys
  play     - Play a specific toy directly
  menu     - Interactive picker menu
  serve    - Start SSH server for remote play
  web      - Start the HTTP API
  scores   - View high scores

Examples:
  oilbox list
  oilbox play oilbox --difficulty hard
  oilbox play stripsort --algorithm quick
  oilbox menu
  oilbox serve --ssh :2222
  oilbox web --addr :8080
  oilbox scores oilbox`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging()
	},
	PersistentPostRun: func(cmd *cobra.Command, _ []string) {
		closeLogging()
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.oilbox/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
}
