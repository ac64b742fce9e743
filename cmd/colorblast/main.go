// colorblast is a terminal tile-matching puzzle: blast groups of same-colored
// tiles, let the board fall and refill, and never run out of moves.
//
// Usage:
//
//	colorblast levels              - List available levels
//	colorblast play [level]        - Play a level (level picker without one)
//	colorblast show <level>        - Print a freshly started board
//	colorblast sim <level>         - Autoplay headless games and report statistics
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 30)
//	--seed <value>       - Set RNG seed for reproducible boards
//	--levels <path>      - Level pack file or directory
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       uint64
	flagLevelsPath string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "colorblast",
	Short: "ColorBlast - a tile-matching puzzle in your terminal",
	Long: `ColorBlast is a terminal tile-matching puzzle. Select a group of
connected same-colored tiles to blast it; the remaining tiles fall,
new tiles spawn, and a board with no legal move is reshuffled.

Available commands:
  levels   - Show all available levels
  play     - Play a level
  show     - Print a freshly started board
  sim      - Autoplay headless games and report statistics

Examples:
  colorblast levels
  colorblast play classic
  colorblast show rainfall --seed 42
  colorblast sim classic --games 200 --turns 300`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = level seed, or random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsPath, "levels", "", "Level pack YAML file or directory (default: ~/.colorblast/levels.yaml, ./configs/levels.yaml, built-in)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(simCmd)
}
