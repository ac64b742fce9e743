package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/platform/tui"
)

var (
	flagShowPlain      bool
	flagShowDifficulty string
	flagShowTheme      string
)

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a freshly started board",
	Long: `Start a level without the interactive UI and print the board,
followed by the groups that can be blasted.

Examples:
  colorblast show classic
  colorblast show stalemate --log-level debug
  colorblast show rainfall --seed 42 --plain`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagShowPlain, "plain", false, "Print color letters instead of styled glyphs")
	showCmd.Flags().StringVar(&flagShowDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	showCmd.Flags().StringVar(&flagShowTheme, "theme", "default", "Color theme: default, mono")
}

func runShow(_ *cobra.Command, args []string) {
	pack := mustLoadLevels()
	level := mustFindLevel(pack, args[0], flagShowDifficulty)
	logger := mustLogger()

	e, start, err := pack.StartLevel(level, flagSeed, board.WithLogger(logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if start.Shuffles > 0 {
		logger.Info("start board had no legal move and was shuffled", "recolored", len(start.Recolored))
	}

	if flagShowPlain {
		fmt.Println(e.Grid().String())
	} else {
		theme, ok := tui.ThemeByName(flagShowTheme, pack.Palette)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", flagShowTheme)
			os.Exit(1)
		}
		fmt.Println(tui.RenderBoard(tui.BoardView{
			Grid:    e.Grid(),
			Palette: pack.Palette,
			Theme:   theme,
		}))
	}
	fmt.Println()

	groups := e.Finder().Matchable()
	largest := 0
	for _, g := range groups {
		largest = max(largest, g.Len())
	}
	fmt.Printf("%s: %dx%d, %d colors, match %d, gravity %s\n",
		level.ID, level.Rows, level.Cols, level.Colors, level.Threshold(), level.GravityName())
	fmt.Printf("%d matchable groups, largest %d\n", len(groups), largest)
	for _, g := range groups {
		fmt.Printf("  %c x%-3d at %v (%s)\n", g.Color().Letter(), g.Len(), g.Coords()[0], g[0].Tier())
	}
}
