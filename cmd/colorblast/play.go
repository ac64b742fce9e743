package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/colorblast/internal/config"
	"github.com/vovakirdan/colorblast/internal/core"
	"github.com/vovakirdan/colorblast/internal/platform/tui"
)

var (
	flagDifficulty string
	flagTheme      string
	flagPhaseTicks int
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the specified level, or pick one from a list.

Controls:
  Arrows/hjkl  - Move cursor
  Space/Enter  - Blast the group under the cursor
  Mouse click  - Blast the clicked group
  R            - Restart with a fresh board
  Esc/B        - Back to the level picker
  ?            - Show all keys
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - One color fewer than the level defines
  normal - Colors as the level defines
  hard   - One color more than the level defines

Examples:
  colorblast play
  colorblast play classic
  colorblast play spectrum --difficulty easy
  colorblast play classic --phase-ticks 0 --theme mono
  colorblast play classic --log-file ./colorblast.log --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().StringVar(&flagTheme, "theme", "default", "Color theme: default, mono")
	playCmd.Flags().IntVar(&flagPhaseTicks, "phase-ticks", core.DefaultConfig().PhaseTicks, "Ticks between resolution phases (0 = instant)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is used by the game)")
}

func runPlay(_ *cobra.Command, args []string) {
	if err := playLoop(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playLoop runs the picker and game screens until the player quits. It
// returns instead of exiting so the log file is closed on every path.
func playLoop(args []string) error {
	pack, err := config.LoadLevels(flagLevelsPath)
	if err != nil {
		return err
	}

	theme, ok := tui.ThemeByName(flagTheme, pack.Palette)
	if !ok {
		return fmt.Errorf("unknown theme %q", flagTheme)
	}

	// Logs never go to the alt screen
	logger := log.New(io.Discard)
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		if logger, err = newLogger(f); err != nil {
			return err
		}
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		PhaseTicks: flagPhaseTicks,
		Seed:       flagSeed,
	}

	var level *config.Level
	if len(args) == 1 {
		l, err := findLevel(pack, args[0], flagDifficulty)
		if err != nil {
			return err
		}
		level = &l
	}

	for {
		if level == nil {
			picked, err := tui.RunLevelPicker(pack, cfg)
			if err != nil {
				return err
			}
			if picked == nil {
				return nil
			}
			l, err := findLevel(pack, picked.ID, flagDifficulty)
			if err != nil {
				return err
			}
			level = &l
		}

		back, err := tui.Run(pack, *level, cfg, tui.WithTheme(theme), tui.WithLogger(logger))
		if err != nil {
			return err
		}
		if !back {
			return nil
		}
		level = nil
	}
}
