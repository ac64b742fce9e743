package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorblast/internal/config"
)

// newLogger builds the command logger at the --log-level level.
func newLogger(w io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "colorblast",
		Level:           level,
	})
	return logger, nil
}

// mustLogger is newLogger for stderr, exiting on a bad level.
func mustLogger() *log.Logger {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}

// mustLoadLevels loads the level pack, exiting on failure.
func mustLoadLevels() config.LevelPack {
	pack, err := config.LoadLevels(flagLevelsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return pack
}

// mustFindLevel looks up a level and applies the difficulty preset, exiting
// when either is unknown.
func mustFindLevel(pack config.LevelPack, id, difficulty string) config.Level {
	level, err := findLevel(pack, id, difficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if _, ok := pack.Find(id); !ok {
			fmt.Fprintln(os.Stderr, "Run 'colorblast levels' to see available levels.")
		}
		os.Exit(1)
	}
	return level
}

// findLevel looks up a level and applies the difficulty preset.
func findLevel(pack config.LevelPack, id, difficulty string) (config.Level, error) {
	level, ok := pack.Find(id)
	if !ok {
		return config.Level{}, fmt.Errorf("unknown level %q", id)
	}
	preset, err := config.ParseDifficulty(difficulty)
	if err != nil {
		return config.Level{}, err
	}
	return config.ApplyPreset(level, preset, len(pack.Palette.Colors)), nil
}
