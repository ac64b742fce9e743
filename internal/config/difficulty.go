package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value into a preset. The empty string is normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// colorDelta returns how many active colors the preset adds or removes.
func colorDelta(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return -1
	case DifficultyHard:
		return 1
	default:
		return 0
	}
}

// ApplyPreset adjusts a level's active color count for a difficulty preset.
// Fewer colors make larger groups, so easy removes one and hard adds one,
// clamped to [2, paletteSize]. Levels with a fixed layout are left as is.
func ApplyPreset(l Level, preset DifficultyPreset, paletteSize int) Level {
	if len(l.Layout) > 0 {
		return l
	}
	colors := l.Colors + colorDelta(preset)
	if colors < 2 {
		colors = min(2, l.Colors)
	}
	if colors > paletteSize {
		colors = paletteSize
	}
	l.Colors = colors
	return l
}
