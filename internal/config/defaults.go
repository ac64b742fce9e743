package config

import (
	_ "embed"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// DefaultPalette returns the built-in six-color palette.
func DefaultPalette() Palette {
	return Palette{
		Colors: []PaletteColor{
			{Name: "red", Code: "196"},
			{Name: "green", Code: "46"},
			{Name: "blue", Code: "33"},
			{Name: "yellow", Code: "226"},
			{Name: "purple", Code: "135"},
			{Name: "pink", Code: "205"},
		},
		Glyphs: TierGlyphs{
			Default: "●",
			T1:      "◆",
			T2:      "★",
			T3:      "✦",
		},
	}
}

// DefaultPack returns the hardcoded level pack used when the embedded YAML
// cannot be parsed.
func DefaultPack() LevelPack {
	return LevelPack{
		Palette: DefaultPalette(),
		Levels: []Level{
			{
				ID:     "classic",
				Name:   "Classic",
				Rows:   8,
				Cols:   8,
				Colors: 4,
				Tiers:  TierConfig{T1: 4, T2: 5, T3: 6},
			},
		},
	}
}
