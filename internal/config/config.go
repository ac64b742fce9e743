// Package config provides YAML-based level pack loading and validation
// for ColorBlast.
package config

import (
	"fmt"

	"github.com/vovakirdan/colorblast/internal/board"
)

// LevelPack is a palette plus the levels that draw from it.
type LevelPack struct {
	Palette Palette `yaml:"palette"`
	Levels  []Level `yaml:"levels"`
}

// Palette defines the tile colors in palette order. A level activates the
// first Colors entries.
type Palette struct {
	Colors []PaletteColor `yaml:"colors"`
	Glyphs TierGlyphs     `yaml:"glyphs"`
}

// PaletteColor is one tile color.
type PaletteColor struct {
	Name string `yaml:"name"`
	Code string `yaml:"code"` // ANSI 256-color code or hex, as lipgloss accepts
}

// TierGlyphs are the characters drawn for each tile tier.
type TierGlyphs struct {
	Default string `yaml:"default"`
	T1      string `yaml:"t1"`
	T2      string `yaml:"t2"`
	T3      string `yaml:"t3"`
}

// For returns the glyph for a tier.
func (g TierGlyphs) For(t board.Tier) string {
	switch t {
	case board.Tier1:
		return g.T1
	case board.Tier2:
		return g.T2
	case board.Tier3:
		return g.T3
	default:
		return g.Default
	}
}

// Level is one playable board configuration.
type Level struct {
	ID             string     `yaml:"id"`
	Name           string     `yaml:"name"`
	Rows           int        `yaml:"rows"`
	Cols           int        `yaml:"cols"`
	Colors         int        `yaml:"colors"`
	MatchThreshold int        `yaml:"match_threshold,omitempty"` // 0 means 2
	Tiers          TierConfig `yaml:"tiers"`
	Gravity        string     `yaml:"gravity,omitempty"` // left, right, up or down; empty means left
	Layout         []string   `yaml:"layout,omitempty"`  // Optional starting board; '.' cells are filled at start
	Seed           uint64     `yaml:"seed,omitempty"`    // 0 means random
}

// TierConfig holds the tier thresholds of a level.
type TierConfig struct {
	T1 int `yaml:"t1"`
	T2 int `yaml:"t2"`
	T3 int `yaml:"t3"`
}

// ValidationError describes a level pack problem.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Threshold returns the match threshold, defaulting to 2.
func (l Level) Threshold() int {
	if l.MatchThreshold == 0 {
		return 2
	}
	return l.MatchThreshold
}

// GravityName returns the gravity direction, defaulting to left.
func (l Level) GravityName() string {
	if l.Gravity == "" {
		return board.GravityLeft.String()
	}
	return l.Gravity
}

// Rules converts the level into engine rules for a palette of the given size.
func (l Level) Rules(paletteSize int) (board.Rules, error) {
	gravity, ok := board.ParseGravity(l.Gravity)
	if !ok {
		return board.Rules{}, ValidationError{
			Code:    "GRAVITY",
			Message: fmt.Sprintf("unknown gravity %q", l.Gravity),
		}
	}
	r := board.Rules{
		Rows:           l.Rows,
		Cols:           l.Cols,
		ColorCount:     l.Colors,
		PaletteSize:    paletteSize,
		MatchThreshold: l.Threshold(),
		Tiers:          board.Tiers{T1: l.Tiers.T1, T2: l.Tiers.T2, T3: l.Tiers.T3},
		Gravity:        gravity,
	}
	if err := r.Validate(); err != nil {
		return board.Rules{}, err
	}
	return r, nil
}

// StartLayout parses the level's layout. It returns nil when the level has none.
func (l Level) StartLayout() ([][]board.Color, error) {
	if len(l.Layout) == 0 {
		return nil, nil
	}
	layout, err := board.ParseLayout(l.Layout)
	if err != nil {
		return nil, err
	}
	if len(layout) != l.Rows || len(layout[0]) != l.Cols {
		return nil, ValidationError{
			Code:    "LAYOUT_SIZE",
			Message: fmt.Sprintf("layout is %dx%d, level is %dx%d", len(layout), len(layout[0]), l.Rows, l.Cols),
		}
	}
	for r, row := range layout {
		for c, col := range row {
			if col != board.NoColor && int(col) >= l.Colors {
				return nil, ValidationError{
					Code:    "LAYOUT_COLOR",
					Message: fmt.Sprintf("cell (%d,%d) uses %c but the level has %d colors", r, c, col.Letter(), l.Colors),
				}
			}
		}
	}
	return layout, nil
}

// Validate checks the palette and every level.
func (p LevelPack) Validate() error {
	if len(p.Palette.Colors) == 0 || len(p.Palette.Colors) > board.MaxColors {
		return ValidationError{
			Code:    "PALETTE_SIZE",
			Message: fmt.Sprintf("palette must have 1-%d colors, has %d", board.MaxColors, len(p.Palette.Colors)),
		}
	}
	names := make(map[string]bool, len(p.Palette.Colors))
	for _, c := range p.Palette.Colors {
		if c.Name == "" {
			continue
		}
		if names[c.Name] {
			return ValidationError{Code: "PALETTE_NAME", Message: fmt.Sprintf("duplicate palette color name %q", c.Name)}
		}
		names[c.Name] = true
	}
	if len(p.Levels) == 0 {
		return ValidationError{Code: "NO_LEVELS", Message: "level pack has no levels"}
	}

	seen := make(map[string]bool, len(p.Levels))
	for _, l := range p.Levels {
		if l.ID == "" {
			return ValidationError{Code: "LEVEL_ID", Message: "level without id"}
		}
		if seen[l.ID] {
			return ValidationError{Code: "LEVEL_ID", Message: fmt.Sprintf("duplicate level id %q", l.ID)}
		}
		seen[l.ID] = true

		if _, err := l.Rules(len(p.Palette.Colors)); err != nil {
			return fmt.Errorf("level %s: %w", l.ID, err)
		}
		if _, err := l.StartLayout(); err != nil {
			return fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	return nil
}

// Find returns the level with the given id.
func (p LevelPack) Find(id string) (Level, bool) {
	for _, l := range p.Levels {
		if l.ID == id {
			return l, true
		}
	}
	return Level{}, false
}

// Rules converts a level of this pack into engine rules.
func (p LevelPack) Rules(l Level) (board.Rules, error) {
	return l.Rules(len(p.Palette.Colors))
}
