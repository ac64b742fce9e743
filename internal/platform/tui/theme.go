package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorblast/internal/config"
)

// Theme contains the visual styles of the board screen and level picker.
type Theme struct {
	// Tile styles in palette order
	Tiles     []lipgloss.Style
	EmptyCell lipgloss.Style
	Cursor    lipgloss.Style // Applied on top of the tile style
	Burst     lipgloss.Style // Cells emptied by the current turn

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDStatus    lipgloss.Style
	HUDControls  lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuDescription lipgloss.Style
}

// DefaultTheme returns the default visual theme for a palette.
func DefaultTheme(p config.Palette) Theme {
	tiles := make([]lipgloss.Style, len(p.Colors))
	for i, c := range p.Colors {
		tiles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Code))
	}

	return Theme{
		Tiles:     tiles,
		EmptyCell: lipgloss.NewStyle().Foreground(lipgloss.Color("238")), // Dark gray
		Cursor:    lipgloss.NewStyle().Reverse(true).Bold(true),
		Burst:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDStatus:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// MonochromeTheme returns a grayscale theme; tiles differ by shade only.
func MonochromeTheme(p config.Palette) Theme {
	theme := DefaultTheme(p)
	shades := []string{"255", "250", "245", "240", "236", "232"}
	for i := range theme.Tiles {
		theme.Tiles[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(shades[i%len(shades)]))
	}
	return theme
}

// ThemeByName returns a theme by name: "default" or "mono".
func ThemeByName(name string, p config.Palette) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme(p), true
	case "mono", "monochrome":
		return MonochromeTheme(p), true
	}
	return Theme{}, false
}

// tile returns the style of a palette color.
func (t Theme) tile(i int) lipgloss.Style {
	if i < 0 || i >= len(t.Tiles) {
		return t.EmptyCell
	}
	return t.Tiles[i]
}
