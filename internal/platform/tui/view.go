package tui

import (
	"strings"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/config"
)

// Board layout constants
const (
	cellWidth   = 2 // Glyph plus a spacer column
	emptyGlyph  = "·"
	burstGlyph  = "✕"
	boardIndent = 2 // Columns left of the board
)

// BoardView describes one rendering of a grid.
type BoardView struct {
	Grid       *board.Grid
	Palette    config.Palette
	Theme      Theme
	Cursor     board.Coord
	ShowCursor bool
	Burst      []board.Coord // Cells emptied by the turn being resolved
}

// RenderBoard draws the grid, one line per row, cellWidth columns per cell.
func RenderBoard(v BoardView) string {
	burst := make(map[board.Coord]bool, len(v.Burst))
	for _, c := range v.Burst {
		burst[c] = true
	}

	var b strings.Builder
	for r := range v.Grid.Rows() {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := range v.Grid.Cols() {
			at := board.At(r, c)
			b.WriteString(renderCell(v, at, burst[at]))
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func renderCell(v BoardView, at board.Coord, burst bool) string {
	t := v.Grid.At(at)

	var glyph string
	style := v.Theme.EmptyCell
	switch {
	case t != nil:
		glyph = v.Palette.Glyphs.For(t.Tier())
		style = v.Theme.tile(int(t.Color()))
	case burst:
		glyph = burstGlyph
		style = v.Theme.Burst
	default:
		glyph = emptyGlyph
	}
	if glyph == "" {
		glyph = string(tileLetter(t))
	}

	if v.ShowCursor && at == v.Cursor {
		style = style.Inherit(v.Theme.Cursor)
	}
	return style.Render(glyph)
}

func tileLetter(t *board.Tile) rune {
	if t == nil {
		return '.'
	}
	return t.Color().Letter()
}
