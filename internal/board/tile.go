package board

import "strings"

// Color is an index into the level palette.
type Color uint8

// NoColor marks an empty cell in layouts and a reset tile.
const NoColor Color = 0xFF

// MaxColors is the largest number of colors a level may activate.
const MaxColors = 6

// Letter returns the layout letter for a color ('A' for 0, 'B' for 1, ...).
// Empty cells are '.'.
func (c Color) Letter() rune {
	if c == NoColor {
		return '.'
	}
	return rune('A' + int(c))
}

// ParseLayout converts rows of layout letters into colors.
// Letters are case-insensitive ('A' is color 0); '.' is an empty cell.
func ParseLayout(rows []string) ([][]Color, error) {
	out := make([][]Color, len(rows))
	width := -1
	for r, line := range rows {
		line = strings.ReplaceAll(line, " ", "")
		if width >= 0 && len(line) != width {
			return nil, &RuleError{
				Code:    "LAYOUT_RAGGED",
				Message: "layout rows must all have the same length",
			}
		}
		width = len(line)
		out[r] = make([]Color, len(line))
		for i, ch := range strings.ToUpper(line) {
			switch {
			case ch == '.':
				out[r][i] = NoColor
			case ch >= 'A' && ch < 'A'+MaxColors:
				out[r][i] = Color(ch - 'A')
			default:
				return nil, &RuleError{
					Code:    "LAYOUT_CHAR",
					Message: "unsupported layout character " + string(ch),
				}
			}
		}
	}
	return out, nil
}

// TileID is the stable handle of a tile. Pooled tiles keep their ID across reuse.
type TileID uint64

// Tile is a single colored piece on the board.
// A placed tile occupies exactly one grid cell; Pos is only meaningful while placed.
type Tile struct {
	id     TileID
	color  Color
	tier   Tier
	pos    Coord
	placed bool
}

// ID returns the tile's stable handle.
func (t *Tile) ID() TileID { return t.id }

// Color returns the tile's palette index.
func (t *Tile) Color() Color { return t.color }

// Tier returns the display tier derived from the tile's current group.
func (t *Tile) Tier() Tier { return t.tier }

// Pos returns the cell the tile occupies.
func (t *Tile) Pos() Coord { return t.pos }

// Placed reports whether the tile currently sits on a grid.
func (t *Tile) Placed() bool { return t.placed }

// reset clears everything but the handle, readying the tile for reuse.
func (t *Tile) reset() {
	t.color = NoColor
	t.tier = TierDefault
	t.pos = Coord{Row: -1, Col: -1}
	t.placed = false
}

// Pool hands out tiles for spawning and takes back removed tiles.
// Acquire must return a tile that is not placed on any grid.
type Pool interface {
	Acquire() *Tile
	Release(t *Tile)
}

// FreeList is the default Pool: released tiles are reused before new ones are allocated.
type FreeList struct {
	free   []*Tile
	nextID TileID
}

// NewFreeList creates an empty free list. IDs start at 1.
func NewFreeList() *FreeList {
	return &FreeList{nextID: 1}
}

// Acquire returns a reset tile, reusing a released one when available.
func (p *FreeList) Acquire() *Tile {
	if n := len(p.free); n > 0 {
		t := p.free[n-1]
		p.free = p.free[:n-1]
		t.reset()
		return t
	}
	t := &Tile{id: p.nextID}
	p.nextID++
	t.reset()
	return t
}

// Release returns a tile to the free list. The tile must already be off the grid.
func (p *FreeList) Release(t *Tile) {
	if t.placed {
		panic("board: releasing a tile that is still placed at " + t.pos.String())
	}
	p.free = append(p.free, t)
}

// Allocated returns how many distinct tiles the list has ever created.
func (p *FreeList) Allocated() int {
	return int(p.nextID - 1)
}

// Idle returns how many released tiles are waiting for reuse.
func (p *FreeList) Idle() int {
	return len(p.free)
}
