package board

// Removal reports a tile taken off the board. The tile has already been
// released to the pool, so Color is captured here.
type Removal struct {
	Tile  *Tile
	At    Coord
	Color Color
}

// Move reports a tile that changed cells.
type Move struct {
	Tile *Tile
	From Coord
	To   Coord
}

// Spawn reports a newly created tile.
type Spawn struct {
	Tile  *Tile
	At    Coord
	Color Color
}

// Recolor reports a tile whose color was changed by the shuffle fallback.
type Recolor struct {
	Tile *Tile
	From Color
	To   Color
}

// TierChange reports a tile whose display tier changed.
type TierChange struct {
	Tile *Tile
	From Tier
	To   Tier
}

// Group is a maximal 4-connected set of same-colored tiles.
type Group []*Tile

// Len returns the group size.
func (g Group) Len() int { return len(g) }

// Color returns the group's color, or NoColor for an empty group.
func (g Group) Color() Color {
	if len(g) == 0 {
		return NoColor
	}
	return g[0].color
}

// Coords returns the member coordinates.
func (g Group) Coords() []Coord {
	out := make([]Coord, len(g))
	for i, t := range g {
		out[i] = t.pos
	}
	return out
}

// Contains reports whether a member occupies c.
func (g Group) Contains(c Coord) bool {
	for _, t := range g {
		if t.pos == c {
			return true
		}
	}
	return false
}
