package board

import "fmt"

// Coord addresses a grid cell. Row and Col are zero-based.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns the coordinate as "(row,col)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Neighbors returns the four orthogonal neighbors. Some may be out of bounds.
func (c Coord) Neighbors() [4]Coord {
	return [4]Coord{
		c.Add(1, 0),
		c.Add(-1, 0),
		c.Add(0, 1),
		c.Add(0, -1),
	}
}

// Adjacent reports whether two coordinates share an edge.
func (c Coord) Adjacent(other Coord) bool {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}
