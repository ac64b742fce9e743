package board

import "strings"

// Grid is the board: a fixed rows x cols array of optional tiles.
// Cells are stored in row-major order: index = row*cols + col.
// A tile appears in at most one cell; the placement methods keep tile
// coordinates in sync with the cells.
type Grid struct {
	rows  int
	cols  int
	cells []*Tile
}

// NewGrid creates an empty grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]*Tile, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds returns true if the coordinate lies on the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) mustInBounds(c Coord) {
	if !g.InBounds(c) {
		panic("board: coordinate " + c.String() + " out of range")
	}
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

func (g *Grid) coord(i int) Coord {
	return Coord{Row: i / g.cols, Col: i % g.cols}
}

// At returns the tile at c, or nil for an empty cell. Panics if c is out of range.
func (g *Grid) At(c Coord) *Tile {
	g.mustInBounds(c)
	return g.cells[g.index(c)]
}

// Occupied returns the number of non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for _, t := range g.cells {
		if t != nil {
			n++
		}
	}
	return n
}

// Tiles returns all placed tiles in row-major order.
func (g *Grid) Tiles() []*Tile {
	out := make([]*Tile, 0, len(g.cells))
	for _, t := range g.cells {
		if t != nil {
			out = append(out, t)
		}
	}
	return out
}

// Colors returns a snapshot of cell colors; empty cells are NoColor.
func (g *Grid) Colors() [][]Color {
	out := make([][]Color, g.rows)
	for r := range g.rows {
		out[r] = make([]Color, g.cols)
		for c := range g.cols {
			if t := g.cells[r*g.cols+c]; t != nil {
				out[r][c] = t.color
			} else {
				out[r][c] = NoColor
			}
		}
	}
	return out
}

// ColorCounts returns how many placed tiles carry each color.
func (g *Grid) ColorCounts() map[Color]int {
	counts := make(map[Color]int)
	for _, t := range g.cells {
		if t != nil {
			counts[t.color]++
		}
	}
	return counts
}

// String renders the grid as layout letters, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := range g.rows {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := range g.cols {
			t := g.cells[r*g.cols+c]
			if t == nil {
				sb.WriteRune(NoColor.Letter())
			} else {
				sb.WriteRune(t.color.Letter())
			}
		}
	}
	return sb.String()
}

// place puts an unplaced tile into an empty cell.
func (g *Grid) place(t *Tile, c Coord) {
	g.mustInBounds(c)
	if t.placed {
		panic("board: tile already placed at " + t.pos.String())
	}
	i := g.index(c)
	if g.cells[i] != nil {
		panic("board: cell " + c.String() + " is already occupied")
	}
	g.cells[i] = t
	t.pos = c
	t.placed = true
}

// take empties a cell and returns its tile (nil if it was empty).
func (g *Grid) take(c Coord) *Tile {
	g.mustInBounds(c)
	i := g.index(c)
	t := g.cells[i]
	if t == nil {
		return nil
	}
	g.cells[i] = nil
	t.placed = false
	return t
}

// move relocates the tile at from into the empty cell to.
func (g *Grid) move(from, to Coord) {
	g.mustInBounds(from)
	g.mustInBounds(to)
	fi, ti := g.index(from), g.index(to)
	if g.cells[ti] != nil {
		panic("board: move target " + to.String() + " is occupied")
	}
	t := g.cells[fi]
	g.cells[fi] = nil
	g.cells[ti] = t
	if t != nil {
		t.pos = to
	}
}

// swap exchanges the contents of two cells. Either may be empty.
func (g *Grid) swap(a, b Coord) {
	g.mustInBounds(a)
	g.mustInBounds(b)
	ai, bi := g.index(a), g.index(b)
	g.cells[ai], g.cells[bi] = g.cells[bi], g.cells[ai]
	if t := g.cells[ai]; t != nil {
		t.pos = a
	}
	if t := g.cells[bi]; t != nil {
		t.pos = b
	}
}

// lineCount returns the number of lines gravity compacts independently.
func (g *Grid) lineCount(dir Gravity) int {
	if dir.alongRows() {
		return g.rows
	}
	return g.cols
}

// line writes the cells of line i into buf, ordered from the anchor edge outward.
func (g *Grid) line(dir Gravity, i int, buf []Coord) []Coord {
	buf = buf[:0]
	switch dir {
	case GravityLeft:
		for c := 0; c < g.cols; c++ {
			buf = append(buf, Coord{Row: i, Col: c})
		}
	case GravityRight:
		for c := g.cols - 1; c >= 0; c-- {
			buf = append(buf, Coord{Row: i, Col: c})
		}
	case GravityUp:
		for r := 0; r < g.rows; r++ {
			buf = append(buf, Coord{Row: r, Col: i})
		}
	case GravityDown:
		for r := g.rows - 1; r >= 0; r-- {
			buf = append(buf, Coord{Row: r, Col: i})
		}
	}
	return buf
}
