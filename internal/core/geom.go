package core

// Rect is an axis-aligned screen region, used to hit-test mouse clicks.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Cell maps a point inside the rectangle to a (row, col) pair of a grid whose
// cells are cellW characters wide and one line tall.
func (r Rect) Cell(x, y, cellW int) (row, col int, ok bool) {
	if !r.Contains(x, y) || cellW <= 0 {
		return 0, 0, false
	}
	return y - r.Y, (x - r.X) / cellW, true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
