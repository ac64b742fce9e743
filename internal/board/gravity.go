package board

// ApplyGravity compacts every line toward the anchor edge of the configured
// gravity. Relative order within a line is preserved. Only tiles that changed
// cell are reported. Running it twice in a row yields no moves the second time.
func (e *Engine) ApplyGravity() []Move {
	g := e.grid
	dir := e.rules.Gravity
	var moves []Move

	for i := 0; i < g.lineCount(dir); i++ {
		e.lineBuf = g.line(dir, i, e.lineBuf)
		write := 0
		for _, c := range e.lineBuf {
			t := g.cells[g.index(c)]
			if t == nil {
				continue
			}
			to := e.lineBuf[write]
			write++
			if to == c {
				continue
			}
			g.move(c, to)
			moves = append(moves, Move{Tile: t, From: c, To: to})
		}
	}
	return moves
}
