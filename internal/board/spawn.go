package board

// randomColor draws uniformly from the active palette.
func (e *Engine) randomColor() Color {
	return Color(e.rng.IntN(e.rules.ColorCount))
}

// spawnAt acquires a tile from the pool, colors it and places it at c.
func (e *Engine) spawnAt(c Coord) Spawn {
	t := e.pool.Acquire()
	if t.placed {
		panic("board: pool returned a tile that is still placed at " + t.pos.String())
	}
	t.color = e.randomColor()
	t.tier = TierDefault
	e.grid.place(t, c)
	return Spawn{Tile: t, At: c, Color: t.color}
}

// SpawnNewTiles fills the trailing empty run of every line, the cells farthest
// from the anchor edge, with new random tiles. Tiles are placed closest to the
// anchor first. Empty cells with an occupied cell beyond them are left alone.
func (e *Engine) SpawnNewTiles() []Spawn {
	g := e.grid
	dir := e.rules.Gravity
	var spawned []Spawn

	for i := 0; i < g.lineCount(dir); i++ {
		e.lineBuf = g.line(dir, i, e.lineBuf)
		n := len(e.lineBuf)
		empty := 0
		for k := n - 1; k >= 0 && g.cells[g.index(e.lineBuf[k])] == nil; k-- {
			empty++
		}
		for k := n - empty; k < n; k++ {
			spawned = append(spawned, e.spawnAt(e.lineBuf[k]))
		}
	}
	return spawned
}

// CreateAtStart fills every empty cell in row-major order without applying gravity.
func (e *Engine) CreateAtStart() []Spawn {
	g := e.grid
	var spawned []Spawn
	for i, t := range g.cells {
		if t == nil {
			spawned = append(spawned, e.spawnAt(g.coord(i)))
		}
	}
	return spawned
}
