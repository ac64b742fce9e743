package board

// Finder detects connected same-color groups on a grid.
// Its scratch buffers are sized once and cleared between scans.
type Finder struct {
	grid      *Grid
	threshold int
	tiers     Tiers

	visited  []bool
	affected []bool
	queue    []Coord
	group    []*Tile
	changes  []TierChange
}

// NewFinder creates a finder bound to a grid.
func NewFinder(g *Grid, r Rules) *Finder {
	return &Finder{
		grid:      g,
		threshold: r.MatchThreshold,
		tiers:     r.Tiers,
		visited:   make([]bool, g.Len()),
		affected:  make([]bool, g.Len()),
		queue:     make([]Coord, 0, g.Len()*4),
		group:     make([]*Tile, 0, g.Len()),
	}
}

// Threshold returns the minimum matchable group size.
func (f *Finder) Threshold() int { return f.threshold }

func (f *Finder) clearVisited() {
	for i := range f.visited {
		f.visited[i] = false
	}
}

// flood collects the group containing start into f.group.
// Neighbors are enqueued unconditionally and filtered when dequeued.
func (f *Finder) flood(start Coord, color Color) []*Tile {
	g := f.grid
	f.group = f.group[:0]
	f.queue = append(f.queue[:0], start)

	for head := 0; head < len(f.queue); head++ {
		c := f.queue[head]
		if !g.InBounds(c) {
			continue
		}
		i := g.index(c)
		if f.visited[i] {
			continue
		}
		t := g.cells[i]
		if t == nil || t.color != color {
			continue
		}

		f.visited[i] = true
		f.group = append(f.group, t)

		for _, n := range c.Neighbors() {
			f.queue = append(f.queue, n)
		}
	}
	return f.group
}

// assign sets every member's tier from the group size and records changes.
func (f *Finder) assign(group []*Tile) {
	tier := f.tiers.For(len(group))
	for _, t := range group {
		if t.tier != tier {
			f.changes = append(f.changes, TierChange{Tile: t, From: t.tier, To: tier})
			t.tier = tier
		}
	}
}

// CheckAll recomputes every tile's tier from its current group.
// Returns the tiles whose tier changed.
func (f *Finder) CheckAll() []TierChange {
	g := f.grid
	f.clearVisited()
	f.changes = nil

	for i, t := range g.cells {
		if t == nil || f.visited[i] {
			continue
		}
		f.assign(f.flood(g.coord(i), t.color))
	}
	return f.changes
}

// CheckAffected recomputes tiers only around cells that changed: the old and
// new cells of moved tiles, spawned cells, any extra cells (for example
// removed positions) and the orthogonal neighbors of all of those.
// Each affected tile's whole group is re-flooded, so groups that merged or
// split through an affected cell are fully updated.
func (f *Finder) CheckAffected(moved []Move, spawned []Spawn, extra ...Coord) []TierChange {
	g := f.grid
	for i := range f.affected {
		f.affected[i] = false
	}
	mark := func(c Coord) {
		if g.InBounds(c) {
			f.affected[g.index(c)] = true
		}
		for _, n := range c.Neighbors() {
			if g.InBounds(n) {
				f.affected[g.index(n)] = true
			}
		}
	}
	for _, m := range moved {
		mark(m.From)
		mark(m.To)
	}
	for _, s := range spawned {
		mark(s.At)
	}
	for _, c := range extra {
		mark(c)
	}

	f.clearVisited()
	f.changes = nil
	for i, hit := range f.affected {
		if !hit || f.visited[i] {
			continue
		}
		t := g.cells[i]
		if t == nil {
			continue
		}
		f.assign(f.flood(g.coord(i), t.color))
	}
	return f.changes
}

// GetGroup returns the group containing c. An empty cell yields an empty group.
// Panics if c is out of range.
func (f *Finder) GetGroup(c Coord) Group {
	t := f.grid.At(c)
	if t == nil {
		return Group{}
	}
	f.clearVisited()
	members := f.flood(c, t.color)
	out := make(Group, len(members))
	copy(out, members)
	return out
}

// IsDeadlocked returns true if no group reaches the match threshold.
// Scanning stops at the first matchable group.
func (f *Finder) IsDeadlocked() bool {
	g := f.grid
	f.clearVisited()
	for i, t := range g.cells {
		if t == nil || f.visited[i] {
			continue
		}
		if len(f.flood(g.coord(i), t.color)) >= f.threshold {
			return false
		}
	}
	return true
}

// Groups returns every group on the board in row-major discovery order.
func (f *Finder) Groups() []Group {
	g := f.grid
	f.clearVisited()
	var out []Group
	for i, t := range g.cells {
		if t == nil || f.visited[i] {
			continue
		}
		members := f.flood(g.coord(i), t.color)
		grp := make(Group, len(members))
		copy(grp, members)
		out = append(out, grp)
	}
	return out
}

// Matchable returns the groups that reach the match threshold.
func (f *Finder) Matchable() []Group {
	var out []Group
	for _, grp := range f.Groups() {
		if len(grp) >= f.threshold {
			out = append(out, grp)
		}
	}
	return out
}
