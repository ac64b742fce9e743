package board

import "strconv"

// ShuffleResult describes one deadlock shuffle.
type ShuffleResult struct {
	Moves      []Move    // Tiles whose cell changed
	Recolors   []Recolor // Non-empty only when no color had enough tiles
	Anchor     []Coord   // Protected cells holding the guaranteed match
	Color      Color     // Color of the guaranteed match
	Degenerate bool      // Fewer tiles than the match threshold; nothing was done
	Abandoned  int       // Permutation steps whose target search ran out of attempts
}

// Shuffle permutes tile positions so that at least one group reaches the
// match threshold afterwards.
//
// A connected anchor chain of threshold cells is chosen first. If some
// color has enough tiles, the first such color in palette order is moved
// into the chain. Otherwise the chain tiles are recolored to match the seed
// tile. The chain is then protected and every other tile is permuted with
// Fisher-Yates. Tiers are not updated; callers rescan afterwards.
func (e *Engine) Shuffle() ShuffleResult {
	g := e.grid
	k := e.rules.MatchThreshold

	tiles := g.Tiles()
	if len(tiles) < k {
		e.log.Warn("shuffle skipped", "tiles", len(tiles), "threshold", k)
		return ShuffleResult{Color: NoColor, Degenerate: true}
	}

	from := make([]Coord, len(tiles))
	var buckets [MaxColors][]*Tile
	for i, t := range tiles {
		from[i] = t.pos
		buckets[t.color] = append(buckets[t.color], t)
	}

	winner := -1
	for c := range buckets {
		if len(buckets[c]) >= k {
			winner = c
			break
		}
	}

	chain := e.anchorChain(k)
	protected := make([]bool, g.Len())
	for _, c := range chain {
		protected[g.index(c)] = true
	}

	res := ShuffleResult{Anchor: chain}
	if winner >= 0 {
		res.Color = Color(winner)
		for i, c := range chain {
			e.placeAt(buckets[winner][i], c)
		}
	} else {
		for _, c := range chain[1:] {
			if g.cells[g.index(c)] == nil {
				src := e.randomUnprotected(protected)
				g.move(src, c)
			}
		}
		seed := g.cells[g.index(chain[0])]
		res.Color = seed.color
		for _, c := range chain[1:] {
			t := g.cells[g.index(c)]
			if t.color != seed.color {
				res.Recolors = append(res.Recolors, Recolor{Tile: t, From: t.color, To: seed.color})
				t.color = seed.color
			}
		}
	}

	res.Abandoned = e.permute(protected)

	for i, t := range tiles {
		if t.pos != from[i] {
			res.Moves = append(res.Moves, Move{Tile: t, From: from[i], To: t.pos})
		}
	}

	e.log.Debug("shuffled",
		"anchor", chain,
		"color", res.Color.Letter(),
		"moves", len(res.Moves),
		"recolors", len(res.Recolors),
		"abandoned", res.Abandoned)
	return res
}

// placeAt puts t into cell c, swapping with the occupant if there is one.
func (e *Engine) placeAt(t *Tile, c Coord) {
	if t.pos == c {
		return
	}
	if e.grid.cells[e.grid.index(c)] != nil {
		e.grid.swap(t.pos, c)
		return
	}
	e.grid.move(t.pos, c)
}

// permute runs Fisher-Yates over occupied, unprotected cells from the last flat
// index down to 1. Each step resamples a target j <= i until it hits an eligible
// cell, giving up after rows*cols attempts. Returns the number of steps given up.
func (e *Engine) permute(protected []bool) int {
	g := e.grid
	budget := g.Len()
	abandoned := 0

	eligible := func(i int) bool {
		return g.cells[i] != nil && !protected[i]
	}

	for i := g.Len() - 1; i >= 1; i-- {
		if !eligible(i) {
			continue
		}
		j := -1
		for range budget {
			if cand := e.rng.IntN(i + 1); eligible(cand) {
				j = cand
				break
			}
		}
		if j < 0 {
			abandoned++
			continue
		}
		if j != i {
			g.swap(g.coord(i), g.coord(j))
		}
	}
	return abandoned
}

// randomUnprotected returns a random occupied cell outside the protected set.
func (e *Engine) randomUnprotected(protected []bool) Coord {
	g := e.grid
	var free []int
	for i, t := range g.cells {
		if t != nil && !protected[i] {
			free = append(free, i)
		}
	}
	if len(free) == 0 {
		panic("board: no unprotected tile left to relocate")
	}
	return g.coord(free[e.rng.IntN(len(free))])
}

// anchorChain returns k connected cells beginning at an occupied cell.
// Chains through occupied cells only are preferred; starts are tried from a
// random occupied cell onward in wrap-around order. When no such chain exists
// the chain may pass through empty cells.
func (e *Engine) anchorChain(k int) []Coord {
	g := e.grid
	var starts []int
	for i, t := range g.cells {
		if t != nil {
			starts = append(starts, i)
		}
	}

	offset := e.rng.IntN(len(starts))
	for n := range starts {
		start := g.coord(starts[(offset+n)%len(starts)])
		if chain := e.growChain(start, k, true); chain != nil {
			return chain
		}
	}

	start := g.coord(starts[offset])
	chain := e.growChain(start, k, false)
	if chain == nil {
		panic("board: no anchor chain of length " + strconv.Itoa(k))
	}
	return chain
}

// growChain extends a connected cell set from start by repeatedly adding a
// random cell from its frontier. Returns nil if the frontier runs dry first.
func (e *Engine) growChain(start Coord, k int, occupiedOnly bool) []Coord {
	g := e.grid
	in := make(map[Coord]bool, k)
	chain := make([]Coord, 0, k)
	chain = append(chain, start)
	in[start] = true

	var frontier []Coord
	for len(chain) < k {
		frontier = frontier[:0]
		seen := make(map[Coord]bool)
		for _, c := range chain {
			for _, n := range c.Neighbors() {
				if !g.InBounds(n) || in[n] || seen[n] {
					continue
				}
				if occupiedOnly && g.cells[g.index(n)] == nil {
					continue
				}
				seen[n] = true
				frontier = append(frontier, n)
			}
		}
		if len(frontier) == 0 {
			return nil
		}
		next := frontier[e.rng.IntN(len(frontier))]
		chain = append(chain, next)
		in[next] = true
	}
	return chain
}
