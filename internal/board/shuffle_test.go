package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/colorblast/internal/board"
)

func TestShuffleGuaranteesMatch(t *testing.T) {
	shapes := []struct{ rows, cols int }{
		{1, 2}, {2, 1}, {2, 2}, {3, 3}, {1, 10}, {4, 7}, {10, 10},
	}
	fills := []float64{1.0, 0.5, 0.15}
	rng := rand.New(rand.NewPCG(99, 1))

	for _, sh := range shapes {
		for _, fill := range fills {
			for threshold := 2; threshold <= 4; threshold++ {
				if threshold > sh.rows*sh.cols {
					continue
				}
				for seed := range uint64(30) {
					r := rulesFor(sh.rows, sh.cols)
					r.MatchThreshold = threshold
					colors := 1 + rng.IntN(board.MaxColors)
					layout := randomLayout(rng, sh.rows, sh.cols, colors, fill)

					e := board.New(r, board.WithSeed(seed+1))
					if err := e.Load(layout); err != nil {
						t.Fatalf("Load failed: %v", err)
					}
					checkShuffle(t, e)
				}
			}
		}
	}
}

func checkShuffle(t *testing.T, e *board.Engine) {
	t.Helper()
	g := e.Grid()
	k := e.Finder().Threshold()
	if k != e.Rules().MatchThreshold {
		t.Fatalf("finder threshold %d, rules say %d", k, e.Rules().MatchThreshold)
	}
	layout := g.String()
	counts := g.ColorCounts()
	occupied := g.Occupied()

	pos := make(map[*board.Tile]board.Coord)
	for _, tile := range g.Tiles() {
		pos[tile] = tile.Pos()
	}

	res := e.Shuffle()

	if occupied < k {
		if !res.Degenerate {
			t.Fatalf("%d tiles under threshold %d: expected degenerate shuffle", occupied, k)
		}
		if g.String() != layout {
			t.Fatalf("degenerate shuffle changed the board\nbefore:\n%s\nafter:\n%s", layout, g)
		}
		return
	}

	if res.Degenerate {
		t.Fatalf("unexpected degenerate shuffle with %d tiles, threshold %d", occupied, k)
	}
	if e.Finder().IsDeadlocked() {
		t.Fatalf("deadlocked after shuffle (threshold %d)\nbefore:\n%s\nafter:\n%s", k, layout, g)
	}
	if g.Occupied() != occupied {
		t.Fatalf("shuffle changed tile count from %d to %d", occupied, g.Occupied())
	}

	// Anchor cells form a connected match of the reported color.
	if len(res.Anchor) != k {
		t.Fatalf("anchor has %d cells, want %d", len(res.Anchor), k)
	}
	for i, c := range res.Anchor[1:] {
		linked := false
		for _, prev := range res.Anchor[:i+1] {
			if c.Adjacent(prev) {
				linked = true
				break
			}
		}
		if !linked {
			t.Fatalf("anchor cell %v does not touch an earlier anchor cell %v", c, res.Anchor[:i+1])
		}
	}
	anchorGroup := e.Finder().GetGroup(res.Anchor[0])
	for _, c := range res.Anchor {
		tile := g.At(c)
		if tile == nil || tile.Color() != res.Color {
			t.Fatalf("anchor cell %v does not hold color %v\n%s", c, res.Color, g)
		}
		if !anchorGroup.Contains(c) {
			t.Fatalf("anchor cell %v is not connected to the anchor group\n%s", c, g)
		}
	}

	// Every tile that changed cell is reported exactly once, with its real destination.
	reported := make(map[*board.Tile]bool)
	for _, m := range res.Moves {
		if reported[m.Tile] {
			t.Fatalf("tile %d reported twice", m.Tile.ID())
		}
		reported[m.Tile] = true
		if m.From != pos[m.Tile] || m.To != m.Tile.Pos() {
			t.Fatalf("tile %d move %v->%v, actual %v->%v", m.Tile.ID(), m.From, m.To, pos[m.Tile], m.Tile.Pos())
		}
	}
	for tile, from := range pos {
		if tile.Pos() != from && !reported[tile] {
			t.Fatalf("tile %d moved from %v to %v without a report", tile.ID(), from, tile.Pos())
		}
	}

	// Colors are conserved unless no color could form a match by itself.
	if len(res.Recolors) == 0 {
		if !colorCountsEqual(counts, g.ColorCounts()) {
			t.Fatalf("color multiset changed without recolors: %v -> %v", counts, g.ColorCounts())
		}
		return
	}
	for c, n := range counts {
		if n >= k {
			t.Fatalf("recolored although color %v had %d tiles (threshold %d)", c, n, k)
		}
	}
	if len(res.Recolors) > k-1 {
		t.Fatalf("recolored %d tiles, at most %d allowed", len(res.Recolors), k-1)
	}
}

func TestShuffleSingleColorBoard(t *testing.T) {
	r := rulesFor(1, 1)
	r.ColorCount = 1
	e := load(t, r,
		"AAAA",
		"AAAA",
		"AAAA",
	)
	if e.Finder().IsDeadlocked() {
		t.Fatal("single-color board must not be deadlocked")
	}
	res := e.Shuffle()
	if res.Degenerate || len(res.Recolors) != 0 {
		t.Errorf("unexpected result: degenerate=%v recolors=%d", res.Degenerate, len(res.Recolors))
	}
	if e.Finder().IsDeadlocked() {
		t.Error("deadlocked after shuffle")
	}
	if n := e.Grid().ColorCounts()[0]; n != 12 {
		t.Errorf("color A count = %d, want 12", n)
	}
}

func TestShuffleBelowThresholdIsNoop(t *testing.T) {
	r := rulesFor(1, 1)
	r.MatchThreshold = 3
	e := load(t, r,
		"A..",
		"..B",
	)
	res := e.Shuffle()
	if !res.Degenerate {
		t.Fatal("expected degenerate shuffle")
	}
	if len(res.Moves) != 0 || len(res.Recolors) != 0 {
		t.Errorf("degenerate shuffle reported moves=%d recolors=%d", len(res.Moves), len(res.Recolors))
	}
	if got := e.Grid().String(); got != "A..\n..B" {
		t.Errorf("board changed:\n%s", got)
	}
}

func TestShuffleEmptyBoard(t *testing.T) {
	e := load(t, rulesFor(1, 1), "..", "..")
	if res := e.Shuffle(); !res.Degenerate {
		t.Error("expected degenerate shuffle on an empty board")
	}
}

func TestShuffleCornerPair(t *testing.T) {
	for seed := range uint64(50) {
		r := rulesFor(2, 2)
		e := board.New(r, board.WithSeed(seed+1))
		layout, _ := board.ParseLayout([]string{"AB", "BA"})
		if err := e.Load(layout); err != nil {
			t.Fatal(err)
		}
		if !e.Finder().IsDeadlocked() {
			t.Fatal("checkerboard must start deadlocked")
		}
		res := e.Shuffle()
		if res.Color != 0 {
			t.Errorf("seed %d: matched color %v, want A (first color in palette order)", seed, res.Color)
		}
		if len(res.Recolors) != 0 {
			t.Errorf("seed %d: unexpected recolor", seed)
		}
		if e.Finder().IsDeadlocked() {
			t.Errorf("seed %d: deadlocked after shuffle\n%s", seed, e.Grid())
		}
	}
}

func TestShuffleRecolorFallback(t *testing.T) {
	for seed := range uint64(50) {
		r := rulesFor(1, 4)
		e := board.New(r, board.WithSeed(seed+1))
		layout, _ := board.ParseLayout([]string{"ABCD"})
		if err := e.Load(layout); err != nil {
			t.Fatal(err)
		}
		before := e.Grid().ColorCounts()

		res := e.Shuffle()
		if len(res.Recolors) != 1 {
			t.Fatalf("seed %d: recolors = %d, want exactly 1", seed, len(res.Recolors))
		}
		rc := res.Recolors[0]
		if rc.Tile.Color() != rc.To || rc.From == rc.To {
			t.Errorf("seed %d: bad recolor %+v", seed, rc)
		}
		after := e.Grid().ColorCounts()
		if after[rc.From] != before[rc.From]-1 || after[rc.To] != before[rc.To]+1 {
			t.Errorf("seed %d: colors %v -> %v do not match recolor %v->%v", seed, before, after, rc.From, rc.To)
		}
		if e.Finder().IsDeadlocked() {
			t.Errorf("seed %d: deadlocked after recolor\n%s", seed, e.Grid())
		}
	}
}

func TestShuffleSparseBoardUsesEmptyCells(t *testing.T) {
	// Tiles are scattered so no two are adjacent; the anchor must pull them together.
	r := rulesFor(1, 1)
	r.MatchThreshold = 3
	for seed := range uint64(50) {
		r.Rows, r.Cols = 3, 5
		e := board.New(r, board.WithSeed(seed+1))
		layout, _ := board.ParseLayout([]string{
			"A.A.A",
			".....",
			"B...B",
		})
		if err := e.Load(layout); err != nil {
			t.Fatal(err)
		}
		checkShuffle(t, e)
	}
}
