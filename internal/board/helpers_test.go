package board_test

import (
	"math/rand/v2"
	"testing"

	"github.com/vovakirdan/colorblast/internal/board"
)

// rulesFor returns default rules resized to rows x cols.
func rulesFor(rows, cols int) board.Rules {
	r := board.DefaultRules()
	r.Rows = rows
	r.Cols = cols
	return r
}

// load builds an engine whose board matches the layout rows.
func load(t *testing.T, r board.Rules, rows ...string) *board.Engine {
	t.Helper()
	layout, err := board.ParseLayout(rows)
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	r.Rows = len(layout)
	r.Cols = len(layout[0])
	e := board.New(r, board.WithSeed(1))
	if err := e.Load(layout); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return e
}

// randomLayout fills roughly fill of the cells with random colors.
func randomLayout(rng *rand.Rand, rows, cols, colors int, fill float64) [][]board.Color {
	out := make([][]board.Color, rows)
	for r := range out {
		out[r] = make([]board.Color, cols)
		for c := range out[r] {
			if rng.Float64() < fill {
				out[r][c] = board.Color(rng.IntN(colors))
			} else {
				out[r][c] = board.NoColor
			}
		}
	}
	return out
}

// seqRand replays a fixed sequence of values, wrapping around.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// assertTiers checks every tile's tier against its current group size.
func assertTiers(t *testing.T, e *board.Engine) {
	t.Helper()
	tiers := e.Rules().Tiers
	for _, tile := range e.Grid().Tiles() {
		size := e.Finder().GetGroup(tile.Pos()).Len()
		if want := tiers.For(size); tile.Tier() != want {
			t.Errorf("tile %d at %v: tier %v, want %v (group size %d)", tile.ID(), tile.Pos(), tile.Tier(), want, size)
		}
	}
}

func colorCountsEqual(a, b map[board.Color]int) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
