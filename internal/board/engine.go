package board

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Engine owns one board and runs the resolution pipeline on it.
// It is synchronous and must not be shared between goroutines.
type Engine struct {
	rules  Rules
	grid   *Grid
	finder *Finder
	pool   Pool
	rng    Rand
	log    *log.Logger

	state   State
	next    Phase
	pending pending

	lineBuf []Coord
}

// pending carries the deltas one turn's later phases depend on.
type pending struct {
	removed []Coord
	moved   []Move
	spawned []Spawn
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random source used for spawning and shuffling.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a fresh PCG source. See NewRand.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = NewRand(seed) }
}

// WithPool sets the tile pool. The default is a FreeList.
func WithPool(p Pool) Option {
	return func(e *Engine) { e.pool = p }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an engine with an empty board.
// Panics if the rules are invalid; validate untrusted rules with Rules.Validate first.
func New(r Rules, opts ...Option) *Engine {
	if err := r.Validate(); err != nil {
		panic("board: invalid rules: " + err.Error())
	}
	grid := NewGrid(r.Rows, r.Cols)
	e := &Engine{
		rules:  r,
		grid:   grid,
		finder: NewFinder(grid, r),
		state:  StateIdle,
		next:   PhaseDone,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = NewRand(0)
	}
	if e.pool == nil {
		e.pool = NewFreeList()
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	return e
}

// Rules returns the rule set the engine was built with.
func (e *Engine) Rules() Rules { return e.rules }

// Grid returns the live board. Callers must not mutate it during resolution.
func (e *Engine) Grid() *Grid { return e.grid }

// Finder returns the engine's group finder.
func (e *Engine) Finder() *Finder { return e.finder }

// Pool returns the tile pool.
func (e *Engine) Pool() Pool { return e.pool }

// Load replaces the board contents with a layout of colors (NoColor for empty
// cells) and recomputes tiers. Existing tiles are released to the pool.
func (e *Engine) Load(layout [][]Color) error {
	if e.state == StateAbandoned {
		return ErrAbandoned
	}
	if e.state != StateIdle {
		return ErrBusy
	}
	if len(layout) != e.rules.Rows {
		return &RuleError{
			Code:    "LAYOUT_SIZE",
			Message: fmt.Sprintf("layout has %d rows, board has %d", len(layout), e.rules.Rows),
		}
	}
	for r, row := range layout {
		if len(row) != e.rules.Cols {
			return &RuleError{
				Code:    "LAYOUT_SIZE",
				Message: fmt.Sprintf("layout row %d has %d cells, board has %d", r, len(row), e.rules.Cols),
			}
		}
		for c, col := range row {
			if col != NoColor && int(col) >= e.rules.paletteSize() {
				return &RuleError{
					Code:    "LAYOUT_COLOR",
					Message: fmt.Sprintf("color %c at (%d,%d) is outside the palette", col.Letter(), r, c),
				}
			}
		}
	}

	e.Clear()
	for r, row := range layout {
		for c, col := range row {
			if col == NoColor {
				continue
			}
			t := e.pool.Acquire()
			t.color = col
			e.grid.place(t, Coord{Row: r, Col: c})
		}
	}
	e.finder.CheckAll()
	return nil
}

// Clear removes every tile and returns it to the pool.
func (e *Engine) Clear() {
	for i := range e.grid.cells {
		if t := e.grid.take(e.grid.coord(i)); t != nil {
			e.pool.Release(t)
		}
	}
}
