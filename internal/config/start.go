package config

import (
	"fmt"

	"github.com/vovakirdan/colorblast/internal/board"
)

// StartLevel builds an engine for a level of this pack and starts it.
// A fixed layout is loaded first; its empty cells are filled by the start.
// A zero seed falls back to the level seed, and a zero level seed to the clock.
// Options passed by the caller are applied after the seed.
func (p LevelPack) StartLevel(l Level, seed uint64, opts ...board.Option) (*board.Engine, board.Turn, error) {
	rules, err := p.Rules(l)
	if err != nil {
		return nil, board.Turn{}, fmt.Errorf("level %s: %w", l.ID, err)
	}
	layout, err := l.StartLayout()
	if err != nil {
		return nil, board.Turn{}, fmt.Errorf("level %s: %w", l.ID, err)
	}

	if seed == 0 {
		seed = l.Seed
	}
	e := board.New(rules, append([]board.Option{board.WithSeed(seed)}, opts...)...)
	if layout != nil {
		if err := e.Load(layout); err != nil {
			return nil, board.Turn{}, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	return e, e.Start(), nil
}
