// Package sim plays headless ColorBlast games against the board engine.
// It is used to soak-test the resolution pipeline and to check that spawned
// colors are uniform over the active palette.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cheggaaa/pb/v3"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/config"
)

// Options configures a simulation run.
type Options struct {
	Pack    config.LevelPack
	Level   config.Level
	Games   int    // Independent games
	Turns   int    // Turns per game
	Workers int    // Concurrent games; 0 means GOMAXPROCS
	Seed    uint64 // Base seed for every game; 0 means random

	Progress io.Writer   // Progress bar output; nil hides the bar
	Logger   *log.Logger // nil discards
}

// gameStats is what one game contributes to the report.
type gameStats struct {
	turns      int
	stalled    bool
	removed    int
	shuffles   int
	recolors   int
	violations int
	groupSizes []float64
	spawns     []int
}

// Run plays opts.Games games of opts.Turns turns each, each game on its own
// engine, spread across opts.Workers goroutines. Every game picks a random
// matchable group per turn. Results are deterministic for a non-zero seed.
func Run(ctx context.Context, opts Options) (*Report, error) {
	if opts.Games < 1 || opts.Turns < 1 {
		return nil, fmt.Errorf("games and turns must be positive, got %d and %d", opts.Games, opts.Turns)
	}
	rules, err := opts.Pack.Rules(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", opts.Level.ID, err)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	workers = min(workers, opts.Games)
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// Game seeds are drawn up front so the report does not depend on scheduling.
	base := opts.Seed
	if base == 0 {
		base = uint64(time.Now().UnixNano())
	}
	seeder := board.NewRand(base)
	seeds := make([]uint64, opts.Games)
	for i := range seeds {
		seeds[i] = seeder.Uint64()
	}

	results := make([]gameStats, opts.Games)
	errs := make([]error, opts.Games)
	jobs := make(chan int, opts.Games)
	for i := range opts.Games {
		jobs <- i
	}
	close(jobs)

	bar := pb.New(opts.Games)
	if opts.Progress != nil {
		bar.SetWriter(opts.Progress)
	} else {
		bar.SetWriter(io.Discard)
	}
	bar.Start()

	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				results[i], errs[i] = playGame(ctx, opts, rules, seeds[i], logger)
				bar.Increment()
			}
		}()
	}
	wg.Wait()
	elapsed := time.Since(bar.StartTime())
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	report := newReport(opts.Level, opts.Pack.Palette, rules, base)
	for _, st := range results {
		report.add(st)
	}
	report.Elapsed = elapsed
	report.finish()
	logger.Info("simulation done", "level_id", opts.Level.ID, "games", report.Games, "turns", report.Turns, "elapsed", elapsed)
	return report, nil
}

// playGame runs one game on a fresh engine.
func playGame(ctx context.Context, opts Options, rules board.Rules, seed uint64, logger *log.Logger) (gameStats, error) {
	st := gameStats{spawns: make([]int, rules.ColorCount)}

	e, start, err := opts.Pack.StartLevel(opts.Level, seed, board.WithLogger(logger))
	if err != nil {
		return st, err
	}
	st.shuffles += start.Shuffles
	st.recolors += len(start.Recolored)
	st.countSpawns(start.Spawned)

	// The autoplayer draws from its own stream so engine draws match a
	// plain game with the same seed.
	pick := board.NewRand(seed ^ 0x9e3779b97f4a7c15)

	for range opts.Turns {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		groups := e.Finder().Matchable()
		if len(groups) == 0 {
			st.stalled = true
			logger.Debug("game stalled", "seed", seed, "turn", st.turns)
			break
		}
		g := groups[pick.IntN(len(groups))]

		turn, err := e.Select(g[0].Pos())
		if err != nil {
			return st, fmt.Errorf("seed %d turn %d: %w", seed, st.turns, err)
		}
		st.turns++
		st.removed += len(turn.Removed)
		st.groupSizes = append(st.groupSizes, float64(len(turn.Removed)))
		st.shuffles += turn.Shuffles
		st.recolors += len(turn.Recolored)
		st.countSpawns(turn.Spawned)

		if e.Grid().Occupied() != rules.Cells() {
			st.violations++
			logger.Error("board not full after turn", "seed", seed, "turn", st.turns, "occupied", e.Grid().Occupied())
		}
		if e.Finder().IsDeadlocked() {
			st.violations++
			logger.Error("board deadlocked after turn", "seed", seed, "turn", st.turns)
		}
	}
	return st, nil
}

func (st *gameStats) countSpawns(spawned []board.Spawn) {
	for _, s := range spawned {
		if int(s.Color) < len(st.spawns) {
			st.spawns[s.Color]++
		}
	}
}
