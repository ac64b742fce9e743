package board

import "errors"

var (
	// ErrBusy is returned when a selection arrives while a turn is still resolving.
	ErrBusy = errors.New("board: resolution in progress")
	// ErrIdle is returned by Advance when no turn is pending.
	ErrIdle = errors.New("board: no resolution pending")
	// ErrAbandoned is returned by every call after Abandon.
	ErrAbandoned = errors.New("board: engine abandoned")
)

// State is the pipeline state.
type State uint8

const (
	StateIdle State = iota
	StateResolving
	StateShuffling
	StateAbandoned
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolving:
		return "resolving"
	case StateShuffling:
		return "shuffling"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Phase is one step of a turn's resolution.
type Phase uint8

const (
	PhaseRemove Phase = iota
	PhaseGravity
	PhaseSpawn
	PhaseRescan
	PhaseShuffle
	// PhaseDone is the pending phase of an idle engine.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseRemove:
		return "remove"
	case PhaseGravity:
		return "gravity"
	case PhaseSpawn:
		return "spawn"
	case PhaseRescan:
		return "rescan"
	case PhaseShuffle:
		return "shuffle"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Outcome summarizes what a Turn represents.
type Outcome uint8

const (
	// OutcomeNoMatch means the selection hit an empty cell or a group below the threshold.
	OutcomeNoMatch Outcome = iota
	// OutcomeRemoved means a group was removed and later phases are pending.
	OutcomeRemoved
	// OutcomeResolved means the turn ran to completion and the engine is idle.
	OutcomeResolved
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoMatch:
		return "no-match"
	case OutcomeRemoved:
		return "removed"
	case OutcomeResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Turn is the batch of deltas produced by a selection or a single phase.
// Group and Removed reference tiles that are already back in the pool, and the
// spawn phase of the same turn may hand them out again. Use Removal.At and
// Removal.Color rather than the tile's own fields.
type Turn struct {
	Outcome     Outcome
	Origin      Coord
	Group       Group
	Removed     []Removal
	Moved       []Move
	Spawned     []Spawn
	Shuffled    []Move
	Recolored   []Recolor
	TierChanges []TierChange
	Shuffles    int
	Degenerate  bool // A deadlock shuffle had too few tiles to guarantee a match
}

// merge folds a later batch into t.
func (t *Turn) merge(o Turn) {
	t.Removed = append(t.Removed, o.Removed...)
	t.Moved = append(t.Moved, o.Moved...)
	t.Spawned = append(t.Spawned, o.Spawned...)
	t.Shuffled = append(t.Shuffled, o.Shuffled...)
	t.Recolored = append(t.Recolored, o.Recolored...)
	t.TierChanges = mergeTierChanges(t.TierChanges, o.TierChanges)
	t.Shuffles += o.Shuffles
	t.Degenerate = t.Degenerate || o.Degenerate
}

// mergeTierChanges keeps one entry per tile with the earliest From and latest
// To, dropping tiles that ended where they started.
func mergeTierChanges(a, b []TierChange) []TierChange {
	if len(b) == 0 {
		return a
	}
	idx := make(map[*Tile]int, len(a)+len(b))
	out := make([]TierChange, 0, len(a)+len(b))
	for _, list := range [][]TierChange{a, b} {
		for _, ch := range list {
			if i, ok := idx[ch.Tile]; ok {
				out[i].To = ch.To
				continue
			}
			idx[ch.Tile] = len(out)
			out = append(out, ch)
		}
	}
	n := 0
	for _, ch := range out {
		if ch.From != ch.To {
			out[n] = ch
			n++
		}
	}
	return out[:n]
}

// State returns the pipeline state.
func (e *Engine) State() State { return e.state }

// Pending returns the phase the next Advance will run.
func (e *Engine) Pending() Phase { return e.next }

// Start fills the empty board for level entry, computes tiers and shuffles if
// the fresh board has no legal move. Panics unless the engine is idle.
func (e *Engine) Start() Turn {
	if e.state != StateIdle {
		panic("board: Start called in state " + e.state.String())
	}
	turn := Turn{Outcome: OutcomeResolved}
	turn.Spawned = e.CreateAtStart()
	turn.TierChanges = e.finder.CheckAll()
	if e.finder.IsDeadlocked() {
		e.state = StateShuffling
		turn.merge(e.resolveDeadlock())
		e.state = StateIdle
	}
	e.log.Debug("level started", "tiles", e.grid.Occupied(), "shuffles", turn.Shuffles)
	return turn
}

// Begin removes the group at c and leaves the later phases pending.
// A group below the match threshold, or an empty cell, yields OutcomeNoMatch
// and changes nothing. Selections outside Idle are rejected with ErrBusy.
// Panics if c is out of range.
func (e *Engine) Begin(c Coord) (Turn, error) {
	switch e.state {
	case StateIdle:
	case StateAbandoned:
		return Turn{}, ErrAbandoned
	default:
		return Turn{}, ErrBusy
	}

	group := e.finder.GetGroup(c)
	if len(group) < e.rules.MatchThreshold {
		return Turn{Outcome: OutcomeNoMatch, Origin: c, Group: group}, nil
	}

	turn := Turn{Outcome: OutcomeRemoved, Origin: c, Group: group}
	e.pending = pending{removed: make([]Coord, 0, len(group))}
	for _, t := range group {
		at, color := t.pos, t.color
		e.grid.take(at)
		e.pool.Release(t)
		turn.Removed = append(turn.Removed, Removal{Tile: t, At: at, Color: color})
		e.pending.removed = append(e.pending.removed, at)
	}

	e.state = StateResolving
	e.next = PhaseGravity
	e.log.Debug("group removed", "at", c, "color", group.Color().Letter(), "size", len(group))
	return turn, nil
}

// Advance runs the next pending phase and returns it with its deltas.
// After the rescan the engine is either idle or, if the board is deadlocked,
// in StateShuffling with the shuffle phase pending.
func (e *Engine) Advance() (Phase, Turn, error) {
	switch e.state {
	case StateIdle:
		return PhaseDone, Turn{}, ErrIdle
	case StateAbandoned:
		return PhaseDone, Turn{}, ErrAbandoned
	}

	phase := e.next
	var turn Turn
	switch phase {
	case PhaseGravity:
		turn.Moved = e.ApplyGravity()
		e.pending.moved = turn.Moved
		e.next = PhaseSpawn
	case PhaseSpawn:
		turn.Spawned = e.SpawnNewTiles()
		e.pending.spawned = turn.Spawned
		e.next = PhaseRescan
	case PhaseRescan:
		turn.TierChanges = e.finder.CheckAffected(e.pending.moved, e.pending.spawned, e.pending.removed...)
		if e.finder.IsDeadlocked() {
			e.state = StateShuffling
			e.next = PhaseShuffle
		} else {
			e.finish()
		}
	case PhaseShuffle:
		turn = e.resolveDeadlock()
		e.finish()
	default:
		panic("board: unexpected pending phase " + phase.String())
	}

	e.log.Debug("phase", "phase", phase, "state", e.state)
	return phase, turn, nil
}

func (e *Engine) finish() {
	e.state = StateIdle
	e.next = PhaseDone
	e.pending = pending{}
}

// Select runs a whole turn: Begin followed by Advance until idle.
// The returned Turn merges every phase's deltas.
func (e *Engine) Select(c Coord) (Turn, error) {
	turn, err := e.Begin(c)
	if err != nil || turn.Outcome == OutcomeNoMatch {
		return turn, err
	}
	for e.state != StateIdle {
		_, step, err := e.Advance()
		if err != nil {
			return turn, err
		}
		turn.merge(step)
	}
	turn.Outcome = OutcomeResolved
	return turn, nil
}

// Abandon stops a turn mid-resolution. Nothing is rolled back; the board is
// left as the last completed phase produced and every later call fails with
// ErrAbandoned. Abandoning an idle engine is a no-op.
func (e *Engine) Abandon() {
	if e.state == StateIdle || e.state == StateAbandoned {
		return
	}
	e.log.Debug("abandoned", "pending", e.next)
	e.state = StateAbandoned
	e.next = PhaseDone
	e.pending = pending{}
}

// resolveDeadlock shuffles once and rescans the whole board.
func (e *Engine) resolveDeadlock() Turn {
	res := e.Shuffle()
	turn := Turn{Degenerate: res.Degenerate}
	if res.Degenerate {
		return turn
	}
	turn.Shuffles = 1
	turn.Shuffled = res.Moves
	turn.Recolored = res.Recolors
	turn.TierChanges = e.finder.CheckAll()
	if e.finder.IsDeadlocked() {
		e.log.Error("board still deadlocked after shuffle", "tiles", e.grid.Occupied())
	}
	return turn
}
