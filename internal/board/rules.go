// Package board is the deterministic grid-simulation core of the ColorBlast puzzle.
//
// It finds connected same-color groups, classifies them into display tiers,
// compacts tiles under gravity, spawns replacements and reshuffles deadlocked
// boards while guaranteeing a match afterwards. The package is synchronous and
// UI-agnostic: it reports deltas and never touches screen coordinates or timing.
package board

import (
	"fmt"
	"strings"
)

// MaxCells bounds the board area. Recomputing every group per turn relies on boards staying small.
const MaxCells = 100

// RuleError describes an invalid rule set.
type RuleError struct {
	Code    string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Tier is the display classification of a tile by its group size.
type Tier uint8

const (
	TierDefault Tier = iota
	Tier1
	Tier2
	Tier3
)

// String returns the tier name.
func (t Tier) String() string {
	switch t {
	case TierDefault:
		return "default"
	case Tier1:
		return "tier1"
	case Tier2:
		return "tier2"
	case Tier3:
		return "tier3"
	default:
		return "unknown"
	}
}

// Tiers holds the ascending group-size thresholds T1 < T2 < T3.
type Tiers struct {
	T1 int
	T2 int
	T3 int
}

// For returns the highest tier whose threshold the group size exceeds.
func (t Tiers) For(size int) Tier {
	switch {
	case size > t.T3:
		return Tier3
	case size > t.T2:
		return Tier2
	case size > t.T1:
		return Tier1
	default:
		return TierDefault
	}
}

// Validate checks that thresholds are positive and strictly ascending.
func (t Tiers) Validate() error {
	if t.T1 < 1 {
		return &RuleError{Code: "TIER_RANGE", Message: fmt.Sprintf("t1 must be >= 1, got %d", t.T1)}
	}
	if t.T2 <= t.T1 || t.T3 <= t.T2 {
		return &RuleError{
			Code:    "TIER_ORDER",
			Message: fmt.Sprintf("tier thresholds must be strictly ascending, got %d/%d/%d", t.T1, t.T2, t.T3),
		}
	}
	return nil
}

// Gravity names the edge tiles compact toward.
type Gravity uint8

const (
	// GravityLeft compacts each row toward column 0 and spawns at the last column.
	GravityLeft Gravity = iota
	// GravityRight compacts each row toward the last column and spawns at column 0.
	GravityRight
	// GravityUp compacts each column toward row 0 and spawns at the last row.
	GravityUp
	// GravityDown compacts each column toward the last row and spawns at row 0.
	GravityDown
)

// String returns the gravity name used in level files.
func (g Gravity) String() string {
	switch g {
	case GravityLeft:
		return "left"
	case GravityRight:
		return "right"
	case GravityUp:
		return "up"
	case GravityDown:
		return "down"
	default:
		return "unknown"
	}
}

// ParseGravity converts a level-file name into a Gravity.
// The empty string selects GravityLeft.
func ParseGravity(s string) (Gravity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return GravityLeft, true
	case "right":
		return GravityRight, true
	case "up":
		return GravityUp, true
	case "down":
		return GravityDown, true
	default:
		return GravityLeft, false
	}
}

// alongRows reports whether lines are rows (compaction moves tiles between columns).
func (g Gravity) alongRows() bool {
	return g == GravityLeft || g == GravityRight
}

// Rules is the per-level configuration the engine is built from.
type Rules struct {
	Rows           int
	Cols           int
	ColorCount     int // Active colors: the first ColorCount palette entries
	PaletteSize    int // Total palette entries; 0 means MaxColors
	MatchThreshold int // Minimum group size that can be removed
	Tiers          Tiers
	Gravity        Gravity
}

// DefaultRules returns the reference game's settings on an 8x8 board.
func DefaultRules() Rules {
	return Rules{
		Rows:           8,
		Cols:           8,
		ColorCount:     4,
		PaletteSize:    MaxColors,
		MatchThreshold: 2,
		Tiers:          Tiers{T1: 4, T2: 5, T3: 6},
		Gravity:        GravityLeft,
	}
}

// Cells returns the board area.
func (r Rules) Cells() int {
	return r.Rows * r.Cols
}

func (r Rules) paletteSize() int {
	if r.PaletteSize <= 0 {
		return MaxColors
	}
	return r.PaletteSize
}

// Validate reports the first problem with the rule set.
func (r Rules) Validate() error {
	if r.Rows < 1 || r.Cols < 1 {
		return &RuleError{Code: "SIZE_RANGE", Message: fmt.Sprintf("board must be at least 1x1, got %dx%d", r.Rows, r.Cols)}
	}
	if r.Cells() > MaxCells {
		return &RuleError{Code: "SIZE_RANGE", Message: fmt.Sprintf("board has %d cells, max is %d", r.Cells(), MaxCells)}
	}
	if r.paletteSize() > MaxColors {
		return &RuleError{Code: "PALETTE_SIZE", Message: fmt.Sprintf("palette has %d colors, max is %d", r.paletteSize(), MaxColors)}
	}
	if r.ColorCount < 1 || r.ColorCount > r.paletteSize() {
		return &RuleError{
			Code:    "COLOR_COUNT",
			Message: fmt.Sprintf("color count must be in [1,%d], got %d", r.paletteSize(), r.ColorCount),
		}
	}
	if r.MatchThreshold < 2 || r.MatchThreshold > r.Cells() {
		return &RuleError{
			Code:    "MATCH_THRESHOLD",
			Message: fmt.Sprintf("match threshold must be in [2,%d], got %d", r.Cells(), r.MatchThreshold),
		}
	}
	if err := r.Tiers.Validate(); err != nil {
		return err
	}
	if r.Gravity > GravityDown {
		return &RuleError{Code: "GRAVITY", Message: fmt.Sprintf("unknown gravity %d", r.Gravity)}
	}
	return nil
}
