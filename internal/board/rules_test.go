package board_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/colorblast/internal/board"
)

func TestTiersFor(t *testing.T) {
	tiers := board.Tiers{T1: 4, T2: 7, T3: 9}

	tests := []struct {
		size int
		want board.Tier
	}{
		{0, board.TierDefault},
		{1, board.TierDefault},
		{4, board.TierDefault},
		{5, board.Tier1},
		{7, board.Tier1},
		{8, board.Tier2},
		{9, board.Tier2},
		{10, board.Tier3},
		{100, board.Tier3},
	}

	for _, tt := range tests {
		if got := tiers.For(tt.size); got != tt.want {
			t.Errorf("For(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestTiersMonotonic(t *testing.T) {
	for _, tiers := range []board.Tiers{
		{T1: 1, T2: 2, T3: 3},
		{T1: 4, T2: 5, T3: 6},
		{T1: 2, T2: 10, T3: 50},
	} {
		prev := tiers.For(0)
		for size := 1; size <= board.MaxCells; size++ {
			got := tiers.For(size)
			if got < prev {
				t.Fatalf("%+v: tier dropped from %v to %v at size %d", tiers, prev, got, size)
			}
			if size <= tiers.T1 && got != board.TierDefault {
				t.Fatalf("%+v: size %d <= T1 got %v", tiers, size, got)
			}
			prev = got
		}
	}
}

func TestRulesValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*board.Rules)
		code   string
	}{
		{"default", func(*board.Rules) {}, ""},
		{"zero rows", func(r *board.Rules) { r.Rows = 0 }, "SIZE_RANGE"},
		{"too many cells", func(r *board.Rules) { r.Rows, r.Cols = 11, 10 }, "SIZE_RANGE"},
		{"palette too big", func(r *board.Rules) { r.PaletteSize = 7 }, "PALETTE_SIZE"},
		{"no colors", func(r *board.Rules) { r.ColorCount = 0 }, "COLOR_COUNT"},
		{"colors beyond palette", func(r *board.Rules) { r.PaletteSize, r.ColorCount = 3, 4 }, "COLOR_COUNT"},
		{"threshold one", func(r *board.Rules) { r.MatchThreshold = 1 }, "MATCH_THRESHOLD"},
		{"threshold beyond board", func(r *board.Rules) { r.Rows, r.Cols, r.MatchThreshold = 2, 2, 5 }, "MATCH_THRESHOLD"},
		{"zero t1", func(r *board.Rules) { r.Tiers = board.Tiers{T1: 0, T2: 2, T3: 3} }, "TIER_RANGE"},
		{"equal tiers", func(r *board.Rules) { r.Tiers = board.Tiers{T1: 3, T2: 3, T3: 5} }, "TIER_ORDER"},
		{"descending tiers", func(r *board.Rules) { r.Tiers = board.Tiers{T1: 6, T2: 5, T3: 4} }, "TIER_ORDER"},
		{"bad gravity", func(r *board.Rules) { r.Gravity = board.Gravity(9) }, "GRAVITY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := board.DefaultRules()
			tt.mutate(&r)
			err := r.Validate()
			if tt.code == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var re *board.RuleError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RuleError, got %v", err)
			}
			if re.Code != tt.code {
				t.Errorf("code = %s, want %s", re.Code, tt.code)
			}
		})
	}
}

func TestNewPanicsOnInvalidRules(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid rules")
		}
	}()
	r := board.DefaultRules()
	r.ColorCount = 9
	board.New(r)
}

func TestParseGravity(t *testing.T) {
	tests := []struct {
		in   string
		want board.Gravity
		ok   bool
	}{
		{"", board.GravityLeft, true},
		{"left", board.GravityLeft, true},
		{"Right", board.GravityRight, true},
		{" up ", board.GravityUp, true},
		{"down", board.GravityDown, true},
		{"sideways", board.GravityLeft, false},
	}
	for _, tt := range tests {
		got, ok := board.ParseGravity(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseGravity(%q) = %v,%v want %v,%v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseLayout(t *testing.T) {
	layout, err := board.ParseLayout([]string{"a b .", "C.D"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][]board.Color{{0, 1, board.NoColor}, {2, board.NoColor, 3}}
	for r := range want {
		for c := range want[r] {
			if layout[r][c] != want[r][c] {
				t.Errorf("(%d,%d) = %v, want %v", r, c, layout[r][c], want[r][c])
			}
		}
	}

	if _, err := board.ParseLayout([]string{"AB", "A"}); err == nil {
		t.Error("expected error for ragged layout")
	}
	if _, err := board.ParseLayout([]string{"AZ"}); err == nil {
		t.Error("expected error for unknown letter")
	}
}
