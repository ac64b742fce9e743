package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/config"
	"github.com/vovakirdan/colorblast/internal/core"
)

func testPack() config.LevelPack {
	return config.LevelPack{
		Palette: config.DefaultPalette(),
		Levels: []config.Level{{
			ID:     "fixed",
			Name:   "Fixed",
			Rows:   3,
			Cols:   3,
			Colors: 2,
			Tiers:  config.TierConfig{T1: 4, T2: 5, T3: 6},
			Layout: []string{"AAB", "ABB", "BAA"},
		}},
	}
}

func newTestModel(t *testing.T, phaseTicks int) BoardModel {
	t.Helper()
	pack := testPack()
	cfg := core.DefaultConfig()
	cfg.PhaseTicks = phaseTicks
	cfg.Seed = 5

	m, err := NewBoardModel(pack, pack.Levels[0], cfg)
	if err != nil {
		t.Fatalf("NewBoardModel failed: %v", err)
	}
	return m
}

func send(t *testing.T, m BoardModel, msg tea.Msg) BoardModel {
	t.Helper()
	updated, _ := m.Update(msg)
	bm, ok := updated.(BoardModel)
	if !ok {
		t.Fatalf("Update returned %T", updated)
	}
	return bm
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestSelectPacesPhases(t *testing.T) {
	m := newTestModel(t, 2)

	m = send(t, m, enter)
	e := m.Engine()
	if e.State() != board.StateResolving {
		t.Fatalf("state = %v, want resolving", e.State())
	}
	if len(m.burst) != 3 {
		t.Errorf("burst = %v, want the 3 removed cells", m.burst)
	}
	if m.Status() != "blasted 3" {
		t.Errorf("status = %q", m.Status())
	}

	// A second selection while resolving is dropped.
	m = send(t, m, enter)
	if !strings.Contains(m.Status(), "resolving") {
		t.Errorf("expected busy status, got %q", m.Status())
	}
	if m.turns != 1 {
		t.Errorf("turns = %d, want 1", m.turns)
	}

	m = send(t, m, TickMsg{})
	if e.Pending() != board.PhaseGravity {
		t.Errorf("one tick should not advance, pending = %v", e.Pending())
	}
	m = send(t, m, TickMsg{})
	if e.Pending() != board.PhaseSpawn {
		t.Errorf("two ticks should run gravity, pending = %v", e.Pending())
	}
	if m.burst != nil {
		t.Error("burst should clear once gravity runs")
	}

	for i := 0; i < 20 && e.State() != board.StateIdle; i++ {
		m = send(t, m, TickMsg{})
	}
	if e.State() != board.StateIdle {
		t.Fatalf("turn did not settle, state = %v", e.State())
	}
	if got := e.Grid().Occupied(); got != 9 {
		t.Errorf("occupied = %d, want 9", got)
	}
	if e.Finder().IsDeadlocked() {
		t.Error("settled board is deadlocked")
	}
}

func TestSelectWithoutPacing(t *testing.T) {
	m := newTestModel(t, 0)

	m = send(t, m, enter)
	if m.Engine().State() != board.StateIdle {
		t.Errorf("state = %v, want idle", m.Engine().State())
	}
	if m.turns != 1 || m.cleared != 3 {
		t.Errorf("turns = %d cleared = %d, want 1 and 3", m.turns, m.cleared)
	}
}

func TestSelectTooSmall(t *testing.T) {
	m := newTestModel(t, 2)

	// (2,0) is a lone B.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = send(t, m, enter)

	if m.Engine().State() != board.StateIdle {
		t.Errorf("state = %v, want idle", m.Engine().State())
	}
	if m.Status() != "group of 1 is too small, need 2" {
		t.Errorf("status = %q", m.Status())
	}
	if m.turns != 0 {
		t.Errorf("turns = %d, want 0", m.turns)
	}
}

func TestCursorClamps(t *testing.T) {
	m := newTestModel(t, 2)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.Cursor() != board.At(0, 0) {
		t.Errorf("cursor = %v, want (0,0)", m.Cursor())
	}

	for range 5 {
		m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
		m = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.Cursor() != board.At(2, 2) {
		t.Errorf("cursor = %v, want (2,2)", m.Cursor())
	}
}

func TestMouseSelect(t *testing.T) {
	m := newTestModel(t, 2)

	// Outside the board: nothing happens.
	m = send(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Engine().State() != board.StateIdle {
		t.Fatal("click outside the board started a turn")
	}

	// Second column of the first row.
	m = send(t, m, tea.MouseMsg{
		X:      boardIndent + cellWidth + 1,
		Y:      headerLines,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	if m.Cursor() != board.At(0, 1) {
		t.Errorf("cursor = %v, want (0,1)", m.Cursor())
	}
	if m.Engine().State() != board.StateResolving {
		t.Errorf("state = %v, want resolving", m.Engine().State())
	}

	// Releases are ignored.
	before := m.Cursor()
	m = send(t, m, tea.MouseMsg{X: boardIndent, Y: headerLines + 2, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	if m.Cursor() != before {
		t.Error("mouse release moved the cursor")
	}
}

func TestQuitAbandonsTurn(t *testing.T) {
	m := newTestModel(t, 2)
	m = send(t, m, enter)

	updated, cmd := m.Update(runeKey("q"))
	m = updated.(BoardModel)
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if !m.IsQuitting() {
		t.Error("model should be quitting")
	}
	if m.Engine().State() != board.StateAbandoned {
		t.Errorf("state = %v, want abandoned", m.Engine().State())
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestBackAndRestart(t *testing.T) {
	m := newTestModel(t, 2)
	m = send(t, m, enter)

	first := m.Engine()
	m = send(t, m, runeKey("r"))
	if m.Engine() != first {
		t.Error("restart during resolution should be refused")
	}

	for i := 0; i < 20 && m.busy(); i++ {
		m = send(t, m, TickMsg{})
	}
	m = send(t, m, runeKey("r"))
	if m.Engine() == first {
		t.Error("restart should build a new engine")
	}
	if m.turns != 0 || m.Engine().Grid().Occupied() != 9 {
		t.Errorf("restart left turns = %d occupied = %d", m.turns, m.Engine().Grid().Occupied())
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.WantsBack() || m.IsQuitting() {
		t.Error("escape should go back without quitting")
	}
}

func TestScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := newTestModel(t, 2)
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.Status(), "saved ") {
		t.Fatalf("status = %q", m.Status())
	}

	path := strings.TrimPrefix(m.Status(), "saved ")
	if filepath.Dir(path) != filepath.Join(home, ".colorblast", "screenshots") {
		t.Errorf("screenshot saved to %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "AAB\nABB\nBAA") {
		t.Errorf("screenshot does not contain the board:\n%s", data)
	}
}

func TestViewShowsHUD(t *testing.T) {
	m := newTestModel(t, 2)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	view := m.View()
	for _, want := range []string{"COLORBLAST", "Fixed", "Turns: 0", "Cleared: 0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	lines := strings.Split(view, "\n")
	if !strings.HasPrefix(lines[headerLines], strings.Repeat(" ", boardIndent)) {
		t.Errorf("board line not indented: %q", lines[headerLines])
	}

	m = send(t, m, enter)
	if !strings.Contains(m.View(), board.PhaseGravity.String()) {
		t.Error("view should show the pending phase while resolving")
	}
}

func TestNewBoardModelInvalidLevel(t *testing.T) {
	pack := testPack()
	pack.Levels[0].Colors = 9
	if _, err := NewBoardModel(pack, pack.Levels[0], core.DefaultConfig()); err == nil {
		t.Error("expected error for invalid level")
	}
}
