package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/colorblast/internal/board"
	"github.com/vovakirdan/colorblast/internal/config"
	"github.com/vovakirdan/colorblast/internal/core"
)

// headerLines is the number of lines drawn above the board.
const headerLines = 2

// BoardModel is the Bubble Tea model for playing one level.
// Resolution phases are paced on ticks: after a group is removed the model
// advances the engine one phase every PhaseTicks ticks, and selections made
// in the meantime are dropped.
type BoardModel struct {
	pack   config.LevelPack
	level  config.Level
	engine *board.Engine
	config core.RuntimeConfig
	theme  Theme
	keys   KeyMap
	help   help.Model
	log    *log.Logger

	cursor   board.Coord
	burst    []board.Coord // Cells emptied by the turn in progress
	ticks    int           // Ticks since the last phase
	turns    int
	cleared  int
	shuffles int
	status   string

	quitting bool
	back     bool
}

// ModelOption configures a BoardModel.
type ModelOption func(*BoardModel)

// WithTheme sets the visual theme.
func WithTheme(t Theme) ModelOption {
	return func(m *BoardModel) { m.theme = t }
}

// WithLogger sets the logger handed to the engine.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *BoardModel) { m.log = l }
}

// NewBoardModel creates a model for a level of the pack and starts the level.
func NewBoardModel(pack config.LevelPack, level config.Level, cfg core.RuntimeConfig, opts ...ModelOption) (BoardModel, error) {
	m := BoardModel{
		pack:   pack,
		level:  level,
		config: cfg,
		theme:  DefaultTheme(pack.Palette),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.help.Width = cfg.ScreenW

	if err := m.start(); err != nil {
		return BoardModel{}, err
	}
	return m, nil
}

// start builds a fresh engine for the level.
func (m *BoardModel) start() error {
	e, turn, err := m.pack.StartLevel(m.level, m.config.Seed, board.WithLogger(m.log))
	if err != nil {
		return err
	}

	m.engine = e
	m.cursor = board.At(
		core.Clamp(m.cursor.Row, 0, e.Grid().Rows()-1),
		core.Clamp(m.cursor.Col, 0, e.Grid().Cols()-1),
	)
	m.burst = nil
	m.ticks = 0
	m.turns = 0
	m.cleared = 0
	m.shuffles = turn.Shuffles
	m.status = ""
	if turn.Shuffles > 0 {
		m.status = "no moves, board shuffled"
	}
	m.log.Info("level started", "level_id", m.level.ID, "rows", m.level.Rows, "cols", m.level.Cols)
	return nil
}

// Init starts the tick loop.
func (m BoardModel) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m BoardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.engine.Abandon()
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		m.engine.Abandon()
		m.back = true
		return m, tea.Quit
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.log.Warn("screenshot failed", "err", err)
			m.status = "screenshot failed"
		} else {
			m.status = "saved " + path
		}
	case core.ActionUp:
		m.moveCursor(-1, 0)
	case core.ActionDown:
		m.moveCursor(1, 0)
	case core.ActionLeft:
		m.moveCursor(0, -1)
	case core.ActionRight:
		m.moveCursor(0, 1)
	case core.ActionSelect:
		m.selectAt(m.cursor)
	case core.ActionRestart:
		if m.busy() {
			m.status = "resolving, wait for the board to settle"
			return m, nil
		}
		// Fresh seed for a new board
		m.config.Seed = uint64(time.Now().UnixNano())
		if err := m.start(); err != nil {
			m.status = err.Error()
		}
	}

	return m, nil
}

// handleMouse selects the cell under a left click.
func (m BoardModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	row, col, ok := m.boardRect().Cell(msg.X, msg.Y, cellWidth)
	if !ok {
		return m, nil
	}
	m.cursor = board.At(row, col)
	m.selectAt(m.cursor)
	return m, nil
}

// handleTick advances the pending phase once enough ticks have passed.
func (m BoardModel) handleTick() (tea.Model, tea.Cmd) {
	if m.busy() {
		m.ticks++
		if m.ticks >= m.config.PhaseTicks {
			m.advance()
		}
	}

	// Continue ticking
	return m, tickCmd(m.config.TickRate)
}

func (m *BoardModel) moveCursor(dr, dc int) {
	g := m.engine.Grid()
	m.cursor = board.At(
		core.Clamp(m.cursor.Row+dr, 0, g.Rows()-1),
		core.Clamp(m.cursor.Col+dc, 0, g.Cols()-1),
	)
}

// selectAt starts a turn at c.
func (m *BoardModel) selectAt(c board.Coord) {
	turn, err := m.engine.Begin(c)
	switch {
	case errors.Is(err, board.ErrBusy):
		m.log.Debug("selection dropped", "at", c, "state", m.engine.State())
		m.status = "resolving, wait for the board to settle"
		return
	case err != nil:
		m.log.Warn("selection failed", "at", c, "err", err)
		m.status = err.Error()
		return
	}

	if turn.Outcome == board.OutcomeNoMatch {
		if turn.Group.Len() == 0 {
			m.status = "empty cell"
		} else {
			m.status = fmt.Sprintf("group of %d is too small, need %d", turn.Group.Len(), m.engine.Finder().Threshold())
		}
		return
	}

	m.turns++
	m.cleared += len(turn.Removed)
	m.burst = make([]board.Coord, 0, len(turn.Removed))
	for _, r := range turn.Removed {
		m.burst = append(m.burst, r.At)
	}
	m.ticks = 0
	m.status = fmt.Sprintf("blasted %d", len(turn.Removed))

	if m.config.PhaseTicks <= 0 {
		m.settle()
	}
}

// advance runs one pending phase.
func (m *BoardModel) advance() {
	phase, turn, err := m.engine.Advance()
	if err != nil {
		m.log.Warn("advance failed", "err", err)
		return
	}
	m.burst = nil
	m.ticks = 0
	m.shuffles += turn.Shuffles

	if phase == board.PhaseShuffle {
		if turn.Degenerate {
			m.status = "no moves left"
		} else {
			m.status = "no moves, board shuffled"
		}
	}
}

// settle runs every pending phase.
func (m *BoardModel) settle() {
	for m.busy() {
		m.advance()
	}
}

func (m BoardModel) busy() bool {
	s := m.engine.State()
	return s == board.StateResolving || s == board.StateShuffling
}

// boardRect is the screen region the board is drawn in.
func (m BoardModel) boardRect() core.Rect {
	g := m.engine.Grid()
	return core.NewRect(boardIndent, headerLines, g.Cols()*cellWidth, g.Rows())
}

// saveScreenshot saves the board as text and returns the file path.
func (m BoardModel) saveScreenshot() (string, error) {
	dir := filepath.Join(os.Getenv("HOME"), ".colorblast", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.level.ID, timestamp)
	path := filepath.Join(dir, filename)

	content := fmt.Sprintf("%s turn %d\n%s\n", m.level.ID, m.turns, m.engine.Grid().String())
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m BoardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHUD())
	b.WriteString("\n\n")

	rendered := RenderBoard(BoardView{
		Grid:       m.engine.Grid(),
		Palette:    m.pack.Palette,
		Theme:      m.theme,
		Cursor:     m.cursor,
		ShowCursor: true,
		Burst:      m.burst,
	})
	indent := strings.Repeat(" ", boardIndent)
	for _, line := range strings.Split(rendered, "\n") {
		b.WriteString(indent)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.theme.HUDStatus.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.theme.HUDControls.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderHUD() string {
	sep := m.theme.HUDSeparator.Render(" | ")
	name := m.level.Name
	if name == "" {
		name = m.level.ID
	}

	parts := []string{
		m.theme.HUDTitle.Render("COLORBLAST"),
		m.theme.HUDValue.Render(name),
		m.theme.HUDValue.Render(fmt.Sprintf("Turns: %d", m.turns)),
		m.theme.HUDValue.Render(fmt.Sprintf("Cleared: %d", m.cleared)),
		m.theme.HUDValue.Render(fmt.Sprintf("Shuffles: %d", m.shuffles)),
	}
	if m.busy() {
		parts = append(parts, m.theme.HUDStatus.Render(m.engine.Pending().String()))
	}
	return strings.Join(parts, sep)
}

// Engine returns the engine of the current board.
func (m BoardModel) Engine() *board.Engine { return m.engine }

// Cursor returns the cursor cell.
func (m BoardModel) Cursor() board.Coord { return m.cursor }

// Status returns the status line.
func (m BoardModel) Status() string { return m.status }

// IsQuitting returns true if user wants to quit entirely.
func (m BoardModel) IsQuitting() bool { return m.quitting }

// WantsBack returns true if user wants to go back to the level picker.
func (m BoardModel) WantsBack() bool { return m.back }

// Run plays a level in a Bubble Tea program.
// Returns true if user wants to go back to the level picker, false if quitting.
func Run(pack config.LevelPack, level config.Level, cfg core.RuntimeConfig, opts ...ModelOption) (goBack bool, err error) {
	model, err := NewBoardModel(pack, level, cfg, opts...)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to blast
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(BoardModel)
	if !ok {
		return false, nil
	}
	return m.WantsBack(), nil
}
