package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/colorblast/internal/config"
	"github.com/vovakirdan/colorblast/internal/core"
)

// LevelPickerModel is the Bubble Tea model for choosing a level.
type LevelPickerModel struct {
	pack     config.LevelPack
	table    table.Model
	help     help.Model
	keys     KeyMap
	theme    Theme
	width    int
	height   int
	selected *config.Level // Set when user picks a level
	quitting bool
}

// NewLevelPickerModel creates a level picker for the pack.
func NewLevelPickerModel(pack config.LevelPack, cfg core.RuntimeConfig) LevelPickerModel {
	m := LevelPickerModel{
		pack:   pack,
		help:   help.New(),
		keys:   DefaultKeyMap(),
		theme:  DefaultTheme(pack.Palette),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.table = m.createTable()
	return m
}

// createTable creates the level table.
func (m *LevelPickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 18},
		{Title: "Size", Width: 7},
		{Title: "Colors", Width: 6},
		{Title: "Match", Width: 5},
		{Title: "Gravity", Width: 7},
	}

	rows := make([]table.Row, len(m.pack.Levels))
	for i, l := range m.pack.Levels {
		name := l.Name
		if name == "" {
			name = l.ID
		}
		rows[i] = table.Row{
			name,
			fmt.Sprintf("%dx%d", l.Rows, l.Cols),
			fmt.Sprintf("%d", l.Colors),
			fmt.Sprintf("%d", l.Threshold()),
			l.GravityName(),
		}
	}

	height := m.height - 8 // Leave room for title, help and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(height, len(rows)+1)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init initializes the picker.
func (m LevelPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m LevelPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.pack.Levels) {
				l := m.pack.Levels[i]
				m.selected = &l
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m LevelPickerModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("C O L O R B L A S T"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a level:"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for _, line := range strings.Split(tableStyle.Render(m.table.View()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.HUDControls.Render(m.help.View(pickerKeys{m.keys})), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the chosen level, or nil if none was chosen.
func (m LevelPickerModel) Selected() *config.Level {
	return m.selected
}

// IsQuitting returns true if user left the picker without choosing.
func (m LevelPickerModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// RunLevelPicker runs the level picker and returns the chosen level,
// or nil if the user quit.
func RunLevelPicker(pack config.LevelPack, cfg core.RuntimeConfig) (*config.Level, error) {
	model := NewLevelPickerModel(pack, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	m, ok := finalModel.(LevelPickerModel)
	if !ok || m.IsQuitting() {
		return nil, nil
	}
	return m.Selected(), nil
}
