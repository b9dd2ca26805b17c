package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/registry"
)

// randomLayout is the picker entry for a freshly generated board.
const randomLayout = "random"

var (
	menuTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	menuSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("3"))
	menuDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// MenuModel is the Bubble Tea model for the game and layout picker.
type MenuModel struct {
	games     []registry.GameInfo
	layouts   []string
	cursor    int
	layout    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  bool
}

// NewMenuModel creates a picker over the registered games. layoutIDs are
// offered after the random board.
func NewMenuModel(cfg core.RuntimeConfig, layoutIDs []string) MenuModel {
	layouts := append([]string{randomLayout}, layoutIDs...)
	m := MenuModel{
		games:     registry.List(),
		layouts:   layouts,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	if cfg.Layout != "" {
		for i, id := range layouts {
			if id == cfg.Layout {
				m.layout = i
			}
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.layout = (m.layout + len(m.layouts) - 1) % len(m.layouts)

	case MenuActionRight:
		m.layout = (m.layout + 1) % len(m.layouts)

	case MenuActionSelect:
		if len(m.games) > 0 {
			m.selected = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("M A T C H - 3"), "M A T C H - 3", m.width))
	b.WriteString("\n\n")

	for i, g := range m.games {
		line := "  " + g.Title
		if i == m.cursor {
			line = menuSelectedStyle.Render("> " + g.Title)
		}
		b.WriteString(centerText(line, "> "+g.Title, m.width))
		b.WriteString("\n")
	}
	if len(m.games) > 0 {
		desc := m.games[m.cursor].Description
		b.WriteString("\n")
		b.WriteString(centerText(menuDimStyle.Render(desc), desc, m.width))
		b.WriteString("\n")
	}

	layout := fmt.Sprintf("Board: < %s >", m.layouts[m.layout])
	b.WriteString("\n")
	b.WriteString(centerText(layout, layout, m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Game  |  Left/Right: Board  |  Enter: Play  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), controls, m.width))
	b.WriteString("\n")

	return b.String()
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText pads styled so that its plain form is centred within width.
func centerText(styled, plain string, width int) string {
	n := len([]rune(plain))
	if n >= width {
		return styled
	}
	return strings.Repeat(" ", (width-n)/2) + styled
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID string
	Layout string // empty for a random board
	Config core.RuntimeConfig
	Quit   bool
}

// Result reports the selection made in the menu.
func (m MenuModel) Result() MenuResult {
	res := MenuResult{Config: m.config}
	if m.quitting || !m.selected {
		res.Quit = true
		return res
	}
	res.GameID = m.games[m.cursor].ID
	if l := m.layouts[m.layout]; l != randomLayout {
		res.Layout = l
	}
	return res
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, layoutIDs []string) (MenuResult, error) {
	model := NewMenuModel(cfg, layoutIDs)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
