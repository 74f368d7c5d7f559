package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruit-catch/internal/config"
)

// CatalogKeyMap defines the key bindings for the catalog browser.
type CatalogKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k CatalogKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k CatalogKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextTab, k.PrevTab, k.Quit},
	}
}

// DefaultCatalogKeyMap returns default key bindings.
func DefaultCatalogKeyMap() CatalogKeyMap {
	return CatalogKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next table"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev table"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// catalogTab selects which table the browser shows.
type catalogTab int

const (
	tabItems catalogTab = iota
	tabLevels
	tabCount
)

func (t catalogTab) String() string {
	if t == tabLevels {
		return "Levels"
	}
	return "Items"
}

// CatalogModel is the Bubble Tea model for browsing item kinds and levels.
type CatalogModel struct {
	cfg      config.CatchConfig
	tab      catalogTab
	table    table.Model
	help     help.Model
	keys     CatalogKeyMap
	width    int
	height   int
	quitting bool
}

// NewCatalogModel creates a catalog browser for cfg.
func NewCatalogModel(cfg config.CatchConfig, width, height int) CatalogModel {
	h := help.New()
	h.ShowAll = false

	m := CatalogModel{
		cfg:    cfg,
		keys:   DefaultCatalogKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable builds the table for the current tab.
func (m *CatalogModel) createTable() table.Model {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabLevels:
		columns = []table.Column{
			{Title: "Level", Width: 6},
			{Title: "Spawn every", Width: 12},
			{Title: "Fall time", Width: 10},
			{Title: "Starts at", Width: 10},
		}
		rows = LevelRows(m.cfg)
	default:
		columns = []table.Column{
			{Title: "Item", Width: 10},
			{Title: "Glyph", Width: 6},
			{Title: "Cell", Width: 5},
			{Title: "Score", Width: 6},
			{Title: "Chance", Width: 7},
			{Title: "Effect", Width: 14},
		}
		rows = ItemRows(m.cfg)
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
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

// ItemRows formats the item kinds of cfg as table rows.
func ItemRows(cfg config.CatchConfig) []table.Row {
	rows := make([]table.Row, len(cfg.Items))
	for i, it := range cfg.Items {
		effect := "+" + strconv.Itoa(it.Score) + " on catch"
		if it.Bomb {
			effect = "ends the game"
		}
		rows[i] = table.Row{
			it.Name,
			it.Glyph,
			it.Rune,
			strconv.Itoa(it.Score),
			fmt.Sprintf("%.0f%%", it.Probability*100),
			effect,
		}
	}
	return rows
}

// LevelRows formats the level table of cfg as table rows.
func LevelRows(cfg config.CatchConfig) []table.Row {
	rows := make([]table.Row, len(cfg.Levels))
	for i, l := range cfg.Levels {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.1fs", float64(l.SpawnIntervalMS)/1000),
			fmt.Sprintf("%.1fs", float64(l.FallDurationMS)/1000),
			fmt.Sprintf("%ds", i*cfg.Session.LevelUpEverySeconds),
		}
	}
	return rows
}

// Init initializes the catalog model.
func (m CatalogModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the catalog.
func (m CatalogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % tabCount
			m.table = m.createTable()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + tabCount - 1) % tabCount
			m.table = m.createTable()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the catalog.
func (m CatalogModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("FRUIT CATCH - "+strings.ToUpper(m.tab.String()), m.width)))
	b.WriteString("\n\n")

	// Tabs
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tabs := make([]string, tabCount)
	for t := catalogTab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs[t] = activeTabStyle.Render(t.String())
		} else {
			tabs[t] = tabStyle.Render(t.String())
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.table.View()))

	// Session rules
	b.WriteString("\n")
	rulesStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	s := m.cfg.Session
	b.WriteString(rulesStyle.Render(fmt.Sprintf(
		"%ds session, %d misses allowed, level up every %ds",
		s.DurationSeconds, s.MaxMisses, s.LevelUpEverySeconds,
	)))

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// centerText pads text so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunCatalog runs the catalog browser.
func RunCatalog(cfg config.CatchConfig, width, height int) error {
	p := tea.NewProgram(
		NewCatalogModel(cfg, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
