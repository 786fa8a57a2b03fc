package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model is the root Bubble Tea model. The session decides which screen is active.
type Model struct {
	app     *app.App
	session *service.Session
	width   int
	height  int

	// Screen models
	create tea.Model
	list   tea.Model
	detail tea.Model

	lastView service.View
}

// New creates a new root model
func New(a *app.App, s *service.Session) Model {
	return Model{
		app:      a,
		session:  s,
		create:   NewCreateModel(a, s),
		list:     NewListModel(a, s),
		detail:   NewDetailModel(a, s),
		lastView: s.View(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return m.create.Init()
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, the global quit key is suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

func (m *Model) activeScreen() tea.Model {
	switch m.session.View() {
	case service.ViewList:
		return m.list
	case service.ViewDetail:
		return m.detail
	default:
		return m.create
	}
}

func (m *Model) setActiveScreen(screen tea.Model) {
	switch m.session.View() {
	case service.ViewList:
		m.list = screen
	case service.ViewDetail:
		m.detail = screen
	default:
		m.create = screen
	}
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	if ic, ok := m.activeScreen().(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, DefaultKeyMap.ForceQuit) {
			return m, tea.Quit
		}
		if !m.activeScreenCapturingInput() && key.Matches(msg, DefaultKeyMap.Quit) {
			return m, tea.Quit
		}
	}

	// Route message to current screen
	screen, cmd := m.activeScreen().Update(msg)
	m.setActiveScreen(screen)

	// Screens move the session; the screen being entered reloads its data
	if v := m.session.View(); v != m.lastView {
		m.lastView = v
		next, refresh := m.activeScreen().Update(RefreshDataMsg{})
		m.setActiveScreen(next)
		return m, tea.Batch(cmd, refresh)
	}

	return m, cmd
}

func (m Model) title() string {
	switch m.session.View() {
	case service.ViewList:
		return "Invoice Book"
	case service.ViewDetail:
		if inv := m.session.Selected(); inv != nil {
			return "Invoice " + inv.InvoiceNo
		}
		return "Invoice"
	default:
		return "Create Invoice"
	}
}

func (m Model) footer() string {
	switch m.session.View() {
	case service.ViewList:
		return "[/] Search  [Enter] View  [P]rint  [X] Export  [N]ew  [Esc] Back  [Q]uit"
	case service.ViewDetail:
		return "[P]rint  [Esc] Back to list  [Q]uit"
	default:
		n, _ := m.session.SavedCount(context.Background())
		return fmt.Sprintf("[^S] Save  [^P] Print  [^A] Add item  [^L] View All (%d)  [^N] New  [^C] Quit", n)
	}
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	workshop := m.session.Draft().Invoice().WorkshopName
	if workshop == "" {
		workshop = "garagebill"
	}
	header := headerStyle.Render(fmt.Sprintf("%s - %s", workshop, m.title()))
	footer := footerStyle.Render(m.footer())

	content := m.activeScreen().View()

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, divider, content, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI with a fresh session
func Run(a *app.App) error {
	s, err := a.NewSession(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	p := tea.NewProgram(New(a, s), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
