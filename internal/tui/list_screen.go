package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/domain"
	"github.com/andy/garagebill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ListModel is the invoice book: saved invoices, newest first, with search
type ListModel struct {
	app      *app.App
	session  *service.Session
	invoices []*domain.SavedInvoice
	summary  *service.BookSummary
	cursor   int

	searching   bool
	searchInput textinput.Model

	statusMsg string
	err       error
}

// NewListModel creates the invoice book screen
func NewListModel(a *app.App, s *service.Session) tea.Model {
	search := textinput.New()
	search.Placeholder = "Search by customer, invoice no, or vehicle..."
	search.CharLimit = 100
	search.Width = 50

	return &ListModel{
		app:         a,
		session:     s,
		searchInput: search,
	}
}

// IsCapturingInput returns true while the search box has focus
func (m *ListModel) IsCapturingInput() bool {
	return m.searching
}

func (m *ListModel) Init() tea.Cmd {
	m.load()
	return nil
}

// load refreshes the visible invoices for the current search term
func (m *ListModel) load() {
	ctx := context.Background()

	invoices, err := m.session.Visible(ctx)
	if err != nil {
		m.err = err
		return
	}
	m.invoices = invoices

	summary, err := m.app.InvoiceService.Summary(ctx)
	if err != nil {
		m.err = err
		return
	}
	m.summary = summary

	if m.cursor >= len(m.invoices) {
		m.cursor = max(0, len(m.invoices)-1)
	}
}

func (m *ListModel) selected() *domain.SavedInvoice {
	if m.cursor < 0 || m.cursor >= len(m.invoices) {
		return nil
	}
	return m.invoices[m.cursor]
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.err = nil
		m.searchInput.SetValue(m.session.SearchTerm())
		m.load()
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ListModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if m.searchInput.Value() != m.session.SearchTerm() {
		m.session.SetSearch(m.searchInput.Value())
		m.cursor = 0
		m.load()
	}
	return m, cmd
}

func (m *ListModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, DefaultKeyMap.Search):
		m.searching = true
		return m, m.searchInput.Focus()

	case key.Matches(msg, DefaultKeyMap.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, DefaultKeyMap.Down):
		if m.cursor < len(m.invoices)-1 {
			m.cursor++
		}

	case key.Matches(msg, DefaultKeyMap.Select):
		if inv := m.selected(); inv != nil {
			if err := m.session.Select(ctx, inv.ID); err != nil {
				m.err = err
			}
		}

	case key.Matches(msg, DefaultKeyMap.Print):
		if inv := m.selected(); inv != nil {
			path, err := m.app.Printer.Print(inv.Invoice)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.statusMsg = "Printed to " + path
		}

	case key.Matches(msg, DefaultKeyMap.Export):
		path, err := m.app.ExportBook(ctx)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.statusMsg = "Invoice book exported to " + path

	case key.Matches(msg, DefaultKeyMap.New):
		if err := m.session.NewInvoice(ctx); err != nil {
			m.err = err
		}

	case key.Matches(msg, DefaultKeyMap.Back):
		m.session.BackToCreate()
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder
	cur := m.app.RenderOptions().Currency

	search := m.searchInput.View()
	if !m.searching && m.searchInput.Value() == "" {
		search = subtitleStyle.Render("Press / to search by customer, invoice no, or vehicle")
	}
	b.WriteString("  " + search + "\n\n")

	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render("  "+m.statusMsg) + "\n\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n")
	}

	if len(m.invoices) == 0 {
		b.WriteString(subtitleStyle.Render("  No invoices found") + "\n")
	}

	for i, inv := range m.invoices {
		b.WriteString(m.renderInvoice(i, inv, cur) + "\n")
	}

	if m.summary != nil {
		b.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf(
			"  %d saved  |  Parts %s  |  Labour %s  |  ",
			m.summary.Count,
			formatMoney(cur, m.summary.Parts),
			formatMoney(cur, m.summary.Labour),
		)) + totalStyle.Render("Total "+formatMoney(cur, m.summary.Grand)) + "\n")
	}

	if m.searching {
		b.WriteString("\n" + helpStyle.Render("  type to filter  enter/esc: done"))
	} else {
		b.WriteString("\n" + helpStyle.Render("  j/k: navigate  enter: view  p: print  x: export  n: new  esc: back"))
	}
	return b.String()
}

func (m *ListModel) renderInvoice(index int, inv *domain.SavedInvoice, cur string) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	line1 := fmt.Sprintf("%s%-16s %s", indicator, inv.InvoiceNo, totalStyle.Render(formatMoney(cur, inv.Totals.Grand)))
	line2 := fmt.Sprintf("    Customer: %s  |  Vehicle: %s  |  Date: %s  |  Items: %d items",
		truncateStr(inv.CustomerName, 24),
		truncateStr(inv.VehicleLabel(), 28),
		orDash(inv.DateString()),
		len(inv.Items),
	)

	if selected {
		return focusStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
	}
	return line1 + "\n" + subtitleStyle.Render(line2)
}
