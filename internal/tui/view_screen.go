package tui

import (
	"fmt"
	"strings"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DetailModel shows one saved invoice read-only
type DetailModel struct {
	app     *app.App
	session *service.Session

	statusMsg string
	err       error
}

// NewDetailModel creates the saved invoice screen
func NewDetailModel(a *app.App, s *service.Session) tea.Model {
	return &DetailModel{app: a, session: s}
}

func (m *DetailModel) Init() tea.Cmd {
	return nil
}

func (m *DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		m.statusMsg = ""
		m.err = nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil

		switch {
		case key.Matches(msg, DefaultKeyMap.Back):
			m.session.BackToList()

		case key.Matches(msg, DefaultKeyMap.Print):
			inv := m.session.Selected()
			if inv == nil {
				return m, nil
			}
			path, err := m.app.Printer.Print(inv.Invoice)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.statusMsg = "Printed to " + path
		}
	}
	return m, nil
}

func (m *DetailModel) View() string {
	inv := m.session.Selected()
	if inv == nil {
		return "No invoice selected"
	}
	cur := m.app.RenderOptions().Currency

	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render(inv.WorkshopName) + "\n")
	b.WriteString(subtitleStyle.Render(inv.Address) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Phone: %s | Email: %s", inv.Phone, inv.Email)) + "\n\n")

	details := fmt.Sprintf("Invoice No: %s\nDate:       %s", inv.InvoiceNo, orDash(inv.DateString()))
	vehicle := fmt.Sprintf("Vehicle No: %s\nModel:      %s\nKM:         %s",
		orDash(inv.VehicleNo), orDash(inv.Model), orDash(inv.OdometerKm))
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(36).Render(details),
		vehicle,
	) + "\n\n")

	b.WriteString(focusStyle.Render("Customer Information") + "\n")
	b.WriteString(fmt.Sprintf("  Name:    %s\n", inv.CustomerName))
	b.WriteString(fmt.Sprintf("  Phone:   %s\n", orDash(inv.CustomerPhone)))
	b.WriteString(fmt.Sprintf("  Address: %s\n\n", orDash(inv.CustomerAddress)))

	// Line items
	b.WriteString(subtitleStyle.Render(fmt.Sprintf(
		"  %-4s  %-28s  %12s  %12s  %12s  %s",
		"#", "Description", "Parts", "Labour", "Total", "Remark",
	)) + "\n")
	if len(inv.Items) == 0 {
		b.WriteString(subtitleStyle.Render("  No items") + "\n")
	}
	for i, item := range inv.Items {
		b.WriteString(fmt.Sprintf("  %-4d  %-28s  %12s  %12s  %12s  %s\n",
			i+1,
			truncateStr(item.Description, 28),
			formatMoney(cur, item.Parts),
			formatMoney(cur, item.Labour),
			formatMoney(cur, item.Total()),
			orDash(item.Remark),
		))
	}

	t := inv.Totals
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf(
		"  %-4s  %-28s  %12s  %12s  ", "", "TOTAL",
		formatMoney(cur, t.Parts),
		formatMoney(cur, t.Labour),
	)) + totalStyle.Render(formatMoney(cur, t.Grand)) + "\n")

	b.WriteString("\n" + subtitleStyle.Render(fmt.Sprintf("  Saved %s", inv.SavedAt.Local().Format("Jan 02, 2006 15:04"))) + "\n")

	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render("  "+m.statusMsg) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("  p: print  esc: back to list"))
	return b.String()
}
