package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/domain"
	"github.com/andy/garagebill/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createMode int

const (
	createModeForm createMode = iota
	createModeAddPanel
)

// add panel field indices
const (
	panelDescription = iota
	panelParts
	panelLabour
	panelRemark
	panelCount
)

var fieldLabels = map[domain.Field]string{
	domain.FieldWorkshopName:    "Workshop Name",
	domain.FieldAddress:         "Address",
	domain.FieldPhone:           "Phone",
	domain.FieldEmail:           "Email",
	domain.FieldDate:            "Date",
	domain.FieldInvoiceNo:       "Invoice No.",
	domain.FieldVehicleNo:       "Vehicle No.",
	domain.FieldModel:           "Model",
	domain.FieldOdometerKm:      "KM",
	domain.FieldCustomerName:    "Customer Name *",
	domain.FieldCustomerPhone:   "Phone Number",
	domain.FieldCustomerAddress: "Customer Address",
}

var itemColumns = []struct {
	field domain.ItemField
	title string
	width int
}{
	{domain.ItemFieldDescription, "Description", 28},
	{domain.ItemFieldParts, "Parts", 11},
	{domain.ItemFieldLabour, "Labour", 11},
	{domain.ItemFieldRemark, "Remark", 18},
}

// slot is one focusable cell of the form: a header field or an item field
type slot struct {
	field     domain.Field
	itemID    string
	itemField domain.ItemField
}

func (s slot) isItem() bool {
	return s.itemID != ""
}

// CreateModel edits the session's draft invoice
type CreateModel struct {
	app     *app.App
	session *service.Session

	mode  createMode
	focus int
	input textinput.Model

	// editing is the draft invoice focus belongs to; a reset replaces it
	editing *domain.Invoice

	// Add panel inputs
	panel      []textinput.Model
	panelFocus int

	statusMsg string
	err       error
}

// NewCreateModel creates the invoice editor screen
func NewCreateModel(a *app.App, s *service.Session) tea.Model {
	m := &CreateModel{
		app:     a,
		session: s,
		input:   textinput.New(),
	}
	m.input.CharLimit = 200
	m.input.Width = 40
	m.initPanel()
	return m
}

// IsCapturingInput returns true: the editor always has a focused field
func (m *CreateModel) IsCapturingInput() bool {
	return true
}

func (m *CreateModel) Init() tea.Cmd {
	return m.focusSlot(0)
}

func (m *CreateModel) ctx() context.Context {
	return context.Background()
}

func (m *CreateModel) currency() string {
	return m.app.RenderOptions().Currency
}

// slots lists every focusable cell in form order
func (m *CreateModel) slots() []slot {
	inv := m.session.Draft().Invoice()
	out := make([]slot, 0, len(domain.Fields)+len(inv.Items)*len(itemColumns))
	for _, f := range domain.Fields {
		out = append(out, slot{field: f})
	}
	for _, item := range inv.Items {
		for _, col := range itemColumns {
			out = append(out, slot{itemID: item.ID, itemField: col.field})
		}
	}
	return out
}

func (m *CreateModel) current() (slot, bool) {
	slots := m.slots()
	if m.focus < 0 || m.focus >= len(slots) {
		return slot{}, false
	}
	return slots[m.focus], true
}

func (m *CreateModel) slotValue(s slot) string {
	inv := m.session.Draft().Invoice()
	if !s.isItem() {
		return inv.FieldValue(s.field)
	}
	idx := inv.FindItem(s.itemID)
	if idx < 0 {
		return ""
	}
	item := inv.Items[idx]
	switch s.itemField {
	case domain.ItemFieldDescription:
		return item.Description
	case domain.ItemFieldParts:
		return amountText(item.Parts)
	case domain.ItemFieldLabour:
		return amountText(item.Labour)
	case domain.ItemFieldRemark:
		return item.Remark
	}
	return ""
}

func slotPlaceholder(s slot, currency string) string {
	if !s.isItem() {
		if s.field == domain.FieldDate {
			return "YYYY-MM-DD"
		}
		return fieldLabels[s.field]
	}
	switch s.itemField {
	case domain.ItemFieldDescription:
		return "Service description"
	case domain.ItemFieldParts:
		return "Parts " + currency
	case domain.ItemFieldLabour:
		return "Labour " + currency
	default:
		return "Remark (optional)"
	}
}

// focusSlot moves the cursor, loading the cell's current value into the input
func (m *CreateModel) focusSlot(i int) tea.Cmd {
	slots := m.slots()
	if i >= len(slots) {
		i = len(slots) - 1
	}
	if i < 0 {
		i = 0
	}
	m.focus = i
	m.editing = m.session.Draft().Invoice()
	m.input.Blur()

	s := slots[i]
	m.input.Width = 40
	if s.isItem() {
		for _, col := range itemColumns {
			if col.field == s.itemField {
				m.input.Width = col.width - 3
			}
		}
	}
	m.input.SetValue(m.slotValue(s))
	m.input.Placeholder = slotPlaceholder(s, m.currency())
	m.input.CursorEnd()
	return m.input.Focus()
}

// applyInput writes the input's text back into the draft
func (m *CreateModel) applyInput() {
	s, ok := m.current()
	if !ok {
		return
	}
	value := m.input.Value()
	if s.isItem() {
		m.session.Draft().UpdateItem(s.itemID, s.itemField, value)
		return
	}

	if err := m.session.UpdateField(m.ctx(), s.field, value); err != nil {
		m.err = err
		return
	}
	// A cleared invoice number comes back as the suggestion
	if s.field == domain.FieldInvoiceNo && value == "" {
		m.input.SetValue(m.session.Draft().Invoice().InvoiceNo)
		m.input.CursorEnd()
	}
}

func (m *CreateModel) initPanel() {
	m.panel = make([]textinput.Model, panelCount)
	cur := "₹"
	if m.app != nil {
		cur = m.currency()
	}

	m.panel[panelDescription] = textinput.New()
	m.panel[panelDescription].Placeholder = "Service description"
	m.panel[panelDescription].CharLimit = 200
	m.panel[panelDescription].Width = 40

	m.panel[panelParts] = textinput.New()
	m.panel[panelParts].Placeholder = "Parts cost " + cur
	m.panel[panelParts].CharLimit = 15
	m.panel[panelParts].Width = 15

	m.panel[panelLabour] = textinput.New()
	m.panel[panelLabour].Placeholder = "Labour cost " + cur
	m.panel[panelLabour].CharLimit = 15
	m.panel[panelLabour].Width = 15

	m.panel[panelRemark] = textinput.New()
	m.panel[panelRemark].Placeholder = "Remark (optional)"
	m.panel[panelRemark].CharLimit = 100
	m.panel[panelRemark].Width = 40
}

// openPanel shows the add-item panel with whatever was typed last time
func (m *CreateModel) openPanel() tea.Cmd {
	d := m.session.Draft()
	d.OpenAddPanel()

	p := d.Pending()
	m.panel[panelDescription].SetValue(p.Description)
	m.panel[panelParts].SetValue(p.Parts)
	m.panel[panelLabour].SetValue(p.Labour)
	m.panel[panelRemark].SetValue(p.Remark)

	m.mode = createModeAddPanel
	m.input.Blur()
	m.panelFocus = panelDescription
	for i := range m.panel {
		m.panel[i].Blur()
	}
	return m.panel[panelDescription].Focus()
}

func (m *CreateModel) closePanel() tea.Cmd {
	m.session.Draft().CloseAddPanel()
	m.mode = createModeForm
	for i := range m.panel {
		m.panel[i].Blur()
	}
	return m.focusSlot(m.focus)
}

func (m *CreateModel) syncPending() {
	m.session.Draft().SetPending(service.NewItemInput{
		Description: m.panel[panelDescription].Value(),
		Parts:       m.panel[panelParts].Value(),
		Labour:      m.panel[panelLabour].Value(),
		Remark:      m.panel[panelRemark].Value(),
	})
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg:
		// Entered from the invoice book: the draft may have been reset
		m.err = nil
		m.mode = createModeForm
		if m.session.Draft().Invoice() != m.editing {
			m.focus = 0
		}
		if m.session.Draft().AddPanelOpen() {
			return m, m.openPanel()
		}
		return m, m.focusSlot(m.focus)

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil
		if m.mode == createModeAddPanel {
			return m.updatePanel(msg)
		}
		return m.updateForm(msg)
	}

	// Cursor blink and other input messages
	var cmd tea.Cmd
	if m.mode == createModeAddPanel {
		m.panel[m.panelFocus], cmd = m.panel[m.panelFocus].Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *CreateModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := m.ctx()
	n := len(m.slots())

	switch {
	case key.Matches(msg, DefaultKeyMap.NextSlot):
		return m, m.focusSlot((m.focus + 1) % n)

	case key.Matches(msg, DefaultKeyMap.PrevSlot):
		return m, m.focusSlot((m.focus - 1 + n) % n)

	case msg.String() == "enter":
		return m, m.focusSlot((m.focus + 1) % n)

	case key.Matches(msg, DefaultKeyMap.AddItem):
		return m, m.openPanel()

	case key.Matches(msg, DefaultKeyMap.Remove):
		s, ok := m.current()
		if !ok || !s.isItem() {
			m.err = fmt.Errorf("move to an item row to remove it")
			return m, nil
		}
		m.session.Draft().RemoveItem(s.itemID)
		return m, m.focusSlot(m.focus)

	case key.Matches(msg, DefaultKeyMap.Save):
		saved, err := m.session.Save(ctx)
		if err != nil {
			m.err = saveError(err)
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Invoice saved successfully! (%s, %s)",
			saved.InvoiceNo, formatMoney(m.currency(), saved.Totals.Grand))
		return m, nil

	case msg.String() == "ctrl+p":
		path, err := m.app.Printer.Print(m.session.Draft().Snapshot())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.statusMsg = "Printed to " + path
		return m, nil

	case key.Matches(msg, DefaultKeyMap.ViewAll):
		m.input.Blur()
		m.session.ViewAll()
		return m, nil

	case msg.String() == "ctrl+n":
		if err := m.session.NewInvoice(ctx); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.focusSlot(0)
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.applyInput()
	}
	return m, cmd
}

func (m *CreateModel) updatePanel(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.closePanel()

	case "tab", "down":
		m.panel[m.panelFocus].Blur()
		m.panelFocus = (m.panelFocus + 1) % panelCount
		return m, m.panel[m.panelFocus].Focus()

	case "shift+tab", "up":
		m.panel[m.panelFocus].Blur()
		m.panelFocus = (m.panelFocus - 1 + panelCount) % panelCount
		return m, m.panel[m.panelFocus].Focus()

	case "enter", "ctrl+s":
		if msg.String() == "enter" && m.panelFocus < panelCount-1 {
			m.panel[m.panelFocus].Blur()
			m.panelFocus++
			return m, m.panel[m.panelFocus].Focus()
		}
		m.syncPending()
		item, err := m.session.Draft().AddPending()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.initPanel()
		m.mode = createModeForm
		m.statusMsg = "Added: " + item.Description
		// Land on the new item's description
		return m, m.focusSlot(len(m.slots()) - len(itemColumns))
	}

	var cmd tea.Cmd
	m.panel[m.panelFocus], cmd = m.panel[m.panelFocus].Update(msg)
	m.syncPending()
	return m, cmd
}

func saveError(err error) error {
	if errors.Is(err, domain.ErrCustomerNameRequired) {
		return fmt.Errorf("please enter customer name")
	}
	return err
}

func (m *CreateModel) View() string {
	var b strings.Builder
	inv := m.session.Draft().Invoice()

	section := func(title string, fields ...domain.Field) {
		b.WriteString(titleStyle.Render(title) + "\n")
		for _, f := range fields {
			b.WriteString(m.renderField(f) + "\n")
		}
		b.WriteString("\n")
	}

	section("Workshop", domain.FieldWorkshopName, domain.FieldAddress, domain.FieldPhone, domain.FieldEmail)
	section("Invoice", domain.FieldDate, domain.FieldInvoiceNo)
	section("Vehicle", domain.FieldVehicleNo, domain.FieldModel, domain.FieldOdometerKm)
	section("Customer", domain.FieldCustomerName, domain.FieldCustomerPhone, domain.FieldCustomerAddress)

	b.WriteString(titleStyle.Render("Service Items") + "\n")
	b.WriteString(m.renderItems(inv))

	if m.mode == createModeAddPanel {
		b.WriteString("\n" + m.viewPanel() + "\n")
	}

	t := inv.Totals()
	cur := m.currency()
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Total Parts:  %s\n", amountStyle.Render(formatMoney(cur, t.Parts))))
	b.WriteString(fmt.Sprintf("  Total Labour: %s\n", amountStyle.Render(formatMoney(cur, t.Labour))))
	b.WriteString(totalStyle.Render(fmt.Sprintf("  Grand Total:  %s", formatMoney(cur, t.Grand))) + "\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("  Items: %d", len(inv.Items))) + "\n")

	if m.statusMsg != "" {
		b.WriteString("\n" + statusStyle.Render("  "+m.statusMsg) + "\n")
	}
	if m.err != nil {
		b.WriteString("\n" + errStyle.Render(fmt.Sprintf("  Error: %v", m.err)) + "\n")
	}

	if m.mode == createModeAddPanel {
		b.WriteString("\n" + helpStyle.Render("  tab: next field  enter: next/add  ctrl+s: add  esc: close"))
	} else {
		b.WriteString("\n" + helpStyle.Render("  tab/shift+tab: move  ctrl+a: add item  ctrl+d: remove item  ctrl+s: save"))
	}

	return b.String()
}

func (m *CreateModel) isFocused(s slot) bool {
	if m.mode != createModeForm {
		return false
	}
	cur, ok := m.current()
	return ok && cur == s
}

func (m *CreateModel) renderField(f domain.Field) string {
	s := slot{field: f}
	label := fmt.Sprintf("%-18s", fieldLabels[f]+":")
	if m.isFocused(s) {
		line := "> " + focusStyle.Render(label) + m.input.View()
		if f == domain.FieldDate && m.input.Value() != "" && m.input.Value() != m.session.Draft().Invoice().DateString() {
			line += warnStyle.Render("  (YYYY-MM-DD)")
		}
		return line
	}
	value := m.slotValue(s)
	if value == "" {
		value = subtitleStyle.Render(slotPlaceholder(s, m.currency()))
	}
	return "  " + subtitleStyle.Render(label) + value
}

func (m *CreateModel) renderItems(inv *domain.Invoice) string {
	var b strings.Builder
	cur := m.currency()

	header := []string{lipgloss.NewStyle().Width(4).Render("#")}
	for _, col := range itemColumns {
		header = append(header, lipgloss.NewStyle().Width(col.width).Render(col.title))
	}
	header = append(header, "Total")
	b.WriteString(subtitleStyle.Render("  "+strings.Join(header, " ")) + "\n")

	if len(inv.Items) == 0 {
		b.WriteString(subtitleStyle.Render("  No items. Press ctrl+a to add one.") + "\n")
		return b.String()
	}

	for i, item := range inv.Items {
		cells := []string{lipgloss.NewStyle().Width(4).Render(fmt.Sprintf("%d", i+1))}
		for _, col := range itemColumns {
			s := slot{itemID: item.ID, itemField: col.field}
			cell := lipgloss.NewStyle().Width(col.width)
			if m.isFocused(s) {
				cells = append(cells, cell.Render(m.input.View()))
				continue
			}
			var text string
			switch col.field {
			case domain.ItemFieldParts:
				text = formatMoney(cur, item.Parts)
			case domain.ItemFieldLabour:
				text = formatMoney(cur, item.Labour)
			default:
				text = m.slotValue(s)
			}
			if text == "" {
				text = subtitleStyle.Render(truncateStr(slotPlaceholder(s, cur), col.width-1))
			} else {
				text = truncateStr(text, col.width-1)
			}
			cells = append(cells, cell.Render(text))
		}
		cells = append(cells, amountStyle.Render(formatMoney(cur, item.Total())))
		b.WriteString("  " + strings.Join(cells, " ") + "\n")
	}
	return b.String()
}

func (m *CreateModel) viewPanel() string {
	labels := []string{"Description:", "Parts:", "Labour:", "Remark:"}
	var s string
	s += focusStyle.Render("Add New Item") + "\n"
	for i, label := range labels {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.panelFocus {
			indicator = "> "
			labelStyle = focusStyle
		}
		s += fmt.Sprintf("%s%s %s\n", indicator, labelStyle.Render(fmt.Sprintf("%-13s", label)), m.panel[i].View())
	}
	return boxStyle.Render(strings.TrimRight(s, "\n"))
}
