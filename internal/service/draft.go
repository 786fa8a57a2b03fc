package service

import (
	"strings"
	"time"

	"github.com/andy/garagebill/internal/domain"
)

// NewItemInput is the pending text of the add-item panel
type NewItemInput struct {
	Description string
	Parts       string
	Labour      string
	Remark      string
}

// Draft owns the invoice being edited and the add-item panel state
type Draft struct {
	invoice   *domain.Invoice
	pending   NewItemInput
	panelOpen bool
}

// NewDraft starts a draft for the shop with one default item
func NewDraft(shop domain.ShopIdentity, invoiceNo string, today time.Time) *Draft {
	return &Draft{invoice: domain.NewInvoice(shop, invoiceNo, today)}
}

// Invoice exposes the live draft for rendering. Callers must not retain it.
func (d *Draft) Invoice() *domain.Invoice {
	return d.invoice
}

// Snapshot returns a deep copy of the draft
func (d *Draft) Snapshot() domain.Invoice {
	return d.invoice.Clone()
}

// Totals recomputes totals from the current items
func (d *Draft) Totals() domain.Totals {
	return d.invoice.Totals()
}

// UpdateField sets a scalar field as typed. Unknown names and malformed
// dates leave the draft unchanged.
func (d *Draft) UpdateField(name domain.Field, value string) bool {
	return d.invoice.SetField(name, value)
}

// UpdateItem edits one field of the item with the given ID.
// Costs that do not parse become zero; an unknown ID is ignored.
func (d *Draft) UpdateItem(id string, field domain.ItemField, value string) {
	idx := d.invoice.FindItem(id)
	if idx < 0 {
		return
	}

	item := &d.invoice.Items[idx]
	switch field {
	case domain.ItemFieldDescription:
		item.Description = value
	case domain.ItemFieldParts:
		item.Parts = domain.ParseAmount(value)
	case domain.ItemFieldLabour:
		item.Labour = domain.ParseAmount(value)
	case domain.ItemFieldRemark:
		item.Remark = value
	}
}

// OpenAddPanel shows the add-item panel
func (d *Draft) OpenAddPanel() {
	d.panelOpen = true
}

// CloseAddPanel hides the panel; pending input is kept
func (d *Draft) CloseAddPanel() {
	d.panelOpen = false
}

// AddPanelOpen reports whether the add-item panel is showing
func (d *Draft) AddPanelOpen() bool {
	return d.panelOpen
}

// Pending returns the add-item panel input
func (d *Draft) Pending() NewItemInput {
	return d.pending
}

// SetPending replaces the add-item panel input
func (d *Draft) SetPending(in NewItemInput) {
	d.pending = in
}

// AddItem appends the pending item. A blank description is rejected and
// nothing changes; on success the pending input is cleared and the panel closes.
func (d *Draft) AddItem(in NewItemInput) (domain.LineItem, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return domain.LineItem{}, domain.ErrDescriptionRequired
	}

	item := domain.NewLineItem(
		desc,
		domain.ParseAmount(in.Parts),
		domain.ParseAmount(in.Labour),
		strings.TrimSpace(in.Remark),
	)
	d.invoice.Items = append(d.invoice.Items, item)

	d.pending = NewItemInput{}
	d.panelOpen = false
	return item, nil
}

// AddPending submits the panel's own pending input
func (d *Draft) AddPending() (domain.LineItem, error) {
	return d.AddItem(d.pending)
}

// RemoveItem deletes the item with the given ID. The draft may end up empty.
func (d *Draft) RemoveItem(id string) {
	idx := d.invoice.FindItem(id)
	if idx < 0 {
		return
	}
	d.invoice.Items = append(d.invoice.Items[:idx:idx], d.invoice.Items[idx+1:]...)
}

// Reset starts a new invoice, keeping only the shop identity
func (d *Draft) Reset(invoiceNo string, today time.Time) {
	d.invoice = domain.NewInvoice(d.invoice.ShopIdentity, invoiceNo, today)
	d.pending = NewItemInput{}
	d.panelOpen = false
}
