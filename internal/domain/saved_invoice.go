package domain

import (
	"strings"
	"time"
)

// SavedInvoice is an immutable snapshot of a draft with totals frozen at save time
type SavedInvoice struct {
	ID      int64
	SavedAt time.Time

	Invoice
	Totals Totals
}

// NewSavedInvoice snapshots inv and computes its totals
func NewSavedInvoice(inv *Invoice, savedAt time.Time) *SavedInvoice {
	body := inv.Clone()
	return &SavedInvoice{
		SavedAt: savedAt,
		Invoice: body,
		Totals:  CalculateTotals(body.Items),
	}
}

// Matches reports whether term appears, ignoring case, in the customer name,
// invoice number or vehicle number. An empty term matches everything.
func (s *SavedInvoice) Matches(term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(s.CustomerName), needle) ||
		strings.Contains(strings.ToLower(s.InvoiceNo), needle) ||
		strings.Contains(strings.ToLower(s.VehicleNo), needle)
}

// VehicleLabel renders "model - vehicleNo" as shown in the invoice book
func (s *SavedInvoice) VehicleLabel() string {
	return s.Model + " - " + s.VehicleNo
}
