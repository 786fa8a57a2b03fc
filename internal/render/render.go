// Package render turns invoices into printable documents
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/andy/garagebill/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the symbol used when Options leaves it empty
const DefaultCurrency = "₹"

//go:embed templates/invoice.html
var invoiceHTML string

var invoiceTmpl = template.Must(template.New("invoice").Parse(invoiceHTML))

// Options controls document formatting
type Options struct {
	Currency string
}

func (o Options) currency() string {
	if o.Currency == "" {
		return DefaultCurrency
	}
	return o.Currency
}

type printRow struct {
	SrNo        int
	Description string
	Parts       string
	Labour      string
	Total       string
	Remark      string
}

type printDoc struct {
	WorkshopName    string
	Address         string
	Phone           string
	Email           string
	InvoiceNo       string
	Date            string
	VehicleNo       string
	Model           string
	Km              string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	Currency        string
	Rows            []printRow
	TotalParts      string
	TotalLabour     string
	GrandTotal      string
}

// PrintHTML renders a standalone HTML document for the invoice.
// Totals are always recomputed from the items.
func PrintHTML(inv domain.Invoice, opts Options) (string, error) {
	cur := opts.currency()
	totals := domain.CalculateTotals(inv.Items)

	doc := printDoc{
		WorkshopName:    inv.WorkshopName,
		Address:         inv.Address,
		Phone:           inv.Phone,
		Email:           inv.Email,
		InvoiceNo:       inv.InvoiceNo,
		Date:            inv.DateString(),
		VehicleNo:       inv.VehicleNo,
		Model:           inv.Model,
		Km:              inv.OdometerKm,
		CustomerName:    inv.CustomerName,
		CustomerPhone:   inv.CustomerPhone,
		CustomerAddress: inv.CustomerAddress,
		Currency:        cur,
		Rows:            make([]printRow, 0, len(inv.Items)),
		TotalParts:      Money(cur, totals.Parts),
		TotalLabour:     Money(cur, totals.Labour),
		GrandTotal:      Money(cur, totals.Grand),
	}

	for i, item := range inv.Items {
		remark := item.Remark
		if remark == "" {
			remark = "-"
		}
		doc.Rows = append(doc.Rows, printRow{
			SrNo:        i + 1,
			Description: item.Description,
			Parts:       Money(cur, item.Parts),
			Labour:      Money(cur, item.Labour),
			Total:       Money(cur, item.Total()),
			Remark:      remark,
		})
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render invoice %s: %w", inv.InvoiceNo, err)
	}
	return buf.String(), nil
}

// PrintSaved renders a saved invoice
func PrintSaved(inv *domain.SavedInvoice, opts Options) (string, error) {
	return PrintHTML(inv.Invoice, opts)
}

// Money formats an amount with two decimals, e.g. ₹800.00
func Money(currency string, d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}
