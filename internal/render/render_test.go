package render

import (
	"strings"
	"testing"
	"time"

	"github.com/andy/garagebill/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() domain.Invoice {
	shop := domain.ShopIdentity{
		WorkshopName: "AUTO SERVICE CENTER",
		Address:      "Jakatnaka, Surat, Gujarat",
		Phone:        "+91 98765 43210",
		Email:        "info@autoservice.com",
	}
	inv := domain.NewInvoice(shop, "INV-0001", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	inv.VehicleNo = "GJ05AB1234"
	inv.Model = "Honda City"
	inv.OdometerKm = "42000"
	inv.CustomerName = "Raj Patel"
	inv.Items = []domain.LineItem{
		domain.NewLineItem("Oil Change Service", domain.ParseAmount("800"), domain.ParseAmount("200"), ""),
		domain.NewLineItem("Brake Pad Replacement", domain.ParseAmount("450"), domain.ParseAmount("150"), "Front"),
	}
	return *inv
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "₹800.00", Money("₹", decimal.NewFromInt(800)))
	assert.Equal(t, "₹1250.50", Money("₹", decimal.RequireFromString("1250.5")))
	assert.Equal(t, "$0.00", Money("$", decimal.Zero))
}

func TestMoney_HugeExponentEntry(t *testing.T) {
	for _, in := range []string{"1e5000000", "1e99999999", "1e-99999999"} {
		assert.Equal(t, "₹0.00", Money("₹", domain.ParseAmount(in)), in)
	}
}

func TestPrintHTML(t *testing.T) {
	html, err := PrintHTML(sampleInvoice(), Options{})
	require.NoError(t, err)

	for _, want := range []string{
		"<title>Invoice INV-0001</title>",
		"<h1>AUTO SERVICE CENTER</h1>",
		"Phone: &#43;91 98765 43210 | Email: info@autoservice.com",
		"<strong>Date:</strong> 2024-05-01",
		"<strong>KM:</strong> 42000",
		"<strong>Name:</strong> Raj Patel",
		"<th>Parts (₹)</th>",
		"<td>Oil Change Service</td>",
		"<td>₹1000.00</td>",
		"<td>Front</td>",
		"<td><strong>₹1250.00</strong></td>",
		"<td><strong>₹350.00</strong></td>",
		"<td><strong>₹1600.00</strong></td>",
		"Thank you for choosing our service!",
		"For any queries, please contact us at &#43;91 98765 43210",
	} {
		assert.Contains(t, html, want)
	}

	// rows are numbered from 1 and an empty remark prints as a dash
	assert.Contains(t, html, "<td>1</td>")
	assert.Contains(t, html, "<td>2</td>")
	assert.Equal(t, 1, strings.Count(html, "<td>-</td>"))
	assert.NotContains(t, html, "<script")
}

func TestPrintHTML_EmptyItems(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = nil

	html, err := PrintHTML(inv, Options{Currency: "Rs."})
	require.NoError(t, err)

	assert.NotContains(t, html, "<td>1</td>")
	assert.Contains(t, html, "<td><strong>Rs.0.00</strong></td>")
}

func TestPrintHTML_EscapesUserText(t *testing.T) {
	inv := sampleInvoice()
	inv.CustomerName = "<b>Raj</b>"

	html, err := PrintHTML(inv, Options{})
	require.NoError(t, err)

	assert.NotContains(t, html, "<b>Raj</b>")
	assert.Contains(t, html, "&lt;b&gt;Raj&lt;/b&gt;")
}

func TestPrintSaved_UsesItems(t *testing.T) {
	inv := sampleInvoice()
	saved := domain.NewSavedInvoice(&inv, time.Now())

	html, err := PrintSaved(saved, Options{})
	require.NoError(t, err)
	assert.Contains(t, html, "<td><strong>₹1600.00</strong></td>")
}
