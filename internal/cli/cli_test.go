package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andy/garagebill/internal/app"
	"github.com/andy/garagebill/internal/config"
	"github.com/andy/garagebill/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const rajDoc = `
date: 2024-05-01
invoice_no: INV-0007
vehicle_no: GJ05AB1234
model: Honda City
km: "42000"
customer_name: Raj Patel
items:
  - description: Oil Change Service
    parts: "800"
    labour: "200"
  - description: Brake Pad Replacement
    parts: "450"
    labour: "150"
    remark: Front
`

var testShop = domain.ShopIdentity{
	WorkshopName: "AUTO SERVICE CENTER",
	Address:      "Jakatnaka, Surat, Gujarat",
	Phone:        "+91 98765 43210",
	Email:        "info@autoservice.com",
}

func setupApp(t *testing.T) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Invoice.OutputDir = filepath.Join(t.TempDir(), "out")
	cfg.Log.Path = "off"

	a, err := app.NewWithConfig(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	SetApp(a)
}

func writeDoc(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestParseInvoiceDoc(t *testing.T) {
	inv, err := parseInvoiceDoc([]byte(rajDoc), testShop, time.Now())
	require.NoError(t, err)

	assert.Equal(t, testShop, inv.ShopIdentity)
	assert.Equal(t, "2024-05-01", inv.DateString())
	assert.Equal(t, "INV-0007", inv.InvoiceNo)
	assert.Equal(t, "42000", inv.OdometerKm)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Front", inv.Items[1].Remark)
	assert.NotEqual(t, inv.Items[0].ID, inv.Items[1].ID)

	totals := inv.Totals()
	assert.Equal(t, "1250", totals.Parts.String())
	assert.Equal(t, "350", totals.Labour.String())
	assert.Equal(t, "1600", totals.Grand.String())
}

func TestParseInvoiceDoc_Defaults(t *testing.T) {
	today := time.Date(2024, 6, 2, 18, 0, 0, 0, time.UTC)
	doc := "workshop_name: Patel Motors\nitems:\n  - description: Wash\n    parts: abc\n    labour: \"-50\"\n"

	inv, err := parseInvoiceDoc([]byte(doc), testShop, today)
	require.NoError(t, err)

	assert.Equal(t, "Patel Motors", inv.WorkshopName)
	assert.Equal(t, testShop.Phone, inv.Phone)
	assert.Equal(t, "2024-06-02", inv.DateString())
	require.Len(t, inv.Items, 1)
	assert.True(t, inv.Items[0].Parts.IsZero())
	assert.True(t, inv.Items[0].Labour.IsZero())
}

func TestParseInvoiceDoc_Errors(t *testing.T) {
	_, err := parseInvoiceDoc([]byte("date: 01/05/2024\n"), testShop, time.Now())
	assert.Error(t, err)

	_, err = parseInvoiceDoc([]byte("items: [\n"), testShop, time.Now())
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	setupApp(t)
	doc := writeDoc(t, "raj.yaml", rajDoc)
	out := filepath.Join(t.TempDir(), "raj.html")

	stdout, err := run(t, "render", doc, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, out)

	html, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<title>Invoice INV-0007</title>")
	assert.Contains(t, string(html), "₹1600.00")
}

func TestTotalsCommand(t *testing.T) {
	setupApp(t)
	doc := writeDoc(t, "raj.yaml", rajDoc)

	stdout, err := run(t, "totals", doc)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Invoice INV-0007  Raj Patel")
	assert.Contains(t, stdout, "₹1250.00")
	assert.Contains(t, stdout, "₹350.00")
	assert.Contains(t, stdout, "₹1600.00")
}

func TestBookCommand(t *testing.T) {
	setupApp(t)
	first := writeDoc(t, "raj.yaml", rajDoc)
	second := writeDoc(t, "asha.yaml", "customer_name: Asha\nitems:\n  - description: Wash\n    labour: \"150\"\n")
	out := filepath.Join(t.TempDir(), "book.xlsx")

	stdout, err := run(t, "book", first, second, "-o", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 invoice(s) exported")
	assert.Contains(t, stdout, "Total: ₹1750.00")

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	// newest first; the second document got the next suggested number
	assert.Equal(t, "INV-0002", rows[1][0])
	assert.Equal(t, "Asha", rows[1][2])
	assert.Equal(t, "INV-0007", rows[2][0])
}

func TestBookCommand_RejectsMissingCustomer(t *testing.T) {
	setupApp(t)
	doc := writeDoc(t, "blank.yaml", "items:\n  - description: Wash\n")

	_, err := run(t, "book", doc, "-o", filepath.Join(t.TempDir(), "book.xlsx"))
	assert.ErrorIs(t, err, domain.ErrCustomerNameRequired)

	n, err := appInstance.InvoiceService.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
