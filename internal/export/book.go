package export

import (
	"fmt"
	"time"

	"github.com/andy/garagebill/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	invoicesSheet = "Invoices"
	itemsSheet    = "Items"
)

var (
	invoiceHeaders = []interface{}{
		"Invoice No", "Date", "Customer", "Vehicle No", "Model", "Items",
		"Parts", "Labour", "Grand Total", "Saved At",
	}
	// Parts, Labour and Grand Total
	amountColumns = []int{6, 7, 8}

	itemHeaders = []interface{}{
		"Invoice No", "Sr. No.", "Description", "Parts", "Labour", "Total", "Remark",
	}
)

// WriteBook exports the saved invoices to an xlsx workbook at path.
// Amounts are written as numbers; currency labels the amount headers.
func WriteBook(path string, invoices []*domain.SavedInvoice, currency string) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile starts with Sheet1
	if err := f.SetSheetName("Sheet1", invoicesSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headers := make([]interface{}, len(invoiceHeaders))
	copy(headers, invoiceHeaders)
	if currency != "" {
		for _, col := range amountColumns {
			headers[col] = fmt.Sprintf("%s (%s)", headers[col], currency)
		}
	}
	if err := f.SetSheetRow(invoicesSheet, "A1", &headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	if err := f.SetSheetRow(itemsSheet, "A1", &itemHeaders); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	itemRow := 2
	for i, inv := range invoices {
		row := []interface{}{
			inv.InvoiceNo,
			inv.DateString(),
			inv.CustomerName,
			inv.VehicleNo,
			inv.Model,
			len(inv.Items),
			inv.Totals.Parts.InexactFloat64(),
			inv.Totals.Labour.InexactFloat64(),
			inv.Totals.Grand.InexactFloat64(),
			inv.SavedAt.Format(time.RFC3339),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(invoicesSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write invoice %s: %w", inv.InvoiceNo, err)
		}

		for n, item := range inv.Items {
			itemCells := []interface{}{
				inv.InvoiceNo,
				n + 1,
				item.Description,
				item.Parts.InexactFloat64(),
				item.Labour.InexactFloat64(),
				item.Total().InexactFloat64(),
				item.Remark,
			}
			cell, err := excelize.CoordinatesToCellName(1, itemRow)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(itemsSheet, cell, &itemCells); err != nil {
				return fmt.Errorf("failed to write items for %s: %w", inv.InvoiceNo, err)
			}
			itemRow++
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}
