package domain

import "github.com/shopspring/decimal"

// Totals holds the derived sums of an invoice
type Totals struct {
	Parts  decimal.Decimal
	Labour decimal.Decimal
	Grand  decimal.Decimal
}

// CalculateTotals sums parts and labour across items.
// Grand is always Parts + Labour.
func CalculateTotals(items []LineItem) Totals {
	parts := decimal.Zero
	labour := decimal.Zero
	for _, item := range items {
		parts = parts.Add(item.Parts)
		labour = labour.Add(item.Labour)
	}
	return Totals{
		Parts:  parts,
		Labour: labour,
		Grand:  parts.Add(labour),
	}
}
