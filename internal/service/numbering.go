package service

import "fmt"

const (
	DefaultNumberPrefix = "INV"
	DefaultNumberWidth  = 4
)

// SuggestInvoiceNo returns the advisory number for the next invoice,
// e.g. INV-0003 when two invoices are already saved.
func SuggestInvoiceNo(prefix string, width, savedCount int) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	if width <= 0 {
		width = DefaultNumberWidth
	}
	return fmt.Sprintf("%s-%0*d", prefix, width, savedCount+1)
}
