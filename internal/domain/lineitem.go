package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// amountPrefix matches the leading numeric part of a cost entry ("12.5abc" -> "12.5")
var amountPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// maxAmountExponent bounds the decimal exponent of a parsed cost. Beyond it
// every render would have to expand the number digit by digit.
const maxAmountExponent = 15

// LineItem is one service row on an invoice
type LineItem struct {
	ID          string
	Description string
	Parts       decimal.Decimal
	Labour      decimal.Decimal
	Remark      string
}

// NewLineItem creates a line item with a fresh unique ID
func NewLineItem(description string, parts, labour decimal.Decimal, remark string) LineItem {
	return LineItem{
		ID:          NewItemID(),
		Description: description,
		Parts:       nonNegative(parts),
		Labour:      nonNegative(labour),
		Remark:      remark,
	}
}

// NewBlankLineItem returns an empty row with zero costs
func NewBlankLineItem() LineItem {
	return NewLineItem("", decimal.Zero, decimal.Zero, "")
}

// NewItemID generates a line item identifier
func NewItemID() string {
	return uuid.NewString()
}

// Total returns parts + labour for display
func (li LineItem) Total() decimal.Decimal {
	return li.Parts.Add(li.Labour)
}

// ParseAmount converts operator input into a cost.
// Anything that does not start with a number yields zero, as do negative
// values and exponents outside ±maxAmountExponent.
func ParseAmount(s string) decimal.Decimal {
	m := amountPrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp > maxAmountExponent || exp < -maxAmountExponent {
		return decimal.Zero
	}
	return nonNegative(d)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
