package domain

import (
	"errors"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for invoice dates
const DateLayout = "2006-01-02"

var (
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrDescriptionRequired  = errors.New("item description is required")
)

// Field names a top-level scalar field of an invoice
type Field string

const (
	FieldWorkshopName    Field = "workshopName"
	FieldAddress         Field = "address"
	FieldPhone           Field = "phone"
	FieldEmail           Field = "email"
	FieldDate            Field = "date"
	FieldInvoiceNo       Field = "invoiceNo"
	FieldVehicleNo       Field = "vehicleNo"
	FieldModel           Field = "model"
	FieldOdometerKm      Field = "km"
	FieldCustomerName    Field = "customerName"
	FieldCustomerPhone   Field = "customerPhone"
	FieldCustomerAddress Field = "customerAddress"
)

// Fields lists every editable scalar field in form order
var Fields = []Field{
	FieldWorkshopName,
	FieldAddress,
	FieldPhone,
	FieldEmail,
	FieldDate,
	FieldInvoiceNo,
	FieldVehicleNo,
	FieldModel,
	FieldOdometerKm,
	FieldCustomerName,
	FieldCustomerPhone,
	FieldCustomerAddress,
}

// ItemField names an editable field of a line item
type ItemField string

const (
	ItemFieldDescription ItemField = "description"
	ItemFieldParts       ItemField = "parts"
	ItemFieldLabour      ItemField = "labour"
	ItemFieldRemark      ItemField = "remark"
)

// IsCost reports whether the field holds a numeric cost
func (f ItemField) IsCost() bool {
	return f == ItemFieldParts || f == ItemFieldLabour
}

// ShopIdentity is the workshop header printed on every invoice
type ShopIdentity struct {
	WorkshopName string
	Address      string
	Phone        string
	Email        string
}

// Invoice is a draft or the body of a saved invoice
type Invoice struct {
	ShopIdentity

	Date      time.Time
	InvoiceNo string

	VehicleNo  string
	Model      string
	OdometerKm string

	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	Items []LineItem
}

// NewInvoice creates a draft for the given shop with a single blank item
func NewInvoice(shop ShopIdentity, invoiceNo string, date time.Time) *Invoice {
	return &Invoice{
		ShopIdentity: shop,
		Date:         truncateDate(date),
		InvoiceNo:    invoiceNo,
		Items:        []LineItem{NewBlankLineItem()},
	}
}

// Totals derives the current totals from the items
func (i *Invoice) Totals() Totals {
	return CalculateTotals(i.Items)
}

// DateString returns the date as YYYY-MM-DD, or "" when unset
func (i *Invoice) DateString() string {
	if i.Date.IsZero() {
		return ""
	}
	return i.Date.Format(DateLayout)
}

// Clone returns a deep copy so later edits never leak into the copy
func (i *Invoice) Clone() Invoice {
	c := *i
	c.Items = make([]LineItem, len(i.Items))
	copy(c.Items, i.Items)
	return c
}

// FindItem returns the index of the item with the given ID, or -1
func (i *Invoice) FindItem(id string) int {
	for idx, item := range i.Items {
		if item.ID == id {
			return idx
		}
	}
	return -1
}

// SetField assigns a scalar field. It returns false for unknown fields
// and for dates that do not parse.
func (i *Invoice) SetField(f Field, value string) bool {
	switch f {
	case FieldWorkshopName:
		i.WorkshopName = value
	case FieldAddress:
		i.Address = value
	case FieldPhone:
		i.Phone = value
	case FieldEmail:
		i.Email = value
	case FieldDate:
		if strings.TrimSpace(value) == "" {
			i.Date = time.Time{}
			return true
		}
		d, err := time.Parse(DateLayout, strings.TrimSpace(value))
		if err != nil {
			return false
		}
		i.Date = d
	case FieldInvoiceNo:
		i.InvoiceNo = value
	case FieldVehicleNo:
		i.VehicleNo = value
	case FieldModel:
		i.Model = value
	case FieldOdometerKm:
		i.OdometerKm = value
	case FieldCustomerName:
		i.CustomerName = value
	case FieldCustomerPhone:
		i.CustomerPhone = value
	case FieldCustomerAddress:
		i.CustomerAddress = value
	default:
		return false
	}
	return true
}

// FieldValue returns the text form of a scalar field
func (i *Invoice) FieldValue(f Field) string {
	switch f {
	case FieldWorkshopName:
		return i.WorkshopName
	case FieldAddress:
		return i.Address
	case FieldPhone:
		return i.Phone
	case FieldEmail:
		return i.Email
	case FieldDate:
		return i.DateString()
	case FieldInvoiceNo:
		return i.InvoiceNo
	case FieldVehicleNo:
		return i.VehicleNo
	case FieldModel:
		return i.Model
	case FieldOdometerKm:
		return i.OdometerKm
	case FieldCustomerName:
		return i.CustomerName
	case FieldCustomerPhone:
		return i.CustomerPhone
	case FieldCustomerAddress:
		return i.CustomerAddress
	}
	return ""
}

// ValidateForSave returns an error if the invoice cannot be saved
func (i *Invoice) ValidateForSave() error {
	if strings.TrimSpace(i.CustomerName) == "" {
		return ErrCustomerNameRequired
	}
	return nil
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
