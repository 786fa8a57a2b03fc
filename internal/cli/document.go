package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andy/garagebill/internal/domain"
	"gopkg.in/yaml.v3"
)

// invoiceDoc is the YAML form of an invoice used by the scripted commands.
// Costs are kept as text and go through the same parsing as the editor.
type invoiceDoc struct {
	WorkshopName    string    `yaml:"workshop_name"`
	Address         string    `yaml:"address"`
	Phone           string    `yaml:"phone"`
	Email           string    `yaml:"email"`
	Date            string    `yaml:"date"`
	InvoiceNo       string    `yaml:"invoice_no"`
	VehicleNo       string    `yaml:"vehicle_no"`
	Model           string    `yaml:"model"`
	Km              string    `yaml:"km"`
	CustomerName    string    `yaml:"customer_name"`
	CustomerPhone   string    `yaml:"customer_phone"`
	CustomerAddress string    `yaml:"customer_address"`
	Items           []itemDoc `yaml:"items"`
}

type itemDoc struct {
	Description string `yaml:"description"`
	Parts       string `yaml:"parts"`
	Labour      string `yaml:"labour"`
	Remark      string `yaml:"remark"`
}

// loadInvoiceDoc reads an invoice document. Empty workshop fields fall back
// to shop and a missing date means today.
func loadInvoiceDoc(path string, shop domain.ShopIdentity, today time.Time) (domain.Invoice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Invoice{}, err
	}
	return parseInvoiceDoc(data, shop, today)
}

func parseInvoiceDoc(data []byte, shop domain.ShopIdentity, today time.Time) (domain.Invoice, error) {
	var doc invoiceDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.Invoice{}, fmt.Errorf("invalid invoice document: %w", err)
	}

	inv := domain.NewInvoice(domain.ShopIdentity{
		WorkshopName: orDefault(doc.WorkshopName, shop.WorkshopName),
		Address:      orDefault(doc.Address, shop.Address),
		Phone:        orDefault(doc.Phone, shop.Phone),
		Email:        orDefault(doc.Email, shop.Email),
	}, doc.InvoiceNo, today)

	if doc.Date != "" && !inv.SetField(domain.FieldDate, doc.Date) {
		return domain.Invoice{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", doc.Date)
	}
	inv.VehicleNo = doc.VehicleNo
	inv.Model = doc.Model
	inv.OdometerKm = doc.Km
	inv.CustomerName = doc.CustomerName
	inv.CustomerPhone = doc.CustomerPhone
	inv.CustomerAddress = doc.CustomerAddress

	inv.Items = make([]domain.LineItem, 0, len(doc.Items))
	for _, it := range doc.Items {
		inv.Items = append(inv.Items, domain.NewLineItem(
			it.Description,
			domain.ParseAmount(it.Parts),
			domain.ParseAmount(it.Labour),
			it.Remark,
		))
	}

	return *inv, nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
