package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andy/garagebill/internal/db"
	"github.com/andy/garagebill/internal/domain"
)

// InvoiceRepo is a SQLite implementation of InvoiceRepository
type InvoiceRepo struct {
	db *db.DB
}

// NewInvoiceRepo creates a new InvoiceRepo
func NewInvoiceRepo(database *db.DB) *InvoiceRepo {
	return &InvoiceRepo{db: database}
}

const invoiceColumns = `
	id, invoice_no, invoice_date, workshop_name, address, phone, email,
	vehicle_no, model, odometer_km, customer_name, customer_phone, customer_address,
	total_parts, total_labour, grand_total, saved_at`

// Create inserts the invoice and its items in one transaction
func (r *InvoiceRepo) Create(ctx context.Context, invoice *domain.SavedInvoice) error {
	if err := invoice.ValidateForSave(); err != nil {
		return fmt.Errorf("invalid invoice: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO invoices (
			invoice_no, invoice_date, workshop_name, address, phone, email,
			vehicle_no, model, odometer_km, customer_name, customer_phone, customer_address,
			total_parts, total_labour, grand_total, saved_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		invoice.InvoiceNo,
		invoice.DateString(),
		invoice.WorkshopName,
		invoice.Address,
		invoice.Phone,
		invoice.Email,
		invoice.VehicleNo,
		invoice.Model,
		invoice.OdometerKm,
		invoice.CustomerName,
		invoice.CustomerPhone,
		invoice.CustomerAddress,
		invoice.Totals.Parts,
		invoice.Totals.Labour,
		invoice.Totals.Grand,
		invoice.SavedAt.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get invoice ID: %w", err)
	}

	for pos, item := range invoice.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (invoice_id, position, item_id, description, parts, labour, remark)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, id, pos, item.ID, item.Description, item.Parts, item.Labour, item.Remark)
		if err != nil {
			return fmt.Errorf("failed to add line item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit invoice: %w", err)
	}

	invoice.ID = id
	return nil
}

// GetByID retrieves a saved invoice with its items
func (r *InvoiceRepo) GetByID(ctx context.Context, id int64) (*domain.SavedInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = ?`

	invoice, err := scanInvoice(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	items, err := r.loadItems(ctx, "WHERE invoice_id = ?", id)
	if err != nil {
		return nil, err
	}
	invoice.Items = itemsOrEmpty(items[invoice.ID])

	return invoice, nil
}

// List returns all saved invoices, newest first
func (r *InvoiceRepo) List(ctx context.Context) ([]*domain.SavedInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*domain.SavedInvoice, 0)
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	err = rows.Err()
	// Release the single pooled connection before querying items
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	items, err := r.loadItems(ctx, "")
	if err != nil {
		return nil, err
	}
	for _, invoice := range invoices {
		invoice.Items = itemsOrEmpty(items[invoice.ID])
	}

	return invoices, nil
}

// Count returns the number of saved invoices
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM invoices").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count invoices: %w", err)
	}
	return n, nil
}

// loadItems fetches line items grouped by invoice ID, in insertion order
func (r *InvoiceRepo) loadItems(ctx context.Context, where string, args ...interface{}) (map[int64][]domain.LineItem, error) {
	query := `
		SELECT invoice_id, item_id, description, parts, labour, remark
		FROM invoice_items ` + where + `
		ORDER BY invoice_id, position
	`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.LineItem)
	for rows.Next() {
		var invoiceID int64
		var item domain.LineItem
		if err := rows.Scan(&invoiceID, &item.ID, &item.Description, &item.Parts, &item.Labour, &item.Remark); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items[invoiceID] = append(items[invoiceID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate line items: %w", err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInvoice(row rowScanner) (*domain.SavedInvoice, error) {
	invoice := &domain.SavedInvoice{}
	var date, savedAt string

	err := row.Scan(
		&invoice.ID,
		&invoice.InvoiceNo,
		&date,
		&invoice.WorkshopName,
		&invoice.Address,
		&invoice.Phone,
		&invoice.Email,
		&invoice.VehicleNo,
		&invoice.Model,
		&invoice.OdometerKm,
		&invoice.CustomerName,
		&invoice.CustomerPhone,
		&invoice.CustomerAddress,
		&invoice.Totals.Parts,
		&invoice.Totals.Labour,
		&invoice.Totals.Grand,
		&savedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.Date, err = parseDate(date)
	if err != nil {
		return nil, fmt.Errorf("invalid invoice date %q: %w", date, err)
	}
	invoice.SavedAt, err = parseTime(savedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid saved_at %q: %w", savedAt, err)
	}

	return invoice, nil
}

func itemsOrEmpty(items []domain.LineItem) []domain.LineItem {
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}
