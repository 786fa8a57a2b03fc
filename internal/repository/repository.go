package repository

import (
	"context"
	"errors"

	"github.com/andy/garagebill/internal/domain"
)

// ErrNotFound is returned when no saved invoice has the requested ID
var ErrNotFound = errors.New("invoice not found")

// InvoiceRepository holds the session's saved invoices.
// Records are write-once: there is no update or delete.
type InvoiceRepository interface {
	// Create stores the snapshot and assigns its ID
	Create(ctx context.Context, invoice *domain.SavedInvoice) error
	GetByID(ctx context.Context, id int64) (*domain.SavedInvoice, error)
	// List returns every saved invoice, most recently saved first
	List(ctx context.Context) ([]*domain.SavedInvoice, error)
	Count(ctx context.Context) (int, error)
}
